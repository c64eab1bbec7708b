package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
	"github.com/rotaworks/shift_roster_app/internal/models"
)

type PgxOfferRepository struct {
	BaseRepository
	db querier
}

func newPgxOfferRepository(pool *pgxpool.Pool) portsrepo.OfferRepositoryWithLock {
	return &PgxOfferRepository{
		BaseRepository: BaseRepository{Pool: pool},
		db:             pool,
	}
}

// Ensure PgxOfferRepository implements portsrepo.OfferRepositoryWithLock
var _ portsrepo.OfferRepositoryWithLock = (*PgxOfferRepository)(nil)

// WithStaffLock runs fn inside one transaction holding a per-staff advisory
// lock. The lock serializes the conflict-scan-then-create sequence across
// concurrent requests for the same staff member and releases automatically at
// transaction end.
func (r *PgxOfferRepository) WithStaffLock(ctx context.Context, staffID string, fn func(txRepo portsrepo.OfferRepositoryFacade) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, staffID); err != nil {
		return fmt.Errorf("failed to acquire staff lock: %w", err)
	}

	txRepo := &PgxOfferRepository{BaseRepository: r.BaseRepository, db: tx}
	if err := fn(txRepo); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// Helper to convert domain.Placement to models.Placement
func toModelPlacement(d domain.Placement) models.Placement {
	return models.Placement{
		PlacementID: d.PlacementID,
		Venue:       d.Venue,
		RoleTitle:   d.RoleTitle,
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		HourlyRate:  d.HourlyRate,
		TotalHours:  d.TotalHours,
		AddressLine: d.AddressLine,
		City:        d.City,
		Postcode:    d.Postcode,
		Notes:       d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert joined offer+placement models to a domain.Offer
func toDomainOffer(mo models.Offer, mp models.Placement) domain.Offer {
	placement := domain.Placement{
		PlacementID: mp.PlacementID,
		Venue:       mp.Venue,
		RoleTitle:   mp.RoleTitle,
		Date:        mp.Date,
		StartTime:   mp.StartTime,
		EndTime:     mp.EndTime,
		HourlyRate:  mp.HourlyRate,
		TotalHours:  mp.TotalHours,
		AddressLine: mp.AddressLine,
		City:        mp.City,
		Postcode:    mp.Postcode,
		Notes:       mp.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     mp.CreatedAt,
			CreatedBy:     mp.CreatedBy,
			LastUpdatedAt: mp.LastUpdatedAt,
			LastUpdatedBy: mp.LastUpdatedBy,
		},
	}
	return domain.Offer{
		OfferID:      mo.OfferID,
		StaffID:      mo.StaffID,
		PlacementID:  mo.PlacementID,
		Status:       domain.OfferStatus(mo.Status),
		CancelReason: mo.CancelReason,
		CancelledAt:  mo.CancelledAt,
		CompletedAt:  mo.CompletedAt,
		CheckInAt:    mo.CheckInAt,
		CheckOutAt:   mo.CheckOutAt,
		HoursWorked:  mo.HoursWorked,
		PayAmount:    mo.PayAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     mo.CreatedAt,
			CreatedBy:     mo.CreatedBy,
			LastUpdatedAt: mo.LastUpdatedAt,
			LastUpdatedBy: mo.LastUpdatedBy,
		},
		Placement: &placement,
	}
}

// offerJoinColumns selects an offer row joined with its placement. Keep in
// sync with scanOfferJoin.
const offerJoinColumns = `
		o.offer_id, o.staff_id, o.placement_id, o.status,
		o.cancel_reason, o.cancelled_at, o.completed_at,
		o.check_in_at, o.check_out_at, o.hours_worked, o.pay_amount,
		o.created_at, o.created_by, o.last_updated_at, o.last_updated_by,
		p.placement_id, p.venue, p.role_title, p.shift_date, p.start_time, p.end_time,
		p.hourly_rate, p.total_hours, p.address_line, p.city, p.postcode, p.notes,
		p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

func scanOfferJoin(row pgx.Row) (domain.Offer, error) {
	var mo models.Offer
	var mp models.Placement
	err := row.Scan(
		&mo.OfferID,
		&mo.StaffID,
		&mo.PlacementID,
		&mo.Status,
		&mo.CancelReason,
		&mo.CancelledAt,
		&mo.CompletedAt,
		&mo.CheckInAt,
		&mo.CheckOutAt,
		&mo.HoursWorked,
		&mo.PayAmount,
		&mo.CreatedAt,
		&mo.CreatedBy,
		&mo.LastUpdatedAt,
		&mo.LastUpdatedBy,
		&mp.PlacementID,
		&mp.Venue,
		&mp.RoleTitle,
		&mp.Date,
		&mp.StartTime,
		&mp.EndTime,
		&mp.HourlyRate,
		&mp.TotalHours,
		&mp.AddressLine,
		&mp.City,
		&mp.Postcode,
		&mp.Notes,
		&mp.CreatedAt,
		&mp.CreatedBy,
		&mp.LastUpdatedAt,
		&mp.LastUpdatedBy,
	)
	if err != nil {
		return domain.Offer{}, err
	}
	return toDomainOffer(mo, mp), nil
}

func statusesToStrings(statuses []domain.OfferStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *PgxOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	query := `
		SELECT ` + offerJoinColumns + `
		FROM offers o
		JOIN placements p ON p.placement_id = o.placement_id
		WHERE o.offer_id = $1;
	`
	offer, err := scanOfferJoin(r.db.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find offer by ID %s: %w", offerID, err)
	}
	return &offer, nil
}

func (r *PgxOfferRepository) ListOffersByStaff(ctx context.Context, staffID string, statuses []domain.OfferStatus, limit int) ([]domain.Offer, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + offerJoinColumns + `
		FROM offers o
		JOIN placements p ON p.placement_id = o.placement_id
		WHERE o.staff_id = $1
	`
	args := []any{staffID}
	if len(statuses) > 0 {
		args = append(args, statusesToStrings(statuses))
		query += fmt.Sprintf(" AND o.status = ANY($%d)", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d;", len(args))

	return r.queryOffers(ctx, query, args...)
}

func (r *PgxOfferRepository) ListOffersByStatus(ctx context.Context, status domain.OfferStatus, managerID *string) ([]domain.Offer, error) {
	query := `
		SELECT ` + offerJoinColumns + `
		FROM offers o
		JOIN placements p ON p.placement_id = o.placement_id
		JOIN users u ON u.staff_id = o.staff_id
		WHERE o.status = $1
	`
	args := []any{string(status)}
	if managerID != nil {
		args = append(args, *managerID)
		query += fmt.Sprintf(" AND u.manager_id = $%d", len(args))
	}
	query += " ORDER BY o.created_at DESC;"

	return r.queryOffers(ctx, query, args...)
}

func (r *PgxOfferRepository) ListScheduleRange(ctx context.Context, fromDay, toDay string) ([]domain.Offer, error) {
	query := `
		SELECT ` + offerJoinColumns + `
		FROM offers o
		JOIN placements p ON p.placement_id = o.placement_id
		WHERE o.status <> 'cancelled' AND o.status <> 'rejected'
		  AND p.shift_date >= $1::date AND p.shift_date <= $2::date
		ORDER BY p.shift_date ASC, p.start_time ASC;
	`
	return r.queryOffers(ctx, query, fromDay, toDay)
}

func (r *PgxOfferRepository) queryOffers(ctx context.Context, query string, args ...any) ([]domain.Offer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := []domain.Offer{}
	for rows.Next() {
		offer, err := scanOfferJoin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, offer)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating offer rows: %w", rows.Err())
	}
	return offers, nil
}

func (r *PgxOfferRepository) ListCompletedShifts(ctx context.Context, fromDay, toDay *string, staffID *string) ([]domain.CompletedShift, error) {
	query := `
		SELECT o.offer_id, o.staff_id, u.username,
			to_char(p.shift_date, 'YYYY-MM-DD'),
			p.venue, p.start_time, p.end_time, p.total_hours, p.hourly_rate
		FROM offers o
		JOIN placements p ON p.placement_id = o.placement_id
		JOIN users u ON u.staff_id = o.staff_id
		WHERE o.status = 'completed'
	`
	args := []any{}
	if fromDay != nil {
		args = append(args, *fromDay)
		query += fmt.Sprintf(" AND p.shift_date >= $%d::date", len(args))
	}
	if toDay != nil {
		args = append(args, *toDay)
		query += fmt.Sprintf(" AND p.shift_date <= $%d::date", len(args))
	}
	if staffID != nil {
		args = append(args, *staffID)
		query += fmt.Sprintf(" AND o.staff_id = $%d", len(args))
	}
	query += " ORDER BY p.shift_date ASC, u.username ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed shifts: %w", err)
	}
	defer rows.Close()

	shifts := []domain.CompletedShift{}
	for rows.Next() {
		var s domain.CompletedShift
		err := rows.Scan(
			&s.OfferID,
			&s.StaffID,
			&s.Username,
			&s.Day,
			&s.Venue,
			&s.StartTime,
			&s.EndTime,
			&s.Hours,
			&s.Rate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completed shift row: %w", err)
		}
		shifts = append(shifts, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating completed shift rows: %w", rows.Err())
	}
	return shifts, nil
}

func (r *PgxOfferRepository) DashboardCounts(ctx context.Context, managerID *string) (domain.DashboardCounts, error) {
	var counts domain.DashboardCounts

	staffQuery := `
		SELECT COUNT(*)
		FROM users
		WHERE role = 'staff' AND deleted_at IS NULL
	`
	staffArgs := []any{}
	if managerID != nil {
		staffArgs = append(staffArgs, *managerID)
		staffQuery += fmt.Sprintf(" AND manager_id = $%d", len(staffArgs))
	}
	if err := r.db.QueryRow(ctx, staffQuery, staffArgs...).Scan(&counts.StaffTotal); err != nil {
		return domain.DashboardCounts{}, fmt.Errorf("failed to count staff: %w", err)
	}

	offerQuery := `
		SELECT
			COUNT(*) FILTER (WHERE o.status = 'offered'),
			COUNT(*) FILTER (WHERE o.status = 'user_accepted'),
			COUNT(*) FILTER (WHERE o.status = 'booking_confirmed'),
			COUNT(*) FILTER (WHERE o.status = 'completed')
		FROM offers o
		JOIN users u ON u.staff_id = o.staff_id
	`
	offerArgs := []any{}
	if managerID != nil {
		offerArgs = append(offerArgs, *managerID)
		offerQuery += fmt.Sprintf(" WHERE u.manager_id = $%d", len(offerArgs))
	}
	err := r.db.QueryRow(ctx, offerQuery, offerArgs...).Scan(
		&counts.OffersOffered,
		&counts.OffersAwaitingDecision,
		&counts.OffersConfirmed,
		&counts.OffersCompleted,
	)
	if err != nil {
		return domain.DashboardCounts{}, fmt.Errorf("failed to count offers: %w", err)
	}
	return counts, nil
}

func (r *PgxOfferRepository) SavePlacementAndOffer(ctx context.Context, placement domain.Placement, offer domain.Offer) error {
	mp := toModelPlacement(placement)
	placementQuery := `
        INSERT INTO placements (placement_id, venue, role_title, shift_date, start_time, end_time,
            hourly_rate, total_hours, address_line, city, postcode, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, placementQuery,
		mp.PlacementID,
		mp.Venue,
		mp.RoleTitle,
		mp.Date,
		mp.StartTime,
		mp.EndTime,
		mp.HourlyRate,
		mp.TotalHours,
		mp.AddressLine,
		mp.City,
		mp.Postcode,
		mp.Notes,
		mp.CreatedAt,
		mp.CreatedBy,
		mp.LastUpdatedAt,
		mp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save placement: %w", err)
	}

	offerQuery := `
        INSERT INTO offers (offer_id, staff_id, placement_id, status, cancel_reason,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err = r.db.Exec(ctx, offerQuery,
		offer.OfferID,
		offer.StaffID,
		offer.PlacementID,
		string(offer.Status),
		offer.CancelReason,
		offer.CreatedAt,
		offer.CreatedBy,
		offer.LastUpdatedAt,
		offer.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	return nil
}

// UpdateOfferStatus applies a compare-and-set status transition. The WHERE
// clause carries the expected source statuses, so a concurrent transition
// makes this a no-op reported as applied=false.
func (r *PgxOfferRepository) UpdateOfferStatus(ctx context.Context, offer domain.Offer, expected []domain.OfferStatus) (bool, error) {
	query := `
        UPDATE offers
        SET status = $1,
            cancel_reason = $2,
            cancelled_at = $3,
            completed_at = $4,
            check_in_at = $5,
            check_out_at = $6,
            hours_worked = $7,
            pay_amount = $8,
            last_updated_at = $9,
            last_updated_by = $10
        WHERE offer_id = $11 AND status = ANY($12);
    `
	cmdTag, err := r.db.Exec(ctx, query,
		string(offer.Status),
		offer.CancelReason,
		offer.CancelledAt,
		offer.CompletedAt,
		offer.CheckInAt,
		offer.CheckOutAt,
		offer.HoursWorked,
		offer.PayAmount,
		offer.LastUpdatedAt,
		offer.LastUpdatedBy,
		offer.OfferID,
		statusesToStrings(expected),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update offer status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *PgxOfferRepository) UpdatePlacement(ctx context.Context, placement domain.Placement) error {
	mp := toModelPlacement(placement)
	query := `
        UPDATE placements
        SET venue = $1, role_title = $2, shift_date = $3, start_time = $4, end_time = $5,
            hourly_rate = $6, total_hours = $7, address_line = $8, city = $9, postcode = $10,
            notes = $11, last_updated_at = $12, last_updated_by = $13
        WHERE placement_id = $14;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		mp.Venue,
		mp.RoleTitle,
		mp.Date,
		mp.StartTime,
		mp.EndTime,
		mp.HourlyRate,
		mp.TotalHours,
		mp.AddressLine,
		mp.City,
		mp.Postcode,
		mp.Notes,
		mp.LastUpdatedAt,
		mp.LastUpdatedBy,
		mp.PlacementID,
	)
	if err != nil {
		return fmt.Errorf("failed to update placement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("placement not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

// DeleteOfferCascade removes the offer and its owned placement in one
// transaction. Placements are never shared, so the cascade is safe.
func (r *PgxOfferRepository) DeleteOfferCascade(ctx context.Context, offerID, placementID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM offers WHERE offer_id = $1;`, offerID)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("offer not found: %w", apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM placements WHERE placement_id = $1;`, placementID); err != nil {
		return fmt.Errorf("failed to delete placement: %w", err)
	}

	return r.Commit(ctx, tx)
}
