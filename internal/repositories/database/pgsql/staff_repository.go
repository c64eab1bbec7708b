package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
	"github.com/rotaworks/shift_roster_app/internal/models"
)

type PgxStaffRepository struct {
	db *pgxpool.Pool
}

func newPgxStaffRepository(db *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{db: db}
}

// Ensure PgxStaffRepository implements portsrepo.StaffRepositoryFacade
var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

// Helper to convert domain.Staff to models.Staff
func toModelStaff(d domain.Staff) models.Staff {
	return models.Staff{
		StaffID:      d.StaffID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		FullName:     d.FullName,
		Email:        d.Email,
		DOB:          d.DOB,
		ManagerID:    d.ManagerID,
		IsActive:     d.IsActive,
		FCMToken:     d.FCMToken,
		Availability: toModelAvailability(d.Availability),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
}

// Helper to convert models.Staff to domain.Staff
func toDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:      m.StaffID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.StaffRole(m.Role),
		FullName:     m.FullName,
		Email:        m.Email,
		DOB:          m.DOB,
		ManagerID:    m.ManagerID,
		IsActive:     m.IsActive,
		FCMToken:     m.FCMToken,
		Availability: toDomainAvailability(m.Availability),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

func toModelAvailability(d domain.Availability) models.Availability {
	return models.Availability{
		Days:             d.Days,
		TimeFrom:         d.TimeFrom,
		TimeTo:           d.TimeTo,
		UnavailableDates: d.UnavailableDates,
	}
}

func toDomainAvailability(m models.Availability) domain.Availability {
	return domain.Availability{
		Days:             m.Days,
		TimeFrom:         m.TimeFrom,
		TimeTo:           m.TimeTo,
		UnavailableDates: m.UnavailableDates,
	}
}

const staffColumns = `staff_id, username, password_hash, role, full_name, email, dob, manager_id, is_active, fcm_token, availability,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanStaffRow(row pgx.Row) (models.Staff, error) {
	var m models.Staff
	err := row.Scan(
		&m.StaffID,
		&m.Username,
		&m.PasswordHash,
		&m.Role,
		&m.FullName,
		&m.Email,
		&m.DOB,
		&m.ManagerID,
		&m.IsActive,
		&m.FCMToken,
		&m.Availability,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	m := toModelStaff(staff)
	query := `
        INSERT INTO users (staff_id, username, password_hash, role, full_name, email, dob, manager_id, is_active, fcm_token, availability,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.db.Exec(ctx, query,
		m.StaffID,
		m.Username,
		m.PasswordHash,
		m.Role,
		m.FullName,
		m.Email,
		m.DOB,
		m.ManagerID,
		m.IsActive,
		m.FCMToken,
		m.Availability,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q already taken: %w", staff.Username, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save staff: %w", err)
	}
	return nil
}

func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM users
		WHERE staff_id = $1 AND deleted_at IS NULL;
	`
	m, err := scanStaffRow(r.db.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff by ID %s: %w", staffID, err)
	}
	d := toDomainStaff(m)
	return &d, nil
}

func (r *PgxStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	query := `
		SELECT ` + staffColumns + `
		FROM users
		WHERE username = $1 AND deleted_at IS NULL;
	`
	m, err := scanStaffRow(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff by username: %w", err)
	}
	d := toDomainStaff(m)
	return &d, nil
}

// staffListColumns is staffColumns with the users alias, for the ListStaff
// aggregate join.
const staffListColumns = `u.staff_id, u.username, u.password_hash, u.role, u.full_name, u.email, u.dob, u.manager_id, u.is_active, u.fcm_token, u.availability,
		u.created_at, u.created_by, u.last_updated_at, u.last_updated_by, u.deleted_at`

func (r *PgxStaffRepository) ListStaff(ctx context.Context, filter portsrepo.ListStaffFilter) ([]domain.StaffListEntry, error) {
	query := `
        SELECT ` + staffListColumns + `,
            COALESCE(SUM(p.total_hours) FILTER (WHERE o.status = 'completed'), 0) AS total_hours_worked,
            MAX(o.created_at) AS last_job_at
        FROM users u
        LEFT JOIN offers o ON o.staff_id = u.staff_id
        LEFT JOIN placements p ON p.placement_id = o.placement_id
        WHERE u.role = 'staff' AND u.deleted_at IS NULL
    `
	args := []any{}
	if filter.ManagerID != nil {
		args = append(args, *filter.ManagerID)
		query += fmt.Sprintf(" AND u.manager_id = $%d", len(args))
	}
	if filter.ActiveOnly != nil {
		args = append(args, *filter.ActiveOnly)
		query += fmt.Sprintf(" AND u.is_active = $%d", len(args))
	}
	if filter.UsernameSearch != "" {
		args = append(args, "%"+filter.UsernameSearch+"%")
		query += fmt.Sprintf(" AND (u.username ILIKE $%d OR u.full_name ILIKE $%d)", len(args), len(args))
	}
	query += " GROUP BY u.staff_id"
	switch filter.Sort {
	case portsrepo.SortByHours:
		query += " ORDER BY total_hours_worked DESC, u.username ASC;"
	case portsrepo.SortByLastJob:
		query += " ORDER BY last_job_at DESC NULLS LAST, u.username ASC;"
	default:
		query += " ORDER BY u.username ASC;"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	staff := []domain.StaffListEntry{}
	for rows.Next() {
		var (
			m          models.Staff
			totalHours decimal.Decimal
			lastJobAt  *time.Time
		)
		err := rows.Scan(
			&m.StaffID,
			&m.Username,
			&m.PasswordHash,
			&m.Role,
			&m.FullName,
			&m.Email,
			&m.DOB,
			&m.ManagerID,
			&m.IsActive,
			&m.FCMToken,
			&m.Availability,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.DeletedAt,
			&totalHours,
			&lastJobAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		staff = append(staff, domain.StaffListEntry{
			Staff:            toDomainStaff(m),
			TotalHoursWorked: totalHours,
			LastJobAt:        lastJobAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating staff rows: %w", rows.Err())
	}
	return staff, nil
}

func (r *PgxStaffRepository) SetStaffActive(ctx context.Context, staffID string, isActive bool, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE users
        SET is_active = $1, last_updated_at = $2, last_updated_by = $3
        WHERE staff_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, isActive, updatedAt, updatedBy, staffID)
	if err != nil {
		return fmt.Errorf("failed to update staff active flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("staff not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxStaffRepository) UpdateAvailability(ctx context.Context, staffID string, availability domain.Availability, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE users
        SET availability = $1, last_updated_at = $2, last_updated_by = $3
        WHERE staff_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, toModelAvailability(availability), updatedAt, updatedBy, staffID)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("staff not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxStaffRepository) UpdateFCMToken(ctx context.Context, staffID string, token *string, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE users
        SET fcm_token = $1, last_updated_at = $2, last_updated_by = $3
        WHERE staff_id = $4 AND deleted_at IS NULL;
    `
	cmdTag, err := r.db.Exec(ctx, query, token, updatedAt, updatedBy, staffID)
	if err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("staff not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}
