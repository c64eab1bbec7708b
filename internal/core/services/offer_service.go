package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
	"github.com/rotaworks/shift_roster_app/internal/utils/scheduling"
)

// conflictScanLimit bounds the recent-offers window scanned for conflicts.
const conflictScanLimit = 200

const isoDay = "2006-01-02"

// offerService implements the offer lifecycle and conflict detection.
type offerService struct {
	offerRepo portsrepo.OfferRepositoryWithLock
	staffRepo portsrepo.StaffRepositoryFacade
	notifier  portssvc.NotificationSender
	auditRepo portsrepo.AuditRecorder
	now       func() time.Time
}

// OfferServiceOption is a functional option for configuring the offer service.
type OfferServiceOption func(*offerService)

// WithNotifier sets the best-effort push notification sender.
func WithNotifier(n portssvc.NotificationSender) OfferServiceOption {
	return func(s *offerService) { s.notifier = n }
}

// WithAuditRecorder sets the best-effort audit sink.
func WithAuditRecorder(a portsrepo.AuditRecorder) OfferServiceOption {
	return func(s *offerService) { s.auditRepo = a }
}

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) OfferServiceOption {
	return func(s *offerService) { s.now = now }
}

// NewOfferService creates a new offer service.
func NewOfferService(offerRepo portsrepo.OfferRepositoryWithLock, staffRepo portsrepo.StaffRepositoryFacade, options ...OfferServiceOption) portssvc.OfferSvcFacade {
	svc := &offerService{
		offerRepo: offerRepo,
		staffRepo: staffRepo,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OfferSvcFacade = (*offerService)(nil)

// CreateOffer normalizes the candidate shift, scans for overlapping active
// bookings and creates the placement+offer pair. The scan and both inserts
// run inside one transaction holding a per-staff advisory lock, so two
// concurrent sends for the same staff member cannot both pass the check.
func (s *offerService) CreateOffer(ctx context.Context, actorID string, req dto.CreateOfferRequest) (*domain.Offer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.staffRepo.FindStaffByID(ctx, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("staff lookup failed: %w", err)
	}
	if target.Role != domain.RoleStaff {
		return nil, fmt.Errorf("%w: target user is not staff", apperrors.ErrValidation)
	}
	if !target.IsActive {
		return nil, fmt.Errorf("%w: staff account is suspended, reactivate to send offers", apperrors.ErrForbidden)
	}
	if !domain.CanManageStaff(*actor, *target) {
		return nil, fmt.Errorf("%w: not your staff", apperrors.ErrForbidden)
	}

	date, err := time.Parse(isoDay, req.Placement.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: valid date required (YYYY-MM-DD)", apperrors.ErrValidation)
	}
	candidate, err := scheduling.NormalizeShift(date, req.Placement.StartTime, req.Placement.EndTime)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	placement := domain.Placement{
		PlacementID: uuid.NewString(),
		Venue:       req.Placement.Venue,
		RoleTitle:   req.Placement.RoleTitle,
		Date:        date,
		StartTime:   req.Placement.StartTime,
		EndTime:     req.Placement.EndTime,
		HourlyRate:  req.Placement.HourlyRate,
		TotalHours:  req.Placement.TotalHours,
		AddressLine: req.Placement.AddressLine,
		City:        req.Placement.City,
		Postcode:    req.Placement.Postcode,
		Notes:       req.Placement.Notes,
		AuditFields: audit,
	}
	offer := domain.Offer{
		OfferID:     uuid.NewString(),
		StaffID:     target.StaffID,
		PlacementID: placement.PlacementID,
		Status:      domain.StatusOffered,
		AuditFields: audit,
	}

	err = s.offerRepo.WithStaffLock(ctx, target.StaffID, func(txRepo portsrepo.OfferRepositoryFacade) error {
		existing, err := txRepo.ListOffersByStaff(ctx, target.StaffID, domain.ActiveOfferStatuses, conflictScanLimit)
		if err != nil {
			return fmt.Errorf("failed to scan existing offers: %w", err)
		}

		conflicts := detectConflicts(candidate, existing)
		if len(conflicts) > 0 && !req.Force {
			return &apperrors.ConflictError{Conflicts: conflicts}
		}
		if len(conflicts) > 0 {
			logger.Warn("Offer created despite conflicts (force)",
				slog.String("staff_id", target.StaffID),
				slog.Int("conflict_count", len(conflicts)))
		}

		return txRepo.SavePlacementAndOffer(ctx, placement, offer)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, target.FCMToken, "New Offer",
		fmt.Sprintf("%s • %s", placement.RoleTitle, placement.Venue),
		map[string]string{"offerId": offer.OfferID})
	s.audit(ctx, actorID, "SEND_OFFER", "Offer", offer.OfferID, map[string]string{"staffId": target.StaffID, "date": candidate.Day})

	logger.Info("Offer created", slog.String("offer_id", offer.OfferID), slog.String("staff_id", target.StaffID))
	offer.Placement = &placement
	return &offer, nil
}

// detectConflicts compares a normalized candidate window against a staff
// member's existing offers. Offers without a placement or with unparsable
// times are skipped, matching the original backend behaviour.
func detectConflicts(candidate scheduling.ShiftWindow, existing []domain.Offer) []apperrors.ShiftConflict {
	var conflicts []apperrors.ShiftConflict
	for _, o := range existing {
		p := o.Placement
		if p == nil {
			continue
		}
		w, err := scheduling.NormalizeShift(p.Date, p.StartTime, p.EndTime)
		if err != nil {
			continue
		}
		if candidate.Overlaps(w) {
			conflicts = append(conflicts, apperrors.ShiftConflict{
				OfferID:   o.OfferID,
				Status:    string(o.Status),
				Venue:     p.Venue,
				Date:      w.Day,
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
			})
		}
	}
	return conflicts
}

// RespondToOffer is the owning staff member's accept or reject.
func (s *offerService) RespondToOffer(ctx context.Context, offerID, actorID string, action domain.OfferAction) (*domain.Offer, error) {
	if action != domain.ActionAccept && action != domain.ActionReject {
		return nil, fmt.Errorf("%w: invalid action %q", apperrors.ErrValidation, action)
	}

	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.StaffID != actorID {
		return nil, fmt.Errorf("%w: offer does not belong to you", apperrors.ErrForbidden)
	}
	// staff may only reject while the offer is still in its initial state;
	// rejecting a user_accepted offer is a manager decision
	if action == domain.ActionReject && offer.Status != domain.StatusOffered {
		return nil, &apperrors.InvalidTransitionError{Action: string(action), CurrentStatus: string(offer.Status)}
	}

	return s.applyTransition(ctx, offer, action, actorID, nil)
}

// DecideOffer is the manager approve/reject of a user-accepted offer.
func (s *offerService) DecideOffer(ctx context.Context, offerID, actorID string, action domain.OfferAction) (*domain.Offer, error) {
	if action != domain.ActionApprove && action != domain.ActionReject {
		return nil, fmt.Errorf("%w: invalid decision %q", apperrors.ErrValidation, action)
	}

	offer, actor, err := s.loadOfferForManager(ctx, offerID, actorID)
	if err != nil {
		return nil, err
	}
	// the manager-side reject is only valid from user_accepted
	if offer.Status != domain.StatusUserAccepted {
		return nil, &apperrors.InvalidTransitionError{Action: string(action), CurrentStatus: string(offer.Status)}
	}

	updated, err := s.applyTransition(ctx, offer, action, actor.StaffID, nil)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, actorID, "DECIDE_OFFER", "Offer", offerID, map[string]string{"decision": string(action)})
	return updated, nil
}

// CompleteOffer is the administrative completion path: it stamps completedAt
// and computes nothing, per the completion mode contract.
func (s *offerService) CompleteOffer(ctx context.Context, offerID, actorID string) (*domain.Offer, error) {
	offer, _, err := s.loadOfferForManager(ctx, offerID, actorID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	updated, err := s.applyTransition(ctx, offer, domain.ActionComplete, actorID, func(o *domain.Offer) {
		o.CompletedAt = &now
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, actorID, "COMPLETE_OFFER", "Offer", offerID, map[string]string{"mode": string(domain.CompletionAdministrative)})
	return updated, nil
}

// CheckoutOffer is the staff completion path. Hours and pay are computed from
// the placement's scheduled start, never from a prior check-in timestamp;
// that is a deliberate business rule.
func (s *offerService) CheckoutOffer(ctx context.Context, offerID, actorID string) (*domain.Offer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.StaffID != actorID {
		return nil, fmt.Errorf("%w: offer does not belong to you", apperrors.ErrForbidden)
	}

	p := offer.Placement
	if p == nil {
		return nil, fmt.Errorf("%w: placement missing", apperrors.ErrValidation)
	}
	if p.Date.IsZero() {
		return nil, fmt.Errorf("%w: invalid placement start", apperrors.ErrValidation)
	}
	startMin, err := scheduling.ParseClock(p.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid placement start", apperrors.ErrValidation)
	}

	// local calendar composition of date + start time, not a UTC shift
	scheduledStart := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), startMin/60, startMin%60, 0, 0, p.Date.Location())

	now := s.now()
	workedMinutes := int64(now.Sub(scheduledStart) / time.Minute)
	if workedMinutes < 0 {
		workedMinutes = 0
	}
	hoursExact := decimal.NewFromInt(workedMinutes).Div(decimal.NewFromInt(60))
	hours := hoursExact.Round(2)
	pay := hoursExact.Mul(p.HourlyRate).Round(2)

	updated, err := s.applyTransition(ctx, offer, domain.ActionCheckout, actorID, func(o *domain.Offer) {
		if o.CheckInAt == nil {
			o.CheckInAt = &scheduledStart
		}
		o.CheckOutAt = &now
		o.HoursWorked = &hours
		o.PayAmount = &pay
		o.CompletedAt = &now
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Offer checked out",
		slog.String("offer_id", offerID),
		slog.String("hours", hours.String()),
		slog.String("pay", pay.String()))
	return updated, nil
}

// CancelOffer cancels a not-yet-completed offer.
func (s *offerService) CancelOffer(ctx context.Context, offerID, actorID, reason string) (*domain.Offer, error) {
	offer, _, err := s.loadOfferForManager(ctx, offerID, actorID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	updated, err := s.applyTransition(ctx, offer, domain.ActionCancel, actorID, func(o *domain.Offer) {
		o.CancelReason = reason
		o.CancelledAt = &now
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, actorID, "CANCEL_OFFER", "Offer", offerID, map[string]string{"reason": reason})
	return updated, nil
}

// EditOfferPlacement patches placement fields while the offer is editable.
func (s *offerService) EditOfferPlacement(ctx context.Context, offerID, actorID string, patch dto.PlacementPatch) (*domain.Placement, error) {
	offer, _, err := s.loadOfferForManager(ctx, offerID, actorID)
	if err != nil {
		return nil, err
	}
	if !offer.Status.Editable() {
		return nil, &apperrors.InvalidTransitionError{Action: "edit", CurrentStatus: string(offer.Status)}
	}
	if offer.Placement == nil {
		return nil, fmt.Errorf("%w: placement missing", apperrors.ErrValidation)
	}

	p := *offer.Placement
	if patch.Venue != nil {
		p.Venue = *patch.Venue
	}
	if patch.RoleTitle != nil {
		p.RoleTitle = *patch.RoleTitle
	}
	if patch.Date != nil {
		date, err := time.Parse(isoDay, *patch.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: valid date required (YYYY-MM-DD)", apperrors.ErrValidation)
		}
		p.Date = date
	}
	if patch.StartTime != nil {
		p.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		p.EndTime = *patch.EndTime
	}
	if patch.HourlyRate != nil {
		p.HourlyRate = *patch.HourlyRate
	}
	if patch.TotalHours != nil {
		p.TotalHours = *patch.TotalHours
	}
	if patch.AddressLine != nil {
		p.AddressLine = *patch.AddressLine
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Postcode != nil {
		p.Postcode = *patch.Postcode
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}

	// reject patches that leave the shift window unparsable
	if _, err := scheduling.NormalizeShift(p.Date, p.StartTime, p.EndTime); err != nil {
		return nil, err
	}

	p.LastUpdatedAt = s.now().UTC()
	p.LastUpdatedBy = actorID
	if err := s.offerRepo.UpdatePlacement(ctx, p); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, "EDIT_OFFER", "Placement", p.PlacementID, nil)
	return &p, nil
}

// DeleteOffer removes a non-completed offer and cascades to its placement.
func (s *offerService) DeleteOffer(ctx context.Context, offerID, actorID string) error {
	offer, _, err := s.loadOfferForManager(ctx, offerID, actorID)
	if err != nil {
		return err
	}
	if offer.Status == domain.StatusCompleted {
		return &apperrors.InvalidTransitionError{Action: "delete", CurrentStatus: string(offer.Status)}
	}

	if err := s.offerRepo.DeleteOfferCascade(ctx, offer.OfferID, offer.PlacementID); err != nil {
		return err
	}
	s.audit(ctx, actorID, "DELETE_OFFER", "Offer", offerID, nil)
	return nil
}

// ListMyOffers returns the acting staff member's own offers, newest first.
func (s *offerService) ListMyOffers(ctx context.Context, actorID string, status *domain.OfferStatus) ([]domain.Offer, error) {
	var statuses []domain.OfferStatus
	if status != nil {
		statuses = []domain.OfferStatus{*status}
	}
	return s.offerRepo.ListOffersByStaff(ctx, actorID, statuses, conflictScanLimit)
}

// ListOffersForStaff returns one staff member's history for a manager/admin.
func (s *offerService) ListOffersForStaff(ctx context.Context, actorID, staffID string) ([]domain.Offer, error) {
	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageStaff(*actor, *target) {
		return nil, fmt.Errorf("%w: not your staff", apperrors.ErrForbidden)
	}
	return s.offerRepo.ListOffersByStaff(ctx, staffID, nil, conflictScanLimit)
}

// ListPendingConfirmations returns user-accepted offers awaiting a decision,
// scoped to the acting manager's own staff.
func (s *offerService) ListPendingConfirmations(ctx context.Context, actorID string) ([]domain.Offer, error) {
	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, err
	}
	var managerID *string
	if actor.Role == domain.RoleManager {
		managerID = &actor.StaffID
	}
	return s.offerRepo.ListOffersByStatus(ctx, domain.StatusUserAccepted, managerID)
}

// Dashboard returns headline staff and offer counts. Managers see figures for
// their own staff only, admins see the whole roster.
func (s *offerService) Dashboard(ctx context.Context, actorID string) (*domain.DashboardCounts, error) {
	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, err
	}
	var managerID *string
	if actor.Role == domain.RoleManager {
		managerID = &actor.StaffID
	}
	counts, err := s.offerRepo.DashboardCounts(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// ListSchedule returns non-cancelled offers in the inclusive day window.
func (s *offerService) ListSchedule(ctx context.Context, actorID, fromDay, toDay string) ([]domain.Offer, error) {
	if _, err := s.requireManagerial(ctx, actorID); err != nil {
		return nil, err
	}
	if fromDay == "" || toDay == "" {
		return nil, fmt.Errorf("%w: from and to are required", apperrors.ErrValidation)
	}
	return s.offerRepo.ListScheduleRange(ctx, fromDay, toDay)
}

// applyTransition resolves the state machine edge, applies mutate to a copy
// and persists it with a compare-and-set on the source status. A lost
// concurrent race is reported as an invalid transition carrying the fresh
// status, so resolution is deterministic.
func (s *offerService) applyTransition(ctx context.Context, offer *domain.Offer, action domain.OfferAction, actorID string, mutate func(*domain.Offer)) (*domain.Offer, error) {
	next, ok := domain.NextStatus(offer.Status, action)
	if !ok {
		return nil, &apperrors.InvalidTransitionError{Action: string(action), CurrentStatus: string(offer.Status)}
	}

	updated := *offer
	updated.Status = next
	updated.LastUpdatedAt = s.now().UTC()
	updated.LastUpdatedBy = actorID
	if mutate != nil {
		mutate(&updated)
	}

	applied, err := s.offerRepo.UpdateOfferStatus(ctx, updated, []domain.OfferStatus{offer.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to update offer status: %w", err)
	}
	if !applied {
		fresh, ferr := s.offerRepo.FindOfferByID(ctx, offer.OfferID)
		if ferr != nil {
			return nil, fmt.Errorf("offer status changed concurrently: %w", apperrors.ErrInternal)
		}
		return nil, &apperrors.InvalidTransitionError{Action: string(action), CurrentStatus: string(fresh.Status)}
	}
	return &updated, nil
}

// loadOfferForManager fetches the offer and verifies the actor is a manager
// or admin with ownership of the offer's staff member.
func (s *offerService) loadOfferForManager(ctx context.Context, offerID, actorID string) (*domain.Offer, *domain.Staff, error) {
	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		return nil, nil, err
	}
	if actor.Role == domain.RoleManager {
		target, err := s.staffRepo.FindStaffByID(ctx, offer.StaffID)
		if err != nil {
			return nil, nil, err
		}
		if !domain.CanManageStaff(*actor, *target) {
			return nil, nil, fmt.Errorf("%w: not your staff", apperrors.ErrForbidden)
		}
	}
	return offer, actor, nil
}

func (s *offerService) requireManagerial(ctx context.Context, actorID string) (*domain.Staff, error) {
	actor, err := s.staffRepo.FindStaffByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor lookup failed: %w", err)
	}
	if !actor.Role.IsManagerial() {
		return nil, fmt.Errorf("%w: manager or admin role required", apperrors.ErrForbidden)
	}
	return actor, nil
}

// notify sends a push notification without ever failing the caller.
func (s *offerService) notify(ctx context.Context, token *string, title, body string, data map[string]string) {
	if s.notifier == nil || token == nil || *token == "" {
		return
	}
	if err := s.notifier.Send(ctx, *token, title, body, data); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Push notification failed", slog.String("error", err.Error()))
	}
}

// audit appends an audit entry without ever failing the caller.
func (s *offerService) audit(ctx context.Context, actorID, action, targetType, targetID string, meta map[string]string) {
	if s.auditRepo == nil {
		return
	}
	entry := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Meta:       meta,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.auditRepo.RecordAudit(ctx, entry); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Audit append failed", slog.String("action", action), slog.String("error", err.Error()))
	}
}
