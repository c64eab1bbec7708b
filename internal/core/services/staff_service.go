package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
	"github.com/rotaworks/shift_roster_app/internal/utils"
)

// staffService implements account management and authentication.
type staffService struct {
	staffRepo portsrepo.StaffRepositoryFacade
	auditRepo portsrepo.AuditRecorder
	now       func() time.Time
}

// StaffServiceOption is a functional option for configuring the staff service.
type StaffServiceOption func(*staffService)

// WithStaffAuditRecorder sets the best-effort audit sink.
func WithStaffAuditRecorder(a portsrepo.AuditRecorder) StaffServiceOption {
	return func(s *staffService) { s.auditRepo = a }
}

// WithStaffClock overrides the wall clock, used by tests.
func WithStaffClock(now func() time.Time) StaffServiceOption {
	return func(s *staffService) { s.now = now }
}

// NewStaffService creates a new staff service.
func NewStaffService(staffRepo portsrepo.StaffRepositoryFacade, options ...StaffServiceOption) portssvc.StaffSvcFacade {
	svc := &staffService{
		staffRepo: staffRepo,
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StaffSvcFacade = (*staffService)(nil)

// CreateStaff creates a staff account owned by the acting manager. An admin
// actor creates an unowned record that any admin can manage.
func (s *staffService) CreateStaff(ctx context.Context, actorID string, req dto.CreateStaffRequest) (*domain.Staff, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.staffRepo.FindStaffByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %q already taken", apperrors.ErrDuplicate, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("username lookup failed: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var managerID *string
	if actor.Role == domain.RoleManager {
		managerID = &actor.StaffID
	}

	now := s.now().UTC()
	staff := domain.Staff{
		StaffID:      uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
		FullName:     req.FullName,
		Email:        req.Email,
		DOB:          req.DOB,
		ManagerID:    managerID,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		return nil, err
	}

	logger.Info("Staff account created", slog.String("staff_id", staff.StaffID), slog.String("username", staff.Username))
	return &staff, nil
}

// CreateManager creates a manager account. Admin only.
func (s *staffService) CreateManager(ctx context.Context, actorID string, req dto.CreateManagerRequest) (*domain.Staff, error) {
	actor, err := s.staffRepo.FindStaffByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor lookup failed: %w", err)
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}

	if existing, err := s.staffRepo.FindStaffByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %q already taken", apperrors.ErrDuplicate, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("username lookup failed: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	manager := domain.Staff{
		StaffID:      uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         domain.RoleManager,
		FullName:     req.FullName,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.staffRepo.SaveStaff(ctx, manager); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Manager account created", slog.String("staff_id", manager.StaffID))
	return &manager, nil
}

// GetStaff retrieves one staff member, enforcing manager ownership.
func (s *staffService) GetStaff(ctx context.Context, actorID, staffID string) (*domain.Staff, error) {
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
	return target, nil
}

// ListStaff lists staff-role accounts visible to the actor. Managers see only
// the records they own, admins see everyone. Entries carry completed hours and
// last-offer timestamps so callers can sort on workload.
func (s *staffService) ListStaff(ctx context.Context, actorID string, params dto.ListStaffParams) ([]domain.StaffListEntry, error) {
	actor, err := s.requireManagerial(ctx, actorID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.ListStaffFilter{
		ActiveOnly:     params.Active,
		UsernameSearch: params.Q,
		Sort:           portsrepo.StaffSort(params.Sort),
	}
	if actor.Role == domain.RoleManager {
		filter.ManagerID = &actor.StaffID
	}
	return s.staffRepo.ListStaff(ctx, filter)
}

// SetStaffActive suspends or reactivates a staff account. Suspension blocks
// new offers to the account but leaves existing offers untouched.
func (s *staffService) SetStaffActive(ctx context.Context, actorID, staffID string, isActive bool) (*domain.Staff, error) {
	target, err := s.GetStaff(ctx, actorID, staffID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.staffRepo.SetStaffActive(ctx, staffID, isActive, actorID, now); err != nil {
		return nil, err
	}

	target.IsActive = isActive
	target.LastUpdatedAt = now
	target.LastUpdatedBy = actorID
	middleware.GetLoggerFromCtx(ctx).Info("Staff active flag updated",
		slog.String("staff_id", staffID), slog.Bool("is_active", isActive))
	return target, nil
}

// SetStaffAvailability replaces a staff member's availability document. The
// document is advisory for managers building rosters; it never blocks offers.
func (s *staffService) SetStaffAvailability(ctx context.Context, actorID, staffID string, availability domain.Availability) (*domain.Staff, error) {
	target, err := s.GetStaff(ctx, actorID, staffID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.staffRepo.UpdateAvailability(ctx, staffID, availability, actorID, now); err != nil {
		return nil, err
	}

	target.Availability = availability
	target.LastUpdatedAt = now
	target.LastUpdatedBy = actorID
	s.audit(ctx, actorID, "UPDATE_AVAILABILITY", "Staff", staffID, map[string]string{
		"days":     strings.Join(availability.Days, ","),
		"timeFrom": availability.TimeFrom,
		"timeTo":   availability.TimeTo,
	})
	middleware.GetLoggerFromCtx(ctx).Info("Staff availability updated", slog.String("staff_id", staffID))
	return target, nil
}

// UpdateFCMToken stores the acting user's own device push token. A nil token
// clears it.
func (s *staffService) UpdateFCMToken(ctx context.Context, actorID string, token *string) error {
	if _, err := s.staffRepo.FindStaffByID(ctx, actorID); err != nil {
		return err
	}
	return s.staffRepo.UpdateFCMToken(ctx, actorID, token, actorID, s.now().UTC())
}

// Authenticate verifies username/password and returns the account. Failures
// are indistinguishable between unknown user and wrong password.
func (s *staffService) Authenticate(ctx context.Context, username, password string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, staff.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !staff.IsActive {
		return nil, fmt.Errorf("%w: account suspended", apperrors.ErrForbidden)
	}
	return staff, nil
}

func (s *staffService) audit(ctx context.Context, actorID, action, targetType, targetID string, meta map[string]string) {
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

func (s *staffService) requireManagerial(ctx context.Context, actorID string) (*domain.Staff, error) {
	actor, err := s.staffRepo.FindStaffByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor lookup failed: %w", err)
	}
	if !actor.Role.IsManagerial() {
		return nil, fmt.Errorf("%w: manager or admin role required", apperrors.ErrForbidden)
	}
	return actor, nil
}
