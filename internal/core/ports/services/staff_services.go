package services

import (
	"context"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	"github.com/rotaworks/shift_roster_app/internal/dto"
)

// StaffReaderSvc defines read operations for staff accounts.
type StaffReaderSvc interface {
	// GetStaff retrieves one staff member, enforcing manager ownership.
	GetStaff(ctx context.Context, actorID, staffID string) (*domain.Staff, error)

	// ListStaff lists staff-role accounts visible to the actor, enriched
	// with completed hours and last-offer figures, optionally sorted by them.
	ListStaff(ctx context.Context, actorID string, params dto.ListStaffParams) ([]domain.StaffListEntry, error)
}

// StaffWriterSvc defines write operations for staff accounts.
type StaffWriterSvc interface {
	// CreateStaff creates a staff account owned by the acting manager/admin.
	CreateStaff(ctx context.Context, actorID string, req dto.CreateStaffRequest) (*domain.Staff, error)

	// CreateManager creates a manager account (admin only).
	CreateManager(ctx context.Context, actorID string, req dto.CreateManagerRequest) (*domain.Staff, error)

	// SetStaffActive suspends or reactivates a staff account.
	SetStaffActive(ctx context.Context, actorID, staffID string, isActive bool) (*domain.Staff, error)

	// SetStaffAvailability replaces a staff member's availability document.
	SetStaffAvailability(ctx context.Context, actorID, staffID string, availability domain.Availability) (*domain.Staff, error)

	// UpdateFCMToken stores the acting user's own device push token.
	UpdateFCMToken(ctx context.Context, actorID string, token *string) error
}

// StaffAuthSvc authenticates credentials.
type StaffAuthSvc interface {
	// Authenticate verifies username/password and returns the account.
	Authenticate(ctx context.Context, username, password string) (*domain.Staff, error)
}

// StaffSvcFacade combines all staff service interfaces.
type StaffSvcFacade interface {
	StaffReaderSvc
	StaffWriterSvc
	StaffAuthSvc
}
