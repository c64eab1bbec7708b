package repositories

import (
	"context"
	"time"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
)

// StaffSort selects the ordering of a staff listing.
type StaffSort string

const (
	SortByUsername StaffSort = ""        // default
	SortByHours    StaffSort = "hours"   // completed hours, descending
	SortByLastJob  StaffSort = "lastJob" // most recent offer, descending
)

// ListStaffFilter narrows staff listings. A nil ManagerID means no ownership
// scoping (admin view).
type ListStaffFilter struct {
	ManagerID      *string
	ActiveOnly     *bool
	UsernameSearch string
	Sort           StaffSort
}

// StaffReader defines read operations for staff data.
type StaffReader interface {
	// FindStaffByID retrieves a specific staff member by ID.
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)

	// FindStaffByUsername retrieves a staff member by their unique username.
	FindStaffByUsername(ctx context.Context, username string) (*domain.Staff, error)

	// ListStaff retrieves staff-role records matching the filter, each
	// enriched with completed hours and the most recent offer timestamp.
	ListStaff(ctx context.Context, filter ListStaffFilter) ([]domain.StaffListEntry, error)
}

// StaffWriter defines write operations for staff data.
type StaffWriter interface {
	// SaveStaff persists a new staff member.
	SaveStaff(ctx context.Context, staff domain.Staff) error

	// SetStaffActive suspends or reactivates a staff member.
	SetStaffActive(ctx context.Context, staffID string, isActive bool, updatedBy string, updatedAt time.Time) error

	// UpdateAvailability replaces a staff member's availability document.
	UpdateAvailability(ctx context.Context, staffID string, availability domain.Availability, updatedBy string, updatedAt time.Time) error

	// UpdateFCMToken stores the device push token for a staff member.
	UpdateFCMToken(ctx context.Context, staffID string, token *string, updatedBy string, updatedAt time.Time) error
}

// StaffRepositoryFacade combines all staff repository interfaces.
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
