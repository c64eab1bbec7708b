package repositories

import (
	"context"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
)

// OfferReader defines read operations for offers. Reads that return offers
// populate Offer.Placement via a join.
type OfferReader interface {
	// FindOfferByID retrieves one offer with its placement.
	FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error)

	// ListOffersByStaff retrieves a staff member's offers, newest first,
	// optionally filtered to the given statuses. limit bounds the scan.
	ListOffersByStaff(ctx context.Context, staffID string, statuses []domain.OfferStatus, limit int) ([]domain.Offer, error)

	// ListOffersByStatus retrieves offers in one status, newest first. A
	// non-nil managerID restricts results to that manager's staff.
	ListOffersByStatus(ctx context.Context, status domain.OfferStatus, managerID *string) ([]domain.Offer, error)

	// ListScheduleRange retrieves non-cancelled offers whose placement date
	// falls inside the inclusive ISO day window.
	ListScheduleRange(ctx context.Context, fromDay, toDay string) ([]domain.Offer, error)

	// ListCompletedShifts retrieves the payroll read model for completed
	// offers, optionally bounded by inclusive ISO days (nil means open), and
	// optionally filtered to one staff member. Rows are ordered by day.
	ListCompletedShifts(ctx context.Context, fromDay, toDay *string, staffID *string) ([]domain.CompletedShift, error)

	// DashboardCounts retrieves staff and per-status offer totals. A non-nil
	// managerID restricts the counts to that manager's staff.
	DashboardCounts(ctx context.Context, managerID *string) (domain.DashboardCounts, error)
}

// OfferWriter defines write operations for offers and their placements.
type OfferWriter interface {
	// SavePlacementAndOffer persists a new placement and its owning offer.
	SavePlacementAndOffer(ctx context.Context, placement domain.Placement, offer domain.Offer) error

	// UpdateOfferStatus applies a status transition with a compare-and-set on
	// the expected source statuses, writing the offer's status and completion
	// or cancellation fields. It returns false when the offer's stored status
	// no longer matches any expected status (a lost race or stale read).
	UpdateOfferStatus(ctx context.Context, offer domain.Offer, expected []domain.OfferStatus) (bool, error)

	// UpdatePlacement updates an existing placement's shift fields.
	UpdatePlacement(ctx context.Context, placement domain.Placement) error

	// DeleteOfferCascade removes the offer and its owned placement in one
	// transaction.
	DeleteOfferCascade(ctx context.Context, offerID, placementID string) error
}

// OfferRepositoryFacade combines offer read and write operations.
type OfferRepositoryFacade interface {
	OfferReader
	OfferWriter
}

// OfferRepositoryWithLock adds a per-staff serialization point around the
// conflict-scan-then-create sequence. The facade handed to fn executes every
// operation inside one transaction that holds an advisory lock scoped to the
// staff member, so two concurrent offer creations for the same staff cannot
// interleave between the scan and the insert.
type OfferRepositoryWithLock interface {
	OfferRepositoryFacade

	WithStaffLock(ctx context.Context, staffID string, fn func(txRepo OfferRepositoryFacade) error) error
}
