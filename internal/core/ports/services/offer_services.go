package services

import (
	"context"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	"github.com/rotaworks/shift_roster_app/internal/dto"
)

// OfferLifecycleSvc covers every state-changing operation on an offer. All
// operations authorize against the acting user and enforce the offer state
// machine; invalid transitions surface as *apperrors.InvalidTransitionError.
type OfferLifecycleSvc interface {
	// CreateOffer normalizes the candidate shift, runs conflict detection
	// against the target staff member's active offers and, when clear (or
	// forced), creates the placement and offer atomically.
	CreateOffer(ctx context.Context, actorID string, req dto.CreateOfferRequest) (*domain.Offer, error)

	// RespondToOffer is the owning staff member's accept/reject.
	RespondToOffer(ctx context.Context, offerID, actorID string, action domain.OfferAction) (*domain.Offer, error)

	// DecideOffer is the manager approve/reject of a user-accepted offer.
	DecideOffer(ctx context.Context, offerID, actorID string, action domain.OfferAction) (*domain.Offer, error)

	// CompleteOffer is the administrative completion path: it stamps
	// completedAt without computing hours.
	CompleteOffer(ctx context.Context, offerID, actorID string) (*domain.Offer, error)

	// CheckoutOffer is the staff completion path: it computes worked hours
	// and pay from the scheduled shift start, never from a check-in action.
	CheckoutOffer(ctx context.Context, offerID, actorID string) (*domain.Offer, error)

	// CancelOffer cancels a not-yet-completed offer with a reason.
	CancelOffer(ctx context.Context, offerID, actorID, reason string) (*domain.Offer, error)

	// EditOfferPlacement patches placement fields while the offer is editable.
	EditOfferPlacement(ctx context.Context, offerID, actorID string, patch dto.PlacementPatch) (*domain.Placement, error)

	// DeleteOffer removes a non-completed offer and its placement.
	DeleteOffer(ctx context.Context, offerID, actorID string) error
}

// OfferReaderSvc covers offer listings.
type OfferReaderSvc interface {
	// ListMyOffers returns the acting staff member's own offers.
	ListMyOffers(ctx context.Context, actorID string, status *domain.OfferStatus) ([]domain.Offer, error)

	// ListOffersForStaff returns one staff member's offer history for a
	// manager or admin.
	ListOffersForStaff(ctx context.Context, actorID, staffID string) ([]domain.Offer, error)

	// ListPendingConfirmations returns user-accepted offers awaiting a
	// decision, scoped to the acting manager's staff.
	ListPendingConfirmations(ctx context.Context, actorID string) ([]domain.Offer, error)

	// ListSchedule returns non-cancelled offers in the inclusive day window.
	ListSchedule(ctx context.Context, actorID, fromDay, toDay string) ([]domain.Offer, error)

	// Dashboard returns staff and per-status offer counts, scoped to the
	// acting manager's staff.
	Dashboard(ctx context.Context, actorID string) (*domain.DashboardCounts, error)
}

// OfferSvcFacade combines all offer service interfaces.
type OfferSvcFacade interface {
	OfferLifecycleSvc
	OfferReaderSvc
}
