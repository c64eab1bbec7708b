package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferStatus indicates where an offer sits in its approval lifecycle.
type OfferStatus string

const (
	StatusOffered          OfferStatus = "offered"
	StatusUserAccepted     OfferStatus = "user_accepted"
	StatusBookingConfirmed OfferStatus = "booking_confirmed"
	StatusCompleted        OfferStatus = "completed"
	StatusCancelled        OfferStatus = "cancelled"
	StatusRejected         OfferStatus = "rejected"
)

// OfferAction names a state-changing operation on an offer.
type OfferAction string

const (
	ActionAccept   OfferAction = "accept"   // staff, owner only
	ActionReject   OfferAction = "reject"   // staff while offered, manager/admin while user_accepted
	ActionApprove  OfferAction = "approve"  // manager/admin
	ActionCancel   OfferAction = "cancel"   // manager/admin
	ActionComplete OfferAction = "complete" // manager/admin, no hour computation
	ActionCheckout OfferAction = "checkout" // staff, owner only, computes hours
)

// CompletionMode distinguishes the two paths into StatusCompleted: an
// administrative mark-complete (timestamp only) and a staff checkout that
// computes hours from the scheduled start.
type CompletionMode string

const (
	CompletionAdministrative CompletionMode = "administrative"
	CompletionCheckout       CompletionMode = "checkout"
)

// offerTransitions is the canonical transition table. Any (status, action)
// pair not present here is an invalid transition.
var offerTransitions = map[OfferStatus]map[OfferAction]OfferStatus{
	StatusOffered: {
		ActionAccept: StatusUserAccepted,
		ActionReject: StatusRejected,
		ActionCancel: StatusCancelled,
	},
	StatusUserAccepted: {
		ActionApprove:  StatusBookingConfirmed,
		ActionReject:   StatusRejected,
		ActionCancel:   StatusCancelled,
		ActionComplete: StatusCompleted,
	},
	StatusBookingConfirmed: {
		ActionCancel:   StatusCancelled,
		ActionComplete: StatusCompleted,
		ActionCheckout: StatusCompleted,
	},
}

// NextStatus resolves the target status for an action applied to the given
// source status. The boolean is false when the transition is not allowed.
func NextStatus(from OfferStatus, action OfferAction) (OfferStatus, bool) {
	actions, ok := offerTransitions[from]
	if !ok {
		return "", false
	}
	to, ok := actions[action]
	return to, ok
}

// Editable reports whether the offer's placement fields may still be changed.
func (s OfferStatus) Editable() bool {
	return s == StatusOffered || s == StatusUserAccepted
}

// Terminal reports whether the status accepts no further transitions.
func (s OfferStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// ActiveOfferStatuses are the statuses that count as bookings for conflict
// detection: everything except cancelled and rejected.
var ActiveOfferStatuses = []OfferStatus{StatusOffered, StatusUserAccepted, StatusBookingConfirmed, StatusCompleted}

// DashboardCounts are the headline numbers for a manager's landing screen:
// the size of their staff pool and how many offers sit in each working state.
type DashboardCounts struct {
	StaffTotal             int `json:"staffTotal"`
	OffersOffered          int `json:"offersOffered"`
	OffersAwaitingDecision int `json:"offersAwaitingDecision"`
	OffersConfirmed        int `json:"offersConfirmed"`
	OffersCompleted        int `json:"offersCompleted"`
}

// Offer binds one staff member to one placement and carries the approval
// status plus the figures recorded on completion.
type Offer struct {
	OfferID     string      `json:"offerID"` // Primary Key (UUID)
	StaffID     string      `json:"staffID"`
	PlacementID string      `json:"placementID"`
	Status      OfferStatus `json:"status"`

	CancelReason string     `json:"cancelReason"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`

	// Checkout figures; nil until a staff checkout happens.
	CheckInAt   *time.Time       `json:"checkInAt,omitempty"`
	CheckOutAt  *time.Time       `json:"checkOutAt,omitempty"`
	HoursWorked *decimal.Decimal `json:"hoursWorked,omitempty"`
	PayAmount   *decimal.Decimal `json:"payAmount,omitempty"`

	AuditFields

	// Placement is populated by repository reads that join the owned
	// placement; nil on bare offer reads.
	Placement *Placement `json:"placement,omitempty"`
}
