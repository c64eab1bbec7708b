package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user lacks the role or ownership required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected storage or collaborator failure.
var ErrInternal = errors.New("internal error")

// ShiftConflict describes one existing booking that overlaps a candidate shift.
type ShiftConflict struct {
	OfferID   string `json:"offerId"`
	Status    string `json:"status"`
	Venue     string `json:"venue"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ConflictError is returned when a candidate shift overlaps existing active
// bookings for the same staff member. It carries the full conflict list so the
// caller can decide to retry with force=true.
type ConflictError struct {
	Conflicts []ShiftConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("staff already has %d overlapping booking(s) at the same time", len(e.Conflicts))
}

// InvalidTransitionError is returned when an offer action is attempted from a
// status that is not a valid source for that action.
type InvalidTransitionError struct {
	Action        string
	CurrentStatus string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s offer from status %q", e.Action, e.CurrentStatus)
}
