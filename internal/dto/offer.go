package dto

import (
	"time"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlacementPayload carries the shift fields for offer creation. StartTime and
// EndTime use the custom "clock" validation (HH:MM, 24h).
type PlacementPayload struct {
	Venue       string          `json:"venue" binding:"required"`
	RoleTitle   string          `json:"roleTitle" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string          `json:"startTime" binding:"required,clock"`
	EndTime     string          `json:"endTime" binding:"required,clock"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	AddressLine string          `json:"addressLine"`
	City        string          `json:"city"`
	Postcode    string          `json:"postcode"`
	Notes       string          `json:"notes"`
}

// CreateOfferRequest sends a shift offer to one staff member. Force skips the
// conflict check and deliberately double-books.
type CreateOfferRequest struct {
	StaffID   string           `json:"staffId" binding:"required"`
	Force     bool             `json:"force"`
	Placement PlacementPayload `json:"placement" binding:"required"`
}

// RespondToOfferRequest is the staff accept/reject action.
type RespondToOfferRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// DecideOfferRequest is the manager approve/reject decision.
type DecideOfferRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// CancelOfferRequest cancels an offer with an optional reason.
type CancelOfferRequest struct {
	Reason string `json:"reason"`
}

// PlacementPatch updates a subset of placement fields while the offer is
// still editable. Pointer fields distinguish omitted from zero values.
type PlacementPatch struct {
	Venue       *string          `json:"venue"`
	RoleTitle   *string          `json:"roleTitle"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string          `json:"startTime" binding:"omitempty,clock"`
	EndTime     *string          `json:"endTime" binding:"omitempty,clock"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	TotalHours  *decimal.Decimal `json:"totalHours"`
	AddressLine *string          `json:"addressLine"`
	City        *string          `json:"city"`
	Postcode    *string          `json:"postcode"`
	Notes       *string          `json:"notes"`
}

// StatusResponse reports the offer status after a transition.
type StatusResponse struct {
	Status string `json:"status"`
}

// CheckoutResponse reports the computed figures after a staff checkout.
type CheckoutResponse struct {
	Status string          `json:"status"`
	Hours  decimal.Decimal `json:"hours"`
	Pay    decimal.Decimal `json:"pay"`
}

// ListOffersParams filters offer listings by status.
type ListOffersParams struct {
	Status string `form:"status" binding:"omitempty,oneof=offered user_accepted booking_confirmed completed cancelled rejected"`
}

// ScheduleParams bound the calendar window.
type ScheduleParams struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// PlacementResponse is the API representation of a placement.
type PlacementResponse struct {
	PlacementID string          `json:"placementID"`
	Venue       string          `json:"venue"`
	RoleTitle   string          `json:"roleTitle"`
	Date        string          `json:"date"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	AddressLine string          `json:"addressLine"`
	City        string          `json:"city"`
	Postcode    string          `json:"postcode"`
	Notes       string          `json:"notes"`
}

// OfferResponse is the API representation of an offer with its placement.
type OfferResponse struct {
	OfferID      string             `json:"offerID"`
	StaffID      string             `json:"staffID"`
	Status       string             `json:"status"`
	CancelReason string             `json:"cancelReason,omitempty"`
	CancelledAt  *time.Time         `json:"cancelledAt,omitempty"`
	CompletedAt  *time.Time         `json:"completedAt,omitempty"`
	CheckInAt    *time.Time         `json:"checkInAt,omitempty"`
	CheckOutAt   *time.Time         `json:"checkOutAt,omitempty"`
	HoursWorked  *decimal.Decimal   `json:"hoursWorked,omitempty"`
	PayAmount    *decimal.Decimal   `json:"payAmount,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	Placement    *PlacementResponse `json:"placement,omitempty"`
}

// ToPlacementResponse converts a domain.Placement.
func ToPlacementResponse(p *domain.Placement) *PlacementResponse {
	if p == nil {
		return nil
	}
	return &PlacementResponse{
		PlacementID: p.PlacementID,
		Venue:       p.Venue,
		RoleTitle:   p.RoleTitle,
		Date:        p.DayKey(),
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		HourlyRate:  p.HourlyRate,
		TotalHours:  p.TotalHours,
		AddressLine: p.AddressLine,
		City:        p.City,
		Postcode:    p.Postcode,
		Notes:       p.Notes,
	}
}

// ToOfferResponse converts a domain.Offer with its joined placement.
func ToOfferResponse(o *domain.Offer) OfferResponse {
	return OfferResponse{
		OfferID:      o.OfferID,
		StaffID:      o.StaffID,
		Status:       string(o.Status),
		CancelReason: o.CancelReason,
		CancelledAt:  o.CancelledAt,
		CompletedAt:  o.CompletedAt,
		CheckInAt:    o.CheckInAt,
		CheckOutAt:   o.CheckOutAt,
		HoursWorked:  o.HoursWorked,
		PayAmount:    o.PayAmount,
		CreatedAt:    o.CreatedAt,
		Placement:    ToPlacementResponse(o.Placement),
	}
}

// ToOfferResponses converts a slice of domain.Offer.
func ToOfferResponses(offers []domain.Offer) []OfferResponse {
	out := make([]OfferResponse, len(offers))
	for i := range offers {
		out[i] = ToOfferResponse(&offers[i])
	}
	return out
}
