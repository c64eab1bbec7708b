package dto

import (
	"time"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStaffRequest creates a staff account owned by the acting manager.
type CreateStaffRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"omitempty,email"`
	DOB      string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
}

// CreateManagerRequest creates a manager account (admin only).
type CreateManagerRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
}

// ListStaffParams are the query parameters for staff listings.
type ListStaffParams struct {
	Q      string `form:"q"`
	Active *bool  `form:"active"`
	Sort   string `form:"sort" binding:"omitempty,oneof=hours lastJob"`
}

// AvailabilityPayload is the staff availability document: recurring weekday
// and time-of-day preferences plus specific blocked dates.
type AvailabilityPayload struct {
	Days             []string `json:"days" binding:"omitempty,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	TimeFrom         string   `json:"timeFrom" binding:"omitempty,clock"`
	TimeTo           string   `json:"timeTo" binding:"omitempty,clock"`
	UnavailableDates []string `json:"unavailableDates" binding:"omitempty,dive,datetime=2006-01-02"`
}

// UpdateAvailabilityRequest replaces a staff member's availability document.
type UpdateAvailabilityRequest struct {
	Availability AvailabilityPayload `json:"availability"`
}

// ToDomain converts the payload to its domain form.
func (p AvailabilityPayload) ToDomain() domain.Availability {
	return domain.Availability{
		Days:             p.Days,
		TimeFrom:         p.TimeFrom,
		TimeTo:           p.TimeTo,
		UnavailableDates: p.UnavailableDates,
	}
}

// SetStaffActiveRequest suspends or reactivates a staff account.
type SetStaffActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UpdateFCMTokenRequest stores or clears the caller's device push token.
type UpdateFCMTokenRequest struct {
	Token *string `json:"token"`
}

// StaffResponse is the API representation of a staff member.
type StaffResponse struct {
	StaffID      string              `json:"staffID"`
	Username     string              `json:"username"`
	Role         string              `json:"role"`
	FullName     string              `json:"fullName"`
	Email        string              `json:"email"`
	DOB          string              `json:"dob"`
	ManagerID    *string             `json:"managerID,omitempty"`
	IsActive     bool                `json:"isActive"`
	Availability AvailabilityPayload `json:"availability"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// StaffListItemResponse is a staff listing row enriched with the workload
// figures the list can be sorted on.
type StaffListItemResponse struct {
	StaffResponse
	TotalHoursWorked decimal.Decimal `json:"totalHoursWorked"`
	LastJobAt        *time.Time      `json:"lastJobAt,omitempty"`
}

// StaffDetailResponse is a staff profile enriched with lifetime shift stats.
type StaffDetailResponse struct {
	StaffResponse
	domain.StaffStats
}

// ToStaffResponse converts a domain.Staff to its API representation.
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:   s.StaffID,
		Username:  s.Username,
		Role:      string(s.Role),
		FullName:  s.FullName,
		Email:     s.Email,
		DOB:       s.DOB,
		ManagerID: s.ManagerID,
		IsActive:  s.IsActive,
		Availability: AvailabilityPayload{
			Days:             s.Availability.Days,
			TimeFrom:         s.Availability.TimeFrom,
			TimeTo:           s.Availability.TimeTo,
			UnavailableDates: s.Availability.UnavailableDates,
		},
		CreatedAt: s.CreatedAt,
	}
}

// ToStaffListResponses converts enriched staff listing entries.
func ToStaffListResponses(entries []domain.StaffListEntry) []StaffListItemResponse {
	out := make([]StaffListItemResponse, len(entries))
	for i := range entries {
		out[i] = StaffListItemResponse{
			StaffResponse:    ToStaffResponse(&entries[i].Staff),
			TotalHoursWorked: entries[i].TotalHoursWorked,
			LastJobAt:        entries[i].LastJobAt,
		}
	}
	return out
}
