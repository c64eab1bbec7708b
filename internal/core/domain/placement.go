package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement is one concrete shift instance: where, when and at what rate. It
// is created together with its owning Offer and never shared across offers.
type Placement struct {
	PlacementID string          `json:"placementID"` // Primary Key (UUID)
	Venue       string          `json:"venue"`
	RoleTitle   string          `json:"roleTitle"`
	Date        time.Time       `json:"date"`
	StartTime   string          `json:"startTime"` // "HH:MM"
	EndTime     string          `json:"endTime"`   // "HH:MM"
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	TotalHours  decimal.Decimal `json:"totalHours"` // Planned hours, the payroll basis
	AddressLine string          `json:"addressLine"`
	City        string          `json:"city"`
	Postcode    string          `json:"postcode"`
	Notes       string          `json:"notes"`
	AuditFields
}

// DayKey returns the placement date as an ISO YYYY-MM-DD string.
func (p Placement) DayKey() string {
	return p.Date.Format("2006-01-02")
}
