package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement is the placements table row.
type Placement struct {
	PlacementID string          `db:"placement_id"`
	Venue       string          `db:"venue"`
	RoleTitle   string          `db:"role_title"`
	Date        time.Time       `db:"shift_date"`
	StartTime   string          `db:"start_time"`
	EndTime     string          `db:"end_time"`
	HourlyRate  decimal.Decimal `db:"hourly_rate"`
	TotalHours  decimal.Decimal `db:"total_hours"`
	AddressLine string          `db:"address_line"`
	City        string          `db:"city"`
	Postcode    string          `db:"postcode"`
	Notes       string          `db:"notes"`
	AuditFields
}
