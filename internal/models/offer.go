package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is the offers table row. Checkout columns stay NULL until a staff
// checkout happens.
type Offer struct {
	OfferID      string     `db:"offer_id"`
	StaffID      string     `db:"staff_id"`
	PlacementID  string     `db:"placement_id"`
	Status       string     `db:"status"`
	CancelReason string     `db:"cancel_reason"`
	CancelledAt  *time.Time `db:"cancelled_at"`
	CompletedAt  *time.Time `db:"completed_at"`

	CheckInAt   *time.Time       `db:"check_in_at"`
	CheckOutAt  *time.Time       `db:"check_out_at"`
	HoursWorked *decimal.Decimal `db:"hours_worked"`
	PayAmount   *decimal.Decimal `db:"pay_amount"`

	AuditFields
}
