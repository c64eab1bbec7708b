package services

import (
	"context"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
)

// PayrollSvc aggregates completed offers into payroll figures. All operations
// require a manager or admin actor.
type PayrollSvc interface {
	// ListPayrollRows returns one row per completed offer whose placement
	// date falls inside the optional inclusive bounds.
	ListPayrollRows(ctx context.Context, actorID string, fromDay, toDay *string) ([]domain.PayrollRow, error)

	// ListPayPeriods returns the configured pay-period calendar.
	ListPayPeriods(ctx context.Context, actorID string) ([]domain.PayPeriod, error)

	// PeriodSummary aggregates completed offers in the pay period's window
	// into per-staff totals, rounded once at the end of summation.
	PeriodSummary(ctx context.Context, actorID, payDate string) (*domain.PeriodSummary, error)

	// PeriodStaffDetail returns the individual shifts behind one staff
	// member's period total.
	PeriodStaffDetail(ctx context.Context, actorID, payDate, username string) (*domain.PeriodStaffDetail, error)

	// StaffStats returns lifetime completed-shift figures for one staff
	// member.
	StaffStats(ctx context.Context, actorID, staffID string) (*domain.StaffStats, error)
}
