package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portsrepo "github.com/rotaworks/shift_roster_app/internal/core/ports/repositories"
	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
)

// payrollService aggregates completed offers into payroll figures. Pay is
// always planned hours times rate; the hours captured at checkout are an
// attendance record, not a payroll input.
type payrollService struct {
	offerRepo portsrepo.OfferRepositoryFacade
	staffRepo portsrepo.StaffRepositoryFacade
	calendar  domain.PayPeriodCalendar
}

// NewPayrollService creates a new payroll service over the given pay-period
// calendar.
func NewPayrollService(offerRepo portsrepo.OfferRepositoryFacade, staffRepo portsrepo.StaffRepositoryFacade, calendar domain.PayPeriodCalendar) portssvc.PayrollSvc {
	return &payrollService{
		offerRepo: offerRepo,
		staffRepo: staffRepo,
		calendar:  calendar,
	}
}

var _ portssvc.PayrollSvc = (*payrollService)(nil)

// ListPayrollRows returns one row per completed offer inside the optional
// inclusive date bounds, ordered by date then username.
func (s *payrollService) ListPayrollRows(ctx context.Context, actorID string, fromDay, toDay *string) ([]domain.PayrollRow, error) {
	if err := s.requireManagerial(ctx, actorID); err != nil {
		return nil, err
	}

	shifts, err := s.offerRepo.ListCompletedShifts(ctx, fromDay, toDay, nil)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.PayrollRow, 0, len(shifts))
	for _, shift := range shifts {
		rows = append(rows, domain.PayrollRow{
			StaffID:    shift.StaffID,
			Username:   shift.Username,
			Date:       shift.Day,
			Venue:      shift.Venue,
			TotalHours: shift.Hours,
			HourlyRate: shift.Rate,
			Pay:        shift.Hours.Mul(shift.Rate).Round(2),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Username < rows[j].Username
	})
	return rows, nil
}

// ListPayPeriods returns the configured pay-period calendar.
func (s *payrollService) ListPayPeriods(ctx context.Context, actorID string) ([]domain.PayPeriod, error) {
	if err := s.requireManagerial(ctx, actorID); err != nil {
		return nil, err
	}
	return s.calendar.Periods, nil
}

// PeriodSummary aggregates completed shifts in the pay period's window into
// per-staff totals. Raw figures accumulate unrounded; rounding happens once,
// at the end of summation, so many small shifts cannot drift the total.
func (s *payrollService) PeriodSummary(ctx context.Context, actorID, payDate string) (*domain.PeriodSummary, error) {
	if err := s.requireManagerial(ctx, actorID); err != nil {
		return nil, err
	}

	period, ok := s.calendar.Find(payDate)
	if !ok {
		return nil, fmt.Errorf("%w: no pay period with pay date %q", apperrors.ErrNotFound, payDate)
	}

	shifts, err := s.offerRepo.ListCompletedShifts(ctx, &period.From, &period.To, nil)
	if err != nil {
		return nil, err
	}

	type accum struct {
		hours decimal.Decimal
		pay   decimal.Decimal
	}
	totals := make(map[string]*accum)
	for _, shift := range shifts {
		a, ok := totals[shift.Username]
		if !ok {
			a = &accum{}
			totals[shift.Username] = a
		}
		a.hours = a.hours.Add(shift.Hours)
		a.pay = a.pay.Add(shift.Hours.Mul(shift.Rate))
	}

	staff := make([]domain.PeriodStaffTotal, 0, len(totals))
	for username, a := range totals {
		staff = append(staff, domain.PeriodStaffTotal{
			Username:   username,
			TotalHours: a.hours.Round(2),
			TotalPay:   a.pay.Round(2),
		})
	}
	sort.Slice(staff, func(i, j int) bool { return staff[i].Username < staff[j].Username })

	return &domain.PeriodSummary{Period: period, Staff: staff}, nil
}

// PeriodStaffDetail returns the individual shifts behind one staff member's
// period total.
func (s *payrollService) PeriodStaffDetail(ctx context.Context, actorID, payDate, username string) (*domain.PeriodStaffDetail, error) {
	if err := s.requireManagerial(ctx, actorID); err != nil {
		return nil, err
	}

	period, ok := s.calendar.Find(payDate)
	if !ok {
		return nil, fmt.Errorf("%w: no pay period with pay date %q", apperrors.ErrNotFound, payDate)
	}

	staff, err := s.staffRepo.FindStaffByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	shifts, err := s.offerRepo.ListCompletedShifts(ctx, &period.From, &period.To, &staff.StaffID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.StaffShiftRow, 0, len(shifts))
	for _, shift := range shifts {
		rows = append(rows, domain.StaffShiftRow{
			Date:      shift.Day,
			Venue:     shift.Venue,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			Hours:     shift.Hours,
			Rate:      shift.Rate,
			Pay:       shift.Hours.Mul(shift.Rate).Round(2),
		})
	}

	return &domain.PeriodStaffDetail{Period: period, Username: staff.Username, Shifts: rows}, nil
}

// StaffStats returns lifetime completed-shift figures for one staff member.
func (s *payrollService) StaffStats(ctx context.Context, actorID, staffID string) (*domain.StaffStats, error) {
	if err := s.requireManagerial(ctx, actorID); err != nil {
		return nil, err
	}

	shifts, err := s.offerRepo.ListCompletedShifts(ctx, nil, nil, &staffID)
	if err != nil {
		return nil, err
	}

	var hours, earnings decimal.Decimal
	for _, shift := range shifts {
		hours = hours.Add(shift.Hours)
		earnings = earnings.Add(shift.Hours.Mul(shift.Rate))
	}
	return &domain.StaffStats{
		TotalJobsWorked:  len(shifts),
		TotalHoursWorked: hours.Round(2),
		TotalEarnings:    earnings.Round(2),
	}, nil
}

func (s *payrollService) requireManagerial(ctx context.Context, actorID string) error {
	actor, err := s.staffRepo.FindStaffByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("actor lookup failed: %w", err)
	}
	if !actor.Role.IsManagerial() {
		return fmt.Errorf("%w: manager or admin role required", apperrors.ErrForbidden)
	}
	return nil
}
