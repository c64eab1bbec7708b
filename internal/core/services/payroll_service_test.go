package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/core/services"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockOfferRepo *MockOfferRepository
	mockStaffRepo *MockStaffRepository
	service       portssvc.PayrollSvc

	manager domain.Staff
}

func (s *PayrollServiceTestSuite) SetupTest() {
	s.mockOfferRepo = new(MockOfferRepository)
	s.mockStaffRepo = new(MockStaffRepository)

	calendar := domain.PayPeriodCalendar{Periods: []domain.PayPeriod{
		{PayDate: "2026-01-30", From: "2026-01-01", To: "2026-01-28"},
		{PayDate: "2026-02-27", From: "2026-01-29", To: "2026-02-25"},
	}}
	s.service = services.NewPayrollService(s.mockOfferRepo, s.mockStaffRepo, calendar)

	s.manager = domain.Staff{StaffID: "mgr-1", Username: "boss", Role: domain.RoleManager, IsActive: true}
	s.mockStaffRepo.On("FindStaffByID", mock.Anything, s.manager.StaffID).Return(&s.manager, nil)
}

func completedShift(staffID, username, day string, hours, rate decimal.Decimal) domain.CompletedShift {
	return domain.CompletedShift{
		OfferID:   "off-" + day,
		StaffID:   staffID,
		Username:  username,
		Day:       day,
		Venue:     "The Crown",
		StartTime: "17:00",
		EndTime:   "21:00",
		Hours:     hours,
		Rate:      rate,
	}
}

func (s *PayrollServiceTestSuite) TestListPayrollRows_PlannedHoursBasis() {
	ctx := context.Background()
	from, to := "2026-02-01", "2026-02-07"

	shifts := []domain.CompletedShift{
		completedShift("stf-2", "zara", "2026-02-01", decimal.NewFromFloat(3.333), decimal.NewFromInt(10)),
		completedShift("stf-1", "alex", "2026-02-01", decimal.NewFromFloat(1.667), decimal.NewFromInt(10)),
	}
	s.mockOfferRepo.On("ListCompletedShifts", ctx, &from, &to, (*string)(nil)).Return(shifts, nil)

	rows, err := s.service.ListPayrollRows(ctx, s.manager.StaffID, &from, &to)

	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	// same day sorts by username
	s.Equal("alex", rows[0].Username)
	s.Equal("zara", rows[1].Username)
	s.True(rows[0].Pay.Equal(decimal.RequireFromString("16.67")), "pay = %s", rows[0].Pay)
	s.True(rows[1].Pay.Equal(decimal.RequireFromString("33.33")), "pay = %s", rows[1].Pay)
	s.True(rows[0].TotalHours.Equal(decimal.NewFromFloat(1.667)))
}

func (s *PayrollServiceTestSuite) TestListPayrollRows_StaffActorForbidden() {
	ctx := context.Background()
	staff := domain.Staff{StaffID: "stf-1", Role: domain.RoleStaff}
	s.mockStaffRepo.ExpectedCalls = nil
	s.mockStaffRepo.On("FindStaffByID", mock.Anything, "stf-1").Return(&staff, nil)

	_, err := s.service.ListPayrollRows(ctx, "stf-1", nil, nil)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockOfferRepo.AssertNotCalled(s.T(), "ListCompletedShifts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PayrollServiceTestSuite) TestPeriodSummary_TotalsPerStaff() {
	ctx := context.Background()
	from, to := "2026-01-29", "2026-02-25"

	shifts := []domain.CompletedShift{
		completedShift("stf-1", "alex", "2026-02-01", decimal.NewFromFloat(3.333), decimal.NewFromInt(10)),
		completedShift("stf-1", "alex", "2026-02-03", decimal.NewFromFloat(1.667), decimal.NewFromInt(10)),
		completedShift("stf-2", "zara", "2026-02-04", decimal.NewFromInt(8), decimal.NewFromFloat(12.5)),
	}
	s.mockOfferRepo.On("ListCompletedShifts", ctx, &from, &to, (*string)(nil)).Return(shifts, nil)

	summary, err := s.service.PeriodSummary(ctx, s.manager.StaffID, "2026-02-27")

	s.Require().NoError(err)
	s.Equal("2026-02-27", summary.Period.PayDate)
	s.Require().Len(summary.Staff, 2)

	alex := summary.Staff[0]
	s.Equal("alex", alex.Username)
	s.True(alex.TotalHours.Equal(decimal.NewFromInt(5)), "hours = %s", alex.TotalHours)
	s.True(alex.TotalPay.Equal(decimal.NewFromInt(50)), "pay = %s", alex.TotalPay)

	zara := summary.Staff[1]
	s.True(zara.TotalPay.Equal(decimal.NewFromInt(100)))
}

// Rounding happens once over the raw sum, so per-shift rounding error cannot
// accumulate: three 0.3333h shifts at rate 10 pay 10.00, not 3×3.33 = 9.99.
func (s *PayrollServiceTestSuite) TestPeriodSummary_RoundsOnceAtEnd() {
	ctx := context.Background()
	from, to := "2026-01-29", "2026-02-25"

	tinyHours := decimal.RequireFromString("0.3333")
	shifts := []domain.CompletedShift{
		completedShift("stf-1", "alex", "2026-02-01", tinyHours, decimal.NewFromInt(10)),
		completedShift("stf-1", "alex", "2026-02-02", tinyHours, decimal.NewFromInt(10)),
		completedShift("stf-1", "alex", "2026-02-03", tinyHours, decimal.NewFromInt(10)),
	}
	s.mockOfferRepo.On("ListCompletedShifts", ctx, &from, &to, (*string)(nil)).Return(shifts, nil)

	summary, err := s.service.PeriodSummary(ctx, s.manager.StaffID, "2026-02-27")

	s.Require().NoError(err)
	s.Require().Len(summary.Staff, 1)
	s.True(summary.Staff[0].TotalPay.Equal(decimal.RequireFromString("10.00")), "pay = %s", summary.Staff[0].TotalPay)
	s.True(summary.Staff[0].TotalHours.Equal(decimal.RequireFromString("1.00")), "hours = %s", summary.Staff[0].TotalHours)
}

func (s *PayrollServiceTestSuite) TestPeriodSummary_UnknownPayDate() {
	ctx := context.Background()

	_, err := s.service.PeriodSummary(ctx, s.manager.StaffID, "2026-12-25")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockOfferRepo.AssertNotCalled(s.T(), "ListCompletedShifts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PayrollServiceTestSuite) TestPeriodStaffDetail_ShiftsBehindTotal() {
	ctx := context.Background()
	from, to := "2026-01-29", "2026-02-25"
	staffID := "stf-1"
	staff := domain.Staff{StaffID: staffID, Username: "alex", Role: domain.RoleStaff}

	s.mockStaffRepo.On("FindStaffByUsername", ctx, "alex").Return(&staff, nil)
	shifts := []domain.CompletedShift{
		completedShift(staffID, "alex", "2026-02-01", decimal.NewFromFloat(4.5), decimal.NewFromInt(12)),
	}
	s.mockOfferRepo.On("ListCompletedShifts", ctx, &from, &to, &staffID).Return(shifts, nil)

	detail, err := s.service.PeriodStaffDetail(ctx, s.manager.StaffID, "2026-02-27", "alex")

	s.Require().NoError(err)
	s.Equal("alex", detail.Username)
	s.Require().Len(detail.Shifts, 1)
	s.Equal("2026-02-01", detail.Shifts[0].Date)
	s.True(detail.Shifts[0].Pay.Equal(decimal.NewFromInt(54)), "pay = %s", detail.Shifts[0].Pay)
}

func (s *PayrollServiceTestSuite) TestStaffStats_LifetimeTotals() {
	ctx := context.Background()
	staffID := "stf-1"

	shifts := []domain.CompletedShift{
		completedShift(staffID, "alex", "2026-01-05", decimal.NewFromInt(4), decimal.NewFromInt(10)),
		completedShift(staffID, "alex", "2026-02-01", decimal.NewFromFloat(4.5), decimal.NewFromInt(12)),
	}
	s.mockOfferRepo.On("ListCompletedShifts", ctx, (*string)(nil), (*string)(nil), &staffID).Return(shifts, nil)

	stats, err := s.service.StaffStats(ctx, s.manager.StaffID, staffID)

	s.Require().NoError(err)
	s.Equal(2, stats.TotalJobsWorked)
	s.True(stats.TotalHoursWorked.Equal(decimal.NewFromFloat(8.5)))
	s.True(stats.TotalEarnings.Equal(decimal.NewFromInt(94)), "earnings = %s", stats.TotalEarnings)
}

func (s *PayrollServiceTestSuite) TestListPayPeriods() {
	ctx := context.Background()

	periods, err := s.service.ListPayPeriods(ctx, s.manager.StaffID)

	s.Require().NoError(err)
	s.Len(periods, 2)
	s.Equal("2026-01-30", periods[0].PayDate)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
