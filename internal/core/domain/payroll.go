package domain

import (
	"github.com/shopspring/decimal"
)

// PayPeriod is one externally configured payroll window. Bounds are inclusive
// ISO dates; periods come from configuration and are read-only here.
type PayPeriod struct {
	PayDate string `json:"payDate"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// Contains reports whether the ISO day falls inside the period's inclusive
// bounds. ISO date strings compare correctly as plain strings.
func (p PayPeriod) Contains(isoDay string) bool {
	return isoDay >= p.From && isoDay <= p.To
}

// PayPeriodCalendar is the ordered pay-period list injected from
// configuration.
type PayPeriodCalendar struct {
	Periods []PayPeriod
}

// Find returns the period with the given pay date, if configured.
func (c PayPeriodCalendar) Find(payDate string) (PayPeriod, bool) {
	for _, p := range c.Periods {
		if p.PayDate == payDate {
			return p, true
		}
	}
	return PayPeriod{}, false
}

// CompletedShift is the payroll read model: one completed offer joined with
// its placement and the staff member's username. Hours are the placement's
// planned hours.
type CompletedShift struct {
	OfferID   string
	StaffID   string
	Username  string
	Day       string // ISO YYYY-MM-DD placement date
	Venue     string
	StartTime string
	EndTime   string
	Hours     decimal.Decimal
	Rate      decimal.Decimal
}

// PayrollRow is one completed shift in a date-range payroll report.
type PayrollRow struct {
	StaffID    string          `json:"staffId"`
	Username   string          `json:"username"`
	Date       string          `json:"date"`
	Venue      string          `json:"venue"`
	TotalHours decimal.Decimal `json:"totalHours"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	Pay        decimal.Decimal `json:"pay"`
}

// PeriodStaffTotal is one staff member's aggregate within a pay period.
// Totals are rounded once, at the end of summation.
type PeriodStaffTotal struct {
	Username   string          `json:"username"`
	TotalHours decimal.Decimal `json:"totalHours"`
	TotalPay   decimal.Decimal `json:"totalPay"`
}

// PeriodSummary is the aggregate payroll for one pay period.
type PeriodSummary struct {
	Period PayPeriod          `json:"period"`
	Staff  []PeriodStaffTotal `json:"staff"`
}

// StaffShiftRow is one completed shift in a per-staff pay period drill-down.
type StaffShiftRow struct {
	Date      string          `json:"date"`
	Venue     string          `json:"venue"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Hours     decimal.Decimal `json:"hours"`
	Rate      decimal.Decimal `json:"rate"`
	Pay       decimal.Decimal `json:"pay"`
}

// PeriodStaffDetail is the drill-down for one staff member in one pay period.
type PeriodStaffDetail struct {
	Period   PayPeriod       `json:"period"`
	Username string          `json:"username"`
	Shifts   []StaffShiftRow `json:"shifts"`
}

// StaffStats are lifetime figures over a staff member's completed shifts.
type StaffStats struct {
	TotalJobsWorked  int             `json:"totalJobsWorked"`
	TotalHoursWorked decimal.Decimal `json:"totalHoursWorked"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
}
