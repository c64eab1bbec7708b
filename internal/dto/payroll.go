package dto

// ListPayrollParams bound the arbitrary-range payroll report. Both bounds are
// optional; an omitted bound leaves that side of the window open.
type ListPayrollParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}
