package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
)

// payrollHandler handles payroll reporting requests.
type payrollHandler struct {
	payrollService portssvc.PayrollSvc
}

func newPayrollHandler(ps portssvc.PayrollSvc) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers payroll reporting routes. All are
// manager/admin only, enforced in the service layer.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvc) {
	h := newPayrollHandler(payrollService)

	payroll := rg.Group("/payroll")
	{
		payroll.GET("", h.listRows)
		payroll.GET("/periods", h.listPeriods)
		payroll.GET("/period/:payDate", h.periodSummary)
		payroll.GET("/period/:payDate/staff/:username", h.periodStaffDetail)
	}
}

// listRows returns one row per completed shift in the optional date range.
func (h *payrollHandler) listRows(c *gin.Context) {
	var params dto.ListPayrollParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var fromDay, toDay *string
	if params.From != "" {
		fromDay = &params.From
	}
	if params.To != "" {
		toDay = &params.To
	}

	rows, err := h.payrollService.ListPayrollRows(c.Request.Context(), actorID, fromDay, toDay)
	if err != nil {
		respondServiceError(c, err, "Failed to build payroll report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// listPeriods returns the configured pay-period calendar.
func (h *payrollHandler) listPeriods(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.payrollService.ListPayPeriods(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to list pay periods")
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": periods})
}

// periodSummary returns per-staff totals for one pay period.
func (h *payrollHandler) periodSummary(c *gin.Context) {
	payDate := c.Param("payDate")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.payrollService.PeriodSummary(c.Request.Context(), actorID, payDate)
	if err != nil {
		respondServiceError(c, err, "Failed to build period summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// periodStaffDetail returns one staff member's shifts inside a pay period.
func (h *payrollHandler) periodStaffDetail(c *gin.Context) {
	payDate := c.Param("payDate")
	username := c.Param("username")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	detail, err := h.payrollService.PeriodStaffDetail(c.Request.Context(), actorID, payDate, username)
	if err != nil {
		respondServiceError(c, err, "Failed to build staff period detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}
