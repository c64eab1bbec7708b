package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
)

// staffHandler handles staff account management requests.
type staffHandler struct {
	staffService   portssvc.StaffSvcFacade
	payrollService portssvc.PayrollSvc
}

func newStaffHandler(ss portssvc.StaffSvcFacade, ps portssvc.PayrollSvc) *staffHandler {
	return &staffHandler{staffService: ss, payrollService: ps}
}

// registerStaffRoutes registers staff account routes.
func registerStaffRoutes(rg *gin.RouterGroup, staffService portssvc.StaffSvcFacade, payrollService portssvc.PayrollSvc) {
	h := newStaffHandler(staffService, payrollService)

	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)                            // Manager/admin
		staff.GET("", h.listStaff)                               // Manager/admin
		staff.GET("/:staffID", h.getStaff)                       // Manager/admin, with stats
		staff.PATCH("/:staffID/active", h.setActive)             // Manager/admin
		staff.PATCH("/:staffID/availability", h.setAvailability) // Manager/admin
		staff.PATCH("/me/fcm-token", h.updateFCMToken)           // Any authenticated user
	}

	rg.POST("/managers", h.createManager) // Admin only
}

// createStaff creates a staff account owned by the acting manager.
func (h *staffHandler) createStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.staffService.CreateStaff(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create staff")
		return
	}

	logger.Info("Staff created", slog.String("staff_id", created.StaffID))
	c.JSON(http.StatusCreated, dto.ToStaffResponse(created))
}

// createManager creates a manager account. Admin only.
func (h *staffHandler) createManager(c *gin.Context) {
	var req dto.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.staffService.CreateManager(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create manager")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStaffResponse(created))
}

// listStaff lists the actor's visible staff accounts.
func (h *staffHandler) listStaff(c *gin.Context) {
	var params dto.ListStaffParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	staff, err := h.staffService.ListStaff(c.Request.Context(), actorID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list staff")
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": dto.ToStaffListResponses(staff)})
}

// getStaff returns one staff profile enriched with lifetime shift stats.
func (h *staffHandler) getStaff(c *gin.Context) {
	staffID := c.Param("staffID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), actorID, staffID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve staff")
		return
	}

	stats, err := h.payrollService.StaffStats(c.Request.Context(), actorID, staffID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute staff stats")
		return
	}

	c.JSON(http.StatusOK, dto.StaffDetailResponse{
		StaffResponse: dto.ToStaffResponse(staff),
		StaffStats:    *stats,
	})
}

// setActive suspends or reactivates a staff account.
func (h *staffHandler) setActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staffID := c.Param("staffID")

	var req dto.SetStaffActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.staffService.SetStaffActive(c.Request.Context(), actorID, staffID, *req.IsActive)
	if err != nil {
		respondServiceError(c, err, "Failed to update staff")
		return
	}

	logger.Info("Staff active flag set", slog.String("staff_id", staffID), slog.Bool("is_active", *req.IsActive))
	c.JSON(http.StatusOK, dto.ToStaffResponse(updated))
}

// setAvailability replaces a staff member's availability document.
func (h *staffHandler) setAvailability(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staffID := c.Param("staffID")

	var req dto.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.staffService.SetStaffAvailability(c.Request.Context(), actorID, staffID, req.Availability.ToDomain())
	if err != nil {
		respondServiceError(c, err, "Failed to update availability")
		return
	}

	logger.Info("Staff availability set", slog.String("staff_id", staffID))
	c.JSON(http.StatusOK, dto.ToStaffResponse(updated))
}

// updateFCMToken stores or clears the caller's own device push token.
func (h *staffHandler) updateFCMToken(c *gin.Context) {
	var req dto.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.staffService.UpdateFCMToken(c.Request.Context(), actorID, req.Token); err != nil {
		respondServiceError(c, err, "Failed to update push token")
		return
	}
	c.Status(http.StatusNoContent)
}
