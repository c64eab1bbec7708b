package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
)

// offerHandler handles offer lifecycle requests.
type offerHandler struct {
	offerService portssvc.OfferSvcFacade
}

func newOfferHandler(os portssvc.OfferSvcFacade) *offerHandler {
	return &offerHandler{offerService: os}
}

// RegisterOfferRoutes registers all offer lifecycle routes.
func RegisterOfferRoutes(rg *gin.RouterGroup, offerService portssvc.OfferSvcFacade) {
	h := newOfferHandler(offerService)

	offers := rg.Group("/offers")
	{
		offers.POST("/send", h.sendOffer)                    // Manager/admin
		offers.GET("/my", h.myOffers)                        // Staff, own offers
		offers.GET("/pending", h.pendingConfirmations)       // Manager/admin
		offers.GET("/by-staff/:staffID", h.offersForStaff)   // Manager/admin
		offers.GET("/schedule", h.schedule)                  // Manager/admin
		offers.PATCH("/:offerID/respond", h.respond)         // Staff, owner only
		offers.PATCH("/:offerID/decision", h.decide)         // Manager/admin
		offers.POST("/:offerID/complete", h.complete)        // Manager/admin
		offers.POST("/:offerID/checkout", h.checkout)        // Staff, owner only
		offers.POST("/:offerID/cancel", h.cancel)            // Manager/admin
		offers.PATCH("/:offerID/placement", h.editPlacement) // Manager/admin
		offers.DELETE("/:offerID", h.deleteOffer)            // Manager/admin
	}

	rg.GET("/dashboard", h.dashboard) // Manager/admin
}

// sendOffer creates a placement+offer pair after conflict detection.
func (h *offerHandler) sendOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offer, err := h.offerService.CreateOffer(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create offer")
		return
	}

	logger.Info("Offer sent", slog.String("offer_id", offer.OfferID), slog.String("staff_id", offer.StaffID))
	c.JSON(http.StatusCreated, dto.ToOfferResponse(offer))
}

// myOffers lists the caller's own offers, optionally filtered by status.
func (h *offerHandler) myOffers(c *gin.Context) {
	var params dto.ListOffersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var status *domain.OfferStatus
	if params.Status != "" {
		s := domain.OfferStatus(params.Status)
		status = &s
	}

	offers, err := h.offerService.ListMyOffers(c.Request.Context(), actorID, status)
	if err != nil {
		respondServiceError(c, err, "Failed to list offers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": dto.ToOfferResponses(offers)})
}

// pendingConfirmations lists user-accepted offers awaiting a decision.
func (h *offerHandler) pendingConfirmations(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offers, err := h.offerService.ListPendingConfirmations(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to list pending confirmations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": dto.ToOfferResponses(offers)})
}

// offersForStaff lists one staff member's offer history.
func (h *offerHandler) offersForStaff(c *gin.Context) {
	staffID := c.Param("staffID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offers, err := h.offerService.ListOffersForStaff(c.Request.Context(), actorID, staffID)
	if err != nil {
		respondServiceError(c, err, "Failed to list offers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": dto.ToOfferResponses(offers)})
}

// schedule lists non-cancelled offers in the requested day window.
func (h *offerHandler) schedule(c *gin.Context) {
	var params dto.ScheduleParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	offers, err := h.offerService.ListSchedule(c.Request.Context(), actorID, params.From, params.To)
	if err != nil {
		respondServiceError(c, err, "Failed to load schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": dto.ToOfferResponses(offers)})
}

// dashboard returns headline staff and offer counts for the actor's scope.
func (h *offerHandler) dashboard(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	counts, err := h.offerService.Dashboard(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// respond is the owning staff member's accept/reject.
func (h *offerHandler) respond(c *gin.Context) {
	offerID := c.Param("offerID")

	var req dto.RespondToOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.offerService.RespondToOffer(c.Request.Context(), offerID, actorID, domain.OfferAction(req.Action))
	if err != nil {
		respondServiceError(c, err, "Failed to respond to offer")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: string(updated.Status)})
}

// decide is the manager approve/reject of a user-accepted offer.
func (h *offerHandler) decide(c *gin.Context) {
	offerID := c.Param("offerID")

	var req dto.DecideOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.offerService.DecideOffer(c.Request.Context(), offerID, actorID, domain.OfferAction(req.Decision))
	if err != nil {
		respondServiceError(c, err, "Failed to decide offer")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: string(updated.Status)})
}

// complete is the administrative completion path.
func (h *offerHandler) complete(c *gin.Context) {
	offerID := c.Param("offerID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.offerService.CompleteOffer(c.Request.Context(), offerID, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to complete offer")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: string(updated.Status)})
}

// checkout is the staff completion path; it returns the computed figures.
func (h *offerHandler) checkout(c *gin.Context) {
	offerID := c.Param("offerID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.offerService.CheckoutOffer(c.Request.Context(), offerID, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to check out")
		return
	}

	resp := dto.CheckoutResponse{Status: string(updated.Status)}
	if updated.HoursWorked != nil {
		resp.Hours = *updated.HoursWorked
	}
	if updated.PayAmount != nil {
		resp.Pay = *updated.PayAmount
	}
	c.JSON(http.StatusOK, resp)
}

// cancel cancels a not-yet-completed offer.
func (h *offerHandler) cancel(c *gin.Context) {
	offerID := c.Param("offerID")

	var req dto.CancelOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.offerService.CancelOffer(c.Request.Context(), offerID, actorID, req.Reason)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel offer")
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: string(updated.Status)})
}

// editPlacement patches placement fields while the offer is editable.
func (h *offerHandler) editPlacement(c *gin.Context) {
	offerID := c.Param("offerID")

	var patch dto.PlacementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.offerService.EditOfferPlacement(c.Request.Context(), offerID, actorID, patch)
	if err != nil {
		respondServiceError(c, err, "Failed to edit placement")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlacementResponse(updated))
}

// deleteOffer removes a non-completed offer and its placement.
func (h *offerHandler) deleteOffer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	offerID := c.Param("offerID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.offerService.DeleteOffer(c.Request.Context(), offerID, actorID); err != nil {
		respondServiceError(c, err, "Failed to delete offer")
		return
	}

	logger.Info("Offer deleted", slog.String("offer_id", offerID))
	c.Status(http.StatusNoContent)
}
