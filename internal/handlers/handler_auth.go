package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
	"github.com/rotaworks/shift_roster_app/internal/utils"
	"github.com/rotaworks/shift_roster_app/pkg/config"
)

// authHandler handles authentication requests.
type authHandler struct {
	staffService portssvc.StaffSvcFacade
	jwtSecret    string
	jwtDuration  time.Duration
	jwtIssuer    string
}

func newAuthHandler(ss portssvc.StaffSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		staffService: ss,
		jwtSecret:    cfg.JWTSecret,
		jwtDuration:  cfg.JWTExpiryDuration,
		jwtIssuer:    cfg.JWTIssuer,
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is
// rate-limited per client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, staffService portssvc.StaffSvcFacade) {
	h := newAuthHandler(staffService, cfg)

	// 5 attempts per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

// login authenticates credentials and returns a bearer token.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staff, err := h.staffService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(staff.StaffID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info("Login successful", slog.String("staff_id", staff.StaffID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    token,
		StaffID:  staff.StaffID,
		Username: staff.Username,
		Role:     string(staff.Role),
	})
}
