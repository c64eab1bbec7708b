package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
	"github.com/rotaworks/shift_roster_app/internal/utils/scheduling"
	"github.com/rotaworks/shift_roster_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, cfg, services.Staff)

	// API v1 routes behind auth
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerStaffRoutes(v1, services.Staff, services.Payroll)
	RegisterOfferRoutes(v1, services.Offer)
	registerPayrollRoutes(v1, services.Payroll)
}

// RegisterCustomValidators installs the "clock" binding rule (24h HH:MM) on
// gin's validator engine.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := scheduling.ParseClock(fl.Field().String())
			return err == nil
		})
	}
}
