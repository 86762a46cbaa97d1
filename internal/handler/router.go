package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"agrirent/internal/handler/api"
	"agrirent/internal/handler/middleware"
	"agrirent/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, bookingHandler *api.BookingHandler, availabilityHandler *api.AvailabilityHandler, adminHandler *api.AdminHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, availabilityHandler, adminHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, bookingHandler *api.BookingHandler, availabilityHandler *api.AvailabilityHandler, adminHandler *api.AdminHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(middleware.RequireIdentity())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.Create},
				{Method: http.MethodPost, Path: "/payment-hold", Handler: bookingHandler.CreatePaymentHold},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.Get},
				{Method: http.MethodPut, Path: "/:id", Handler: bookingHandler.Update},
				{Method: http.MethodPut, Path: "/:id/confirm-payment", Handler: bookingHandler.ConfirmPayment},
				{Method: http.MethodPut, Path: "/:id/fail-payment", Handler: bookingHandler.FailPayment},
				{Method: http.MethodPut, Path: "/:id/cancel-payment", Handler: bookingHandler.CancelPayment},
				{Method: http.MethodPut, Path: "/:id/accept", Handler: bookingHandler.Accept},
				{Method: http.MethodPut, Path: "/:id/reject", Handler: bookingHandler.Reject},
				{Method: http.MethodPut, Path: "/:id/complete", Handler: bookingHandler.Complete},
				{Method: http.MethodPut, Path: "/:id/cancel-dates", Handler: bookingHandler.CancelDates},
			})
		}

		equipment := apiGroup.Group("/equipment")
		{
			addRoutes(equipment, []route{
				{Method: http.MethodGet, Path: "/:equipmentId/availability", Handler: availabilityHandler.Check},
				{Method: http.MethodGet, Path: "/:equipmentId/calendar", Handler: availabilityHandler.Calendar},
			})
		}

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/sweep-holds", Handler: adminHandler.SweepHolds},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
