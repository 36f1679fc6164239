package routes

import (
	"net/http"
	"time"

	"winetrail/handlers"
	"winetrail/middleware"
	"winetrail/models"
	"winetrail/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCatalogRoutes registers the public winery catalog.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wineries")
	{
		api.GET("", hb.ListWineriesHandler)
		api.GET("/:id", hb.GetWineryHandler)
		api.GET("/:id/availability", hb.GetAvailabilityHandler)
	}
}

// RegisterItineraryRoutes registers the server-side itinerary (cart) endpoints.
func RegisterItineraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/itineraries")
	{
		api.Use(middleware.IdentityMiddleware())
		api.POST("", hb.CreateItineraryHandler)
		api.GET("/:cartID", hb.GetItineraryHandler)
		api.DELETE("/:cartID", hb.ClearItineraryHandler)
		api.POST("/:cartID/wineries", hb.AddWineryHandler)
		api.PUT("/:cartID/wineries/:wineryID", hb.UpdateSelectionHandler)
		api.DELETE("/:cartID/wineries/:wineryID", hb.RemoveWineryHandler)
		api.POST("/:cartID/checkout", hb.CheckoutItineraryHandler)
	}
}

// RegisterBookingRoutes sets up checkout and booking management.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.IdentityMiddleware())
		bookingGroup.POST("", hb.CreateBookingHandler)
		bookingGroup.GET("", hb.ListBookingsHandler)
		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
		bookingGroup.DELETE("/:id", hb.CancelBookingHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.IdentityMiddleware(), middleware.RequireRole(models.RoleAdmin))
		adminGroup.PUT("/bookings/:id/:status", hb.UpdateBookingStatusHandler)
	}
}

// RegisterWebhookRoutes registers payment provider callbacks. They authenticate by signature.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/webhooks/stripe", hb.StripeWebhookHandler)
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Winetrail"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterItineraryRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
}
