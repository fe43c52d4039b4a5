package routes

import (
	"time"

	"detailing/handlers"
	"detailing/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the public slot lookups used by the booking form.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("", hb.GetAvailability)
		api.GET("/month", hb.GetMonthAvailability)
	}
}

// RegisterPublicRoutes registers booking creation and the public catalog.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.POST("/bookings", hb.CreateBooking)
		api.GET("/services", hb.ListActiveServices)
	}
}

// RegisterHealthRoute registers a health-check endpoint and, when enabled, the scrape endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
	if hb.Metrics != nil {
		// Scrapers send the admin key as a bearer token.
		r.GET("/metrics", middleware.AdminKeyMiddleware(hb.AdminKey), hb.Metrics)
	}
}

// RegisterAdminRoutes sets up endpoints for the owner's dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminKeyMiddleware(hb.AdminKey))
	{
		adminGroup.GET("/bookings", hb.ListBookings)
		adminGroup.POST("/bookings/override", hb.CreateOverrideBooking)
		adminGroup.GET("/bookings/:id", hb.GetBooking)
		adminGroup.PATCH("/bookings/:id/status", hb.UpdateBookingStatus)
		adminGroup.POST("/bookings/:id/cancel", hb.CancelBooking)
		adminGroup.DELETE("/bookings/:id", hb.DeleteBooking)

		adminGroup.GET("/services", hb.ListAllServices)
		adminGroup.GET("/services/:id", hb.GetService)
		adminGroup.POST("/services", hb.CreateService)
		adminGroup.PUT("/services/:id", hb.UpdateService)
		adminGroup.DELETE("/services/:id", hb.DeleteService)

		adminGroup.GET("/expenses", hb.ListExpenses)
		adminGroup.POST("/expenses", hb.CreateExpense)
		adminGroup.PUT("/expenses/:id", hb.UpdateExpense)
		adminGroup.DELETE("/expenses/:id", hb.DeleteExpense)

		adminGroup.POST("/uploads/images", hb.UploadImage)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.AdminKeyHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if hb.RequestMetrics != nil {
		r.Use(hb.RequestMetrics)
	}
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
