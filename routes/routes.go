package routes

import (
	"time"

	"slotify/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes sets up the availability and booking endpoints.
func RegisterSchedulingRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/providers/:providerID/availability", handlers.GetAvailabilityHandler)
		api.GET("/providers/:providerID/appointments", handlers.ListAppointmentsHandler)
		api.POST("/providers/search", handlers.SearchProvidersHandler)

		api.POST("/bookings", handlers.CreateBookingHandler)
		api.GET("/appointments/:appointmentID", handlers.GetAppointmentHandler)
		api.PATCH("/appointments/:appointmentID/status", handlers.UpdateAppointmentStatusHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r)
	RegisterHealthRoute(r)
}
