package api

import (
	"log"
	stdhttp "net/http"

	intconfig "eventscrm/internal/config"
	h "eventscrm/internal/http/handlers"
	"eventscrm/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Availability (read path, open)
		api.GET("/availability", h.CheckAvailability)

		// Calendar projection
		api.GET("/calendar", h.GetCalendarView)

		// Events
		events := api.Group("/events")
		events.GET("", h.ListEvents)
		events.PUT("/:id/status", middleware.RequireAuth(env.JWTSecret), h.UpdateEventStatus)

		// Bookings: the only write path into quotes/quote_services/events
		bookings := api.Group("/bookings")
		bookings.POST("", middleware.RequireAuth(env.JWTSecret), h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/confirmation", h.GetBookingConfirmationPDF)
	}

	h.SetRouter(r)
	return r
}
