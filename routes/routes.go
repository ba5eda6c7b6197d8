package routes

import (
	"time"

	"zapagenda/handlers"
	"zapagenda/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes registers the inbound message webhook hit by the
// messaging gateway.
func RegisterMessageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/messages")
	{
		api.Use(middleware.RateLimitMiddleware())
		api.POST("/inbound", hb.Messages.InboundMessageHandler)
	}
}

// RegisterAppointmentRoutes registers the admin appointment endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("", hb.Appointments.ListAppointmentsHandler)
		api.POST("", hb.Appointments.CreateAppointmentHandler)
		api.DELETE("/:id", hb.Appointments.DeleteAppointmentHandler)
	}
}

// RegisterKnowledgeRoutes registers the admin knowledge endpoints.
func RegisterKnowledgeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/knowledge")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("", hb.Knowledge.ListKnowledgeHandler)
		api.POST("", hb.Knowledge.SetKnowledgeHandler)
		api.DELETE("/:key", hb.Knowledge.DeleteKnowledgeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterMessageRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterKnowledgeRoutes(r, hb)
}
