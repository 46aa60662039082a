package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mobilityplus-server/internal/config"
	"mobilityplus-server/internal/handlers"
	"mobilityplus-server/internal/middleware"
	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/realtime"
	"mobilityplus-server/internal/report"
	"mobilityplus-server/internal/repositories"
	"mobilityplus-server/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Wire the domain layer
	repos := repositories.NewGormRepositories(db)
	hub := realtime.NewHub()

	appointmentService := services.NewAppointmentService(repos, hub)
	ratingService := services.NewRatingService(repos, hub)
	professionalService := services.NewProfessionalService(repos)
	chatService := services.NewChatService(repos, hub)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, professionalService)
	professionalHandler := handlers.NewProfessionalHandler(professionalService, ratingService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, ratingService)
	chatHandler := handlers.NewChatHandler(chatService)
	careLogHandler := handlers.NewCareLogHandler(repos, report.NewService())
	eventsHandler := handlers.NewEventsHandler(hub)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Discovery
		private.GET("/specialties", professionalHandler.ListSpecialties)
		professionalRoutes := private.Group("/professionals")
		{
			professionalRoutes.GET("", professionalHandler.ListAvailable)
			professionalRoutes.PATCH("/availability",
				middleware.RoleAuthMiddleware(models.RoleProfessional),
				professionalHandler.SetAvailability)
			professionalRoutes.GET("/earnings",
				middleware.RoleAuthMiddleware(models.RoleProfessional),
				professionalHandler.GetEarnings)
			professionalRoutes.GET("/:id", professionalHandler.GetProfessional)
		}

		// Appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			// Patients book; the state machine gates everything after that
			appointmentRoutes.POST("",
				middleware.RoleAuthMiddleware(models.RolePatient),
				appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.POST("/:id/rating",
				middleware.RoleAuthMiddleware(models.RolePatient),
				appointmentHandler.SubmitRating)
		}

		// Care log ("bitácora")
		careLogRoutes := private.Group("/care-log")
		careLogRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			careLogRoutes.GET("", careLogHandler.ListEntries)
			careLogRoutes.GET("/pdf", careLogHandler.ExportPDF)
		}

		// Chat
		chatRoutes := private.Group("/chats")
		{
			chatRoutes.GET("", chatHandler.ListRooms)
			chatRoutes.GET("/:roomId/messages", chatHandler.ListMessages)
			chatRoutes.POST("/:roomId/messages", chatHandler.SendMessage)
			chatRoutes.PATCH("/:roomId/read", chatHandler.MarkRead)
		}

		// Realtime change notifications
		private.GET("/events", eventsHandler.Stream)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
