package routes

import (
	"net/http"

	"hamrah-bazaar/internal/config"
	"hamrah-bazaar/internal/delivery/http/handler"
	"hamrah-bazaar/internal/infrastructure/database/postgres"
	"hamrah-bazaar/internal/infrastructure/sms"
	"hamrah-bazaar/internal/infrastructure/smtp"
	verificationStore "hamrah-bazaar/internal/infrastructure/verification"
	"hamrah-bazaar/internal/logger"
	"hamrah-bazaar/internal/middleware"
	"hamrah-bazaar/internal/reference"
	listingUsecase "hamrah-bazaar/internal/usecase/listing"
	messageUsecase "hamrah-bazaar/internal/usecase/message"
	userUsecase "hamrah-bazaar/internal/usecase/user"
	verificationUsecase "hamrah-bazaar/internal/usecase/verification"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(10 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	catalog := reference.NewCatalog()

	userRepository := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	listingRepository := postgres.NewListingRepository(db)
	favoriteRepository := postgres.NewFavoriteRepository(db)
	reportRepository := postgres.NewReportRepository(db)
	messageRepository := postgres.NewMessageRepository(db)

	codeStore := verificationStore.NewMemoryStore()
	mailer := smtp.NewMailer(&cfg.SMTP)
	smsSender := sms.NewSender(&cfg.SMS)

	userService := userUsecase.NewService(userRepository, refreshTokenRepo, cfg)
	verificationService := verificationUsecase.NewService(codeStore, userRepository, userService, mailer, smsSender, cfg)
	listingService := listingUsecase.NewService(listingRepository, userRepository, favoriteRepository, reportRepository, catalog)
	messageService := messageUsecase.NewService(messageRepository, listingRepository, userRepository)

	userHandler := handler.NewUserHandler(userService)
	verificationHandler := handler.NewVerificationHandler(verificationService)
	listingHandler := handler.NewListingHandler(listingService)
	messageHandler := handler.NewMessageHandler(messageService)
	catalogHandler := handler.NewCatalogHandler(catalog)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		verificationHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// Public browse routes: identity is optional but, when present,
		// lets owners and admins see pending listings by ID.
		public := v1.Group("")
		public.Use(middleware.OptionalAuthMiddleware(cfg))
		{
			listingHandler.RegisterPublicRoutes(public)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			listingHandler.RegisterProtectedRoutes(protected)
			messageHandler.RegisterRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
				listingHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
