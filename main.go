package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/CassioNunes77/randomly/api"
	"github.com/CassioNunes77/randomly/config"
	"github.com/CassioNunes77/randomly/database"
	"github.com/CassioNunes77/randomly/middleware"
	"github.com/CassioNunes77/randomly/models"
	"github.com/CassioNunes77/randomly/repository"
	"github.com/CassioNunes77/randomly/services"

	fcm "github.com/appleboy/go-fcm"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	runMigrations(db)

	// Initialize repositories
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	userRepo := repository.NewUserRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reportRepo := repository.NewReportRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize notification channels. Either may be absent; sends become
	// logged no-ops.
	var pushClient services.PushClient
	if key := config.AppConfig.Push.APIKey; key != "" {
		client, err := fcm.NewClient(key)
		if err != nil {
			log.Fatalf("FATAL: [Main] Failed to initialize push client: %v", err)
		}
		pushClient = client
	}
	var emailDialer services.EmailDialer
	if cfg := config.AppConfig.Email; cfg.Host != "" {
		emailDialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}

	// Initialize services
	notifier := services.NewNotificationService(pushClient, emailDialer,
		config.AppConfig.Email.From, config.AppConfig.Email.AdminAddress)
	moderationService := services.NewModerationService(contributionRepo, knowledgeRepo, userRepo, reportRepo, notifier)
	knowledgeService := services.NewKnowledgeService(knowledgeRepo, favoriteRepo, statsRepo)
	userService := services.NewUserService(userRepo)
	schedulerService := services.NewSchedulerService(userRepo, knowledgeRepo, contributionRepo,
		favoriteRepo, reportRepo, statsRepo, notifier, config.AppConfig.Schedule)
	log.Println("INFO: [Main] Services initialized.")

	// Start the scheduled jobs
	if err := schedulerService.Start(); err != nil {
		log.Fatalf("FATAL: [Main] Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Initialize API handler with all dependencies
	apiHandler := api.NewAPIHandler(moderationService, knowledgeService, userService)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	// Register routes
	verifier := middleware.NewJWTVerifier(config.AppConfig.Auth.JWTSecret)
	registerRoutes(r, apiHandler, verifier)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.KnowledgeItem{},
		&models.UserProfile{},
		&models.Contribution{},
		&models.FavoriteLink{},
		&models.Report{},
		&models.WeeklySummary{},
		&models.Ranking{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler, verifier middleware.TokenVerifier) {
	apiGroup := r.Group("/api")
	{
		// Public reads; reports accept anonymous callers.
		apiGroup.GET("/knowledge/random",
			middleware.Authenticate(verifier, false), handler.RandomKnowledgeHandler)
		apiGroup.POST("/reports",
			middleware.Authenticate(verifier, false), handler.ReportKnowledgeHandler)

		// Authenticated client operations
		authGroup := apiGroup.Group("", middleware.Authenticate(verifier, true))
		{
			authGroup.POST("/session", handler.SessionHandler)
			authGroup.GET("/favorites", handler.ListFavoritesHandler)
			authGroup.POST("/favorites/:knowledgeID/toggle", handler.ToggleFavoriteHandler)
			authGroup.POST("/contributions", handler.SubmitContributionHandler)
			authGroup.PUT("/profile/device-token", handler.UpdateDeviceTokenHandler)
			authGroup.PUT("/profile/notifications", handler.SetNotificationsHandler)
		}

		// Admin callables; the admin flag itself is checked in the workflow.
		adminGroup := apiGroup.Group("/admin", middleware.Authenticate(verifier, true))
		{
			adminGroup.POST("/contributions/:contributionID/approve", handler.ApproveContributionHandler)
			adminGroup.POST("/contributions/:contributionID/reject", handler.RejectContributionHandler)
		}
	}
}
