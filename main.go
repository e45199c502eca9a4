package main

import (
	"log"
	"path/filepath"

	"moviedetectives/config"
	"moviedetectives/handlers"
	"moviedetectives/middleware"
	"moviedetectives/models"
	"moviedetectives/routes"
	"moviedetectives/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	if err := db.AutoMigrate(&models.QuizStats{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	tmdbService := services.NewTmdbService(cfg.TmdbAPIKey)
	generationService := services.NewGenerationService(cfg.OpenAIKey, cfg.OpenAIModel, cfg.MediaDir)
	promptService, err := services.NewPromptService()
	if err != nil {
		log.Fatal("Failed to load prompt templates:", err)
	}
	sessionStore := services.NewSessionStore()
	rateLimiter := services.NewRateLimiter(cfg.QuizDailyLimit, services.NewRedisCounterStore(redisClient))
	statsService := services.NewStatsService(db)
	quizService := services.NewQuizService(tmdbService, generationService, promptService, sessionStore, rateLimiter, statsService)

	// Start the media janitor
	cleanupService := services.NewCleanupService(
		[]string{filepath.Join(cfg.MediaDir, "audio"), filepath.Join(cfg.MediaDir, "images")},
		cfg.MediaMaxAge,
		cfg.CleanupInterval,
	)
	cleanupService.Start()
	defer cleanupService.Stop()

	// Initialize handlers
	movieHandler := handlers.NewMovieHandler(tmdbService)
	quizHandler := handlers.NewQuizHandler(quizService, rateLimiter, statsService)
	mediaHandler := handlers.NewMediaHandler(cfg.MediaDir)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, movieHandler, quizHandler, mediaHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
