package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mpetersen/fitlog/pkg/fitlog/apikeys"
	"github.com/mpetersen/fitlog/pkg/fitlog/auth"
	"github.com/mpetersen/fitlog/pkg/fitlog/config"
	"github.com/mpetersen/fitlog/pkg/fitlog/dashboard"
	"github.com/mpetersen/fitlog/pkg/fitlog/database"
	"github.com/mpetersen/fitlog/pkg/fitlog/habits"
	"github.com/mpetersen/fitlog/pkg/fitlog/ingest"
	"github.com/mpetersen/fitlog/pkg/fitlog/metrics"
	"github.com/mpetersen/fitlog/pkg/fitlog/milestones"
	"github.com/mpetersen/fitlog/pkg/fitlog/models"
	"github.com/mpetersen/fitlog/pkg/fitlog/reviews"
	"github.com/mpetersen/fitlog/pkg/fitlog/workouts"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mpetersen/fitlog/api/swagger"
)

// @title Fitlog API
// @version 1.0
// @description Personal fitness tracking backend: weight, workouts, habits, and nutrition, with API-key ingestion for phone automations.

// @contact.name Fitlog
// @contact.url https://github.com/mpetersen/fitlog

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token. Format: "Bearer {token}"

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := database.Connect(cfg.DBPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to connect to database")
	}

	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Database migrations completed")

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := database.GetDB()

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok", "service": "fitlog"})
		})

		// Auth routes (public)
		authHandler := auth.NewHandler(db)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Ingestion routes (public paths; each handler authenticates
		// by API key itself)
		ingestHandler := ingest.NewHandler(db)
		ingestHandler.RegisterRoutes(api)

		// Everything else requires a JWT session
		protected := api.Group("", auth.AuthMiddleware())

		apiKeysHandler := apikeys.NewHandler(db)
		apiKeysHandler.RegisterRoutes(protected)

		metricsHandler := metrics.NewHandler(db)
		metricsHandler.RegisterRoutes(protected)

		workoutsHandler := workouts.NewHandler(db)
		workoutsHandler.RegisterRoutes(protected)

		habitsHandler := habits.NewHandler(db)
		habitsHandler.RegisterRoutes(protected)

		milestonesHandler := milestones.NewHandler(db)
		milestonesHandler.RegisterRoutes(protected)

		reviewsHandler := reviews.NewHandler(db)
		reviewsHandler.RegisterRoutes(protected)

		dashboardHandler := dashboard.NewHandler(db)
		dashboardHandler.RegisterRoutes(protected)
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("Starting fitlog server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
