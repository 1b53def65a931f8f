// main.go
package main

import (
	"log"

	"car-rental/cmd"
	"car-rental/internal/data/cache"
	"car-rental/internal/data/repository"
	"car-rental/internal/events"
	"car-rental/internal/wire"
	"car-rental/pkg/database"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Optional Redis cache for the availability calendar. The service runs
	// fine without it; every lookup just hits Postgres.
	redisClient := cache.NewRedisClient(config.Redis)
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}
	availCache := cache.NewAvailabilityCache(redisClient, config.Redis.CacheTTL, logger)

	// Optional AMQP publisher for booking lifecycle events.
	var publisher *events.Publisher
	if config.AMQP.Enabled {
		publisher, err = events.NewPublisher(config.AMQP.URL, logger)
		if err != nil {
			logger.Warn("Failed to connect to AMQP, events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			logger.Info("AMQP publisher connected")
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, availCache, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
