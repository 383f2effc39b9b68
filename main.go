// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"property-booking/cmd"
	"property-booking/internal/data/repository"
	"property-booking/internal/payment"
	"property-booking/internal/relay"
	"property-booking/internal/usecase"
	"property-booking/internal/wire"
	"property-booking/pkg/cache"
	"property-booking/pkg/database"
	"property-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis only backs Idempotency-Key handling; run without it if unreachable.
	redisClient, err := cache.NewRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(wire.Deps{
		Repo:      repos,
		Cache:     redisClient,
		Gateway:   payment.NewClient(config.Payment),
		Forwarder: relay.NewClient(config.GHL, logger),
	}, config, logger)

	go usecase.RunSessionJanitor(ctx, repos.Session, config.Session.CleanupInterval, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}

	logger.Info("Server exiting")
}
