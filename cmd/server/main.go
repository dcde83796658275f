package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/config"
	httpServer "github.com/summitcoaching/membership-service/internal/infrastructure/http"
	stripeProvider "github.com/summitcoaching/membership-service/internal/infrastructure/provider/stripe"
	"github.com/summitcoaching/membership-service/internal/infrastructure/scheduler"
	"github.com/summitcoaching/membership-service/internal/infrastructure/store"
	"github.com/summitcoaching/membership-service/internal/logger"
	"github.com/summitcoaching/membership-service/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize the profile store for the configured backend
	profiles, closeStore, err := store.NewProfileRepository(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize profile store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			zapLogger.Error("Failed to close profile store", zap.Error(err))
		}
	}()

	// Billing provider and usecases
	billing := stripeProvider.NewStripeProvider(cfg.Service.StripeSecretKey, zapLogger)
	checkout := usecase.NewCheckoutService(profiles, billing, zapLogger)
	sweeper := usecase.NewExpirySweeper(profiles, zapLogger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize servers
	httpSrv := httpServer.NewServer(cfg, zapLogger, profiles, checkout, sweeper)

	var sched *scheduler.Scheduler
	if cfg.Sweep.Enabled {
		sched, err = scheduler.New(cfg.Sweep.Schedule, sweeper, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to build sweep schedule", zap.Error(err))
		}
		sched.Start()
	}

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down...")

	if sched != nil {
		sched.Stop()
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
