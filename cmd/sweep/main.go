package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/config"
	"github.com/summitcoaching/membership-service/internal/infrastructure/store"
	"github.com/summitcoaching/membership-service/internal/logger"
	"github.com/summitcoaching/membership-service/internal/usecase"
)

// One-shot sweep runner for external schedulers (cron, CI, a cloud
// scheduler hitting a container). Prints the run report as JSON and
// exits non-zero on failure.
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

	// Initialize the profile store
	profiles, closeStore, err := store.NewProfileRepository(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize profile store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			zapLogger.Error("Failed to close profile store", zap.Error(err))
		}
	}()

	sweeper := usecase.NewExpirySweeper(profiles, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := sweeper.Run(ctx)
	if err != nil {
		zapLogger.Error("Sweep failed", zap.Error(err))
		report, _ := json.Marshal(map[string]interface{}{
			"success":   false,
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		os.Stdout.Write(append(report, '\n'))
		os.Exit(1)
	}

	report, err := json.Marshal(map[string]interface{}{
		"success":   true,
		"cleaned":   result.Cleaned,
		"timestamp": result.Timestamp.Format(time.RFC3339),
		"users":     result.Users,
	})
	if err != nil {
		zapLogger.Fatal("Failed to encode sweep report", zap.Error(err))
	}
	os.Stdout.Write(append(report, '\n'))
}
