package store

import (
	"fmt"

	"go.uber.org/zap"

	adapterRepo "github.com/summitcoaching/membership-service/internal/adapter/repository"
	"github.com/summitcoaching/membership-service/internal/config"
	domainRepo "github.com/summitcoaching/membership-service/internal/domain/repository"
	"github.com/summitcoaching/membership-service/internal/infrastructure/database"
)

// NewProfileRepository builds the profile store for the configured
// backend. The returned closer releases the backend's resources and may
// be nil-safe to call once.
func NewProfileRepository(cfg *config.Config, logger *zap.Logger) (domainRepo.ProfileRepository, func() error, error) {
	switch cfg.Service.Store {
	case config.StoreBackendSupabase:
		repo := adapterRepo.NewSupabaseProfileRepository(
			cfg.Service.Supabase.ProjectURL,
			cfg.Service.Supabase.APIKey,
			logger,
		)
		return repo, func() error { return nil }, nil

	case config.StoreBackendPostgres:
		db, err := database.NewConnection(&cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, logger); err != nil {
			_ = database.Close(db, logger)
			return nil, nil, err
		}
		repo := adapterRepo.NewProfileRepository(db, logger)
		return repo, func() error { return database.Close(db, logger) }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Service.Store)
	}
}
