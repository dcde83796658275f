package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/summitcoaching/membership-service/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	if err := db.AutoMigrate(&model.Profile{}); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes creates indexes that GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// One Stripe customer per profile; the partial predicate keeps rows
	// without a customer out of the index.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_stripe_customer_per_profile ON profiles (stripe_customer_id) WHERE stripe_customer_id IS NOT NULL AND stripe_customer_id <> ''`).Error; err != nil {
		return err
	}

	// Sweep scan: non-free rows ordered by expiry.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_profiles_expiring ON profiles (membership_expires_at) WHERE membership_type <> 'free'`).Error; err != nil {
		return err
	}

	return nil
}
