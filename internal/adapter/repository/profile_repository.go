package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
	"github.com/summitcoaching/membership-service/internal/domain/model"
	domainRepo "github.com/summitcoaching/membership-service/internal/domain/repository"
)

type profileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProfileRepository creates a profile store backed by a direct
// postgres connection.
func NewProfileRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ProfileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domainErrors.NewStoreError("parse user id", err)
	}

	var profile model.Profile
	err = r.db.WithContext(ctx).Where("id = ?", userUUID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domainErrors.NewStoreError("get profile", err)
	}
	return &profile, nil
}

func (r *profileRepository) ClaimStripeCustomerID(ctx context.Context, userID, customerID string) (bool, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, domainErrors.NewStoreError("parse user id", err)
	}

	// Conditional write: only the first writer attaches a customer id.
	// Concurrent checkouts from the same user lose the claim and reuse
	// the persisted id instead of creating duplicate customers.
	result := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ? AND (stripe_customer_id IS NULL OR stripe_customer_id = '')", userUUID).
		Update("stripe_customer_id", customerID)
	if result.Error != nil {
		return false, domainErrors.NewStoreError("claim stripe customer id", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *profileRepository) ListExpired(ctx context.Context, asOf time.Time) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Where("membership_type <> ? AND membership_expires_at IS NOT NULL AND membership_expires_at < ?",
			model.MembershipFree, asOf).
		Find(&profiles).Error
	if err != nil {
		return nil, domainErrors.NewStoreError("list expired profiles", err)
	}
	return profiles, nil
}

func (r *profileRepository) DowngradeToFree(ctx context.Context, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(userIDs))
	for _, id := range userIDs {
		userUUID, err := uuid.Parse(id)
		if err != nil {
			return 0, domainErrors.NewStoreError("parse user id", err)
		}
		ids = append(ids, userUUID)
	}

	// Guarded on the row still being non-free so overlapping sweep runs
	// converge. Expiry timestamp and customer id are kept for audit.
	result := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id IN ? AND membership_type <> ?", ids, model.MembershipFree).
		Update("membership_type", model.MembershipFree)
	if result.Error != nil {
		return 0, domainErrors.NewStoreError("downgrade profiles", result.Error)
	}

	r.logger.Info("Downgraded expired memberships",
		zap.Int("requested", len(userIDs)),
		zap.Int64("updated", result.RowsAffected))

	return result.RowsAffected, nil
}
