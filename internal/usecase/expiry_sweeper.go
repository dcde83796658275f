package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/domain/model"
	"github.com/summitcoaching/membership-service/internal/domain/repository"
)

// ExpirySweeper downgrades lapsed memberships back to the free tier. It
// is safe to run repeatedly or concurrently: the downgrade is guarded on
// the row still being non-free, so overlapping runs converge.
type ExpirySweeper struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewExpirySweeper(profiles repository.ProfileRepository, logger *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		profiles: profiles,
		logger:   logger,
	}
}

// SweepAuditEntry records one downgraded membership for the run report.
type SweepAuditEntry struct {
	Email        string               `json:"email"`
	PreviousType model.MembershipType `json:"previous_type"`
	ExpiredAt    time.Time            `json:"expired_at"`
}

// SweepResult is the outcome of one sweep run.
type SweepResult struct {
	Cleaned   int
	Timestamp time.Time
	Users     []SweepAuditEntry
}

// Run executes one sweep. The reference time is captured once at the
// start so every row is judged against the same snapshot. A read failure
// aborts before any write; a write failure surfaces as a job failure and
// the next scheduled run re-attempts the still-expired rows.
func (s *ExpirySweeper) Run(ctx context.Context) (*SweepResult, error) {
	now := time.Now().UTC()

	expired, err := s.profiles.ListExpired(ctx, now)
	if err != nil {
		s.logger.Error("Sweep read failed", zap.Error(err))
		return nil, err
	}

	result := &SweepResult{
		Cleaned:   0,
		Timestamp: now,
		Users:     []SweepAuditEntry{},
	}

	if len(expired) == 0 {
		s.logger.Info("Sweep found no expired memberships")
		return result, nil
	}

	userIDs := make([]string, 0, len(expired))
	for _, profile := range expired {
		userIDs = append(userIDs, profile.UserID.String())
		entry := SweepAuditEntry{
			Email:        profile.Email,
			PreviousType: profile.MembershipType,
		}
		if profile.MembershipExpiresAt != nil {
			entry.ExpiredAt = *profile.MembershipExpiresAt
		}
		result.Users = append(result.Users, entry)
	}

	updated, err := s.profiles.DowngradeToFree(ctx, userIDs)
	if err != nil {
		s.logger.Error("Sweep write failed",
			zap.Int("matched", len(expired)),
			zap.Error(err))
		return nil, err
	}

	result.Cleaned = len(expired)
	if updated != int64(len(expired)) {
		// A concurrent sweep already downgraded some rows; harmless.
		s.logger.Warn("Sweep updated fewer rows than matched",
			zap.Int("matched", len(expired)),
			zap.Int64("updated", updated))
	}

	s.logger.Info("Sweep completed",
		zap.Int("cleaned", result.Cleaned),
		zap.Time("as_of", now))

	return result, nil
}
