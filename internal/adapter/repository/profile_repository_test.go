package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
)

func TestProfileRepository_MalformedUserID(t *testing.T) {
	// uuid parsing happens before the database is touched, so a nil
	// connection is enough to exercise the error path.
	repo := NewProfileRepository(nil, zap.NewNop())

	t.Run("get by user id", func(t *testing.T) {
		profile, err := repo.GetByUserID(context.Background(), "not-a-uuid")

		assert.Nil(t, profile)
		var upstreamErr *domainErrors.UpstreamError
		assert.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, domainErrors.ErrTypeStoreUnavailable, upstreamErr.Type)
	})

	t.Run("claim stripe customer id", func(t *testing.T) {
		claimed, err := repo.ClaimStripeCustomerID(context.Background(), "not-a-uuid", "cus_123")

		assert.False(t, claimed)
		var upstreamErr *domainErrors.UpstreamError
		assert.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, domainErrors.ErrTypeStoreUnavailable, upstreamErr.Type)
	})

	t.Run("downgrade to free", func(t *testing.T) {
		updated, err := repo.DowngradeToFree(context.Background(), []string{"not-a-uuid"})

		assert.Equal(t, int64(0), updated)
		var upstreamErr *domainErrors.UpstreamError
		assert.True(t, errors.As(err, &upstreamErr))
	})
}
