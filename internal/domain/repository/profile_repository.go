package repository

import (
	"context"
	"time"

	"github.com/summitcoaching/membership-service/internal/domain/model"
)

// ProfileRepository is the profile store boundary. Implementations exist
// for a direct postgres connection and for the Supabase REST API.
type ProfileRepository interface {
	// GetByUserID returns the profile for a user, or (nil, nil) when no
	// row exists.
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)

	// ClaimStripeCustomerID attaches a Stripe customer id to the profile
	// only if none is set yet. It reports whether this writer won the
	// claim; a losing writer re-reads and reuses the persisted id.
	ClaimStripeCustomerID(ctx context.Context, userID, customerID string) (bool, error)

	// ListExpired returns all non-free profiles whose expiry is strictly
	// before asOf.
	ListExpired(ctx context.Context, asOf time.Time) ([]model.Profile, error)

	// DowngradeToFree sets membership_type to free for the given users,
	// guarded on the row still being non-free. Expiry timestamps and
	// Stripe customer ids are left untouched for audit history. Returns
	// the number of rows actually updated.
	DowngradeToFree(ctx context.Context, userIDs []string) (int64, error)
}
