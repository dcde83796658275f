package model

import (
	"time"

	"github.com/google/uuid"
)

// MembershipType is the membership tier of a profile.
type MembershipType string

const (
	MembershipFree    MembershipType = "free"
	MembershipBasic   MembershipType = "basic"
	MembershipPremium MembershipType = "premium"
)

// Profile is the per-user membership record. The row is keyed by the
// Supabase auth user id; the Stripe customer id is created lazily on the
// first checkout and never reassigned.
type Profile struct {
	UserID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email               string         `gorm:"size:255" json:"email"`
	MembershipType      MembershipType `gorm:"column:membership_type;size:20;not null;default:'free'" json:"membership_type"`
	MembershipStartedAt *time.Time     `gorm:"column:membership_started_at" json:"membership_started_at"`
	MembershipExpiresAt *time.Time     `gorm:"column:membership_expires_at;index" json:"membership_expires_at"`
	StripeCustomerID    string         `gorm:"column:stripe_customer_id;size:100" json:"stripe_customer_id,omitempty"`
	CreatedAt           time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Expired reports whether the membership has lapsed relative to asOf.
// Free profiles never expire; a nil expiry never matches.
func (p *Profile) Expired(asOf time.Time) bool {
	if p.MembershipType == MembershipFree || p.MembershipExpiresAt == nil {
		return false
	}
	return p.MembershipExpiresAt.Before(asOf)
}
