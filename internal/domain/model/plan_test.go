package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
	"github.com/summitcoaching/membership-service/internal/domain/model"
)

func TestResolvePlan_Catalog(t *testing.T) {
	tests := []struct {
		planID     string
		amount     int64
		interval   model.BillingInterval
		membership model.MembershipType
	}{
		{"basic_monthly", 2700, model.IntervalMonth, model.MembershipBasic},
		{"basic_yearly", 27000, model.IntervalYear, model.MembershipBasic},
		{"premium_monthly", 4700, model.IntervalMonth, model.MembershipPremium},
		{"premium_yearly", 47000, model.IntervalYear, model.MembershipPremium},
	}

	for _, tt := range tests {
		t.Run(tt.planID, func(t *testing.T) {
			plan, err := model.ResolvePlan(tt.planID)
			assert.NoError(t, err)
			assert.Equal(t, tt.planID, plan.ID)
			assert.Equal(t, tt.amount, plan.Amount)
			assert.Equal(t, tt.interval, plan.Interval)
			assert.Equal(t, tt.membership, plan.Membership)
			assert.Equal(t, "usd", plan.Currency)
		})
	}
}

func TestResolvePlan_UnknownKeysRejected(t *testing.T) {
	for _, planID := range []string{"", "basic", "basic_weekly", "premium_monthly ", "enterprise_yearly"} {
		_, err := model.ResolvePlan(planID)
		assert.ErrorIs(t, err, domainErrors.ErrUnknownPlan, "plan id %q must be rejected", planID)
	}
}

func TestPlan_DisplayPrice(t *testing.T) {
	plan, err := model.ResolvePlan("basic_monthly")
	assert.NoError(t, err)
	assert.Equal(t, "27.00", plan.DisplayPrice())

	plan, err = model.ResolvePlan("premium_yearly")
	assert.NoError(t, err)
	assert.Equal(t, "470.00", plan.DisplayPrice())
}

func TestPlans_DisplayOrder(t *testing.T) {
	plans := model.Plans()
	assert.Len(t, plans, 4)

	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"basic_monthly", "basic_yearly", "premium_monthly", "premium_yearly"}, ids)
}

func TestProfile_Expired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		profile  model.Profile
		expected bool
	}{
		{"free with past expiry", model.Profile{MembershipType: model.MembershipFree, MembershipExpiresAt: &past}, false},
		{"basic without expiry", model.Profile{MembershipType: model.MembershipBasic}, false},
		{"basic past expiry", model.Profile{MembershipType: model.MembershipBasic, MembershipExpiresAt: &past}, true},
		{"premium future expiry", model.Profile{MembershipType: model.MembershipPremium, MembershipExpiresAt: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.profile.Expired(now))
		})
	}
}
