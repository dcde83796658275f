package model

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
)

// BillingInterval is a Stripe-compatible recurring interval.
type BillingInterval string

const (
	IntervalMonth BillingInterval = "month"
	IntervalYear  BillingInterval = "year"
)

// Plan is a purchasable (tier, interval) combination with a fixed price.
// The catalog is static configuration; plans are never persisted.
type Plan struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Amount      int64           `json:"amount"` // minor currency units
	Currency    string          `json:"currency"`
	Interval    BillingInterval `json:"interval"`
	Membership  MembershipType  `json:"membership_type"`
}

// DisplayPrice renders the amount in major units for pricing pages.
func (p Plan) DisplayPrice() string {
	return decimal.New(p.Amount, -2).StringFixed(2)
}

// planOrder keeps the catalog listing stable for display.
var planOrder = []string{"basic_monthly", "basic_yearly", "premium_monthly", "premium_yearly"}

var planCatalog = map[string]Plan{
	"basic_monthly": {
		ID:          "basic_monthly",
		DisplayName: "Basic Membership (Monthly)",
		Amount:      2700,
		Currency:    "usd",
		Interval:    IntervalMonth,
		Membership:  MembershipBasic,
	},
	"basic_yearly": {
		ID:          "basic_yearly",
		DisplayName: "Basic Membership (Yearly)",
		Amount:      27000,
		Currency:    "usd",
		Interval:    IntervalYear,
		Membership:  MembershipBasic,
	},
	"premium_monthly": {
		ID:          "premium_monthly",
		DisplayName: "Premium Membership (Monthly)",
		Amount:      4700,
		Currency:    "usd",
		Interval:    IntervalMonth,
		Membership:  MembershipPremium,
	},
	"premium_yearly": {
		ID:          "premium_yearly",
		DisplayName: "Premium Membership (Yearly)",
		Amount:      47000,
		Currency:    "usd",
		Interval:    IntervalYear,
		Membership:  MembershipPremium,
	},
}

// ResolvePlan looks up a plan key against the closed catalog. Unknown keys
// are rejected, never defaulted.
func ResolvePlan(planID string) (Plan, error) {
	plan, ok := planCatalog[planID]
	if !ok {
		return Plan{}, domainErrors.ErrUnknownPlan
	}
	return plan, nil
}

// Plans returns the catalog in display order.
func Plans() []Plan {
	plans := make([]Plan, 0, len(planOrder))
	for _, id := range planOrder {
		plans = append(plans, planCatalog[id])
	}
	return plans
}
