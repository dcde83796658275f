package usecase

import (
	"context"

	"go.uber.org/zap"

	domainErrors "github.com/summitcoaching/membership-service/internal/domain/errors"
	"github.com/summitcoaching/membership-service/internal/domain/model"
	"github.com/summitcoaching/membership-service/internal/domain/provider"
	"github.com/summitcoaching/membership-service/internal/domain/repository"
)

// CheckoutService builds Stripe subscription checkout sessions: it
// resolves the plan, ensures the caller has a billing customer, and
// returns the hosted session URL.
type CheckoutService struct {
	profiles repository.ProfileRepository
	billing  provider.BillingProvider
	logger   *zap.Logger
}

func NewCheckoutService(profiles repository.ProfileRepository, billing provider.BillingProvider, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		profiles: profiles,
		billing:  billing,
		logger:   logger,
	}
}

// CheckoutInput identifies the authenticated caller and the requested plan.
type CheckoutInput struct {
	UserID     string
	Email      string
	PlanID     string
	SuccessURL string
	CancelURL  string
}

// CreateSession runs the whole checkout flow and returns the session's
// redirect URL. Any step failure aborts the operation; nothing is
// retried here.
func (s *CheckoutService) CreateSession(ctx context.Context, in CheckoutInput) (string, error) {
	plan, err := model.ResolvePlan(in.PlanID)
	if err != nil {
		s.logger.Warn("Rejected checkout for unknown plan",
			zap.String("user_id", in.UserID),
			zap.String("plan_id", in.PlanID))
		return "", err
	}

	profile, err := s.profiles.GetByUserID(ctx, in.UserID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", domainErrors.ErrProfileNotFound
	}

	customerID, err := s.ensureCustomer(ctx, profile, in)
	if err != nil {
		return "", err
	}

	session, err := s.billing.CreateCheckoutSession(ctx, &provider.CheckoutSessionRequest{
		CustomerID: customerID,
		PlanName:   plan.DisplayName,
		Amount:     plan.Amount,
		Currency:   plan.Currency,
		Interval:   string(plan.Interval),
		SuccessURL: in.SuccessURL,
		CancelURL:  in.CancelURL,
		Metadata: map[string]string{
			"user_id":         in.UserID,
			"plan_id":         plan.ID,
			"membership_type": string(plan.Membership),
		},
	})
	if err != nil {
		return "", domainErrors.NewBillingError("create checkout session", err)
	}

	s.logger.Info("Checkout session ready",
		zap.String("user_id", in.UserID),
		zap.String("plan_id", plan.ID),
		zap.String("session_id", session.ID))

	return session.URL, nil
}

// ensureCustomer returns the profile's Stripe customer id, creating and
// persisting one if none exists. The id is written to the profile before
// the checkout session is created, so a crash in between leaves a
// recoverable state rather than a duplicate customer on the next attempt.
func (s *CheckoutService) ensureCustomer(ctx context.Context, profile *model.Profile, in CheckoutInput) (string, error) {
	if profile.StripeCustomerID != "" {
		return profile.StripeCustomerID, nil
	}

	email := profile.Email
	if email == "" {
		email = in.Email
	}

	cust, err := s.billing.CreateCustomer(ctx, &provider.CreateCustomerRequest{
		UserID: in.UserID,
		Email:  email,
	})
	if err != nil {
		return "", domainErrors.NewBillingError("create customer", err)
	}

	claimed, err := s.profiles.ClaimStripeCustomerID(ctx, in.UserID, cust.ID)
	if err != nil {
		return "", err
	}
	if !claimed {
		// A concurrent checkout attached a customer first. Reuse it; the
		// customer created above stays orphaned on the Stripe side.
		current, err := s.profiles.GetByUserID(ctx, in.UserID)
		if err != nil {
			return "", err
		}
		if current != nil && current.StripeCustomerID != "" {
			s.logger.Warn("Lost customer id claim to concurrent checkout",
				zap.String("user_id", in.UserID),
				zap.String("orphaned_customer_id", cust.ID),
				zap.String("customer_id", current.StripeCustomerID))
			return current.StripeCustomerID, nil
		}
		return "", domainErrors.NewStoreError("claim stripe customer id",
			domainErrors.ErrProfileNotFound)
	}

	return cust.ID, nil
}
