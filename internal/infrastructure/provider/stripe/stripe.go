package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"go.uber.org/zap"

	"github.com/summitcoaching/membership-service/internal/domain/provider"
)

// StripeProvider implements the BillingProvider interface for Stripe.
type StripeProvider struct {
	logger *zap.Logger
}

// NewStripeProvider creates a new Stripe provider. The secret key is
// installed on the package-level Stripe client.
func NewStripeProvider(secretKey string, logger *zap.Logger) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		logger: logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return "stripe"
}

// CreateCustomer creates a Stripe customer tagged with the internal user id.
func (s *StripeProvider) CreateCustomer(ctx context.Context, req *provider.CreateCustomerRequest) (*provider.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(req.Email),
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID)

	c, err := customer.New(params)
	if err != nil {
		s.logger.Error("Error creating Stripe customer",
			zap.String("user_id", req.UserID),
			zap.Error(err))
		return nil, asProviderError(err)
	}

	s.logger.Info("Stripe customer created",
		zap.String("user_id", req.UserID),
		zap.String("customer_id", c.ID))

	return &provider.Customer{
		ID:    c.ID,
		Email: c.Email,
	}, nil
}

// CreateCheckoutSession creates a subscription checkout session with the
// plan expressed as inline recurring price data.
func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(req.CustomerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.PlanName),
					},
					UnitAmount: stripe.Int64(req.Amount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(req.Interval),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		s.logger.Error("Error creating checkout session",
			zap.String("customer_id", req.CustomerID),
			zap.Error(err))
		return nil, asProviderError(err)
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("customer_id", req.CustomerID))

	return &provider.CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// asProviderError surfaces Stripe's error code when one is available.
func asProviderError(err error) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		return &provider.ProviderError{
			Code:    string(stripeErr.Code),
			Message: stripeErr.Msg,
		}
	}
	return err
}
