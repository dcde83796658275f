package provider

import "context"

// BillingProvider is the subscription billing boundary (Stripe in
// production). Customers and checkout sessions live entirely on the
// provider side; this service only stores the customer id.
type BillingProvider interface {
	// CreateCustomer creates a billing customer tagged with the user id.
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*Customer, error)

	// CreateCheckoutSession creates a hosted subscription checkout
	// session and returns its redirect URL.
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// CreateCustomerRequest tags the new customer with the internal user id
// so provider-side records can be traced back.
type CreateCustomerRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Customer is the provider-side customer record reference.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CheckoutSessionRequest carries the resolved plan as provider-native
// recurring pricing plus reconciliation metadata.
type CheckoutSessionRequest struct {
	CustomerID  string            `json:"customer_id"`
	PlanName    string            `json:"plan_name"`
	Amount      int64             `json:"amount"` // minor currency units
	Currency    string            `json:"currency"`
	Interval    string            `json:"interval"` // month or year
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CheckoutSession is the created session reference.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ProviderError represents a provider-specific failure
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Code + ": " + e.Message
}
