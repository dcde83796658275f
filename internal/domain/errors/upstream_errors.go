package errors

import "fmt"

// Upstream error types
const (
	ErrTypeStoreUnavailable   = "STORE_UNAVAILABLE"
	ErrTypeBillingUnavailable = "BILLING_UNAVAILABLE"
)

// UpstreamError represents a failed call to the profile store or the
// billing provider. It is terminal for the current invocation; callers
// retry the whole request, never the individual call.
type UpstreamError struct {
	Type  string
	Op    string
	Cause error
}

func (e *UpstreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Op)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// NewStoreError wraps a profile store failure
func NewStoreError(op string, cause error) *UpstreamError {
	return &UpstreamError{Type: ErrTypeStoreUnavailable, Op: op, Cause: cause}
}

// NewBillingError wraps a billing provider failure
func NewBillingError(op string, cause error) *UpstreamError {
	return &UpstreamError{Type: ErrTypeBillingUnavailable, Op: op, Cause: cause}
}
