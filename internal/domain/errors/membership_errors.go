package errors

import "errors"

var (
	// ErrUnknownPlan indicates a plan key outside the static catalog
	ErrUnknownPlan = errors.New("unknown plan")

	// ErrProfileNotFound indicates the caller has no profile row yet
	ErrProfileNotFound = errors.New("profile not found")
)
