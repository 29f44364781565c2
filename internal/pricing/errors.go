package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrRateNotConfigured is returned when no rate cell (or no price for the
	// identity code) exists for a lookup. Callers treat it as a zero-amount
	// quote with a warning rather than a hard failure.
	ErrRateNotConfigured = errors.New("rate not configured")

	// ErrInvalidPolicy is returned when a team pricing policy fails validation.
	ErrInvalidPolicy = errors.New("invalid team pricing policy")
)

// RateNotConfiguredError carries the lookup key that had no configured rate.
type RateNotConfiguredError struct {
	DayType  DayType
	TimeSlot TimeSlot
	Code     IdentityCode
}

func (e *RateNotConfiguredError) Error() string {
	return fmt.Sprintf("rate not configured for %s/%s identity %q", e.DayType, e.TimeSlot, e.Code)
}

func (e *RateNotConfiguredError) Unwrap() error {
	return ErrRateNotConfigured
}
