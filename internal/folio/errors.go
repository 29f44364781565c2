package folio

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrChargeNotFound is returned when voiding a charge id the folio does
	// not carry.
	ErrChargeNotFound = errors.New("charge not found")

	// ErrAlreadyVoided is returned when voiding the same charge twice.
	ErrAlreadyVoided = errors.New("charge already voided")

	// ErrUnsettledBalance is returned by Settle when the balance is positive
	// and force was not set.
	ErrUnsettledBalance = errors.New("unsettled balance")

	// ErrInvalidAmount is returned for negative charges or non-positive payments.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNotFound is returned when a folio id does not exist in the store.
	ErrNotFound = errors.New("folio not found")

	// ErrVersionConflict is returned when a save loses an optimistic
	// concurrency race.
	ErrVersionConflict = errors.New("folio version conflict")
)

// UnsettledBalanceError carries the outstanding balance that blocked settlement.
type UnsettledBalanceError struct {
	FolioID string
	Balance decimal.Decimal
}

func (e *UnsettledBalanceError) Error() string {
	return fmt.Sprintf("folio %s has unsettled balance %s", e.FolioID, e.Balance)
}

func (e *UnsettledBalanceError) Unwrap() error {
	return ErrUnsettledBalance
}
