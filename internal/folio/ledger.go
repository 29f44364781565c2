package folio

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewFolio opens an empty folio for a booking.
func NewFolio(bookingID string) *Folio {
	return &Folio{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
}

// TotalCharges sums all posted charges. Voided charges are excluded for good.
func (f *Folio) TotalCharges() decimal.Decimal {
	total := decimal.Zero
	for _, c := range f.Charges {
		if c.Status == ChargePosted {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// TotalPayments sums all payments in insertion order.
func (f *Folio) TotalPayments() decimal.Decimal {
	total := decimal.Zero
	for _, p := range f.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Balance is the outstanding amount, floor-clamped to zero. Overpayment does
// not go negative here; see Overpayment.
func (f *Folio) Balance() decimal.Decimal {
	b := f.TotalCharges().Sub(f.TotalPayments())
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// Overpayment is the excess of payments over charges, zero when none. The
// clamp in Balance would otherwise hide it; cashiers need it for credit or
// refund handling.
func (f *Folio) Overpayment() decimal.Decimal {
	o := f.TotalPayments().Sub(f.TotalCharges())
	if o.IsNegative() {
		return decimal.Zero
	}
	return o
}

// PostCharge appends a posted charge. Zero-amount charges are allowed as memo
// lines (comps, rate-gap placeholders). Posting onto a settled folio re-opens it.
func (f *Folio) PostCharge(chargeType string, amount decimal.Decimal, source string) (Charge, error) {
	if amount.IsNegative() {
		return Charge{}, ErrInvalidAmount
	}
	charge := Charge{
		ID:        uuid.NewString(),
		Type:      chargeType,
		Amount:    amount,
		Status:    ChargePosted,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
	f.Charges = append(f.Charges, charge)
	if f.Status == StatusSettled {
		log.Warn("Posting charge re-opens settled folio", "folioID", f.ID, "chargeType", chargeType)
		f.Status = StatusOpen
	}
	return charge, nil
}

// VoidCharge marks a charge voided. The record stays in the ledger for audit.
func (f *Folio) VoidCharge(chargeID, reason string) error {
	for i := range f.Charges {
		if f.Charges[i].ID != chargeID {
			continue
		}
		if f.Charges[i].Status == ChargeVoided {
			return ErrAlreadyVoided
		}
		f.Charges[i].Status = ChargeVoided
		f.Charges[i].VoidReason = reason
		return nil
	}
	return ErrChargeNotFound
}

// AddPayment appends a payment. Overpayment is allowed; the excess surfaces
// via Overpayment, not a negative balance.
func (f *Folio) AddPayment(amount decimal.Decimal, method, note string) (Payment, error) {
	if !amount.IsPositive() {
		return Payment{}, ErrInvalidAmount
	}
	payment := Payment{
		ID:        uuid.NewString(),
		Amount:    amount,
		Method:    method,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	f.Payments = append(f.Payments, payment)
	return payment, nil
}

// Settle closes the folio. With a positive balance it fails unless force is
// set; force is the deliberate escape hatch for pay-later and house accounts.
func (f *Folio) Settle(force bool) error {
	balance := f.Balance()
	if balance.IsPositive() && !force {
		return &UnsettledBalanceError{FolioID: f.ID, Balance: balance}
	}
	if balance.IsPositive() {
		log.Info("Force-settling folio with outstanding balance", "folioID", f.ID, "balance", balance)
	}
	f.Status = StatusSettled
	return nil
}
