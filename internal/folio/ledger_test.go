package folio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolio_Totals(t *testing.T) {
	f := NewFolio("booking-1")

	_, err := f.PostCharge("green_fee", decimal.NewFromInt(300), "check_in")
	require.NoError(t, err)
	_, err = f.PostCharge("caddy_fee", decimal.NewFromInt(200), "check_in")
	require.NoError(t, err)
	_, err = f.PostCharge("restaurant", decimal.NewFromInt(150), "manual")
	require.NoError(t, err)

	// Void the 200 line; it must drop out of the totals permanently.
	voidTarget := f.Charges[1].ID
	require.NoError(t, f.VoidCharge(voidTarget, "wrong booking"))

	_, err = f.AddPayment(decimal.NewFromInt(400), "cash", "")
	require.NoError(t, err)

	assert.True(t, f.TotalCharges().Equal(decimal.NewFromInt(450)))
	assert.True(t, f.TotalPayments().Equal(decimal.NewFromInt(400)))
	assert.True(t, f.Balance().Equal(decimal.NewFromInt(50)))

	// Settling with 50 outstanding fails with the balance attached.
	err = f.Settle(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsettledBalance)
	var unsettled *UnsettledBalanceError
	require.True(t, errors.As(err, &unsettled))
	assert.True(t, unsettled.Balance.Equal(decimal.NewFromInt(50)))

	// Pay the rest and settle.
	_, err = f.AddPayment(decimal.NewFromInt(50), "card", "")
	require.NoError(t, err)
	require.NoError(t, f.Settle(false))
	assert.Equal(t, StatusSettled, f.Status)
}

func TestFolio_VoidCharge(t *testing.T) {
	f := NewFolio("booking-1")
	c1, err := f.PostCharge("green_fee", decimal.NewFromInt(100), "check_in")
	require.NoError(t, err)
	c2, err := f.PostCharge("cart_fee", decimal.NewFromInt(200), "check_in")
	require.NoError(t, err)

	t.Run("void order on disjoint ids does not matter", func(t *testing.T) {
		a := NewFolio("a")
		ca1, _ := a.PostCharge("x", decimal.NewFromInt(100), "m")
		ca2, _ := a.PostCharge("y", decimal.NewFromInt(200), "m")
		require.NoError(t, a.VoidCharge(ca1.ID, "r"))
		require.NoError(t, a.VoidCharge(ca2.ID, "r"))

		b := NewFolio("b")
		cb1, _ := b.PostCharge("x", decimal.NewFromInt(100), "m")
		cb2, _ := b.PostCharge("y", decimal.NewFromInt(200), "m")
		require.NoError(t, b.VoidCharge(cb2.ID, "r"))
		require.NoError(t, b.VoidCharge(cb1.ID, "r"))

		assert.True(t, a.TotalCharges().Equal(b.TotalCharges()))
	})

	t.Run("voiding twice is rejected", func(t *testing.T) {
		require.NoError(t, f.VoidCharge(c1.ID, "dup"))
		assert.ErrorIs(t, f.VoidCharge(c1.ID, "dup"), ErrAlreadyVoided)
	})

	t.Run("unknown charge id", func(t *testing.T) {
		assert.ErrorIs(t, f.VoidCharge("nope", "r"), ErrChargeNotFound)
	})

	t.Run("audit trail is preserved", func(t *testing.T) {
		require.NoError(t, f.VoidCharge(c2.ID, "comped"))
		assert.Len(t, f.Charges, 2)
		assert.Equal(t, ChargeVoided, f.Charges[1].Status)
		assert.Equal(t, "comped", f.Charges[1].VoidReason)
	})
}

func TestFolio_Amounts(t *testing.T) {
	f := NewFolio("booking-1")

	t.Run("negative charges are rejected, zero memo lines allowed", func(t *testing.T) {
		_, err := f.PostCharge("bad", decimal.NewFromInt(-10), "m")
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = f.PostCharge("comp", decimal.Zero, "rate_gap")
		assert.NoError(t, err)
	})

	t.Run("payments must be positive", func(t *testing.T) {
		_, err := f.AddPayment(decimal.Zero, "cash", "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = f.AddPayment(decimal.NewFromInt(-5), "cash", "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestFolio_Overpayment(t *testing.T) {
	f := NewFolio("booking-1")
	_, err := f.PostCharge("green_fee", decimal.NewFromInt(500), "check_in")
	require.NoError(t, err)
	_, err = f.AddPayment(decimal.NewFromInt(700), "cash", "")
	require.NoError(t, err)

	// The clamp keeps the balance at zero; the excess is reported separately.
	assert.True(t, f.Balance().IsZero())
	assert.True(t, f.Overpayment().Equal(decimal.NewFromInt(200)))
}

func TestFolio_SettleAndReopen(t *testing.T) {
	f := NewFolio("booking-1")
	_, err := f.PostCharge("green_fee", decimal.NewFromInt(500), "check_in")
	require.NoError(t, err)

	// Force settles despite the outstanding balance.
	require.NoError(t, f.Settle(true))
	assert.Equal(t, StatusSettled, f.Status)

	// A new charge re-opens the settled folio.
	_, err = f.PostCharge("restaurant", decimal.NewFromInt(120), "manual")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, f.Status)
}
