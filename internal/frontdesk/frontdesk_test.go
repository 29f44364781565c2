package frontdesk

import (
	"testing"
	"time"

	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/events"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/metrics"
	"github.com/clubops/teesheet/internal/notifier"
	"github.com/clubops/teesheet/internal/pricing"
	"github.com/clubops/teesheet/internal/rates"
	"github.com/clubops/teesheet/internal/resources"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	bookings *booking.MockStore
	folios   *folio.MockStore
	rates    *rates.MockStore
	catalog  *resources.MockCatalog
	notif    *notifier.Mock
	metr     *metrics.Mock
	pub      *events.MockPublisher
	fd       *FrontDesk
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookings: booking.NewMock(),
		folios:   folio.NewMock(),
		rates:    rates.NewMock(),
		catalog:  resources.NewMock(),
		notif:    notifier.NewMock(),
		metr:     metrics.NewMock(),
		pub:      events.NewMock(),
	}
	f.fd = New(f.bookings, f.folios, f.rates, f.catalog, f.notif, f.metr, f.pub)
	return f
}

// weekdayMorningCell is a standard rate cell covering the test tee time.
func weekdayMorningCell() pricing.RateCell {
	return pricing.RateCell{
		ID:       "cell-1",
		DayType:  pricing.DayTypeWeekday,
		TimeSlot: pricing.SlotMorning,
		Prices: map[pricing.IdentityCode]decimal.Decimal{
			"MEMBER": decimal.NewFromInt(500),
			"GUEST":  decimal.NewFromInt(800),
		},
		CaddyFee:  decimal.NewFromInt(300),
		CartFee:   decimal.NewFromInt(200),
		ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    pricing.CellActive,
	}
}

func newConfirmedBooking(t *testing.T, f *fixture, players []booking.Player) *booking.Booking {
	t.Helper()
	// 2026-04-08 is a Wednesday.
	date := time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)
	teeTime := time.Date(2026, 4, 8, 8, 30, 0, 0, time.UTC)
	b, err := f.fd.CreateBooking(date, teeTime, "main", 18, players)
	require.NoError(t, err)
	_, err = f.fd.Confirm(b.ID)
	require.NoError(t, err)
	return b
}

func TestFrontDesk_CheckIn(t *testing.T) {
	t.Run("posts per-player green fees and binds resources", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))
		require.NoError(t, f.catalog.Add(resources.Resource{ID: "caddy-1", Kind: resources.KindCaddy}))
		require.NoError(t, f.catalog.Add(resources.Resource{ID: "cart-3", Kind: resources.KindCart}))

		b := newConfirmedBooking(t, f, []booking.Player{
			{Name: "Sato", IdentityCode: "MEMBER"},
			{Name: "Tanaka", IdentityCode: "GUEST"},
		})

		checked, err := f.fd.CheckIn(b.ID, CheckInRequest{Resources: booking.AssignedResources{
			CaddyID: "caddy-1",
			CartNo:  "cart-3",
		}}, false)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCheckedIn, checked.Status)
		assert.NotEmpty(t, checked.Resources.FolioID)
		require.Len(t, f.folios.CreateCalls, 1)

		led := f.folios.CreateCalls[0]
		require.Len(t, led.Charges, 4, "two green fees, caddy fee, cart fee")
		assert.True(t, led.TotalCharges().Equal(decimal.NewFromInt(500+800+300+200)))

		require.Len(t, f.catalog.ReserveCalls, 2)
		assert.Equal(t, b.ID, f.catalog.ReserveCalls[0].BookingID)
		require.Len(t, f.notif.SendCheckInNotificationCalls, 1)
		assert.Equal(t, 1, f.metr.BookingsCheckedIn())
		assert.Len(t, f.pub.EventsOfType(events.EventBookingCheckedIn), 1)
		assert.Len(t, f.pub.EventsOfType(events.EventChargePosted), 4)
	})

	t.Run("aborts all-or-nothing when a resource is taken", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))
		require.NoError(t, f.catalog.Add(resources.Resource{ID: "caddy-1", Kind: resources.KindCaddy}))
		require.NoError(t, f.catalog.Add(resources.Resource{ID: "cart-3", Kind: resources.KindCart, HolderID: "other-booking"}))

		b := newConfirmedBooking(t, f, []booking.Player{{Name: "Sato", IdentityCode: "MEMBER"}})
		saves := len(f.bookings.SaveCalls)

		_, err := f.fd.CheckIn(b.ID, CheckInRequest{Resources: booking.AssignedResources{
			CaddyID: "caddy-1",
			CartNo:  "cart-3",
		}}, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, resources.ErrResourceUnavailable)

		// The already-staged caddy must be released and nothing persisted.
		assert.Equal(t, []string{"caddy-1"}, f.catalog.ReleaseCalls)
		assert.Len(t, f.bookings.SaveCalls, saves)
		assert.Empty(t, f.folios.CreateCalls)
	})

	t.Run("rate gap posts zero charge and warns staff", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))

		b := newConfirmedBooking(t, f, []booking.Player{{Name: "Lee", IdentityCode: "VISITOR"}})

		_, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)

		led := f.folios.CreateCalls[0]
		require.Len(t, led.Charges, 1)
		assert.True(t, led.Charges[0].Amount.IsZero())
		require.Len(t, f.notif.SendRateGapWarningCalls, 1)
		assert.Equal(t, pricing.IdentityCode("VISITOR"), f.notif.SendRateGapWarningCalls[0].Code)
		assert.Equal(t, 1, f.metr.RateGaps())
	})

	t.Run("team tier collapses the party into one discounted charge", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))
		require.NoError(t, f.rates.SetTeamPricingPolicy(pricing.TeamPricingPolicy{
			Tiers: []pricing.Tier{
				{MinPlayers: 3, MaxPlayers: 4, DiscountRate: decimal.NewFromFloat(0.9), Label: "group"},
			},
			FloorPriceRate: decimal.NewFromFloat(0.6),
		}))

		b := newConfirmedBooking(t, f, []booking.Player{
			{IdentityCode: "GUEST"}, {IdentityCode: "GUEST"}, {IdentityCode: "GUEST"}, {IdentityCode: "GUEST"},
		})

		_, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)

		led := f.folios.CreateCalls[0]
		require.Len(t, led.Charges, 1)
		assert.Equal(t, "team_green_fee", led.Charges[0].Type)
		// 4 * 800 = 3200, tier 0.9 -> 2880, floor 1920 not hit.
		assert.True(t, led.Charges[0].Amount.Equal(decimal.NewFromInt(2880)))
	})

	t.Run("rejects check-in from pending", func(t *testing.T) {
		f := newFixture(t)
		date := time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)
		b, err := f.fd.CreateBooking(date, date.Add(9*time.Hour), "main", 18, []booking.Player{{IdentityCode: "MEMBER"}})
		require.NoError(t, err)

		_, err = f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("repeated check-in attempt reuses the existing folio", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))

		b := newConfirmedBooking(t, f, []booking.Player{{IdentityCode: "MEMBER"}})
		existing := folio.NewFolio(b.ID)
		require.NoError(t, f.folios.Create(existing))

		checked, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, checked.Resources.FolioID)
		assert.Len(t, f.folios.CreateCalls, 1, "no second folio should be opened")
	})

	t.Run("retry after a partial failure does not bill twice", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))

		b := newConfirmedBooking(t, f, []booking.Player{{Name: "Sato", IdentityCode: "MEMBER"}})

		// A first attempt got as far as saving the billed folio before the
		// booking save failed, so the folio already carries the green fee.
		existing := folio.NewFolio(b.ID)
		_, err := existing.PostCharge("green_fee:MEMBER", decimal.NewFromInt(500), "check_in")
		require.NoError(t, err)
		require.NoError(t, f.folios.Create(existing))

		checked, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, checked.Resources.FolioID)

		led, err := f.fd.FolioByBooking(b.ID)
		require.NoError(t, err)
		require.Len(t, led.Charges, 1, "the earlier green fee must not be posted again")
		assert.True(t, led.TotalCharges().Equal(decimal.NewFromInt(500)))
	})
}

func TestFrontDesk_CancelAndComplete(t *testing.T) {
	t.Run("cancel is allowed from pending and confirmed only", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))

		b := newConfirmedBooking(t, f, []booking.Player{{IdentityCode: "MEMBER"}})
		cancelled, err := f.fd.Cancel(b.ID, "weather")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status)
		assert.Equal(t, "weather", cancelled.CancelReason)
		assert.Equal(t, 1, f.metr.BookingsCancelled())

		// Terminal: cancelling again is rejected.
		_, err = f.fd.Cancel(b.ID, "again")
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("complete requires a settled folio", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))
		require.NoError(t, f.catalog.Add(resources.Resource{ID: "caddy-1", Kind: resources.KindCaddy}))

		b := newConfirmedBooking(t, f, []booking.Player{{IdentityCode: "GUEST"}})
		_, err := f.fd.CheckIn(b.ID, CheckInRequest{Resources: booking.AssignedResources{CaddyID: "caddy-1"}}, false)
		require.NoError(t, err)

		_, err = f.fd.Complete(b.ID)
		assert.ErrorIs(t, err, booking.ErrFolioNotSettled)

		// Pay the bill, settle, then completion succeeds.
		led, err := f.fd.FolioByBooking(b.ID)
		require.NoError(t, err)
		_, err = f.fd.AddPayment(led.ID, led.Balance(), "cash", "")
		require.NoError(t, err)
		_, err = f.fd.Settle(led.ID, false, false)
		require.NoError(t, err)

		completed, err := f.fd.Complete(b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, completed.Status)
		assert.True(t, completed.Pricing.PendingFee.IsZero())
		assert.True(t, completed.Pricing.TotalFee.Equal(completed.Pricing.PaidFee))
		assert.Contains(t, f.catalog.ReleaseCalls, "caddy-1", "resources should return to the pool")
		assert.Equal(t, 1, f.metr.BookingsCompleted())
	})

	t.Run("forced settle unblocks completion and flags the notification", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))

		b := newConfirmedBooking(t, f, []booking.Player{{IdentityCode: "GUEST"}})
		_, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)

		led, err := f.fd.FolioByBooking(b.ID)
		require.NoError(t, err)

		_, err = f.fd.Settle(led.ID, false, false)
		assert.ErrorIs(t, err, folio.ErrUnsettledBalance)

		_, err = f.fd.Settle(led.ID, true, false)
		require.NoError(t, err)
		require.Len(t, f.notif.SendSettlementNotificationCalls, 1)
		assert.True(t, f.notif.SendSettlementNotificationCalls[0].Forced)

		_, err = f.fd.Complete(b.ID)
		require.NoError(t, err)
	})
}

func TestFrontDesk_RecordHolesPlayed(t *testing.T) {
	t.Run("short round replaces green fees with reduced amounts", func(t *testing.T) {
		f := newFixture(t)
		cell := weekdayMorningCell()
		cell.Prices["GUEST"] = decimal.NewFromInt(1000)
		cell.ReducedPlayPolicy = pricing.ReducedPlayPolicy{
			Type: pricing.ReducedProportional,
			Rate: decimal.NewFromFloat(0.6),
		}
		require.NoError(t, f.rates.UpsertRateCell(cell))

		b := newConfirmedBooking(t, f, []booking.Player{{IdentityCode: "GUEST"}})
		_, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)

		_, err = f.fd.RecordHolesPlayed(b.ID, 9)
		require.NoError(t, err)

		led, err := f.fd.FolioByBooking(b.ID)
		require.NoError(t, err)
		// 9/18 of 1000 is 500, floored at 60% -> 600 replaces the original 1000.
		assert.True(t, led.TotalCharges().Equal(decimal.NewFromInt(600)), "got %s", led.TotalCharges())

		var voided int
		for _, c := range led.Charges {
			if c.Status == folio.ChargeVoided {
				voided++
			}
		}
		assert.Equal(t, 1, voided)
	})

	t.Run("extra holes post an add-on charge per player", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.rates.UpsertRateCell(weekdayMorningCell()))

		b := newConfirmedBooking(t, f, []booking.Player{{IdentityCode: "MEMBER"}})
		_, err := f.fd.CheckIn(b.ID, CheckInRequest{}, false)
		require.NoError(t, err)

		_, err = f.fd.RecordHolesPlayed(b.ID, 27)
		require.NoError(t, err)

		led, err := f.fd.FolioByBooking(b.ID)
		require.NoError(t, err)
		// 500 standard plus 250 add-on (half price fallback).
		assert.True(t, led.TotalCharges().Equal(decimal.NewFromInt(750)))
	})

	t.Run("rejected unless the party is checked in", func(t *testing.T) {
		f := newFixture(t)
		date := time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)
		b, err := f.fd.CreateBooking(date, date.Add(9*time.Hour), "main", 18, []booking.Player{{IdentityCode: "MEMBER"}})
		require.NoError(t, err)

		_, err = f.fd.RecordHolesPlayed(b.ID, 9)
		assert.ErrorIs(t, err, booking.ErrNotCheckedIn)
	})
}

func TestFrontDesk_FolioOperations(t *testing.T) {
	f := newFixture(t)
	led := folio.NewFolio("booking-1")
	require.NoError(t, f.folios.Create(led))

	charge, err := f.fd.PostCharge(led.ID, "restaurant", decimal.NewFromInt(300), "manual")
	require.NoError(t, err)
	assert.Equal(t, 1, f.metr.ChargesPosted())

	_, err = f.fd.PostCharge(led.ID, "proshop", decimal.NewFromInt(200), "manual")
	require.NoError(t, err)
	_, err = f.fd.VoidCharge(led.ID, charge.ID, "wrong table")
	require.NoError(t, err)

	got, err := f.fd.Folio(led.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalCharges().Equal(decimal.NewFromInt(200)))
	assert.Len(t, f.pub.EventsOfType(events.EventChargeVoided), 1)

	_, err = f.fd.AddPayment(led.ID, decimal.NewFromInt(200), "card", "visa")
	require.NoError(t, err)
	assert.True(t, got.Balance().IsZero())

	_, err = f.fd.Settle(led.ID, false, false)
	require.NoError(t, err)
	assert.Len(t, f.pub.EventsOfType(events.EventFolioSettled), 1)
}
