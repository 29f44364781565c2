package frontdesk

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/events"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/metrics"
	"github.com/clubops/teesheet/internal/pricing"
	"github.com/clubops/teesheet/internal/rates"
	"github.com/clubops/teesheet/internal/resources"
	"github.com/shopspring/decimal"
)

// New creates a new FrontDesk.
func New(bookings booking.Store, folios folio.Store, rateCfg rates.ConfigStore, catalog resources.Catalog, notifier Notifier, metrics metrics.Metrics, events events.Publisher) *FrontDesk {
	return &FrontDesk{
		bookings: bookings,
		folios:   folios,
		rates:    rateCfg,
		catalog:  catalog,
		notifier: notifier,
		metrics:  metrics,
		events:   events,
	}
}

// publish sends a domain event. Delivery is fire-and-forget: a failed publish
// is logged and never blocks the operation that produced it.
func (fd *FrontDesk) publish(event events.Envelope) {
	if err := fd.events.Publish(event); err != nil {
		log.Error("Failed to publish event", "type", event.Type, "bookingID", event.BookingID, "error", err)
	}
}

// CreateBooking registers a new pending booking on the tee sheet.
func (fd *FrontDesk) CreateBooking(date, teeTime time.Time, courseID string, holesBooked int, players []booking.Player) (*booking.Booking, error) {
	b, err := booking.New(date, teeTime, courseID, holesBooked, players)
	if err != nil {
		return nil, err
	}
	if err := fd.bookings.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	log.Info("Booking created", "bookingID", b.ID, "teeTime", b.TeeTime.Format(time.RFC3339), "players", len(b.Players))
	return b, nil
}

// Confirm moves a pending booking to confirmed.
func (fd *FrontDesk) Confirm(bookingID string) (*booking.Booking, error) {
	b, err := fd.bookings.Load(bookingID)
	if err != nil {
		return nil, err
	}
	if err := b.Transition(booking.StatusConfirmed); err != nil {
		return nil, err
	}
	if err := fd.bookings.Save(b); err != nil {
		return nil, err
	}
	log.Info("Booking confirmed", "bookingID", b.ID)
	fd.publish(events.Envelope{Type: events.EventBookingConfirmed, BookingID: b.ID})
	return b, nil
}

// CheckIn moves a confirmed booking to checked in. It stages every requested
// resource in the catalog (all-or-nothing), opens or reuses the booking's
// folio, and posts the initial green fee charges derived from the rate sheet.
func (fd *FrontDesk) CheckIn(bookingID string, req CheckInRequest, dryRun bool) (*booking.Booking, error) {
	startTime := time.Now()

	b, err := fd.bookings.Load(bookingID)
	if err != nil {
		return nil, err
	}
	if err := b.Transition(booking.StatusCheckedIn); err != nil {
		return nil, err
	}

	staged, err := fd.stageResources(b.ID, req.Resources)
	if err != nil {
		return nil, err
	}
	rollback := func() {
		for _, id := range staged {
			if relErr := fd.catalog.Release(id); relErr != nil {
				log.Error("Failed to release staged resource", "resourceID", id, "error", relErr)
			}
		}
	}

	f, err := fd.folioForBooking(b.ID)
	if err != nil {
		rollback()
		return nil, err
	}

	if err := fd.postCheckInCharges(b, f, req.Resources, dryRun); err != nil {
		rollback()
		return nil, err
	}
	if err := fd.folios.Save(f); err != nil {
		rollback()
		return nil, err
	}

	b.Resources = req.Resources
	b.Resources.FolioID = f.ID
	if err := fd.bookings.Save(b); err != nil {
		rollback()
		return nil, err
	}

	fd.metrics.IncBookingsCheckedIn()
	fd.metrics.ObserveCheckInDuration(time.Since(startTime).Seconds())
	log.Info("Booking checked in", "bookingID", b.ID, "folioID", f.ID, "resources", len(staged))

	fd.publish(events.Envelope{Type: events.EventBookingCheckedIn, BookingID: b.ID, FolioID: f.ID})
	if err := fd.notifier.SendCheckInNotification(b, dryRun); err != nil {
		log.Error("Failed to send check-in notification", "bookingID", b.ID, "error", err)
	}
	return b, nil
}

// stageResources reserves every requested resource id. On the first conflict
// it releases everything staged so far and fails, leaving no partial binding.
func (fd *FrontDesk) stageResources(bookingID string, res booking.AssignedResources) ([]string, error) {
	var staged []string
	for _, id := range res.IDs() {
		if err := fd.catalog.Reserve(id, bookingID); err != nil {
			for _, stagedID := range staged {
				if relErr := fd.catalog.Release(stagedID); relErr != nil {
					log.Error("Failed to release staged resource", "resourceID", stagedID, "error", relErr)
				}
			}
			return nil, fmt.Errorf("failed to reserve resource %s: %w", id, err)
		}
		staged = append(staged, id)
	}
	return staged, nil
}

// folioForBooking reuses the booking's existing folio if one exists, so a
// repeated check-in attempt never double-bills the party.
func (fd *FrontDesk) folioForBooking(bookingID string) (*folio.Folio, error) {
	f, err := fd.folios.LoadByBooking(bookingID)
	if err == nil {
		log.Info("Reusing existing folio for booking", "bookingID", bookingID, "folioID", f.ID)
		return f, nil
	}
	if !errors.Is(err, folio.ErrNotFound) {
		return nil, err
	}
	f = folio.NewFolio(bookingID)
	if err := fd.folios.Create(f); err != nil {
		return nil, fmt.Errorf("failed to create folio: %w", err)
	}
	return f, nil
}

// postCheckInCharges derives the party's green fees from the rate sheet and
// posts them on the folio. A rate gap posts a zero charge and warns staff
// instead of blocking the check-in. When a team tier matches, the discounted
// subtotal is posted as a single party charge instead of per-player lines.
// A reused folio that was already billed at check-in is left untouched, so a
// retried check-in never doubles the bill.
func (fd *FrontDesk) postCheckInCharges(b *booking.Booking, f *folio.Folio, res booking.AssignedResources, dryRun bool) error {
	for _, c := range f.Charges {
		if c.Status == folio.ChargePosted && c.Source == "check_in" {
			log.Info("Folio already billed at check-in, skipping charges", "bookingID", b.ID, "folioID", f.ID)
			return nil
		}
	}

	dayType, timeSlot, cells, err := fd.rateContext(b)
	if err != nil {
		return err
	}

	subtotal := decimal.Zero
	quotes := make([]pricing.Quote, 0, len(b.Players))
	for _, p := range b.Players {
		quote, qErr := pricing.ResolveStandardPrice(cells, dayType, timeSlot, p.IdentityCode, b.Date)
		if quote.Warning {
			fd.metrics.IncRateGaps()
			if nErr := fd.notifier.SendRateGapWarning(b, p.IdentityCode, dryRun); nErr != nil {
				log.Error("Failed to send rate gap warning", "bookingID", b.ID, "code", p.IdentityCode, "error", nErr)
			}
		} else if qErr != nil {
			return qErr
		}
		quotes = append(quotes, quote)
		subtotal = subtotal.Add(quote.Amount)
	}

	discounted := subtotal
	policy, err := fd.rates.GetTeamPricingPolicy()
	if err == nil {
		discounted = pricing.ApplyTeamDiscount(policy, len(b.Players), subtotal)
	} else if !errors.Is(err, rates.ErrPolicyNotConfigured) {
		return err
	}

	if discounted.LessThan(subtotal) {
		if pErr := fd.postOn(f, "team_green_fee", discounted, "check_in"); pErr != nil {
			return pErr
		}
	} else {
		for i, p := range b.Players {
			chargeType := fmt.Sprintf("green_fee:%s", p.IdentityCode)
			if pErr := fd.postOn(f, chargeType, quotes[i].Amount, "check_in"); pErr != nil {
				return pErr
			}
		}
	}

	cell := pricing.SelectActiveCell(cells, dayType, timeSlot, b.Date)
	if cell == nil {
		return nil
	}
	if res.CaddyID != "" && cell.CaddyFee.IsPositive() {
		if pErr := fd.postOn(f, "caddy_fee", cell.CaddyFee, "check_in"); pErr != nil {
			return pErr
		}
	}
	if res.CartNo != "" && cell.CartFee.IsPositive() {
		if pErr := fd.postOn(f, "cart_fee", cell.CartFee, "check_in"); pErr != nil {
			return pErr
		}
	}
	if cell.InsuranceFee.IsPositive() {
		fee := cell.InsuranceFee.Mul(decimal.NewFromInt(int64(len(b.Players))))
		if pErr := fd.postOn(f, "insurance_fee", fee, "check_in"); pErr != nil {
			return pErr
		}
	}
	return nil
}

// postOn posts a single charge on an in-memory folio and emits the event.
func (fd *FrontDesk) postOn(f *folio.Folio, chargeType string, amount decimal.Decimal, source string) error {
	charge, err := f.PostCharge(chargeType, amount, source)
	if err != nil {
		return err
	}
	fd.metrics.IncChargesPosted()
	fd.publish(events.Envelope{Type: events.EventChargePosted, BookingID: f.BookingID, FolioID: f.ID, Payload: charge})
	return nil
}

// rateContext resolves the pricing axes and rate cell snapshot for a booking.
func (fd *FrontDesk) rateContext(b *booking.Booking) (pricing.DayType, pricing.TimeSlot, []pricing.RateCell, error) {
	holiday, err := fd.rates.IsHoliday(b.Date)
	if err != nil {
		return "", "", nil, err
	}
	dayType := pricing.DayTypeFor(b.Date, holiday)
	timeSlot := pricing.SlotForTeeTime(b.TeeTime)
	cells, err := fd.rates.GetRateCells(dayType, timeSlot, b.Date)
	if err != nil {
		return "", "", nil, err
	}
	return dayType, timeSlot, cells, nil
}

// Cancel moves a pending or confirmed booking to cancelled.
func (fd *FrontDesk) Cancel(bookingID, reason string) (*booking.Booking, error) {
	b, err := fd.bookings.Load(bookingID)
	if err != nil {
		return nil, err
	}
	if err := b.Transition(booking.StatusCancelled); err != nil {
		return nil, err
	}
	b.CancelReason = reason
	if err := fd.bookings.Save(b); err != nil {
		return nil, err
	}
	fd.metrics.IncBookingsCancelled()
	log.Info("Booking cancelled", "bookingID", b.ID, "reason", reason)
	fd.publish(events.Envelope{Type: events.EventBookingCancelled, BookingID: b.ID, Payload: reason})
	return b, nil
}

// Complete moves a checked-in booking to completed. The booking's folio must
// be settled first; the denormalized pricing summary is refreshed from the
// ledger and all bound resources are returned to the pool.
func (fd *FrontDesk) Complete(bookingID string) (*booking.Booking, error) {
	b, err := fd.bookings.Load(bookingID)
	if err != nil {
		return nil, err
	}

	f, err := fd.folios.LoadByBooking(b.ID)
	if err != nil {
		if errors.Is(err, folio.ErrNotFound) {
			return nil, booking.ErrFolioNotSettled
		}
		return nil, err
	}
	if f.Status != folio.StatusSettled {
		return nil, fmt.Errorf("folio %s has balance %s: %w", f.ID, f.Balance(), booking.ErrFolioNotSettled)
	}

	if err := b.Transition(booking.StatusCompleted); err != nil {
		return nil, err
	}
	b.Pricing = booking.PricingSummary{
		TotalFee:   f.TotalCharges(),
		PaidFee:    f.TotalPayments(),
		PendingFee: f.Balance(),
	}
	if err := fd.bookings.Save(b); err != nil {
		return nil, err
	}

	for _, id := range b.Resources.IDs() {
		if relErr := fd.catalog.Release(id); relErr != nil {
			log.Error("Failed to release resource on completion", "resourceID", id, "error", relErr)
		}
	}

	fd.metrics.IncBookingsCompleted()
	log.Info("Booking completed", "bookingID", b.ID, "totalFee", b.Pricing.TotalFee)
	fd.publish(events.Envelope{Type: events.EventBookingCompleted, BookingID: b.ID, FolioID: f.ID})
	return b, nil
}

// RecordHolesPlayed adjusts the green fee charges for a checked-in booking
// based on how many holes the party actually played. A short round voids the
// original per-player charges and posts the reduced-play amounts; extra holes
// post an add-on charge per player.
func (fd *FrontDesk) RecordHolesPlayed(bookingID string, holesPlayed int) (*booking.Booking, error) {
	if holesPlayed < 0 {
		return nil, fmt.Errorf("holes played must be non-negative, got %d", holesPlayed)
	}
	b, err := fd.bookings.Load(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != booking.StatusCheckedIn {
		return nil, fmt.Errorf("booking %s is %s: %w", b.ID, b.Status, booking.ErrNotCheckedIn)
	}
	if holesPlayed == b.HolesBooked {
		return b, nil
	}

	f, err := fd.folios.LoadByBooking(b.ID)
	if err != nil {
		return nil, err
	}
	dayType, timeSlot, cells, err := fd.rateContext(b)
	if err != nil {
		return nil, err
	}
	cell := pricing.SelectActiveCell(cells, dayType, timeSlot, b.Date)
	if cell == nil {
		log.Warn("No rate cell for holes adjustment, leaving charges unchanged", "bookingID", b.ID)
		return b, nil
	}

	if holesPlayed > b.HolesBooked {
		for _, p := range b.Players {
			addOn := pricing.ResolveAddOnPrice(cell, p.IdentityCode)
			chargeType := fmt.Sprintf("add_on_fee:%s", p.IdentityCode)
			if pErr := fd.postOn(f, chargeType, addOn, "holes_adjustment"); pErr != nil {
				return nil, pErr
			}
		}
	} else {
		if err := fd.voidCheckInGreenFees(f); err != nil {
			return nil, err
		}
		for _, p := range b.Players {
			reduced := pricing.ResolveReducedPlayPrice(cell, p.IdentityCode, b.HolesBooked, holesPlayed)
			chargeType := fmt.Sprintf("green_fee:%s", p.IdentityCode)
			if pErr := fd.postOn(f, chargeType, reduced, "holes_adjustment"); pErr != nil {
				return nil, pErr
			}
		}
	}

	if err := fd.folios.Save(f); err != nil {
		return nil, err
	}
	log.Info("Holes played recorded", "bookingID", b.ID, "holesBooked", b.HolesBooked, "holesPlayed", holesPlayed)
	return b, nil
}

// voidCheckInGreenFees voids the posted green fee lines from check-in so the
// reduced-play amounts can replace them. Voided lines stay in the history.
func (fd *FrontDesk) voidCheckInGreenFees(f *folio.Folio) error {
	for _, c := range f.Charges {
		if c.Status != folio.ChargePosted || c.Source != "check_in" {
			continue
		}
		if !strings.HasPrefix(c.Type, "green_fee") && c.Type != "team_green_fee" {
			continue
		}
		if err := f.VoidCharge(c.ID, "holes adjustment"); err != nil {
			return err
		}
		fd.publish(events.Envelope{Type: events.EventChargeVoided, BookingID: f.BookingID, FolioID: f.ID, Payload: c.ID})
	}
	return nil
}

// TeeSheet lists the bookings for one calendar date, ordered by tee time.
func (fd *FrontDesk) TeeSheet(date time.Time) ([]*booking.Booking, error) {
	return fd.bookings.ListByDate(date)
}

// PostCharge posts a manual charge on a folio and persists it.
func (fd *FrontDesk) PostCharge(folioID, chargeType string, amount decimal.Decimal, source string) (folio.Charge, error) {
	f, err := fd.folios.Load(folioID)
	if err != nil {
		return folio.Charge{}, err
	}
	charge, err := f.PostCharge(chargeType, amount, source)
	if err != nil {
		return folio.Charge{}, err
	}
	if err := fd.folios.Save(f); err != nil {
		return folio.Charge{}, err
	}
	fd.metrics.IncChargesPosted()
	fd.publish(events.Envelope{Type: events.EventChargePosted, BookingID: f.BookingID, FolioID: f.ID, Payload: charge})
	return charge, nil
}

// VoidCharge voids a posted charge on a folio and persists it.
func (fd *FrontDesk) VoidCharge(folioID, chargeID, reason string) (*folio.Folio, error) {
	f, err := fd.folios.Load(folioID)
	if err != nil {
		return nil, err
	}
	if err := f.VoidCharge(chargeID, reason); err != nil {
		return nil, err
	}
	if err := fd.folios.Save(f); err != nil {
		return nil, err
	}
	fd.publish(events.Envelope{Type: events.EventChargeVoided, BookingID: f.BookingID, FolioID: f.ID, Payload: chargeID})
	return f, nil
}

// AddPayment records a payment against a folio and persists it.
func (fd *FrontDesk) AddPayment(folioID string, amount decimal.Decimal, method, note string) (folio.Payment, error) {
	f, err := fd.folios.Load(folioID)
	if err != nil {
		return folio.Payment{}, err
	}
	payment, err := f.AddPayment(amount, method, note)
	if err != nil {
		return folio.Payment{}, err
	}
	if err := fd.folios.Save(f); err != nil {
		return folio.Payment{}, err
	}
	fd.metrics.IncPaymentsRecorded()
	fd.publish(events.Envelope{Type: events.EventPaymentAdded, BookingID: f.BookingID, FolioID: f.ID, Payload: payment})
	return payment, nil
}

// Settle closes a folio. Force closes it with an outstanding balance, which
// is reported to staff.
func (fd *FrontDesk) Settle(folioID string, force, dryRun bool) (*folio.Folio, error) {
	f, err := fd.folios.Load(folioID)
	if err != nil {
		return nil, err
	}
	forced := force && f.Balance().IsPositive()
	if err := f.Settle(force); err != nil {
		return nil, err
	}
	if err := fd.folios.Save(f); err != nil {
		return nil, err
	}
	fd.publish(events.Envelope{Type: events.EventFolioSettled, BookingID: f.BookingID, FolioID: f.ID})
	if err := fd.notifier.SendSettlementNotification(f, forced, dryRun); err != nil {
		log.Error("Failed to send settlement notification", "folioID", f.ID, "error", err)
	}
	return f, nil
}

// Folio returns a folio by id.
func (fd *FrontDesk) Folio(folioID string) (*folio.Folio, error) {
	return fd.folios.Load(folioID)
}

// FolioByBooking returns the folio attached to a booking.
func (fd *FrontDesk) FolioByBooking(bookingID string) (*folio.Folio, error) {
	return fd.folios.LoadByBooking(bookingID)
}

// Booking returns a booking by id.
func (fd *FrontDesk) Booking(bookingID string) (*booking.Booking, error) {
	return fd.bookings.Load(bookingID)
}
