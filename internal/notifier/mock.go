package notifier

import (
	"sync"

	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/pricing"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendCheckInNotificationFunc    func(b *booking.Booking, dryRun bool) error
	SendRateGapWarningFunc         func(b *booking.Booking, code pricing.IdentityCode, dryRun bool) error
	SendSettlementNotificationFunc func(f *folio.Folio, forced bool, dryRun bool) error

	// Call records
	SendCheckInNotificationCalls []struct{ Booking *booking.Booking }
	SendRateGapWarningCalls      []struct {
		Booking *booking.Booking
		Code    pricing.IdentityCode
	}
	SendSettlementNotificationCalls []struct {
		Folio  *folio.Folio
		Forced bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCheckInNotificationCalls = nil
	m.SendRateGapWarningCalls = nil
	m.SendSettlementNotificationCalls = nil
}

func (m *Mock) SendCheckInNotification(b *booking.Booking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCheckInNotificationCalls = append(m.SendCheckInNotificationCalls, struct{ Booking *booking.Booking }{b})
	if m.SendCheckInNotificationFunc != nil {
		return m.SendCheckInNotificationFunc(b, dryRun)
	}
	return nil
}

func (m *Mock) SendRateGapWarning(b *booking.Booking, code pricing.IdentityCode, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRateGapWarningCalls = append(m.SendRateGapWarningCalls, struct {
		Booking *booking.Booking
		Code    pricing.IdentityCode
	}{b, code})
	if m.SendRateGapWarningFunc != nil {
		return m.SendRateGapWarningFunc(b, code, dryRun)
	}
	return nil
}

func (m *Mock) SendSettlementNotification(f *folio.Folio, forced bool, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSettlementNotificationCalls = append(m.SendSettlementNotificationCalls, struct {
		Folio  *folio.Folio
		Forced bool
	}{f, forced})
	if m.SendSettlementNotificationFunc != nil {
		return m.SendSettlementNotificationFunc(f, forced, dryRun)
	}
	return nil
}
