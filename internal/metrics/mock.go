package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	bookingsCheckedIn int
	bookingsCompleted int
	bookingsCancelled int
	chargesPosted     int
	paymentsRecorded  int
	rateGaps          int
	checkInDurations  []float64
	staffNotifSent    int
	staffNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		checkInDurations: make([]float64, 0),
	}
}

func (m *Mock) IncBookingsCheckedIn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsCheckedIn++
}

func (m *Mock) IncBookingsCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsCompleted++
}

func (m *Mock) IncBookingsCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingsCancelled++
}

func (m *Mock) IncChargesPosted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chargesPosted++
}

func (m *Mock) IncPaymentsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentsRecorded++
}

func (m *Mock) IncRateGaps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateGaps++
}

func (m *Mock) ObserveCheckInDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkInDurations = append(m.checkInDurations, duration)
}

func (m *Mock) IncStaffNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staffNotifSent++
}

func (m *Mock) IncStaffNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staffNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// BookingsCheckedIn returns the number of times IncBookingsCheckedIn was called.
func (m *Mock) BookingsCheckedIn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsCheckedIn
}

// BookingsCompleted returns the number of times IncBookingsCompleted was called.
func (m *Mock) BookingsCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsCompleted
}

// BookingsCancelled returns the number of times IncBookingsCancelled was called.
func (m *Mock) BookingsCancelled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookingsCancelled
}

// ChargesPosted returns the number of times IncChargesPosted was called.
func (m *Mock) ChargesPosted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chargesPosted
}

// RateGaps returns the number of times IncRateGaps was called.
func (m *Mock) RateGaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rateGaps
}

// StaffNotifSent returns the number of times IncStaffNotifSent was called.
func (m *Mock) StaffNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staffNotifSent
}

// StaffNotifFailed returns the number of times IncStaffNotifFailed was called.
func (m *Mock) StaffNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staffNotifFailed
}
