package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncBookingsCheckedIn()
	IncBookingsCompleted()
	IncBookingsCancelled()
	IncChargesPosted()
	IncPaymentsRecorded()
	IncRateGaps()
	ObserveCheckInDuration(duration float64)
	IncStaffNotifSent()
	IncStaffNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists simple operational counters across restarts.
// Prometheus counters reset with the process; these do not.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
