package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	BookingsCheckedIn  prometheus.Counter
	BookingsCompleted  prometheus.Counter
	BookingsCancelled  prometheus.Counter
	ChargesPosted      prometheus.Counter
	PaymentsRecorded   prometheus.Counter
	RateGaps           prometheus.Counter
	CheckInDuration    prometheus.Histogram
	StaffNotifSent     prometheus.Counter
	StaffNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
