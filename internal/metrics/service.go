package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		BookingsCheckedIn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_bookings_checked_in_total",
			Help: "The total number of bookings checked in.",
		}),
		BookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_bookings_completed_total",
			Help: "The total number of bookings completed.",
		}),
		BookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_bookings_cancelled_total",
			Help: "The total number of bookings cancelled.",
		}),
		ChargesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_folio_charges_posted_total",
			Help: "The total number of charges posted to folios.",
		}),
		PaymentsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_folio_payments_recorded_total",
			Help: "The total number of payments recorded on folios.",
		}),
		RateGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_rate_gaps_total",
			Help: "The total number of price lookups that hit an unconfigured rate.",
		}),
		CheckInDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teesheet_check_in_duration_seconds",
			Help:    "The duration of individual booking check-ins.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StaffNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_staff_notifications_sent_total",
			Help: "The total number of staff notifications successfully sent.",
		}),
		StaffNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teesheet_staff_notifications_failed_total",
			Help: "The total number of staff notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "teesheet_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BookingsCheckedIn,
		s.BookingsCompleted,
		s.BookingsCancelled,
		s.ChargesPosted,
		s.PaymentsRecorded,
		s.RateGaps,
		s.CheckInDuration,
		s.StaffNotifSent,
		s.StaffNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncBookingsCheckedIn() {
	s.BookingsCheckedIn.Inc()
}

func (s *Service) IncBookingsCompleted() {
	s.BookingsCompleted.Inc()
}

func (s *Service) IncBookingsCancelled() {
	s.BookingsCancelled.Inc()
}

func (s *Service) IncChargesPosted() {
	s.ChargesPosted.Inc()
}

func (s *Service) IncPaymentsRecorded() {
	s.PaymentsRecorded.Inc()
}

func (s *Service) IncRateGaps() {
	s.RateGaps.Inc()
}

func (s *Service) ObserveCheckInDuration(duration float64) {
	s.CheckInDuration.Observe(duration)
}

func (s *Service) IncStaffNotifSent() {
	s.StaffNotifSent.Inc()
}

func (s *Service) IncStaffNotifFailed() {
	s.StaffNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
