package http

import (
	"net/http"

	"github.com/clubops/teesheet/internal/config"
	"github.com/clubops/teesheet/internal/events"
	"github.com/clubops/teesheet/internal/frontdesk"
	"github.com/clubops/teesheet/internal/metrics"
	"github.com/clubops/teesheet/internal/rates"
	"github.com/clubops/teesheet/internal/resources"
)

func NewServer(fd *frontdesk.FrontDesk, rateCfg rates.ConfigStore, catalog resources.Catalog, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, events events.Publisher) *Server {
	server := &Server{
		FrontDesk:      fd,
		Rates:          rateCfg,
		Catalog:        catalog,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Events:         events,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("/tee-sheet", Chain(s.TeeSheetHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/create", Chain(s.CreateBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/get", Chain(s.GetBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/confirm", Chain(s.ConfirmBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/check-in", Chain(s.CheckInHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/cancel", Chain(s.CancelBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/complete", Chain(s.CompleteBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/holes-played", Chain(s.RecordHolesPlayedHandler(), paramsMiddleware))

	s.Router.Handle("/folios/get", Chain(s.GetFolioHandler(), paramsMiddleware))
	s.Router.Handle("/folios/charge", Chain(s.PostChargeHandler(), paramsMiddleware))
	s.Router.Handle("/folios/void", Chain(s.VoidChargeHandler(), paramsMiddleware))
	s.Router.Handle("/folios/pay", Chain(s.AddPaymentHandler(), paramsMiddleware))
	s.Router.Handle("/folios/settle", Chain(s.SettleFolioHandler(), paramsMiddleware))

	s.Router.Handle("/rates/cells", Chain(s.UpsertRateCellHandler(), paramsMiddleware))
	s.Router.Handle("/rates/policy", Chain(s.TeamPolicyHandler(), paramsMiddleware))
	s.Router.Handle("/rates/identity-types", Chain(s.IdentityTypesHandler(), paramsMiddleware))
	s.Router.Handle("/rates/holidays", Chain(s.AddHolidayHandler(), paramsMiddleware))

	s.Router.Handle("/resources", Chain(s.ListResourcesHandler(), paramsMiddleware))
	s.Router.Handle("/resources/add", Chain(s.AddResourceHandler(), paramsMiddleware))

	s.Router.Handle("/events/push", Chain(s.EventPushHandler(), paramsMiddleware))
	s.Router.Handle("/events/stats", Chain(s.EventStatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
