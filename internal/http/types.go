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

type Server struct {
	FrontDesk      *frontdesk.FrontDesk
	Rates          rates.ConfigStore
	Catalog        resources.Catalog
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Events         events.Publisher
	Router         *http.ServeMux
}
