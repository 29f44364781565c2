package frontdesk

import (
	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/events"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/metrics"
	"github.com/clubops/teesheet/internal/rates"
	"github.com/clubops/teesheet/internal/resources"
)

// FrontDesk handles the business logic of the booking lifecycle. Every
// operation loads current state, applies the transition, and saves through
// the stores' optimistic version checks.
type FrontDesk struct {
	bookings booking.Store
	folios   folio.Store
	rates    rates.ConfigStore
	catalog  resources.Catalog
	notifier Notifier
	metrics  metrics.Metrics
	events   events.Publisher
}

// CheckInRequest carries the resources the staff selected for the party.
// Every id must be free in the catalog or the whole check-in aborts.
type CheckInRequest struct {
	Resources booking.AssignedResources `json:"resources"`
}
