package events

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	topic    string
	teardown func()
}

// EventType names a domain event published to the audit/notification sink.
type EventType string

const (
	EventBookingConfirmed EventType = "booking-confirmed"
	EventBookingCheckedIn EventType = "booking-checked-in"
	EventBookingCancelled EventType = "booking-cancelled"
	EventBookingCompleted EventType = "booking-completed"
	EventChargePosted     EventType = "charge-posted"
	EventChargeVoided     EventType = "charge-voided"
	EventPaymentAdded     EventType = "payment-added"
	EventFolioSettled     EventType = "folio-settled"
)

// Envelope is the wire shape of a published event.
type Envelope struct {
	Type      EventType `msgpack:"type"`
	BookingID string    `msgpack:"booking_id,omitempty"`
	FolioID   string    `msgpack:"folio_id,omitempty"`
	Payload   any       `msgpack:"payload,omitempty"`
}
