package events

// Publisher emits domain events to the audit sink. Delivery is
// fire-and-forget; the core never depends on a delivery confirmation.
type Publisher interface {
	Publish(event Envelope) error
	Decode(data []byte, returnValue any) error
}
