package booking

import "time"

// Store defines the persistence operations for bookings. Save is an atomic
// read-modify-write guarded by the booking's optimistic version.
type Store interface {
	Create(b *Booking) error
	Load(id string) (*Booking, error)
	Save(b *Booking) error
	ListByDate(date time.Time) ([]*Booking, error)
}
