package folio

// Store defines the persistence operations for folios. Save is an atomic
// read-modify-write guarded by the folio's optimistic version.
type Store interface {
	Create(f *Folio) error
	Load(id string) (*Folio, error)
	LoadByBooking(bookingID string) (*Folio, error)
	Save(f *Folio) error
}
