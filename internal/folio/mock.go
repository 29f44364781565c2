package folio

import (
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It keeps folios in memory and is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc        func(f *Folio) error
	LoadFunc          func(id string) (*Folio, error)
	LoadByBookingFunc func(bookingID string) (*Folio, error)
	SaveFunc          func(f *Folio) error

	// Call records
	CreateCalls []*Folio
	SaveCalls   []*Folio

	folios map[string]*Folio
}

// NewMock creates a new mock folio store.
func NewMock() *MockStore {
	return &MockStore{folios: make(map[string]*Folio)}
}

func (m *MockStore) Create(f *Folio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, f)
	if m.CreateFunc != nil {
		return m.CreateFunc(f)
	}
	m.folios[f.ID] = f
	return nil
}

func (m *MockStore) Load(id string) (*Folio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(id)
	}
	f, ok := m.folios[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (m *MockStore) LoadByBooking(bookingID string) (*Folio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadByBookingFunc != nil {
		return m.LoadByBookingFunc(bookingID)
	}
	for _, f := range m.folios {
		if f.BookingID == bookingID {
			return f, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) Save(f *Folio) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, f)
	if m.SaveFunc != nil {
		return m.SaveFunc(f)
	}
	m.folios[f.ID] = f
	return nil
}
