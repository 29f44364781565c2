package booking

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the Store interface for testing.
// It keeps bookings in memory and is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc     func(b *Booking) error
	LoadFunc       func(id string) (*Booking, error)
	SaveFunc       func(b *Booking) error
	ListByDateFunc func(date time.Time) ([]*Booking, error)

	// Call records
	CreateCalls []*Booking
	SaveCalls   []*Booking

	bookings map[string]*Booking
}

// NewMock creates a new mock booking store.
func NewMock() *MockStore {
	return &MockStore{bookings: make(map[string]*Booking)}
}

func (m *MockStore) Create(b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, b)
	if m.CreateFunc != nil {
		return m.CreateFunc(b)
	}
	m.bookings[b.ID] = b
	return nil
}

func (m *MockStore) Load(id string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(id)
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (m *MockStore) Save(b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, b)
	if m.SaveFunc != nil {
		return m.SaveFunc(b)
	}
	m.bookings[b.ID] = b
	return nil
}

func (m *MockStore) ListByDate(date time.Time) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListByDateFunc != nil {
		return m.ListByDateFunc(date)
	}
	var out []*Booking
	for _, b := range m.bookings {
		if b.Date.Year() == date.Year() && b.Date.YearDay() == date.YearDay() {
			out = append(out, b)
		}
	}
	return out, nil
}
