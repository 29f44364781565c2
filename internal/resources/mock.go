package resources

import (
	"sync"
)

// MockCatalog is a mock implementation of the Catalog interface for testing.
// It keeps resources in memory and is safe for concurrent use.
type MockCatalog struct {
	mu sync.Mutex

	// Spies for method calls
	ListAvailableFunc func(kind Kind) ([]Resource, error)
	ReserveFunc       func(resourceID, bookingID string) error
	ReleaseFunc       func(resourceID string) error

	// Call records
	ReserveCalls []struct {
		ResourceID string
		BookingID  string
	}
	ReleaseCalls []string

	resources map[string]*Resource
}

// NewMock creates a new mock catalog.
func NewMock() *MockCatalog {
	return &MockCatalog{resources: make(map[string]*Resource)}
}

func (m *MockCatalog) Add(r Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := r
	m.resources[r.ID] = &cp
	return nil
}

func (m *MockCatalog) ListAvailable(kind Kind) ([]Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListAvailableFunc != nil {
		return m.ListAvailableFunc(kind)
	}
	var out []Resource
	for _, r := range m.resources {
		if r.Kind == kind && r.HolderID == "" {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *MockCatalog) Reserve(resourceID, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReserveCalls = append(m.ReserveCalls, struct {
		ResourceID string
		BookingID  string
	}{resourceID, bookingID})
	if m.ReserveFunc != nil {
		return m.ReserveFunc(resourceID, bookingID)
	}
	r, ok := m.resources[resourceID]
	if !ok || r.HolderID != "" {
		return &UnavailableError{ResourceID: resourceID}
	}
	r.HolderID = bookingID
	return nil
}

func (m *MockCatalog) Release(resourceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseCalls = append(m.ReleaseCalls, resourceID)
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(resourceID)
	}
	if r, ok := m.resources[resourceID]; ok {
		r.HolderID = ""
	}
	return nil
}
