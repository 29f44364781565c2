package rates

import (
	"sync"
	"time"

	"github.com/clubops/teesheet/internal/pricing"
)

// MockStore is a mock implementation of the ConfigStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetActiveIdentityTypesFunc func() ([]pricing.IdentityType, error)
	GetRateCellsFunc           func(dayType pricing.DayType, timeSlot pricing.TimeSlot, date time.Time) ([]pricing.RateCell, error)
	GetTeamPricingPolicyFunc   func() (pricing.TeamPricingPolicy, error)
	IsHolidayFunc              func(date time.Time) (bool, error)

	identityTypes map[pricing.IdentityCode]pricing.IdentityType
	cells         []pricing.RateCell
	policy        *pricing.TeamPricingPolicy
	holidays      map[string]string
}

// NewMock creates a new mock configuration store.
func NewMock() *MockStore {
	return &MockStore{
		identityTypes: make(map[pricing.IdentityCode]pricing.IdentityType),
		holidays:      make(map[string]string),
	}
}

func (m *MockStore) GetActiveIdentityTypes() ([]pricing.IdentityType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActiveIdentityTypesFunc != nil {
		return m.GetActiveIdentityTypesFunc()
	}
	var out []pricing.IdentityType
	for _, it := range m.identityTypes {
		if it.Status == pricing.IdentityActive {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *MockStore) UpsertIdentityType(it pricing.IdentityType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identityTypes[it.Code] = it
	return nil
}

func (m *MockStore) GetRateCells(dayType pricing.DayType, timeSlot pricing.TimeSlot, date time.Time) ([]pricing.RateCell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRateCellsFunc != nil {
		return m.GetRateCellsFunc(dayType, timeSlot, date)
	}
	var out []pricing.RateCell
	for _, c := range m.cells {
		if c.DayType == dayType && c.TimeSlot == timeSlot {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockStore) UpsertRateCell(cell pricing.RateCell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cells {
		if m.cells[i].ID == cell.ID {
			m.cells[i] = cell
			return nil
		}
	}
	m.cells = append(m.cells, cell)
	return nil
}

func (m *MockStore) GetTeamPricingPolicy() (pricing.TeamPricingPolicy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamPricingPolicyFunc != nil {
		return m.GetTeamPricingPolicyFunc()
	}
	if m.policy == nil {
		return pricing.TeamPricingPolicy{}, ErrPolicyNotConfigured
	}
	return *m.policy, nil
}

func (m *MockStore) SetTeamPricingPolicy(policy pricing.TeamPricingPolicy) error {
	if err := pricing.ValidatePolicy(policy); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.policy = &policy
	return nil
}

func (m *MockStore) IsHoliday(date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsHolidayFunc != nil {
		return m.IsHolidayFunc(date)
	}
	_, ok := m.holidays[date.Format("2006-01-02")]
	return ok, nil
}

func (m *MockStore) AddHoliday(date time.Time, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[date.Format("2006-01-02")] = name
	return nil
}
