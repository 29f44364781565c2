package events

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MockPublisher is a mock implementation of Publisher for testing.
// It is safe for concurrent use.
type MockPublisher struct {
	mu sync.Mutex

	// Spies for method calls
	PublishFunc func(event Envelope) error

	// Call records
	PublishCalls []Envelope
}

// NewMock creates a new mock publisher.
func NewMock() *MockPublisher {
	return &MockPublisher{}
}

// Reset clears all call records.
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}

func (m *MockPublisher) Publish(event Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *MockPublisher) Decode(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

// EventsOfType returns recorded events matching the given type.
func (m *MockPublisher) EventsOfType(t EventType) []Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Envelope
	for _, e := range m.PublishCalls {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
