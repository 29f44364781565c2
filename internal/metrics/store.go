package metrics

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists operational counters in the metrics table. Prometheus
// counters reset whenever the process restarts; these rows do not, which is
// what the event push handler needs for its running event tallies.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a SQL-backed counter store.
func New(db *sql.DB) MetricsStore {
	return &store{db: db}
}

// Increment bumps the counter for key, creating it at 1 on first use. Keys
// follow a "<domain>:<name>" convention, like "event:charge-posted".
// Failures are logged and swallowed; a lost tally must never fail the
// request that produced it.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;`, key)
	if err != nil {
		log.Error("Failed to increment counter", "key", key, "error", err)
		return
	}
	log.Debug("Incremented counter", "key", key)
}

// GetAll returns every persisted counter.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT key, value FROM metrics ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter row: %w", err)
		}
		counters[key] = value
	}
	return counters, nil
}
