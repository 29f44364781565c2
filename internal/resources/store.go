package resources

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

// New creates a SQL-backed resource catalog.
func New(db *sql.DB) Catalog {
	return &store{db: db}
}

func (s *store) Add(r Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO resources (id, kind, name, holder_id)
		VALUES (?, ?, ?, NULL)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			name = excluded.name;`,
		r.ID, r.Kind, r.Name)
	return err
}

func (s *store) ListAvailable(kind Kind) ([]Resource, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, name FROM resources
		WHERE kind = ? AND holder_id IS NULL ORDER BY name`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resource
	for rows.Next() {
		var r Resource
		if err := rows.Scan(&r.ID, &r.Kind, &r.Name); err != nil {
			log.Error("Failed to scan resource row", "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Reserve binds the resource to a booking. The conditional update is the
// mutual-exclusion guard: only an unheld resource row matches, so two
// bookings can never hold the same id.
func (s *store) Reserve(resourceID, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE resources SET holder_id = ?
		WHERE id = ? AND holder_id IS NULL`,
		bookingID, resourceID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &UnavailableError{ResourceID: resourceID}
	}
	log.Debug("Reserved resource", "resourceID", resourceID, "bookingID", bookingID)
	return nil
}

func (s *store) Release(resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE resources SET holder_id = NULL WHERE id = ?`, resourceID)
	if err == nil {
		log.Debug("Released resource", "resourceID", resourceID)
	}
	return err
}
