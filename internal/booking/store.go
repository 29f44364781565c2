package booking

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// NewStore creates a SQL-backed booking store.
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Create(b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playersJSON, err := json.Marshal(b.Players)
	if err != nil {
		return err
	}
	resourcesJSON, err := json.Marshal(b.Resources)
	if err != nil {
		return err
	}
	pricingJSON, err := json.Marshal(b.Pricing)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO bookings (id, booking_date, tee_time, course_id, holes_booked, players_json, status, resources_json, pricing_json, cancel_reason, created_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Date.Unix(), b.TeeTime.Unix(), b.CourseID, b.HolesBooked, playersJSON, b.Status, resourcesJSON, pricingJSON, b.CancelReason, b.CreatedAt.Unix(), b.Version)
	return err
}

func (s *store) Load(id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, booking_date, tee_time, course_id, holes_booked, players_json, status, resources_json, pricing_json, cancel_reason, created_at, version
		FROM bookings WHERE id = ?`, id)
	return s.scanBooking(row)
}

func (s *store) scanBooking(scanner interface{ Scan(...any) error }) (*Booking, error) {
	var b Booking
	var date, teeTime, createdAt int64
	var playersJSON, resourcesJSON, pricingJSON []byte
	var cancelReason sql.NullString

	err := scanner.Scan(&b.ID, &date, &teeTime, &b.CourseID, &b.HolesBooked, &playersJSON,
		&b.Status, &resourcesJSON, &pricingJSON, &cancelReason, &createdAt, &b.Version)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	b.Date = time.Unix(date, 0).UTC()
	b.TeeTime = time.Unix(teeTime, 0).UTC()
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	b.CancelReason = cancelReason.String

	if err := json.Unmarshal(playersJSON, &b.Players); err != nil {
		log.Error("Failed to unmarshal players_json", "error", err, "bookingID", b.ID)
	}
	if err := json.Unmarshal(resourcesJSON, &b.Resources); err != nil {
		log.Error("Failed to unmarshal resources_json", "error", err, "bookingID", b.ID)
	}
	if err := json.Unmarshal(pricingJSON, &b.Pricing); err != nil {
		log.Error("Failed to unmarshal pricing_json", "error", err, "bookingID", b.ID)
	}
	return &b, nil
}

// Save persists the booking state. The version check rejects stale writes so
// concurrent edits surface as ErrVersionConflict instead of lost updates.
func (s *store) Save(b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playersJSON, err := json.Marshal(b.Players)
	if err != nil {
		return err
	}
	resourcesJSON, err := json.Marshal(b.Resources)
	if err != nil {
		return err
	}
	pricingJSON, err := json.Marshal(b.Pricing)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE bookings SET status = ?, players_json = ?, resources_json = ?, pricing_json = ?, cancel_reason = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		b.Status, playersJSON, resourcesJSON, pricingJSON, b.CancelReason, b.ID, b.Version)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("Booking save rejected by version check", "bookingID", b.ID, "version", b.Version)
		return ErrVersionConflict
	}
	b.Version++
	return nil
}

// ListByDate returns the tee sheet for one calendar day, ordered by tee time.
func (s *store) ListByDate(date time.Time) ([]*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := s.db.Query(`
		SELECT id, booking_date, tee_time, course_id, holes_booked, players_json, status, resources_json, pricing_json, cancel_reason, created_at, version
		FROM bookings WHERE booking_date >= ? AND booking_date < ? ORDER BY tee_time`,
		dayStart.Unix(), dayEnd.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := s.scanBooking(rows)
		if err != nil {
			log.Error("Failed to scan booking row", "error", err)
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
