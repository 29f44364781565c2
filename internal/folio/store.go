package folio

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a SQL-backed folio store.
func New(db *sql.DB) Store {
	return &store{
		db:         db,
		folioLocks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the per-folio mutex, creating it on first use. Serializing
// per folio keeps charge/payment history append-only under concurrent posts
// without a global lock across folios.
func (s *store) lockFor(folioID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.folioLocks[folioID]
	if !ok {
		l = &sync.Mutex{}
		s.folioLocks[folioID] = l
	}
	return l
}

func (s *store) Create(f *Folio) error {
	l := s.lockFor(f.ID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO folios (id, booking_id, status, created_at, version)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.BookingID, f.Status, f.CreatedAt.Unix(), f.Version)
	if err != nil {
		tx.Rollback()
		return err
	}
	if err := s.writeLines(tx, f); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) Load(id string) (*Folio, error) {
	row := s.db.QueryRow(`SELECT id, booking_id, status, created_at, version FROM folios WHERE id = ?`, id)
	return s.scanFolio(row)
}

func (s *store) LoadByBooking(bookingID string) (*Folio, error) {
	row := s.db.QueryRow(`SELECT id, booking_id, status, created_at, version FROM folios WHERE booking_id = ?`, bookingID)
	return s.scanFolio(row)
}

func (s *store) scanFolio(row *sql.Row) (*Folio, error) {
	var f Folio
	var createdAt int64
	err := row.Scan(&f.ID, &f.BookingID, &f.Status, &createdAt, &f.Version)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan folio: %w", err)
	}
	f.CreatedAt = time.Unix(createdAt, 0).UTC()

	if err := s.loadLines(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *store) loadLines(f *Folio) error {
	rows, err := s.db.Query(`
		SELECT id, charge_type, amount, status, charge_source, void_reason, created_at
		FROM folio_charges WHERE folio_id = ? ORDER BY seq`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c Charge
		var voidReason sql.NullString
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Type, &c.Amount, &c.Status, &c.Source, &voidReason, &createdAt); err != nil {
			return err
		}
		c.VoidReason = voidReason.String
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		f.Charges = append(f.Charges, c)
	}

	payRows, err := s.db.Query(`
		SELECT id, amount, pay_method, note, created_at
		FROM folio_payments WHERE folio_id = ? ORDER BY seq`, f.ID)
	if err != nil {
		return err
	}
	defer payRows.Close()
	for payRows.Next() {
		var p Payment
		var note sql.NullString
		var createdAt int64
		if err := payRows.Scan(&p.ID, &p.Amount, &p.Method, &note, &createdAt); err != nil {
			return err
		}
		p.Note = note.String
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		f.Payments = append(f.Payments, p)
	}
	return nil
}

// Save persists the folio state. The version check rejects stale writes so a
// lost race surfaces as ErrVersionConflict instead of silently overwriting.
func (s *store) Save(f *Folio) error {
	l := s.lockFor(f.ID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec(`
		UPDATE folios SET status = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		f.Status, f.ID, f.Version)
	if err != nil {
		tx.Rollback()
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		log.Warn("Folio save rejected by version check", "folioID", f.ID, "version", f.Version)
		return ErrVersionConflict
	}
	if err := s.writeLines(tx, f); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	f.Version++
	return nil
}

// writeLines upserts charges and payments. Charge inserts carry their slice
// position as seq so insertion order survives reloads; existing charges only
// ever change status and void_reason (the void path), amounts are immutable.
func (s *store) writeLines(tx *sql.Tx, f *Folio) error {
	chargeStmt, err := tx.Prepare(`
		INSERT INTO folio_charges (id, folio_id, seq, charge_type, amount, status, charge_source, void_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			void_reason = excluded.void_reason;
	`)
	if err != nil {
		return err
	}
	defer chargeStmt.Close()
	for i, c := range f.Charges {
		if _, err := chargeStmt.Exec(c.ID, f.ID, i, c.Type, c.Amount, c.Status, c.Source, c.VoidReason, c.CreatedAt.Unix()); err != nil {
			return err
		}
	}

	payStmt, err := tx.Prepare(`
		INSERT INTO folio_payments (id, folio_id, seq, amount, pay_method, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`)
	if err != nil {
		return err
	}
	defer payStmt.Close()
	for i, p := range f.Payments {
		if _, err := payStmt.Exec(p.ID, f.ID, i, p.Amount, p.Method, p.Note, p.CreatedAt.Unix()); err != nil {
			return err
		}
	}
	return nil
}
