package rates

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubops/teesheet/internal/pricing"
)

// store handles all database operations for pricing configuration.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQL-backed configuration store.
func New(db *sql.DB) ConfigStore {
	return &store{db: db}
}

func (s *store) GetActiveIdentityTypes() ([]pricing.IdentityType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT code, name, category, status, sort_order, color
		FROM identity_types WHERE status = ? ORDER BY sort_order`,
		pricing.IdentityActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.IdentityType
	for rows.Next() {
		var it pricing.IdentityType
		if err := rows.Scan(&it.Code, &it.Name, &it.Category, &it.Status, &it.SortOrder, &it.Color); err != nil {
			log.Error("Failed to scan identity type row", "error", err)
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *store) UpsertIdentityType(it pricing.IdentityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO identity_types (code, name, category, status, sort_order, color)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			status = excluded.status,
			sort_order = excluded.sort_order,
			color = excluded.color;`,
		it.Code, it.Name, it.Category, it.Status, it.SortOrder, it.Color)
	return err
}

// GetRateCells returns every cell for (dayType, timeSlot) whose validity
// window contains date. Priority and ValidFrom tie-breaking belong to the
// resolver, not the store.
func (s *store) GetRateCells(dayType pricing.DayType, timeSlot pricing.TimeSlot, date time.Time) ([]pricing.RateCell, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, day_type, time_slot, prices_json, add_on_prices_json, reduced_play_json, caddy_fee, cart_fee, insurance_fee, valid_from, valid_to, priority, status
		FROM rate_cells
		WHERE day_type = ? AND time_slot = ? AND valid_from <= ? AND valid_to >= ?`,
		dayType, timeSlot, date.Unix(), date.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []pricing.RateCell
	for rows.Next() {
		cell, err := scanRateCell(rows)
		if err != nil {
			log.Error("Failed to scan rate cell row", "error", err)
			continue
		}
		cells = append(cells, *cell)
	}
	return cells, nil
}

func scanRateCell(scanner interface{ Scan(...any) error }) (*pricing.RateCell, error) {
	var cell pricing.RateCell
	var pricesJSON, reducedJSON []byte
	var addOnJSON sql.NullString
	var validFrom, validTo int64

	err := scanner.Scan(&cell.ID, &cell.DayType, &cell.TimeSlot, &pricesJSON, &addOnJSON, &reducedJSON,
		&cell.CaddyFee, &cell.CartFee, &cell.InsuranceFee, &validFrom, &validTo, &cell.Priority, &cell.Status)
	if err != nil {
		return nil, err
	}
	cell.ValidFrom = time.Unix(validFrom, 0).UTC()
	cell.ValidTo = time.Unix(validTo, 0).UTC()

	if err := json.Unmarshal(pricesJSON, &cell.Prices); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prices_json: %w", err)
	}
	if addOnJSON.Valid && addOnJSON.String != "" {
		if err := json.Unmarshal([]byte(addOnJSON.String), &cell.AddOnPrices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal add_on_prices_json: %w", err)
		}
	}
	if err := json.Unmarshal(reducedJSON, &cell.ReducedPlayPolicy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reduced_play_json: %w", err)
	}
	return &cell, nil
}

func (s *store) UpsertRateCell(cell pricing.RateCell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pricesJSON, err := json.Marshal(cell.Prices)
	if err != nil {
		return err
	}
	addOnJSON, err := json.Marshal(cell.AddOnPrices)
	if err != nil {
		return err
	}
	reducedJSON, err := json.Marshal(cell.ReducedPlayPolicy)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO rate_cells (id, day_type, time_slot, prices_json, add_on_prices_json, reduced_play_json, caddy_fee, cart_fee, insurance_fee, valid_from, valid_to, priority, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day_type = excluded.day_type,
			time_slot = excluded.time_slot,
			prices_json = excluded.prices_json,
			add_on_prices_json = excluded.add_on_prices_json,
			reduced_play_json = excluded.reduced_play_json,
			caddy_fee = excluded.caddy_fee,
			cart_fee = excluded.cart_fee,
			insurance_fee = excluded.insurance_fee,
			valid_from = excluded.valid_from,
			valid_to = excluded.valid_to,
			priority = excluded.priority,
			status = excluded.status;`,
		cell.ID, cell.DayType, cell.TimeSlot, pricesJSON, string(addOnJSON), reducedJSON,
		cell.CaddyFee, cell.CartFee, cell.InsuranceFee, cell.ValidFrom.Unix(), cell.ValidTo.Unix(), cell.Priority, cell.Status)
	return err
}

// GetTeamPricingPolicy reads the single club-wide policy row.
func (s *store) GetTeamPricingPolicy() (pricing.TeamPricingPolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var policyJSON []byte
	err := s.db.QueryRow(`SELECT policy_json FROM team_pricing_policy WHERE id = 1`).Scan(&policyJSON)
	if err == sql.ErrNoRows {
		return pricing.TeamPricingPolicy{}, ErrPolicyNotConfigured
	}
	if err != nil {
		return pricing.TeamPricingPolicy{}, err
	}
	var policy pricing.TeamPricingPolicy
	if err := json.Unmarshal(policyJSON, &policy); err != nil {
		return pricing.TeamPricingPolicy{}, fmt.Errorf("failed to unmarshal policy_json: %w", err)
	}
	return policy, nil
}

// SetTeamPricingPolicy validates and stores the policy.
func (s *store) SetTeamPricingPolicy(policy pricing.TeamPricingPolicy) error {
	if err := pricing.ValidatePolicy(policy); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO team_pricing_policy (id, policy_json) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET policy_json = excluded.policy_json;`,
		policyJSON)
	return err
}

func (s *store) IsHoliday(date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM holidays WHERE day = ?)`, date.Format("2006-01-02")).Scan(&exists)
	return exists, err
}

func (s *store) AddHoliday(date time.Time, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO holidays (day, name) VALUES (?, ?)
		ON CONFLICT(day) DO UPDATE SET name = excluded.name;`,
		date.Format("2006-01-02"), name)
	return err
}
