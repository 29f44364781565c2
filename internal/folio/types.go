package folio

import (
	"database/sql"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// store handles all database operations for folios.
type store struct {
	db *sql.DB
	mu sync.Mutex
	// one lock per folio so concurrent posts on the same bill serialize
	// without blocking other folios.
	folioLocks map[string]*sync.Mutex
}

// Status of a folio. A settled folio is re-opened by posting a new charge.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusSettled Status = "SETTLED"
)

// ChargeStatus of one ledger line. Voided lines stay in the history.
type ChargeStatus string

const (
	ChargePosted ChargeStatus = "POSTED"
	ChargeVoided ChargeStatus = "VOIDED"
)

// Charge is one billed line on a folio.
type Charge struct {
	ID         string          `json:"id"`
	Type       string          `json:"charge_type"`
	Amount     decimal.Decimal `json:"amount"`
	Status     ChargeStatus    `json:"status"`
	Source     string          `json:"charge_source"`
	VoidReason string          `json:"void_reason,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Payment is one received payment. Payments are append-only; refunds are
// separate adjustment entries, never edits.
type Payment struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"pay_method"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Folio is the running bill for one checked-in stay.
type Folio struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Status    Status    `json:"status"`
	Charges   []Charge  `json:"charges"`
	Payments  []Payment `json:"payments"`
	CreatedAt time.Time `json:"created_at"`
	Version   int64     `json:"version"`
}
