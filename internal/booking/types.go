package booking

import (
	"database/sql"
	"sync"
	"time"

	"github.com/clubops/teesheet/internal/pricing"
	"github.com/shopspring/decimal"
)

// store handles all database operations for bookings.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Player is one member of the booked party.
type Player struct {
	Name         string               `json:"name"`
	IdentityCode pricing.IdentityCode `json:"identity_code"`
}

// AssignedResources is the set of resources bound at check-in. All fields are
// set together or not at all; check-in never leaves a partial binding behind.
type AssignedResources struct {
	CaddyID    string   `json:"caddy_id,omitempty"`
	CartNo     string   `json:"cart_no,omitempty"`
	Lockers    []string `json:"lockers,omitempty"`
	Rooms      []string `json:"rooms,omitempty"`
	BagStorage []string `json:"bag_storage,omitempty"`
	Parking    string   `json:"parking,omitempty"`
	TempCardID string   `json:"temp_card_id,omitempty"`
	FolioID    string   `json:"folio_id,omitempty"`
}

// IDs lists every catalog resource id carried by the assignment, in the order
// they are reserved during check-in.
func (a AssignedResources) IDs() []string {
	var ids []string
	if a.CaddyID != "" {
		ids = append(ids, a.CaddyID)
	}
	if a.CartNo != "" {
		ids = append(ids, a.CartNo)
	}
	ids = append(ids, a.Lockers...)
	ids = append(ids, a.Rooms...)
	ids = append(ids, a.BagStorage...)
	if a.Parking != "" {
		ids = append(ids, a.Parking)
	}
	if a.TempCardID != "" {
		ids = append(ids, a.TempCardID)
	}
	return ids
}

// PricingSummary is the denormalized cache of the folio totals, refreshed on
// completion. The folio ledger stays the source of truth.
type PricingSummary struct {
	TotalFee   decimal.Decimal `json:"total_fee"`
	PaidFee    decimal.Decimal `json:"paid_fee"`
	PendingFee decimal.Decimal `json:"pending_fee"`
}

// Booking is one reserved tee time.
type Booking struct {
	ID           string            `json:"id"`
	Date         time.Time         `json:"date"`
	TeeTime      time.Time         `json:"tee_time"`
	CourseID     string            `json:"course_id"`
	HolesBooked  int               `json:"holes_booked"`
	Players      []Player          `json:"players"`
	Status       Status            `json:"status"`
	Resources    AssignedResources `json:"assigned_resources"`
	Pricing      PricingSummary    `json:"pricing"`
	CancelReason string            `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Version      int64             `json:"version"`
}
