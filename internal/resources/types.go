package resources

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the resource catalog.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// Kind classifies a catalog resource.
type Kind string

const (
	KindCaddy      Kind = "CADDY"
	KindCart       Kind = "CART"
	KindLocker     Kind = "LOCKER"
	KindRoom       Kind = "ROOM"
	KindBagStorage Kind = "BAG_STORAGE"
	KindParking    Kind = "PARKING"
	KindTempCard   Kind = "TEMP_CARD"
)

// Resource is one assignable unit: a caddy, a cart, a locker...
type Resource struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	HolderID string `json:"holder_id,omitempty"` // booking currently holding it
}
