package resources

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceUnavailable is returned when a resource is held by another
	// active booking or does not exist.
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// UnavailableError carries the resource id that could not be reserved.
type UnavailableError struct {
	ResourceID string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("resource %s unavailable", e.ResourceID)
}

func (e *UnavailableError) Unwrap() error {
	return ErrResourceUnavailable
}

// Catalog is the resource collaborator consumed by check-in. Reserve is
// all-or-nothing per id: it either binds the resource to the booking or
// fails with ErrResourceUnavailable, never leaving partial state.
type Catalog interface {
	ListAvailable(kind Kind) ([]Resource, error)
	Reserve(resourceID, bookingID string) error
	Release(resourceID string) error
	Add(r Resource) error
}
