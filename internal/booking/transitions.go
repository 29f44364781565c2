package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition is returned when a lifecycle edge is not allowed.
	// The booking is left unchanged.
	ErrInvalidTransition = errors.New("invalid booking transition")

	// ErrFolioNotSettled is returned by the completion guard when the
	// booking's folio still carries a balance.
	ErrFolioNotSettled = errors.New("folio not settled")

	// ErrNotFound is returned when a booking id does not exist in the store.
	ErrNotFound = errors.New("booking not found")

	// ErrVersionConflict is returned when a save loses an optimistic
	// concurrency race.
	ErrVersionConflict = errors.New("booking version conflict")

	// ErrInvalidParty is returned when the party is empty or over four players.
	ErrInvalidParty = errors.New("party must have 1-4 players")

	// ErrNotCheckedIn is returned by operations that only make sense while
	// the party is on the course, like recording holes played.
	ErrNotCheckedIn = errors.New("booking is not checked in")
)

// transitions is the closed edge set of the booking lifecycle. Anything the
// map does not list is rejected, no matter which button the caller pressed.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCompleted},
}

// InvalidTransitionError carries the rejected edge.
type InvalidTransitionError struct {
	BookingID string
	From, To  Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("booking %s: cannot transition %s -> %s", e.BookingID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// New creates a pending booking for a party of 1-4 players.
func New(date, teeTime time.Time, courseID string, holesBooked int, players []Player) (*Booking, error) {
	if len(players) == 0 || len(players) > 4 {
		return nil, ErrInvalidParty
	}
	return &Booking{
		ID:          uuid.NewString(),
		Date:        date,
		TeeTime:     teeTime,
		CourseID:    courseID,
		HolesBooked: holesBooked,
		Players:     players,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Transition moves the booking to the target state, rejecting edges outside
// the lifecycle. It carries no side effects; the frontdesk owns those.
func (b *Booking) Transition(to Status) error {
	for _, allowed := range transitions[b.Status] {
		if allowed == to {
			b.Status = to
			return nil
		}
	}
	return &InvalidTransitionError{BookingID: b.ID, From: b.Status, To: to}
}
