package frontdesk

import (
	"github.com/clubops/teesheet/internal/notifier"
)

// Notifier defines the notification operations required by the front desk.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
