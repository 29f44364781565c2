package notifier

import (
	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/pricing"
)

// Notifier defines a high-level interface for telling staff about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// A party arrived and was checked in.
	SendCheckInNotification(b *booking.Booking, dryRun bool) error
	// A price lookup hit an unconfigured rate; the charge was posted as zero.
	SendRateGapWarning(b *booking.Booking, code pricing.IdentityCode, dryRun bool) error
	// A folio was settled (possibly forced with an outstanding balance).
	SendSettlementNotification(f *folio.Folio, forced bool, dryRun bool) error
}
