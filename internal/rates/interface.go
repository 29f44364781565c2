package rates

import (
	"errors"
	"time"

	"github.com/clubops/teesheet/internal/pricing"
)

// ErrPolicyNotConfigured is returned when no team pricing policy has been set.
var ErrPolicyNotConfigured = errors.New("team pricing policy not configured")

// ConfigStore serves the read-mostly pricing configuration. The frontdesk
// reads snapshots per operation; edits only affect bookings resolved after
// the change, never already-posted charges.
type ConfigStore interface {
	GetActiveIdentityTypes() ([]pricing.IdentityType, error)
	UpsertIdentityType(it pricing.IdentityType) error
	GetRateCells(dayType pricing.DayType, timeSlot pricing.TimeSlot, date time.Time) ([]pricing.RateCell, error)
	UpsertRateCell(cell pricing.RateCell) error
	GetTeamPricingPolicy() (pricing.TeamPricingPolicy, error)
	SetTeamPricingPolicy(policy pricing.TeamPricingPolicy) error
	IsHoliday(date time.Time) (bool, error)
	AddHoliday(date time.Time, name string) error
}
