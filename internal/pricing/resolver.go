package pricing

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

var (
	// half is the default add-on factor: 9 extra holes cost half the 18-hole fee.
	half = decimal.NewFromFloat(0.5)
	// defaultReducedRate is the proportional floor used when a fixed-rate
	// policy has no fixed price for the identity code.
	defaultReducedRate = decimal.NewFromFloat(0.6)
)

// DayTypeFor classifies a date. Holidays are decided by the caller (the rate
// configuration store owns the holiday calendar).
func DayTypeFor(date time.Time, holiday bool) DayType {
	if holiday {
		return DayTypeHoliday
	}
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return DayTypeWeekend
	default:
		return DayTypeWeekday
	}
}

// SlotForTeeTime maps a tee time to its pricing slot.
// Morning runs until noon, afternoon until 16:00, twilight after.
func SlotForTeeTime(teeTime time.Time) TimeSlot {
	switch h := teeTime.Hour(); {
	case h < 12:
		return SlotMorning
	case h < 16:
		return SlotAfternoon
	default:
		return SlotTwilight
	}
}

// SelectActiveCell picks the one rate cell that governs (dayType, timeSlot)
// on asOf. Highest priority wins; on equal priority the cell with the latest
// ValidFrom wins, so the most recently authored rule takes precedence.
// Returns nil when nothing matches.
func SelectActiveCell(cells []RateCell, dayType DayType, timeSlot TimeSlot, asOf time.Time) *RateCell {
	var best *RateCell
	for i := range cells {
		c := &cells[i]
		if c.Status != CellActive || c.DayType != dayType || c.TimeSlot != timeSlot {
			continue
		}
		if asOf.Before(c.ValidFrom) || asOf.After(c.ValidTo) {
			continue
		}
		if best == nil ||
			c.Priority > best.Priority ||
			(c.Priority == best.Priority && c.ValidFrom.After(best.ValidFrom)) {
			best = c
		}
	}
	return best
}

// ResolveStandardPrice resolves the standard green fee for one player.
// A missing cell or missing price keeps the booking flow non-blocking: the
// quote comes back as zero with Warning set, and the returned error wraps
// ErrRateNotConfigured for callers that need the hard signal.
func ResolveStandardPrice(cells []RateCell, dayType DayType, timeSlot TimeSlot, code IdentityCode, asOf time.Time) (Quote, error) {
	cell := SelectActiveCell(cells, dayType, timeSlot, asOf)
	if cell == nil {
		log.Warn("No rate cell configured", "dayType", dayType, "timeSlot", timeSlot, "asOf", asOf.Format("2006-01-02"))
		return Quote{Amount: decimal.Zero, Warning: true}, &RateNotConfiguredError{DayType: dayType, TimeSlot: timeSlot, Code: code}
	}
	price, ok := cell.Prices[code]
	if !ok {
		log.Warn("Rate cell has no price for identity", "dayType", dayType, "timeSlot", timeSlot, "code", code)
		return Quote{Amount: decimal.Zero, Warning: true, Cell: cell}, &RateNotConfiguredError{DayType: dayType, TimeSlot: timeSlot, Code: code}
	}
	return Quote{Amount: price, Cell: cell}, nil
}

// ResolveAddOnPrice returns the fee for 9 extra holes. Falls back to half the
// standard price, rounded to whole units. Always returns a number.
func ResolveAddOnPrice(cell *RateCell, code IdentityCode) decimal.Decimal {
	if cell == nil {
		return decimal.Zero
	}
	if p, ok := cell.AddOnPrices[code]; ok {
		return p
	}
	return cell.Prices[code].Mul(half).Round(0)
}

// ResolveReducedPlayPrice bills a round where fewer holes were played than
// booked. The proportional policy guarantees the player pays at least the
// configured fraction of the full price no matter how short the round was.
func ResolveReducedPlayPrice(cell *RateCell, code IdentityCode, holesBooked, holesPlayed int) decimal.Decimal {
	if cell == nil || holesBooked <= 0 {
		return decimal.Zero
	}
	full := cell.Prices[code]
	if holesPlayed >= holesBooked {
		return full
	}

	proportional := func(rate decimal.Decimal) decimal.Decimal {
		played := full.Mul(decimal.NewFromInt(int64(holesPlayed))).Div(decimal.NewFromInt(int64(holesBooked)))
		floor := full.Mul(rate)
		if played.LessThan(floor) {
			played = floor
		}
		return played.Round(0)
	}

	switch cell.ReducedPlayPolicy.Type {
	case ReducedNoRefund:
		return full
	case ReducedFixedRate:
		if p, ok := cell.ReducedPlayPolicy.FixedPrices[code]; ok {
			return p
		}
		return proportional(defaultReducedRate)
	case ReducedProportional:
		rate := cell.ReducedPlayPolicy.Rate
		if rate.IsZero() {
			rate = defaultReducedRate
		}
		return proportional(rate)
	default:
		log.Warn("Unknown reduced play policy, charging full price", "type", cell.ReducedPlayPolicy.Type)
		return full
	}
}

// ApplyTeamDiscount applies the tier matching the party size and clamps the
// result to the policy floor so large-team discounts can never push the total
// below FloorPriceRate of the undiscounted subtotal. Sizes outside every tier
// get no discount.
func ApplyTeamDiscount(policy TeamPricingPolicy, partySize int, subtotal decimal.Decimal) decimal.Decimal {
	var tier *Tier
	for i := range policy.Tiers {
		t := &policy.Tiers[i]
		if partySize >= t.MinPlayers && partySize <= t.MaxPlayers {
			tier = t
			break
		}
	}
	if tier == nil {
		return subtotal
	}
	discounted := subtotal.Mul(tier.DiscountRate)
	floor := subtotal.Mul(policy.FloorPriceRate)
	if discounted.LessThan(floor) {
		log.Debug("Team discount clamped to floor", "size", partySize, "tier", tier.Label)
		discounted = floor
	}
	return discounted.Round(0)
}
