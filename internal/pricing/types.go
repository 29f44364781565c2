package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayType classifies a calendar date for pricing purposes.
type DayType string

const (
	DayTypeWeekday DayType = "WEEKDAY"
	DayTypeWeekend DayType = "WEEKEND"
	DayTypeHoliday DayType = "HOLIDAY"
)

// TimeSlot is a named window of the day used as a pricing axis.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "MORNING"
	SlotAfternoon TimeSlot = "AFTERNOON"
	SlotTwilight  TimeSlot = "TWILIGHT"
)

// IdentityCode is the stable key for a player classification (guest, member
// tier, junior, staff...). All price maps are indexed by it.
type IdentityCode string

// IdentityCategory groups identity types for reporting.
type IdentityCategory string

const (
	CategoryStandard IdentityCategory = "STANDARD"
	CategoryMember   IdentityCategory = "MEMBER"
	CategorySpecial  IdentityCategory = "SPECIAL"
)

// IdentityStatus marks whether an identity type can be used on new bookings.
// Historical charges keep their resolved amounts either way.
type IdentityStatus string

const (
	IdentityActive   IdentityStatus = "ACTIVE"
	IdentityInactive IdentityStatus = "INACTIVE"
)

// IdentityType is one player classification as configured by the club.
type IdentityType struct {
	Code      IdentityCode     `json:"code"`
	Name      string           `json:"name"`
	Category  IdentityCategory `json:"category"`
	Status    IdentityStatus   `json:"status"`
	SortOrder int              `json:"sort_order"`
	Color     string           `json:"color"`
}

// ReducedPlayType selects how a round shorter than booked is billed.
type ReducedPlayType string

const (
	ReducedProportional ReducedPlayType = "PROPORTIONAL"
	ReducedFixedRate    ReducedPlayType = "FIXED_RATE"
	ReducedNoRefund     ReducedPlayType = "NO_REFUND"
)

// ReducedPlayPolicy configures reduced-play billing for one rate cell.
type ReducedPlayPolicy struct {
	Type        ReducedPlayType                  `json:"type"`
	Rate        decimal.Decimal                  `json:"rate"`
	FixedPrices map[IdentityCode]decimal.Decimal `json:"fixed_prices,omitempty"`
}

// CellStatus marks whether a rate cell participates in resolution.
type CellStatus string

const (
	CellActive   CellStatus = "ACTIVE"
	CellInactive CellStatus = "INACTIVE"
)

// RateCell is the price table for one (day type, time slot) combination.
// Prices hold the standard 18-hole green fee per identity code; AddOnPrices
// hold the 9-extra-holes fee and default to half the standard price when a
// code is missing.
type RateCell struct {
	ID                string                           `json:"id"`
	DayType           DayType                          `json:"day_type"`
	TimeSlot          TimeSlot                         `json:"time_slot"`
	Prices            map[IdentityCode]decimal.Decimal `json:"prices"`
	AddOnPrices       map[IdentityCode]decimal.Decimal `json:"add_on_prices,omitempty"`
	ReducedPlayPolicy ReducedPlayPolicy                `json:"reduced_play_policy"`
	CaddyFee          decimal.Decimal                  `json:"caddy_fee"`
	CartFee           decimal.Decimal                  `json:"cart_fee"`
	InsuranceFee      decimal.Decimal                  `json:"insurance_fee"`
	ValidFrom         time.Time                        `json:"valid_from"`
	ValidTo           time.Time                        `json:"valid_to"`
	Priority          int                              `json:"priority"`
	Status            CellStatus                       `json:"status"`
}

// Tier is one team-size band of a TeamPricingPolicy.
type Tier struct {
	MinPlayers   int             `json:"min_players"`
	MaxPlayers   int             `json:"max_players"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Label        string          `json:"label"`
}

// TeamPricingPolicy is the club-wide team discount configuration. Tiers must
// be contiguous and ordered by MinPlayers ascending; DiscountRate and
// FloorPriceRate are in (0, 1].
type TeamPricingPolicy struct {
	Tiers          []Tier          `json:"tiers"`
	FloorPriceRate decimal.Decimal `json:"floor_price_rate"`
}

// Quote is the outcome of a standard-price resolution. Warning is set when no
// rate was configured for the lookup; the amount is then zero so the booking
// flow stays non-blocking and staff can fix the sheet later.
type Quote struct {
	Amount  decimal.Decimal `json:"amount"`
	Warning bool            `json:"warning"`
	Cell    *RateCell       `json:"-"`
}
