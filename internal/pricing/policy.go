package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// inUnitInterval reports whether d is in (0, 1].
func inUnitInterval(d decimal.Decimal) bool {
	return d.IsPositive() && !d.GreaterThan(one)
}

// ValidatePolicy checks the team pricing invariants: tiers ordered by
// MinPlayers ascending and contiguous, all rates in (0, 1].
func ValidatePolicy(policy TeamPricingPolicy) error {
	if !inUnitInterval(policy.FloorPriceRate) {
		return fmt.Errorf("%w: floor price rate %s out of (0,1]", ErrInvalidPolicy, policy.FloorPriceRate)
	}
	for i, t := range policy.Tiers {
		if t.MinPlayers <= 0 || t.MaxPlayers < t.MinPlayers {
			return fmt.Errorf("%w: tier %d has invalid bounds [%d,%d]", ErrInvalidPolicy, i, t.MinPlayers, t.MaxPlayers)
		}
		if !inUnitInterval(t.DiscountRate) {
			return fmt.Errorf("%w: tier %d discount rate %s out of (0,1]", ErrInvalidPolicy, i, t.DiscountRate)
		}
		if i > 0 && t.MinPlayers != policy.Tiers[i-1].MaxPlayers+1 {
			return fmt.Errorf("%w: tier %d not contiguous with previous (min %d, previous max %d)",
				ErrInvalidPolicy, i, t.MinPlayers, policy.Tiers[i-1].MaxPlayers)
		}
	}
	return nil
}
