// Package fund holds the crowdfunding domain model: campaign records, global
// statistics, and the read/refresh layer that derives them from the contract.
package fund

import (
	"fmt"

	"cosmossdk.io/math"
)

// MicroUnitsPerSTX is the scaling divisor between the chain's smallest unit
// and display units.
const MicroUnitsPerSTX = 1_000_000

// Campaign is one funding goal tracked by the contract. Amounts are kept in
// micro-units; conversion to display units happens only at render time.
type Campaign struct {
	ID          uint64
	Title       string
	Description string
	Goal        math.Int
	Raised      math.Int
	Deadline    int64
	Owner       string
	Active      bool
	Successful  bool
	Withdrawn   bool
	Finalized   bool
}

// GoalMet reports whether the campaign raised at least its goal.
func (c Campaign) GoalMet() bool {
	return c.Raised.GTE(c.Goal)
}

// GlobalStats are the contract-wide aggregates. They are derived on every
// refresh and never persisted.
type GlobalStats struct {
	TotalRaised     math.Int
	Contributors    uint64
	ActiveCampaigns uint64
	TotalCampaigns  uint64
}

// DisplaySTX renders a micro-unit amount in display units.
func DisplaySTX(amount math.Int) string {
	if amount.IsNil() {
		amount = math.ZeroInt()
	}
	whole := amount.Quo(math.NewInt(MicroUnitsPerSTX))
	frac := amount.Mod(math.NewInt(MicroUnitsPerSTX))
	if frac.IsZero() {
		return fmt.Sprintf("%s STX", whole)
	}
	return fmt.Sprintf("%s.%06d STX", whole, frac.Int64())
}
