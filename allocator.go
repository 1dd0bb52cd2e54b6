package rebalance

import (
	"slices"
	"strings"
)

// SleeveDelta is the dollar amount to move into (positive) or out of
// (negative) one sleeve of one account.
type SleeveDelta struct {
	Account   string
	TaxStatus string
	Sleeve    string
	Delta     Money
}

// Allocate converts one account's equity and a target mix into per-sleeve
// dollar deltas. It operates on a single account only, which is what
// enforces the no-inter-account-transfer constraint.
//
// Sleeves in the target but absent from the holdings yield a pure-BUY delta
// from an empty position. Sleeves held but absent from the target are driven
// to zero (full liquidation).
func Allocate(acct AccountState, mix *TargetMix) []SleeveDelta {
	equity := acct.Equity()

	deltas := make([]SleeveDelta, 0, len(mix.Sleeves()))
	for _, st := range mix.Sleeves() {
		target := st.Weight.Of(equity)
		current := acct.sleeveValue(st.Sleeve)
		deltas = append(deltas, SleeveDelta{
			Account:   acct.Account,
			TaxStatus: acct.TaxStatus,
			Sleeve:    st.Sleeve,
			Delta:     target.Sub(current),
		})
	}

	// Held sleeves the target does not mention are liquidated.
	seen := make(map[string]bool)
	for _, h := range acct.Holdings {
		if _, targeted := mix.Get(h.Sleeve); targeted || seen[h.Sleeve] {
			continue
		}
		seen[h.Sleeve] = true
		deltas = append(deltas, SleeveDelta{
			Account:   acct.Account,
			TaxStatus: acct.TaxStatus,
			Sleeve:    h.Sleeve,
			Delta:     acct.sleeveValue(h.Sleeve).Neg(),
		})
	}

	slices.SortFunc(deltas, func(a, b SleeveDelta) int {
		return strings.Compare(a.Sleeve, b.Sleeve)
	})
	return deltas
}
