package rebalance

import "testing"

// holding builds a Holding for tests.
func holding(account, identifier, sleeve string, shares, price, cost float64) Holding {
	return Holding{
		Account:     account,
		TaxStatus:   "Taxable",
		Identifier:  identifier,
		Sleeve:      sleeve,
		Shares:      Q(shares),
		Price:       M(price),
		AverageCost: M(cost),
	}
}

// testTargets builds the standard two-band target table used across tests.
// Band 8 is valid (60/40), band 9 is deliberately broken (weights sum to 0.9).
func testTargets(t *testing.T) *TargetTable {
	t.Helper()
	return NewTargetTable(map[int][]SleeveTarget{
		8: {
			{Sleeve: "US Equity", Weight: W(0.6), Proxy: "VTI", ProxyPrice: M(200)},
			{Sleeve: "Bonds", Weight: W(0.4), Proxy: "BND", ProxyPrice: M(100)},
		},
		9: {
			{Sleeve: "US Equity", Weight: W(0.5)},
			{Sleeve: "Bonds", Weight: W(0.4)},
		},
	})
}

// marketValue sums the market value of a holdings slice.
func marketValue(holdings []Holding) Money {
	var total Money
	for _, h := range holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}
