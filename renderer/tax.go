package renderer

import "github.com/openfolio/rebalance"

// Estimated capital-gain tax rates by account tax status. This mapping
// belongs to the reporting layer: the engine itself is tax-agnostic.
var taxRates = map[string]rebalance.Weight{
	"HSA":      rebalance.W(0),
	"ROTH IRA": rebalance.W(0),
	"Trust":    rebalance.W(0.20),
}

// defaultTaxRate applies to any status not listed above.
var defaultTaxRate = rebalance.W(0.15)

// TaxRate returns the estimated capital-gain tax rate for a tax status.
func TaxRate(status string) rebalance.Weight {
	if rate, ok := taxRates[status]; ok {
		return rate
	}
	return defaultTaxRate
}

// EstimatedTax returns the estimated tax on a net realized capital gain.
func EstimatedTax(status string, gain rebalance.Money) rebalance.Money {
	return TaxRate(status).Of(gain)
}
