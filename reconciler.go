package rebalance

import "slices"

// Residuals maps account names to the signed dollar amount of cash implied
// by the account's trades but not absorbed by them. A positive residual is
// cash the trades free up; a negative residual means the buys overdraw the
// sells. Residuals are informational, never fatal.
type Residuals map[string]Money

// Accounts returns the account names with a residual, sorted.
func (r Residuals) Accounts() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NetCashFlow sums each account's implied cash flow: sell proceeds minus buy
// costs. A fully reinvested account nets to zero.
func NetCashFlow(txs []Transaction) Residuals {
	flows := make(Residuals)
	for _, tx := range txs {
		// Delta is positive for BUY, negative for SELL, so cash flow is -Delta.
		flows[tx.Account] = flows[tx.Account].Sub(tx.Delta)
	}
	return flows
}

// Reconcile returns the residual cash per account beyond the tolerance:
// opening cash plus the net flow of the account's trades. For an account
// with no opening cash this is exactly sells minus buys. Accounts within
// tolerance are accepted silently; the caller decides how to act on the
// rest.
func Reconcile(txs []Transaction, cash map[string]Money, tolerance Money) Residuals {
	leftovers := NetCashFlow(txs)
	for account, balance := range cash {
		leftovers[account] = leftovers[account].Add(balance)
	}
	residuals := make(Residuals)
	for account, leftover := range leftovers {
		if leftover.Abs().GreaterThan(tolerance) {
			residuals[account] = leftover
		}
	}
	return residuals
}
