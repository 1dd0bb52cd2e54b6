// Package renderer builds the human-facing reports (markdown and PDF) out of
// a trade plan. It owns everything the engine deliberately does not: display
// formatting, per-account summaries and estimated taxes.
package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/openfolio/rebalance"
)

// AccountSummary aggregates one account's trades for reporting.
type AccountSummary struct {
	Account   string
	TaxStatus string
	Buys      rebalance.Money // total dollars bought
	Sells     rebalance.Money // total dollars sold
	NetGain   rebalance.Money // net realized capital gain
	EstTax    rebalance.Money
}

// Summarize aggregates transactions per account, sorted by account name.
func Summarize(txs []rebalance.Transaction) []AccountSummary {
	index := make(map[string]*AccountSummary)
	var names []string
	for _, tx := range txs {
		s, ok := index[tx.Account]
		if !ok {
			s = &AccountSummary{Account: tx.Account, TaxStatus: tx.TaxStatus}
			index[tx.Account] = s
			names = append(names, tx.Account)
		}
		if tx.Action == rebalance.Buy {
			s.Buys = s.Buys.Add(tx.Delta)
		} else {
			s.Sells = s.Sells.Add(tx.Delta.Neg())
		}
		s.NetGain = s.NetGain.Add(tx.CapitalGain)
	}
	slices.Sort(names)
	summaries := make([]AccountSummary, 0, len(names))
	for _, name := range names {
		s := index[name]
		s.EstTax = EstimatedTax(s.TaxStatus, s.NetGain)
		summaries = append(summaries, *s)
	}
	return summaries
}

// StatusSummary aggregates trades across all accounts of one tax status.
type StatusSummary struct {
	TaxStatus string
	Buys      rebalance.Money
	Sells     rebalance.Money
	NetGain   rebalance.Money
	EstTax    rebalance.Money
}

// SummarizeByStatus aggregates transactions per tax status, sorted by status.
func SummarizeByStatus(txs []rebalance.Transaction) []StatusSummary {
	index := make(map[string]*StatusSummary)
	var statuses []string
	for _, tx := range txs {
		s, ok := index[tx.TaxStatus]
		if !ok {
			s = &StatusSummary{TaxStatus: tx.TaxStatus}
			index[tx.TaxStatus] = s
			statuses = append(statuses, tx.TaxStatus)
		}
		if tx.Action == rebalance.Buy {
			s.Buys = s.Buys.Add(tx.Delta)
		} else {
			s.Sells = s.Sells.Add(tx.Delta.Neg())
		}
		s.NetGain = s.NetGain.Add(tx.CapitalGain)
	}
	slices.Sort(statuses)
	summaries := make([]StatusSummary, 0, len(statuses))
	for _, status := range statuses {
		s := index[status]
		s.EstTax = EstimatedTax(s.TaxStatus, s.NetGain)
		summaries = append(summaries, *s)
	}
	return summaries
}

// currency formats a dollar amount in accounting style: negatives in parens.
func currency(m rebalance.Money) string {
	if m.IsNegative() {
		return "(" + m.Abs().String() + ")"
	}
	return m.String()
}

// TradesMarkdown renders the full trade plan as a markdown report: one
// section per account with its trades and totals, then a tax status summary.
func TradesMarkdown(plan *rebalance.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transaction List - Target %d%% Vol\n\n", plan.Band)

	if plan.Empty() {
		fmt.Fprintln(&b, "No trades: every account is already on target.")
		return b.String()
	}

	summaries := Summarize(plan.Transactions)
	for _, s := range summaries {
		fmt.Fprintf(&b, "## Account: %s\n\n", s.Account)
		fmt.Fprintf(&b, "Tax Status: %s\n\n", s.TaxStatus)
		fmt.Fprintln(&b, "| Identifier | Sleeve | Action | Shares | Price | Avg Cost | Delta $ | CapGain $ |")
		fmt.Fprintln(&b, "|:---|:---|:---:|---:|---:|---:|---:|---:|")
		for _, tx := range plan.Transactions {
			if tx.Account != s.Account {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				tx.Identifier, tx.Sleeve, tx.Action,
				tx.Shares, currency(tx.Price), currency(tx.AverageCost),
				currency(tx.Delta), currency(tx.CapitalGain),
			)
		}
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "- Total Buys: %s\n", currency(s.Buys))
		fmt.Fprintf(&b, "- Total Sells: %s\n", currency(s.Sells))
		fmt.Fprintf(&b, "- Net Realized Capital Gain: %s\n", currency(s.NetGain))
		fmt.Fprintf(&b, "- Est Cap Gains Tax: %s\n\n", currency(s.EstTax))
	}

	fmt.Fprint(&b, "## Tax Status Summary\n\n")
	fmt.Fprintln(&b, "| Tax Status | Total Buys | Total Sells | Net CapGain | Est Tax |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, s := range SummarizeByStatus(plan.Transactions) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.TaxStatus, currency(s.Buys), currency(s.Sells),
			currency(s.NetGain), currency(s.EstTax),
		)
	}
	return b.String()
}

// ResidualsMarkdown renders the per-account residual cash warnings, or an
// all-clear line when every account reconciles within tolerance.
func ResidualsMarkdown(residuals rebalance.Residuals) string {
	var b strings.Builder
	fmt.Fprint(&b, "## Residual Cash\n\n")
	if len(residuals) == 0 {
		fmt.Fprintln(&b, "All accounts reconcile within tolerance.")
		return b.String()
	}
	for _, account := range residuals.Accounts() {
		fmt.Fprintf(&b, "- %s: %s\n", account, residuals[account].SignedString())
	}
	return b.String()
}

// HoldingsMarkdown renders a per-account, per-sleeve market value summary of
// a holdings snapshot.
func HoldingsMarkdown(accounts []rebalance.AccountState) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Holdings\n\n")
	for _, acct := range accounts {
		fmt.Fprintf(&b, "## Account: %s\n\n", acct.Account)
		fmt.Fprintln(&b, "| Identifier | Sleeve | Shares | Price | Avg Cost | Value |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
		for _, h := range acct.Holdings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				h.Identifier, h.Sleeve, h.Shares,
				currency(h.Price), currency(h.AverageCost), currency(h.MarketValue()),
			)
		}
		fmt.Fprintln(&b)
		if !acct.Cash.IsZero() {
			fmt.Fprintf(&b, "- Cash: %s\n", currency(acct.Cash))
		}
		fmt.Fprintf(&b, "- Equity: %s\n\n", currency(acct.Equity()))
	}
	return b.String()
}
