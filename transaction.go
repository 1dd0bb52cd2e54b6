package rebalance

import (
	"slices"
	"strings"
)

// Action is the direction of a transaction.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// Transaction is one discrete trade. It is produced once by the synthesizer
// and never mutated. AverageCost records the pre-trade cost basis for audit;
// the updated basis after a BUY lives only in the projected holdings.
type Transaction struct {
	Account     string
	TaxStatus   string
	Identifier  string
	Sleeve      string
	Action      Action
	Shares      Quantity // always positive
	Price       Money
	AverageCost Money // pre-trade basis
	Delta       Money // executed dollars, positive for BUY, negative for SELL
	CapitalGain Money // zero on BUY
}

// sortTransactions puts transactions in the canonical report order:
// (Account, Action, Sleeve, Identifier). The order is required for
// reproducible reports.
func sortTransactions(txs []Transaction) {
	slices.SortFunc(txs, func(a, b Transaction) int {
		if c := strings.Compare(a.Account, b.Account); c != 0 {
			return c
		}
		if c := strings.Compare(string(a.Action), string(b.Action)); c != 0 {
			return c
		}
		if c := strings.Compare(a.Sleeve, b.Sleeve); c != 0 {
			return c
		}
		return strings.Compare(a.Identifier, b.Identifier)
	})
}
