package rebalance

import (
	"slices"
	"strings"
)

// Project applies a transaction set to the opening holdings and returns the
// post-trade snapshot. The input is never mutated.
//
// A BUY increases shares and recomputes the average cost as the weighted
// average of the old basis and the new purchase. A SELL decreases shares and
// leaves the average cost unchanged, consistent with average-cost accounting:
// the remaining lot retains the same unit cost.
//
// Positions reduced to zero shares are dropped unless keepZero is set.
func Project(holdings []Holding, txs []Transaction, keepZero bool) []Holding {
	type key struct{ account, identifier string }

	index := make(map[key]Holding, len(holdings))
	order := make([]key, 0, len(holdings))
	for _, h := range holdings {
		k := key{h.Account, h.Identifier}
		index[k] = h
		order = append(order, k)
	}

	for _, tx := range txs {
		k := key{tx.Account, tx.Identifier}
		h, held := index[k]
		switch tx.Action {
		case Buy:
			if !held {
				index[k] = Holding{
					Account:     tx.Account,
					TaxStatus:   tx.TaxStatus,
					Identifier:  tx.Identifier,
					Sleeve:      tx.Sleeve,
					Shares:      tx.Shares,
					Price:       tx.Price,
					AverageCost: tx.Price,
				}
				order = append(order, k)
				continue
			}
			newShares := h.Shares.Add(tx.Shares)
			oldBasis := h.AverageCost.Mul(h.Shares)
			newBasis := oldBasis.Add(tx.Price.Mul(tx.Shares))
			h.Shares = newShares
			h.AverageCost = newBasis.Div(newShares)
			index[k] = h
		case Sell:
			if !held {
				continue
			}
			h.Shares = h.Shares.Sub(tx.Shares)
			index[k] = h
		}
	}

	after := make([]Holding, 0, len(order))
	for _, k := range order {
		h := index[k]
		if h.Shares.IsZero() && !keepZero {
			continue
		}
		after = append(after, h)
	}
	slices.SortFunc(after, func(a, b Holding) int {
		if c := strings.Compare(a.Account, b.Account); c != 0 {
			return c
		}
		if c := strings.Compare(a.Sleeve, b.Sleeve); c != 0 {
			return c
		}
		return strings.Compare(a.Identifier, b.Identifier)
	})
	return after
}
