package rebalance

import (
	"slices"
	"strings"
)

// Holding is one position of one account: an identifier, classified into a
// sleeve, with its share count, current price and average cost basis. It is
// an immutable snapshot; the projector builds new values rather than mutating.
type Holding struct {
	Account     string
	TaxStatus   string
	Identifier  string
	Sleeve      string
	Shares      Quantity
	Price       Money
	AverageCost Money
}

// MarketValue returns shares times price.
func (h Holding) MarketValue() Money { return h.Price.Mul(h.Shares) }

// Validate checks the row against the engine's data contract.
func (h Holding) Validate() error {
	switch {
	case h.Account == "":
		return &DataError{Identifier: h.Identifier, Reason: "missing account"}
	case h.TaxStatus == "":
		return &DataError{Account: h.Account, Identifier: h.Identifier, Reason: "missing tax status"}
	case h.Identifier == "":
		return &DataError{Account: h.Account, Reason: "missing identifier"}
	case h.Sleeve == "":
		return &DataError{Account: h.Account, Identifier: h.Identifier, Reason: "missing sleeve"}
	case h.Shares.IsNegative():
		return &DataError{Account: h.Account, Identifier: h.Identifier, Reason: "negative shares"}
	case !h.Price.IsPositive():
		return &DataError{Account: h.Account, Identifier: h.Identifier, Reason: "non-positive price"}
	case h.AverageCost.IsNegative():
		return &DataError{Account: h.Account, Identifier: h.Identifier, Reason: "negative average cost"}
	}
	return nil
}

// AccountState is the set of holdings for one account plus its cash balance.
type AccountState struct {
	Account   string
	TaxStatus string
	Holdings  []Holding
	Cash      Money
}

// Equity is the total market value of the account's holdings plus cash.
func (a AccountState) Equity() Money {
	total := a.Cash
	for _, h := range a.Holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// sleeveValue sums the market value of the account's positions in a sleeve.
func (a AccountState) sleeveValue(sleeve string) Money {
	var total Money
	for _, h := range a.Holdings {
		if h.Sleeve == sleeve {
			total = total.Add(h.MarketValue())
		}
	}
	return total
}

// sleevePositions returns the account's positions in a sleeve, largest market
// value first. Ties break on identifier so the order is deterministic.
func (a AccountState) sleevePositions(sleeve string) []Holding {
	var positions []Holding
	for _, h := range a.Holdings {
		if h.Sleeve == sleeve && h.Shares.IsPositive() {
			positions = append(positions, h)
		}
	}
	slices.SortFunc(positions, func(x, y Holding) int {
		if c := y.MarketValue().value.Cmp(x.MarketValue().value); c != 0 {
			return c
		}
		return strings.Compare(x.Identifier, y.Identifier)
	})
	return positions
}

// Accounts groups validated holdings into per-account states, sorted by
// account name. The optional cash map supplies per-account cash balances;
// absent accounts hold no cash. A single invalid row fails the whole call.
func Accounts(holdings []Holding, cash map[string]Money) ([]AccountState, error) {
	index := make(map[string]*AccountState)
	var names []string
	// A duplicate (account, identifier) pair would make the projector collapse
	// two positions into one, so it is rejected like any other bad row.
	type key struct{ account, identifier string }
	seen := make(map[key]bool, len(holdings))
	for _, h := range holdings {
		if err := h.Validate(); err != nil {
			return nil, err
		}
		k := key{h.Account, h.Identifier}
		if seen[k] {
			return nil, &DataError{Account: h.Account, Identifier: h.Identifier, Reason: "duplicate holding row"}
		}
		seen[k] = true
		a, ok := index[h.Account]
		if !ok {
			a = &AccountState{Account: h.Account, TaxStatus: h.TaxStatus, Cash: cash[h.Account]}
			index[h.Account] = a
			names = append(names, h.Account)
		}
		a.Holdings = append(a.Holdings, h)
	}
	// Accounts that only hold cash still rebalance.
	for name := range cash {
		if _, ok := index[name]; !ok {
			index[name] = &AccountState{Account: name, Cash: cash[name]}
			names = append(names, name)
		}
	}
	slices.Sort(names)
	states := make([]AccountState, 0, len(names))
	for _, name := range names {
		states = append(states, *index[name])
	}
	return states, nil
}
