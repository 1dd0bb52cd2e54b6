package rebalance

// Synthesizer converts per-sleeve dollar deltas into discrete BUY/SELL
// transactions.
type Synthesizer struct {
	MinTrade Money    // deltas below this are dust and emit nothing
	Lot      Quantity // tradeable unit, default one share
}

// Synthesize produces the transactions for one account. The result is in
// canonical (Account, Action, Sleeve, Identifier) order.
//
// BUY deltas go to the sleeve's representative identifier: the largest held
// position, or the target's proxy identifier when the sleeve is not held.
// SELL deltas walk the sleeve's positions largest-first until the dollar
// amount is absorbed; each sale is clamped to the shares actually held, so
// no transaction ever shorts a position. A clamped shortfall is not an
// error: it surfaces later as part of the account's cash residual.
func (s Synthesizer) Synthesize(acct AccountState, deltas []SleeveDelta, mix *TargetMix) []Transaction {
	var txs []Transaction
	for _, d := range deltas {
		if d.Delta.Abs().LessThan(s.MinTrade) {
			continue
		}
		if d.Delta.IsPositive() {
			if tx, ok := s.buy(acct, d, mix); ok {
				txs = append(txs, tx)
			}
		} else {
			txs = append(txs, s.sell(acct, d)...)
		}
	}
	sortTransactions(txs)
	return txs
}

func (s Synthesizer) buy(acct AccountState, d SleeveDelta, mix *TargetMix) (Transaction, bool) {
	identifier, price := "", Money{}
	basis := Money{} // a fresh position has no pre-trade basis

	if positions := acct.sleevePositions(d.Sleeve); len(positions) > 0 {
		rep := positions[0]
		identifier, price, basis = rep.Identifier, rep.Price, rep.AverageCost
	} else if st, ok := mix.Get(d.Sleeve); ok && st.Proxy != "" && st.ProxyPrice.IsPositive() {
		identifier, price = st.Proxy, st.ProxyPrice
	} else {
		// No position and no proxy: nothing tradeable. The unspent dollars
		// surface in the account's residual.
		return Transaction{}, false
	}

	shares := d.Delta.DivPrice(price).RoundToLot(s.Lot)
	if !shares.IsPositive() {
		return Transaction{}, false
	}
	return Transaction{
		Account:     d.Account,
		TaxStatus:   d.TaxStatus,
		Identifier:  identifier,
		Sleeve:      d.Sleeve,
		Action:      Buy,
		Shares:      shares,
		Price:       price,
		AverageCost: basis,
		Delta:       price.Mul(shares),
		CapitalGain: M(0),
	}, true
}

func (s Synthesizer) sell(acct AccountState, d SleeveDelta) []Transaction {
	var txs []Transaction
	remaining := d.Delta.Neg() // dollars to raise
	for _, pos := range acct.sleevePositions(d.Sleeve) {
		want := remaining
		if pos.MarketValue().LessThan(want) {
			want = pos.MarketValue()
		}
		shares := want.DivPrice(pos.Price).RoundToLot(s.Lot)
		// Clamp: never sell more than held.
		shares = shares.Min(pos.Shares)
		if !shares.IsPositive() {
			continue
		}
		proceeds := pos.Price.Mul(shares)
		txs = append(txs, Transaction{
			Account:     d.Account,
			TaxStatus:   d.TaxStatus,
			Identifier:  pos.Identifier,
			Sleeve:      d.Sleeve,
			Action:      Sell,
			Shares:      shares,
			Price:       pos.Price,
			AverageCost: pos.AverageCost,
			Delta:       proceeds.Neg(),
			CapitalGain: pos.Price.Sub(pos.AverageCost).Mul(shares),
		})
		remaining = remaining.Sub(proceeds)
		if !remaining.IsPositive() {
			break
		}
	}
	return txs
}
