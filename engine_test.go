package rebalance

import (
	"errors"
	"testing"
)

func TestEngine_BuildTrades(t *testing.T) {
	engine := NewEngine(testTargets(t))
	holdings := []Holding{holding("IRA1", "VTI", "US Equity", 100, 200, 150)}

	plan, err := engine.BuildTrades(holdings, nil, 8)
	if err != nil {
		t.Fatalf("BuildTrades() failed: %v", err)
	}
	if plan.Band != 8 {
		t.Errorf("plan band = %d, want 8", plan.Band)
	}
	if len(plan.Transactions) != 2 {
		t.Fatalf("plan has %d transactions, want 2: %+v", len(plan.Transactions), plan.Transactions)
	}

	buy, sell := plan.Transactions[0], plan.Transactions[1]
	if buy.Action != Buy || buy.Identifier != "BND" || !buy.Shares.Equal(Q(80)) {
		t.Errorf("buy = %+v, want BUY 80 BND", buy)
	}
	if sell.Action != Sell || sell.Identifier != "VTI" || !sell.Shares.Equal(Q(40)) {
		t.Errorf("sell = %+v, want SELL 40 VTI", sell)
	}
	if !sell.CapitalGain.Equal(M(2000)) {
		t.Errorf("sell gain = %s, want $2,000.00", sell.CapitalGain)
	}

	// Sells fully fund buys, so the account has no residual.
	if len(plan.Residuals) != 0 {
		t.Errorf("residuals = %v, want none", plan.Residuals)
	}

	// The projected snapshot is on target and conserves market value.
	if len(plan.After) != 2 {
		t.Fatalf("after snapshot has %d holdings, want 2: %+v", len(plan.After), plan.After)
	}
	if !marketValue(plan.After).Equal(marketValue(holdings)) {
		t.Errorf("after value = %s, want %s", marketValue(plan.After), marketValue(holdings))
	}
}

func TestEngine_BuildTrades_Idempotent(t *testing.T) {
	engine := NewEngine(testTargets(t))
	holdings := []Holding{holding("IRA1", "VTI", "US Equity", 100, 200, 150)}

	plan, err := engine.BuildTrades(holdings, nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	again, err := engine.BuildTrades(plan.After, nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Empty() {
		t.Errorf("rerun on the after snapshot produced trades: %+v", again.Transactions)
	}
}

func TestEngine_BuildTrades_NoTrades(t *testing.T) {
	engine := NewEngine(testTargets(t))
	holdings := []Holding{
		holding("A", "VTI", "US Equity", 30, 200, 150),
		holding("A", "BND", "Bonds", 40, 100, 100),
	}
	plan, err := engine.BuildTrades(holdings, nil, 8)
	if err != nil {
		t.Fatalf("BuildTrades() failed: %v", err)
	}
	if !plan.Empty() {
		t.Fatalf("on-target account produced trades: %+v", plan.Transactions)
	}
	if len(plan.After) != len(holdings) {
		t.Errorf("after snapshot has %d holdings, want %d", len(plan.After), len(holdings))
	}
}

func TestEngine_BuildTrades_CashOnlyAccount(t *testing.T) {
	engine := NewEngine(testTargets(t))
	cash := map[string]Money{"NEW": M(10000)}

	plan, err := engine.BuildTrades(nil, cash, 8)
	if err != nil {
		t.Fatalf("BuildTrades() failed: %v", err)
	}
	if len(plan.Transactions) != 2 {
		t.Fatalf("plan has %d transactions, want 2: %+v", len(plan.Transactions), plan.Transactions)
	}
	for _, tx := range plan.Transactions {
		if tx.Action != Buy {
			t.Errorf("cash-only account emitted %s, want only buys", tx.Action)
		}
	}
	// 30 VTI at $200 plus 40 BND at $100 invests the full balance.
	if len(plan.Residuals) != 0 {
		t.Errorf("residuals = %v, want none", plan.Residuals)
	}
}

func TestEngine_BuildTrades_Residual(t *testing.T) {
	engine := NewEngine(testTargets(t))
	// All equity in a sleeve without a proxy: the sell has nowhere to
	// reinvest and the proceeds land in the residual.
	targets := NewTargetTable(map[int][]SleeveTarget{
		8: {
			{Sleeve: "US Equity", Weight: W(0.6), Proxy: "VTI", ProxyPrice: M(200)},
			{Sleeve: "Bonds", Weight: W(0.4)},
		},
	})
	engine.Targets = targets
	holdings := []Holding{holding("A", "VTI", "US Equity", 100, 200, 150)}

	plan, err := engine.BuildTrades(holdings, nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Transactions) != 1 || plan.Transactions[0].Action != Sell {
		t.Fatalf("plan = %+v, want a single sell", plan.Transactions)
	}
	if got := plan.Residuals["A"]; !got.Equal(M(8000)) {
		t.Errorf("residual[A] = %s, want $8,000.00", got)
	}
	// Value conservation: after value plus residual cash equals opening value.
	total := marketValue(plan.After).Add(plan.Residuals["A"])
	if !total.Equal(marketValue(holdings)) {
		t.Errorf("after value + residual = %s, want %s", total, marketValue(holdings))
	}
}

func TestEngine_BuildTrades_Errors(t *testing.T) {
	engine := NewEngine(testTargets(t))
	good := holding("A", "VTI", "US Equity", 100, 200, 150)

	t.Run("unknown band", func(t *testing.T) {
		_, err := engine.BuildTrades([]Holding{good}, nil, 99)
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("BuildTrades(band=99) returned %v, want *ConfigurationError", err)
		}
	})
	t.Run("broken weights", func(t *testing.T) {
		_, err := engine.BuildTrades([]Holding{good}, nil, 9)
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("BuildTrades(band=9) returned %v, want *ConfigurationError", err)
		}
	})
	t.Run("invalid holding aborts everything", func(t *testing.T) {
		bad := holding("B", "VTI", "US Equity", 10, 0, 150)
		plan, err := engine.BuildTrades([]Holding{good, bad}, nil, 8)
		var dataErr *DataError
		if !errors.As(err, &dataErr) {
			t.Fatalf("BuildTrades() returned %v, want *DataError", err)
		}
		if plan != nil {
			t.Error("a data error must not produce partial output")
		}
	})
	t.Run("duplicate holding aborts everything", func(t *testing.T) {
		// A duplicated row would double-count one position and drop the
		// other when the trades are applied, breaking value conservation.
		dup := holding("A", "VTI", "US Equity", 30, 200, 150)
		plan, err := engine.BuildTrades([]Holding{good, dup}, nil, 8)
		var dataErr *DataError
		if !errors.As(err, &dataErr) {
			t.Fatalf("BuildTrades() returned %v, want *DataError", err)
		}
		if plan != nil {
			t.Error("a data error must not produce partial output")
		}
	})
}
