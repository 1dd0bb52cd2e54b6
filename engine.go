package rebalance

// Default knobs, overridable per Engine.
var (
	// DefaultCashTolerance is the per-account cash drift accepted silently.
	DefaultCashTolerance = M(100)
	// DefaultMinTrade is the smallest sleeve delta worth trading.
	DefaultMinTrade = M(100)
	// DefaultLot is the default tradeable unit: whole shares.
	DefaultLot = Q(1)
)

// Engine wires the pipeline stages together with their configuration. It
// holds no state across invocations: every BuildTrades call is a pure
// function over its inputs.
type Engine struct {
	Targets       *TargetTable
	MinTrade      Money
	CashTolerance Money
	Lot           Quantity
	KeepZero      bool // retain zero-share positions in the after snapshot
}

// NewEngine returns an engine over a target table with default knobs.
func NewEngine(targets *TargetTable) *Engine {
	return &Engine{
		Targets:       targets,
		MinTrade:      DefaultMinTrade,
		CashTolerance: DefaultCashTolerance,
		Lot:           DefaultLot,
	}
}

// Plan is the complete output of one engine run.
type Plan struct {
	Band         int
	Transactions []Transaction
	After        []Holding
	Residuals    Residuals
}

// Empty reports whether the plan contains no trades. A zero-trade plan is a
// valid terminal state, not an error.
func (p *Plan) Empty() bool { return len(p.Transactions) == 0 }

// BuildTrades computes the trade plan moving every account toward the target
// mix of the given volatility band. The optional cash map supplies opening
// cash balances per account.
//
// The target mix is resolved and the holdings validated before any trade is
// computed; a ConfigurationError or DataError therefore produces no partial
// output. Accounts are processed independently: no trade ever moves assets
// between accounts.
func (e *Engine) BuildTrades(holdings []Holding, cash map[string]Money, band int) (*Plan, error) {
	mix, err := e.Targets.Resolve(band)
	if err != nil {
		return nil, err
	}
	accounts, err := Accounts(holdings, cash)
	if err != nil {
		return nil, err
	}

	synth := Synthesizer{MinTrade: e.MinTrade, Lot: e.Lot}
	var txs []Transaction
	for _, acct := range accounts {
		deltas := Allocate(acct, mix)
		txs = append(txs, synth.Synthesize(acct, deltas, mix)...)
	}
	sortTransactions(txs)

	return &Plan{
		Band:         band,
		Transactions: txs,
		After:        Project(holdings, txs, e.KeepZero),
		Residuals:    Reconcile(txs, cash, e.CashTolerance),
	}, nil
}
