package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/openfolio/rebalance"
	"github.com/openfolio/rebalance/renderer"
)

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct {
	vol      float64
	cashTol  float64
	minTrade float64
	lot      float64
	keepZero bool
	noPDF    bool
}

func (*tradesCmd) Name() string { return "trades" }
func (*tradesCmd) Synopsis() string {
	return "generate per-account trade lists to reach the target mix"
}
func (*tradesCmd) Usage() string {
	return `rbl trades [-vol <volatility>] [-cash-tol <dollars>] [-min-trade <dollars>] [-lot <shares>]

  Computes the trades moving every account toward the portfolio-wide target
  mix for the requested volatility band, then writes the trades CSV, the
  holdings-after CSV, and a PDF summary into the output directory. Residual
  cash beyond the tolerance is reported per account as a warning.

Usage Examples:
# Generate trades for the 8% volatility band.
$ rbl trades -vol 0.08

`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.vol, "vol", 0.08, "Target volatility (e.g. 0.08 = 8%)")
	f.Float64Var(&c.cashTol, "cash-tol", rebalance.DefaultCashTolerance.Float64(), "Per-account cash tolerance in $")
	f.Float64Var(&c.minTrade, "min-trade", rebalance.DefaultMinTrade.Float64(), "Smallest sleeve delta worth trading, in $")
	f.Float64Var(&c.lot, "lot", rebalance.DefaultLot.Float64(), "Tradeable unit in shares")
	f.BoolVar(&c.keepZero, "keep-zero", false, "Retain zero-share positions in the holdings-after snapshot")
	f.BoolVar(&c.noPDF, "no-pdf", false, "Skip the PDF report")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	band := bandTag(c.vol)
	fmt.Printf("Target volatility: %d%%\n", band)

	holdings, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	targets, err := DecodeTargetsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading targets: %v\n", err)
		return subcommands.ExitFailure
	}

	engine := rebalance.NewEngine(targets)
	engine.CashTolerance = rebalance.M(c.cashTol)
	engine.MinTrade = rebalance.M(c.minTrade)
	engine.Lot = rebalance.Q(c.lot)
	engine.KeepZero = c.keepZero

	plan, err := engine.BuildTrades(holdings, nil, band)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building trades: %v\n", err)
		return subcommands.ExitFailure
	}

	outdir, err := ensureOutDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	date := todayStr()
	cwd, _ := os.Getwd()
	base := filepath.Base(cwd) // project folder name as report prefix

	csvOut := filepath.Join(outdir, fmt.Sprintf("%s_Trades_%s.csv", base, date))
	if err := writeFile(csvOut, func(f *os.File) error {
		return rebalance.EncodeTransactions(f, plan.Transactions)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing trades CSV: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("CSV written: %s\n", csvOut)

	afterOut := filepath.Join(outdir, fmt.Sprintf("holdings_aftertrades_%s.csv", date))
	if err := writeFile(afterOut, func(f *os.File) error {
		return rebalance.EncodeHoldings(f, plan.After)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing holdings-after CSV: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Holdings-after written: %s\n", afterOut)

	for _, account := range plan.Residuals.Accounts() {
		fmt.Fprintf(os.Stderr, "[WARN] Residual cash flow in %q: %s\n", account, plan.Residuals[account].SignedString())
	}

	if !c.noPDF {
		if plan.Empty() {
			fmt.Println("No trades; PDF skipped.")
		} else {
			pdfOut := filepath.Join(outdir, fmt.Sprintf("%s_%dvol_%s.pdf", base, band, date))
			if err := renderer.TradesPDF(plan, pdfOut); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing PDF: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("PDF written: %s\n", pdfOut)
		}
	}

	printMarkdown(renderer.TradesMarkdown(plan))
	return subcommands.ExitSuccess
}

// writeFile creates the file, hands it to 'write', and closes it.
func writeFile(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
