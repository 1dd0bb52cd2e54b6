// Package cmd implements the CLI application to generate rebalancing trades.
package cmd

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/openfolio/rebalance"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&tradesCmd{}, "trades")

	c.Register(&holdingsCmd{}, "portfolio")
	c.Register(&targetsCmd{}, "portfolio")
	c.Register(&updateCmd{}, "portfolio")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var holdingsFile = flag.String("holdings-file", "data/holdings.csv", "Path to the holdings CSV file")
var targetsFile = flag.String("targets-file", "data/targets.csv", "Path to the target weights CSV file (one row per band and sleeve)")
var outDir = flag.String("out-dir", "output", "Directory for generated reports")

// DecodeHoldingsFile loads the holdings snapshot from the app holdings file.
func DecodeHoldingsFile() ([]rebalance.Holding, error) {
	f, err := os.Open(*holdingsFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open holdings file %q: %w", *holdingsFile, err)
	}
	defer f.Close()
	return rebalance.DecodeHoldings(f)
}

// DecodeTargetsFile loads the target weight table from the app targets file.
func DecodeTargetsFile() (*rebalance.TargetTable, error) {
	f, err := os.Open(*targetsFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open targets file %q: %w", *targetsFile, err)
	}
	defer f.Close()
	return rebalance.DecodeTargetTable(f)
}

// ensureOutDir creates the output directory if needed and returns its path.
func ensureOutDir() (string, error) {
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create output directory %q: %w", *outDir, err)
	}
	return *outDir, nil
}

func todayStr() string { return time.Now().Format("2006-01-02") }

// bandTag converts a fractional target volatility (0.08) to its band tag (8).
func bandTag(vol float64) int { return int(math.Round(vol * 100)) }

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the terminal renderer is unavailable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
