package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/rebalance"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	url  string
	path string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh holding prices from the quote service" }
func (*updateCmd) Usage() string {
	return `rbl update -url <quote url template> [-path <jsonpath>]

  Fetches the latest price for every identifier in the holdings file and
  rewrites the file in place. Identifiers whose quote fails keep their
  previous price. Responses are cached on disk for the day.

Usage Examples:
# Refresh from a quote endpoint returning {"quote": {"last": 123.45}}.
$ rbl update -url 'https://quotes.example.com/v1/latest?symbol=%s' -path '$.quote.last'

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "Quote URL template; %s receives the identifier")
	f.StringVar(&c.path, "path", "$.quote.last", "JSONPath of the price in the quote response")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.url == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		return subcommands.ExitUsageError
	}

	holdings, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	updated := rebalance.UpdatePrices(holdings, rebalance.QuoteService{URL: c.url, Path: c.path})

	if err := writeFile(*holdingsFile, func(f *os.File) error {
		return rebalance.EncodeHoldings(f, updated)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing holdings file %q: %v\n", *holdingsFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Prices updated: %s\n", *holdingsFile)
	return subcommands.ExitSuccess
}
