package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/rebalance"
	"github.com/openfolio/rebalance/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the current holdings per account" }
func (*holdingsCmd) Usage() string {
	return `rbl holdings

  Displays every account's positions, cash and equity from the holdings file.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	accounts, err := rebalance.Accounts(holdings, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error grouping holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(accounts))
	return subcommands.ExitSuccess
}
