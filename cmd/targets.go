package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// targetsCmd holds the flags for the 'targets' subcommand.
type targetsCmd struct {
	vol float64
}

func (*targetsCmd) Name() string     { return "targets" }
func (*targetsCmd) Synopsis() string { return "list or validate the target weight table" }
func (*targetsCmd) Usage() string {
	return `rbl targets [-vol <volatility>]

  Lists the sleeve weights of every volatility band in the target table.
  With -vol, validates and displays only the requested band; a band whose
  weights do not sum to 100% is reported as a configuration error.
`
}

func (c *targetsCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.vol, "vol", 0, "Target volatility band to validate (e.g. 0.08)")
}

func (c *targetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	table, err := DecodeTargetsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading targets: %v\n", err)
		return subcommands.ExitFailure
	}

	bands := table.Bands()
	if c.vol != 0 {
		bands = []int{bandTag(c.vol)}
	}

	var b strings.Builder
	fmt.Fprint(&b, "# Target Mixes\n\n")
	for _, band := range bands {
		mix, err := table.Resolve(band)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(&b, "## Band %d%%\n\n", band)
		fmt.Fprintln(&b, "| Sleeve | Weight | Proxy |")
		fmt.Fprintln(&b, "|:---|---:|:---|")
		for _, st := range mix.Sleeves() {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", st.Sleeve, st.Weight, st.Proxy)
		}
		fmt.Fprintln(&b)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
