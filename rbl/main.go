// Command rbl generates per-account trade lists that move a multi-account
// portfolio toward a target allocation.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/openfolio/rebalance/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI to the shell completion engine. It must be
// kept in sync with the registered subcommands.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"holdings-file": predict.Files("*.csv"),
		"targets-file":  predict.Files("*.csv"),
		"out-dir":       predict.Dirs("*"),
	},
	Sub: map[string]*complete.Command{
		"trades": {Flags: map[string]complete.Predictor{
			"vol":       predict.Something,
			"cash-tol":  predict.Something,
			"min-trade": predict.Something,
			"lot":       predict.Something,
			"keep-zero": predict.Nothing,
			"no-pdf":    predict.Nothing,
		}},
		"holdings": {},
		"targets":  {Flags: map[string]complete.Predictor{"vol": predict.Something}},
		"update": {Flags: map[string]complete.Predictor{
			"url":  predict.Something,
			"path": predict.Something,
		}},
		"topic":  {},
		"assist": {},
	},
}

func main() {
	completion.Complete("rbl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
