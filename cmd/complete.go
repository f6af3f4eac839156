package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes flags whose values are known in advance.
var flagPredictors = map[string]complete.Predictor{
	"store":      predict.Set{StoreJSON, StoreSQLite},
	"data":       predict.Files("*.json"),
	"sqlite":     predict.Files("*.db"),
	"log-level":  predict.Set{"debug", "info", "warn", "error"},
	"log-format": predict.Set{"text", "json"},
}

// typePredictors completes the -type flag, per command.
var typePredictors = map[string]complete.Predictor{
	"add-account":  predict.Set{"cash", "bank", "savings", "investment"},
	"add-category": predict.Set{"income", "expense"},
	"recent":       predict.Set{"income", "expense", "transfer"},
}

func predictor(command, name string) complete.Predictor {
	if name == "type" {
		if p, ok := typePredictors[command]; ok {
			return p
		}
	}
	if p, ok := flagPredictors[name]; ok {
		return p
	}
	return predict.Something
}

// Completion describes the commands and flags of c for shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	c.VisitAll(func(f *flag.Flag) {
		root.Flags[f.Name] = predictor("", f.Name)
	})

	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		flags := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(flags)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		flags.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predictor(sc.Name(), f.Name)
		})
		root.Sub[sc.Name()] = sub
	})
	return root
}
