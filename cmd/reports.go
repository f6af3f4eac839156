package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/etnz/finances"
	"github.com/etnz/finances/date"
	"github.com/etnz/finances/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	recent int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show balances, this month and the latest transactions" }
func (*summaryCmd) Usage() string {
	return `fin summary [-n <count>]

  Shows the total balance, every account, the statistics of the current month
  and the latest transactions.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.recent, "n", 5, "Number of recent transactions to show.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(func(l *session) subcommands.ExitStatus {
		printMarkdown(renderer.RenderSummary(renderer.NewSummary(l.Ledger, c.recent)))
		return subcommands.ExitSuccess
	})
}

type statsCmd struct {
	month string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show the income and expenses of a month" }
func (*statsCmd) Usage() string {
	return `fin stats [-m <YYYY-MM>]

  Shows the income, expenses and net result of a month, with a total per
  category. Transfers between accounts are not counted.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month, as YYYY-MM. Defaults to the current month.")
}

func (c *statsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var month date.Month
	if c.month != "" {
		m, err := date.Parse(c.month)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitUsageError
		}
		month = m
	}

	return withLedger(func(l *session) subcommands.ExitStatus {
		s := l.MonthlyStatistics()
		if !month.IsZero() {
			s = l.StatisticsFor(month)
		}
		printMarkdown(renderer.RenderStatistics(renderer.NewStatistics(s, l.Currency())))
		return subcommands.ExitSuccess
	})
}

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify balances against their transactions" }
func (*checkCmd) Usage() string {
	return `fin check

  Recomputes each account from its initial balance and its transactions, and
  lists the accounts that do not match. Exits with a failure if any.
`
}

func (*checkCmd) SetFlags(f *flag.FlagSet) {}

func (*checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(func(l *session) subcommands.ExitStatus {
		drifts := l.CheckBalances()
		printMarkdown(renderer.RenderDrifts(renderer.NewDrifts(drifts, l.Currency())))
		if len(drifts) > 0 {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `fin query <jsonpath>

  Evaluates the expression against the ledger as it is stored in the JSON file
  and prints the result as JSON.

Usage Examples:
$ fin query '$.cuentas[*].nombre'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		printError("Error: expected exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	return withLedger(func(l *session) subcommands.ExitStatus {
		res, err := finances.Query(l.Document(), path)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, string(out))
		return subcommands.ExitSuccess
	})
}
