package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/finances"
	"github.com/etnz/finances/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `fin accounts

  Lists every account with its type and balance, and the total balance.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withLedger(func(l *session) subcommands.ExitStatus {
		printMarkdown(renderer.RenderAccounts(renderer.NewAccounts(l.Ledger)))
		return subcommands.ExitSuccess
	})
}

type addAccountCmd struct {
	kind    string
	initial string
	color   string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `fin add-account [-type <type>] [-initial <amount>] [-color <color>] <name>

  Creates an account whose balance starts at the initial amount.
  Types are cash, bank, savings and investment.

Usage Examples:
$ fin add-account -type bank -initial 1200 "Main Bank"
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "cash", "Account type: cash, bank, savings or investment.")
	f.StringVar(&c.initial, "initial", "0", "Initial balance.")
	f.StringVar(&c.color, "color", "blue", "Display color.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := nameArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	kind, err := finances.ParseAccountKind(c.kind)
	if err != nil {
		printError("Error: %v", err)
		return subcommands.ExitUsageError
	}
	initial, err := finances.ParseMoney(c.initial)
	if err != nil {
		printError("Error: %v", err)
		return subcommands.ExitUsageError
	}
	if initial.IsNegative() {
		printError("Error: the initial balance cannot be negative")
		return subcommands.ExitUsageError
	}

	return withLedger(func(l *session) subcommands.ExitStatus {
		a, err := l.AddAccount(name, initial, kind, c.color)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		printSuccess("Account %q created with %s.", a.Name, a.Balance.Format(l.Currency()))
		return subcommands.ExitSuccess
	})
}

type rmAccountCmd struct{}

func (*rmAccountCmd) Name() string     { return "rm-account" }
func (*rmAccountCmd) Synopsis() string { return "remove accounts by name" }
func (*rmAccountCmd) Usage() string {
	return `fin rm-account <name>

  Removes every account with this name. Their transactions are kept.
`
}

func (*rmAccountCmd) SetFlags(f *flag.FlagSet) {}

func (*rmAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, ok := nameArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withLedger(func(l *session) subcommands.ExitStatus {
		if _, found := l.Account(name); !found {
			printError("Error: no account named %q", name)
			return subcommands.ExitFailure
		}
		if err := l.RemoveAccount(name); err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		printSuccess("Account %q removed.", name)
		return subcommands.ExitSuccess
	})
}

// nameArg returns the single, non blank, name argument.
func nameArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		printError("Error: expected exactly one name, got %d arguments", f.NArg())
		return "", false
	}
	name := strings.TrimSpace(f.Arg(0))
	if name == "" {
		printError("Error: the name cannot be empty")
		return "", false
	}
	return name, true
}
