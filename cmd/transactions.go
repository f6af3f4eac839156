package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/finances"
	"github.com/etnz/finances/date"
	"github.com/etnz/finances/renderer"
	"github.com/google/subcommands"
)

// recordCmd records an income or an expense.
type recordCmd struct {
	kind        finances.TransactionKind
	account     string
	category    string
	description string
}

func (c *recordCmd) Name() string { return c.kind.Label() }
func (c *recordCmd) Synopsis() string {
	if c.kind == finances.Income {
		return "record money coming into an account"
	}
	return "record money going out of an account"
}
func (c *recordCmd) Usage() string {
	return fmt.Sprintf(`fin %[1]s -account <account> -category <category> [-desc <description>] <amount>

  Records an %[1]s on the account and updates its balance.

Usage Examples:
$ fin %[1]s -account Cash -category Food -desc "Groceries" 42.30
`, c.kind.Label())
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name (required).")
	f.StringVar(&c.category, "category", "", "Category name (required).")
	f.StringVar(&c.description, "desc", "", "Description.")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, ok := amountArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	account := strings.TrimSpace(c.account)
	category := strings.TrimSpace(c.category)
	if account == "" || category == "" {
		printError("Error: -account and -category are required")
		return subcommands.ExitUsageError
	}

	return withLedger(func(l *session) subcommands.ExitStatus {
		if _, found := l.Account(account); !found {
			printError("Error: no account named %q", account)
			return subcommands.ExitFailure
		}
		tx, err := l.AddTransaction(amount, c.kind, category, account, c.description)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		a, _ := l.Account(account)
		printSuccess("%s of %s recorded on %q, balance is now %s.",
			strings.ToUpper(c.kind.Label()[:1])+c.kind.Label()[1:],
			tx.Amount.Format(l.Currency()), account, a.Balance.Format(l.Currency()))
		return subcommands.ExitSuccess
	})
}

type transferCmd struct {
	from    string
	to      string
	preview bool
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts, for a fee" }
func (*transferCmd) Usage() string {
	return `fin transfer -from <account> -to <account> <amount>

  Moves the amount from one account to another. The source account also pays
  the transfer fee (see -fee), which leaves the ledger. With -preview, shows
  what would be debited without transferring.

Usage Examples:
$ fin transfer -preview -from Cash -to "Main Bank" 50
$ fin transfer -from Cash -to "Main Bank" 50
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account (required).")
	f.StringVar(&c.to, "to", "", "Destination account (required).")
	f.BoolVar(&c.preview, "preview", false, "Show the debit and the fee without transferring.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, ok := amountArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	from, to := strings.TrimSpace(c.from), strings.TrimSpace(c.to)
	if from == "" || to == "" {
		printError("Error: -from and -to are required")
		return subcommands.ExitUsageError
	}
	if from == to {
		printError("Error: cannot transfer from an account to itself")
		return subcommands.ExitUsageError
	}

	return withLedger(func(l *session) subcommands.ExitStatus {
		if _, found := l.Account(to); !found {
			printError("Error: no account named %q", to)
			return subcommands.ExitFailure
		}
		if c.preview {
			return previewTransfer(l, from, to, amount)
		}
		res, err := l.Transfer(from, to, amount, cfg.Fee())
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitFailure
		}
		if !res.OK {
			printError("Transfer refused: %s (%s needed).", res.Message, res.Debit.Format(l.Currency()))
			return subcommands.ExitFailure
		}
		printSuccess("%s. %s debited from %q.", res.Message, res.Debit.Format(l.Currency()), from)
		return subcommands.ExitSuccess
	})
}

// previewTransfer prints what a transfer would debit, and fails if the
// source could not pay it.
func previewTransfer(l *session, from, to string, amount finances.Money) subcommands.ExitStatus {
	fee := cfg.Fee().Of(amount)
	debit := amount.Add(fee)
	fmt.Fprintf(stdout, "Transfer of %s from %q to %q will debit %s (fee %s: %s).\n",
		amount.Format(l.Currency()), from, to, debit.Format(l.Currency()), cfg.Fee(), fee.Format(l.Currency()))

	a, found := l.Account(from)
	if !found {
		printError("Error: no account named %q", from)
		return subcommands.ExitFailure
	}
	if a.Balance.LessThan(debit) {
		printWarning("%q holds %s, the transfer would be refused.", from, a.Balance.Format(l.Currency()))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type recentCmd struct {
	limit   int
	kind    string
	account string
	month   string
}

func (*recentCmd) Name() string     { return "recent" }
func (*recentCmd) Synopsis() string { return "list the latest transactions" }
func (*recentCmd) Usage() string {
	return `fin recent [-n <count>] [-type <type>] [-account <account>] [-m <YYYY-MM>]

  Lists the latest transactions, newest first.
`
}

func (c *recentCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", finances.DefaultRecentLimit, "Number of transactions to list.")
	f.StringVar(&c.kind, "type", "", "Only transactions of this type: income, expense or transfer.")
	f.StringVar(&c.account, "account", "", "Only transactions of this account.")
	f.StringVar(&c.month, "m", "", "Only transactions of this month, as YYYY-MM.")
}

func (c *recentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []func(finances.Transaction) bool
	if c.kind != "" {
		k, err := finances.ParseTransactionKind(c.kind)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, finances.OfKind(k))
	}
	if c.account != "" {
		filters = append(filters, finances.OnAccount(c.account))
	}
	if c.month != "" {
		m, err := date.Parse(c.month)
		if err != nil {
			printError("Error: %v", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, finances.InMonth(m))
	}

	return withLedger(func(l *session) subcommands.ExitStatus {
		txs := l.RecentTransactions(c.limit, filters...)
		printMarkdown(renderer.RenderTransactions(renderer.NewTransactions("Recent Transactions", l.Currency(), txs)))
		return subcommands.ExitSuccess
	})
}

// amountArg returns the single, positive, amount argument.
func amountArg(f *flag.FlagSet) (finances.Money, bool) {
	if f.NArg() != 1 {
		printError("Error: expected exactly one amount, got %d arguments", f.NArg())
		return finances.Money{}, false
	}
	amount, err := finances.ParseMoney(f.Arg(0))
	if err != nil {
		printError("Error: %v", err)
		return finances.Money{}, false
	}
	if !amount.IsPositive() {
		printError("Error: the amount must be positive")
		return finances.Money{}, false
	}
	return amount, true
}
