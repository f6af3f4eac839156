package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/etnz/finances"
	"github.com/etnz/finances/date"
	"github.com/etnz/finances/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

const accountantInstruction = `
You are the accountant of the user's personal finances.
Use the tools to read the user's accounts, categories, transactions and monthly statistics
before answering. You cannot change anything in the ledger: when the user asks for a change,
tell them which fin command does it.
Amounts are in %s. Answer briefly, in markdown.`

// NewAccountant returns an expert answering questions about l.
func NewAccountant(l *finances.Ledger, model string, log *slog.Logger) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := LedgerFunctions(l)
	return &Expert{
		Name:      "Accountant",
		ModelName: model,
		Log:       log,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(accountantInstruction, l.Currency())}}},
		},
		Library: NewLibrary(lib),
	}
}

// LedgerFunctions returns the read only queries on l a model can call.
func LedgerFunctions(l *finances.Ledger) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "total_balance",
				Description: "Returns the sum of the balances of all accounts.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "The formatted total balance."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return l.TotalBalance().Format(l.Currency()), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_accounts",
				Description: "Lists all accounts with their type and balance, and the total balance.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown table of the accounts."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.RenderAccounts(renderer.NewAccounts(l)), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_categories",
				Description: "Lists the income and expense categories.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "Markdown tables of the categories."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.RenderCategories(renderer.NewCategories(l.Categories())), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "recent_transactions",
				Description: "Lists the latest transactions, newest first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"limit":   {Type: genai.TypeInteger, Description: "How many transactions to return, 10 by default."},
						"kind":    {Type: genai.TypeString, Description: "Only transactions of this kind: income, expense or transfer."},
						"account": {Type: genai.TypeString, Description: "Only transactions of the account with this name."},
						"month":   {Type: genai.TypeString, Description: "Only transactions of this month, as YYYY-MM."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of transactions."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				limit, err := intArg(args, "limit", finances.DefaultRecentLimit)
				if err != nil {
					return "", err
				}
				var filters []func(finances.Transaction) bool
				if s, err := stringArg(args, "kind"); err != nil {
					return "", err
				} else if s != "" {
					k, err := finances.ParseTransactionKind(s)
					if err != nil {
						return "", err
					}
					filters = append(filters, finances.OfKind(k))
				}
				if s, err := stringArg(args, "account"); err != nil {
					return "", err
				} else if s != "" {
					filters = append(filters, finances.OnAccount(s))
				}
				if s, err := stringArg(args, "month"); err != nil {
					return "", err
				} else if s != "" {
					m, err := date.Parse(s)
					if err != nil {
						return "", err
					}
					filters = append(filters, finances.InMonth(m))
				}
				txs := l.RecentTransactions(limit, filters...)
				return renderer.RenderTransactions(renderer.NewTransactions("Recent Transactions", l.Currency(), txs)), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "monthly_statistics",
				Description: "Returns the income, expenses and net result of a month, with totals per category. Transfers between accounts are not counted as expenses.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month": {Type: genai.TypeString, Description: "The month as YYYY-MM, the current month by default."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "Markdown tables of the statistics."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				s, err := stringArg(args, "month")
				if err != nil {
					return "", err
				}
				stats := l.MonthlyStatistics()
				if s != "" {
					m, err := date.Parse(s)
					if err != nil {
						return "", err
					}
					stats = l.StatisticsFor(m)
				}
				return renderer.RenderStatistics(renderer.NewStatistics(stats, l.Currency())), nil
			},
		},
	}
}

// stringArg returns the optional string argument name.
func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	return s, nil
}

// intArg returns the optional integer argument name, JSON numbers being float64.
func intArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return def, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
	}
}
