package renderer

import (
	"github.com/etnz/finances"
)

// Summary is the overview of a ledger: balances, the current month and the
// latest transactions.
type Summary struct {
	Currency
	Total        finances.Money
	Accounts     []finances.Account
	Statistics   *Statistics
	Transactions []finances.Transaction
}

// NewSummary builds the summary of l with its recent latest transactions.
func NewSummary(l *finances.Ledger, recent int) *Summary {
	return &Summary{
		Currency:     Currency(l.Currency()),
		Total:        l.TotalBalance(),
		Accounts:     l.Accounts(),
		Statistics:   NewStatistics(l.MonthlyStatistics(), l.Currency()),
		Transactions: l.RecentTransactions(recent),
	}
}

// Accounts lists accounts and their total.
type Accounts struct {
	Currency
	Total    finances.Money
	Accounts []finances.Account
}

// NewAccounts lists the accounts of l.
func NewAccounts(l *finances.Ledger) *Accounts {
	return &Accounts{
		Currency: Currency(l.Currency()),
		Total:    l.TotalBalance(),
		Accounts: l.Accounts(),
	}
}

// Categories lists income and expense categories.
type Categories struct {
	Income  []finances.Category
	Expense []finances.Category
}

// NewCategories splits categories by kind, keeping their order.
func NewCategories(categories []finances.Category) *Categories {
	c := &Categories{}
	for _, cat := range categories {
		switch cat.Kind {
		case finances.CategoryIncome:
			c.Income = append(c.Income, cat)
		case finances.CategoryExpense:
			c.Expense = append(c.Expense, cat)
		}
	}
	return c
}

// Transactions is a titled list of transactions.
type Transactions struct {
	Currency
	Title        string
	Transactions []finances.Transaction
}

// NewTransactions creates a titled list of transactions.
func NewTransactions(title, currency string, txs []finances.Transaction) *Transactions {
	return &Transactions{
		Currency:     Currency(currency),
		Title:        title,
		Transactions: txs,
	}
}

// Statistics is the income and expense of a month.
type Statistics struct {
	Currency
	finances.Statistics
}

// NewStatistics wraps s for rendering in currency.
func NewStatistics(s finances.Statistics, currency string) *Statistics {
	return &Statistics{Currency: Currency(currency), Statistics: s}
}

// Drifts is the result of a balance check.
type Drifts struct {
	Currency
	Drifts []finances.BalanceDrift
}

// NewDrifts wraps drifts for rendering in currency.
func NewDrifts(drifts []finances.BalanceDrift, currency string) *Drifts {
	return &Drifts{Currency: Currency(currency), Drifts: drifts}
}
