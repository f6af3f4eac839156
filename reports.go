package finances

import (
	"cmp"
	"slices"

	"github.com/etnz/finances/date"
)

// CategoryAmount is the total of one category for one kind of transaction.
type CategoryAmount struct {
	Category string
	Kind     TransactionKind
	Amount   Money
}

// Statistics sums the income and expenses of a month. Transfers are not
// counted, but the income side of a transfer is.
type Statistics struct {
	Month   date.Month
	Income  Money
	Expense Money
	// Net is Income minus Expense.
	Net Money
	// ByCategory lists totals per category, largest first.
	ByCategory []CategoryAmount
}

// InMonth filters transactions whose timestamp falls in month m.
func InMonth(m date.Month) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Timestamp.In(m) }
}

// MonthlyStatistics returns the statistics of the current month.
func (l *Ledger) MonthlyStatistics() Statistics {
	return l.StatisticsFor(date.Of(l.now()))
}

// StatisticsFor returns the statistics of month m.
func (l *Ledger) StatisticsFor(m date.Month) Statistics {
	s := Statistics{Month: m}
	type key struct {
		category string
		kind     TransactionKind
	}
	totals := make(map[key]Money)

	for _, tx := range l.Transactions(InMonth(m)) {
		switch tx.Kind {
		case Income:
			s.Income = s.Income.Add(tx.Amount)
		case Expense:
			s.Expense = s.Expense.Add(tx.Amount)
		case Transfer:
			continue
		}
		k := key{tx.Category, tx.Kind}
		totals[k] = totals[k].Add(tx.Amount)
	}
	s.Net = s.Income.Sub(s.Expense)

	for k, amount := range totals {
		s.ByCategory = append(s.ByCategory, CategoryAmount{Category: k.category, Kind: k.kind, Amount: amount})
	}
	slices.SortFunc(s.ByCategory, func(a, b CategoryAmount) int {
		if c := b.Amount.Decimal().Cmp(a.Amount.Decimal()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return s
}

// BalanceDrift reports an account whose balance does not match its history.
type BalanceDrift struct {
	Account Account
	// Expected is the initial balance plus the effect of every transaction
	// applied to the account.
	Expected Money
}

// Difference returns the balance minus the expected balance.
func (d BalanceDrift) Difference() Money { return d.Account.Balance.Sub(d.Expected) }

// CheckBalances replays the transactions applied to each account on top of
// its initial balance and returns the accounts whose balance differs by at
// least the minor unit of the ledger currency. Smaller differences come from
// balances stored as binary floats.
func (l *Ledger) CheckBalances() []BalanceDrift {
	net := make(map[string]Money)
	for _, tx := range l.transactions {
		if tx.AccountID != "" {
			net[tx.AccountID] = net[tx.AccountID].Add(tx.Signed())
		}
	}

	var drifts []BalanceDrift
	for _, a := range l.accounts {
		expected := a.InitialBalance.Add(net[a.ID])
		if !a.Balance.Sub(expected).RoundTo(l.currency).IsZero() {
			drifts = append(drifts, BalanceDrift{Account: a, Expected: expected})
		}
	}
	return drifts
}
