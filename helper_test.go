package finances

import (
	"testing"
	"time"
)

// testClock is a fake time source moving forward by step on each read.
type testClock struct {
	t    time.Time
	step time.Duration
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, time.October, 15, 9, 30, 0, 0, time.Local), step: time.Second}
}

func (c *testClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

// cashAndBank is a document with a "Cash" account holding 100 and an empty "Bank" account.
func cashAndBank() Document {
	return Document{
		Accounts: []Account{
			NewAccount("Cash", M(100), AccountCash, "green"),
			NewAccount("Bank", M(0), AccountBank, "blue"),
		},
		Categories: []Category{
			NewCategory("Salary", CategoryIncome, "💰", "green"),
			NewCategory("Food", CategoryExpense, "🍔", "orange"),
		},
	}
}

// openTestLedger opens a ledger on a memory store holding doc.
func openTestLedger(t *testing.T, doc Document) (*Ledger, *MemoryStore, *testClock) {
	t.Helper()
	store := NewMemoryStore(&doc)
	clock := newTestClock()
	l, err := Open(store, WithClock(clock.now))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return l, store, clock
}

// balance returns the balance of the first account named name.
func balance(t *testing.T, l *Ledger, name string) Money {
	t.Helper()
	a, ok := l.Account(name)
	if !ok {
		t.Fatalf("account %q not found", name)
	}
	return a.Balance
}
