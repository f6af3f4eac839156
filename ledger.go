package finances

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// DefaultRecentLimit is the number of recent transactions listed when none is asked for.
const DefaultRecentLimit = 10

// Ledger holds accounts, categories and transactions in memory and persists
// the whole of them to its Store after every mutation.
//
// A Ledger is not safe for concurrent use: it expects a single caller issuing
// one operation at a time.
type Ledger struct {
	store    Store
	log      *slog.Logger
	now      func() time.Time
	currency string
	strict   bool

	accounts     []Account
	categories   []Category
	transactions []Transaction

	ids    idGenerator
	report LoadReport
}

// LoadReport describes what happened when the ledger was opened.
type LoadReport struct {
	// Seeded is true when the default document replaced the stored one.
	Seeded bool
	// Reason is the load error that caused the seeding.
	Reason error
	// MissingTimestamps counts stored transactions without a date.
	MissingTimestamps int
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger, by default nothing is logged.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithCurrency sets the currency used to format amounts in messages.
func WithCurrency(code string) Option {
	return func(l *Ledger) { l.currency = code }
}

// WithStrictLoad makes Open fail on a store that cannot be read or decoded,
// instead of replacing it with the default document.
func WithStrictLoad() Option {
	return func(l *Ledger) { l.strict = true }
}

// Open loads the ledger from store.
//
// If the store does not exist, or cannot be read or decoded, the ledger
// starts from DefaultDocument, which is saved right away. With
// WithStrictLoad, only a missing store is seeded and other load errors are
// returned.
func Open(store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:    store,
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(l)
	}

	doc, err := store.Load()
	if err != nil {
		if l.strict && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load ledger: %w", err)
		}
		l.log.Warn("starting from default ledger", "reason", err)
		l.report = LoadReport{Seeded: true, Reason: err}
		l.adopt(DefaultDocument())
		if err := l.save(); err != nil {
			return nil, err
		}
		return l, nil
	}

	l.adopt(doc)
	if n := l.report.MissingTimestamps; n > 0 {
		l.log.Warn("stored transactions have no date", "count", n)
	}
	return l, nil
}

// adopt replaces the in memory state with doc. Transactions without ID get one.
func (l *Ledger) adopt(doc Document) {
	l.accounts = nonNil(doc.Accounts)
	l.categories = nonNil(doc.Categories)
	l.transactions = nonNil(doc.Transactions)

	for _, tx := range l.transactions {
		l.ids.observe(tx.ID)
	}
	for i := range l.transactions {
		tx := &l.transactions[i]
		if tx.ID == "" {
			tx.ID = l.ids.next(l.now())
		}
		if tx.Timestamp.IsZero() {
			l.report.MissingTimestamps++
		}
	}
}

// save persists the whole ledger. On failure the in memory state is kept as is.
func (l *Ledger) save() error {
	if err := l.store.Save(l.Document()); err != nil {
		l.log.Error("could not persist ledger", "error", err)
		return fmt.Errorf("could not persist ledger: %w", err)
	}
	return nil
}

// Document returns a copy of the whole ledger state.
func (l *Ledger) Document() Document {
	return Document{
		Accounts:     slices.Clone(l.accounts),
		Categories:   slices.Clone(l.categories),
		Transactions: slices.Clone(l.transactions),
	}
}

// LoadReport returns what happened when the ledger was opened.
func (l *Ledger) LoadReport() LoadReport { return l.report }

// Currency returns the currency used to format amounts.
func (l *Ledger) Currency() string { return l.currency }

// indexOfAccount returns the index of the first account named name, or -1.
func (l *Ledger) indexOfAccount(name string) int {
	return slices.IndexFunc(l.accounts, func(a Account) bool { return a.Name == name })
}

// Accounts returns all accounts in creation order.
func (l *Ledger) Accounts() []Account { return slices.Clone(l.accounts) }

// Account returns the first account named name.
func (l *Ledger) Account(name string) (Account, bool) {
	if i := l.indexOfAccount(name); i >= 0 {
		return l.accounts[i], true
	}
	return Account{}, false
}

// AccountByID returns the account with this id.
func (l *Ledger) AccountByID(id string) (Account, bool) {
	i := slices.IndexFunc(l.accounts, func(a Account) bool { return a.ID == id })
	if i < 0 {
		return Account{}, false
	}
	return l.accounts[i], true
}

// AddAccount creates an account whose balance starts at initial.
//
// Names are not required to be unique. The account is returned even when
// persisting fails.
func (l *Ledger) AddAccount(name string, initial Money, kind AccountKind, color string) (Account, error) {
	if color == "" {
		color = "blue"
	}
	a := NewAccount(name, initial, kind, color)
	l.accounts = append(l.accounts, a)
	l.log.Info("account added", "name", name, "id", a.ID, "balance", initial.Format(l.currency))
	return a, l.save()
}

// RemoveAccount removes every account named name. Transactions recorded
// against them are kept.
func (l *Ledger) RemoveAccount(name string) error {
	before := len(l.accounts)
	l.accounts = slices.DeleteFunc(l.accounts, func(a Account) bool { return a.Name == name })
	l.log.Info("accounts removed", "name", name, "count", before-len(l.accounts))
	return l.save()
}

// Categories returns all categories in creation order.
func (l *Ledger) Categories() []Category { return slices.Clone(l.categories) }

// CategoriesOf returns the categories of the given kind.
func (l *Ledger) CategoriesOf(kind CategoryKind) []Category {
	var res []Category
	for _, c := range l.categories {
		if c.Kind == kind {
			res = append(res, c)
		}
	}
	return res
}

// AddCategory creates a category. An empty icon or color gets the default one.
func (l *Ledger) AddCategory(name string, kind CategoryKind, icon, color string) (Category, error) {
	c := NewCategory(name, kind, icon, color)
	l.categories = append(l.categories, c)
	l.log.Info("category added", "name", name, "kind", kind.Label())
	return c, l.save()
}

// RemoveCategory removes every category named name. Transactions labelled
// with it are kept.
func (l *Ledger) RemoveCategory(name string) error {
	before := len(l.categories)
	l.categories = slices.DeleteFunc(l.categories, func(c Category) bool { return c.Name == name })
	l.log.Info("categories removed", "name", name, "count", before-len(l.categories))
	return l.save()
}

// newTransaction creates a transaction stamped with the current time.
func (l *Ledger) newTransaction(amount Money, kind TransactionKind, category, account, description string) Transaction {
	now := l.now()
	return Transaction{
		ID:          l.ids.next(now),
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		Account:     account,
		Description: description,
		Timestamp:   NewTimestamp(now),
	}
}

// AddTransaction records a transaction against the first account named
// account: income is added to its balance and expense is subtracted.
// A transfer is recorded without changing any balance, use Transfer to move
// money between accounts.
//
// When no account has that name the transaction is recorded anyway and no
// balance changes.
func (l *Ledger) AddTransaction(amount Money, kind TransactionKind, category, account, description string) (Transaction, error) {
	tx := l.newTransaction(amount, kind, category, account, description)

	if i := l.indexOfAccount(account); i >= 0 {
		a := &l.accounts[i]
		switch kind {
		case Income:
			a.Balance = a.Balance.Add(amount)
			tx.AccountID = a.ID
		case Expense:
			a.Balance = a.Balance.Sub(amount)
			tx.AccountID = a.ID
		case Transfer:
			// balances move only through Transfer.
		}
	} else {
		l.log.Debug("transaction recorded against an unknown account", "account", account, "id", tx.ID)
	}

	l.transactions = append(l.transactions, tx)
	l.log.Info("transaction added", "id", tx.ID, "kind", kind.Label(), "amount", amount.Format(l.currency), "account", account)
	return tx, l.save()
}

// TransferResult is the outcome of Transfer.
type TransferResult struct {
	OK      bool
	Message string
	// Fee is the part of Debit that is lost in the transfer.
	Fee Money
	// Debit is the amount plus the fee, taken from the source account.
	Debit Money
	// Debited and Credited are the two recorded transactions, when OK.
	Debited  Transaction
	Credited Transaction
}

// MsgInsufficientFunds is the message of a transfer refused for lack of funds.
const MsgInsufficientFunds = "insufficient funds"

// Transfer moves amount from the first account named source to the first
// account named dest. The source is debited amount plus fee percent of it,
// the destination is credited amount only.
//
// If the source does not exist or its balance is lower than the debit, the
// result is not OK and nothing changes. A missing destination is not an
// error: the source is debited and the credit transaction is still recorded.
func (l *Ledger) Transfer(source, dest string, amount Money, fee Percent) (TransferResult, error) {
	feeAmount := fee.Of(amount)
	debit := amount.Add(feeAmount)

	src := l.indexOfAccount(source)
	if src < 0 || l.accounts[src].Balance.LessThan(debit) {
		l.log.Info("transfer refused", "from", source, "to", dest, "debit", debit.Format(l.currency))
		return TransferResult{OK: false, Message: MsgInsufficientFunds, Fee: feeAmount, Debit: debit}, nil
	}

	l.accounts[src].Balance = l.accounts[src].Balance.Sub(debit)
	debited := l.newTransaction(debit, Transfer, "Transfer to "+dest, source,
		fmt.Sprintf("Sent: %s + Fee: %s", amount.Format(l.currency), feeAmount.Format(l.currency)))
	debited.AccountID = l.accounts[src].ID

	credited := l.newTransaction(amount, Income, "Transfer from "+source, dest, "Received from "+source)
	if dst := l.indexOfAccount(dest); dst >= 0 {
		l.accounts[dst].Balance = l.accounts[dst].Balance.Add(amount)
		credited.AccountID = l.accounts[dst].ID
	} else {
		l.log.Debug("transfer credited to an unknown account", "account", dest, "id", credited.ID)
	}

	l.transactions = append(l.transactions, debited, credited)
	res := TransferResult{
		OK:       true,
		Message:  "transfer completed. Fee: " + feeAmount.Format(l.currency),
		Fee:      feeAmount,
		Debit:    debit,
		Debited:  debited,
		Credited: credited,
	}
	l.log.Info("transfer completed", "from", source, "to", dest, "amount", amount.Format(l.currency), "fee", feeAmount.Format(l.currency))
	return res, l.save()
}

// TotalBalance returns the sum of all account balances.
func (l *Ledger) TotalBalance() Money {
	var total Money
	for _, a := range l.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// Transactions returns an iterator over the transactions, in the order they
// were recorded, that are accepted by all filters.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// OfKind filters transactions of kind k.
func OfKind(k TransactionKind) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Kind == k }
}

// OnAccount filters transactions recorded against the account named name.
func OnAccount(name string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Account == name }
}

// RecentTransactions returns the latest limit transactions, newest first.
// Transactions with the same timestamp keep the order they were recorded in.
// A limit lower than 1 returns no transaction.
func (l *Ledger) RecentTransactions(limit int, filters ...func(Transaction) bool) []Transaction {
	if limit < 1 {
		return []Transaction{}
	}
	var sorted []Transaction
	for _, tx := range l.Transactions(filters...) {
		sorted = append(sorted, tx)
	}
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return strings.Compare(string(b.Timestamp), string(a.Timestamp))
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
