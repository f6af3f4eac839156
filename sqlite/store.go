// Package sqlite stores a finances ledger in a SQLite database.
//
// The document is kept in three tables, one row per entity, in the order
// the ledger holds them. Amounts are stored as decimal text so they are read
// back exactly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/finances"
	_ "modernc.org/sqlite"
)

// DefaultPath is the database used when none is configured.
const DefaultPath = "finanzas.db"

// Store implements finances.Store on a SQLite database.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

var _ finances.Store = (*Store)(nil)

// Open opens, or creates, the database at path and migrates its schema.
// A nil logger discards everything.
func Open(path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, path: path, log: log}, nil
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the whole document. It returns an error matching fs.ErrNotExist
// if the ledger was never saved, and a *finances.CorruptStoreError if a row
// cannot be decoded.
func (s *Store) Load() (finances.Document, error) {
	ctx := context.Background()

	var savedAt string
	err := s.db.QueryRowContext(ctx, selectLedger).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return finances.Document{}, fmt.Errorf("no ledger saved in %q: %w", s.path, fs.ErrNotExist)
	}
	if err != nil {
		return finances.Document{}, fmt.Errorf("read ledger: %w", err)
	}

	var doc finances.Document
	if doc.Accounts, err = s.loadAccounts(ctx); err != nil {
		return finances.Document{}, s.corrupt(err)
	}
	if doc.Categories, err = s.loadCategories(ctx); err != nil {
		return finances.Document{}, s.corrupt(err)
	}
	if doc.Transactions, err = s.loadTransactions(ctx); err != nil {
		return finances.Document{}, s.corrupt(err)
	}
	s.log.DebugContext(ctx, "ledger loaded from sqlite",
		"path", s.path,
		"saved_at", savedAt,
		"accounts", len(doc.Accounts),
		"categories", len(doc.Categories),
		"transactions", len(doc.Transactions))
	return doc, nil
}

// corrupt reports decoding errors as corrupt store errors, and passes other
// database errors through.
func (s *Store) corrupt(err error) error {
	var decodeErr *rowError
	if errors.As(err, &decodeErr) {
		return &finances.CorruptStoreError{Source: s.path, Err: err}
	}
	return err
}

// rowError is a row whose content cannot be decoded.
type rowError struct {
	table    string
	position int64
	err      error
}

func (e *rowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.table, e.position, e.err)
}

func (e *rowError) Unwrap() error { return e.err }

func (s *Store) loadAccounts(ctx context.Context) ([]finances.Account, error) {
	rows, err := s.db.QueryContext(ctx, selectAccounts)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	accounts := []finances.Account{}
	for rows.Next() {
		var (
			pos                    int64
			a                      finances.Account
			balance, initial, kind string
		)
		if err := rows.Scan(&pos, &a.ID, &a.Name, &balance, &initial, &kind, &a.Color); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if a.Balance, err = finances.ParseMoney(balance); err != nil {
			return nil, &rowError{"accounts", pos, err}
		}
		if a.InitialBalance, err = finances.ParseMoney(initial); err != nil {
			return nil, &rowError{"accounts", pos, err}
		}
		if a.Kind, err = finances.ParseAccountKind(kind); err != nil {
			return nil, &rowError{"accounts", pos, err}
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) loadCategories(ctx context.Context) ([]finances.Category, error) {
	rows, err := s.db.QueryContext(ctx, selectCategories)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []finances.Category{}
	for rows.Next() {
		var (
			pos  int64
			c    finances.Category
			kind string
		)
		if err := rows.Scan(&pos, &c.ID, &c.Name, &kind, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if c.Kind, err = finances.ParseCategoryKind(kind); err != nil {
			return nil, &rowError{"categories", pos, err}
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) loadTransactions(ctx context.Context) ([]finances.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectTransactions)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	transactions := []finances.Transaction{}
	for rows.Next() {
		var (
			pos                     int64
			tx                      finances.Transaction
			amount, kind, timestamp string
		)
		if err := rows.Scan(&pos, &tx.ID, &amount, &kind, &tx.Category, &tx.Account, &tx.AccountID, &tx.Description, &timestamp); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if tx.Amount, err = finances.ParseMoney(amount); err != nil {
			return nil, &rowError{"transactions", pos, err}
		}
		if tx.Kind, err = finances.ParseTransactionKind(kind); err != nil {
			return nil, &rowError{"transactions", pos, err}
		}
		tx.Timestamp = finances.Timestamp(timestamp)
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// Save replaces every stored row with doc in a single SQL transaction.
func (s *Store) Save(doc finances.Document) error {
	ctx := context.Background()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, stmt := range []string{deleteAccounts, deleteCategories, deleteTransactions} {
		if _, err := sqlTx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear ledger: %w", err)
		}
	}

	for i, a := range doc.Accounts {
		if _, err := sqlTx.ExecContext(ctx, insertAccount,
			i, a.ID, a.Name, a.Balance.Decimal().String(), a.InitialBalance.Decimal().String(), a.Kind.String(), a.Color); err != nil {
			return fmt.Errorf("insert account %q: %w", a.Name, err)
		}
	}
	for i, c := range doc.Categories {
		if _, err := sqlTx.ExecContext(ctx, insertCategory,
			i, c.ID, c.Name, c.Kind.String(), c.Icon, c.Color); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}
	for i, tx := range doc.Transactions {
		if _, err := sqlTx.ExecContext(ctx, insertTransaction,
			i, tx.ID, tx.Amount.Decimal().String(), tx.Kind.String(), tx.Category, tx.Account, tx.AccountID, tx.Description, string(tx.Timestamp)); err != nil {
			return fmt.Errorf("insert transaction %q: %w", tx.ID, err)
		}
	}

	savedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := sqlTx.ExecContext(ctx, upsertLedger, savedAt); err != nil {
		return fmt.Errorf("mark ledger saved: %w", err)
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit ledger: %w", err)
	}

	s.log.DebugContext(ctx, "ledger saved to sqlite",
		"path", s.path,
		"accounts", len(doc.Accounts),
		"categories", len(doc.Categories),
		"transactions", len(doc.Transactions))
	return nil
}
