// Package cmd implements the fin command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/etnz/finances"
	"github.com/etnz/finances/sqlite"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	cfg = LoadConfig()
	// stdout receives the reports, stderr the logs and errors.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Init loads the .env file, if any, reads the configuration from the
// environment and registers the global flags on f. It must be called before
// parsing f.
func Init(f *flag.FlagSet) {
	_ = godotenv.Load()
	cfg = LoadConfig()
	cfg.RegisterFlags(f)
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountsCmd{}, "accounts")
	c.Register(&addAccountCmd{}, "accounts")
	c.Register(&rmAccountCmd{}, "accounts")

	c.Register(&categoriesCmd{}, "categories")
	c.Register(&addCategoryCmd{}, "categories")
	c.Register(&rmCategoryCmd{}, "categories")

	c.Register(&recordCmd{kind: finances.Income}, "transactions")
	c.Register(&recordCmd{kind: finances.Expense}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&recentCmd{}, "transactions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&statsCmd{}, "reports")
	c.Register(&checkCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "help")
}

// session is an opened ledger and what is needed to close it.
type session struct {
	*finances.Ledger
	log   *slog.Logger
	close func() error
}

// Close releases the store.
func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openStore opens the configured store.
func openStore(log *slog.Logger) (finances.Store, func() error, error) {
	switch cfg.Store {
	case StoreSQLite:
		s, err := sqlite.Open(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return finances.NewFileStore(cfg.DataFile), nil, nil
	}
}

// openLedger validates the configuration and opens the ledger. With
// -dry-run the ledger works on a copy of the stored document.
func openLedger() (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.NewLogger(stderr)

	store, closeStore, err := openStore(log)
	if err != nil {
		return nil, fmt.Errorf("could not open store: %w", err)
	}

	if cfg.DryRun {
		var doc *finances.Document
		if d, err := store.Load(); err == nil {
			doc = &d
		}
		if closeStore != nil {
			closeStore()
			closeStore = nil
		}
		store = finances.NewMemoryStore(doc)
		log.Info("dry run, changes will not be saved")
	}

	opts := []finances.Option{finances.WithLogger(log), finances.WithCurrency(cfg.Currency)}
	if cfg.Strict {
		opts = append(opts, finances.WithStrictLoad())
	}
	l, err := finances.Open(store, opts...)
	if err != nil {
		if closeStore != nil {
			closeStore()
		}
		return nil, err
	}

	report := l.LoadReport()
	if report.Seeded && !errors.Is(report.Reason, fs.ErrNotExist) {
		printWarning("The ledger could not be read and was replaced by a new one: %v", report.Reason)
	}
	if report.MissingTimestamps > 0 {
		printWarning("%d transactions have no date.", report.MissingTimestamps)
	}
	return &session{Ledger: l, log: log, close: closeStore}, nil
}

// withLedger opens the ledger, runs do, and closes the ledger.
func withLedger(do func(*session) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := openLedger()
	if err != nil {
		printError("Error: could not open ledger: %v", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := s.Close(); err != nil {
			printError("Error: could not close ledger: %v", err)
		}
	}()
	return do(s)
}
