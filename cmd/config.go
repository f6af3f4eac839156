package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	money "github.com/Rhymond/go-money"
	"github.com/etnz/finances"
	"github.com/etnz/finances/assistant"
	"github.com/etnz/finances/sqlite"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds the settings of the application.
type Config struct {
	// Storage
	Store      string
	DataFile   string
	SQLitePath string
	Strict     bool
	DryRun     bool

	// Ledger
	Currency    string
	TransferFee float64

	// Logging
	LogLevel  string
	LogFormat string

	// Assistant
	GeminiModel string
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() *Config {
	return &Config{
		Store:       getEnv("FIN_STORE", StoreJSON),
		DataFile:    getEnv("FIN_DATA_FILE", finances.DefaultDataFile),
		SQLitePath:  getEnv("FIN_SQLITE_PATH", sqlite.DefaultPath),
		Currency:    getEnv("FIN_CURRENCY", finances.DefaultCurrency),
		TransferFee: getEnvFloat("FIN_TRANSFER_FEE", float64(finances.DefaultTransferFee)),
		LogLevel:    getEnv("FIN_LOG_LEVEL", "warn"),
		LogFormat:   getEnv("FIN_LOG_FORMAT", "text"),
		GeminiModel: getEnv("GEMINI_MODEL", assistant.DefaultModel),
	}
}

// RegisterFlags binds global flags to the configuration, so that they
// override the environment.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.Store, "store", c.Store, "Storage backend: json or sqlite.")
	f.StringVar(&c.DataFile, "data", c.DataFile, "Path to the JSON ledger file.")
	f.StringVar(&c.SQLitePath, "sqlite", c.SQLitePath, "Path to the SQLite ledger database.")
	f.BoolVar(&c.Strict, "strict", c.Strict, "Refuse to start on a ledger that cannot be read instead of starting a new one.")
	f.BoolVar(&c.DryRun, "dry-run", c.DryRun, "Do not save any change.")
	f.StringVar(&c.Currency, "currency", c.Currency, "Currency code used to display amounts.")
	f.Float64Var(&c.TransferFee, "fee", c.TransferFee, "Transfer fee, in percent of the amount.")
	f.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error.")
	f.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text or json.")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errors []string

	validStores := []string{StoreJSON, StoreSQLite}
	if !slices.Contains(validStores, c.Store) {
		errors = append(errors, fmt.Sprintf("invalid store '%s': must be one of %v", c.Store, validStores))
	}
	if c.Store == StoreJSON && c.DataFile == "" {
		errors = append(errors, "data file cannot be empty when using json store")
	}
	if c.Store == StoreSQLite && c.SQLitePath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite store")
	}

	if money.GetCurrency(c.Currency) == nil {
		errors = append(errors, fmt.Sprintf("unknown currency '%s'", c.Currency))
	}
	if c.TransferFee < 0 || c.TransferFee >= 100 {
		errors = append(errors, fmt.Sprintf("invalid transfer fee %v: must be between 0 and 100", c.TransferFee))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// Fee returns the transfer fee.
func (c *Config) Fee() finances.Percent { return finances.Percent(c.TransferFee) }

// NewLogger returns a logger writing to w as configured. The configuration
// must be valid.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	level.UnmarshalText([]byte(c.LogLevel))
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		// Validate reports it.
		return -1
	}
	return f
}
