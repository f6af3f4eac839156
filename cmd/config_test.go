package cmd

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/etnz/finances"
	"github.com/etnz/finances/assistant"
	"github.com/etnz/finances/sqlite"
	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"FIN_STORE", "FIN_DATA_FILE", "FIN_SQLITE_PATH", "FIN_CURRENCY",
		"FIN_TRANSFER_FEE", "FIN_LOG_LEVEL", "FIN_LOG_FORMAT", "GEMINI_MODEL"} {
		t.Setenv(key, "")
	}

	got := LoadConfig()
	want := &Config{
		Store:       StoreJSON,
		DataFile:    finances.DefaultDataFile,
		SQLitePath:  sqlite.DefaultPath,
		Currency:    "USD",
		TransferFee: 0.41,
		LogLevel:    "warn",
		LogFormat:   "text",
		GeminiModel: assistant.DefaultModel,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("FIN_STORE", "sqlite")
	t.Setenv("FIN_SQLITE_PATH", "/tmp/money.db")
	t.Setenv("FIN_CURRENCY", "EUR")
	t.Setenv("FIN_TRANSFER_FEE", "1.5")
	t.Setenv("FIN_LOG_LEVEL", "debug")

	c := LoadConfig()
	if c.Store != StoreSQLite || c.SQLitePath != "/tmp/money.db" || c.Currency != "EUR" || c.LogLevel != "debug" {
		t.Errorf("LoadConfig() = %+v, environment not applied", c)
	}
	if got, want := c.Fee(), finances.Percent(1.5); got != want {
		t.Errorf("Fee() = %v, want %v", got, want)
	}
}

func TestRegisterFlags_OverrideEnvironment(t *testing.T) {
	t.Setenv("FIN_CURRENCY", "EUR")
	c := LoadConfig()
	f := flag.NewFlagSet("fin", flag.ContinueOnError)
	c.RegisterFlags(f)
	if err := f.Parse([]string{"-currency", "GBP", "-fee", "0", "-dry-run"}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if c.Currency != "GBP" || c.TransferFee != 0 || !c.DryRun {
		t.Errorf("flags not applied: %+v", c)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{Store: StoreJSON, DataFile: "f.json", SQLitePath: "f.db", Currency: "USD",
			TransferFee: 0.41, LogLevel: "warn", LogFormat: "text"}
	}
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{name: "store", modify: func(c *Config) { c.Store = "csv" }, want: []string{"invalid store 'csv'"}},
		{name: "data file", modify: func(c *Config) { c.DataFile = "" }, want: []string{"data file cannot be empty"}},
		{name: "sqlite path", modify: func(c *Config) { c.Store, c.SQLitePath = StoreSQLite, "" }, want: []string{"SQLite database path cannot be empty"}},
		{name: "currency", modify: func(c *Config) { c.Currency = "XYZ" }, want: []string{"unknown currency 'XYZ'"}},
		{name: "negative fee", modify: func(c *Config) { c.TransferFee = -1 }, want: []string{"invalid transfer fee -1"}},
		{name: "fee too high", modify: func(c *Config) { c.TransferFee = 100 }, want: []string{"invalid transfer fee 100"}},
		{name: "log level", modify: func(c *Config) { c.LogLevel = "loud" }, want: []string{"invalid log level 'loud'"}},
		{
			name: "all reported",
			modify: func(c *Config) {
				c.Currency = "XYZ"
				c.LogFormat = "xml"
			},
			want: []string{"unknown currency 'XYZ'", "invalid log format 'xml'"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want an error")
			}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	c := &Config{LogLevel: "info", LogFormat: "json"}
	var buf bytes.Buffer
	log := c.NewLogger(&buf)
	log.Debug("hidden")
	log.Info("shown", "account", "Cash")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug message logged at info level: %s", got)
	}
	if !strings.Contains(got, `"msg":"shown"`) || !strings.Contains(got, `"account":"Cash"`) {
		t.Errorf("NewLogger() output = %s, want a json record", got)
	}
}
