package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.Balance)
	assert.Equal(t, "XAUUSD", cfg.Instrument.Symbol)
	assert.Equal(t, 15500.0, cfg.Conversion.IDRPerUSD)
	assert.Equal(t, 1.0, cfg.Risk.DefaultRiskPercent)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())

	p := cfg.Policy()
	assert.Equal(t, 2.0, p.MaxRiskPct)
	assert.Equal(t, 1.5, p.MinRR)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "account.currency is required"},
		{"negative balance", func(c *Config) { c.Account.Balance = -1000 }, "account.balance must be positive"},
		{"bad denomination", func(c *Config) { c.Account.Denomination = "EUR" }, "account.denomination"},
		{"unknown instrument", func(c *Config) { c.Instrument.Symbol = "INVALID" }, "unknown instrument"},
		{"zero rate", func(c *Config) { c.Conversion.IDRPerUSD = 0 }, "conversion.idr_per_usd must be positive"},
		{"risk too high", func(c *Config) { c.Risk.DefaultRiskPercent = 150 }, "risk.default_risk_percent"},
		{"max below default", func(c *Config) { c.Risk.MaxRiskPercent = 0.5 }, "risk.max_risk_percent"},
		{"negative rr", func(c *Config) { c.Risk.MinRR = -1 }, "risk.min_rr"},
		{"csv journal", func(c *Config) { c.Journal.Type = "csv" }, "journal.type must be 'sqlite' or 'postgres'"},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }, "db_path required"},
		{"postgres without dsn", func(c *Config) { c.Journal.Type = "postgres" }, "dsn required"},
		{"postgres", func(c *Config) {
			c.Journal.Type = "postgres"
			c.Journal.DSN = "postgres://localhost/journal"
		}, ""},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Account.Balance = 2500
			cfg.Risk.MinRR = 2
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account, loaded.Account)
			assert.Equal(t, cfg.Risk, loaded.Risk)
			assert.Equal(t, cfg.Instrument.Symbol, loaded.Instrument.Symbol)
			assert.Equal(t, cfg.Server.AllowOrigins, loaded.Server.AllowOrigins)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  balance: 500\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Account.Balance)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 15500.0, cfg.Conversion.IDRPerUSD)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account: [1, 2"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TJ_ACCOUNT_BALANCE", "25000")
	t.Setenv("TJ_IDR_PER_USD", "16000")
	t.Setenv("TJ_JOURNAL_TYPE", "postgres")
	t.Setenv("TJ_DATABASE_URL", "postgres://db/journal")
	t.Setenv("TJ_ALLOW_ORIGINS", "http://a,http://b")
	t.Setenv("TJ_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 25000.0, cfg.Account.Balance)
	assert.Equal(t, 16000.0, cfg.Conversion.IDRPerUSD)
	assert.Equal(t, "postgres", cfg.Journal.Type)
	assert.Equal(t, "postgres://db/journal", cfg.Journal.DSN)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.AllowOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnvBadNumber(t *testing.T) {
	t.Setenv("TJ_ACCOUNT_BALANCE", "lots")

	err := Default().ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TJ_ACCOUNT_BALANCE")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TJ_INSTRUMENT=XAUUSD\nTJ_ADDR=:9090\n"), 0644))

	t.Setenv("TJ_ADDR", "")
	os.Unsetenv("TJ_ADDR")
	t.Setenv("TJ_INSTRUMENT", "preset")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, ":9090", os.Getenv("TJ_ADDR"))
	assert.Equal(t, "preset", os.Getenv("TJ_INSTRUMENT"))
}
