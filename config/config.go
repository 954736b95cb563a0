package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/risk"
	"gopkg.in/yaml.v3"
)

// Config is the complete journal configuration.
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Instrument InstrumentConfig `json:"instrument" yaml:"instrument"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Risk       RiskConfig       `json:"risk" yaml:"risk"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// AccountConfig holds the reference balance used for risk-percent sizing.
// There is no live balance feed.
type AccountConfig struct {
	Currency     string  `json:"currency" yaml:"currency"`
	Balance      float64 `json:"balance" yaml:"balance"`
	Denomination string  `json:"denomination" yaml:"denomination"` // default balance credited by new trades
}

type InstrumentConfig struct {
	Symbol string `json:"symbol" yaml:"symbol"`
}

// ConversionConfig is the static USD to IDR rate.
type ConversionConfig struct {
	IDRPerUSD float64 `json:"idr_per_usd" yaml:"idr_per_usd"`
}

// RiskConfig feeds the planned-trade policy checks. Percentages are whole
// percent (1 = 1%).
type RiskConfig struct {
	DefaultRiskPercent float64 `json:"default_risk_percent" yaml:"default_risk_percent"`
	MaxRiskPercent     float64 `json:"max_risk_percent" yaml:"max_risk_percent"`
	MinRR              float64 `json:"min_rr" yaml:"min_rr"`
}

// JournalConfig selects the trade store.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "postgres"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	DSN    string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

type ServerConfig struct {
	Addr         string   `json:"addr" yaml:"addr"`
	AllowOrigins []string `json:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// and applies environment overrides before validating.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, else JSON).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if _, err := market.ParseDenomination(c.Account.Denomination); err != nil {
		return fmt.Errorf("account.denomination: %w", err)
	}
	if c.Instrument.Symbol == "" {
		return fmt.Errorf("instrument.symbol is required")
	}
	if _, ok := market.Instruments[c.Instrument.Symbol]; !ok {
		return fmt.Errorf("unknown instrument: %s", c.Instrument.Symbol)
	}
	if c.Conversion.IDRPerUSD <= 0 {
		return fmt.Errorf("conversion.idr_per_usd must be positive")
	}
	if c.Risk.DefaultRiskPercent <= 0 || c.Risk.DefaultRiskPercent > 100 {
		return fmt.Errorf("risk.default_risk_percent must be between 0 and 100")
	}
	if c.Risk.MaxRiskPercent < c.Risk.DefaultRiskPercent || c.Risk.MaxRiskPercent > 100 {
		return fmt.Errorf("risk.max_risk_percent must be between default_risk_percent and 100")
	}
	if c.Risk.MinRR < 0 {
		return fmt.Errorf("risk.min_rr must not be negative")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "postgres":
		if c.Journal.DSN == "" {
			return fmt.Errorf("journal dsn required for postgres type")
		}
	default:
		return fmt.Errorf("journal.type must be 'sqlite' or 'postgres'")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}

// Policy is the risk policy described by the config.
func (c *Config) Policy() risk.Policy {
	return risk.Policy{
		DefaultRiskPct: c.Risk.DefaultRiskPercent,
		MaxRiskPct:     c.Risk.MaxRiskPercent,
		MinRR:          c.Risk.MinRR,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	p := risk.DefaultPolicy()
	return &Config{
		Account: AccountConfig{
			Currency:     "USD",
			Balance:      10000,
			Denomination: string(market.USD),
		},
		Instrument: InstrumentConfig{
			Symbol: market.DefaultInstrument,
		},
		Conversion: ConversionConfig{
			IDRPerUSD: market.DefaultIDRPerUSD,
		},
		Risk: RiskConfig{
			DefaultRiskPercent: p.DefaultRiskPct,
			MaxRiskPercent:     p.MaxRiskPct,
			MinRR:              p.MinRR,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./journal.sqlite",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"http://localhost:5173"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
