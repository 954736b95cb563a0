package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (".env" when none
// are named) into the process environment. Missing files are skipped and
// variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides file values with TJ_* environment variables.
func (c *Config) ApplyEnv() error {
	var err error
	c.Account.Balance, err = envFloat("TJ_ACCOUNT_BALANCE", c.Account.Balance)
	if err != nil {
		return err
	}
	c.Account.Denomination = envString("TJ_ACCOUNT_DENOMINATION", c.Account.Denomination)
	c.Instrument.Symbol = envString("TJ_INSTRUMENT", c.Instrument.Symbol)
	c.Conversion.IDRPerUSD, err = envFloat("TJ_IDR_PER_USD", c.Conversion.IDRPerUSD)
	if err != nil {
		return err
	}
	c.Risk.DefaultRiskPercent, err = envFloat("TJ_RISK_PERCENT", c.Risk.DefaultRiskPercent)
	if err != nil {
		return err
	}
	c.Risk.MaxRiskPercent, err = envFloat("TJ_MAX_RISK_PERCENT", c.Risk.MaxRiskPercent)
	if err != nil {
		return err
	}
	c.Journal.Type = envString("TJ_JOURNAL_TYPE", c.Journal.Type)
	c.Journal.DBPath = envString("TJ_DB_PATH", c.Journal.DBPath)
	c.Journal.DSN = envString("TJ_DATABASE_URL", c.Journal.DSN)
	c.Server.Addr = envString("TJ_ADDR", c.Server.Addr)
	if v := os.Getenv("TJ_ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = strings.Split(v, ",")
	}
	c.Log.Level = envString("TJ_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("TJ_LOG_FORMAT", c.Log.Format)
	return nil
}

func envString(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func envFloat(key string, def float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
