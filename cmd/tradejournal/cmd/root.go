package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/logging"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "tradejournal.yaml"

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A personal trading journal with P&L, sizing and performance stats",
	Long: `Tradejournal records discretionary trades and reports on them.

It provides tools for:
  - Journaling closed trades with psychology and strategy notes
  - Risk-based position sizing and risk/reward checks
  - P&L in USD, IDR and US cents
  - Win rate, profit factor, streaks and monthly performance
  - Serving the journal over an HTTP API

Settings come from tradejournal.yaml (or --config), a .env file and TJ_*
environment variables, in increasing order of precedence.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger zerolog.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+defaultConfigFile+" when present)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
	}

	if dbPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return err
}

// openJournal opens the store named by the config.
func openJournal(ctx context.Context) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "postgres":
		return journal.NewPostgres(ctx, cfg.Journal.DSN)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
}

func openBook(ctx context.Context) (*journal.Book, error) {
	j, err := openJournal(ctx)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	b := journal.NewBuilder(cfg.Account.Balance, cfg.Conversion.IDRPerUSD)
	return journal.NewBook(j, b, logger), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
