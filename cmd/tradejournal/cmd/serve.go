package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rustyeddy/tradejournal/api"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over HTTP",
	Long: `Start the HTTP API. The listen address and allowed CORS origins come from
the server section of the config (TJ_ADDR, TJ_ALLOW_ORIGINS).

Example:
  tradejournal serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr       string
	serveProduction bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveProduction, "production", false, "run gin in release mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bk, err := openBook(ctx)
	if err != nil {
		return err
	}
	defer bk.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	denom, err := market.ParseDenomination(cfg.Account.Denomination)
	if err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Addr:           addr,
		AllowOrigins:   cfg.Server.AllowOrigins,
		ProductionMode: serveProduction,
		Instrument:     cfg.Instrument.Symbol,
		StartBalance:   cfg.Account.Balance,
		IDRPerUSD:      cfg.Conversion.IDRPerUSD,
		Policy:         cfg.Policy(),
		Denomination:   denom,
	}, bk, logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errc
}
