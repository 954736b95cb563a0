package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	Long: `Show win rate, profit factor, streaks, balances and monthly P&L.

With --org, write an Org-mode performance report instead.

Examples:
  tradejournal stats
  tradejournal stats --from 2024-01-01 --org -o report.org`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsRange  rangeFlags
	statsOrg    bool
	statsOutput string
	statsNotes  []string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsRange.register(statsCmd)
	statsCmd.Flags().BoolVar(&statsOrg, "org", false, "write an Org-mode report")
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "report file (default stdout)")
	statsCmd.Flags().StringArrayVar(&statsNotes, "note", nil, "observation to include in the report (repeatable)")
}

func runStats(cmd *cobra.Command, args []string) error {
	f, err := statsRange.filter()
	if err != nil {
		return err
	}

	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	trades, err := bk.List(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	w := cmd.OutOrStdout()
	if statsOutput != "" {
		file, err := os.Create(statsOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", statsOutput, err)
		}
		defer file.Close()
		w = file
	}

	if statsOrg {
		r := analytics.NewReport(cfg.Instrument.Symbol, trades, cfg.Account.Balance)
		r.Created = time.Now()
		r.Notes = statsNotes
		return analytics.WriteOrg(w, r)
	}

	snap := analytics.Compute(trades)
	if snap.Empty() {
		fmt.Fprintln(w, "No trades recorded yet.")
		return nil
	}
	curve := analytics.Equity(trades, cfg.Account.Balance)

	bal, err := bk.Balances(cmd.Context())
	if err != nil {
		return fmt.Errorf("balances: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Trades\t%d\t(%d won, %d lost)\n", snap.TotalTrades, snap.WinningTrades, snap.LosingTrades)
	fmt.Fprintf(tw, "Win rate\t%.2f%%\t\n", snap.WinRate)
	fmt.Fprintf(tw, "Total P&L\t%.2f\tUSD\n", snap.TotalPnL)
	fmt.Fprintf(tw, "Average win\t%.2f\t\n", snap.AverageWin)
	fmt.Fprintf(tw, "Average loss\t%.2f\t\n", snap.AverageLoss)
	fmt.Fprintf(tw, "Profit factor\t%.2f\t\n", snap.ProfitFactor)
	fmt.Fprintf(tw, "Best / worst\t%.2f / %.2f\t\n", snap.BestTrade, snap.WorstTrade)
	fmt.Fprintf(tw, "Streaks\t%dW / %dL\t\n", snap.MaxWinStreak, snap.MaxLossStreak)
	fmt.Fprintf(tw, "Max drawdown\t%.2f%%\t\n", curve.MaxDDPct)
	fmt.Fprintf(tw, "Last trade\t%s\t\n", snap.LastTradeAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(tw, "Balances\t%.2f USD\t%.0f IDR, %.0f cents\n", bal.USD, bal.IDR, bal.USDCent)
	fmt.Fprintln(tw)
	for _, m := range analytics.Monthly(trades) {
		fmt.Fprintf(tw, "%s\t%.2f\t%d trades\n", m.Label(), m.PnL, m.Trades)
	}
	return tw.Flush()
}
