package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query journaled trades",
	Long: `Record, query and move trade journal records.

Subcommands:
  add     - Journal a closed trade
  list    - List trades, optionally filtered
  trade   - Get details of a specific trade by ID
  delete  - Delete a trade and reverse its balance credit
  today   - List trades taken today
  day     - List trades taken on a specific day
  export  - Write trades as CSV
  import  - Read trades from CSV

Examples:
  tradejournal journal add --dir buy --entry 2050 --exit 2060 --sl 2045 --tp 2060 --risk 2
  tradejournal journal trade <trade-id>
  tradejournal journal today
  tradejournal journal day 2024-01-15`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Journal a closed trade",
	Long: `Journal a closed trade. Results are computed, never entered.

Leave --lot unset and pass --risk to size the position from the account
balance and the stop distance.`,
	Args: cobra.NoArgs,
	RunE: runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades oldest-first",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades taken today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades taken on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write trades as CSV",
	Args:  cobra.NoArgs,
	RunE:  runJournalExport,
}

var journalImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Read trades from CSV",
	Long: `Read trades from a CSV file with a header row. Results are recomputed
from prices and lot size and result columns in the file are ignored. Each
trade gets a new ID stamped with its created_at time.`,
	Args: cobra.ExactArgs(1),
	RunE: runJournalImport,
}

var (
	addInput  journal.TradeInput
	listRange rangeFlags
	listLimit int
	listPair  string

	exportOutput string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalExportCmd)
	journalCmd.AddCommand(journalImportCmd)

	f := journalAddCmd.Flags()
	f.StringVar(&addInput.Pair, "pair", "", "instrument (default from config)")
	f.StringVar(&addInput.Direction, "dir", "", "buy or sell (required)")
	f.Float64Var(&addInput.EntryPrice, "entry", 0, "entry price (required)")
	f.Float64Var(&addInput.ExitPrice, "exit", 0, "exit price (required)")
	f.Float64Var(&addInput.StopLoss, "sl", 0, "stop loss price")
	f.Float64Var(&addInput.TakeProfit, "tp", 0, "take profit price")
	f.Float64Var(&addInput.LotSize, "lot", 0, "lot size (0 sizes from --risk)")
	f.Float64Var(&addInput.RiskPercent, "risk", 0, "risk percent of account balance")
	f.StringVar(&addInput.Denomination, "denom", "", "balance to credit: USD, IDR or USD_CENT (default from config)")
	f.StringVar(&addInput.Session, "session", "", "trading session")
	f.StringVar(&addInput.Strategy, "strategy", "", "strategy tag")
	f.IntVar(&addInput.Confidence, "confidence", 0, "confidence 1-5")
	f.StringVar(&addInput.Emotion, "emotion", "", "emotional state")
	f.StringVar(&addInput.Notes, "notes", "", "free-form notes")
	f.StringVar(&addInput.Screenshot, "screenshot", "", "chart screenshot path or URL")
	journalAddCmd.MarkFlagRequired("dir")
	journalAddCmd.MarkFlagRequired("entry")
	journalAddCmd.MarkFlagRequired("exit")

	listRange.register(journalListCmd)
	journalListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "only the most recent n trades")
	journalListCmd.Flags().StringVar(&listPair, "pair", "", "only this instrument")

	journalExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	in := addInput
	if in.Pair == "" {
		in.Pair = cfg.Instrument.Symbol
	}
	if in.Denomination == "" {
		in.Denomination = cfg.Account.Denomination
	}

	t, err := bk.Add(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	f, err := listRange.filter()
	if err != nil {
		return err
	}
	f.Limit = listLimit
	f.Pair = listPair
	return printTrades(cmd, f)
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	tradeID := args[0]
	rec, err := bk.Get(cmd.Context(), tradeID)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	if err := bk.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	loc := time.Local
	start, end, err := dayBounds(loc, time.Now().In(loc).Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return printTrades(cmd, journal.Filter{From: start, To: end})
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	start, end, err := dayBounds(time.Local, args[0])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return printTrades(cmd, journal.Filter{From: start, To: end})
}

func printTrades(cmd *cobra.Command, f journal.Filter) error {
	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	recs, err := bk.List(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	recs, err := bk.List(cmd.Context(), journal.Filter{})
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	w := cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := journal.WriteCSV(w, recs); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(recs), exportOutput)
	}
	return nil
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	recs, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	bk, err := openBook(cmd.Context())
	if err != nil {
		return err
	}
	defer bk.Close()

	for i, rec := range recs {
		if _, err := bk.Add(cmd.Context(), rec.Input()); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(recs), args[0])
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}

// rangeFlags adds --from and --to (YYYY-MM-DD, local time, to inclusive).
type rangeFlags struct {
	from string
	to   string
}

func (r *rangeFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&r.from, "from", "", "first day (YYYY-MM-DD)")
	c.Flags().StringVar(&r.to, "to", "", "last day (YYYY-MM-DD)")
}

func (r *rangeFlags) filter() (journal.Filter, error) {
	var f journal.Filter
	if r.from != "" {
		start, _, err := dayBounds(time.Local, r.from)
		if err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
		f.From = start
	}
	if r.to != "" {
		_, end, err := dayBounds(time.Local, r.to)
		if err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
		f.To = end
	}
	return f, nil
}
