package cmd

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/pnl"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a planned trade from risk percent",
	Long: `Compute lot size, risk amount and risk/reward for a planned trade and
check it against the configured risk policy. The exit price plays no part.

Example:
  tradejournal size --dir buy --entry 2050 --sl 2045 --tp 2060 --risk 2`,
	Args: cobra.NoArgs,
	RunE: runSize,
}

var pnlCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Compute the P&L of a closed trade",
	Long: `Compute a trade's result in USD, IDR and US cents without journaling it.

Example:
  tradejournal pnl --dir buy --entry 2050 --exit 2060 --lot 0.04`,
	Args: cobra.NoArgs,
	RunE: runPnL,
}

var (
	calcPair    string
	calcDir     string
	calcEntry   float64
	calcStop    float64
	calcTarget  float64
	calcRisk    float64
	calcBalance float64

	calcExit float64
	calcLot  float64
)

func init() {
	rootCmd.AddCommand(sizeCmd)
	rootCmd.AddCommand(pnlCmd)

	for _, c := range []*cobra.Command{sizeCmd, pnlCmd} {
		c.Flags().StringVar(&calcPair, "pair", "", "instrument (default from config)")
		c.Flags().StringVar(&calcDir, "dir", "", "buy or sell (required)")
		c.Flags().Float64Var(&calcEntry, "entry", 0, "entry price (required)")
		c.MarkFlagRequired("dir")
		c.MarkFlagRequired("entry")
	}

	sizeCmd.Flags().Float64Var(&calcStop, "sl", 0, "stop loss price (required)")
	sizeCmd.Flags().Float64Var(&calcTarget, "tp", 0, "take profit price")
	sizeCmd.Flags().Float64Var(&calcRisk, "risk", 0, "risk percent (default from config)")
	sizeCmd.Flags().Float64Var(&calcBalance, "balance", 0, "account balance (default from config)")
	sizeCmd.MarkFlagRequired("sl")

	pnlCmd.Flags().Float64Var(&calcExit, "exit", 0, "exit price (required)")
	pnlCmd.Flags().Float64Var(&calcLot, "lot", 0, "lot size (required)")
	pnlCmd.MarkFlagRequired("exit")
	pnlCmd.MarkFlagRequired("lot")
}

func calcInstrument() (market.InstrumentMeta, market.Direction, error) {
	pair := calcPair
	if pair == "" {
		pair = cfg.Instrument.Symbol
	}
	meta, err := market.Instrument(pair)
	if err != nil {
		return meta, "", err
	}
	dir, err := market.ParseDirection(calcDir)
	return meta, dir, err
}

func runSize(cmd *cobra.Command, args []string) error {
	meta, dir, err := calcInstrument()
	if err != nil {
		return err
	}

	riskPct := calcRisk
	if riskPct == 0 {
		riskPct = cfg.Risk.DefaultRiskPercent
	}
	balance := calcBalance
	if balance == 0 {
		balance = cfg.Account.Balance
	}

	plan, err := risk.PlanTrade(risk.PlanInput{
		Direction:    dir,
		Entry:        calcEntry,
		Stop:         calcStop,
		TakeProfit:   calcTarget,
		Balance:      balance,
		RiskPct:      riskPct,
		PipSize:      meta.PipSize,
		ContractSize: float64(meta.ContractSize),
	})
	if err != nil {
		return fmt.Errorf("cannot size position: %w", err)
	}
	decision := risk.Evaluate(cfg.Policy(), riskPct, plan)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s  entry %.2f  stop %.2f", meta.Name, dir, calcEntry, calcStop)
	if calcTarget != 0 {
		fmt.Fprintf(out, "  target %.2f", calcTarget)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Balance:     %.2f %s\n", balance, cfg.Account.Currency)
	fmt.Fprintf(out, "  Risk:        %.2f%% = %.2f\n", riskPct, plan.RiskAmount)
	fmt.Fprintf(out, "  Risk pips:   %.1f\n", plan.RiskPips)
	fmt.Fprintf(out, "  Lot size:    %.4f\n", plan.LotSize)
	if plan.RewardPips > 0 {
		fmt.Fprintf(out, "  Reward pips: %.1f\n", plan.RewardPips)
		fmt.Fprintf(out, "  R:R:         %.2f\n", plan.RR)
	}
	if decision.Allowed {
		fmt.Fprintln(out, "✓ Within risk policy")
	}
	for _, v := range decision.Violations {
		fmt.Fprintf(out, "! %s: %s\n", v.Code, v.Msg)
	}
	return nil
}

func runPnL(cmd *cobra.Command, args []string) error {
	meta, dir, err := calcInstrument()
	if err != nil {
		return err
	}

	res := pnl.Compute(pnl.Input{
		Direction:      dir,
		EntryPrice:     calcEntry,
		ExitPrice:      calcExit,
		LotSize:        calcLot,
		ContractSize:   float64(meta.ContractSize),
		ConversionRate: cfg.Conversion.IDRPerUSD,
	})
	if !res.Complete {
		return fmt.Errorf("incomplete trade: entry price must be positive")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s  %.2f -> %.2f  x %.2f lots\n", meta.Name, dir, calcEntry, calcExit, calcLot)
	fmt.Fprintf(out, "  USD:   %.2f\n", res.Primary)
	fmt.Fprintf(out, "  IDR:   %.0f\n", res.Secondary)
	fmt.Fprintf(out, "  Cents: %.0f\n", res.Subunit)
	fmt.Fprintf(out, "  P&L:   %.3f%%\n", res.Percent)
	return nil
}
