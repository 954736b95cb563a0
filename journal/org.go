package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in the PROPERTIES drawer; notes and psychology become
// the narrative sections.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Pair, strings.ToUpper(string(t.Direction)), shortID(t.ID))
	created := t.CreatedAt.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":LOT_SIZE: %.2f\n", t.LotSize))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.2f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.2f\n", t.ExitPrice))
	if t.StopLoss > 0 {
		b.WriteString(fmt.Sprintf(":STOP_LOSS: %.2f\n", t.StopLoss))
	}
	if t.TakeProfit > 0 {
		b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.2f\n", t.TakeProfit))
	}
	if t.RiskReward > 0 {
		b.WriteString(fmt.Sprintf(":RISK_REWARD: %.2f\n", t.RiskReward))
	}
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", created))
	b.WriteString(fmt.Sprintf(":RESULT_USD: %.2f\n", t.ResultUSD))
	b.WriteString(fmt.Sprintf(":RESULT_IDR: %.0f\n", t.ResultIDR))
	b.WriteString(fmt.Sprintf(":PNL_PCT: %.2f\n", t.PnLPercent))
	if t.Session != "" {
		b.WriteString(fmt.Sprintf(":SESSION: %s\n", t.Session))
	}
	if t.Strategy != "" {
		b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", t.Strategy))
	}
	if t.Confidence > 0 {
		b.WriteString(fmt.Sprintf(":CONFIDENCE: %d\n", t.Confidence))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Psychology\n- " + t.Emotion + "\n\n")
	b.WriteString("*** Notes\n- " + t.Notes + "\n")
	if t.Screenshot != "" {
		b.WriteString("\n[[" + t.Screenshot + "]]\n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// shortID keeps the random tail; ULIDs made the same day share a prefix.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
