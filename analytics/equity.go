package analytics

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

type EquityPoint struct {
	Time     time.Time `json:"time"`
	TradeID  string    `json:"trade_id"`
	Balance  float64   `json:"balance"`
	Drawdown float64   `json:"drawdown"` // fraction below the running peak
}

// Curve is the running account balance after each trade.
type Curve struct {
	StartBalance float64       `json:"start_balance"`
	EndBalance   float64       `json:"end_balance"`
	NetPnL       float64       `json:"net_pnl"`
	ReturnPct    float64       `json:"return_pct"`
	MaxDDPct     float64       `json:"max_drawdown_pct"`
	Points       []EquityPoint `json:"points"`
}

// Equity replays trades oldest-first from startBalance.
func Equity(trades []journal.Trade, startBalance float64) Curve {
	c := Curve{
		StartBalance: startBalance,
		EndBalance:   startBalance,
		Points:       make([]EquityPoint, 0, len(trades)),
	}

	balance := startBalance
	peak := startBalance
	var maxDD float64

	for _, t := range trades {
		balance += t.ResultUSD
		if balance > peak {
			peak = balance
		}

		var dd float64
		if peak > 0 {
			dd = (peak - balance) / peak
		}
		maxDD = max(maxDD, dd)

		c.Points = append(c.Points, EquityPoint{
			Time:     t.CreatedAt,
			TradeID:  t.ID,
			Balance:  balance,
			Drawdown: dd,
		})
	}

	c.EndBalance = balance
	c.NetPnL = balance - startBalance
	if startBalance > 0 {
		c.ReturnPct = c.NetPnL / startBalance * 100
	}
	c.MaxDDPct = maxDD * 100
	return c
}
