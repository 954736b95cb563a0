// Package analytics aggregates journal trades into performance figures.
// Every function is a pure pass over the slice it is given; callers
// recompute on each refresh instead of patching a cached result.
//
// Trades are expected oldest-first, which is the order journal stores
// list them in. Nothing here re-sorts.
package analytics

import (
	"math"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Snapshot is the headline performance summary. Amounts are in the primary
// currency (USD).
type Snapshot struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"` // percent
	TotalPnL      float64 `json:"total_pnl"`
	AverageWin    float64 `json:"average_win"`
	AverageLoss   float64 `json:"average_loss"` // magnitude
	ProfitFactor  float64 `json:"profit_factor"`
	BestTrade     float64 `json:"best_trade"`
	WorstTrade    float64 `json:"worst_trade"`
	MaxWinStreak  int     `json:"max_win_streak"`
	MaxLossStreak int     `json:"max_loss_streak"`

	LastTradeAt time.Time `json:"last_trade_at,omitzero"`
}

// Empty reports the no-data state. All numeric fields are zero then.
func (s Snapshot) Empty() bool {
	return s.TotalTrades == 0
}

// Compute builds a Snapshot from trades in oldest-first order.
//
// A trade with a zero result is neither a winner nor a loser, so it is
// left out of both averages, but it still breaks a win streak and extends
// the loss streak. It stays in the win-rate denominator.
func Compute(trades []journal.Trade) Snapshot {
	var s Snapshot
	if len(trades) == 0 {
		return s
	}

	var (
		grossWin, grossLoss float64
		winRun, lossRun     int
	)

	s.BestTrade = math.Inf(-1)
	s.WorstTrade = math.Inf(1)

	for _, t := range trades {
		r := t.ResultUSD
		s.TotalTrades++
		s.TotalPnL += r

		switch {
		case r > 0:
			s.WinningTrades++
			grossWin += r
		case r < 0:
			s.LosingTrades++
			grossLoss += -r
		}

		if r > 0 {
			winRun++
			lossRun = 0
			s.MaxWinStreak = max(s.MaxWinStreak, winRun)
		} else {
			lossRun++
			winRun = 0
			s.MaxLossStreak = max(s.MaxLossStreak, lossRun)
		}

		s.BestTrade = math.Max(s.BestTrade, r)
		s.WorstTrade = math.Min(s.WorstTrade, r)

		if t.CreatedAt.After(s.LastTradeAt) {
			s.LastTradeAt = t.CreatedAt
		}
	}

	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	if s.WinningTrades > 0 {
		s.AverageWin = grossWin / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = grossLoss / float64(s.LosingTrades)
	}
	if s.AverageLoss > 0 {
		s.ProfitFactor = s.AverageWin / s.AverageLoss
	}
	return s
}
