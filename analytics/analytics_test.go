package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 30, 9, 0, 0, 0, time.UTC)

// results builds oldest-first trades one day apart.
func results(rs ...float64) []journal.Trade {
	trades := make([]journal.Trade, len(rs))
	for i, r := range rs {
		dir := market.Buy
		if i%2 == 1 {
			dir = market.Sell
		}
		trades[i] = journal.Trade{
			ID:        string(rune('A' + i)),
			Pair:      "XAUUSD",
			Direction: dir,
			ResultUSD: r,
			CreatedAt: day0.AddDate(0, 0, i),
		}
	}
	return trades
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	s := Compute(nil)
	assert.True(t, s.Empty())
	assert.Equal(t, Snapshot{}, s)
	assert.False(t, math.IsNaN(s.WinRate))
	assert.False(t, math.IsInf(s.BestTrade, 0))

	assert.True(t, Compute([]journal.Trade{}).Empty())
}

func TestComputeStreaks(t *testing.T) {
	t.Parallel()

	s := Compute(results(10, 5, -3, -2, -1, 7))
	assert.False(t, s.Empty())
	assert.Equal(t, 2, s.MaxWinStreak)
	assert.Equal(t, 3, s.MaxLossStreak)
	assert.Equal(t, 6, s.TotalTrades)
	assert.Equal(t, 3, s.WinningTrades)
	assert.Equal(t, 3, s.LosingTrades)
	assert.InDelta(t, 16.0, s.TotalPnL, 1e-12)
	assert.InDelta(t, 50.0, s.WinRate, 1e-12)
	assert.InDelta(t, 22.0/3, s.AverageWin, 1e-12)
	assert.InDelta(t, 2.0, s.AverageLoss, 1e-12)
	assert.InDelta(t, 22.0/6, s.ProfitFactor, 1e-12)
	assert.Equal(t, 10.0, s.BestTrade)
	assert.Equal(t, -3.0, s.WorstTrade)
	assert.Equal(t, day0.AddDate(0, 0, 5), s.LastTradeAt)
}

func TestComputeZeroResults(t *testing.T) {
	t.Parallel()

	s := Compute(results(10, 0, 0, 5))
	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 0, s.LosingTrades)
	assert.InDelta(t, 50.0, s.WinRate, 1e-12)
	assert.Equal(t, 1, s.MaxWinStreak)
	assert.Equal(t, 2, s.MaxLossStreak)
	assert.InDelta(t, 7.5, s.AverageWin, 1e-12)
	assert.Zero(t, s.AverageLoss)
	assert.Zero(t, s.ProfitFactor)
	assert.Equal(t, 0.0, s.WorstTrade)
}

func TestComputeAllLosses(t *testing.T) {
	t.Parallel()

	s := Compute(results(-4, -6))
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.AverageWin)
	assert.InDelta(t, 5.0, s.AverageLoss, 1e-12)
	assert.Zero(t, s.ProfitFactor)
	assert.Equal(t, -4.0, s.BestTrade)
	assert.Equal(t, 2, s.MaxLossStreak)
	assert.Equal(t, 0, s.MaxWinStreak)
}

func TestMonthly(t *testing.T) {
	t.Parallel()

	// day0 is Jan 30: two January trades, then February, skip March, April.
	trades := results(10, -4, 3)
	trades = append(trades, journal.Trade{ResultUSD: 8, CreatedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)})

	// 23:30 in UTC-5 is already the next month in UTC.
	ny := time.FixedZone("EST", -5*3600)
	trades = append(trades, journal.Trade{ResultUSD: 1, CreatedAt: time.Date(2024, 4, 30, 23, 30, 0, 0, ny)})

	months := Monthly(trades)
	require.Len(t, months, 4)

	assert.Equal(t, "2024-01", months[0].Label())
	assert.Equal(t, 2, months[0].Trades)
	assert.InDelta(t, 6.0, months[0].PnL, 1e-12)

	assert.Equal(t, "2024-02", months[1].Label())
	assert.Equal(t, 1, months[1].Trades)

	assert.Equal(t, "2024-04", months[2].Label())
	assert.Equal(t, "2024-05", months[3].Label())
	assert.InDelta(t, 1.0, months[3].PnL, 1e-12)

	assert.Empty(t, Monthly(nil))
}

func TestBreakdown(t *testing.T) {
	t.Parallel()

	b := BreakdownOf(results(10, 0, -3, 5, 2))
	assert.Equal(t, Breakdown{Buys: 3, Sells: 2, Wins: 3, NonWins: 2}, b)
	assert.Equal(t, Breakdown{}, BreakdownOf(nil))
}

func TestEquity(t *testing.T) {
	t.Parallel()

	c := Equity(results(1000, -500, -1100, 2000), 10000)
	require.Len(t, c.Points, 4)

	assert.Equal(t, 11000.0, c.Points[0].Balance)
	assert.Equal(t, 9400.0, c.Points[2].Balance)
	assert.InDelta(t, 1600.0/11000, c.Points[2].Drawdown, 1e-12)
	assert.Zero(t, c.Points[3].Drawdown)
	assert.Equal(t, "D", c.Points[3].TradeID)

	assert.Equal(t, 11400.0, c.EndBalance)
	assert.InDelta(t, 1400.0, c.NetPnL, 1e-9)
	assert.InDelta(t, 14.0, c.ReturnPct, 1e-9)
	assert.InDelta(t, 1600.0/11000*100, c.MaxDDPct, 1e-9)
}

func TestEquityEmpty(t *testing.T) {
	t.Parallel()

	c := Equity(nil, 10000)
	assert.Empty(t, c.Points)
	assert.Equal(t, 10000.0, c.EndBalance)
	assert.Zero(t, c.MaxDDPct)
	assert.Zero(t, c.ReturnPct)
}
