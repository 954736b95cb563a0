package analytics

import (
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/market"
)

// Breakdown feeds the direction and outcome pie charts. Unlike Snapshot,
// the outcome split is binary: anything not above zero is a non-win.
type Breakdown struct {
	Buys    int `json:"buys"`
	Sells   int `json:"sells"`
	Wins    int `json:"wins"`
	NonWins int `json:"non_wins"`
}

func BreakdownOf(trades []journal.Trade) Breakdown {
	var b Breakdown
	for _, t := range trades {
		switch t.Direction {
		case market.Buy:
			b.Buys++
		case market.Sell:
			b.Sells++
		}
		if t.ResultUSD > 0 {
			b.Wins++
		} else {
			b.NonWins++
		}
	}
	return b
}
