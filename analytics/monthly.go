package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// MonthBucket sums the trades closed in one UTC calendar month.
type MonthBucket struct {
	Month  time.Time `json:"month"` // first instant of the month, UTC
	PnL    float64   `json:"pnl"`
	Trades int       `json:"trades"`
}

// Label is the month as YYYY-MM.
func (b MonthBucket) Label() string {
	return b.Month.Format("2006-01")
}

// Monthly groups trades by calendar month of CreatedAt, oldest month first.
// Months with no trades are not emitted.
func Monthly(trades []journal.Trade) []MonthBucket {
	byMonth := make(map[time.Time]*MonthBucket)
	for _, t := range trades {
		at := t.CreatedAt.UTC()
		key := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)

		b, ok := byMonth[key]
		if !ok {
			b = &MonthBucket{Month: key}
			byMonth[key] = b
		}
		b.PnL += t.ResultUSD
		b.Trades++
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}
