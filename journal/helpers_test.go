package journal

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

// testBuilder stamps trades one minute apart with predictable IDs.
func testBuilder(start time.Time) Builder {
	n := 0
	b := NewBuilder(10000, market.DefaultIDRPerUSD)
	b.Now = func() time.Time {
		return start.Add(time.Duration(n) * time.Minute)
	}
	b.NewID = func(time.Time) string {
		n++
		return fmt.Sprintf("T%03d", n)
	}
	return b
}

func goldTrade(id string, dir market.Direction, entry, exit, lot float64, at time.Time) Trade {
	move := exit - entry
	if dir == market.Sell {
		move = entry - exit
	}
	usd := move * lot * 100
	return Trade{
		ID:           id,
		Pair:         "XAUUSD",
		Direction:    dir,
		EntryPrice:   entry,
		ExitPrice:    exit,
		LotSize:      lot,
		ContractSize: 100,
		ResultUSD:    usd,
		ResultIDR:    usd * market.DefaultIDRPerUSD,
		ResultCent:   usd * 100,
		PnLPercent:   usd / (entry * lot * 100) * 100,
		Denomination: market.USD,
		CreatedAt:    at,
	}
}
