package journal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set TJ_TEST_DATABASE_URL to a disposable database to run these.
func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TJ_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TJ_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	p, err := NewPostgres(ctx, dsn)
	require.NoError(t, err)

	_, err = p.pool.Exec(ctx, `TRUNCATE trades, balances, balance_changes`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPostgresRoundTrip(t *testing.T) {
	p := newTestPostgres(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	a := goldTrade("PA", market.Buy, 2050, 2060, 0.04, base)
	a.Meta = Meta{Session: "asia", Confidence: 3}
	b := goldTrade("PB", market.Sell, 2050, 2055, 0.10, base.Add(time.Hour))

	require.NoError(t, p.RecordTrade(ctx, b))
	require.NoError(t, p.RecordTrade(ctx, a))

	got, err := p.GetTrade(ctx, "PA")
	require.NoError(t, err)
	assert.Equal(t, a.Meta, got.Meta)
	assert.InDelta(t, a.ResultUSD, got.ResultUSD, 1e-9)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))

	all, err := p.ListTrades(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "PA", all[0].ID)
	assert.Equal(t, "PB", all[1].ID)

	last, err := p.ListTrades(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "PB", last[0].ID)

	require.NoError(t, p.DeleteTrade(ctx, "PA"))
	_, err = p.GetTrade(ctx, "PA")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, p.DeleteTrade(ctx, "PA"), ErrNotFound)
}

func TestPostgresApplyBalance(t *testing.T) {
	p := newTestPostgres(t)
	ctx := context.Background()

	_, err := p.ApplyBalance(ctx, BalanceChange{TradeID: "X", Denomination: market.USD, Amount: 40})
	require.NoError(t, err)
	bal, err := p.ApplyBalance(ctx, BalanceChange{TradeID: "Y", Denomination: market.USD, Amount: -15})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bal.USD, 1e-9)

	bal, err = p.Balances(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bal.USD, 1e-9)
	assert.Zero(t, bal.IDR)
}
