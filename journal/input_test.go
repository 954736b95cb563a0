package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() TradeInput {
	return TradeInput{
		Pair:       "XAUUSD",
		Direction:  "buy",
		EntryPrice: 2050,
		ExitPrice:  2060,
		StopLoss:   2045,
		TakeProfit: 2060,
		LotSize:    0.04,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*TradeInput)
		fields []string
	}{
		{"valid", func(in *TradeInput) {}, nil},
		{"default_pair", func(in *TradeInput) { in.Pair = "" }, nil},
		{"unknown_pair", func(in *TradeInput) { in.Pair = "BTCUSD" }, []string{"pair"}},
		{"bad_direction", func(in *TradeInput) { in.Direction = "hold" }, []string{"direction"}},
		{"zero_entry", func(in *TradeInput) { in.EntryPrice = 0 }, []string{"entry_price"}},
		{"zero_exit", func(in *TradeInput) { in.ExitPrice = 0 }, []string{"exit_price"}},
		{"negative_lot", func(in *TradeInput) { in.LotSize = -1 }, []string{"lot_size"}},
		{"no_lot_no_risk", func(in *TradeInput) { in.LotSize = 0 }, []string{"lot_size"}},
		{"risk_without_stop", func(in *TradeInput) {
			in.LotSize = 0
			in.RiskPercent = 1
			in.StopLoss = 0
		}, []string{"stop_loss"}},
		{"risk_over_100", func(in *TradeInput) { in.RiskPercent = 150 }, []string{"risk_percent"}},
		{"buy_stop_above_entry", func(in *TradeInput) { in.StopLoss = 2055 }, []string{"stop_loss"}},
		{"buy_target_below_entry", func(in *TradeInput) { in.TakeProfit = 2040 }, []string{"take_profit"}},
		{"sell_with_buy_levels", func(in *TradeInput) { in.Direction = "sell" }, []string{"stop_loss"}},
		{"confidence_range", func(in *TradeInput) { in.Confidence = 9 }, []string{"confidence"}},
		{"bad_denomination", func(in *TradeInput) { in.Denomination = "EUR" }, []string{"denomination"}},
		{"several", func(in *TradeInput) {
			in.ExitPrice = -1
			in.Confidence = -1
		}, []string{"exit_price", "confidence"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want *ValidationError, got %v", err)
			for _, f := range tt.fields {
				assert.True(t, ve.Has(f), "missing field error for %s: %v", f, ve)
			}
			assert.Contains(t, ve.Error(), "invalid trade")
		})
	}
}

func TestValidateStopAtEntry(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{"buy", "sell"} {
		in := validInput()
		in.Direction = dir
		in.LotSize = 0
		in.RiskPercent = 1
		in.StopLoss = in.EntryPrice
		in.TakeProfit = 0

		var ve *ValidationError
		require.True(t, errors.As(in.Validate(), &ve), dir)
		require.Len(t, ve.Fields, 1, dir)
		assert.Equal(t, "stop_loss", ve.Fields[0].Field)
		assert.Equal(t, risk.ErrZeroRiskDistance.Error(), ve.Fields[0].Msg)
		assert.NotContains(t, ve.Error(), "wrong side")
	}

	// The target is still checked.
	in := validInput()
	in.StopLoss = in.EntryPrice
	in.TakeProfit = in.EntryPrice - 10

	var ve *ValidationError
	require.True(t, errors.As(in.Validate(), &ve))
	assert.True(t, ve.Has("stop_loss"))
	assert.True(t, ve.Has("take_profit"))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	b := testBuilder(at)

	in := validInput()
	in.Meta = Meta{Session: "london", Notes: "textbook"}

	tr, err := b.Build(in)
	require.NoError(t, err)

	assert.Equal(t, "T001", tr.ID)
	assert.Equal(t, "XAUUSD", tr.Pair)
	assert.Equal(t, market.Buy, tr.Direction)
	assert.Equal(t, 100, tr.ContractSize)
	assert.InDelta(t, 0.04, tr.LotSize, 1e-12)
	assert.InDelta(t, 2.0, tr.RiskReward, 1e-9)
	assert.InDelta(t, 40.0, tr.ResultUSD, 1e-9)
	assert.InDelta(t, 620000.0, tr.ResultIDR, 1e-6)
	assert.InDelta(t, 4000.0, tr.ResultCent, 1e-9)
	assert.InDelta(t, 10.0/2050*100, tr.PnLPercent, 1e-9)
	assert.Equal(t, market.USD, tr.Denomination)
	assert.True(t, tr.CreatedAt.Equal(at))
	assert.Equal(t, in.Meta, tr.Meta)
}

func TestBuildAutoLotSize(t *testing.T) {
	t.Parallel()

	b := testBuilder(time.Now())

	in := validInput()
	in.LotSize = 0
	in.RiskPercent = 2

	tr, err := b.Build(in)
	require.NoError(t, err)

	// 10000 * 2% = 200 over 500 pips * 0.01 * 100
	assert.InDelta(t, 0.4, tr.LotSize, 1e-9)
	assert.InDelta(t, 400.0, tr.ResultUSD, 1e-6)
	assert.InDelta(t, 2.0, tr.RiskPercent, 1e-12)
}

func TestBuildKeepsImportTime(t *testing.T) {
	t.Parallel()

	b := testBuilder(time.Now())

	in := validInput()
	in.CreatedAt = time.Date(2023, 12, 24, 1, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	in.Denomination = "usd_cent"

	tr, err := b.Build(in)
	require.NoError(t, err)
	assert.True(t, tr.CreatedAt.Equal(in.CreatedAt))
	assert.Equal(t, time.UTC, tr.CreatedAt.Location())
	assert.Equal(t, market.USDCent, tr.Denomination)
	assert.InDelta(t, 4000.0, tr.Result(tr.Denomination), 1e-9)
}

func TestBuildRejects(t *testing.T) {
	t.Parallel()

	b := testBuilder(time.Now())

	in := validInput()
	in.Direction = "sell"
	_, err := b.Build(in)

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), risk.ErrInvalidLevels.Error())
}

func TestTradeInputRoundTrip(t *testing.T) {
	t.Parallel()

	b := testBuilder(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	in := validInput()
	in.Denomination = "IDR"
	in.Meta = Meta{Strategy: "range"}

	tr, err := b.Build(in)
	require.NoError(t, err)

	again, err := b.Build(tr.Input())
	require.NoError(t, err)
	assert.InDelta(t, tr.ResultUSD, again.ResultUSD, 1e-9)
	assert.Equal(t, tr.CreatedAt, again.CreatedAt)
	assert.Equal(t, tr.Meta, again.Meta)
	assert.Equal(t, market.IDR, again.Denomination)
}
