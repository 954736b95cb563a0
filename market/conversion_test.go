package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		usd  float64
		to   Denomination
		want float64
	}{
		{"usd", 40, USD, 40},
		{"idr", 40, IDR, 620000},
		{"cent", 40, USDCent, 4000},
		{"negative_idr", -2.5, IDR, -38750},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Convert(tt.usd, tt.to, DefaultIDRPerUSD)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestConvertUnknown(t *testing.T) {
	t.Parallel()

	_, err := Convert(1, Denomination("EUR"), DefaultIDRPerUSD)
	assert.Error(t, err)
}

func TestParseDenomination(t *testing.T) {
	t.Parallel()

	d, err := ParseDenomination("usd_cent")
	require.NoError(t, err)
	assert.Equal(t, USDCent, d)

	d, err = ParseDenomination(" idr ")
	require.NoError(t, err)
	assert.Equal(t, IDR, d)

	_, err = ParseDenomination("btc")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection("BUY")
	require.NoError(t, err)
	assert.Equal(t, Buy, d)
	assert.Equal(t, 1.0, d.Sign())

	d, err = ParseDirection("short")
	require.NoError(t, err)
	assert.Equal(t, Sell, d)
	assert.Equal(t, -1.0, d.Sign())

	_, err = ParseDirection("flat")
	assert.Error(t, err)
	assert.False(t, Direction("flat").Valid())
}

func TestInstrument(t *testing.T) {
	t.Parallel()

	meta, err := Instrument(DefaultInstrument)
	require.NoError(t, err)
	assert.Equal(t, 100, meta.ContractSize)
	assert.InDelta(t, 0.01, meta.PipSize, 1e-12)

	_, err = Instrument("EUR_USD")
	assert.Error(t, err)
}
