// Package pnl scores closed trades.
package pnl

import (
	"math"

	"github.com/rustyeddy/tradejournal/market"
)

type Input struct {
	Direction    market.Direction
	EntryPrice   float64
	ExitPrice    float64
	LotSize      float64
	ContractSize float64

	// IDR per USD. The rate is static, not a live quote.
	ConversionRate float64
}

type Result struct {
	Primary   float64 `json:"result_usd"`
	Secondary float64 `json:"result_idr"`
	Subunit   float64 `json:"result_cent"`
	Percent   float64 `json:"pnl_percent"` // return on notional

	// Complete is false when the exit price (or lot/contract size) is not
	// yet known and every figure is zero.
	Complete bool `json:"complete"`
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Move is the signed price move in the trade's favour.
func Move(dir market.Direction, entry, exit float64) float64 {
	if dir == market.Sell {
		return entry - exit
	}
	return exit - entry
}

// Compute returns the realized result of a trade. It never fails: an
// incomplete trade yields a zero Result.
func Compute(in Input) Result {
	if in.EntryPrice <= 0 || !finite(in.EntryPrice) ||
		!finite(in.ExitPrice) || !finite(in.LotSize) || !finite(in.ContractSize) {
		return Result{}
	}

	primary := Move(in.Direction, in.EntryPrice, in.ExitPrice) * in.LotSize * in.ContractSize

	var pct float64
	notional := in.EntryPrice * in.LotSize * in.ContractSize
	if notional != 0 {
		pct = primary / notional * 100
	}

	return Result{
		Primary:   primary,
		Secondary: primary * in.ConversionRate,
		Subunit:   primary * market.CentsPerUnit,
		Percent:   pct,
		Complete:  true,
	}
}

// In returns the result expressed in the given denomination.
func (r Result) In(d market.Denomination) float64 {
	switch d {
	case market.IDR:
		return r.Secondary
	case market.USDCent:
		return r.Subunit
	}
	return r.Primary
}
