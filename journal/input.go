package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/pnl"
	"github.com/rustyeddy/tradejournal/risk"
)

// TradeInput is what a user submits. Result fields are absent on purpose.
type TradeInput struct {
	Pair        string  `json:"pair"`
	Direction   string  `json:"direction"`
	EntryPrice  float64 `json:"entry_price"`
	ExitPrice   float64 `json:"exit_price"`
	StopLoss    float64 `json:"stop_loss,omitempty"`
	TakeProfit  float64 `json:"take_profit,omitempty"`
	LotSize     float64 `json:"lot_size,omitempty"` // 0 sizes from RiskPercent
	RiskPercent float64 `json:"risk_percent,omitempty"`

	// Balance to credit; USD when empty.
	Denomination string `json:"denomination,omitempty"`

	// Set by imports. New trades are stamped by the Builder.
	CreatedAt time.Time `json:"created_at,omitempty"`

	Meta
}

type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError lists every problem found with a TradeInput.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Msg)
	}
	return "invalid trade: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Msg: fmt.Sprintf(format, args...)})
}

func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate reports a *ValidationError, or nil when the input is well formed.
func (in TradeInput) Validate() error {
	ve := &ValidationError{}

	pair := in.Pair
	if pair == "" {
		pair = market.DefaultInstrument
	}
	if _, err := market.Instrument(pair); err != nil {
		ve.add("pair", "%v", err)
	}

	dir, err := market.ParseDirection(in.Direction)
	if err != nil {
		ve.add("direction", "must be buy or sell")
	}

	if in.EntryPrice <= 0 {
		ve.add("entry_price", "must be positive")
	}
	if in.ExitPrice <= 0 {
		ve.add("exit_price", "must be positive")
	}
	if in.StopLoss < 0 {
		ve.add("stop_loss", "must not be negative")
	}
	if in.TakeProfit < 0 {
		ve.add("take_profit", "must not be negative")
	}
	if in.LotSize < 0 {
		ve.add("lot_size", "must not be negative")
	}
	if in.RiskPercent < 0 || in.RiskPercent > 100 {
		ve.add("risk_percent", "must be between 0 and 100")
	}
	if in.LotSize == 0 {
		if in.RiskPercent == 0 {
			ve.add("lot_size", "required when risk_percent is not set")
		}
		if in.StopLoss == 0 {
			ve.add("stop_loss", "required to size the position from risk_percent")
		}
	}
	if in.Confidence < 0 || in.Confidence > 5 {
		ve.add("confidence", "must be between 1 and 5, or 0 when unset")
	}
	if in.Denomination != "" {
		if _, err := market.ParseDenomination(in.Denomination); err != nil {
			ve.add("denomination", "must be USD, IDR or USD_CENT")
		}
	}

	if dir.Valid() && in.EntryPrice > 0 && in.StopLoss >= 0 && in.TakeProfit >= 0 {
		stop := in.StopLoss
		if stop == in.EntryPrice {
			ve.add("stop_loss", "%v", risk.ErrZeroRiskDistance)
			stop = 0
		}
		if err := risk.ValidateLevels(dir, in.EntryPrice, stop, in.TakeProfit); err != nil {
			field := "stop_loss"
			if errors.Is(err, risk.ErrTargetSide) {
				field = "take_profit"
			}
			ve.add(field, "%v", err)
		}
	}

	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

// Builder turns validated input into a stored Trade.
type Builder struct {
	// Reference balance for risk-percent sizing.
	AccountBalance float64
	IDRPerUSD      float64

	Now   func() time.Time
	NewID func(at time.Time) string
}

func NewBuilder(accountBalance, idrPerUSD float64) Builder {
	return Builder{
		AccountBalance: accountBalance,
		IDRPerUSD:      idrPerUSD,
		Now:            time.Now,
		NewID:          id.NewAt,
	}
}

// Build validates in and derives lot size, risk/reward and results.
func (b Builder) Build(in TradeInput) (Trade, error) {
	if err := in.Validate(); err != nil {
		return Trade{}, err
	}

	pair := in.Pair
	if pair == "" {
		pair = market.DefaultInstrument
	}
	meta, err := market.Instrument(pair)
	if err != nil {
		return Trade{}, err
	}
	dir, _ := market.ParseDirection(in.Direction)

	denom := market.USD
	if in.Denomination != "" {
		denom, _ = market.ParseDenomination(in.Denomination)
	}

	lot := in.LotSize
	if lot == 0 {
		sized, err := risk.LotSize(risk.Inputs{
			Balance:      b.AccountBalance,
			RiskPct:      in.RiskPercent,
			EntryPrice:   in.EntryPrice,
			StopPrice:    in.StopLoss,
			PipSize:      meta.PipSize,
			ContractSize: float64(meta.ContractSize),
		})
		if err != nil {
			return Trade{}, fmt.Errorf("size position: %w", err)
		}
		lot = sized.LotSize
	}

	var rr float64
	if in.StopLoss > 0 && in.TakeProfit > 0 {
		rr, err = risk.RiskReward(in.EntryPrice, in.StopLoss, in.TakeProfit, meta.PipSize)
		if err != nil {
			return Trade{}, err
		}
	}

	res := pnl.Compute(pnl.Input{
		Direction:      dir,
		EntryPrice:     in.EntryPrice,
		ExitPrice:      in.ExitPrice,
		LotSize:        lot,
		ContractSize:   float64(meta.ContractSize),
		ConversionRate: b.IDRPerUSD,
	})

	created := in.CreatedAt
	if created.IsZero() {
		created = b.now()
	}

	return Trade{
		ID:           b.newID(created),
		Pair:         pair,
		Direction:    dir,
		EntryPrice:   in.EntryPrice,
		ExitPrice:    in.ExitPrice,
		StopLoss:     in.StopLoss,
		TakeProfit:   in.TakeProfit,
		LotSize:      lot,
		ContractSize: meta.ContractSize,
		RiskPercent:  in.RiskPercent,
		RiskReward:   rr,
		ResultUSD:    res.Primary,
		ResultIDR:    res.Secondary,
		ResultCent:   res.Subunit,
		PnLPercent:   res.Percent,
		Denomination: denom,
		CreatedAt:    created.UTC(),
		Meta:         in.Meta,
	}, nil
}

func (b Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b Builder) newID(at time.Time) string {
	if b.NewID == nil {
		return id.NewAt(at)
	}
	return b.NewID(at)
}

// Input recovers the user-supplied fields of t, keeping CreatedAt.
func (t Trade) Input() TradeInput {
	return TradeInput{
		Pair:         t.Pair,
		Direction:    string(t.Direction),
		EntryPrice:   t.EntryPrice,
		ExitPrice:    t.ExitPrice,
		StopLoss:     t.StopLoss,
		TakeProfit:   t.TakeProfit,
		LotSize:      t.LotSize,
		RiskPercent:  t.RiskPercent,
		Denomination: string(t.Denomination),
		CreatedAt:    t.CreatedAt,
		Meta:         t.Meta,
	}
}
