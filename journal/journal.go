// journal/journal.go
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/tradejournal/market"
)

var ErrNotFound = errors.New("journal: not found")

// Meta is free-form context about a trade. None of it feeds the numbers.
type Meta struct {
	Session    string `json:"session,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Confidence int    `json:"confidence,omitempty"` // 1-5, 0 unset
	Emotion    string `json:"emotion,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Screenshot string `json:"screenshot,omitempty"`
}

// Trade is a closed trade as stored. The result fields are derived by
// Builder and are never taken from user input.
type Trade struct {
	ID           string           `json:"id"`
	Pair         string           `json:"pair"`
	Direction    market.Direction `json:"direction"`
	EntryPrice   float64          `json:"entry_price"`
	ExitPrice    float64          `json:"exit_price"`
	StopLoss     float64          `json:"stop_loss,omitempty"`
	TakeProfit   float64          `json:"take_profit,omitempty"`
	LotSize      float64          `json:"lot_size"`
	ContractSize int              `json:"contract_size"`
	RiskPercent  float64          `json:"risk_percent,omitempty"`
	RiskReward   float64          `json:"risk_reward,omitempty"`

	ResultUSD  float64 `json:"result_usd"`
	ResultIDR  float64 `json:"result_idr"`
	ResultCent float64 `json:"result_cent"`
	PnLPercent float64 `json:"pnl_percent"`

	// Balance the result was credited to.
	Denomination market.Denomination `json:"denomination"`

	CreatedAt time.Time `json:"created_at"`

	Meta
}

// Result is the trade's result in the given denomination.
func (t Trade) Result(d market.Denomination) float64 {
	switch d {
	case market.IDR:
		return t.ResultIDR
	case market.USDCent:
		return t.ResultCent
	}
	return t.ResultUSD
}

// Filter narrows ListTrades to [From, To). Zero values mean no bound.
// Limit keeps the most recent trades.
type Filter struct {
	From  time.Time
	To    time.Time
	Pair  string
	Limit int
}

// Journal stores trades. ListTrades always returns trades oldest-first.
type Journal interface {
	RecordTrade(ctx context.Context, t Trade) error
	GetTrade(ctx context.Context, id string) (Trade, error)
	ListTrades(ctx context.Context, f Filter) ([]Trade, error)
	DeleteTrade(ctx context.Context, id string) error

	Balances(ctx context.Context) (Balances, error)
	ApplyBalance(ctx context.Context, c BalanceChange) (Balances, error)

	Close() error
}

// scanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const tradeColumns = `trade_id, pair, direction, entry_price, exit_price, stop_loss, take_profit,
	lot_size, contract_size, risk_percent, risk_reward,
	result_usd, result_idr, result_cent, pnl_percent, denomination, created_at,
	session, strategy, confidence, emotion, notes, screenshot`

func tradeArgs(t Trade) []any {
	return []any{
		t.ID, t.Pair, string(t.Direction), t.EntryPrice, t.ExitPrice, t.StopLoss, t.TakeProfit,
		t.LotSize, t.ContractSize, t.RiskPercent, t.RiskReward,
		t.ResultUSD, t.ResultIDR, t.ResultCent, t.PnLPercent, string(t.Denomination), t.CreatedAt.UTC(),
		t.Session, t.Strategy, t.Confidence, t.Emotion, t.Notes, t.Screenshot,
	}
}

func scanTrade(s scanner) (Trade, error) {
	var (
		t     Trade
		dir   string
		denom string
	)
	err := s.Scan(
		&t.ID, &t.Pair, &dir, &t.EntryPrice, &t.ExitPrice, &t.StopLoss, &t.TakeProfit,
		&t.LotSize, &t.ContractSize, &t.RiskPercent, &t.RiskReward,
		&t.ResultUSD, &t.ResultIDR, &t.ResultCent, &t.PnLPercent, &denom, &t.CreatedAt,
		&t.Session, &t.Strategy, &t.Confidence, &t.Emotion, &t.Notes, &t.Screenshot,
	)
	if err != nil {
		return Trade{}, err
	}
	t.Direction = market.Direction(dir)
	t.Denomination = market.Denomination(denom)
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
