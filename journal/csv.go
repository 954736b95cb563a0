package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/tradejournal/market"
)

var csvHeader = []string{
	"trade_id", "pair", "direction", "entry_price", "exit_price", "stop_loss", "take_profit",
	"lot_size", "contract_size", "risk_percent", "risk_reward",
	"result_usd", "result_idr", "result_cent", "pnl_percent", "denomination", "created_at",
	"session", "strategy", "confidence", "emotion", "notes", "screenshot",
}

// WriteCSV writes trades with a header row.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Pair,
			string(t.Direction),
			f(t.EntryPrice),
			f(t.ExitPrice),
			f(t.StopLoss),
			f(t.TakeProfit),
			f(t.LotSize),
			strconv.Itoa(t.ContractSize),
			f(t.RiskPercent),
			f(t.RiskReward),
			f(t.ResultUSD),
			f(t.ResultIDR),
			f(t.ResultCent),
			f(t.PnLPercent),
			string(t.Denomination),
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
			t.Session,
			t.Strategy,
			strconv.Itoa(t.Confidence),
			t.Emotion,
			t.Notes,
			t.Screenshot,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. Columns are matched by header
// name so extra or reordered columns are tolerated.
func ReadCSV(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	for _, req := range []string{"direction", "entry_price", "exit_price", "lot_size"} {
		if _, ok := col[req]; !ok {
			return nil, fmt.Errorf("missing column %q", req)
		}
	}

	var out []Trade
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		p := rowParser{rec: rec, col: col}
		t := Trade{
			ID:           p.str("trade_id"),
			Pair:         p.str("pair"),
			Direction:    market.Direction(p.str("direction")),
			EntryPrice:   p.number("entry_price"),
			ExitPrice:    p.number("exit_price"),
			StopLoss:     p.number("stop_loss"),
			TakeProfit:   p.number("take_profit"),
			LotSize:      p.number("lot_size"),
			ContractSize: p.integer("contract_size"),
			RiskPercent:  p.number("risk_percent"),
			RiskReward:   p.number("risk_reward"),
			ResultUSD:    p.number("result_usd"),
			ResultIDR:    p.number("result_idr"),
			ResultCent:   p.number("result_cent"),
			PnLPercent:   p.number("pnl_percent"),
			Denomination: market.Denomination(p.str("denomination")),
			CreatedAt:    p.timestamp("created_at"),
			Meta: Meta{
				Session:    p.str("session"),
				Strategy:   p.str("strategy"),
				Confidence: p.integer("confidence"),
				Emotion:    p.str("emotion"),
				Notes:      p.str("notes"),
				Screenshot: p.str("screenshot"),
			},
		}
		if p.err != nil {
			return nil, fmt.Errorf("line %d: %w", line, p.err)
		}
		out = append(out, t)
	}
	return out, nil
}

type rowParser struct {
	rec []string
	col map[string]int
	err error
}

func (p *rowParser) str(name string) string {
	i, ok := p.col[name]
	if !ok || i >= len(p.rec) {
		return ""
	}
	return p.rec[i]
}

func (p *rowParser) number(name string) float64 {
	s := p.str(name)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func (p *rowParser) integer(name string) int {
	s := p.str(name)
	if s == "" || p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v
}

func (p *rowParser) timestamp(name string) time.Time {
	s := p.str(name)
	if s == "" || p.err != nil {
		return time.Time{}
	}
	v, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
	}
	return v.UTC()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
