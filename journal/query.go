package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/tradejournal/market"
)

// GetTrade returns a single trade by ID.
func (j *SQLite) GetTrade(ctx context.Context, id string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, id)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", id, ErrNotFound)
		}
		return Trade{}, err
	}
	return t, nil
}

// ListTrades returns trades matching f, oldest-first.
func (j *SQLite) ListTrades(ctx context.Context, f Filter) ([]Trade, error) {
	query, args, desc := listQuery(f, func(int) string { return "?" })

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if desc {
		reverse(out)
	}
	return out, nil
}

func (j *SQLite) Balances(ctx context.Context) (Balances, error) {
	return readBalances(ctx, j.db)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func readBalances(ctx context.Context, q querier) (Balances, error) {
	rows, err := q.QueryContext(ctx, `SELECT denomination, amount FROM balances`)
	if err != nil {
		return Balances{}, err
	}
	defer rows.Close()

	var b Balances
	for rows.Next() {
		var (
			d   string
			amt float64
		)
		if err := rows.Scan(&d, &amt); err != nil {
			return Balances{}, err
		}
		if err := b.set(market.Denomination(d), amt); err != nil {
			return Balances{}, err
		}
	}
	return b, rows.Err()
}

// listQuery builds the SELECT for f. ph renders the n-th placeholder. With
// a Limit the rows come back newest-first and desc is true; the caller
// reverses them.
func listQuery(f Filter, ph func(n int) string) (q string, args []any, desc bool) {
	var where []string
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, ph(len(args))))
	}
	if !f.From.IsZero() {
		add("created_at >= %s", f.From.UTC())
	}
	if !f.To.IsZero() {
		add("created_at < %s", f.To.UTC())
	}
	if f.Pair != "" {
		add("pair = %s", f.Pair)
	}

	q = "SELECT " + tradeColumns + " FROM trades"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	if f.Limit > 0 {
		args = append(args, f.Limit)
		return q + " ORDER BY created_at DESC, trade_id DESC LIMIT " + ph(len(args)), args, true
	}
	return q + " ORDER BY created_at ASC, trade_id ASC", args, false
}

func reverse(trades []Trade) {
	for i, k := 0, len(trades)-1; i < k; i, k = i+1, k-1 {
		trades[i], trades[k] = trades[k], trades[i]
	}
}
