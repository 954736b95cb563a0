package journal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rustyeddy/tradejournal/market"
)

// Postgres is a Journal backed by a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to dsn and runs the migrations.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	for _, m := range postgresMigrations {
		if _, err := pool.Exec(ctx, m); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return &Postgres{pool: pool}, nil
}

func pgPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (p *Postgres) RecordTrade(ctx context.Context, t Trade) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		tradeArgs(t)...,
	)
	if err != nil {
		return fmt.Errorf("insert trade %s: %w", t.ID, err)
	}
	return nil
}

func (p *Postgres) GetTrade(ctx context.Context, id string) (Trade, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = $1`, id)
	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", id, ErrNotFound)
		}
		return Trade{}, err
	}
	return t, nil
}

func (p *Postgres) ListTrades(ctx context.Context, f Filter) ([]Trade, error) {
	query, args, desc := listQuery(f, pgPlaceholder)

	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Postgres) DeleteTrade(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM trades WHERE trade_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade %q: %w", id, ErrNotFound)
	}
	return nil
}

func (p *Postgres) Balances(ctx context.Context) (Balances, error) {
	return pgBalances(ctx, p.pool)
}

func (p *Postgres) ApplyBalance(ctx context.Context, c BalanceChange) (Balances, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return Balances{}, err
	}
	defer tx.Rollback(ctx)

	var prev float64
	err = tx.QueryRow(ctx,
		`SELECT amount FROM balances WHERE denomination = $1 FOR UPDATE`, string(c.Denomination)).Scan(&prev)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Balances{}, err
	}

	c.Previous = prev
	c.New = prev + c.Amount
	if c.Time.IsZero() {
		c.Time = time.Now()
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO balances (denomination, amount) VALUES ($1, $2)
		ON CONFLICT (denomination) DO UPDATE SET amount = excluded.amount`,
		string(c.Denomination), c.New); err != nil {
		return Balances{}, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO balance_changes (trade_id, denomination, amount, previous_amount, new_amount, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.TradeID, string(c.Denomination), c.Amount, c.Previous, c.New, c.Time.UTC()); err != nil {
		return Balances{}, fmt.Errorf("log balance change: %w", err)
	}

	b, err := pgBalances(ctx, tx)
	if err != nil {
		return Balances{}, err
	}
	return b, tx.Commit(ctx)
}

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func pgBalances(ctx context.Context, q pgQuerier) (Balances, error) {
	rows, err := q.Query(ctx, `SELECT denomination, amount FROM balances`)
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

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
