package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(ctx context.Context, t Trade) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tradeArgs(t)...,
	)
	if err != nil {
		return fmt.Errorf("insert trade %s: %w", t.ID, err)
	}
	return nil
}

func (j *SQLite) DeleteTrade(ctx context.Context, id string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", id, ErrNotFound)
	}
	return nil
}

func (j *SQLite) ApplyBalance(ctx context.Context, c BalanceChange) (Balances, error) {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return Balances{}, err
	}
	defer tx.Rollback()

	var prev float64
	err = tx.QueryRowContext(ctx,
		`SELECT amount FROM balances WHERE denomination = ?`, string(c.Denomination)).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Balances{}, err
	}

	c.Previous = prev
	c.New = prev + c.Amount
	if c.Time.IsZero() {
		c.Time = time.Now()
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO balances (denomination, amount) VALUES (?, ?)
		ON CONFLICT(denomination) DO UPDATE SET amount = excluded.amount`,
		string(c.Denomination), c.New); err != nil {
		return Balances{}, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO balance_changes (trade_id, denomination, amount, previous_amount, new_amount, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.TradeID, string(c.Denomination), c.Amount, c.Previous, c.New, c.Time.UTC()); err != nil {
		return Balances{}, fmt.Errorf("log balance change: %w", err)
	}

	b, err := readBalances(ctx, tx)
	if err != nil {
		return Balances{}, err
	}
	return b, tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
