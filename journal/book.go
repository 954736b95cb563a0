package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/logging"
)

type EventType string

const (
	TradeAdded   EventType = "trade_added"
	TradeDeleted EventType = "trade_deleted"
)

// Event tells subscribers the trade collection changed. Subscribers reload
// the list rather than patching a cached aggregate.
type Event struct {
	Type  EventType `json:"type"`
	Trade Trade     `json:"trade"`
	At    time.Time `json:"at"`
}

// Book is the trade store handed to views. It owns the Journal and fans out
// change events to subscribers.
type Book struct {
	j       Journal
	builder Builder
	logger  zerolog.Logger

	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

func NewBook(j Journal, b Builder, logger zerolog.Logger) *Book {
	return &Book{
		j:       j,
		builder: b,
		logger:  logging.Component(logger, "Book"),
		subs:    make(map[int]chan Event),
	}
}

// Add builds, stores and credits a trade, then notifies subscribers. If the
// balance cannot be credited the trade is removed again and the error
// returned.
func (bk *Book) Add(ctx context.Context, in TradeInput) (Trade, error) {
	t, err := bk.builder.Build(in)
	if err != nil {
		return Trade{}, err
	}

	if err := bk.j.RecordTrade(ctx, t); err != nil {
		return Trade{}, err
	}

	if _, err := bk.j.ApplyBalance(ctx, BalanceChange{
		TradeID:      t.ID,
		Denomination: t.Denomination,
		Amount:       t.Result(t.Denomination),
		Time:         t.CreatedAt,
	}); err != nil {
		bk.logger.Error().Err(err).Str("trade_id", t.ID).Msg("balance update failed")
		if derr := bk.j.DeleteTrade(ctx, t.ID); derr != nil {
			return Trade{}, errors.Join(fmt.Errorf("credit balance: %w", err), fmt.Errorf("undo trade %s: %w", t.ID, derr))
		}
		return Trade{}, fmt.Errorf("credit balance: %w", err)
	}

	bk.logger.Info().
		Str("trade_id", t.ID).
		Str("direction", string(t.Direction)).
		Float64("lot_size", t.LotSize).
		Float64("result_usd", t.ResultUSD).
		Msg("trade recorded")

	bk.publish(Event{Type: TradeAdded, Trade: t, At: time.Now()})
	return t, nil
}

// Delete removes a trade and reverses its balance credit. If the reversal
// fails the trade is stored again.
func (bk *Book) Delete(ctx context.Context, id string) error {
	t, err := bk.j.GetTrade(ctx, id)
	if err != nil {
		return err
	}
	if err := bk.j.DeleteTrade(ctx, id); err != nil {
		return err
	}

	if _, err := bk.j.ApplyBalance(ctx, BalanceChange{
		TradeID:      t.ID,
		Denomination: t.Denomination,
		Amount:       -t.Result(t.Denomination),
	}); err != nil {
		bk.logger.Error().Err(err).Str("trade_id", t.ID).Msg("balance reversal failed")
		if rerr := bk.j.RecordTrade(ctx, t); rerr != nil {
			return errors.Join(fmt.Errorf("reverse balance: %w", err), fmt.Errorf("restore trade %s: %w", t.ID, rerr))
		}
		return fmt.Errorf("reverse balance: %w", err)
	}

	bk.logger.Info().Str("trade_id", id).Msg("trade deleted")
	bk.publish(Event{Type: TradeDeleted, Trade: t, At: time.Now()})
	return nil
}

func (bk *Book) Get(ctx context.Context, id string) (Trade, error) {
	return bk.j.GetTrade(ctx, id)
}

// List returns trades oldest-first.
func (bk *Book) List(ctx context.Context, f Filter) ([]Trade, error) {
	return bk.j.ListTrades(ctx, f)
}

func (bk *Book) Balances(ctx context.Context) (Balances, error) {
	return bk.j.Balances(ctx)
}

// Builder exposes the book's builder for previews.
func (bk *Book) Builder() Builder {
	return bk.builder
}

// Subscribe returns a channel of change events and a cancel func. Events
// are dropped for a subscriber whose buffer is full.
func (bk *Book) Subscribe(buffer int) (<-chan Event, func()) {
	bk.mu.Lock()
	defer bk.mu.Unlock()

	ch := make(chan Event, buffer)
	if bk.closed {
		close(ch)
		return ch, func() {}
	}

	id := bk.nextID
	bk.nextID++
	bk.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			bk.mu.Lock()
			defer bk.mu.Unlock()
			if c, ok := bk.subs[id]; ok {
				delete(bk.subs, id)
				close(c)
			}
		})
	}
}

func (bk *Book) publish(ev Event) {
	bk.mu.Lock()
	defer bk.mu.Unlock()

	for id, ch := range bk.subs {
		select {
		case ch <- ev:
		default:
			bk.logger.Warn().Int("subscriber", id).Str("event", string(ev.Type)).Msg("subscriber slow, event dropped")
		}
	}
}

// Close closes every subscription and the underlying journal.
func (bk *Book) Close() error {
	bk.mu.Lock()
	if bk.closed {
		bk.mu.Unlock()
		return errors.New("book already closed")
	}
	bk.closed = true
	for id, ch := range bk.subs {
		delete(bk.subs, id)
		close(ch)
	}
	bk.mu.Unlock()

	if err := bk.j.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return nil
}
