package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/market"
)

// Balances are the running account balances, one per denomination.
type Balances struct {
	USD     float64 `json:"usd"`
	IDR     float64 `json:"idr"`
	USDCent float64 `json:"usd_cent"`
}

// BalanceChange credits Amount (signed) to one denomination. Previous and
// New are filled in by the store.
type BalanceChange struct {
	TradeID      string              `json:"trade_id"`
	Denomination market.Denomination `json:"denomination"`
	Amount       float64             `json:"amount"`
	Previous     float64             `json:"previous"`
	New          float64             `json:"new"`
	Time         time.Time           `json:"time"`
}

func (b Balances) Get(d market.Denomination) float64 {
	switch d {
	case market.IDR:
		return b.IDR
	case market.USDCent:
		return b.USDCent
	}
	return b.USD
}

func (b *Balances) set(d market.Denomination, v float64) error {
	switch d {
	case market.USD:
		b.USD = v
	case market.IDR:
		b.IDR = v
	case market.USDCent:
		b.USDCent = v
	default:
		return fmt.Errorf("unknown denomination %q", d)
	}
	return nil
}
