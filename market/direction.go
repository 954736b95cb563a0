package market

import (
	"fmt"
	"strings"
)

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// ParseDirection accepts buy/sell in any case, plus long/short.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "long":
		return Buy, nil
	case "sell", "short":
		return Sell, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

func (d Direction) Valid() bool {
	return d == Buy || d == Sell
}

// Sign is +1 for buy and -1 for sell.
func (d Direction) Sign() float64 {
	if d == Sell {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	return string(d)
}
