package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/tradejournal/market"
)

var (
	ErrZeroRiskDistance = errors.New("risk: stop loss equals entry price")
	ErrInvalidLevels    = errors.New("risk: stop loss / take profit on wrong side of entry")
	ErrNonPositivePrice = errors.New("risk: price must be positive")
	ErrInvalidInput     = errors.New("risk: invalid sizing input")

	ErrStopSide   = fmt.Errorf("%w: stop loss", ErrInvalidLevels)
	ErrTargetSide = fmt.Errorf("%w: take profit", ErrInvalidLevels)
)

// Pips converts a price distance into pips.
func Pips(a, b, pipSize float64) float64 {
	return math.Abs(a-b) / pipSize
}

// RiskReward is reward pips over risk pips.
func RiskReward(entry, stop, takeProfit, pipSize float64) (float64, error) {
	if pipSize <= 0 {
		return 0, fmt.Errorf("%w: pip size %v", ErrInvalidInput, pipSize)
	}
	risk := Pips(entry, stop, pipSize)
	if risk == 0 {
		return 0, ErrZeroRiskDistance
	}
	reward := Pips(takeProfit, entry, pipSize)
	return reward / risk, nil
}

// ValidateLevels checks that the stop and target sit on the correct side of
// entry for the direction. A zero stop or target is treated as unset.
//
//	buy:  stop < entry < target
//	sell: target < entry < stop
func ValidateLevels(dir market.Direction, entry, stop, takeProfit float64) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: direction %q", ErrInvalidInput, dir)
	}
	if entry <= 0 {
		return fmt.Errorf("%w: entry %v", ErrNonPositivePrice, entry)
	}
	if stop < 0 || takeProfit < 0 {
		return fmt.Errorf("%w: stop %v target %v", ErrNonPositivePrice, stop, takeProfit)
	}

	switch dir {
	case market.Buy:
		if stop != 0 && stop >= entry {
			return fmt.Errorf("%w: buy stop %v must be below entry %v", ErrStopSide, stop, entry)
		}
		if takeProfit != 0 && takeProfit <= entry {
			return fmt.Errorf("%w: buy target %v must be above entry %v", ErrTargetSide, takeProfit, entry)
		}
	case market.Sell:
		if stop != 0 && stop <= entry {
			return fmt.Errorf("%w: sell stop %v must be above entry %v", ErrStopSide, stop, entry)
		}
		if takeProfit != 0 && takeProfit >= entry {
			return fmt.Errorf("%w: sell target %v must be below entry %v", ErrTargetSide, takeProfit, entry)
		}
	}
	return nil
}
