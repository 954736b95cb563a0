package risk

import "github.com/rustyeddy/tradejournal/market"

type Policy struct {
	// Percent of balance, 2 means 2%.
	DefaultRiskPct float64
	MaxRiskPct     float64

	MinRR float64
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultRiskPct: 1,
		MaxRiskPct:     2,
		MinRR:          1.5,
	}
}

// PlanInput is a trade that has not been entered yet.
type PlanInput struct {
	Direction  market.Direction
	Entry      float64
	Stop       float64
	TakeProfit float64 // 0 when no target

	Balance      float64
	RiskPct      float64
	PipSize      float64
	ContractSize float64
}

type Plan struct {
	Result
	RewardPips float64 `json:"reward_pips"`
	RR         float64 `json:"risk_reward"`
}

// PlanTrade validates the levels and sizes the position. It is what a form
// calls on every keystroke for the live preview.
func PlanTrade(in PlanInput) (Plan, error) {
	if in.Stop != 0 && in.Stop == in.Entry {
		return Plan{}, ErrZeroRiskDistance
	}
	if err := ValidateLevels(in.Direction, in.Entry, in.Stop, in.TakeProfit); err != nil {
		return Plan{}, err
	}

	res, err := LotSize(Inputs{
		Balance:      in.Balance,
		RiskPct:      in.RiskPct,
		EntryPrice:   in.Entry,
		StopPrice:    in.Stop,
		PipSize:      in.PipSize,
		ContractSize: in.ContractSize,
	})
	if err != nil {
		return Plan{}, err
	}

	p := Plan{Result: res}
	if in.TakeProfit != 0 {
		p.RewardPips = Pips(in.TakeProfit, in.Entry, in.PipSize)
		p.RR = p.RewardPips / res.RiskPips
	}
	return p, nil
}
