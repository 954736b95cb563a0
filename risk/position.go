package risk

import "fmt"

type Inputs struct {
	Balance      float64
	RiskPct      float64 // percent, 2 means 2%
	EntryPrice   float64
	StopPrice    float64
	PipSize      float64
	ContractSize float64
}

type Result struct {
	LotSize    float64 `json:"lot_size"`
	RiskPips   float64 `json:"risk_pips"`
	RiskAmount float64 `json:"risk_amount"`
}

// LotSize returns the lot size that loses exactly RiskPct of Balance if
// the stop is hit. The exit price plays no part; this sizes a planned trade.
func LotSize(in Inputs) (Result, error) {
	if in.EntryPrice <= 0 || in.StopPrice <= 0 {
		return Result{}, fmt.Errorf("%w: entry %v stop %v", ErrNonPositivePrice, in.EntryPrice, in.StopPrice)
	}
	if in.PipSize <= 0 || in.ContractSize <= 0 {
		return Result{}, fmt.Errorf("%w: pip size %v contract size %v", ErrInvalidInput, in.PipSize, in.ContractSize)
	}
	if in.Balance <= 0 || in.RiskPct <= 0 {
		return Result{}, fmt.Errorf("%w: balance %v risk %v%%", ErrInvalidInput, in.Balance, in.RiskPct)
	}

	riskPips := Pips(in.EntryPrice, in.StopPrice, in.PipSize)
	if riskPips == 0 {
		return Result{}, ErrZeroRiskDistance
	}

	riskAmt := in.Balance * in.RiskPct / 100
	lots := riskAmt / (riskPips * in.PipSize * in.ContractSize)

	return Result{
		LotSize:    lots,
		RiskPips:   riskPips,
		RiskAmount: riskAmt,
	}, nil
}
