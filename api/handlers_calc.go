package api

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/pnl"
	"github.com/rustyeddy/tradejournal/risk"
)

type sizingRequest struct {
	Pair        string  `json:"pair"`
	Direction   string  `json:"direction" binding:"required"`
	EntryPrice  float64 `json:"entry_price" binding:"required"`
	StopLoss    float64 `json:"stop_loss" binding:"required"`
	TakeProfit  float64 `json:"take_profit"`
	RiskPercent float64 `json:"risk_percent"` // policy default when 0
	Balance     float64 `json:"balance"`      // configured balance when 0
}

type sizingResponse struct {
	Pair        string        `json:"pair"`
	RiskPercent float64       `json:"risk_percent"`
	Balance     float64       `json:"balance"`
	Plan        risk.Plan     `json:"plan"`
	Decision    risk.Decision `json:"decision"`
}

// handleSizing previews a planned trade: lot size, RR and policy checks.
func (s *Server) handleSizing(c *gin.Context) {
	var req sizingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	meta, dir, ok := s.instrumentAndDirection(c, req.Pair, req.Direction)
	if !ok {
		return
	}

	if req.RiskPercent == 0 {
		req.RiskPercent = s.config.Policy.DefaultRiskPct
	}
	if req.Balance == 0 {
		req.Balance = s.config.StartBalance
	}

	plan, err := risk.PlanTrade(risk.PlanInput{
		Direction:    dir,
		Entry:        req.EntryPrice,
		Stop:         req.StopLoss,
		TakeProfit:   req.TakeProfit,
		Balance:      req.Balance,
		RiskPct:      req.RiskPercent,
		PipSize:      meta.PipSize,
		ContractSize: float64(meta.ContractSize),
	})
	if err != nil {
		s.failWith(c, err)
		return
	}

	successResponse(c, http.StatusOK, sizingResponse{
		Pair:        meta.Name,
		RiskPercent: req.RiskPercent,
		Balance:     req.Balance,
		Plan:        plan,
		Decision:    risk.Evaluate(s.config.Policy, req.RiskPercent, plan),
	})
}

type pnlRequest struct {
	Pair       string  `json:"pair"`
	Direction  string  `json:"direction" binding:"required"`
	EntryPrice float64  `json:"entry_price"`
	ExitPrice  *float64 `json:"exit_price"`
	LotSize    *float64 `json:"lot_size"`
}

// orNaN maps an omitted JSON number to NaN, which pnl treats as unknown.
func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// handlePnL scores a trade without storing it. Incomplete input gives a
// zero result with complete=false rather than an error.
func (s *Server) handlePnL(c *gin.Context) {
	var req pnlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	meta, dir, ok := s.instrumentAndDirection(c, req.Pair, req.Direction)
	if !ok {
		return
	}

	successResponse(c, http.StatusOK, pnl.Compute(pnl.Input{
		Direction:      dir,
		EntryPrice:     req.EntryPrice,
		ExitPrice:      orNaN(req.ExitPrice),
		LotSize:        orNaN(req.LotSize),
		ContractSize:   float64(meta.ContractSize),
		ConversionRate: s.config.IDRPerUSD,
	}))
}

func (s *Server) instrumentAndDirection(c *gin.Context, pair, direction string) (market.InstrumentMeta, market.Direction, bool) {
	if pair == "" {
		pair = s.config.Instrument
	}
	meta, err := market.Instrument(pair)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return meta, "", false
	}
	dir, err := market.ParseDirection(direction)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return meta, "", false
	}
	return meta, dir, true
}
