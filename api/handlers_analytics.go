package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// trades loads the filtered trades for an aggregate endpoint. Aggregates
// are recomputed from the store on every request.
func (s *Server) trades(c *gin.Context) ([]journal.Trade, bool) {
	f, err := parseFilter(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	trades, err := s.book.List(c.Request.Context(), f)
	if err != nil {
		s.failWith(c, err)
		return nil, false
	}
	return trades, true
}

func (s *Server) handleAnalytics(c *gin.Context) {
	trades, ok := s.trades(c)
	if !ok {
		return
	}

	snap := analytics.Compute(trades)
	successResponse(c, http.StatusOK, gin.H{
		"empty":     snap.Empty(),
		"snapshot":  snap,
		"breakdown": analytics.BreakdownOf(trades),
	})
}

func (s *Server) handleMonthly(c *gin.Context) {
	trades, ok := s.trades(c)
	if !ok {
		return
	}
	successResponse(c, http.StatusOK, analytics.Monthly(trades))
}

func (s *Server) handleEquity(c *gin.Context) {
	trades, ok := s.trades(c)
	if !ok {
		return
	}
	successResponse(c, http.StatusOK, analytics.Equity(trades, s.config.StartBalance))
}

func (s *Server) handleBalances(c *gin.Context) {
	bal, err := s.book.Balances(c.Request.Context())
	if err != nil {
		s.failWith(c, err)
		return
	}
	successResponse(c, http.StatusOK, bal)
}
