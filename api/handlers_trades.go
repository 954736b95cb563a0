package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/tradejournal/journal"
)

// parseFilter reads from, to, pair and limit. Dates are YYYY-MM-DD (UTC,
// a date-only "to" covers that whole day) or RFC 3339.
func parseFilter(c *gin.Context) (journal.Filter, error) {
	var f journal.Filter

	if v := c.Query("from"); v != "" {
		t, _, err := parseWhen(v)
		if err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, dateOnly, err := parseWhen(v)
		if err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
		if dateOnly {
			t = t.Add(24 * time.Hour)
		}
		f.To = t
	}
	f.Pair = c.Query("pair")
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("limit: must be a non-negative integer")
		}
		f.Limit = n
	}
	return f, nil
}

func parseWhen(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, false, err
}

func (s *Server) handleListTrades(c *gin.Context) {
	trades, ok := s.trades(c)
	if !ok {
		return
	}
	if trades == nil {
		trades = []journal.Trade{}
	}
	successResponse(c, http.StatusOK, trades)
}

func (s *Server) handleCreateTrade(c *gin.Context) {
	var in journal.TradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		if err == io.EOF {
			errorResponse(c, http.StatusBadRequest, "Invalid request: empty body")
			return
		}
		errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if in.Denomination == "" {
		in.Denomination = string(s.config.Denomination)
	}

	t, err := s.book.Add(c.Request.Context(), in)
	if err != nil {
		s.failWith(c, err)
		return
	}
	successResponse(c, http.StatusCreated, t)
}

func (s *Server) handleGetTrade(c *gin.Context) {
	t, err := s.book.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failWith(c, err)
		return
	}
	successResponse(c, http.StatusOK, t)
}

func (s *Server) handleDeleteTrade(c *gin.Context) {
	id := c.Param("id")
	if err := s.book.Delete(c.Request.Context(), id); err != nil {
		s.failWith(c, err)
		return
	}
	successResponse(c, http.StatusOK, gin.H{"deleted": id})
}
