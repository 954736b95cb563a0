// Package api serves the journal over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/logging"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/risk"
)

// Config holds server configuration
type Config struct {
	Addr           string
	AllowOrigins   []string
	ProductionMode bool

	// Instrument is used by the sizing and P&L calculators when a request
	// does not name one.
	Instrument   string
	StartBalance float64
	IDRPerUSD    float64
	Policy       risk.Policy

	// Denomination is the balance credited when a new trade names none.
	Denomination market.Denomination
}

// Server represents the HTTP API server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	book       *journal.Book
	config     Config
	logger     zerolog.Logger
}

// NewServer wires routes over book.
func NewServer(config Config, book *journal.Book, logger zerolog.Logger) *Server {
	if config.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	if config.Instrument == "" {
		config.Instrument = market.DefaultInstrument
	}
	if config.IDRPerUSD == 0 {
		config.IDRPerUSD = market.DefaultIDRPerUSD
	}
	if config.Denomination == "" {
		config.Denomination = market.USD
	}

	s := &Server{
		router: gin.New(),
		book:   book,
		config: config,
		logger: logging.Component(logger, "API"),
	}

	s.router.Use(s.requestLogger())
	s.router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.AllowOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	s.router.Use(cors.New(corsConfig))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/trades", s.handleListTrades)
		api.POST("/trades", s.handleCreateTrade)
		api.GET("/trades/:id", s.handleGetTrade)
		api.DELETE("/trades/:id", s.handleDeleteTrade)

		api.GET("/analytics", s.handleAnalytics)
		api.GET("/analytics/monthly", s.handleMonthly)
		api.GET("/analytics/equity", s.handleEquity)
		api.GET("/balances", s.handleBalances)

		api.POST("/sizing", s.handleSizing)
		api.POST("/pnl", s.handlePnL)

		api.GET("/events", s.handleEvents)
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // event streams stay open
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info().Str("addr", s.config.Addr).Msg("starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := s.logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = s.logger.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.book.Balances(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// errorResponse is a helper to send error responses
func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}

// successResponse is a helper to send success responses
func successResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// failWith maps domain errors onto status codes.
func (s *Server) failWith(c *gin.Context, err error) {
	var ve *journal.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   true,
			"message": "invalid trade",
			"fields":  ve.Fields,
		})
	case errors.Is(err, journal.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, risk.ErrZeroRiskDistance),
		errors.Is(err, risk.ErrInvalidLevels),
		errors.Is(err, risk.ErrNonPositivePrice),
		errors.Is(err, risk.ErrInvalidInput):
		errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		errorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
