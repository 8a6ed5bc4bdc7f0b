// Package api exposes the dashboard HTTP API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handlers "github.com/naratip/goldwatch/internal/api/handler/api"
	"github.com/naratip/goldwatch/internal/api/middleware"
	"github.com/naratip/goldwatch/internal/metrics"
)

// App is the application surface the API serves.
type App interface {
	handlers.PriceApp
	handlers.AnalysisApp
	handlers.HistoryApp
	handlers.AlertsApp
}

// Server represents the goldwatch HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// NewServer creates a new HTTP server.
func NewServer(cfg Config, app App, logger *zap.Logger, reg *metrics.Registry) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, app, reg)

	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(cfg.APIKey)(handler)
	if reg != nil {
		handler = metrics.HTTPMiddleware(reg)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, app App, reg *metrics.Registry) {
	priceHandler := handlers.NewPriceHandler(app)
	analysisHandler := handlers.NewAnalysisHandler(app)
	historyHandler := handlers.NewHistoryHandler(app)
	alertsHandler := handlers.NewAlertsHandler(app)
	profitHandler := handlers.NewProfitHandler(app)

	s.mux.HandleFunc("GET /api/price", priceHandler.Latest)
	s.mux.HandleFunc("GET /api/analysis", analysisHandler.Get)
	s.mux.HandleFunc("GET /api/history", historyHandler.List)
	s.mux.HandleFunc("GET /api/stats", historyHandler.Stats)

	s.mux.HandleFunc("GET /api/alerts", alertsHandler.List)
	s.mux.HandleFunc("POST /api/alerts", alertsHandler.Create)
	s.mux.HandleFunc("DELETE /api/alerts/{id}", alertsHandler.Delete)
	s.mux.HandleFunc("POST /api/alerts/{id}/toggle", alertsHandler.Toggle)

	s.mux.HandleFunc("POST /api/profit", profitHandler.Calculate)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if reg != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
