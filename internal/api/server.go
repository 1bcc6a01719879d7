// Package api exposes the booking resource over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"roombooker/internal/auth"
	"roombooker/internal/config"
	"roombooker/internal/database"
	"roombooker/internal/events"
)

// HTTPServer wires the booking handlers, the auth gate and the middleware
// stack onto a stdlib mux.
type HTTPServer struct {
	cfg    *config.Config
	store  *database.Store
	gate   *auth.Gate
	bus    *events.Bus
	logger zerolog.Logger
	server *http.Server
}

func NewHTTPServer(
	cfg *config.Config,
	store *database.Store,
	gate *auth.Gate,
	bus *events.Bus,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:    cfg,
		store:  store,
		gate:   gate,
		bus:    bus,
		logger: logger.With().Str("component", "http").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings", srv.handleBookings)
	mux.HandleFunc("/api/bookings/", srv.handleBooking)
	mux.HandleFunc("/api/auth", srv.handleAuth)
	mux.HandleFunc("/api/health", srv.handleHealth)

	handler := recoverMiddleware(srv.logger, cfg.App.Environment, loggingMiddleware(srv.logger, mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler exposes the full middleware-wrapped handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
