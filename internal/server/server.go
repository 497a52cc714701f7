// Package server exposes the pipeline's HTTP surface: a liveness probe and a
// synchronous batch trigger.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"deedflow/internal/logger"
)

// BatchRunner triggers one batch pass over pending documents.
type BatchRunner interface {
	ProcessPending(ctx context.Context) error
}

// Server is the pipeline's HTTP server.
type Server struct {
	httpServer *http.Server
	runner     BatchRunner
	log        zerolog.Logger
}

// New creates a server bound to addr that triggers the given runner.
func New(addr string, runner BatchRunner) *Server {
	s := &Server{
		runner: runner,
		log:    logger.WithComponent("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /process", s.handleProcess)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// No write timeout: POST /process runs a full batch pass inline.
		IdleTimeout: 120 * time.Second,
	}

	return s
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's HTTP handler (for testing).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handleRoot is the liveness probe.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// handleProcess triggers one synchronous batch pass. The response is a fixed
// success payload regardless of per-document outcomes; true outcomes are
// observable only via each document's status field.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.ProcessPending(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("Batch pass failed")
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Documents processed successfully"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("Failed to write response")
	}
}
