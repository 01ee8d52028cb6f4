// Package server exposes the apportionment engines over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness probe
//	POST /v1/biproportional body: problem JSON, response: report JSON
//	POST /v1/divisor        body: divisor problem JSON, response: divisor report JSON
//
// Input errors map to 400, degenerate inputs to 422, oversized bodies to 413
// and non-convergence to 500.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/katalvlaran/apportion/biprop"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/internal/config"
	"github.com/katalvlaran/apportion/internal/inputfile"
	"github.com/katalvlaran/apportion/internal/report"
)

// Server routes API requests. Each request is an independent engine run.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	router chi.Router
}

// New builds a Server using cfg.Engine for every run.
func New(cfg config.Config, logger *log.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/biproportional", s.handleBiproportional)
		r.Post("/divisor", s.handleDivisor)
	})
	s.router = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBiproportional(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	p, err := inputfile.Decode(body, inputfile.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	in, err := p.Input()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := biprop.Apportion(in, s.cfg.Engine.Options()...)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runID := uuid.New()
	if res.HasTies() {
		s.logger.Warn("Result contains ties", "run", runID, "cells", len(res.TiedCells()))
	}
	s.respond(w, http.StatusOK, report.FromResult(p, res, runID))
}

func (s *Server) handleDivisor(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	p, err := inputfile.DecodeDivisor(body, inputfile.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	weights, err := p.Weights()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := divisor.Apportion(weights, p.Seats)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, report.FromDivisorResult(p, res, uuid.New()))
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("Rejected request", "path", r.URL.Path, "err", err)
	}
	s.respond(w, status, errorBody{Error: err.Error(), RequestID: middleware.GetReqID(r.Context())})
}

// statusFor maps engine and decoding errors to HTTP status codes.
func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, inputfile.ErrInvalidProblem),
		errors.Is(err, biprop.ErrInvalidInput),
		errors.Is(err, biprop.ErrInconsistentMargins),
		errors.Is(err, divisor.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, biprop.ErrDegenerateInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := report.WriteJSON(w, v); err != nil {
		s.logger.Error("Write response", "err", err)
	}
}
