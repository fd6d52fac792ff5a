package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/katalvlaran/episim/builder"
	"github.com/katalvlaran/episim/epidemic"
	"github.com/katalvlaran/episim/internal/session"
)

const (
	statusSuccess      = "success"
	statusError        = "error"
	statusNoSimulation = "no_simulation"

	maxBodyBytes = 1 << 20
)

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

type infectRequest struct {
	NodeID *int `json:"node_id"`
}

type runRequest struct {
	MaxSteps int `json:"max_steps"`
}

func (s *Server) registerHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", s.handleInitialize)
	mux.HandleFunc("GET /api/sessions", s.handleList)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDelete)
	mux.HandleFunc("POST /api/sessions/{id}/start", s.handleStart)
	mux.HandleFunc("POST /api/sessions/{id}/step", s.handleStep)
	mux.HandleFunc("POST /api/sessions/{id}/run", s.handleRun)
	mux.HandleFunc("POST /api/sessions/{id}/infect", s.handleInfect)
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /api/sessions/{id}/state", s.handleState)
	mux.HandleFunc("GET /api/sessions/{id}/degrees", s.handleDegrees)
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req session.InitRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeFailure(w, err)
		return
	}

	res, err := s.registry.Initialize(r.Context(), req)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, struct {
		Status string `json:"status"`
		*session.InitResult
	}{statusSuccess, res})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   statusSuccess,
		"sessions": s.registry.List(),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(r.PathValue("id")); err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  statusSuccess,
		"message": "Session deleted",
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req session.StartRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeFailure(w, err)
		return
	}

	st, err := s.registry.Start(r.PathValue("id"), req)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*session.State
	}{statusSuccess, st})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	out, err := s.registry.Step(r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*session.StepOutcome
	}{statusSuccess, out})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeFailure(w, err)
		return
	}

	out, err := s.registry.Run(r.Context(), r.PathValue("id"), req.MaxSteps)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*session.RunOutcome
	}{statusSuccess, out})
}

func (s *Server) handleInfect(w http.ResponseWriter, r *http.Request) {
	var req infectRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeFailure(w, err)
		return
	}
	if req.NodeID == nil {
		s.writeFailure(w, fmt.Errorf("node_id is required: %w", errBadRequest))
		return
	}

	out, err := s.registry.Infect(r.PathValue("id"), *req.NodeID)
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*session.InfectOutcome
	}{statusSuccess, out})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Reset(r.PathValue("id")); err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  statusSuccess,
		"message": "Simulation reset",
	})
}

// handleState answers 200 with status "no_simulation" for a session that
// was never started.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.registry.State(r.PathValue("id"))
	if errors.Is(err, session.ErrNoSimulation) {
		s.writeJSON(w, http.StatusOK, map[string]string{
			"status":  statusNoSimulation,
			"message": "No active simulation",
		})
		return
	}
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*session.State
	}{statusSuccess, st})
}

func (s *Server) handleDegrees(w http.ResponseWriter, r *http.Request) {
	rep, err := s.registry.Degrees(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*session.DegreeReport
	}{statusSuccess, rep})
}

// decodeBody reads an optional JSON body into dst. An empty body leaves dst
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON body: %v: %w", err, errBadRequest)
	}

	return nil
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, builder.ErrConfiguration),
		errors.Is(err, epidemic.ErrInvalidProbability),
		errors.Is(err, session.ErrNetworkTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoSimulation):
		return http.StatusConflict
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure reports err with its mapped status. Internal errors are
// logged and hidden from the client.
func (s *Server) writeFailure(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		msg = "internal server error"
	}
	s.writeError(w, code, msg)
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]string{
		"status":  statusError,
		"message": message,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}
