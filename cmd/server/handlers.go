package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/curriculum"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/engine"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/report"
)

const maxBodyBytes = 16 << 10

// healthChecker is implemented by the database and cache wrappers.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type server struct {
	engine   *engine.Engine
	registry *curriculum.Registry
	ready    []healthChecker
}

func newServer(eng *engine.Engine, registry *curriculum.Registry, ready ...healthChecker) *server {
	return &server{engine: eng, registry: registry, ready: ready}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /api/topics", s.handleListTopics)
	mux.HandleFunc("POST /api/sessions", s.handleStartSession)
	mux.HandleFunc("POST /api/sessions/{id}/turns", s.handleSubmitTurn)
	mux.HandleFunc("POST /api/sessions/{id}/topic", s.handleSwitchTopic)
	mux.HandleFunc("GET /api/sessions/{id}/progress", s.handleProgress)
	mux.HandleFunc("GET /api/sessions/{id}/report.xlsx", s.handleReport)
	mux.HandleFunc("GET /ws", s.handleDialogSocket)
	return mux
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	for _, c := range s.ready {
		if err := c.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type topicSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Concepts    int    `json:"concepts"`
	Difficulty  int    `json:"difficulty"`
}

func (s *server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	ids := s.registry.TopicIDs()
	topics := make([]topicSummary, 0, len(ids))
	for _, id := range ids {
		t, err := s.registry.Topic(id)
		if err != nil {
			continue
		}
		topics = append(topics, topicSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Concepts:    len(t.Concepts),
			Difficulty:  t.Difficulty,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

type startSessionRequest struct {
	Name string `json:"name"`
}

func (s *server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.engine.StartSession(r.Context(), req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type submitTurnRequest struct {
	Message string `json:"message"`
}

func (s *server) handleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req submitTurnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.engine.SubmitTurn(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type switchTopicRequest struct {
	TopicID string `json:"topic_id"`
}

func (s *server) handleSwitchTopic(w http.ResponseWriter, r *http.Request) {
	var req switchTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.engine.SwitchTopic(r.Context(), r.PathValue("id"), req.TopicID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.engine.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	progress, err := s.engine.Progress(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="lernbericht.xlsx"`)
	if err := report.WriteWorkbook(w, progress, time.Now()); err != nil {
		slog.Error("report generation failed", "session_id", r.PathValue("id"), "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeEngineError maps engine errors to HTTP status codes. Oracle
// failures surface as 502 so clients know the turn may be resubmitted.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrOracleUnavailable), errors.Is(err, engine.ErrMalformedJudgment):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("unhandled engine error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}
