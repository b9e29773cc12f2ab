package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/engine"
)

const wsTurnTimeout = 90 * time.Second

// wsInbound is one learner message on the dialog socket.
type wsInbound struct {
	Message string `json:"message"`
}

// wsOutbound wraps a turn result or an error for the socket client.
type wsOutbound struct {
	Turn  *engine.TurnResult `json:"turn,omitempty"`
	Error string             `json:"error,omitempty"`
	// Retryable signals the same message may be sent again.
	Retryable bool `json:"retryable,omitempty"`
}

// handleDialogSocket runs a live dialog over a WebSocket. The session
// must already exist; its id is passed as ?session=.
func (s *server) handleDialogSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session query parameter is required")
		return
	}
	if _, err := s.engine.Progress(r.Context(), sessionID); err != nil {
		writeEngineError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "session_id", sessionID, "error", err)
		return
	}
	defer conn.CloseNow()

	slog.Info("dialog socket opened", "session_id", sessionID)

	ctx := r.Context()
	for {
		var in wsInbound
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				slog.Info("dialog socket closed", "session_id", sessionID)
			} else if ctx.Err() == nil {
				slog.Warn("dialog socket read failed", "session_id", sessionID, "error", err)
			}
			return
		}

		out := s.runTurn(ctx, sessionID, in.Message)
		if err := wsjson.Write(ctx, conn, out); err != nil {
			slog.Warn("dialog socket write failed", "session_id", sessionID, "error", err)
			return
		}
	}
}

func (s *server) runTurn(ctx context.Context, sessionID, message string) wsOutbound {
	turnCtx, cancel := context.WithTimeout(ctx, wsTurnTimeout)
	defer cancel()

	result, err := s.engine.SubmitTurn(turnCtx, sessionID, message)
	if err != nil {
		retryable := errors.Is(err, engine.ErrOracleUnavailable) ||
			errors.Is(err, engine.ErrMalformedJudgment)
		return wsOutbound{Error: err.Error(), Retryable: retryable}
	}
	return wsOutbound{Turn: result}
}
