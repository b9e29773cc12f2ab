package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event types emitted by the engine.
const (
	EventSessionStarted  = "session_started"
	EventTurnCompleted   = "turn_completed"
	EventConceptAdvanced = "concept_advanced"
	EventTopicCompleted  = "topic_completed"
	EventTopicSwitched   = "topic_switched"
)

// Event is one progression event, logged best-effort for diagnosis.
type Event struct {
	SessionID string
	Type      string
	Data      map[string]any
	CreatedAt time.Time
}

// EventLogger defines event logging behavior.
type EventLogger interface {
	LogEvent(event Event) error
}

// NopEventLogger ignores all events.
type NopEventLogger struct{}

func (NopEventLogger) LogEvent(Event) error {
	return nil
}

// MemoryEventLogger stores events in memory for tests.
type MemoryEventLogger struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryEventLogger() *MemoryEventLogger {
	return &MemoryEventLogger{events: []Event{}}
}

func (l *MemoryEventLogger) LogEvent(event Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	return nil
}

func (l *MemoryEventLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event{}, l.events...)
}

// PostgresEventLogger appends events to the learning_events table.
type PostgresEventLogger struct {
	pool *pgxpool.Pool
}

// NewPostgresEventLogger creates the logger and ensures its table exists.
func NewPostgresEventLogger(ctx context.Context, pool *pgxpool.Pool) (*PostgresEventLogger, error) {
	if pool == nil {
		return nil, fmt.Errorf("event logger pool is nil")
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS learning_events (
			id         BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			data       JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure events table: %w", err)
	}

	return &PostgresEventLogger{pool: pool}, nil
}

func (l *PostgresEventLogger) LogEvent(event Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if event.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	payload := event.Data
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = l.pool.Exec(ctx,
		`INSERT INTO learning_events (session_id, event_type, data, created_at)
		 VALUES ($1, $2, $3::jsonb, $4)`,
		event.SessionID,
		event.Type,
		string(data),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	slog.Debug("event logged",
		"type", event.Type,
		"session_id", event.SessionID,
	)
	return nil
}
