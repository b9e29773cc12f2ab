package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore persists sessions as JSONB snapshots, one row per
// session. A host uses it when learners should be able to resume after a
// server restart.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store and ensures its table
// exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS learning_sessions (
			id         TEXT PRIMARY KEY,
			state      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure sessions table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Create(ctx context.Context, st *State) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if st.ID == "" {
		return fmt.Errorf("session id is required")
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	st.UpdatedAt = st.CreatedAt

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO learning_sessions (id, state, created_at, updated_at)
		 VALUES ($1, $2::jsonb, $3, $3)`,
		st.ID, string(data), st.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*State, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM learning_sessions WHERE id = $1`,
		id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	if st.UnderstandingTally == nil {
		st.UnderstandingTally = make(map[string]int)
	}
	return &st, nil
}

func (s *PostgresStore) Save(ctx context.Context, st *State) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	st.UpdatedAt = time.Now()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	cmd, err := s.pool.Exec(ctx,
		`UPDATE learning_sessions SET state = $2::jsonb, updated_at = $3 WHERE id = $1`,
		st.ID, string(data), st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, st.ID)
	}
	return nil
}
