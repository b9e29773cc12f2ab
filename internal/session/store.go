package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when a session id is unknown to the store.
var ErrNotFound = errors.New("session not found")

// Store persists session snapshots. Implementations must store and
// return whole snapshots atomically; the engine serializes writers per
// session.
type Store interface {
	Create(ctx context.Context, st *State) error
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, st *State) error
}

// MemoryStore is the in-process Store used by default and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*State)}
}

func (s *MemoryStore) Create(_ context.Context, st *State) error {
	if st.ID == "" {
		return fmt.Errorf("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[st.ID]; exists {
		return fmt.Errorf("session already exists: %s", st.ID)
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	st.UpdatedAt = st.CreatedAt
	s.sessions[st.ID] = st.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return st.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[st.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, st.ID)
	}
	st.UpdatedAt = time.Now()
	s.sessions[st.ID] = st.Clone()
	return nil
}
