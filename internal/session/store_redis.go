package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// RedisStore keeps sessions as JSON blobs with a sliding TTL. Suited for
// hosts that want cheap resumption without a relational database.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. ttl <= 0 selects the
// default of 24h.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "tutor:session:" + id
}

func (s *RedisStore) Create(ctx context.Context, st *State) error {
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

	ok, err := s.client.SetNX(ctx, sessionKey(st.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session already exists: %s", st.ID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load session: %w", err)
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

func (s *RedisStore) Save(ctx context.Context, st *State) error {
	st.UpdatedAt = time.Now()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// XX: only overwrite an existing key, refreshing the TTL.
	ok, err := s.client.SetXX(ctx, sessionKey(st.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, st.ID)
	}
	return nil
}
