// Package curriculum holds the static topic catalog the tutor teaches from.
// The registry is loaded once at startup and never mutated afterwards.
package curriculum

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a topic id is not in the registry.
var ErrNotFound = errors.New("topic not found")

// Registry is a read-only, ordered catalog of topics.
type Registry struct {
	order  []string
	topics map[string]Topic
}

// NewRegistry builds a registry from the given topics, preserving their
// order. Topics must have unique ids and a non-empty concept list.
func NewRegistry(topics ...Topic) (*Registry, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("registry needs at least one topic")
	}

	r := &Registry{topics: make(map[string]Topic, len(topics))}
	for _, t := range topics {
		if t.ID == "" {
			return nil, fmt.Errorf("topic %q has no id", t.Title)
		}
		if len(t.Concepts) == 0 {
			return nil, fmt.Errorf("topic %s has no concepts", t.ID)
		}
		if _, dup := r.topics[t.ID]; dup {
			return nil, fmt.Errorf("duplicate topic id %s", t.ID)
		}
		r.topics[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r, nil
}

// Topic returns the topic with the given id.
func (r *Registry) Topic(id string) (Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// TopicIDs returns all topic ids in registration order.
func (r *Registry) TopicIDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// FirstTopic returns the first topic in registration order. New sessions
// always start here.
func (r *Registry) FirstTopic() Topic {
	return r.topics[r.order[0]]
}
