// Package session holds per-learner dialog state and its stores. A
// session lives for one learning run; all mutation goes through the
// engine, stores only persist whole snapshots.
package session

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Turn roles.
const (
	RoleLearner = "learner"
	RoleTutor   = "tutor"
)

// Turn is one utterance in the dialog history. Annotation carries the
// understanding label the oracle inferred for a learner turn.
type Turn struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Annotation string    `json:"annotation,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// State is the full per-learner session record. Score, TurnsAnswered and
// UnderstandingTally accumulate across topic switches; ConceptIndex,
// Attempts, History and TopicDone are per-topic and reset on switch.
type State struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	TopicID            string         `json:"active_topic_id"`
	ConceptIndex       int            `json:"active_concept_index"`
	Attempts           int            `json:"attempt_count"`
	Score              int            `json:"score"`
	TurnsAnswered      int            `json:"turns_answered"`
	UnderstandingTally map[string]int `json:"understanding_tally"`
	History            []Turn         `json:"history"`
	TopicDone          bool           `json:"topic_done"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Clone returns a deep copy. The engine mutates a clone and saves it only
// after the oracle call succeeded, so a failed turn never leaves partial
// state behind.
func (s *State) Clone() *State {
	c := *s
	c.History = append([]Turn(nil), s.History...)
	c.UnderstandingTally = make(map[string]int, len(s.UnderstandingTally))
	for k, v := range s.UnderstandingTally {
		c.UnderstandingTally[k] = v
	}
	return &c
}

// AppendTurn appends a turn to the history, stamping it if needed.
func (s *State) AppendTurn(t Turn) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.History = append(s.History, t)
}

// NewID returns a random 128-bit hex session id.
func NewID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
