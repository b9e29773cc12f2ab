// Package engine implements the adaptive tutoring dialog state machine.
// It is the only writer of session state: each turn reads a snapshot,
// consults the oracle, and applies the judgment all-or-nothing.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/curriculum"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/media"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/oracle"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/session"
)

const defaultSourceThreshold = 3

// Reasons for attaching reference sources to a turn response.
const (
	SourcesMastered = "mastered" // concept understood, go deeper
	SourcesSupport  = "support"  // learner stuck, help for later
)

// Oracle judges learner input and proposes the next tutor message.
type Oracle interface {
	RequestJudgment(ctx context.Context, history []session.Turn, tc oracle.TaskContext) (oracle.Judgment, error)
}

// Config holds dependencies for the engine.
type Config struct {
	Registry *curriculum.Registry
	Media    *media.Index
	Oracle   Oracle
	Store    session.Store
	Events   EventLogger
	Scoring  ScoringPolicy
	// SourceThreshold is the attempt count at which detected
	// frustration also discloses reference sources (default 3).
	SourceThreshold int
}

// Engine drives the per-turn progression policy.
type Engine struct {
	registry        *curriculum.Registry
	media           *media.Index
	oracle          Oracle
	store           session.Store
	events          EventLogger
	scoring         ScoringPolicy
	sourceThreshold int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an engine. Registry, Media and Oracle are required; the
// store defaults to in-memory, events to a no-op logger, scoring to
// tiered.
func New(cfg Config) *Engine {
	store := cfg.Store
	if store == nil {
		store = session.NewMemoryStore()
	}
	var events EventLogger = cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	scoring := cfg.Scoring
	if !scoring.Valid() {
		scoring = ScoringTiered
	}
	threshold := cfg.SourceThreshold
	if threshold <= 0 {
		threshold = defaultSourceThreshold
	}

	return &Engine{
		registry:        cfg.Registry,
		media:           cfg.Media,
		oracle:          cfg.Oracle,
		store:           store,
		events:          events,
		scoring:         scoring,
		sourceThreshold: threshold,
		locks:           make(map[string]*sync.Mutex),
	}
}

// StartResult is the response to starting a session or switching topics.
type StartResult struct {
	SessionID     string     `json:"session_id"`
	TopicTitle    string     `json:"topic_title"`
	Message       string     `json:"tutor_message"`
	ActiveConcept string     `json:"active_concept"`
	Media         *media.Ref `json:"media,omitempty"`
}

// TurnResult is the structured response to one dialog turn. Presentation
// (banners, emphasis) is left to the rendering layer.
type TurnResult struct {
	Message       string     `json:"tutor_message"`
	Score         int        `json:"score"`
	ActiveConcept string     `json:"active_concept"`
	HelpStage     int        `json:"help_stage"`
	Media         *media.Ref `json:"media,omitempty"`
	Sources       []string   `json:"sources,omitempty"`
	SourcesReason string     `json:"sources_reason,omitempty"`
	NextConcept   string     `json:"next_concept,omitempty"`
	TopicComplete bool       `json:"topic_complete,omitempty"`
}

// Progress is the session's summary for the learner.
type Progress struct {
	Name               string         `json:"name"`
	Score              int            `json:"score"`
	TurnsAnswered      int            `json:"turns_answered"`
	UnderstandingTally map[string]int `json:"understanding_tally"`
	ActiveTopicTitle   string         `json:"active_topic_title"`
}

// StartSession opens a learning session on the first registry topic and
// returns the tutor's opening question.
func (e *Engine) StartSession(ctx context.Context, name string) (*StartResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}

	topic := e.registry.FirstTopic()
	judgment, err := e.openTopic(ctx, topic)
	if err != nil {
		slog.Error("session start failed", "name", name, "error", err)
		return nil, err
	}

	st := &session.State{
		ID:                 session.NewID(),
		Name:               name,
		TopicID:            topic.ID,
		UnderstandingTally: make(map[string]int),
	}
	st.AppendTurn(session.Turn{Role: session.RoleTutor, Content: judgment.Message})

	if err := e.store.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	e.logEvent(Event{SessionID: st.ID, Type: EventSessionStarted, Data: map[string]any{
		"name":  name,
		"topic": topic.ID,
	}})
	slog.Info("session started", "session_id", st.ID, "topic", topic.ID)

	return e.startResult(st.ID, topic, judgment), nil
}

// SubmitTurn processes one learner utterance. On oracle failure the
// session is byte-for-byte unchanged and the same turn may be resubmitted.
func (e *Engine) SubmitTurn(ctx context.Context, sessionID, utterance string) (*TurnResult, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, fmt.Errorf("%w: utterance must not be empty", ErrValidation)
	}

	unlock := e.lockSession(sessionID)
	defer unlock()

	st, err := e.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	topic, err := e.topicOf(st)
	if err != nil {
		return nil, err
	}

	concept, _ := topic.ConceptAt(st.ConceptIndex)
	attempt := st.Attempts + 1

	// The oracle sees the prospective history including this utterance;
	// the stored session is not touched until the judgment is in.
	prospective := append(append([]session.Turn(nil), st.History...),
		session.Turn{Role: session.RoleLearner, Content: utterance})

	judgment, err := e.oracle.RequestJudgment(ctx, prospective, oracle.TaskContext{
		TopicTitle:       topic.Title,
		TopicDescription: topic.Description,
		Concept:          concept,
		Attempt:          attempt,
		MediaIDs:         e.media.IDs(topic.ID),
	})
	if err != nil {
		slog.Error("turn failed",
			"session_id", sessionID,
			"turn", st.TurnsAnswered+1,
			"error", err,
		)
		return nil, err
	}

	st.AppendTurn(session.Turn{Role: session.RoleLearner, Content: utterance, Annotation: judgment.Understanding})
	st.AppendTurn(session.Turn{Role: session.RoleTutor, Content: judgment.Message})
	st.Attempts = attempt
	st.Score += e.scoring.Points(judgment.Understanding)
	st.TurnsAnswered++
	if judgment.Understanding != "" {
		st.UnderstandingTally[judgment.Understanding]++
	}

	result := &TurnResult{
		Message:       judgment.Message,
		ActiveConcept: concept,
		HelpStage:     judgment.HelpStage,
		Media:         e.resolveMedia(topic.ID, judgment),
	}

	sourcesEligible := judgment.OfferSources ||
		(judgment.FrustrationDetected && attempt >= e.sourceThreshold)

	if judgment.ConceptUnderstood && !st.TopicDone {
		st.Attempts = 0
		if next, ok := topic.ConceptAt(st.ConceptIndex + 1); ok {
			st.ConceptIndex++
			result.NextConcept = next
			result.ActiveConcept = next
			e.logEvent(Event{SessionID: st.ID, Type: EventConceptAdvanced, Data: map[string]any{
				"topic":   topic.ID,
				"concept": next,
			}})
		} else {
			st.TopicDone = true
			e.logEvent(Event{SessionID: st.ID, Type: EventTopicCompleted, Data: map[string]any{
				"topic": topic.ID,
			}})
		}
	}
	result.TopicComplete = st.TopicDone

	// Topic completion always discloses the sources, even when the
	// judgment did not ask for them.
	if sourcesEligible || result.TopicComplete {
		result.Sources = topic.Sources
		if judgment.ConceptUnderstood {
			result.SourcesReason = SourcesMastered
		} else {
			result.SourcesReason = SourcesSupport
		}
	}

	result.Score = st.Score

	if err := e.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	e.logEvent(Event{SessionID: st.ID, Type: EventTurnCompleted, Data: map[string]any{
		"turn":       st.TurnsAnswered,
		"attempt":    attempt,
		"understood": judgment.ConceptUnderstood,
		"help_stage": judgment.HelpStage,
		"score":      st.Score,
	}})

	return result, nil
}

// SwitchTopic moves the session to another topic, discarding per-topic
// progress (history, attempts, concept pointer). Score survives.
func (e *Engine) SwitchTopic(ctx context.Context, sessionID, topicID string) (*StartResult, error) {
	unlock := e.lockSession(sessionID)
	defer unlock()

	st, err := e.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	topic, err := e.registry.Topic(topicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	judgment, err := e.openTopic(ctx, topic)
	if err != nil {
		slog.Error("topic switch failed",
			"session_id", sessionID,
			"topic", topicID,
			"error", err,
		)
		return nil, err
	}

	st.TopicID = topic.ID
	st.ConceptIndex = 0
	st.Attempts = 0
	st.TopicDone = false
	st.History = nil
	st.AppendTurn(session.Turn{Role: session.RoleTutor, Content: judgment.Message})

	if err := e.store.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	e.logEvent(Event{SessionID: st.ID, Type: EventTopicSwitched, Data: map[string]any{
		"topic": topic.ID,
	}})
	slog.Info("topic switched", "session_id", st.ID, "topic", topic.ID)

	return e.startResult(st.ID, topic, judgment), nil
}

// Progress returns the session's summary without mutating anything.
func (e *Engine) Progress(ctx context.Context, sessionID string) (*Progress, error) {
	st, err := e.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	topic, err := e.topicOf(st)
	if err != nil {
		return nil, err
	}

	tally := make(map[string]int, len(st.UnderstandingTally))
	for k, v := range st.UnderstandingTally {
		tally[k] = v
	}

	return &Progress{
		Name:               st.Name,
		Score:              st.Score,
		TurnsAnswered:      st.TurnsAnswered,
		UnderstandingTally: tally,
		ActiveTopicTitle:   topic.Title,
	}, nil
}

// openTopic asks the oracle for a topic's opening question.
func (e *Engine) openTopic(ctx context.Context, topic curriculum.Topic) (oracle.Judgment, error) {
	concept, _ := topic.ConceptAt(0)
	return e.oracle.RequestJudgment(ctx, nil, oracle.TaskContext{
		TopicTitle:       topic.Title,
		TopicDescription: topic.Description,
		Concept:          concept,
		MediaIDs:         e.media.IDs(topic.ID),
		Opening:          true,
	})
}

func (e *Engine) startResult(sessionID string, topic curriculum.Topic, judgment oracle.Judgment) *StartResult {
	concept, _ := topic.ConceptAt(0)
	result := &StartResult{
		SessionID:     sessionID,
		TopicTitle:    topic.Title,
		Message:       judgment.Message,
		ActiveConcept: concept,
	}
	// The opening question often names the concept directly; suggest a
	// matching image the same way regular turns do.
	if ref := e.resolveMedia(topic.ID, judgment); ref != nil {
		result.Media = ref
	} else if ref, ok := e.media.LookupByKeyword(topic.ID, judgment.Message); ok {
		result.Media = &ref
	}
	return result
}

// resolveMedia maps a judgment's media request to a concrete ref. A hint
// that resolves nowhere is silently dropped; missing images are never an
// error for the learner.
func (e *Engine) resolveMedia(topicID string, judgment oracle.Judgment) *media.Ref {
	if !judgment.ShowMedia {
		return nil
	}
	if judgment.MediaHint != "" {
		if ref, ok := e.media.LookupByID(topicID, judgment.MediaHint); ok {
			return &ref
		}
		return nil
	}
	if ref, ok := e.media.LookupByKeyword(topicID, judgment.Message); ok {
		return &ref
	}
	return nil
}

func (e *Engine) getSession(ctx context.Context, id string) (*session.State, error) {
	st, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	return st, nil
}

func (e *Engine) topicOf(st *session.State) (curriculum.Topic, error) {
	topic, err := e.registry.Topic(st.TopicID)
	if err != nil {
		return curriculum.Topic{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return topic, nil
}

// lockSession serializes turns per session. Different sessions proceed
// in parallel.
func (e *Engine) lockSession(id string) func() {
	e.mu.Lock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (e *Engine) logEvent(event Event) {
	if err := e.events.LogEvent(event); err != nil {
		slog.Warn("event logging failed", "type", event.Type, "error", err)
	}
}
