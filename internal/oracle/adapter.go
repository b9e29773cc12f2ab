// Package oracle adapts the external LLM into a structured tutoring
// judge. It builds the per-turn prompt, performs the system's only
// blocking I/O, and turns the raw reply into a validated Judgment.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/ai"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/session"
)

// ErrUnavailable is returned when the underlying completion call fails
// or times out. The session is untouched; the caller may retry the turn.
var ErrUnavailable = errors.New("oracle unavailable")

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 600
	defaultTemperature = 0.7
)

// Adapter requests judgments from a completion provider.
type Adapter struct {
	provider    ai.Provider
	policy      string
	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithPolicy replaces the default tutoring policy prompt.
func WithPolicy(policy string) Option {
	return func(a *Adapter) { a.policy = policy }
}

// WithTimeout bounds each oracle call.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithMaxTokens caps the oracle's reply length.
func WithMaxTokens(n int) Option {
	return func(a *Adapter) { a.maxTokens = n }
}

// New creates an adapter over the given provider (usually an ai.Router).
func New(provider ai.Provider, opts ...Option) *Adapter {
	a := &Adapter{
		provider:    provider,
		policy:      DefaultPolicy,
		timeout:     defaultTimeout,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RequestJudgment replays the dialog to the oracle with the current task
// framing and returns its validated judgment. It performs no retries
// beyond the parser's single strip-and-reparse attempt; the engine
// decides what a failure means.
func (a *Adapter) RequestJudgment(ctx context.Context, history []session.Turn, tc TaskContext) (Judgment, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.provider.Complete(ctx, ai.CompletionRequest{
		Messages:    buildMessages(a.policy, history, tc),
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return Judgment{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return ParseJudgment(resp.Content)
}
