package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Router tries registered providers in order until one answers. The
// tutoring engine treats all of them as a single oracle.
type Router struct {
	providers map[string]Provider
	fallback  []string // ordered fallback chain
	mu        sync.RWMutex
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		providers: make(map[string]Provider),
	}
}

// Register appends a provider to the fallback chain.
func (r *Router) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
	r.fallback = append(r.fallback, name)
}

// Complete sends the request to the first provider that succeeds.
// Context cancellation aborts the chain immediately.
func (r *Router) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lastErr error
	for _, name := range r.fallback {
		if err := ctx.Err(); err != nil {
			return CompletionResponse{}, err
		}

		resp, err := r.providers[name].Complete(ctx, req)
		if err != nil {
			slog.Warn("completion provider failed, trying next",
				"provider", name,
				"error", err,
			)
			lastErr = err
			continue
		}

		slog.Debug("completion request served",
			"provider", name,
			"model", resp.Model,
			"input_tokens", resp.InputTokens,
			"output_tokens", resp.OutputTokens,
		)
		return resp, nil
	}

	if lastErr != nil {
		return CompletionResponse{}, fmt.Errorf("all completion providers failed: %w", lastErr)
	}
	return CompletionResponse{}, fmt.Errorf("no completion providers registered")
}

// HealthCheck reports healthy if any provider in the chain is reachable.
func (r *Router) HealthCheck(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lastErr error
	for _, name := range r.fallback {
		if lastErr = r.providers[name].HealthCheck(ctx); lastErr == nil {
			return nil
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no completion providers registered")
}

// HasProvider returns true if at least one provider is registered.
func (r *Router) HasProvider() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers) > 0
}
