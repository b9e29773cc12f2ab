package ai

import (
	"context"
	"errors"
	"testing"
)

func TestRouter_FallbackChain(t *testing.T) {
	failing := &MockProvider{Err: errors.New("boom")}
	working := NewMockProvider("answer")

	r := NewRouter()
	r.Register("first", failing)
	r.Register("second", working)

	resp, err := r.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "answer" {
		t.Errorf("Content = %q, want answer", resp.Content)
	}
	if failing.Calls() != 1 || working.Calls() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", failing.Calls(), working.Calls())
	}
}

func TestRouter_AllProvidersFail(t *testing.T) {
	r := NewRouter()
	r.Register("only", &MockProvider{Err: errors.New("down")})

	if _, err := r.Complete(context.Background(), CompletionRequest{}); err == nil {
		t.Error("Complete() expected error when every provider fails")
	}
}

func TestRouter_NoProviders(t *testing.T) {
	r := NewRouter()
	if r.HasProvider() {
		t.Error("HasProvider() = true for empty router")
	}
	if _, err := r.Complete(context.Background(), CompletionRequest{}); err == nil {
		t.Error("Complete() expected error with no providers")
	}
}

func TestRouter_ContextCancelled(t *testing.T) {
	working := NewMockProvider("unused")
	r := NewRouter()
	r.Register("mock", working)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Complete(ctx, CompletionRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Complete() error = %v, want context.Canceled", err)
	}
	if working.Calls() != 0 {
		t.Errorf("provider called %d times after cancellation, want 0", working.Calls())
	}
}
