package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/session"
)

func newState(id string) *session.State {
	return &session.State{
		ID:                 id,
		Name:               "Anna",
		TopicID:            "1_grundlagen",
		UnderstandingTally: map[string]int{},
	}
}

func TestMemoryStore_CreateGetSave(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	st := newState(session.NewID())
	if err := store.Create(ctx, st); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Anna" || got.TopicID != "1_grundlagen" {
		t.Errorf("Get() = %+v, want Anna/1_grundlagen", got)
	}

	got.Score = 10
	got.AppendTurn(session.Turn{Role: session.RoleLearner, Content: "Hallo"})
	if err := store.Save(ctx, got); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, err := store.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("Get() after Save error = %v", err)
	}
	if reloaded.Score != 10 || len(reloaded.History) != 1 {
		t.Errorf("reloaded = score %d, %d turns; want 10, 1", reloaded.Score, len(reloaded.History))
	}
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := session.NewMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_SaveNotFound(t *testing.T) {
	store := session.NewMemoryStore()

	err := store.Save(context.Background(), newState("ghost"))
	if !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Save() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	st := newState("dup")
	if err := store.Create(ctx, st); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, newState("dup")); err == nil {
		t.Error("Create() with duplicate id expected error")
	}
}

func TestMemoryStore_SnapshotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	st := newState("iso")
	if err := store.Create(ctx, st); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Mutating a returned snapshot must not leak into the store.
	got, _ := store.Get(ctx, "iso")
	got.Score = 999
	got.AppendTurn(session.Turn{Role: session.RoleLearner, Content: "leak?"})

	fresh, _ := store.Get(ctx, "iso")
	if fresh.Score != 0 || len(fresh.History) != 0 {
		t.Errorf("store leaked snapshot mutation: score %d, %d turns", fresh.Score, len(fresh.History))
	}
}

func TestState_Clone(t *testing.T) {
	st := newState("c1")
	st.UnderstandingTally["gut"] = 2
	st.AppendTurn(session.Turn{Role: session.RoleTutor, Content: "Frage 1"})

	c := st.Clone()
	c.UnderstandingTally["gut"] = 99
	c.History[0].Content = "geändert"
	c.AppendTurn(session.Turn{Role: session.RoleLearner, Content: "neu"})

	if st.UnderstandingTally["gut"] != 2 {
		t.Errorf("tally leaked through clone: %d", st.UnderstandingTally["gut"])
	}
	if st.History[0].Content != "Frage 1" || len(st.History) != 1 {
		t.Errorf("history leaked through clone: %+v", st.History)
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := session.NewID()
		if len(id) != 32 {
			t.Fatalf("NewID() length = %d, want 32", len(id))
		}
		if seen[id] {
			t.Fatalf("NewID() produced duplicate %s", id)
		}
		seen[id] = true
	}
}
