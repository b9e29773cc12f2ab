package curriculum_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/curriculum"
)

func TestDefault_TopicOrder(t *testing.T) {
	reg := curriculum.Default()

	ids := reg.TopicIDs()
	want := []string{"1_grundlagen", "2_aufbau", "3_replikation", "4_vererbung"}
	if len(ids) != len(want) {
		t.Fatalf("TopicIDs() = %d topics, want %d", len(ids), len(want))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("TopicIDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}

	if reg.FirstTopic().ID != "1_grundlagen" {
		t.Errorf("FirstTopic().ID = %q, want 1_grundlagen", reg.FirstTopic().ID)
	}
}

func TestRegistry_Topic(t *testing.T) {
	reg := curriculum.Default()

	topic, err := reg.Topic("1_grundlagen")
	if err != nil {
		t.Fatalf("Topic(1_grundlagen) error = %v", err)
	}
	if topic.Title != "DNA-Grundlagen" {
		t.Errorf("Title = %q, want DNA-Grundlagen", topic.Title)
	}
	if len(topic.Concepts) == 0 {
		t.Error("Concepts is empty")
	}
}

func TestRegistry_Topic_NotFound(t *testing.T) {
	reg := curriculum.Default()

	_, err := reg.Topic("9_quantenbiologie")
	if !errors.Is(err, curriculum.ErrNotFound) {
		t.Errorf("Topic() error = %v, want ErrNotFound", err)
	}
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name   string
		topics []curriculum.Topic
	}{
		{"empty", nil},
		{"missing id", []curriculum.Topic{{Title: "X", Concepts: []string{"a"}}}},
		{"no concepts", []curriculum.Topic{{ID: "x", Title: "X"}}},
		{"duplicate id", []curriculum.Topic{
			{ID: "x", Concepts: []string{"a"}},
			{ID: "x", Concepts: []string{"b"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := curriculum.NewRegistry(tt.topics...); err == nil {
				t.Error("NewRegistry() expected error, got nil")
			}
		})
	}
}

func TestNewRegistryFromDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "01-zellen.yaml", `
id: zellen
title: Die Zelle
concepts:
  - Zellmembran
  - Zellkern
difficulty: 1
sources:
  - https://example.org/zellen
`)
	writeFile(t, dir, "02-broken.yaml", `{{not yaml`)
	writeFile(t, dir, "03-notes.md", "# ignored")

	reg, err := curriculum.NewRegistryFromDir(dir)
	if err != nil {
		t.Fatalf("NewRegistryFromDir() error = %v", err)
	}

	ids := reg.TopicIDs()
	if len(ids) != 1 || ids[0] != "zellen" {
		t.Fatalf("TopicIDs() = %v, want [zellen]", ids)
	}

	topic, err := reg.Topic("zellen")
	if err != nil {
		t.Fatalf("Topic(zellen) error = %v", err)
	}
	if len(topic.Concepts) != 2 {
		t.Errorf("Concepts = %v, want 2 entries", topic.Concepts)
	}
	if len(topic.Sources) != 1 {
		t.Errorf("Sources = %v, want 1 entry", topic.Sources)
	}
}

func TestNewRegistryFromDir_Empty(t *testing.T) {
	if _, err := curriculum.NewRegistryFromDir(t.TempDir()); err == nil {
		t.Error("NewRegistryFromDir() on empty dir expected error, got nil")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
