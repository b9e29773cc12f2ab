package media_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/media"
)

func TestLookupByKeyword(t *testing.T) {
	idx := media.Default("/static")

	tests := []struct {
		name     string
		topicID  string
		text     string
		wantFile string
		wantHit  bool
	}{
		{
			name:     "direct keyword",
			topicID:  "1_grundlagen",
			text:     "Welche Rolle spielt Adenin bei der Basenpaarung?",
			wantFile: "Basen.png", // "adenin" registers before "basenpaarung"
			wantHit:  true,
		},
		{
			name:     "case insensitive with umlaut",
			topicID:  "1_grundlagen",
			text:     "Was bedeutet KOMPLEMENTÄR bei DNA-Strängen?",
			wantFile: "Basenpaarungen.png",
			wantHit:  true,
		},
		{
			name:     "no match",
			topicID:  "1_grundlagen",
			text:     "Erzähl mir etwas über Photosynthese.",
			wantHit:  false,
		},
		{
			name:     "unknown topic",
			topicID:  "5_oekologie",
			text:     "adenin",
			wantHit:  false,
		},
		{
			name:     "empty text",
			topicID:  "1_grundlagen",
			text:     "",
			wantHit:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := idx.LookupByKeyword(tt.topicID, tt.text)
			if ok != tt.wantHit {
				t.Fatalf("LookupByKeyword() hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && ref.File != tt.wantFile {
				t.Errorf("File = %q, want %q", ref.File, tt.wantFile)
			}
		})
	}
}

func TestLookupByKeyword_Deterministic(t *testing.T) {
	idx := media.Default("/static")

	// "aufbau" is a keyword of both nucleotid (1_grundlagen) and
	// chromosom (2_aufbau); repeated calls must return the same item.
	first, ok := idx.LookupByKeyword("1_grundlagen", "Beschreibe den Aufbau.")
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		ref, ok := idx.LookupByKeyword("1_grundlagen", "Beschreibe den Aufbau.")
		if !ok || ref != first {
			t.Fatalf("call %d returned %+v, want %+v", i, ref, first)
		}
	}
}

func TestLookupByID(t *testing.T) {
	idx := media.Default("/static")

	ref, ok := idx.LookupByID("3_replikation", "schema")
	if !ok {
		t.Fatal("LookupByID(schema) not found")
	}
	if ref.URL != "/static/Replikationsschema.png" {
		t.Errorf("URL = %q, want /static/Replikationsschema.png", ref.URL)
	}

	if _, ok := idx.LookupByID("3_replikation", "mendel1"); ok {
		t.Error("LookupByID should not find items of other topics")
	}
}

func TestListForTopic_And_IDs(t *testing.T) {
	idx := media.Default("/static")

	refs := idx.ListForTopic("2_aufbau")
	if len(refs) != 4 {
		t.Fatalf("ListForTopic() = %d items, want 4", len(refs))
	}

	ids := idx.IDs("2_aufbau")
	want := []string{"chromosom", "karyogramm", "gen", "zellkern"}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], id)
		}
	}

	if got := idx.IDs("unbekannt"); len(got) != 0 {
		t.Errorf("IDs(unbekannt) = %v, want empty", got)
	}
}

func TestNewIndexFromDir(t *testing.T) {
	dir := t.TempDir()
	content := `
topic_id: zellen
items:
  - id: membran
    file: Membran.png
    description: Die Zellmembran
    keywords: [membran, doppelschicht]
`
	if err := os.WriteFile(filepath.Join(dir, "zellen.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := media.NewIndexFromDir("/assets", dir)
	if err != nil {
		t.Fatalf("NewIndexFromDir() error = %v", err)
	}

	ref, ok := idx.LookupByKeyword("zellen", "Woraus besteht die Doppelschicht?")
	if !ok {
		t.Fatal("expected match for loaded catalog")
	}
	if ref.URL != "/assets/Membran.png" {
		t.Errorf("URL = %q, want /assets/Membran.png", ref.URL)
	}
}
