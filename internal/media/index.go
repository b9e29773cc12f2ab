// Package media indexes illustrative images per topic and suggests one
// for a piece of tutor text via keyword matching. Matching is a heuristic
// aid: a missed image is fine, images are supplementary.
package media

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item is one image asset registered for a topic.
type Item struct {
	ID          string   `yaml:"id"`
	File        string   `yaml:"file"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// Ref is the resolved form of an item handed to clients.
type Ref struct {
	File        string `json:"file"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Index is a read-only per-topic media catalog.
type Index struct {
	byTopic map[string][]Item
	baseURL string
	lower   cases.Caser
}

// NewIndex builds an index from per-topic item lists. Item order within a
// topic is preserved; keyword lookup returns the first match in that
// order. baseURL prefixes asset files when building Refs.
func NewIndex(baseURL string, items map[string][]Item) *Index {
	// German-aware lowercasing so umlauts and ß match reliably.
	lower := cases.Lower(language.German)

	byTopic := make(map[string][]Item, len(items))
	for topicID, list := range items {
		copied := make([]Item, len(list))
		for i, it := range list {
			kw := make([]string, len(it.Keywords))
			for j, k := range it.Keywords {
				kw[j] = lower.String(k)
			}
			it.Keywords = kw
			copied[i] = it
		}
		byTopic[topicID] = copied
	}

	return &Index{byTopic: byTopic, baseURL: strings.TrimRight(baseURL, "/"), lower: lower}
}

// LookupByKeyword scans the topic's items in registration order and
// returns the first one whose keywords occur in text (case-insensitive
// substring). First match wins; there is no ranking by specificity.
func (x *Index) LookupByKeyword(topicID, text string) (Ref, bool) {
	if text == "" {
		return Ref{}, false
	}
	lowered := x.lower.String(text)

	for _, it := range x.byTopic[topicID] {
		for _, kw := range it.Keywords {
			if strings.Contains(lowered, kw) {
				return x.ref(it), true
			}
		}
	}
	return Ref{}, false
}

// LookupByID resolves an item the oracle named explicitly.
func (x *Index) LookupByID(topicID, id string) (Ref, bool) {
	for _, it := range x.byTopic[topicID] {
		if it.ID == id {
			return x.ref(it), true
		}
	}
	return Ref{}, false
}

// ListForTopic returns all refs registered for a topic, in order.
func (x *Index) ListForTopic(topicID string) []Ref {
	items := x.byTopic[topicID]
	refs := make([]Ref, len(items))
	for i, it := range items {
		refs[i] = x.ref(it)
	}
	return refs
}

// IDs returns the item ids for a topic, in registration order. The oracle
// receives them as the media it may request per turn.
func (x *Index) IDs(topicID string) []string {
	items := x.byTopic[topicID]
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func (x *Index) ref(it Item) Ref {
	return Ref{
		File:        it.File,
		Description: it.Description,
		URL:         x.baseURL + "/" + it.File,
	}
}
