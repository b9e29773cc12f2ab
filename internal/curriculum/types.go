package curriculum

// Topic is a curriculum unit: an ordered list of concepts worked through
// one at a time, plus optional reference sources for deeper reading.
type Topic struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Concepts    []string `yaml:"concepts"`
	Difficulty  int      `yaml:"difficulty"`
	Sources     []string `yaml:"sources"`
}

// ConceptAt returns the concept name at the given index and whether the
// index is within the topic's concept sequence.
func (t Topic) ConceptAt(i int) (string, bool) {
	if i < 0 || i >= len(t.Concepts) {
		return "", false
	}
	return t.Concepts[i], true
}
