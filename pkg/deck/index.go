// Package deck builds the reference-deck index: three lookup tables keyed
// by normalized text (exact Greek, lemma, English gloss) plus the ordered
// note list, constructed once per run from an Anki-style export.
package deck

import (
	"sort"

	"github.com/hellenika/hoplite/pkg/greek"
)

// NoteEntry is one reference-deck card. Entries are immutable once added
// and owned by the Index that created them.
type NoteEntry struct {
	NoteID      string
	Model       string
	GreekText   string
	EnglishText string
}

// Lemmatizer is the slice of the lemma provider the index needs.
type Lemmatizer interface {
	BestLemma(text string) string
}

// Index maps normalized keys to note-id sets. A note may appear under
// zero, one, two, or three of the mappings independently, but always
// exactly once in Notes.
type Index struct {
	ExactGreek map[string][]string
	Lemma      map[string][]string
	English    map[string][]string
	Notes      []NoteEntry
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		ExactGreek: make(map[string][]string),
		Lemma:      make(map[string][]string),
		English:    make(map[string][]string),
	}
}

// AddNote indexes one note. The note always joins the note list; each
// mapping only gains an entry when its key is non-empty. Passing a nil
// lemmatizer skips the lemma index.
func (idx *Index) AddNote(note NoteEntry, lem Lemmatizer) {
	idx.Notes = append(idx.Notes, note)

	if key := greek.NormalizeForMatch(note.GreekText); key != "" {
		addID(idx.ExactGreek, key, note.NoteID)
	}
	if lem != nil && note.GreekText != "" {
		if key := greek.NormalizeForMatch(lem.BestLemma(note.GreekText)); key != "" {
			addID(idx.Lemma, key, note.NoteID)
		}
	}
	if key := GlossKey(note.EnglishText); key != "" {
		addID(idx.English, key, note.NoteID)
	}
}

// Lookup returns the sorted note ids under key in m, set semantics.
func Lookup(m map[string][]string, key string) []string {
	if key == "" {
		return nil
	}
	ids := m[key]
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

// Stats summarizes index sizes for diagnostics.
type Stats struct {
	Notes     int `json:"notes"`
	ExactKeys int `json:"exact_keys"`
	LemmaKeys int `json:"lemma_keys"`
	GlossKeys int `json:"gloss_keys"`
}

// Stats returns the current index sizes.
func (idx *Index) Stats() Stats {
	return Stats{
		Notes:     len(idx.Notes),
		ExactKeys: len(idx.ExactGreek),
		LemmaKeys: len(idx.Lemma),
		GlossKeys: len(idx.English),
	}
}

func addID(m map[string][]string, key, id string) {
	for _, existing := range m[key] {
		if existing == id {
			return
		}
	}
	m[key] = append(m[key], id)
}
