package lint

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hellenika/hoplite/pkg/deck"
	"github.com/hellenika/hoplite/pkg/greek"
)

// Lemmatizer is the slice of the lemma provider the detector needs.
type Lemmatizer interface {
	BestLemma(text string) string
}

// detection is a resolved tier: level, reason, and the ids found at the
// winning tier.
type detection struct {
	level  Level
	reason string
	ids    []string
}

// resolve applies the strict tier priority: exact Greek beats lemma beats
// gloss; the first tier with a hit wins and no lower tier is consulted.
func resolve(exactKey, lemmaKey, glossKey string, idx *deck.Index, exclude string) detection {
	if ids := lookupExcluding(idx.ExactGreek, exactKey, exclude); len(ids) > 0 {
		return detection{LevelHigh, ReasonExact, ids}
	}
	if ids := lookupExcluding(idx.Lemma, lemmaKey, exclude); len(ids) > 0 {
		return detection{LevelMedium, ReasonLemma, ids}
	}
	if ids := lookupExcluding(idx.English, glossKey, exclude); len(ids) > 0 {
		return detection{LevelLow, ReasonGloss, ids}
	}
	return detection{LevelNone, ReasonNone, nil}
}

func lookupExcluding(m map[string][]string, key, exclude string) []string {
	ids := deck.Lookup(m, key)
	if exclude == "" {
		return ids
	}
	out := ids[:0]
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

// AnalyzeCandidates resolves every candidate against the deck index.
// Results are returned in input order, one per candidate, and no
// candidate can fail the batch: the worst case is a none/no-match row.
func AnalyzeCandidates(cands []Candidate, idx *deck.Index, lem Lemmatizer) []*Result {
	results := make([]*Result, 0, len(cands))
	for _, c := range cands {
		exactKey := greek.NormalizeForMatch(c.Front)
		lemmaKey := ""
		if c.Front != "" {
			lemmaKey = greek.NormalizeForMatch(lem.BestLemma(c.Front))
		}
		glossKey := deck.GlossKey(c.Back)

		d := resolve(exactKey, lemmaKey, glossKey, idx, "")
		results = append(results, &Result{
			Front:               c.Front,
			Back:                c.Back,
			Tags:                c.Tags,
			NormalizedGreek:     exactKey,
			Lemma:               lemmaKey,
			WarningLevel:        d.level,
			MatchReason:         d.reason,
			MatchedNoteIDs:      strings.Join(d.ids, ","),
			SelfDuplicateLevel:  LevelNone,
			SelfDuplicateReason: ReasonNone,
		})
	}
	return results
}

// AnalyzeDeckInternal checks the reference deck against itself: every
// note is resolved against the persistent indexes with its own id
// excluded, and only notes that match something else are reported.
func AnalyzeDeckInternal(idx *deck.Index, lem Lemmatizer) []*Result {
	var results []*Result
	for _, note := range idx.Notes {
		exactKey := greek.NormalizeForMatch(note.GreekText)
		lemmaKey := ""
		if note.GreekText != "" {
			lemmaKey = greek.NormalizeForMatch(lem.BestLemma(note.GreekText))
		}
		glossKey := deck.GlossKey(note.EnglishText)

		d := resolve(exactKey, lemmaKey, glossKey, idx, note.NoteID)
		if d.level == LevelNone {
			continue
		}
		results = append(results, &Result{
			Front:               note.GreekText,
			Back:                note.EnglishText,
			NoteID:              note.NoteID,
			NormalizedGreek:     exactKey,
			Lemma:               lemmaKey,
			WarningLevel:        d.level,
			MatchReason:         d.reason,
			MatchedNoteIDs:      strings.Join(d.ids, ","),
			SelfDuplicateLevel:  LevelNone,
			SelfDuplicateReason: ReasonNone,
		})
	}
	return results
}

// SelfMatch is an intra-batch duplicate finding for one candidate row.
type SelfMatch struct {
	Level  Level
	Reason string
	// Rows holds the matching input-file row numbers, 1-indexed and
	// offset past the header row (batch index + 2).
	Rows []int
}

// SelfDuplicates builds ephemeral in-batch indexes (same key derivation
// as the deck index, keyed by row) and resolves each candidate against
// them, excluding its own row. Only rows with a non-none tier appear in
// the returned map.
func SelfDuplicates(cands []Candidate, lem Lemmatizer) map[int]SelfMatch {
	exact := make(map[string][]int)
	lemmaIdx := make(map[string][]int)
	gloss := make(map[string][]int)
	exactKeys := make([]string, len(cands))
	lemmaKeys := make([]string, len(cands))
	glossKeys := make([]string, len(cands))

	for i, c := range cands {
		exactKeys[i] = greek.NormalizeForMatch(c.Front)
		if c.Front != "" {
			lemmaKeys[i] = greek.NormalizeForMatch(lem.BestLemma(c.Front))
		}
		glossKeys[i] = deck.GlossKey(c.Back)

		if exactKeys[i] != "" {
			exact[exactKeys[i]] = append(exact[exactKeys[i]], i)
		}
		if lemmaKeys[i] != "" {
			lemmaIdx[lemmaKeys[i]] = append(lemmaIdx[lemmaKeys[i]], i)
		}
		if glossKeys[i] != "" {
			gloss[glossKeys[i]] = append(gloss[glossKeys[i]], i)
		}
	}

	matches := make(map[int]SelfMatch)
	for i := range cands {
		if rows := rowsExcluding(exact, exactKeys[i], i); len(rows) > 0 {
			matches[i] = SelfMatch{LevelHigh, ReasonExact, rows}
			continue
		}
		if rows := rowsExcluding(lemmaIdx, lemmaKeys[i], i); len(rows) > 0 {
			matches[i] = SelfMatch{LevelMedium, ReasonLemma, rows}
			continue
		}
		if rows := rowsExcluding(gloss, glossKeys[i], i); len(rows) > 0 {
			matches[i] = SelfMatch{LevelLow, ReasonGloss, rows}
		}
	}
	return matches
}

func rowsExcluding(m map[string][]int, key string, self int) []int {
	if key == "" {
		return nil
	}
	var rows []int
	for _, i := range m[key] {
		if i != self {
			rows = append(rows, i+2)
		}
	}
	sort.Ints(rows)
	return rows
}

// AttachSelfDuplicates folds SelfDuplicates findings into an existing
// result list (results must be in batch order).
func AttachSelfDuplicates(results []*Result, matches map[int]SelfMatch) {
	for i, m := range matches {
		if i < 0 || i >= len(results) {
			continue
		}
		rows := make([]string, len(m.Rows))
		for j, row := range m.Rows {
			rows[j] = strconv.Itoa(row)
		}
		results[i].SelfDuplicateLevel = m.Level
		results[i].SelfDuplicateReason = m.Reason
		results[i].SelfDuplicateRows = strings.Join(rows, ",")
	}
}
