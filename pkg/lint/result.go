// Package lint runs candidate cards through the tiered duplicate detector
// and carries the per-card results, including optional per-feature
// analyses attached alongside the core detection fields.
package lint

import (
	"github.com/hellenika/hoplite/pkg/cloze"
	"github.com/hellenika/hoplite/pkg/tags"
)

// Level is the duplicate-match confidence tier.
type Level string

const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Match reasons, one per tier.
const (
	ReasonExact = "exact-greek-match"
	ReasonLemma = "lemma-match"
	ReasonGloss = "english-gloss-match"
	ReasonNone  = "no-match"
)

// Candidate is one card under review. Missing fields are empty strings;
// the detector never rejects a candidate for malformed data.
type Candidate struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Tags  string `json:"tags"`
}

// Result is the full analysis of one candidate (or, for the deck
// self-audit, one reference note). The core detection fields are always
// set; feature analyses are attached only when their pass is enabled, so
// unrelated heuristics don't grow one monolithic record.
type Result struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Tags  string `json:"tags"`
	// NoteID identifies the source note in deck self-audit results;
	// empty for candidate analysis.
	NoteID string `json:"note_id,omitempty"`

	NormalizedGreek string `json:"normalized_greek"`
	Lemma           string `json:"lemma"`
	WarningLevel    Level  `json:"warning_level"`
	MatchReason     string `json:"match_reason"`
	MatchedNoteIDs  string `json:"matched_note_ids"`

	SelfDuplicateLevel  Level  `json:"self_duplicate_level"`
	SelfDuplicateReason string `json:"self_duplicate_reason"`
	// SelfDuplicateRows lists matching batch rows 1-indexed relative to
	// the input file, header row included (row index + 2).
	SelfDuplicateRows string `json:"self_duplicate_rows"`

	TagReport   *tags.Report           `json:"tag_report,omitempty"`
	Cloze       *cloze.Analysis        `json:"cloze,omitempty"`
	Context     *cloze.ContextAnalysis `json:"context,omitempty"`
	ClozeAdvice *cloze.Recommendation  `json:"cloze_advice,omitempty"`
}
