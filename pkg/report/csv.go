// Package report handles the CSV surfaces of the linter: reading
// candidate card files and writing analysis results, plus the terminal
// summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/hellenika/hoplite/pkg/lint"
)

// ReadCandidates reads a candidate card CSV. The delimiter is sniffed
// from the header line (comma, semicolon, or tab), headers are matched
// case-insensitively, and the front/back/tags columns are required.
// encodingName optionally names a source charset (WHATWG names, e.g.
// "windows-1253"); empty means UTF-8.
func ReadCandidates(path, encodingName string) ([]lint.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates %s: %w", path, err)
	}
	defer f.Close()

	var src io.Reader = f
	if encodingName != "" {
		enc, err := htmlindex.Get(encodingName)
		if err != nil {
			return nil, fmt.Errorf("candidates %s: unknown encoding %q: %w", path, encodingName, err)
		}
		src = transform.NewReader(f, enc.NewDecoder())
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read candidates %s: %w", path, err)
	}

	r := csv.NewReader(strings.NewReader(string(data)))
	r.Comma = sniffDelimiter(string(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse candidates %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("candidates %s: empty file", path)
	}

	frontIdx, backIdx, tagsIdx := -1, -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "front":
			frontIdx = i
		case "back":
			backIdx = i
		case "tags":
			tagsIdx = i
		}
	}
	var missing []string
	if frontIdx < 0 {
		missing = append(missing, "front")
	}
	if backIdx < 0 {
		missing = append(missing, "back")
	}
	if tagsIdx < 0 {
		missing = append(missing, "tags")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("candidates %s: missing required columns: %s", path, strings.Join(missing, ", "))
	}

	cands := make([]lint.Candidate, 0, len(records)-1)
	for _, rec := range records[1:] {
		cands = append(cands, lint.Candidate{
			Front: fieldAt(rec, frontIdx),
			Back:  fieldAt(rec, backIdx),
			Tags:  fieldAt(rec, tagsIdx),
		})
	}
	return cands, nil
}

// sniffDelimiter inspects the header line. Semicolon and tab exports are
// common from spreadsheet tools; comma is the fallback.
func sniffDelimiter(data string) rune {
	header := data
	if i := strings.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	switch {
	case strings.ContainsRune(header, '\t'):
		return '\t'
	case strings.ContainsRune(header, ';') && !strings.ContainsRune(header, ','):
		return ';'
	default:
		return ','
	}
}

func fieldAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// resultColumns is the full fixed output schema. Every column is always
// present; analyses that were not run leave their columns empty.
var resultColumns = []string{
	"front", "back", "tags", "note_id",
	"normalized_greek", "lemma",
	"warning_level", "match_reason", "matched_note_ids",
	"self_duplicate_level", "self_duplicate_reason", "self_duplicate_rows",
	"tags_kept", "tags_deleted", "tags_unknown", "tags_auto_added",
	"tags_final", "tags_need_review",
	"is_cloze", "cloze_quality", "cloze_quality_reasons",
	"cloze_context_tokens", "cloze_deletion_ratio",
	"context_level", "context_token_count", "context_recommendation",
	"cloze_recommended", "cloze_type", "cloze_suggested_deletion",
	"cloze_hint", "cloze_confidence", "cloze_reason",
}

// WriteResults writes analysis results as CSV, creating parent
// directories as needed.
func WriteResults(path string, results []*lint.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultColumns); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}
	for _, r := range results {
		if err := w.Write(resultRow(r)); err != nil {
			return fmt.Errorf("write results row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush results %s: %w", path, err)
	}
	return nil
}

func resultRow(r *lint.Result) []string {
	row := []string{
		r.Front, r.Back, r.Tags, r.NoteID,
		r.NormalizedGreek, r.Lemma,
		string(r.WarningLevel), r.MatchReason, r.MatchedNoteIDs,
		string(r.SelfDuplicateLevel), r.SelfDuplicateReason, r.SelfDuplicateRows,
	}

	if t := r.TagReport; t != nil {
		row = append(row,
			strings.Join(t.Kept, " "),
			strings.Join(t.Deleted, " "),
			strings.Join(t.Unknown, " "),
			strings.Join(t.AutoAdded, " "),
			strings.Join(t.Final, " "),
			strconv.FormatBool(t.NeedsReview),
		)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	if c := r.Cloze; c != nil && c.IsCloze {
		row = append(row,
			strconv.FormatBool(true),
			c.Quality,
			strings.Join(c.QualityReasons, " "),
			strconv.Itoa(c.ContextTokens),
			strconv.FormatFloat(c.DeletionRatio, 'f', 2, 64),
		)
	} else if c != nil {
		row = append(row, strconv.FormatBool(false), "", "", "", "")
	} else {
		row = append(row, "", "", "", "", "")
	}

	if ctx := r.Context; ctx != nil {
		row = append(row, ctx.Level, strconv.Itoa(ctx.TokenCount), ctx.Recommendation)
	} else {
		row = append(row, "", "", "")
	}

	if rec := r.ClozeAdvice; rec != nil {
		row = append(row,
			strconv.FormatBool(rec.ShouldCloze),
			rec.Type,
			rec.SuggestedDeletion,
			rec.Hint,
			strconv.FormatFloat(rec.Confidence, 'f', 2, 64),
			rec.Reason,
		)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	return row
}
