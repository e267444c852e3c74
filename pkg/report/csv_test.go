package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/hellenika/hoplite/pkg/cloze"
	"github.com/hellenika/hoplite/pkg/lint"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"comma", "front,back,tags\nλύω,I loose,verb\nκαί,and,\n"},
		{"semicolon", "front;back;tags\nλύω;I loose;verb\nκαί;and;\n"},
		{"tab", "front\tback\ttags\nλύω\tI loose\tverb\nκαί\tand\t\n"},
		{"mixed-case headers", "Front,Back,Tags\nλύω,I loose,verb\nκαί,and,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCandidates(writeFile(t, "cands.csv", tt.body), "")
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 2 {
				t.Fatalf("candidates = %d, want 2", len(got))
			}
			if got[0].Front != "λύω" || got[0].Back != "I loose" || got[0].Tags != "verb" {
				t.Errorf("row 0 = %+v", got[0])
			}
			if got[1].Tags != "" {
				t.Errorf("row 1 tags = %q, want empty", got[1].Tags)
			}
		})
	}
}

func TestReadCandidatesExtraColumns(t *testing.T) {
	body := "id,front,back,tags,notes\n1,λύω,I loose,verb,extra\n"
	got, err := ReadCandidates(writeFile(t, "cands.csv", body), "")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Front != "λύω" || got[0].Tags != "verb" {
		t.Errorf("row = %+v", got[0])
	}
}

func TestReadCandidatesShortRow(t *testing.T) {
	body := "front,back,tags\nλύω,I loose\n"
	got, err := ReadCandidates(writeFile(t, "cands.csv", body), "")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Tags != "" {
		t.Errorf("missing tags column should read empty, got %q", got[0].Tags)
	}
}

func TestReadCandidatesMissingColumns(t *testing.T) {
	_, err := ReadCandidates(writeFile(t, "cands.csv", "front,gloss\nλύω,I loose\n"), "")
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	for _, col := range []string{"back", "tags"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q should name missing column %s", err, col)
		}
	}
}

func TestReadCandidatesMissingFile(t *testing.T) {
	if _, err := ReadCandidates(filepath.Join(t.TempDir(), "absent.csv"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadCandidatesEncoding(t *testing.T) {
	// Latin text stored as ISO 8859-1; é is 0xE9.
	raw, err := charmap.ISO8859_1.NewEncoder().String("front,back,tags\ncafé,coffee,noun\n")
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadCandidates(writeFile(t, "latin1.csv", raw), "iso-8859-1")
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Front != "café" {
		t.Errorf("Front = %q, want café", got[0].Front)
	}

	if _, err := ReadCandidates(writeFile(t, "x.csv", "front,back,tags\n"), "not-a-charset"); err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestWriteResults(t *testing.T) {
	results := []*lint.Result{
		{
			Front:               "λύω",
			Back:                "I loose",
			Tags:                "verb",
			NormalizedGreek:     "λυω",
			Lemma:               "λυω",
			WarningLevel:        lint.LevelHigh,
			MatchReason:         lint.ReasonExact,
			MatchedNoteIDs:      "1001,1002",
			SelfDuplicateLevel:  lint.LevelNone,
			SelfDuplicateReason: lint.ReasonNone,
			Context: &cloze.ContextAnalysis{
				Level:          cloze.LevelIsolated,
				TokenCount:     1,
				Recommendation: "needs_context",
			},
		},
		{
			Front:               "καί",
			WarningLevel:        lint.LevelNone,
			MatchReason:         lint.ReasonNone,
			SelfDuplicateLevel:  lint.LevelNone,
			SelfDuplicateReason: lint.ReasonNone,
			Cloze: &cloze.Analysis{
				IsCloze:        true,
				Quality:        cloze.QualityWeak,
				QualityReasons: []string{"low_context", "high_deletion"},
				ContextTokens:  2,
				DeletionRatio:  0.60,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	if err := WriteResults(path, results); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	header := records[0]
	if len(header) != len(resultColumns) {
		t.Fatalf("header columns = %d, want %d", len(header), len(resultColumns))
	}

	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %q", name)
		return -1
	}
	if got := records[1][col("warning_level")]; got != "high" {
		t.Errorf("warning_level = %q", got)
	}
	if got := records[1][col("matched_note_ids")]; got != "1001,1002" {
		t.Errorf("matched_note_ids = %q", got)
	}
	if got := records[1][col("context_level")]; got != "isolated" {
		t.Errorf("context_level = %q", got)
	}
	// Analyses not run leave their columns empty.
	if got := records[1][col("cloze_quality")]; got != "" {
		t.Errorf("cloze_quality = %q, want empty", got)
	}
	if got := records[2][col("cloze_quality_reasons")]; got != "low_context high_deletion" {
		t.Errorf("cloze_quality_reasons = %q", got)
	}
	if got := records[2][col("context_level")]; got != "" {
		t.Errorf("context_level = %q, want empty", got)
	}
}

func TestWriteResultsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	if err := WriteResults(path, nil); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("rows = %d, want header only", len(records))
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		header string
		want   rune
	}{
		{"front,back,tags", ','},
		{"front;back;tags", ';'},
		{"front\tback\ttags", '\t'},
		{"front;back,tags", ','},
	}
	for _, tt := range tests {
		if got := sniffDelimiter(tt.header + "\nrow"); got != tt.want {
			t.Errorf("sniffDelimiter(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
