package deck

import (
	"os"
	"path/filepath"
	"testing"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.txt")
	os.WriteFile(path, []byte(content), 0o644)
	return path
}

func TestBuildFromExport(t *testing.T) {
	export := "#separator:tab\n" +
		"#tags column:6\n" +
		"g1\tBasic\tGreek\tλύω\tI loose\tverb\n" +
		"g2\tBasic\tGreek\t<b>ἀγρός</b> [sound:agros.mp3]\tfield\tnoun\n"
	path := writeExport(t, export)

	idx, err := BuildFromExport(path, nil, nil, nil)
	if err != nil {
		t.Fatalf("BuildFromExport: %v", err)
	}

	if len(idx.Notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(idx.Notes))
	}
	if got := Lookup(idx.ExactGreek, "λυω"); len(got) != 1 || got[0] != "g1" {
		t.Errorf("exact λυω = %v, want [g1]", got)
	}
	// Markup and audio references are stripped before indexing.
	if got := Lookup(idx.ExactGreek, "αγροσ"); len(got) != 1 || got[0] != "g2" {
		t.Errorf("exact αγροσ = %v, want [g2]", got)
	}
	if got := Lookup(idx.English, "field"); len(got) != 1 || got[0] != "g2" {
		t.Errorf("gloss field = %v, want [g2]", got)
	}
}

func TestBuildFromExportMissingFile(t *testing.T) {
	idx, err := BuildFromExport(filepath.Join(t.TempDir(), "missing.txt"), nil, nil, nil)
	if err != nil {
		t.Fatalf("missing export should not fail: %v", err)
	}
	if len(idx.Notes) != 0 {
		t.Errorf("notes = %d, want 0", len(idx.Notes))
	}
}

func TestBuildFromExportIgnoredModel(t *testing.T) {
	export := "#tags column:6\n" +
		"g1\tCloze\tGreek\tλύω\tI loose\tverb\n" +
		"g2\tBasic\tGreek\tἀγρός\tfield\tnoun\n"
	path := writeExport(t, export)

	fmPath := filepath.Join(t.TempDir(), "fieldmap.json")
	os.WriteFile(fmPath, []byte(`{
		"defaults": {"target_field_index": 0, "gloss_field_index": 1, "ignore": false},
		"models": {"Cloze": {"ignore": true}}
	}`), 0o644)
	fm, err := LoadFieldMap(fmPath)
	if err != nil {
		t.Fatalf("LoadFieldMap: %v", err)
	}

	idx, err := BuildFromExport(path, fm, nil, nil)
	if err != nil {
		t.Fatalf("BuildFromExport: %v", err)
	}
	if len(idx.Notes) != 1 || idx.Notes[0].NoteID != "g2" {
		t.Errorf("ignored model should be excluded, got %v", idx.Notes)
	}
}

func TestBuildFromExportNoTagsHeaderUsesLastColumn(t *testing.T) {
	export := "g1\tBasic\tGreek\tλύω\tI loose\tverb\n"
	path := writeExport(t, export)

	idx, err := BuildFromExport(path, nil, nil, nil)
	if err != nil {
		t.Fatalf("BuildFromExport: %v", err)
	}
	if len(idx.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(idx.Notes))
	}
	// Fields are columns 3..last-1, so the gloss is still "I loose".
	if idx.Notes[0].EnglishText != "I loose" {
		t.Errorf("gloss = %q, want %q", idx.Notes[0].EnglishText, "I loose")
	}
}

func TestBuildFromExportOutOfRangeFieldIndex(t *testing.T) {
	export := "#tags column:5\ng1\tBasic\tGreek\tλύω\tverb\n"
	path := writeExport(t, export)

	fmPath := filepath.Join(t.TempDir(), "fieldmap.json")
	os.WriteFile(fmPath, []byte(`{"defaults": {"target_field_index": 0, "gloss_field_index": 7}}`), 0o644)
	fm, err := LoadFieldMap(fmPath)
	if err != nil {
		t.Fatalf("LoadFieldMap: %v", err)
	}

	idx, err := BuildFromExport(path, fm, nil, nil)
	if err != nil {
		t.Fatalf("out-of-range field index must not fail the build: %v", err)
	}
	if len(idx.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(idx.Notes))
	}
	if idx.Notes[0].EnglishText != "" {
		t.Errorf("out-of-range gloss = %q, want empty", idx.Notes[0].EnglishText)
	}
}

func TestLoadFieldMapMissingAndInvalid(t *testing.T) {
	fm, err := LoadFieldMap(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing field map should yield defaults: %v", err)
	}
	target, gloss, ignore := fm.Resolve("Whatever")
	if target != 0 || gloss != 1 || ignore {
		t.Errorf("defaults = (%d, %d, %v), want (0, 1, false)", target, gloss, ignore)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{nope"), 0o644)
	if _, err := LoadFieldMap(bad); err == nil {
		t.Error("malformed field map must be a configuration error")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	idx := NewIndex()
	idx.AddNote(NoteEntry{NoteID: "n1", Model: "Basic", GreekText: "λύω", EnglishText: "I loose"}, nil)
	idx.AddNote(NoteEntry{NoteID: "n2", Model: "Basic", GreekText: "ἀγρός", EnglishText: "field"}, nil)

	path := filepath.Join(t.TempDir(), "index.gob")
	if err := SaveSnapshot(idx, path); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(loaded.Notes) != 2 {
		t.Errorf("notes = %d, want 2", len(loaded.Notes))
	}
	if got := Lookup(loaded.ExactGreek, "λυω"); len(got) != 1 || got[0] != "n1" {
		t.Errorf("exact λυω after reload = %v, want [n1]", got)
	}
}
