package tags

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testConvertMap = `{
  "simple_tag_mappings": {
    "n": ["noun"],
    "v": ["verb"],
    "adj": ["adjective"]
  },
  "morphology_mappings": {
    "1st": ["first-declension"],
    "pres": ["present", "verb"]
  },
  "compound_tag_patterns": {
    "^(n|v|adj)-sg$": ["$1", "singular"]
  },
  "chapter_handling": {
    "extract_patterns": ["^athenaze-ch(\\d+)$", "^ch(\\d+)$"],
    "default_source": "unknown"
  }
}`

func writeConvertMap(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tag_conversion_map.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	c, err := LoadConverter(writeConvertMap(t, testConvertMap))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestLoadConverterErrors(t *testing.T) {
	if _, err := LoadConverter(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadConverter(writeConvertMap(t, "{bad")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	bad := `{"compound_tag_patterns": {"[": ["x"]}}`
	if _, err := LoadConverter(writeConvertMap(t, bad)); err == nil {
		t.Error("expected error for invalid compound pattern")
	}
}

func TestConvertTag(t *testing.T) {
	c := newTestConverter(t)
	tests := []struct {
		tag  string
		want []string
	}{
		{"n", []string{"noun"}},
		{"V", []string{"verb"}},
		{"pres", []string{"present", "verb"}},
		{"1st", []string{"first-declension"}},
		{"n-sg", []string{"noun", "singular"}},
		{"adj-sg", []string{"adjective", "singular"}},
		{"chapter2", []string{"chapter2"}},
	}
	for _, tt := range tests {
		if got := c.ConvertTag(tt.tag); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ConvertTag(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestIsOrganizational(t *testing.T) {
	c := newTestConverter(t)
	tests := []struct {
		tag  string
		want bool
	}{
		{"athenaze-ch3", true},
		{"ch12", true},
		{"reading", true},
		{"passage", true},
		{"wb3a", true},
		{"noun", false},
		{"wb3", false},
	}
	for _, tt := range tests {
		if got := c.IsOrganizational(tt.tag); got != tt.want {
			t.Errorf("IsOrganizational(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestExtractMetadata(t *testing.T) {
	c := newTestConverter(t)
	chapter, source, section := c.ExtractMetadata([]string{"athenaze-ch3", "noun", "wb3a"})
	if chapter != "3" {
		t.Errorf("chapter = %q, want 3", chapter)
	}
	if source != "athenaze" {
		t.Errorf("source = %q, want athenaze", source)
	}
	if section != "wb3a" {
		t.Errorf("section = %q, want wb3a", section)
	}

	chapter, source, section = c.ExtractMetadata([]string{"ch7", "reading"})
	if chapter != "7" {
		t.Errorf("chapter = %q, want 7", chapter)
	}
	if source != "unknown" {
		t.Errorf("source = %q, want default", source)
	}
	if section != "reading" {
		t.Errorf("section = %q, want reading", section)
	}
}

func TestConvertCardTags(t *testing.T) {
	c := newTestConverter(t)
	got := c.ConvertCardTags("athenaze-ch3 n pres wb3a", nil)
	if !reflect.DeepEqual(got.Tags, []string{"noun", "present", "verb"}) {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.Chapter != "3" || got.Source != "athenaze" || got.Section != "wb3a" {
		t.Errorf("metadata = %q/%q/%q", got.Chapter, got.Source, got.Section)
	}
}

func TestConvertCardTagsSchemaFilter(t *testing.T) {
	c := newTestConverter(t)
	s, err := LoadSchema(writeSchema(t, `{"allowed_tags": ["noun", "verb"], "blocked_tags": []}`))
	if err != nil {
		t.Fatal(err)
	}
	got := c.ConvertCardTags("n pres adj", s)
	if !reflect.DeepEqual(got.Tags, []string{"noun", "verb"}) {
		t.Errorf("Tags = %v", got.Tags)
	}
}

func TestConvertCardTagsDedupe(t *testing.T) {
	c := newTestConverter(t)
	got := c.ConvertCardTags("v pres", nil)
	if !reflect.DeepEqual(got.Tags, []string{"present", "verb"}) {
		t.Errorf("Tags = %v, want verb deduplicated", got.Tags)
	}
}
