package lemma

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// mapBackend resolves from a fixed table and counts calls.
type mapBackend struct {
	lemmas map[string]string
	calls  int
}

func (b *mapBackend) Lemma(token string) (string, error) {
	b.calls++
	if l, ok := b.lemmas[token]; ok {
		return l, nil
	}
	return "", errors.New("unknown token")
}

func (b *mapBackend) Name() string { return "map" }

// failingBackend errors on every call.
type failingBackend struct{ calls int }

func (b *failingBackend) Lemma(string) (string, error) {
	b.calls++
	return "", errors.New("model not loaded")
}

func (b *failingBackend) Name() string { return "failing" }

func writeStopwords(t *testing.T, words string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stopwords.txt")
	os.WriteFile(path, []byte(words), 0o644)
	return path
}

func TestLemmatizeTokenFallback(t *testing.T) {
	p, err := NewProvider(Options{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if got := p.LemmatizeToken("Λύεις"); got != "λυεισ" {
		t.Errorf("fallback lemma = %q, want %q", got, "λυεισ")
	}
	if p.BackendName() != FallbackName {
		t.Errorf("BackendName = %q, want %q", p.BackendName(), FallbackName)
	}
	if got := p.LemmatizeToken(""); got != "" {
		t.Errorf("empty token lemma = %q, want empty", got)
	}
}

func TestLemmatizeTokenBackendAndCache(t *testing.T) {
	b := &mapBackend{lemmas: map[string]string{"λύεις": "λύω"}}
	p, err := NewProvider(Options{Backend: b})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if got := p.LemmatizeToken("λύεις"); got != "λύω" {
		t.Errorf("lemma = %q, want λύω", got)
	}
	// Second resolution must hit the cache, not the backend.
	p.LemmatizeToken("λύεις")
	if b.calls != 1 {
		t.Errorf("backend calls = %d, want 1", b.calls)
	}
}

func TestLemmatizeTokenBackendErrorFallsBack(t *testing.T) {
	b := &failingBackend{}
	p, err := NewProvider(Options{Backend: b})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if got := p.LemmatizeToken("λύεις"); got != "λυεισ" {
		t.Errorf("lemma after backend error = %q, want normalized token", got)
	}
	// The failed resolution is cached; the backend is not retried per token.
	p.LemmatizeToken("λύεις")
	if b.calls != 1 {
		t.Errorf("backend calls = %d, want 1", b.calls)
	}
}

func TestOverridesTakePrecedence(t *testing.T) {
	dir := t.TempDir()
	overridesPath := filepath.Join(dir, "overrides.json")
	os.WriteFile(overridesPath, []byte(`{"εἶπον": "λέγω"}`), 0o644)

	b := &mapBackend{lemmas: map[string]string{"εἶπον": "wrong"}}
	p, err := NewProvider(Options{Backend: b, OverridesPath: overridesPath})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	if got := p.LemmatizeToken("εἶπον"); got != "λεγω" {
		t.Errorf("override lemma = %q, want λεγω", got)
	}
	if b.calls != 0 {
		t.Errorf("backend calls = %d, want 0 (override wins)", b.calls)
	}
}

func TestBestLemmaSkipsStopWordsAndNonGreek(t *testing.T) {
	stops := writeStopwords(t, "ὁ\nκαί\nπρός\nτόν\n")
	p, err := NewProvider(Options{StopwordsPath: stops})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}

	tests := []struct {
		input, want string
	}{
		{"ὁ ἄνθρωπος", "ανθρωποσ"},        // article skipped
		{"πρὸς τὸν ἀγρόν", "αγρον"},       // preposition and article skipped
		{"(λύω)", "λυω"},                  // edge punctuation trimmed
		{"the λύω", "λυω"},                // non-Greek token skipped
		{"ὁ καί", "ο"},                    // all stop words: first token overall
		{"verbatim", "verbatim"},          // no Greek at all: first token
		{"", ""},
	}
	for _, tt := range tests {
		if got := p.BestLemma(tt.input); got != tt.want {
			t.Errorf("BestLemma(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSaveCacheJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	p, err := NewProvider(Options{CachePath: path})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p.LemmatizeToken("λύεις")
	p.LemmatizeToken("ἀγρός")
	p.SaveCache()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parse cache: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("cache entries = %d, want 2", len(entries))
	}

	// A fresh provider loads the persisted cache at startup.
	p2, err := NewProvider(Options{CachePath: path})
	if err != nil {
		t.Fatalf("NewProvider reload: %v", err)
	}
	if p2.CacheLen() != 2 {
		t.Errorf("reloaded cache entries = %d, want 2", p2.CacheLen())
	}
}

func TestSaveCacheNoPathIsNoop(t *testing.T) {
	p, err := NewProvider(Options{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p.LemmatizeToken("λύω")
	p.SaveCache() // must not panic or create files
}

func TestNewProviderBadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	os.WriteFile(path, []byte("{not json"), 0o644)

	if _, err := NewProvider(Options{OverridesPath: path}); err == nil {
		t.Error("expected error for malformed overrides table")
	}
}
