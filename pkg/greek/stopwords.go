package greek

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// StopList is a lazily loaded set of Greek stop words (articles, particles,
// short function words). Entries are stored under their NormalizeForMatch
// key, so lookups are accent- and case-insensitive.
//
// A missing word list degrades to an empty set: lemma selection then treats
// every token as substantive, which is safe, just noisier.
type StopList struct {
	path string

	once  sync.Once
	words map[string]struct{}
}

// NewStopList creates a stop list backed by the word file at path. The file
// is one word per line; blank lines and #-prefixed comments are ignored.
// Nothing is read until the first lookup.
func NewStopList(path string) *StopList {
	return &StopList{path: path}
}

func (s *StopList) load() {
	s.words = make(map[string]struct{})
	if s.path == "" {
		return
	}
	f, err := os.Open(s.path)
	if err != nil {
		slog.Warn("stop word list unavailable, using empty set", "path", s.path, "error", err)
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key := NormalizeForMatch(line); key != "" {
			s.words[key] = struct{}{}
		}
	}
	if err := sc.Err(); err != nil {
		slog.Warn("reading stop word list", "path", s.path, "error", err)
	}
}

// Contains reports whether token is a stop word. The token is normalized
// before lookup, so callers may pass raw or normalized forms.
func (s *StopList) Contains(token string) bool {
	s.once.Do(s.load)
	_, ok := s.words[NormalizeForMatch(token)]
	return ok
}

// Len returns the number of loaded stop words, forcing the lazy load.
func (s *StopList) Len() int {
	s.once.Do(s.load)
	return len(s.words)
}
