package lemma

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hellenika/hoplite/pkg/greek"
)

// CacheStore persists the token→lemma cache between runs.
type CacheStore interface {
	// Load returns the persisted cache; a store that has never been
	// written returns an empty map, not an error.
	Load() (map[string]string, error)
	// Save writes the full cache, replacing previous contents.
	Save(entries map[string]string) error
	Close() error
}

// OpenCacheStore picks a store implementation from the path extension:
// .db/.sqlite open a SQLite store, anything else is the flat JSON file
// format. An empty path means no persistence.
func OpenCacheStore(path string) (CacheStore, error) {
	if path == "" {
		return nil, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return OpenCacheDB(path)
	default:
		return jsonStore{path: path}, nil
	}
}

// jsonStore is the compatibility format: a flat JSON object mapping
// normalized token to lemma.
type jsonStore struct {
	path string
}

func (s jsonStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read lemma cache %s: %w", s.path, err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse lemma cache %s: %w", s.path, err)
	}
	return entries, nil
}

func (s jsonStore) Save(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal lemma cache: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s jsonStore) Close() error { return nil }

// LoadOverrides reads the read-only override table: same flat JSON shape
// as the cache. Keys are stored under their normalized form. A missing
// file is an empty table; malformed JSON is a configuration error.
func LoadOverrides(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read lemma overrides %s: %w", path, err)
	}
	raw := map[string]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse lemma overrides %s: %w", path, err)
	}
	overrides := make(map[string]string, len(raw))
	for k, v := range raw {
		if key := greek.NormalizeForMatch(k); key != "" {
			overrides[key] = v
		}
	}
	return overrides, nil
}
