package deck

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveSnapshot serializes a built index to a gob file, so repeated runs
// against a large deck can skip re-lemmatizing the whole export.
func SaveSnapshot(idx *Index, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index snapshot: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(idx); err != nil {
		return fmt.Errorf("encode index snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot deserializes an index snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index snapshot: %w", err)
	}
	defer f.Close()

	idx := NewIndex()
	if err := gob.NewDecoder(f).Decode(idx); err != nil {
		return nil, fmt.Errorf("decode index snapshot: %w", err)
	}
	return idx, nil
}
