package deck

import (
	"encoding/json"
	"fmt"
	"os"
)

// FieldDefaults declares which content-field index holds the Greek text
// and which holds the gloss when a template has no explicit entry.
type FieldDefaults struct {
	TargetFieldIndex int  `json:"target_field_index"`
	GlossFieldIndex  int  `json:"gloss_field_index"`
	Ignore           bool `json:"ignore"`
}

// ModelFields overrides any of the defaults for one template. Nil fields
// inherit the default.
type ModelFields struct {
	TargetFieldIndex *int  `json:"target_field_index,omitempty"`
	GlossFieldIndex  *int  `json:"gloss_field_index,omitempty"`
	Ignore           *bool `json:"ignore,omitempty"`
}

// FieldMap is the per-template field-mapping configuration.
type FieldMap struct {
	Defaults FieldDefaults          `json:"defaults"`
	Models   map[string]ModelFields `json:"models"`
}

// DefaultFieldMap maps field 0 to Greek and field 1 to the gloss, the
// layout of a plain two-field note type.
func DefaultFieldMap() *FieldMap {
	return &FieldMap{
		Defaults: FieldDefaults{TargetFieldIndex: 0, GlossFieldIndex: 1},
		Models:   map[string]ModelFields{},
	}
}

// LoadFieldMap reads the field map JSON. A missing file yields the
// default mapping; malformed JSON is a configuration error.
func LoadFieldMap(path string) (*FieldMap, error) {
	if path == "" {
		return DefaultFieldMap(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultFieldMap(), nil
		}
		return nil, fmt.Errorf("read field map %s: %w", path, err)
	}
	fm := DefaultFieldMap()
	if err := json.Unmarshal(data, fm); err != nil {
		return nil, fmt.Errorf("parse field map %s: %w", path, err)
	}
	if fm.Models == nil {
		fm.Models = map[string]ModelFields{}
	}
	return fm, nil
}

// Resolve returns the Greek and gloss field indexes for model, and
// whether notes of that template are excluded entirely.
func (fm *FieldMap) Resolve(model string) (target, gloss int, ignore bool) {
	target = fm.Defaults.TargetFieldIndex
	gloss = fm.Defaults.GlossFieldIndex
	ignore = fm.Defaults.Ignore

	mf, ok := fm.Models[model]
	if !ok {
		return target, gloss, ignore
	}
	if mf.TargetFieldIndex != nil {
		target = *mf.TargetFieldIndex
	}
	if mf.GlossFieldIndex != nil {
		gloss = *mf.GlossFieldIndex
	}
	if mf.Ignore != nil {
		ignore = *mf.Ignore
	}
	return target, gloss, ignore
}
