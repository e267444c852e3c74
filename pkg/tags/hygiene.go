// Package tags enforces the deck's tag vocabulary: an allowlist/blocklist
// schema with pattern-based auto-tagging, plus conversion of legacy tag
// formats into schema-compliant ones.
package tags

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hellenika/hoplite/pkg/greek"
)

// AutoTagRule adds tags when a pattern matches one of the card fields.
type AutoTagRule struct {
	Name       string
	Pattern    *regexp.Regexp
	Tags       []string
	MatchField string // "front" or "back"
}

// Schema is the tag-hygiene configuration.
type Schema struct {
	Allowed       map[string]struct{}
	Blocked       map[string]struct{}
	CaseSensitive bool
	NormalizeTags bool
	AutoTagRules  []AutoTagRule
}

type schemaJSON struct {
	AllowedTags   []string `json:"allowed_tags"`
	BlockedTags   []string `json:"blocked_tags"`
	CaseSensitive bool     `json:"case_sensitive"`
	NormalizeTags *bool    `json:"normalize_tags"`
	AutoTagRules  []struct {
		Name       string   `json:"name"`
		Pattern    string   `json:"pattern"`
		Tags       []string `json:"tags"`
		MatchField string   `json:"match_field"`
	} `json:"auto_tag_rules"`
}

// LoadSchema reads the tag schema JSON. Missing files, malformed JSON,
// and invalid rule patterns are all configuration errors: tag hygiene is
// opt-in, and asking for it with a broken schema should fail loudly.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tag schema %s: %w", path, err)
	}
	var raw schemaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tag schema %s: %w", path, err)
	}

	s := &Schema{
		Allowed:       make(map[string]struct{}, len(raw.AllowedTags)),
		Blocked:       make(map[string]struct{}, len(raw.BlockedTags)),
		CaseSensitive: raw.CaseSensitive,
		NormalizeTags: raw.NormalizeTags == nil || *raw.NormalizeTags,
	}
	for _, tag := range raw.AllowedTags {
		s.Allowed[s.normalizeTag(tag)] = struct{}{}
	}
	for _, tag := range raw.BlockedTags {
		s.Blocked[s.normalizeTag(tag)] = struct{}{}
	}
	for _, r := range raw.AutoTagRules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			name := r.Name
			if name == "" {
				name = "unnamed"
			}
			return nil, fmt.Errorf("tag schema %s: rule %q: invalid pattern: %w", path, name, err)
		}
		field := r.MatchField
		if field == "" {
			field = "front"
		}
		s.AutoTagRules = append(s.AutoTagRules, AutoTagRule{
			Name:       r.Name,
			Pattern:    re,
			Tags:       r.Tags,
			MatchField: field,
		})
	}
	return s, nil
}

func (s *Schema) normalizeTag(tag string) string {
	if s.NormalizeTags {
		tag = strings.TrimSpace(tag)
	}
	if !s.CaseSensitive {
		tag = strings.ToLower(tag)
	}
	return tag
}

// Parse splits an Anki tag string (space-separated) into tags.
func Parse(tagsString string) []string {
	return strings.Fields(tagsString)
}

// Format joins tags back into Anki's space-separated string form.
func Format(tags []string) string {
	return strings.Join(tags, " ")
}

// Report is the complete tag analysis for one card.
type Report struct {
	Original    string   `json:"original"`
	Kept        []string `json:"kept"`
	Deleted     []string `json:"deleted"`
	Unknown     []string `json:"unknown"`
	AutoAdded   []string `json:"auto_added"`
	Final       []string `json:"final"`
	NeedsReview bool     `json:"needs_review"`
}

// Analyze classifies a card's tags against the schema and, when autoTag
// is set, applies the pattern rules against the card fields.
func (s *Schema) Analyze(front, back, tagsString string, autoTag bool) *Report {
	var kept, deleted, unknown []string
	for _, tag := range Parse(tagsString) {
		norm := s.normalizeTag(tag)
		switch {
		case contains(s.Allowed, norm):
			kept = appendUnique(kept, norm)
		case contains(s.Blocked, norm):
			deleted = appendUnique(deleted, norm)
		default:
			unknown = appendUnique(unknown, norm)
		}
	}

	var autoAdded []string
	if autoTag {
		autoAdded = s.autoTags(front, back, kept)
	}

	final := make([]string, 0, len(kept)+len(autoAdded))
	final = append(final, kept...)
	final = append(final, autoAdded...)

	return &Report{
		Original:    tagsString,
		Kept:        kept,
		Deleted:     deleted,
		Unknown:     unknown,
		AutoAdded:   autoAdded,
		Final:       final,
		NeedsReview: len(unknown) > 0,
	}
}

// autoTags runs every rule against the normalized front or lowercased
// back. A rule tag is only added when it is allowed, not blocked, and
// not already on the card.
func (s *Schema) autoTags(front, back string, existing []string) []string {
	normFront := greek.NormalizeForMatch(front)
	normBack := strings.ToLower(strings.TrimSpace(back))

	present := make(map[string]struct{}, len(existing))
	for _, tag := range existing {
		present[tag] = struct{}{}
	}

	var added []string
	for _, rule := range s.AutoTagRules {
		var text string
		switch rule.MatchField {
		case "front":
			text = normFront
		case "back":
			text = normBack
		default:
			continue
		}
		if !rule.Pattern.MatchString(text) {
			continue
		}
		for _, tag := range rule.Tags {
			norm := s.normalizeTag(tag)
			if !contains(s.Allowed, norm) || contains(s.Blocked, norm) {
				continue
			}
			if _, ok := present[norm]; ok {
				continue
			}
			present[norm] = struct{}{}
			added = append(added, norm)
		}
	}
	return added
}

func contains(set map[string]struct{}, tag string) bool {
	_, ok := set[tag]
	return ok
}

func appendUnique(list []string, tag string) []string {
	for _, t := range list {
		if t == tag {
			return list
		}
	}
	return append(list, tag)
}
