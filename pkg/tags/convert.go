package tags

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Converter rewrites legacy import tags (morphology abbreviations,
// compound tags, chapter markers) into schema-compliant ones and pulls
// organizational metadata out into its own fields.
type Converter struct {
	simple     map[string][]string
	morphology map[string][]string
	compounds  []compoundRule
	chapterRes []*regexp.Regexp
	defaultSrc string
}

type compoundRule struct {
	re          *regexp.Regexp
	replacement []string
}

type converterJSON struct {
	SimpleTagMappings   map[string][]string `json:"simple_tag_mappings"`
	MorphologyMappings  map[string][]string `json:"morphology_mappings"`
	CompoundTagPatterns map[string][]string `json:"compound_tag_patterns"`
	ChapterHandling     struct {
		ExtractPatterns []string `json:"extract_patterns"`
		DefaultSource   string   `json:"default_source"`
	} `json:"chapter_handling"`
}

var sectionRe = regexp.MustCompile(`^wb\d+[a-z]$`)

// LoadConverter reads the conversion mapping JSON. Invalid patterns are
// configuration errors.
func LoadConverter(path string) (*Converter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tag conversion map %s: %w", path, err)
	}
	var raw converterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tag conversion map %s: %w", path, err)
	}

	c := &Converter{
		simple:     lowerKeys(raw.SimpleTagMappings),
		morphology: lowerKeys(raw.MorphologyMappings),
		defaultSrc: raw.ChapterHandling.DefaultSource,
	}
	for pattern, replacement := range raw.CompoundTagPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("tag conversion map %s: pattern %q: %w", path, pattern, err)
		}
		c.compounds = append(c.compounds, compoundRule{re: re, replacement: replacement})
	}
	// Deterministic application order for map-sourced patterns.
	sort.Slice(c.compounds, func(i, j int) bool {
		return c.compounds[i].re.String() < c.compounds[j].re.String()
	})
	for _, pattern := range raw.ChapterHandling.ExtractPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("tag conversion map %s: chapter pattern %q: %w", path, pattern, err)
		}
		c.chapterRes = append(c.chapterRes, re)
	}
	return c, nil
}

func lowerKeys(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// ConvertTag maps one legacy tag to its schema-compliant replacements.
// Unmatched tags pass through unchanged for hygiene to classify.
func (c *Converter) ConvertTag(tag string) []string {
	lower := strings.ToLower(tag)
	if mapped, ok := c.simple[lower]; ok {
		return mapped
	}
	if mapped, ok := c.morphology[lower]; ok {
		return mapped
	}
	for _, rule := range c.compounds {
		m := rule.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		var out []string
		for _, item := range rule.replacement {
			if item == "$1" && len(m) > 1 {
				captured := m[1]
				if mapped, ok := c.simple[captured]; ok {
					out = append(out, mapped...)
				} else if mapped, ok := c.morphology[captured]; ok {
					out = append(out, mapped...)
				}
				continue
			}
			out = append(out, item)
		}
		return out
	}
	return []string{tag}
}

// IsOrganizational reports whether a tag is chapter/section bookkeeping
// that belongs in metadata rather than the tag list.
func (c *Converter) IsOrganizational(tag string) bool {
	lower := strings.ToLower(tag)
	for _, re := range c.chapterRes {
		if re.MatchString(lower) {
			return true
		}
	}
	if lower == "reading" || lower == "passage" {
		return true
	}
	return sectionRe.MatchString(lower)
}

// ExtractMetadata pulls chapter, source, and section information out of
// the original tag list.
func (c *Converter) ExtractMetadata(tagList []string) (chapter, source, section string) {
	source = c.defaultSrc
	for _, tag := range tagList {
		lower := strings.ToLower(tag)
		for _, re := range c.chapterRes {
			m := re.FindStringSubmatch(lower)
			if m == nil {
				continue
			}
			if len(m) > 1 {
				chapter = m[1]
			}
			if strings.Contains(lower, "athenaze") {
				source = "athenaze"
			}
			break
		}
		if lower == "reading" || lower == "passage" {
			section = lower
		} else if sectionRe.MatchString(lower) {
			section = lower
		}
	}
	return chapter, source, section
}

// Conversion is the converted tag set plus extracted metadata for a card.
type Conversion struct {
	Tags    []string `json:"tags"`
	Chapter string   `json:"chapter"`
	Source  string   `json:"source"`
	Section string   `json:"section"`
}

// ConvertCardTags converts every tag on a card, dropping organizational
// tags into metadata. When a schema is supplied, converted tags are also
// filtered against its allowlist.
func (c *Converter) ConvertCardTags(tagsString string, schema *Schema) Conversion {
	original := Parse(tagsString)
	chapter, source, section := c.ExtractMetadata(original)

	seen := make(map[string]struct{})
	var converted []string
	for _, tag := range original {
		if c.IsOrganizational(tag) {
			continue
		}
		for _, out := range c.ConvertTag(tag) {
			if out == "" {
				continue
			}
			if schema != nil && !contains(schema.Allowed, strings.ToLower(out)) {
				continue
			}
			if _, ok := seen[out]; ok {
				continue
			}
			seen[out] = struct{}{}
			converted = append(converted, out)
		}
	}
	sort.Strings(converted)

	return Conversion{Tags: converted, Chapter: chapter, Source: source, Section: section}
}
