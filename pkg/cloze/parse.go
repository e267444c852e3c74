// Package cloze analyzes cloze-deletion cards: syntax parsing, deletion
// quality scoring, context richness classification, and conversion
// recommendations for cards that would benefit from cloze format.
package cloze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hellenika/hoplite/pkg/greek"
)

// clozeRe matches {{c1::word}} and {{c1::word::hint}}.
var clozeRe = regexp.MustCompile(`\{\{c(\d+)::([^:}]+?)(?:::([^}]+?))?\}\}`)

// Segment is one parsed cloze deletion.
type Segment struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
	Hint    string `json:"hint,omitempty"`
	Raw     string `json:"-"`
}

// ParseResult is the parsed structure of a field that may contain cloze
// syntax.
type ParseResult struct {
	IsCloze     bool      `json:"is_cloze"`
	Segments    []Segment `json:"segments,omitempty"`
	ContextText string    `json:"-"`
	FullText    string    `json:"-"`
}

// IsClozeText reports whether text contains cloze deletion syntax.
func IsClozeText(text string) bool {
	return clozeRe.MatchString(text)
}

// Parse extracts cloze deletions from a field after stripping markup and
// audio references. ContextText is everything outside the deletions.
func Parse(text string) ParseResult {
	if text == "" {
		return ParseResult{FullText: text}
	}
	cleaned := greek.StripHTMLTags(greek.StripSoundTags(text))

	var segments []Segment
	for _, m := range clozeRe.FindAllStringSubmatch(cleaned, -1) {
		n, _ := strconv.Atoi(m[1])
		segments = append(segments, Segment{
			Number:  n,
			Content: strings.TrimSpace(m[2]),
			Hint:    strings.TrimSpace(m[3]),
			Raw:     m[0],
		})
	}

	return ParseResult{
		IsCloze:     len(segments) > 0,
		Segments:    segments,
		ContextText: clozeRe.ReplaceAllString(cleaned, ""),
		FullText:    text,
	}
}
