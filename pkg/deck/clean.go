package deck

import (
	"html"
	"strings"

	"github.com/hellenika/hoplite/pkg/greek"
)

// CleanField strips Anki export artifacts from a content field: audio
// references, inline markup, HTML entities, then collapses whitespace.
// The result is still raw card text, not a matching key.
func CleanField(s string) string {
	if s == "" {
		return ""
	}
	t := greek.StripSoundTags(s)
	t = greek.StripHTMLTags(t)
	t = html.UnescapeString(t)
	return strings.Join(strings.Fields(t), " ")
}

// GlossKey builds the English-gloss lookup key: trimmed and lowercased
// only. Gloss matching is case- and whitespace-insensitive, but keeps
// punctuation and accents, unlike Greek matching.
func GlossKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
