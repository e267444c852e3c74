// Package greek provides Unicode normalization, tokenization, and stop-word
// handling for polytonic Greek card text. Every matching key in the linter
// goes through NormalizeForMatch, so the guarantees here (determinism,
// idempotence) are what the duplicate tiers rest on.
package greek

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeNFC applies Unicode canonical composition, stabilizing
// precomposed vs. decomposed accented forms.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// StripAccents removes combining marks (accents, breathings, iota
// subscript written as a mark) while preserving base letters and case.
func StripAccents(s string) string {
	out, _, _ := transform.String(stripMarks, norm.NFC.String(s))
	return out
}

// NormalizeForMatch produces the canonical matching key for Greek text:
// NFC, lowercase, punctuation to spaces, combining marks removed, every
// final sigma folded to medial, whitespace collapsed.
//
// Final sigma is folded on every occurrence, not only in word-final
// position. The existing match tiers depend on that, so the behavior is
// kept as is.
func NormalizeForMatch(s string) string {
	if s == "" {
		return ""
	}
	t := norm.NFC.String(s)
	t = strings.ToLower(t)
	// Punctuation becomes a space rather than vanishing, so "λόγος,λόγου"
	// stays two tokens.
	t = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, t)
	t, _, _ = transform.String(stripMarks, t)
	t = strings.ReplaceAll(t, "ς", "σ")
	return strings.Join(strings.Fields(t), " ")
}
