package greek

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	soundTagRe = regexp.MustCompile(`\[sound:[^\]]+\]`)
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
)

// StripSoundTags removes Anki audio references of the form [sound:file.mp3].
func StripSoundTags(s string) string {
	return soundTagRe.ReplaceAllString(s, " ")
}

// StripHTMLTags removes inline markup tags, keeping the text between them.
func StripHTMLTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, " ")
}

// HasGreekLetter reports whether any rune falls in the Greek and Coptic
// (U+0370–U+03FF) or Greek Extended (U+1F00–U+1FFF) blocks. Mixed-script
// and transliterated input is deliberately out of scope; tokens without a
// Greek rune are simply not lemma material.
func HasGreekLetter(s string) bool {
	for _, r := range s {
		if (r >= 0x0370 && r <= 0x03FF) || (r >= 0x1F00 && r <= 0x1FFF) {
			return true
		}
	}
	return false
}

// IsPurePunct reports whether the token consists entirely of punctuation.
// The empty string counts as pure punctuation.
func IsPurePunct(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

// TrimPunct strips leading and trailing punctuation runes from a token.
func TrimPunct(s string) string {
	return strings.TrimFunc(s, unicode.IsPunct)
}

// Tokenize splits Greek text into word tokens: NFC, markup and audio
// references removed, whitespace split, pure-punctuation tokens dropped.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	t := norm.NFC.String(s)
	t = StripSoundTags(t)
	t = StripHTMLTags(t)
	var tokens []string
	for _, tok := range strings.Fields(t) {
		if IsPurePunct(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
