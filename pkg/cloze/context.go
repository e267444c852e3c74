package cloze

import (
	"regexp"
	"strings"

	"github.com/hellenika/hoplite/pkg/greek"
)

// Context levels, richest first.
const (
	LevelRichContext    = "rich_context"
	LevelMinimalContext = "minimal_context"
	LevelPhraseFragment = "phrase_fragment"
	LevelIsolated       = "isolated"
)

// ContextAnalysis classifies how much surrounding context a card's front
// gives the learner.
type ContextAnalysis struct {
	Level          string `json:"level"`
	TokenCount     int    `json:"token_count"`
	Recommendation string `json:"recommendation"`
}

// innerRe replaces cloze syntax with its visible content so that the
// deleted words still count toward context size.
var innerRe = regexp.MustCompile(`\{\{c\d+::([^}]+)\}\}`)

var sentenceMarkers = []string{".", ",", ";", "·", ":", "!", "?"}

// AnalyzeContext classifies a card front by token count and sentence
// structure. Cloze markup is unwrapped first so the measurement reflects
// what the learner actually reads.
func AnalyzeContext(front string) ContextAnalysis {
	text := innerRe.ReplaceAllString(front, "$1")
	tokens := greek.Tokenize(text)
	n := len(tokens)

	hasPunct := false
	for _, m := range sentenceMarkers {
		if strings.Contains(text, m) {
			hasPunct = true
			break
		}
	}

	switch {
	case n >= 5:
		return ContextAnalysis{Level: LevelRichContext, TokenCount: n, Recommendation: "good"}
	case n >= 3 && hasPunct:
		return ContextAnalysis{Level: LevelMinimalContext, TokenCount: n, Recommendation: "good"}
	case n >= 3:
		return ContextAnalysis{Level: LevelPhraseFragment, TokenCount: n, Recommendation: "consider_enhancing"}
	case n == 2:
		return ContextAnalysis{Level: LevelPhraseFragment, TokenCount: n, Recommendation: "consider_enhancing"}
	default:
		return ContextAnalysis{Level: LevelIsolated, TokenCount: n, Recommendation: "needs_context"}
	}
}
