package cloze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hellenika/hoplite/pkg/greek"
)

// Recommendation types.
const (
	TypeTargetWord = "target_word"
	TypeMorphology = "morphology"
	TypeNone       = "none"
)

// Recommendation says whether a basic card should be converted to cloze
// format, and how.
type Recommendation struct {
	ShouldCloze       bool    `json:"should_cloze"`
	Type              string  `json:"cloze_type"`
	SuggestedDeletion string  `json:"suggested_deletion"`
	SuggestedFront    string  `json:"suggested_front,omitempty"`
	Hint              string  `json:"cloze_hint"`
	Confidence        float64 `json:"confidence"`
	Reason            string  `json:"reason"`
}

// articleRes matches forms of the Greek definite article, accented or
// bare. Articles are never useful cloze targets.
var articleRes = []*regexp.Regexp{
	regexp.MustCompile(`^[οὁ]$`),
	regexp.MustCompile(`^[ηἡ]$`),
	regexp.MustCompile(`^[τὸτό]$`),
	regexp.MustCompile(`^τ[οόηἡ]ν$`),
	regexp.MustCompile(`^το[ῦυ]$`),
	regexp.MustCompile(`^τ[ῷω]$`),
	regexp.MustCompile(`^ο[ιί]$`),
	regexp.MustCompile(`^α[ιί]$`),
	regexp.MustCompile(`^τ[αά]$`),
	regexp.MustCompile(`^το[υύ]ς$`),
	regexp.MustCompile(`^τ[αά]ς$`),
	regexp.MustCompile(`^των$`),
	regexp.MustCompile(`^το[ιί]ς$`),
}

func isArticle(token string) bool {
	lower := strings.ToLower(token)
	for _, re := range articleRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// identifyTarget picks the most likely vocabulary word to delete. A lone
// non-article token wins outright; verb-tagged cards prefer an early
// token; otherwise the last non-article token is the head word.
func identifyTarget(tokens []string, tags string) string {
	if len(tokens) == 0 {
		return ""
	}

	var nonArticles []string
	for _, tok := range tokens {
		if !isArticle(tok) {
			nonArticles = append(nonArticles, tok)
		}
	}

	if len(nonArticles) == 1 {
		return nonArticles[0]
	}

	if strings.Contains(strings.ToLower(tags), "verb") {
		limit := 2
		if len(tokens) < limit {
			limit = len(tokens)
		}
		for _, tok := range tokens[:limit] {
			if !isArticle(tok) {
				return tok
			}
		}
	}

	if len(nonArticles) > 0 {
		return nonArticles[len(nonArticles)-1]
	}
	return tokens[len(tokens)-1]
}

func skip(reason string) Recommendation {
	return Recommendation{Type: TypeNone, Reason: reason}
}

// Recommend decides whether the card should become a cloze card.
// warningLevel is the duplicate tier already computed for the card; high
// means converting would just mint another duplicate.
func Recommend(front, back, tags, warningLevel string) Recommendation {
	if IsClozeText(front) {
		return skip("already_cloze")
	}

	ctx := AnalyzeContext(front)
	tokens := greek.Tokenize(front)

	if ctx.TokenCount < 3 {
		return skip("insufficient_context")
	}
	if warningLevel == "high" {
		return skip("exact_duplicate")
	}

	confidence := 0.5
	switch ctx.Level {
	case LevelRichContext:
		confidence += 0.3
	case LevelMinimalContext:
		confidence += 0.1
	}
	if warningLevel == "medium" {
		confidence -= 0.2
	}

	target := identifyTarget(tokens, tags)
	if target == "" {
		return skip("no_clear_target")
	}

	clozeType := TypeTargetWord
	hint := "target word"
	lowerTags := strings.ToLower(tags)
	switch {
	case strings.Contains(lowerTags, "verb"):
		clozeType = TypeMorphology
		hint = "verb form"
	case strings.Contains(lowerTags, "noun") || strings.Contains(lowerTags, "adjective"):
		// keep target_word
	default:
		hint = ""
	}

	return Recommendation{
		ShouldCloze:       confidence >= 0.3,
		Type:              clozeType,
		SuggestedDeletion: target,
		SuggestedFront:    strings.Replace(front, target, "{{c1::"+target+"}}", 1),
		Hint:              hint,
		Confidence:        confidence,
		Reason:            fmt.Sprintf("context_%s_tokens_%d", ctx.Level, ctx.TokenCount),
	}
}
