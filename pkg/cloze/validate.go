package cloze

import "github.com/hellenika/hoplite/pkg/greek"

// Analysis is the quality assessment of a cloze-formatted field.
type Analysis struct {
	IsCloze         bool     `json:"is_cloze"`
	Quality         string   `json:"quality"`
	QualityReasons  []string `json:"quality_reasons,omitempty"`
	DeletionCount   int      `json:"deletion_count"`
	ContextTokens   int      `json:"context_tokens"`
	ContentTokens   int      `json:"content_tokens"`
	StopTokens      int      `json:"stop_tokens"`
	DeletedTokens   int      `json:"deleted_tokens"`
	DeletionRatio   float64  `json:"deletion_ratio"`
	DeletedStopOnly bool     `json:"deleted_stop_only"`
	MultipleNumbers bool     `json:"multiple_numbers"`
}

// QualityNA marks fields with no cloze syntax at all.
const (
	QualityNA        = "n/a"
	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityWeak      = "weak"
	QualityPoor      = "poor"
)

// Validate scores a cloze card's deletion quality. A good cloze leaves
// enough surrounding context to cue recall and does not delete the bulk
// of the sentence.
func Validate(text string, stops *greek.StopList) Analysis {
	parsed := Parse(text)
	if !parsed.IsCloze {
		return Analysis{Quality: QualityNA}
	}

	ctxTokens := greek.Tokenize(parsed.ContextText)
	var content, stop int
	for _, tok := range ctxTokens {
		if stops != nil && stops.Contains(tok) {
			stop++
		} else {
			content++
		}
	}

	var deleted int
	stopOnly := true
	numbers := map[int]bool{}
	for _, seg := range parsed.Segments {
		numbers[seg.Number] = true
		toks := greek.Tokenize(seg.Content)
		deleted += len(toks)
		for _, tok := range toks {
			if stops == nil || !stops.Contains(tok) {
				stopOnly = false
			}
		}
	}
	if deleted == 0 {
		stopOnly = false
	}

	total := len(ctxTokens) + deleted
	var ratio float64
	if total > 0 {
		ratio = float64(deleted) / float64(total)
	}

	a := Analysis{
		IsCloze:         true,
		DeletionCount:   len(parsed.Segments),
		ContextTokens:   len(ctxTokens),
		ContentTokens:   content,
		StopTokens:      stop,
		DeletedTokens:   deleted,
		DeletionRatio:   ratio,
		DeletedStopOnly: stopOnly,
		MultipleNumbers: len(numbers) > 1,
	}
	a.Quality, a.QualityReasons = classifyQuality(a)
	return a
}

// classifyQuality grades the deletion against the context it leaves behind
// and, for weak and poor cards, names what dragged the grade down.
func classifyQuality(a Analysis) (string, []string) {
	if a.ContextTokens >= 5 && a.DeletionRatio <= 0.50 && contentShare(a) >= 0.40 {
		return QualityExcellent, nil
	}
	if a.ContextTokens >= 3 && a.DeletionRatio <= 0.60 && contentShare(a) >= 0.30 {
		return QualityGood, nil
	}
	if a.ContextTokens >= 2 || (a.ContextTokens >= 1 && a.DeletionRatio <= 0.80) {
		var reasons []string
		if a.ContextTokens < 3 {
			reasons = append(reasons, "low_context")
		}
		if a.DeletionRatio > 0.50 {
			reasons = append(reasons, "high_deletion")
		}
		if contentShare(a) < 0.30 {
			reasons = append(reasons, "low_content_density")
		}
		return QualityWeak, reasons
	}
	var reasons []string
	switch a.ContextTokens {
	case 0:
		reasons = append(reasons, "no_context")
	case 1:
		reasons = append(reasons, "minimal_context")
	}
	if a.DeletionRatio > 0.80 {
		reasons = append(reasons, "very_high_deletion")
	}
	if contentShare(a) == 0 && a.ContextTokens > 0 {
		reasons = append(reasons, "all_stop_words")
	}
	return QualityPoor, reasons
}

// contentShare is the fraction of context tokens that carry meaning.
func contentShare(a Analysis) float64 {
	if a.ContextTokens == 0 {
		return 0
	}
	return float64(a.ContentTokens) / float64(a.ContextTokens)
}
