package report

import (
	"fmt"
	"io"

	"github.com/hellenika/hoplite/pkg/lint"
)

// SummaryOptions selects which feature sections the summary prints. The
// core duplicate counts always print.
type SummaryOptions struct {
	TagHygiene      bool
	Cloze           bool
	Context         bool
	Recommendations bool
}

// PrintSummary writes the human-readable run summary.
func PrintSummary(w io.Writer, results []*lint.Result, opts SummaryOptions) {
	if opts.TagHygiene {
		printTagSummary(w, results)
	}
	if opts.Cloze {
		printClozeSummary(w, results)
	}
	if opts.Context {
		printContextSummary(w, results)
	}
	if opts.Recommendations {
		printRecommendationSummary(w, results)
	}
	printSelfDuplicateSummary(w, results)
	printDuplicateSummary(w, results)
}

func printTagSummary(w io.Writer, results []*lint.Result) {
	var total, kept, deleted, unknown, autoAdded, needReview int
	for _, r := range results {
		t := r.TagReport
		if t == nil {
			continue
		}
		kept += len(t.Kept)
		deleted += len(t.Deleted)
		unknown += len(t.Unknown)
		autoAdded += len(t.AutoAdded)
		total += len(t.Kept) + len(t.Deleted) + len(t.Unknown)
		if t.NeedsReview {
			needReview++
		}
	}
	fmt.Fprintln(w, "Tag Hygiene Summary:")
	fmt.Fprintf(w, "  Total tags processed: %d\n", total)
	fmt.Fprintf(w, "  Kept (allowed):       %d\n", kept)
	fmt.Fprintf(w, "  Deleted (blocked):    %d\n", deleted)
	fmt.Fprintf(w, "  Unknown (review):     %d\n", unknown)
	fmt.Fprintf(w, "  Auto-added:           %d\n", autoAdded)
	fmt.Fprintf(w, "  Cards needing review: %d\n", needReview)
	fmt.Fprintln(w)
}

func printClozeSummary(w io.Writer, results []*lint.Result) {
	counts := map[string]int{}
	var clozeTotal, nonCloze int
	for _, r := range results {
		if r.Cloze == nil {
			continue
		}
		if r.Cloze.IsCloze {
			clozeTotal++
			counts[r.Cloze.Quality]++
		} else {
			nonCloze++
		}
	}
	fmt.Fprintln(w, "Cloze Validation Summary:")
	fmt.Fprintf(w, "  Total cloze cards:     %d\n", clozeTotal)
	fmt.Fprintf(w, "  Total non-cloze cards: %d\n", nonCloze)
	if clozeTotal > 0 {
		fmt.Fprintln(w, "  Quality breakdown:")
		for _, q := range []string{"excellent", "good", "weak", "poor"} {
			n := counts[q]
			pct := float64(n) / float64(clozeTotal) * 100
			fmt.Fprintf(w, "    %9s: %3d (%5.1f%%)\n", q, n, pct)
		}
	}
	fmt.Fprintln(w)
}

func printContextSummary(w io.Writer, results []*lint.Result) {
	levels := map[string]int{}
	recs := map[string]int{}
	for _, r := range results {
		if r.Context == nil {
			continue
		}
		levels[r.Context.Level]++
		recs[r.Context.Recommendation]++
	}
	fmt.Fprintln(w, "Context Analysis Summary:")
	fmt.Fprintln(w, "  Context levels:")
	fmt.Fprintf(w, "    Rich context:       %d\n", levels["rich_context"])
	fmt.Fprintf(w, "    Minimal context:    %d\n", levels["minimal_context"])
	fmt.Fprintf(w, "    Phrase fragment:    %d\n", levels["phrase_fragment"])
	fmt.Fprintf(w, "    Isolated:           %d\n", levels["isolated"])
	fmt.Fprintln(w, "  Recommendations:")
	fmt.Fprintf(w, "    Good:               %d\n", recs["good"])
	fmt.Fprintf(w, "    Consider enhancing: %d\n", recs["consider_enhancing"])
	fmt.Fprintf(w, "    Needs context:      %d\n", recs["needs_context"])
	fmt.Fprintln(w)
}

func printRecommendationSummary(w io.Writer, results []*lint.Result) {
	var analyzed, recommended, high, med, low int
	for _, r := range results {
		if r.ClozeAdvice == nil {
			continue
		}
		analyzed++
		if r.ClozeAdvice.ShouldCloze {
			recommended++
		}
		switch c := r.ClozeAdvice.Confidence; {
		case c >= 0.75:
			high++
		case c >= 0.5:
			med++
		case c >= 0.3:
			low++
		}
	}
	fmt.Fprintln(w, "Cloze Recommendation Summary:")
	fmt.Fprintf(w, "  Total cards analyzed:        %d\n", analyzed)
	fmt.Fprintf(w, "  Recommended for cloze:       %d\n", recommended)
	fmt.Fprintf(w, "    High confidence (>=0.75):  %d\n", high)
	fmt.Fprintf(w, "    Med confidence (0.5-0.75): %d\n", med)
	fmt.Fprintf(w, "    Low confidence (0.3-0.5):  %d\n", low)
	fmt.Fprintln(w)
}

func printSelfDuplicateSummary(w io.Writer, results []*lint.Result) {
	counts := map[lint.Level]int{}
	for _, r := range results {
		if r.SelfDuplicateLevel != lint.LevelNone {
			counts[r.SelfDuplicateLevel]++
		}
	}
	total := counts[lint.LevelHigh] + counts[lint.LevelMedium] + counts[lint.LevelLow]
	if total == 0 {
		return
	}
	fmt.Fprintln(w, "Self-Duplicate Detection Summary (within candidates):")
	for _, level := range []lint.Level{lint.LevelHigh, lint.LevelMedium, lint.LevelLow} {
		if counts[level] > 0 {
			fmt.Fprintf(w, "  %6s: %d\n", level, counts[level])
		}
	}
	fmt.Fprintf(w, "  total : %d\n", total)
	fmt.Fprintln(w)
}

func printDuplicateSummary(w io.Writer, results []*lint.Result) {
	counts := map[lint.Level]int{}
	for _, r := range results {
		counts[r.WarningLevel]++
	}
	fmt.Fprintln(w, "Duplicate Detection Summary:")
	for _, level := range []lint.Level{lint.LevelHigh, lint.LevelMedium, lint.LevelLow, lint.LevelNone} {
		fmt.Fprintf(w, "  %6s: %d\n", level, counts[level])
	}
	fmt.Fprintf(w, "  total : %d\n", len(results))
}
