package main

import (
	"flag"
	"os"

	"github.com/hellenika/hoplite/pkg/lint"
	"github.com/hellenika/hoplite/pkg/report"
)

// cmdCheck audits the reference deck against itself: every note is
// resolved with its own id excluded, surfacing duplicates that already
// live in the deck.
func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	out := fs.String("out", "", "results CSV output path (omit for summary only)")
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	provider, err := newProvider(cfg, logger)
	if err != nil {
		logger.Error("lemma provider init failed", "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	idx, err := buildIndex(cfg, provider, logger)
	if err != nil {
		logger.Error("deck index build failed", "error", err)
		os.Exit(1)
	}

	results := lint.AnalyzeDeckInternal(idx, provider)
	logger.Info("deck audit complete",
		"notes", idx.Stats().Notes,
		"flagged", len(results))

	if *out != "" {
		if err := report.WriteResults(*out, results); err != nil {
			logger.Error("writing results", "error", err)
			os.Exit(1)
		}
		logger.Info("results written", "path", *out, "rows", len(results))
	}

	report.PrintSummary(os.Stdout, results, report.SummaryOptions{})

	provider.SaveCache()
}
