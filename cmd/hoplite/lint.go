package main

import (
	"flag"
	"os"

	"github.com/hellenika/hoplite/pkg/cloze"
	"github.com/hellenika/hoplite/pkg/greek"
	"github.com/hellenika/hoplite/pkg/lint"
	"github.com/hellenika/hoplite/pkg/report"
	"github.com/hellenika/hoplite/pkg/tags"
)

func cmdLint(args []string) {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	input := fs.String("input", "", "candidate cards CSV (front,back,tags)")
	out := fs.String("out", "", "results CSV output path (omit for summary only)")
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	encoding := fs.String("encoding", "", "input charset (default UTF-8)")
	tagHygiene := fs.Bool("tag-hygiene", false, "check tags against the schema")
	autoTag := fs.Bool("auto-tag", false, "apply auto-tag rules (implies -tag-hygiene)")
	convertTags := fs.Bool("convert-tags", false, "convert legacy tags through the conversion map before hygiene")
	clozeCheck := fs.Bool("cloze", false, "validate cloze deletion quality")
	contextCheck := fs.Bool("context", false, "classify context richness")
	recommend := fs.Bool("recommend", false, "recommend cloze conversions (implies -context)")
	fs.Parse(args)

	logger := newLogger()

	if *input == "" {
		logger.Error("missing required flag: -input")
		fs.Usage()
		os.Exit(2)
	}
	if *autoTag {
		*tagHygiene = true
	}
	if *recommend {
		*contextCheck = true
	}

	cfg := loadConfig(*cfgPath, logger)
	if *encoding == "" {
		*encoding = cfg.Encoding
	}

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
	logger.Info("deck index ready",
		"notes", idx.Stats().Notes,
		"greek_keys", idx.Stats().ExactKeys,
		"lemma_backend", provider.BackendName())

	cands, err := report.ReadCandidates(*input, *encoding)
	if err != nil {
		logger.Error("reading candidates", "error", err)
		os.Exit(1)
	}

	var schema *tags.Schema
	if *tagHygiene {
		schema, err = tags.LoadSchema(cfg.TagSchemaPath)
		if err != nil {
			logger.Error("loading tag schema", "error", err)
			os.Exit(1)
		}
	}
	stops := greek.NewStopList(cfg.StopwordsPath)

	if *convertTags {
		conv, err := tags.LoadConverter(cfg.TagConversionPath)
		if err != nil {
			logger.Error("loading tag conversion map", "error", err)
			os.Exit(1)
		}
		for i := range cands {
			c := conv.ConvertCardTags(cands[i].Tags, schema)
			cands[i].Tags = tags.Format(c.Tags)
		}
	}

	results := lint.AnalyzeCandidates(cands, idx, provider)
	lint.AttachSelfDuplicates(results, lint.SelfDuplicates(cands, provider))

	for i, r := range results {
		if schema != nil {
			r.TagReport = schema.Analyze(cands[i].Front, cands[i].Back, cands[i].Tags, *autoTag)
		}
		if *clozeCheck {
			a := cloze.Validate(cands[i].Front, stops)
			r.Cloze = &a
		}
		if *contextCheck {
			c := cloze.AnalyzeContext(cands[i].Front)
			r.Context = &c
		}
		if *recommend {
			rec := cloze.Recommend(cands[i].Front, cands[i].Back, cands[i].Tags, string(r.WarningLevel))
			r.ClozeAdvice = &rec
		}
	}

	if *out != "" {
		if err := report.WriteResults(*out, results); err != nil {
			logger.Error("writing results", "error", err)
			os.Exit(1)
		}
		logger.Info("results written", "path", *out, "rows", len(results))
	}

	report.PrintSummary(os.Stdout, results, report.SummaryOptions{
		TagHygiene:      *tagHygiene,
		Cloze:           *clozeCheck,
		Context:         *contextCheck,
		Recommendations: *recommend,
	})

	provider.SaveCache()
}
