package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hellenika/hoplite/pkg/deck"
	"github.com/hellenika/hoplite/pkg/lemma"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "lint":
		cmdLint(os.Args[2:])
	case "check":
		cmdCheck(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: hoplite <command>

Commands:
  lint    Check candidate cards against the reference deck
  check   Audit the reference deck against itself
  serve   Start the HTTP API server (or MCP with --mcp)
`)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// newProvider builds the lemma provider from config.
func newProvider(cfg config, logger *slog.Logger) (*lemma.Provider, error) {
	return lemma.NewProvider(lemma.Options{
		BackendKind:   cfg.LemmaBackend,
		BackendURL:    cfg.LemmaBackendURL,
		CachePath:     cfg.LemmaCachePath,
		OverridesPath: cfg.LemmaOverrides,
		StopwordsPath: cfg.StopwordsPath,
		Logger:        logger,
	})
}

// buildIndex loads the deck index, preferring the gob snapshot when one
// is configured and present. A stale or unreadable snapshot falls back
// to a fresh parse of the export.
func buildIndex(cfg config, lem deck.Lemmatizer, logger *slog.Logger) (*deck.Index, error) {
	if cfg.SnapshotPath != "" {
		idx, err := deck.LoadSnapshot(cfg.SnapshotPath)
		if err == nil {
			logger.Info("deck index loaded from snapshot",
				"path", cfg.SnapshotPath, "notes", idx.Stats().Notes)
			return idx, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("snapshot unreadable, rebuilding from export",
				"path", cfg.SnapshotPath, "error", err)
		}
	}

	return rebuildIndex(cfg, lem, logger)
}

// rebuildIndex always parses the export, refreshing the snapshot if one
// is configured. The SIGHUP reload path uses this directly so a stale
// snapshot cannot mask deck changes.
func rebuildIndex(cfg config, lem deck.Lemmatizer, logger *slog.Logger) (*deck.Index, error) {
	fm, err := deck.LoadFieldMap(cfg.FieldMapPath)
	if err != nil {
		return nil, err
	}
	idx, err := deck.BuildFromExport(cfg.ExportPath, fm, lem, logger)
	if err != nil {
		return nil, err
	}

	if cfg.SnapshotPath != "" {
		if err := deck.SaveSnapshot(idx, cfg.SnapshotPath); err != nil {
			logger.Warn("snapshot save failed", "path", cfg.SnapshotPath, "error", err)
		}
	}
	return idx, nil
}
