package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type config struct {
	Addr string `yaml:"addr"`

	ExportPath   string `yaml:"export_path"`
	FieldMapPath string `yaml:"field_map_path"`
	SnapshotPath string `yaml:"snapshot_path"`
	Encoding     string `yaml:"encoding"`

	StopwordsPath     string `yaml:"stopwords_path"`
	LemmaCachePath    string `yaml:"lemma_cache_path"`
	LemmaOverrides    string `yaml:"lemma_overrides_path"`
	LemmaBackend      string `yaml:"lemma_backend"`
	LemmaBackendURL   string `yaml:"lemma_backend_url"`
	TagSchemaPath     string `yaml:"tag_schema_path"`
	TagConversionPath string `yaml:"tag_conversion_path"`
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr:           ":8421",
		ExportPath:     "deck_export.txt",
		FieldMapPath:   "resources/model_field_map.json",
		StopwordsPath:  "resources/greek_stopwords.txt",
		LemmaCachePath: "lemma_cache.json",
		TagSchemaPath:  "resources/tag_schema.json",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
