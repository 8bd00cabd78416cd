package config

import (
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv("CODESIM_COMPARE_THRESHOLD", "0.65")
	t.Setenv("CODESIM_OUTPUT_FORMAT", "json")
	t.Setenv("CODESIM_BATCH_MAX_CONCURRENCY", "7")
	t.Setenv("CODESIM_BATCH_PREFILTER", "true")

	config := DefaultConfig()
	if err := ApplyEnv(config); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if config.Compare.Threshold != 0.65 {
		t.Errorf("Expected threshold 0.65, got %v", config.Compare.Threshold)
	}
	if config.Output.Format != "json" {
		t.Errorf("Expected format json, got %q", config.Output.Format)
	}
	if config.Batch.MaxConcurrency != 7 {
		t.Errorf("Expected concurrency 7, got %d", config.Batch.MaxConcurrency)
	}
	if !config.Batch.Prefilter {
		t.Error("Expected prefilter to be enabled")
	}
	if config.Server.Address != ":8080" {
		t.Errorf("Unset variables must not change config, got %q", config.Server.Address)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("CODESIM_OUTPUT_FORMAT", "pdf")
	if err := ApplyEnv(DefaultConfig()); err == nil {
		t.Error("Expected an error for an unknown output format")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[compare]\nthreshold = 0.7\nlanguage = \"go\"\n")
	t.Setenv("CODESIM_COMPARE_THRESHOLD", "0.75")

	config, used, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != path {
		t.Errorf("Expected %q, got %q", path, used)
	}
	// environment wins over the file
	if config.Compare.Threshold != 0.75 {
		t.Errorf("Expected threshold 0.75, got %v", config.Compare.Threshold)
	}
	if config.Compare.Language != "go" {
		t.Errorf("Expected language from file, got %q", config.Compare.Language)
	}

	if _, _, err := Load(filepath.Join(dir, "missing.toml"), ""); err == nil {
		t.Error("An explicit missing config path should be an error")
	}
}
