package config

import (
	"testing"
	"time"

	"github.com/ludo-technologies/codesim/domain"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Compare.Threshold != 0.8 {
		t.Errorf("Expected threshold 0.8, got %v", config.Compare.Threshold)
	}
	if config.Compare.Language != "" {
		t.Errorf("Expected language detection by default, got %q", config.Compare.Language)
	}
	if config.Output.Format != "text" {
		t.Errorf("Expected output format 'text', got %q", config.Output.Format)
	}
	if !config.Input.Recursive {
		t.Error("Expected recursive discovery by default")
	}
	if config.Input.MaxInputBytes != 1<<20 {
		t.Errorf("Expected max input 1 MiB, got %d", config.Input.MaxInputBytes)
	}
	if config.BatchTimeout() != 5*time.Minute {
		t.Errorf("Expected batch timeout 5m, got %v", config.BatchTimeout())
	}
	if config.Server.Address != ":8080" {
		t.Errorf("Expected server address ':8080', got %q", config.Server.Address)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError bool
	}{
		{
			name:        "valid default config",
			modify:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "threshold above one",
			modify:      func(c *Config) { c.Compare.Threshold = 1.2 },
			expectError: true,
		},
		{
			name:        "negative threshold",
			modify:      func(c *Config) { c.Compare.Threshold = -0.1 },
			expectError: true,
		},
		{
			name:        "threshold bounds are inclusive",
			modify:      func(c *Config) { c.Compare.Threshold = 1.0 },
			expectError: false,
		},
		{
			name:        "language alias",
			modify:      func(c *Config) { c.Compare.Language = "py" },
			expectError: false,
		},
		{
			name:        "unknown language",
			modify:      func(c *Config) { c.Compare.Language = "cobol" },
			expectError: true,
		},
		{
			name:        "unknown output format",
			modify:      func(c *Config) { c.Output.Format = "xml" },
			expectError: true,
		},
		{
			name:        "zero concurrency",
			modify:      func(c *Config) { c.Batch.MaxConcurrency = 0 },
			expectError: true,
		},
		{
			name:        "negative max input",
			modify:      func(c *Config) { c.Input.MaxInputBytes = -1 },
			expectError: true,
		},
		{
			name:        "min combined out of range",
			modify:      func(c *Config) { c.Batch.MinCombined = 2 },
			expectError: true,
		},
		{
			name: "extra keywords for unknown language",
			modify: func(c *Config) {
				c.Languages.ExtraKeywords["klingon"] = []string{"qapla"}
			},
			expectError: true,
		},
		{
			name:        "zero upload limit",
			modify:      func(c *Config) { c.Server.MaxUploadMB = 0 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected validation error, but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no validation error, but got: %v", err)
			}
		})
	}
}

func TestConfigExtraKeywords(t *testing.T) {
	config := DefaultConfig()
	config.Languages.ExtraKeywords = map[string][]string{
		"py":     {"self"},
		"python": {"cls"},
		"golang": {"iota"},
	}

	got, err := config.ExtraKeywords()
	if err != nil {
		t.Fatalf("ExtraKeywords: %v", err)
	}
	// aliases fold onto one language
	if len(got[domain.LanguagePython]) != 2 {
		t.Errorf("Expected 2 python keywords, got %v", got[domain.LanguagePython])
	}
	if len(got[domain.LanguageGo]) != 1 || got[domain.LanguageGo][0] != "iota" {
		t.Errorf("Expected go keywords [iota], got %v", got[domain.LanguageGo])
	}
}
