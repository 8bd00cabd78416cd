package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/ludo-technologies/codesim/domain"
)

// ConfigFileName is the project configuration file looked up by every command
const ConfigFileName = ".codesim.toml"

// Config represents the main configuration structure
type Config struct {
	Compare   CompareConfig   `toml:"compare"`
	Input     InputConfig     `toml:"input"`
	Output    OutputConfig    `toml:"output"`
	Batch     BatchConfig     `toml:"batch"`
	Languages LanguagesConfig `toml:"languages"`
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
}

// CompareConfig holds comparison settings
type CompareConfig struct {
	// Threshold is the clone-verdict threshold; predicates fire when a score is strictly above it
	Threshold float64 `toml:"threshold"`

	// Language forces a language; empty means detect from file extensions
	Language string `toml:"language"`
}

// InputConfig holds file discovery and input limits
type InputConfig struct {
	IncludePatterns   []string `toml:"include_patterns"`
	ExcludePatterns   []string `toml:"exclude_patterns"`
	Recursive         bool     `toml:"recursive"`
	MaxInputBytes     int64    `toml:"max_input_bytes"`
	MaxArchiveEntries int      `toml:"max_archive_entries"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
	ShowStats bool   `toml:"show_stats"`
}

// BatchConfig holds all-pairs comparison settings
type BatchConfig struct {
	MaxConcurrency int     `toml:"max_concurrency"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MinCombined    float64 `toml:"min_combined"`
	OnlyClones     bool    `toml:"only_clones"`
	// Prefilter skips pairs that share no MinHash/LSH bucket
	Prefilter bool `toml:"prefilter"`
}

// LanguagesConfig extends the built-in language definitions
type LanguagesConfig struct {
	// ExtraKeywords adds words to a language's identifier exclusion list, keyed by language tag
	ExtraKeywords map[string][]string `toml:"extra_keywords"`
}

// LogConfig configures the rotating log file
type LogConfig struct {
	Filename   string `toml:"filename"`
	Level      string `toml:"level"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

// ServerConfig configures `codesim serve`
type ServerConfig struct {
	Address     string `toml:"address"`
	MaxUploadMB int    `toml:"max_upload_mb"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Threshold: domain.DefaultThreshold,
		},
		Input: InputConfig{
			IncludePatterns:   []string{"**/*"},
			ExcludePatterns:   []string{"**/node_modules/**", "**/vendor/**", "**/.git/**"},
			Recursive:         true,
			MaxInputBytes:     domain.DefaultMaxInputBytes,
			MaxArchiveEntries: domain.DefaultMaxArchiveEntries,
		},
		Output: OutputConfig{
			Format:    string(domain.OutputFormatText),
			ShowStats: true,
		},
		Batch: BatchConfig{
			MaxConcurrency: domain.DefaultBatchConcurrency,
			TimeoutSeconds: int(domain.DefaultBatchTimeout / time.Second),
			MinCombined:    domain.DefaultBatchMinCombined,
		},
		Languages: LanguagesConfig{
			ExtraKeywords: map[string][]string{},
		},
		Log: LogConfig{
			Filename:   domain.DefaultLogFilename,
			Level:      domain.DefaultLogLevel,
			MaxSize:    domain.DefaultLogMaxSizeMB,
			MaxBackups: domain.DefaultLogMaxBackups,
			MaxAge:     domain.DefaultLogMaxAgeDays,
			Compress:   true,
		},
		Server: ServerConfig{
			Address:     domain.DefaultServerAddress,
			MaxUploadMB: domain.DefaultMaxUploadMB,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Compare.Threshold < 0.0 || c.Compare.Threshold > 1.0 {
		return fmt.Errorf("compare.threshold must be between 0.0 and 1.0, got %v", c.Compare.Threshold)
	}
	if c.Compare.Language != "" {
		if _, err := domain.ParseLanguage(c.Compare.Language); err != nil {
			return fmt.Errorf("compare.language: %w", err)
		}
	}
	if c.Input.MaxInputBytes < 0 {
		return fmt.Errorf("input.max_input_bytes must be >= 0, got %d", c.Input.MaxInputBytes)
	}
	if c.Input.MaxArchiveEntries < 1 {
		return fmt.Errorf("input.max_archive_entries must be >= 1, got %d", c.Input.MaxArchiveEntries)
	}
	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Batch.MaxConcurrency < 1 {
		return fmt.Errorf("batch.max_concurrency must be >= 1, got %d", c.Batch.MaxConcurrency)
	}
	if c.Batch.TimeoutSeconds < 0 {
		return fmt.Errorf("batch.timeout_seconds must be >= 0, got %d", c.Batch.TimeoutSeconds)
	}
	if c.Batch.MinCombined < 0.0 || c.Batch.MinCombined > 1.0 {
		return fmt.Errorf("batch.min_combined must be between 0.0 and 1.0, got %v", c.Batch.MinCombined)
	}
	if _, err := c.ExtraKeywords(); err != nil {
		return err
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be >= 1, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

// ExtraKeywords resolves the language tags of [languages].extra_keywords
func (c *Config) ExtraKeywords() (map[domain.Language][]string, error) {
	out := make(map[domain.Language][]string, len(c.Languages.ExtraKeywords))
	tags := make([]string, 0, len(c.Languages.ExtraKeywords))
	for tag := range c.Languages.ExtraKeywords {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		lang, err := domain.ParseLanguage(tag)
		if err != nil {
			return nil, fmt.Errorf("languages.extra_keywords: %w", err)
		}
		out[lang] = append(out[lang], c.Languages.ExtraKeywords[tag]...)
	}
	return out, nil
}

// BatchTimeout returns the batch timeout as a duration; 0 means no timeout
func (c *Config) BatchTimeout() time.Duration {
	return time.Duration(c.Batch.TimeoutSeconds) * time.Second
}
