package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// tomlFile mirrors .codesim.toml. Pointer fields detect unset values so that
// an explicit zero or false in the file still overrides the default.
type tomlFile struct {
	Compare struct {
		Threshold *float64 `toml:"threshold"`
		Language  string   `toml:"language"`
	} `toml:"compare"`

	Input struct {
		IncludePatterns   []string `toml:"include_patterns"`
		ExcludePatterns   []string `toml:"exclude_patterns"`
		Recursive         *bool    `toml:"recursive"`
		MaxInputBytes     *int64   `toml:"max_input_bytes"`
		MaxArchiveEntries int      `toml:"max_archive_entries"`
	} `toml:"input"`

	Output struct {
		Format    string `toml:"format"`
		Directory string `toml:"directory"`
		ShowStats *bool  `toml:"show_stats"`
	} `toml:"output"`

	Batch struct {
		MaxConcurrency int      `toml:"max_concurrency"`
		TimeoutSeconds *int     `toml:"timeout_seconds"`
		MinCombined    *float64 `toml:"min_combined"`
		OnlyClones     *bool    `toml:"only_clones"`
		Prefilter      *bool    `toml:"prefilter"`
	} `toml:"batch"`

	Languages struct {
		ExtraKeywords map[string][]string `toml:"extra_keywords"`
	} `toml:"languages"`

	Log struct {
		Filename   string `toml:"filename"`
		Level      string `toml:"level"`
		MaxSize    int    `toml:"max_size"`
		MaxBackups *int   `toml:"max_backups"`
		MaxAge     *int   `toml:"max_age"`
		Compress   *bool  `toml:"compress"`
	} `toml:"log"`

	Server struct {
		Address     string `toml:"address"`
		MaxUploadMB int    `toml:"max_upload_mb"`
	} `toml:"server"`
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .codesim.toml by walking up from startDir and merges it
// into the defaults. Without a config file the defaults are returned.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, string, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), "", nil
	}
	cfg, err := l.LoadConfigFile(configPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// LoadConfigFile loads one explicit TOML file and merges it into the defaults.
func (l *TomlConfigLoader) LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	l.merge(cfg, &file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile walks up the directory tree to find .codesim.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// merge copies every value set in the file over the defaults
func (l *TomlConfigLoader) merge(cfg *Config, file *tomlFile) {
	// Compare
	if file.Compare.Threshold != nil {
		cfg.Compare.Threshold = *file.Compare.Threshold
	}
	if file.Compare.Language != "" {
		cfg.Compare.Language = file.Compare.Language
	}

	// Input
	if len(file.Input.IncludePatterns) > 0 {
		cfg.Input.IncludePatterns = file.Input.IncludePatterns
	}
	if file.Input.ExcludePatterns != nil {
		cfg.Input.ExcludePatterns = file.Input.ExcludePatterns
	}
	if file.Input.Recursive != nil {
		cfg.Input.Recursive = *file.Input.Recursive
	}
	if file.Input.MaxInputBytes != nil {
		cfg.Input.MaxInputBytes = *file.Input.MaxInputBytes
	}
	if file.Input.MaxArchiveEntries > 0 {
		cfg.Input.MaxArchiveEntries = file.Input.MaxArchiveEntries
	}

	// Output
	if file.Output.Format != "" {
		cfg.Output.Format = file.Output.Format
	}
	if file.Output.Directory != "" {
		cfg.Output.Directory = file.Output.Directory
	}
	if file.Output.ShowStats != nil {
		cfg.Output.ShowStats = *file.Output.ShowStats
	}

	// Batch
	if file.Batch.MaxConcurrency > 0 {
		cfg.Batch.MaxConcurrency = file.Batch.MaxConcurrency
	}
	if file.Batch.TimeoutSeconds != nil {
		cfg.Batch.TimeoutSeconds = *file.Batch.TimeoutSeconds
	}
	if file.Batch.MinCombined != nil {
		cfg.Batch.MinCombined = *file.Batch.MinCombined
	}
	if file.Batch.OnlyClones != nil {
		cfg.Batch.OnlyClones = *file.Batch.OnlyClones
	}
	if file.Batch.Prefilter != nil {
		cfg.Batch.Prefilter = *file.Batch.Prefilter
	}

	// Languages
	for tag, words := range file.Languages.ExtraKeywords {
		cfg.Languages.ExtraKeywords[tag] = words
	}

	// Log
	if file.Log.Filename != "" {
		cfg.Log.Filename = file.Log.Filename
	}
	if file.Log.Level != "" {
		cfg.Log.Level = file.Log.Level
	}
	if file.Log.MaxSize > 0 {
		cfg.Log.MaxSize = file.Log.MaxSize
	}
	if file.Log.MaxBackups != nil {
		cfg.Log.MaxBackups = *file.Log.MaxBackups
	}
	if file.Log.MaxAge != nil {
		cfg.Log.MaxAge = *file.Log.MaxAge
	}
	if file.Log.Compress != nil {
		cfg.Log.Compress = *file.Log.Compress
	}

	// Server
	if file.Server.Address != "" {
		cfg.Server.Address = file.Server.Address
	}
	if file.Server.MaxUploadMB > 0 {
		cfg.Server.MaxUploadMB = file.Server.MaxUploadMB
	}
}
