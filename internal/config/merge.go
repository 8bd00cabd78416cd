package config

import (
	"time"
)

// Flag names shared by the CLI commands and the override merge.
const (
	FlagThreshold      = "threshold"
	FlagLanguage       = "language"
	FlagFormat         = "format"
	FlagRecursive      = "recursive"
	FlagInclude        = "include"
	FlagExclude        = "exclude"
	FlagMaxInputBytes  = "max-input-bytes"
	FlagMaxConcurrency = "concurrency"
	FlagTimeout        = "timeout"
	FlagMinCombined    = "min-combined"
	FlagOnlyClones     = "only-clones"
	FlagPrefilter      = "prefilter"
	FlagShowStats      = "stats"
	FlagAddress        = "addr"
	FlagLogLevel       = "log-level"
)

// Overrides carries command-line values. Only those whose flag was set
// replace the loaded configuration.
type Overrides struct {
	Threshold      float64
	Language       string
	Format         string
	Recursive      bool
	Include        []string
	Exclude        []string
	MaxInputBytes  int64
	MaxConcurrency int
	Timeout        time.Duration
	MinCombined    float64
	OnlyClones     bool
	Prefilter      bool
	ShowStats      bool
	Address        string
	LogLevel       string
}

// ApplyOverrides returns a copy of cfg with every explicitly set flag applied.
// The result is validated.
func ApplyOverrides(cfg *Config, o Overrides, ft *FlagTracker) (*Config, error) {
	merged := *cfg

	merged.Compare.Threshold = ft.MergeFloat64(cfg.Compare.Threshold, o.Threshold, FlagThreshold)
	merged.Compare.Language = ft.MergeString(cfg.Compare.Language, o.Language, FlagLanguage)

	merged.Input.Recursive = ft.MergeBool(cfg.Input.Recursive, o.Recursive, FlagRecursive)
	merged.Input.IncludePatterns = ft.MergeStringSlice(cfg.Input.IncludePatterns, o.Include, FlagInclude)
	merged.Input.ExcludePatterns = ft.MergeStringSlice(cfg.Input.ExcludePatterns, o.Exclude, FlagExclude)
	merged.Input.MaxInputBytes = ft.MergeInt64(cfg.Input.MaxInputBytes, o.MaxInputBytes, FlagMaxInputBytes)

	merged.Output.Format = ft.MergeString(cfg.Output.Format, o.Format, FlagFormat)
	merged.Output.ShowStats = ft.MergeBool(cfg.Output.ShowStats, o.ShowStats, FlagShowStats)

	merged.Batch.MaxConcurrency = ft.MergeInt(cfg.Batch.MaxConcurrency, o.MaxConcurrency, FlagMaxConcurrency)
	timeout := ft.MergeDuration(cfg.BatchTimeout(), o.Timeout, FlagTimeout)
	merged.Batch.TimeoutSeconds = int(timeout / time.Second)
	merged.Batch.MinCombined = ft.MergeFloat64(cfg.Batch.MinCombined, o.MinCombined, FlagMinCombined)
	merged.Batch.OnlyClones = ft.MergeBool(cfg.Batch.OnlyClones, o.OnlyClones, FlagOnlyClones)
	merged.Batch.Prefilter = ft.MergeBool(cfg.Batch.Prefilter, o.Prefilter, FlagPrefilter)

	merged.Server.Address = ft.MergeString(cfg.Server.Address, o.Address, FlagAddress)
	merged.Log.Level = ft.MergeString(cfg.Log.Level, o.LogLevel, FlagLogLevel)

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
