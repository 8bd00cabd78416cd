package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CODESIM_COMPARE_THRESHOLD.
const EnvPrefix = "CODESIM"

func newEnvViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyEnv overrides cfg with CODESIM_* environment variables. Keys follow
// the TOML layout: compare.threshold reads CODESIM_COMPARE_THRESHOLD.
func ApplyEnv(cfg *Config) error {
	v := newEnvViper()

	if v.IsSet("compare.threshold") {
		cfg.Compare.Threshold = v.GetFloat64("compare.threshold")
	}
	if v.IsSet("compare.language") {
		cfg.Compare.Language = v.GetString("compare.language")
	}
	if v.IsSet("input.recursive") {
		cfg.Input.Recursive = v.GetBool("input.recursive")
	}
	if v.IsSet("input.max_input_bytes") {
		cfg.Input.MaxInputBytes = v.GetInt64("input.max_input_bytes")
	}
	if v.IsSet("input.max_archive_entries") {
		cfg.Input.MaxArchiveEntries = v.GetInt("input.max_archive_entries")
	}
	if v.IsSet("output.format") {
		cfg.Output.Format = v.GetString("output.format")
	}
	if v.IsSet("output.directory") {
		cfg.Output.Directory = v.GetString("output.directory")
	}
	if v.IsSet("batch.max_concurrency") {
		cfg.Batch.MaxConcurrency = v.GetInt("batch.max_concurrency")
	}
	if v.IsSet("batch.timeout_seconds") {
		cfg.Batch.TimeoutSeconds = v.GetInt("batch.timeout_seconds")
	}
	if v.IsSet("batch.min_combined") {
		cfg.Batch.MinCombined = v.GetFloat64("batch.min_combined")
	}
	if v.IsSet("batch.prefilter") {
		cfg.Batch.Prefilter = v.GetBool("batch.prefilter")
	}
	if v.IsSet("log.filename") {
		cfg.Log.Filename = v.GetString("log.filename")
	}
	if v.IsSet("log.level") {
		cfg.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("server.address") {
		cfg.Server.Address = v.GetString("server.address")
	}
	if v.IsSet("server.max_upload_mb") {
		cfg.Server.MaxUploadMB = v.GetInt("server.max_upload_mb")
	}

	return cfg.Validate()
}

// Load resolves the configuration the way every command does: defaults, then
// .codesim.toml (explicit path or discovered from startDir), then environment.
func Load(configPath, startDir string) (*Config, string, error) {
	loader := NewTomlConfigLoader()

	var (
		cfg  *Config
		used string
		err  error
	)
	if configPath != "" {
		cfg, err = loader.LoadConfigFile(configPath)
		used = configPath
	} else {
		cfg, used, err = loader.LoadConfig(startDir)
	}
	if err != nil {
		return nil, "", err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, "", err
	}
	return cfg, used, nil
}
