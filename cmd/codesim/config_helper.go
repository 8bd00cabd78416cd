package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/analyzer"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/logging"
	"github.com/ludo-technologies/codesim/internal/parser"
	"github.com/ludo-technologies/codesim/service"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// loadCommandConfig resolves the configuration for a command: defaults,
// .codesim.toml, environment, then explicitly set flags. It also installs
// the logger described by the result.
func loadCommandConfig(cmd *cobra.Command, configPath, startDir string, overrides config.Overrides) (*config.Config, error) {
	cfg, used, err := config.Load(configPath, configSearchDir(startDir))
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	overrides.LogLevel = logLevel
	merged, err := config.ApplyOverrides(cfg, overrides, config.NewFlagTrackerFromFlagSet(cmd.Flags()))
	if err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	closeLogging()
	logCloser = logging.Configure(merged.Log, logFile, verbose)
	slog.Debug("configuration loaded",
		"command", cmd.Name(),
		"config_file", used,
		"explicit_flags", len(GetExplicitFlags(cmd)))

	return merged, nil
}

// configSearchDir turns a file argument into the directory to search for .codesim.toml
func configSearchDir(target string) string {
	if target == "" {
		return "."
	}
	if filepath.Ext(target) != "" {
		return filepath.Dir(target)
	}
	return target
}

// engineComponents are the shared building blocks of every command
type engineComponents struct {
	registry *parser.Registry
	engine   *analyzer.Engine
	reader   *service.FileReaderImpl
}

// newEngineComponents builds the language registry, engine and file reader from cfg
func newEngineComponents(cfg *config.Config) (*engineComponents, error) {
	extra, err := cfg.ExtraKeywords()
	if err != nil {
		return nil, domain.NewConfigError("invalid extra keywords", err)
	}

	registry := parser.NewDefaultRegistry().WithExtraKeywords(extra)
	return &engineComponents{
		registry: registry,
		engine:   analyzer.NewEngine(registry),
		reader:   service.NewFileReader(registry, cfg.Input.MaxInputBytes, cfg.Input.MaxArchiveEntries),
	}, nil
}

// configuredLanguage parses compare.language; empty means detect per file
func configuredLanguage(cfg *config.Config) (domain.Language, error) {
	if cfg.Compare.Language == "" {
		return "", nil
	}
	return domain.ParseLanguage(cfg.Compare.Language)
}
