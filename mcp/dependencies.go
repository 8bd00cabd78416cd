package mcp

import (
	"github.com/ludo-technologies/codesim/app"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/analyzer"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/internal/parser"
	"github.com/ludo-technologies/codesim/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	registry   *parser.Registry
	engine     *analyzer.Engine
	reader     *service.FileReaderImpl
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set. A nil config means defaults;
// invalid extra keywords are ignored so the server still starts.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	registry := parser.NewDefaultRegistry()
	if extra, err := cfg.ExtraKeywords(); err == nil {
		registry = registry.WithExtraKeywords(extra)
	}

	return &Dependencies{
		registry:   registry,
		engine:     analyzer.NewEngine(registry),
		reader:     service.NewFileReader(registry, cfg.Input.MaxInputBytes, cfg.Input.MaxArchiveEntries),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the config file that was loaded (may be empty).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Registry returns the language registry shared by every tool.
func (d *Dependencies) Registry() *parser.Registry {
	return d.registry
}

// BuildCompareUseCase assembles a compare use case over the shared engine.
func (d *Dependencies) BuildCompareUseCase() (*app.CompareUseCase, error) {
	return app.NewCompareUseCaseBuilder().
		WithService(service.NewCompareService(d.engine, d.reader, nil)).
		WithSourceReader(d.reader).
		WithFormatter(service.NewCompareOutputFormatter(false)).
		Build()
}

// BuildBatchUseCase assembles a batch use case over the shared engine.
func (d *Dependencies) BuildBatchUseCase() (*app.BatchUseCase, error) {
	return app.NewBatchUseCaseBuilder().
		WithService(service.NewCompareService(d.engine, d.reader, nil)).
		WithSourceReader(d.reader).
		WithFormatter(service.NewCompareOutputFormatter(false)).
		Build()
}

// configuredLanguage returns compare.language, or "" when unset or invalid
func (d *Dependencies) configuredLanguage() domain.Language {
	if d.config.Compare.Language == "" {
		return ""
	}
	lang, err := domain.ParseLanguage(d.config.Compare.Language)
	if err != nil {
		return ""
	}
	return lang
}
