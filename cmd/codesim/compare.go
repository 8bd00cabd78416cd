package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codesim/app"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/service"
)

// CompareCommand handles the two-input comparison CLI command
type CompareCommand struct {
	configFile    string
	language      string
	threshold     float64
	maxInputBytes int64

	// Inline inputs instead of files
	code1 string
	code2 string

	// Output format flags (only one should be true)
	format     string
	html       bool
	json       bool
	csv        bool
	yaml       bool
	dot        bool
	outputPath string
	noOpen     bool
	stats      bool
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		threshold:     domain.DefaultThreshold,
		maxInputBytes: domain.DefaultMaxInputBytes,
		format:        string(domain.OutputFormatText),
		stats:         true,
	}
}

// CreateCobraCommand creates the Cobra command for comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two source files, archives or snippets",
		Long: `Compare two inputs and report every similarity score and clone verdict.

Inputs can be source files, zip archives (members of one language are joined
in archive order) or inline code given with --code1 and --code2. The language
is detected from the file extension unless --language is set; inline code
always needs --language.

A clone type is reported when its score is strictly greater than the
threshold (default 0.8).

Examples:
  # Compare two files
  codesim compare a.py b.py

  # Compare inline snippets
  codesim compare -l c --code1 'int f(){return 1;}' --code2 'int g(){return 1;}'

  # Write an HTML report and open it
  codesim compare --html a.go b.go

  # Export both structural graphs as Graphviz DOT
  codesim compare --dot a.rs b.rs > graphs.dot`,
		Args: cobra.MaximumNArgs(2),
		RunE: c.runCompare,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&c.language, config.FlagLanguage, "l", "", "Source language (detected from extensions when omitted)")
	cmd.Flags().Float64VarP(&c.threshold, config.FlagThreshold, "t", c.threshold, "Clone threshold; a type is detected when its score is above it (0.0-1.0)")
	cmd.Flags().Int64Var(&c.maxInputBytes, config.FlagMaxInputBytes, c.maxInputBytes, "Maximum size of one input in bytes (0 disables the limit)")
	cmd.Flags().StringVar(&c.code1, "code1", "", "First input as inline code")
	cmd.Flags().StringVar(&c.code2, "code2", "", "Second input as inline code")

	cmd.Flags().StringVarP(&c.format, config.FlagFormat, "f", c.format, "Output format: text, json, yaml, csv, html, dot")
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report")
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report")
	cmd.Flags().BoolVar(&c.dot, "dot", false, "Export the structural graphs as Graphviz DOT")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write the report to this file")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().BoolVar(&c.stats, config.FlagShowStats, c.stats, "Show per-input statistics")

	return cmd
}

func (c *CompareCommand) inline() bool {
	return c.code1 != "" || c.code2 != ""
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	if err := c.validateArgs(args); err != nil {
		return err
	}

	cfg, err := loadCommandConfig(cmd, c.configFile, getTargetPathFromArgs(args), c.overrides())
	if err != nil {
		return err
	}

	request, err := c.createCompareRequest(cmd, cfg)
	if err != nil {
		return err
	}

	components, err := newEngineComponents(cfg)
	if err != nil {
		return err
	}

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewCompareService(components.engine, components.reader, nil)).
		WithSourceReader(components.reader).
		WithFormatter(service.NewCompareOutputFormatter(request.OutputWriter != nil && useColor(request.OutputWriter))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create compare use case: %w", err)
	}

	if c.inline() {
		request.First = domain.SourceUnit{Name: "code1", Text: c.code1}
		request.Second = domain.SourceUnit{Name: "code2", Text: c.code2}
		return useCase.Execute(cmd.Context(), *request)
	}
	return useCase.ExecuteFiles(cmd.Context(), args[0], args[1], *request)
}

func (c *CompareCommand) validateArgs(args []string) error {
	if c.inline() {
		if c.code1 == "" || c.code2 == "" {
			return domain.NewInvalidInputError("--code1 and --code2 must be given together", nil)
		}
		if len(args) > 0 {
			return domain.NewInvalidInputError("file arguments cannot be combined with --code1/--code2", nil)
		}
		return nil
	}
	if len(args) != 2 {
		return domain.NewInvalidInputError(fmt.Sprintf("compare needs two files, got %d", len(args)), nil)
	}
	return nil
}

func (c *CompareCommand) overrides() config.Overrides {
	return config.Overrides{
		Threshold:     c.threshold,
		Language:      c.language,
		Format:        c.format,
		MaxInputBytes: c.maxInputBytes,
		ShowStats:     c.stats,
	}
}

// createCompareRequest creates a compare request from the merged configuration
func (c *CompareCommand) createCompareRequest(cmd *cobra.Command, cfg *config.Config) (*domain.CompareRequest, error) {
	format, extension, err := service.NewOutputFormatResolver().Determine(service.FormatFlags{
		JSON: c.json,
		YAML: c.yaml,
		CSV:  c.csv,
		HTML: c.html,
		DOT:  c.dot,
	}, cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	language, err := configuredLanguage(cfg)
	if err != nil {
		return nil, err
	}

	writer, path, err := resolveOutput("compare", format, extension, c.outputPath, cmd.OutOrStdout(), cfg)
	if err != nil {
		return nil, err
	}

	request := domain.DefaultCompareRequest()
	request.Language = language
	request.Threshold = cfg.Compare.Threshold
	request.MaxInputBytes = cfg.Input.MaxInputBytes
	request.OutputFormat = format
	request.OutputWriter = writer
	request.OutputPath = path
	request.NoOpen = c.noOpen || !isInteractiveEnvironment()
	request.ShowStats = cfg.Output.ShowStats
	request.ConfigPath = c.configFile
	return request, nil
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
