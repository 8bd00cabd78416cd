package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codesim/app"
	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
	"github.com/ludo-technologies/codesim/service"
)

// BatchCommand handles the all-pairs comparison CLI command
type BatchCommand struct {
	// Input parameters
	configFile      string
	recursive       bool
	includePatterns []string
	excludePatterns []string
	language        string
	maxInputBytes   int64

	// Comparison
	threshold   float64
	minCombined float64
	onlyClones  bool
	prefilter   bool
	concurrency int
	timeout     time.Duration

	// Output format flags (only one should be true)
	format     string
	html       bool
	json       bool
	csv        bool
	yaml       bool
	outputPath string
	noOpen     bool
	stats      bool
	noProgress bool
}

// NewBatchCommand creates a new batch command
func NewBatchCommand() *BatchCommand {
	return &BatchCommand{
		recursive:     true,
		maxInputBytes: domain.DefaultMaxInputBytes,
		threshold:     domain.DefaultThreshold,
		minCombined:   domain.DefaultBatchMinCombined,
		concurrency:   domain.DefaultBatchConcurrency,
		timeout:       domain.DefaultBatchTimeout,
		format:        string(domain.OutputFormatText),
		stats:         true,
	}
}

// CreateCobraCommand creates the Cobra command for batch comparison
func (b *BatchCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Compare every pair of source files under the given paths",
		Long: `Collect source files from files and directories and compare every pair
that shares a language. Each file is parsed once; pairs are compared in
parallel and reported by combined score, highest first.

Files that cannot be read, decoded or parsed are skipped and listed in the
report instead of failing the run.

Examples:
  # Compare all files in the current directory tree
  codesim batch .

  # Only report pairs classified as some clone type
  codesim batch --only-clones src/

  # Skip pairs an LSH index considers dissimilar on large trees
  codesim batch --prefilter --only-clones .

  # Report pairs with combined similarity above 0.6 as CSV
  codesim batch --min-combined 0.6 --csv -o pairs.csv src/ lib/`,
		RunE: b.runBatch,
	}

	cmd.Flags().StringVarP(&b.configFile, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVarP(&b.recursive, config.FlagRecursive, "r", b.recursive, "Recursively collect files from directories")
	cmd.Flags().StringSliceVar(&b.includePatterns, config.FlagInclude, nil, "Glob patterns of files to include (e.g. **/*.go)")
	cmd.Flags().StringSliceVar(&b.excludePatterns, config.FlagExclude, nil, "Glob patterns of files to exclude")
	cmd.Flags().StringVarP(&b.language, config.FlagLanguage, "l", "", "Only compare files of this language")
	cmd.Flags().Int64Var(&b.maxInputBytes, config.FlagMaxInputBytes, b.maxInputBytes, "Maximum size of one input in bytes (0 disables the limit)")

	cmd.Flags().Float64VarP(&b.threshold, config.FlagThreshold, "t", b.threshold, "Clone threshold (0.0-1.0)")
	cmd.Flags().Float64Var(&b.minCombined, config.FlagMinCombined, b.minCombined, "Hide pairs whose combined score is below this value")
	cmd.Flags().BoolVar(&b.onlyClones, config.FlagOnlyClones, false, "Only report pairs with at least one clone type")
	cmd.Flags().BoolVar(&b.prefilter, config.FlagPrefilter, false, "Compare only candidate pairs found by MinHash/LSH")
	cmd.Flags().IntVarP(&b.concurrency, config.FlagMaxConcurrency, "j", b.concurrency, "Number of comparisons run in parallel")
	cmd.Flags().DurationVar(&b.timeout, config.FlagTimeout, b.timeout, "Maximum time for the whole run (e.g. 5m, 30s; 0 disables)")

	cmd.Flags().StringVarP(&b.format, config.FlagFormat, "f", b.format, "Output format: text, json, yaml, csv, html")
	cmd.Flags().BoolVar(&b.html, "html", false, "Generate HTML report")
	cmd.Flags().BoolVar(&b.json, "json", false, "Generate JSON report")
	cmd.Flags().BoolVar(&b.csv, "csv", false, "Generate CSV report")
	cmd.Flags().BoolVar(&b.yaml, "yaml", false, "Generate YAML report")
	cmd.Flags().StringVarP(&b.outputPath, "output", "o", "", "Write the report to this file")
	cmd.Flags().BoolVar(&b.noOpen, "no-open", false, "Don't auto-open HTML in browser")
	cmd.Flags().BoolVar(&b.stats, config.FlagShowStats, b.stats, "Show batch statistics")
	cmd.Flags().BoolVar(&b.noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

// runBatch executes the batch command
func (b *BatchCommand) runBatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	cfg, err := loadCommandConfig(cmd, b.configFile, getTargetPathFromArgs(args), b.overrides())
	if err != nil {
		return err
	}

	request, err := b.createBatchRequest(cmd, cfg, args)
	if err != nil {
		return err
	}

	components, err := newEngineComponents(cfg)
	if err != nil {
		return err
	}

	var progress domain.ProgressManager
	if !b.noProgress {
		progress = service.NewProgressManager("Comparing pairs")
		defer progress.Close()
	}

	useCase, err := app.NewBatchUseCaseBuilder().
		WithService(service.NewCompareService(components.engine, components.reader, progress)).
		WithSourceReader(components.reader).
		WithFormatter(service.NewCompareOutputFormatter(request.OutputWriter != nil && useColor(request.OutputWriter))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create batch use case: %w", err)
	}

	return useCase.Execute(cmd.Context(), *request)
}

func (b *BatchCommand) overrides() config.Overrides {
	return config.Overrides{
		Threshold:      b.threshold,
		Language:       b.language,
		Format:         b.format,
		Recursive:      b.recursive,
		Include:        b.includePatterns,
		Exclude:        b.excludePatterns,
		MaxInputBytes:  b.maxInputBytes,
		MaxConcurrency: b.concurrency,
		Timeout:        b.timeout,
		MinCombined:    b.minCombined,
		OnlyClones:     b.onlyClones,
		Prefilter:      b.prefilter,
		ShowStats:      b.stats,
	}
}

// createBatchRequest creates a batch request from the merged configuration
func (b *BatchCommand) createBatchRequest(cmd *cobra.Command, cfg *config.Config, paths []string) (*domain.BatchRequest, error) {
	format, extension, err := service.NewOutputFormatResolver().Determine(service.FormatFlags{
		JSON: b.json,
		YAML: b.yaml,
		CSV:  b.csv,
		HTML: b.html,
	}, cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	language, err := configuredLanguage(cfg)
	if err != nil {
		return nil, err
	}

	writer, path, err := resolveOutput("batch", format, extension, b.outputPath, cmd.OutOrStdout(), cfg)
	if err != nil {
		return nil, err
	}

	request := domain.DefaultBatchRequest()
	request.Paths = paths
	request.Recursive = cfg.Input.Recursive
	request.IncludePatterns = cfg.Input.IncludePatterns
	request.ExcludePatterns = cfg.Input.ExcludePatterns
	request.Language = language
	request.Threshold = cfg.Compare.Threshold
	request.MaxInputBytes = cfg.Input.MaxInputBytes
	request.MinCombined = cfg.Batch.MinCombined
	request.OnlyClones = cfg.Batch.OnlyClones
	request.Prefilter = cfg.Batch.Prefilter
	request.MaxConcurrency = cfg.Batch.MaxConcurrency
	request.Timeout = cfg.BatchTimeout()
	request.OutputFormat = format
	request.OutputWriter = writer
	request.OutputPath = path
	request.NoOpen = b.noOpen || !isInteractiveEnvironment()
	request.ShowStats = cfg.Output.ShowStats
	request.ConfigPath = b.configFile
	return request, nil
}

// NewBatchCmd creates and returns the batch cobra command
func NewBatchCmd() *cobra.Command {
	return NewBatchCommand().CreateCobraCommand()
}
