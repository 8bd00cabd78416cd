package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory returns output.directory, or .codesim/reports under the working directory
func resolveOutputDirectory(cfg *config.Config) string {
	if cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".codesim", "reports")
	}
	return filepath.Join(cwd, ".codesim", "reports")
}

// generateOutputFilePath returns a timestamped report path inside an existing output directory
func generateOutputFilePath(command, extension string, cfg *config.Config) (string, error) {
	outputDir := resolveOutputDirectory(cfg)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName(command, extension)), nil
}

// resolveOutput decides where a report goes. An explicit path always wins;
// HTML otherwise gets a generated file, and everything else goes to stdout.
func resolveOutput(command string, format domain.OutputFormat, extension, explicitPath string, stdout io.Writer, cfg *config.Config) (io.Writer, string, error) {
	if explicitPath != "" {
		return nil, explicitPath, nil
	}
	if format != domain.OutputFormatHTML {
		return stdout, "", nil
	}
	path, err := generateOutputFilePath(command, extension, cfg)
	if err != nil {
		return nil, "", domain.NewOutputError("failed to generate output path", err)
	}
	return nil, path, nil
}

// getTargetPathFromArgs extracts the first argument as target path, or returns empty string
func getTargetPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// isInteractiveEnvironment reports whether stderr is a terminal outside CI
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// useColor reports whether text reports on stdout should be colored
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
