package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codesim/internal/version"
	"github.com/ludo-technologies/codesim/service"
)

// Global flags shared by every subcommand
var (
	verbose  bool
	logFile  string
	logLevel string

	// logCloser is set once a command has configured logging
	logCloser io.Closer
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codesim",
		Short: "Measure how similar two pieces of source code are",
		Long: `codesim compares source code with several independent similarity
measures and classifies the pair into clone categories.

Measures:
  • Ordered and unordered token similarity, with and without identifiers
  • Identifier (variable name) overlap
  • Structural similarity of syntax-tree graphs
  • A combined score averaging the three main measures

Clone categories range from exact copies through renamed, reordered,
gapped and intertwined code to semantic (type-4) clones.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (overrides log.filename)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewLanguagesCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func closeLogging() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// reportError prints a categorized error with recovery suggestions
func reportError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintf(w, "Category: %s\n", categorized.Category)
	if suggestions := categorizer.GetRecoverySuggestions(categorized.Category); len(suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	closeLogging()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
