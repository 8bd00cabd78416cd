package service

import (
	"fmt"

	"github.com/ludo-technologies/codesim/domain"
)

// OutputFormatResolver resolves output format and file extension from flags.
type OutputFormatResolver struct{}

// NewOutputFormatResolver creates a new resolver
func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// FormatFlags carries the mutually exclusive --json/--yaml/--csv/--html/--dot flags
type FormatFlags struct {
	JSON bool
	YAML bool
	CSV  bool
	HTML bool
	DOT  bool
}

// Determine evaluates format flags and returns the selected format and extension.
// At most one flag may be set; with none, fallback decides (text when empty).
func (r *OutputFormatResolver) Determine(flags FormatFlags, fallback string) (domain.OutputFormat, string, error) {
	candidates := []struct {
		set    bool
		format domain.OutputFormat
	}{
		{flags.HTML, domain.OutputFormatHTML},
		{flags.JSON, domain.OutputFormatJSON},
		{flags.CSV, domain.OutputFormatCSV},
		{flags.YAML, domain.OutputFormatYAML},
		{flags.DOT, domain.OutputFormatDOT},
	}

	var selected []domain.OutputFormat
	for _, c := range candidates {
		if c.set {
			selected = append(selected, c.format)
		}
	}

	switch len(selected) {
	case 0:
		format, err := domain.ParseOutputFormat(fallback)
		if err != nil {
			return "", "", err
		}
		return format, Extension(format), nil
	case 1:
		return selected[0], Extension(selected[0]), nil
	default:
		return "", "", fmt.Errorf("only one output format flag can be specified, got %v", selected)
	}
}

// Extension returns the report file extension for a format; text has none
func Extension(format domain.OutputFormat) string {
	if format == domain.OutputFormatText {
		return ""
	}
	return string(format)
}
