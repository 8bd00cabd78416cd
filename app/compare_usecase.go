package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ludo-technologies/codesim/domain"
	svc "github.com/ludo-technologies/codesim/service"
)

// CompareUseCase orchestrates the comparison of two source units
type CompareUseCase struct {
	service   domain.CompareService
	reader    domain.SourceReader
	formatter domain.CompareOutputFormatter
	output    domain.ReportWriter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.CompareService,
	reader domain.SourceReader,
	formatter domain.CompareOutputFormatter,
) *CompareUseCase {
	return &CompareUseCase{
		service:   service,
		reader:    reader,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// Execute compares req.First with req.Second and writes the formatted report
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("output writer or output path is required", nil)
	}

	response, err := uc.CompareAndReturn(ctx, req)
	if err != nil {
		return err
	}

	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatCompare(response, req.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// ExecuteFiles reads two files (or zip archives) and compares them
func (uc *CompareUseCase) ExecuteFiles(ctx context.Context, firstPath, secondPath string, req domain.CompareRequest) error {
	first, second, err := uc.ReadUnits(firstPath, secondPath, req.Language)
	if err != nil {
		return err
	}
	req.First = first
	req.Second = second
	return uc.Execute(ctx, req)
}

// ReadUnits loads both inputs through the source reader
func (uc *CompareUseCase) ReadUnits(firstPath, secondPath string, language domain.Language) (domain.SourceUnit, domain.SourceUnit, error) {
	if uc.reader == nil {
		return domain.SourceUnit{}, domain.SourceUnit{}, domain.NewInvalidInputError("no source reader configured", nil)
	}
	first, err := uc.reader.ReadSource(firstPath, language)
	if err != nil {
		return domain.SourceUnit{}, domain.SourceUnit{}, fmt.Errorf("failed to read %s: %w", firstPath, err)
	}
	second, err := uc.reader.ReadSource(secondPath, language)
	if err != nil {
		return domain.SourceUnit{}, domain.SourceUnit{}, fmt.Errorf("failed to read %s: %w", secondPath, err)
	}
	return first, second, nil
}

// CompareAndReturn compares the units and returns the response without formatting
func (uc *CompareUseCase) CompareAndReturn(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	response, err := uc.service.Compare(ctx, &req)
	if err != nil {
		return nil, err
	}

	slog.Debug("comparison finished",
		"first", req.First.Name,
		"second", req.Second.Name,
		"duration_ms", response.Duration)
	return response, nil
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service   domain.CompareService
	reader    domain.SourceReader
	formatter domain.CompareOutputFormatter
	output    domain.ReportWriter
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the compare service
func (b *CompareUseCaseBuilder) WithService(service domain.CompareService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithSourceReader sets the source reader
func (b *CompareUseCaseBuilder) WithSourceReader(reader domain.SourceReader) *CompareUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *CompareUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CompareUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewCompareUseCase(b.service, b.reader, b.formatter)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}
