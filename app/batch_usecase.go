package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ludo-technologies/codesim/domain"
	svc "github.com/ludo-technologies/codesim/service"
)

// BatchUseCase orchestrates all-pairs comparison across discovered files
type BatchUseCase struct {
	service   domain.CompareService
	reader    domain.SourceReader
	formatter domain.CompareOutputFormatter
	output    domain.ReportWriter
}

// NewBatchUseCase creates a new batch use case
func NewBatchUseCase(
	service domain.CompareService,
	reader domain.SourceReader,
	formatter domain.CompareOutputFormatter,
) *BatchUseCase {
	return &BatchUseCase{
		service:   service,
		reader:    reader,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// prepare validates the request and replaces its paths with the collected files
func (uc *BatchUseCase) prepare(req domain.BatchRequest) (domain.BatchRequest, error) {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return req, domain.NewInvalidInputError("output writer or output path is required", nil)
	}
	if req.OutputFormat == domain.OutputFormatDOT {
		return req, domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}
	if err := req.Validate(); err != nil {
		return req, err
	}

	files, err := ResolveFilePaths(
		uc.reader,
		req.Paths,
		req.Recursive,
		req.IncludePatterns,
		req.ExcludePatterns,
	)
	if err != nil {
		return req, fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		return req, domain.NewInvalidInputError("no supported source files found in the specified paths", nil)
	}

	slog.Info("collected batch inputs", "paths", len(req.Paths), "files", len(files))
	req.Paths = files
	return req, nil
}

// Execute runs the batch and writes the formatted report
func (uc *BatchUseCase) Execute(ctx context.Context, req domain.BatchRequest) error {
	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return err
	}

	var out io.Writer
	if finalReq.OutputPath == "" {
		out = finalReq.OutputWriter
	}
	if err := uc.output.Write(out, finalReq.OutputPath, finalReq.OutputFormat, finalReq.NoOpen, func(w io.Writer) error {
		return uc.formatter.FormatBatch(response, finalReq.OutputFormat, w)
	}); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// AnalyzeAndReturn runs the batch and returns the response without formatting
func (uc *BatchUseCase) AnalyzeAndReturn(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *BatchUseCase) run(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, domain.BatchRequest, error) {
	finalReq, err := uc.prepare(req)
	if err != nil {
		return nil, req, err
	}

	response, err := uc.service.CompareBatch(ctx, &finalReq)
	if err != nil {
		return nil, finalReq, fmt.Errorf("batch comparison failed: %w", err)
	}
	return response, finalReq, nil
}

// BatchUseCaseBuilder provides a builder pattern for creating BatchUseCase
type BatchUseCaseBuilder struct {
	service   domain.CompareService
	reader    domain.SourceReader
	formatter domain.CompareOutputFormatter
	output    domain.ReportWriter
}

// NewBatchUseCaseBuilder creates a new builder
func NewBatchUseCaseBuilder() *BatchUseCaseBuilder {
	return &BatchUseCaseBuilder{}
}

// WithService sets the compare service
func (b *BatchUseCaseBuilder) WithService(service domain.CompareService) *BatchUseCaseBuilder {
	b.service = service
	return b
}

// WithSourceReader sets the source reader
func (b *BatchUseCaseBuilder) WithSourceReader(reader domain.SourceReader) *BatchUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *BatchUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *BatchUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *BatchUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *BatchUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the BatchUseCase with the configured dependencies
func (b *BatchUseCaseBuilder) Build() (*BatchUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("source reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewBatchUseCase(b.service, b.reader, b.formatter)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}
