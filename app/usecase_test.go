package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codesim/domain"
)

// Mocks
type mockCompareService struct {
	compareResp *domain.CompareResponse
	batchResp   *domain.BatchResponse
	err         error
	lastCompare *domain.CompareRequest
	lastBatch   *domain.BatchRequest
}

func (m *mockCompareService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	m.lastCompare = req
	return m.compareResp, m.err
}

func (m *mockCompareService) CompareBatch(ctx context.Context, req *domain.BatchRequest) (*domain.BatchResponse, error) {
	m.lastBatch = req
	return m.batchResp, m.err
}

type mockFormatter struct {
	compareCalled bool
	batchCalled   bool
	lastFormat    domain.OutputFormat
}

func (m *mockFormatter) FormatCompare(resp *domain.CompareResponse, format domain.OutputFormat, w io.Writer) error {
	m.compareCalled = true
	m.lastFormat = format
	_, err := io.WriteString(w, "compare")
	return err
}

func (m *mockFormatter) FormatBatch(resp *domain.BatchResponse, format domain.OutputFormat, w io.Writer) error {
	m.batchCalled = true
	m.lastFormat = format
	_, err := io.WriteString(w, "batch")
	return err
}

type mockReportWriter struct {
	called   bool
	lastPath string
	err      error
}

func (mw *mockReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	mw.called = true
	mw.lastPath = outputPath
	// Simulate writing to buffer instead of filesystem
	var buf bytes.Buffer
	if err := writeFunc(&buf); err != nil {
		return err
	}
	return mw.err
}

func TestCompareUseCase_Execute(t *testing.T) {
	service := &mockCompareService{compareResp: &domain.CompareResponse{Result: &domain.ComparisonResult{}}}
	formatter := &mockFormatter{}
	var out bytes.Buffer

	uc := NewCompareUseCase(service, nil, formatter)
	req := *domain.DefaultCompareRequest()
	req.First = domain.SourceUnit{Name: "a.c", Text: "int a;"}
	req.Second = domain.SourceUnit{Name: "b.c", Text: "int b;"}
	req.OutputWriter = &out

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.True(t, formatter.compareCalled)
	assert.Equal(t, "compare", out.String())
	assert.Equal(t, "a.c", service.lastCompare.First.Name)
}

func TestCompareUseCase_Execute_Errors(t *testing.T) {
	formatter := &mockFormatter{}

	uc := NewCompareUseCase(&mockCompareService{}, nil, formatter)
	err := uc.Execute(context.Background(), *domain.DefaultCompareRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	serviceErr := domain.NewUnsupportedLanguageError("cobol")
	uc = NewCompareUseCase(&mockCompareService{err: serviceErr}, nil, formatter)
	req := *domain.DefaultCompareRequest()
	req.OutputWriter = &bytes.Buffer{}
	err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	assert.False(t, formatter.compareCalled)
}

func TestCompareUseCase_ExecuteFiles(t *testing.T) {
	reader := new(MockSourceReader)
	reader.On("ReadSource", "a.py", domain.LanguagePython).
		Return(domain.SourceUnit{Name: "a.py", Text: "x = 1", Language: domain.LanguagePython}, nil)
	reader.On("ReadSource", "b.py", domain.LanguagePython).
		Return(domain.SourceUnit{Name: "b.py", Text: "y = 2", Language: domain.LanguagePython}, nil)

	service := &mockCompareService{compareResp: &domain.CompareResponse{Result: &domain.ComparisonResult{}}}
	output := &mockReportWriter{}
	uc, err := NewCompareUseCaseBuilder().
		WithService(service).
		WithSourceReader(reader).
		WithFormatter(&mockFormatter{}).
		WithOutputWriter(output).
		Build()
	require.NoError(t, err)

	req := *domain.DefaultCompareRequest()
	req.Language = domain.LanguagePython
	req.OutputPath = "report.json"

	require.NoError(t, uc.ExecuteFiles(context.Background(), "a.py", "b.py", req))
	assert.True(t, output.called)
	assert.Equal(t, "report.json", output.lastPath)
	assert.Equal(t, "y = 2", service.lastCompare.Second.Text)
	reader.AssertExpectations(t)
}

func TestCompareUseCase_ExecuteFiles_ReadError(t *testing.T) {
	reader := new(MockSourceReader)
	reader.On("ReadSource", "a.c", domain.Language("")).
		Return(domain.SourceUnit{}, domain.NewFileNotFoundError("a.c", errors.New("missing")))

	service := &mockCompareService{}
	uc := NewCompareUseCase(service, reader, &mockFormatter{})
	req := *domain.DefaultCompareRequest()
	req.OutputWriter = &bytes.Buffer{}

	err := uc.ExecuteFiles(context.Background(), "a.c", "b.c", req)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
	assert.Nil(t, service.lastCompare)
}

func TestCompareUseCaseBuilder_Build(t *testing.T) {
	_, err := NewCompareUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewCompareUseCaseBuilder().WithService(&mockCompareService{}).Build()
	assert.Error(t, err)
}

func TestBatchUseCase_Execute(t *testing.T) {
	reader := new(MockSourceReader)
	reader.On("IsValidSourceFile", "src").Return(false)
	reader.On("CollectSourceFiles", []string{"src"}, true, []string{"**/*"}, []string{}).
		Return([]string{"src/a.c", "src/b.c"}, nil)

	service := &mockCompareService{batchResp: &domain.BatchResponse{RunID: "r"}}
	formatter := &mockFormatter{}
	output := &mockReportWriter{}

	uc, err := NewBatchUseCaseBuilder().
		WithService(service).
		WithSourceReader(reader).
		WithFormatter(formatter).
		WithOutputWriter(output).
		Build()
	require.NoError(t, err)

	req := *domain.DefaultBatchRequest()
	req.Paths = []string{"src"}
	req.OutputWriter = &bytes.Buffer{}
	req.OutputFormat = domain.OutputFormatCSV

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, []string{"src/a.c", "src/b.c"}, service.lastBatch.Paths)
	assert.True(t, formatter.batchCalled)
	assert.Equal(t, domain.OutputFormatCSV, formatter.lastFormat)
	assert.True(t, output.called)
}

func TestBatchUseCase_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no files", func(t *testing.T) {
		reader := new(MockSourceReader)
		reader.On("IsValidSourceFile", mock.Anything).Return(false)
		reader.On("CollectSourceFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)

		uc := NewBatchUseCase(&mockCompareService{}, reader, &mockFormatter{})
		req := *domain.DefaultBatchRequest()
		req.OutputWriter = &bytes.Buffer{}
		assert.ErrorIs(t, uc.Execute(ctx, req), domain.ErrInvalidInput)
	})

	t.Run("dot is single compare only", func(t *testing.T) {
		uc := NewBatchUseCase(&mockCompareService{}, new(MockSourceReader), &mockFormatter{})
		req := *domain.DefaultBatchRequest()
		req.OutputWriter = &bytes.Buffer{}
		req.OutputFormat = domain.OutputFormatDOT
		err := uc.Execute(ctx, req)
		assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(err))
	})

	t.Run("service failure", func(t *testing.T) {
		reader := new(MockSourceReader)
		reader.On("IsValidSourceFile", "a.c").Return(true)
		reader.On("FileExists", "a.c").Return(true, nil)

		formatter := &mockFormatter{}
		uc := NewBatchUseCase(&mockCompareService{err: errors.New("timed out")}, reader, formatter)
		req := *domain.DefaultBatchRequest()
		req.Paths = []string{"a.c"}
		req.OutputWriter = &bytes.Buffer{}

		_, err := uc.AnalyzeAndReturn(ctx, req)
		assert.ErrorContains(t, err, "timed out")
		assert.False(t, formatter.batchCalled)
	})
}
