package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ludo-technologies/codesim/domain"
)

// MockSourceReader is a mock implementation of domain.SourceReader
type MockSourceReader struct {
	mock.Mock
}

func (m *MockSourceReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockSourceReader) IsValidSourceFile(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockSourceReader) CollectSourceFiles(paths []string, recursive bool, includePatterns []string, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSourceReader) ReadSource(path string, language domain.Language) (domain.SourceUnit, error) {
	args := m.Called(path, language)
	return args.Get(0).(domain.SourceUnit), args.Error(1)
}

func TestResolveFilePaths_AllPathsAreFiles(t *testing.T) {
	mockReader := new(MockSourceReader)
	paths := []string{"a.c", "b.c", "c.go"}

	for _, path := range paths {
		mockReader.On("IsValidSourceFile", path).Return(true)
		mockReader.On("FileExists", path).Return(true, nil)
	}

	result, err := ResolveFilePaths(mockReader, paths, false, []string{"**/*.c"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, paths, result)
	mockReader.AssertNotCalled(t, "CollectSourceFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFilePaths_DirectoryIsCollected(t *testing.T) {
	mockReader := new(MockSourceReader)
	paths := []string{"a.c", "src"}
	collected := []string{"a.c", "src/b.c"}

	mockReader.On("IsValidSourceFile", "a.c").Return(true)
	mockReader.On("FileExists", "a.c").Return(true, nil)
	mockReader.On("IsValidSourceFile", "src").Return(false)
	mockReader.On("CollectSourceFiles", paths, true, []string{"**/*"}, []string(nil)).Return(collected, nil)

	result, err := ResolveFilePaths(mockReader, paths, true, []string{"**/*"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, collected, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_ExcludeForcesCollection(t *testing.T) {
	mockReader := new(MockSourceReader)
	paths := []string{"a.c", "a_test.c"}
	exclude := []string{"*_test.c"}

	mockReader.On("CollectSourceFiles", paths, false, []string(nil), exclude).Return([]string{"a.c"}, nil)

	result, err := ResolveFilePaths(mockReader, paths, false, nil, exclude)

	assert.NoError(t, err)
	assert.Equal(t, []string{"a.c"}, result)
	mockReader.AssertNotCalled(t, "FileExists", mock.Anything)
}

func TestResolveFilePaths_MissingFile(t *testing.T) {
	mockReader := new(MockSourceReader)
	paths := []string{"missing.c"}

	mockReader.On("IsValidSourceFile", "missing.c").Return(true)
	mockReader.On("FileExists", "missing.c").Return(false, nil)
	mockReader.On("CollectSourceFiles", paths, true, []string(nil), []string(nil)).
		Return(nil, errors.New("path does not exist"))

	result, err := ResolveFilePaths(mockReader, paths, true, nil, nil)

	assert.Error(t, err)
	assert.Nil(t, result)
}
