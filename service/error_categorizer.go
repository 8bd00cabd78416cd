package service

import (
	"strings"

	"github.com/ludo-technologies/codesim/domain"
)

// categoryPatterns pairs a category with lowercase message fragments
type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: defaultErrorPatterns(),
	}
}

// defaultErrorPatterns lists the message fallbacks in match order. Timeouts
// come first since their messages often mention the failing operation too.
func defaultErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timed out",
			"timeout",
			"deadline",
			"context canceled",
		}},
		{domain.ErrorCategoryConfig, []string{
			".codesim.toml",
			"config",
			"toml",
			"codesim_",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no files found",
			"no supported source files",
			"unsupported language",
			"cannot detect the language",
			"too large",
			"no such file",
			"is a directory",
			"file not found",
			"permission denied",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"syntax",
			"analysis",
			"decode",
			"utf-8",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
			"report",
		}},
	}
}

// Categorize determines the category of an error. Typed domain errors are
// classified by code; anything else falls back to message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	if category, ok := categoryForCode(domain.ErrorCode(err)); ok {
		return &domain.CategorizedError{
			Category: category,
			Message:  ec.getCategoryMessage(category),
			Original: err,
		}
	}

	errMsg := strings.ToLower(err.Error())

	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return &domain.CategorizedError{
				Category: cp.category,
				Message:  ec.getCategoryMessage(cp.category),
				Original: err,
			}
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that both inputs exist and use a supported extension",
			"Pass --language when the extension does not identify the language",
			"Try: codesim languages to list supported languages and aliases",
			"Raise [input].max_input_bytes in .codesim.toml for very large files",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: codesim init to generate a valid config file",
			"Check for syntax errors in .codesim.toml",
			"Check CODESIM_* environment variables for typos",
		},
		domain.ErrorCategoryTimeout: {
			"Compare fewer files at once or raise --timeout",
			"Use --include/--exclude to narrow the batch",
			"Check if any files are unusually large",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Ensure the output directory is writable",
			"Try writing to a different location",
		},
		domain.ErrorCategoryProcessing: {
			"Make sure the inputs are UTF-8 encoded text",
			"Compare the files individually to isolate the problem",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Check the log file (.codesim.log by default)",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to process input files or directories",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Comparison timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while analyzing source code",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}

// categoryForCode maps domain error codes to categories
func categoryForCode(code string) (domain.ErrorCategory, bool) {
	switch code {
	case domain.ErrCodeInvalidInput, domain.ErrCodeFileNotFound, domain.ErrCodeUnsupportedLanguage, domain.ErrCodeInputTooLarge:
		return domain.ErrorCategoryInput, true
	case domain.ErrCodeConfigError:
		return domain.ErrorCategoryConfig, true
	case domain.ErrCodeDecodeError, domain.ErrCodeParseError, domain.ErrCodeAnalysisError:
		return domain.ErrorCategoryProcessing, true
	case domain.ErrCodeOutputError, domain.ErrCodeUnsupportedFormat:
		return domain.ErrorCategoryOutput, true
	}
	return "", false
}
