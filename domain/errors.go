package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError carrying the same code.
// It lets callers match on the sentinels below with errors.Is.
func (e DomainError) Is(target error) bool {
	var other DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// Domain error codes
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeFileNotFound        = "FILE_NOT_FOUND"
	ErrCodeParseError          = "PARSE_ERROR"
	ErrCodeAnalysisError       = "ANALYSIS_ERROR"
	ErrCodeConfigError         = "CONFIG_ERROR"
	ErrCodeOutputError         = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat   = "UNSUPPORTED_FORMAT"
	ErrCodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"
	ErrCodeDecodeError         = "DECODE_ERROR"
	ErrCodeInputTooLarge       = "INPUT_TOO_LARGE"
)

// Sentinels for errors.Is matching by code.
var (
	ErrInvalidInput        = DomainError{Code: ErrCodeInvalidInput}
	ErrUnsupportedLanguage = DomainError{Code: ErrCodeUnsupportedLanguage}
	ErrDecode              = DomainError{Code: ErrCodeDecodeError}
	ErrInputTooLarge       = DomainError{Code: ErrCodeInputTooLarge}
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates a parse error
func NewParseError(name string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse source: %s", name), cause)
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewUnsupportedLanguageError is returned before any parsing when the
// language tag is not in the registry.
func NewUnsupportedLanguageError(language string) error {
	return NewDomainError(ErrCodeUnsupportedLanguage, fmt.Sprintf("unsupported language: %q", language), nil)
}

// NewDecodeError creates an error for source text that is not valid UTF-8
func NewDecodeError(name string, cause error) error {
	return NewDomainError(ErrCodeDecodeError, fmt.Sprintf("source is not valid UTF-8: %s", name), cause)
}

// NewInputTooLargeError creates an error for inputs over the configured size cap
func NewInputTooLargeError(name string, size, limit int64) error {
	return NewDomainError(ErrCodeInputTooLarge,
		fmt.Sprintf("%s is %d bytes, limit is %d", name, size, limit), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// ErrorCode extracts the domain error code from err, or "" if err carries none.
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
