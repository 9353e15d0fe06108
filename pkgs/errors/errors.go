package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Error types for usage and configuration failures. Lexical problems in the
// TOML text are not errors of this package; they are lexer diagnostics.
const (
	// Construction errors
	ErrNullSource = "NULL_SOURCE"

	// Debug helper errors
	ErrInvalidOffset = "INVALID_OFFSET"

	// CLI errors
	ErrInputRead         = "INPUT_READ_ERROR"
	ErrUnknownTokenKind  = "UNKNOWN_TOKEN_KIND"
	ErrUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrOutputWrite       = "OUTPUT_WRITE_ERROR"
)

// TotoError represents a structured usage error with type and context
type TotoError struct {
	Type    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TotoError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *TotoError) Unwrap() error {
	return e.Cause
}

// New creates a new TotoError
func New(errorType, message string) *TotoError {
	return &TotoError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a new TotoError wrapping an existing error
func Wrap(errorType, message string, cause error) *TotoError {
	return &TotoError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *TotoError) WithContext(key string, value interface{}) *TotoError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *TotoError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewNullSourceError reports a tokenizer constructed without a source buffer
func NewNullSourceError() *TotoError {
	return New(ErrNullSource, "source buffer must not be nil")
}

// NewInvalidOffsetError reports a byte offset outside the source
func NewInvalidOffsetError(offset, length int) *TotoError {
	return New(ErrInvalidOffset, fmt.Sprintf("offset %d is outside source of %d bytes", offset, length)).
		WithContext("offset", offset).
		WithContext("length", length)
}

// NewInputError creates an input-related error
func NewInputError(path string, cause error) *TotoError {
	return Wrap(ErrInputRead, fmt.Sprintf("failed to read '%s'", path), cause).
		WithContext("path", path)
}

// NewUnknownTokenKindError reports a token kind name that does not exist
func NewUnknownTokenKindError(name, suggestion string) *TotoError {
	msg := fmt.Sprintf("unknown token kind '%s'", name)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return New(ErrUnknownTokenKind, msg).
		WithContext("kind", name).
		WithContext("suggestion", suggestion)
}

// NewUnsupportedFormatError reports an output format the CLI cannot produce
func NewUnsupportedFormatError(format string, supported []string) *TotoError {
	return New(ErrUnsupportedFormat, fmt.Sprintf("unsupported format '%s' (use %s)", format, strings.Join(supported, ", "))).
		WithContext("format", format).
		WithContext("supported", supported)
}

// IsErrorType checks if an error, or any error it wraps, is a TotoError of
// the given type
func IsErrorType(err error, errorType string) bool {
	var totoErr *TotoError
	if stderrors.As(err, &totoErr) {
		return totoErr.Type == errorType
	}
	return false
}
