// Package errors provides the two error channels of the compiler: structured
// CompilerError values for driver failures and internal invariant breaches,
// and Diagnostic records for problems in user templates.
//
// The channels never mix. A malformed template yields diagnostics and still
// compiles; a broken tree handed to codegen panics through Assert.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeFixture    ErrorType = "fixture"
	ErrorTypeInternal   ErrorType = "internal"
)

// CompilerError is a structured error type with context.
type CompilerError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	FilePath    string
	Line        int
	Column      int
	Recoverable bool
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				location += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *CompilerError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *CompilerError) Is(target error) bool {
	var t *CompilerError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *CompilerError) WithContext(key string, value interface{}) *CompilerError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithLocation adds file location information.
func (e *CompilerError) WithLocation(filePath string, line, column int) *CompilerError {
	e.FilePath = filePath
	e.Line = line
	e.Column = column

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *CompilerError {
	return &CompilerError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *CompilerError {
	return &CompilerError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *CompilerError {
	return &CompilerError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewFixtureError creates an error for an AST fixture that cannot be decoded.
func NewFixtureError(message string, cause error) *CompilerError {
	return &CompilerError{
		Type:        ErrorTypeFixture,
		Code:        ErrCodeFixtureInvalid,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *CompilerError {
	return &CompilerError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var ce *CompilerError
	if errors.As(err, &ce) {
		return ce.Recoverable
	}

	return false
}

// IsInternal checks if an error is an internal invariant breach.
func IsInternal(err error) bool {
	var ce *CompilerError
	if errors.As(err, &ce) {
		return ce.Type == ErrorTypeInternal
	}

	return false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger Logger
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
	Fatal(ctx context.Context, err error, msg string, fields ...interface{})
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs an error at a level matching its type.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil || h.logger == nil {
		return
	}

	var ce *CompilerError
	if !errors.As(err, &ce) {
		h.logger.Error(ctx, err, "Unhandled error occurred")
		return
	}

	switch ce.Type {
	case ErrorTypeInternal:
		h.logger.Fatal(ctx, ce, "Internal compiler error",
			"type", ce.Type,
			"code", ce.Code)
	case ErrorTypeValidation, ErrorTypeFixture:
		h.logger.Warn(ctx, ce, "Input rejected",
			"type", ce.Type,
			"code", ce.Code,
			"file", ce.FilePath)
	default:
		h.logger.Error(ctx, ce, "Error occurred",
			"type", ce.Type,
			"code", ce.Code,
			"file", ce.FilePath)
	}
}

// Common error codes.
const (
	ErrCodeInvalidPath       = "ERR_INVALID_PATH"
	ErrCodeFileNotFound      = "ERR_FILE_NOT_FOUND"
	ErrCodeConfigInvalid     = "ERR_CONFIG_INVALID"
	ErrCodeFixtureInvalid    = "ERR_FIXTURE_INVALID"
	ErrCodeInternalError     = "ERR_INTERNAL"
	ErrCodeInvariant         = "ERR_INVARIANT"
	ErrCodeValidationFailed  = "ERR_VALIDATION_FAILED"
	ErrCodeVOnNoExpression   = "ERR_VON_NO_EXPRESSION"
	ErrCodeVBindNoExpression = "ERR_VBIND_NO_EXPRESSION"
	ErrCodeVModelNoExpr      = "ERR_VMODEL_NO_EXPRESSION"
	ErrCodeVShowNoExpression = "ERR_VSHOW_NO_EXPRESSION"
	ErrCodeVForNoSource      = "ERR_VFOR_NO_SOURCE"
)
