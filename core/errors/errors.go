// Package errors provides standardized error types and helpers for the Interline codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a quote or occurrence was not found in range
	ErrNotFound = errors.New("not found")
	// ErrNoVersesInRange indicates a reference resolved to zero verses
	ErrNoVersesInRange = errors.New("no verses in range")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
)

// QuoteNotFoundError reports a quote (or one of its sub-quotes) whose
// requested occurrence does not exist in the searched reference range.
type QuoteNotFoundError struct {
	Quote      string // Sub-quote that failed to match
	Occurrence int    // Requested 1-based occurrence
	Reference  string // Formatted reference range that was searched
	Err        error  // Underlying error, if any
}

func (e *QuoteNotFoundError) Error() string {
	return fmt.Sprintf("quote %q occurrence %d not found in %s", e.Quote, e.Occurrence, e.Reference)
}

func (e *QuoteNotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// NoVersesInRangeError reports a reference range that selected no verses.
type NoVersesInRangeError struct {
	Reference string // Formatted reference range
}

func (e *NoVersesInRangeError) Error() string {
	return fmt.Sprintf("no verses in range %s", e.Reference)
}

func (e *NoVersesInRangeError) Unwrap() error {
	return ErrNoVersesInRange
}

// InternalError wraps an unexpected failure during matching or resolution.
type InternalError struct {
	Operation string // Operation being performed (e.g., "match", "align")
	Err       error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("internal error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "JSON", "XML", "reference")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewQuoteNotFound creates a QuoteNotFoundError
func NewQuoteNotFound(quote string, occurrence int, reference string) *QuoteNotFoundError {
	return &QuoteNotFoundError{
		Quote:      quote,
		Occurrence: occurrence,
		Reference:  reference,
	}
}

// NewNoVersesInRange creates a NoVersesInRangeError
func NewNoVersesInRange(reference string) *NoVersesInRangeError {
	return &NoVersesInRangeError{Reference: reference}
}

// NewInternal creates an InternalError
func NewInternal(operation string, err error) *InternalError {
	return &InternalError{Operation: operation, Err: err}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
