// Package errors provides standardized error types for columnar operations.
// This package defines Error for consistent error handling across all public
// APIs, with operation context, a failure-kind taxonomy and error wrapping
// support.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies the failure mode of an operation.
type Kind uint8

const (
	// KindUnknown is the zero kind for errors without a taxonomy entry.
	KindUnknown Kind = iota
	// KindCapacity indicates a buffer append/extend past fixed capacity.
	KindCapacity
	// KindLayout indicates wrong-rank or non-contiguous backing storage.
	KindLayout
	// KindIndex indicates out-of-range element or row access.
	KindIndex
	// KindType indicates a dtype mismatch for the requested operation.
	KindType
	// KindNotSupported indicates an operation undefined for the operands.
	KindNotSupported
	// KindNameConflict indicates a duplicate column name.
	KindNameConflict
	// KindNotFound indicates a missing column name.
	KindNotFound
	// KindSizeMismatch indicates row-count misalignment between columns.
	KindSizeMismatch
	// KindColumnMismatch indicates column-tuple misalignment between tables.
	KindColumnMismatch
	// KindInvalidValue indicates an argument outside its accepted set.
	KindInvalidValue
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCapacity:
		return "capacity"
	case KindLayout:
		return "layout"
	case KindIndex:
		return "index"
	case KindType:
		return "type"
	case KindNotSupported:
		return "not supported"
	case KindNameConflict:
		return "name conflict"
	case KindNotFound:
		return "not found"
	case KindSizeMismatch:
		return "size mismatch"
	case KindColumnMismatch:
		return "column mismatch"
	case KindInvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

// Error represents standardized errors across all buffer, series and
// dataframe operations.
type Error struct {
	Kind    Kind   // Failure classification
	Op      string // Operation name (e.g. "Append", "AddColumn")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same kind, so callers can test the
// taxonomy with errors.Is and the Kind* sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op == "" && t.Column == "" && t.Message == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Op == t.Op && e.Column == t.Column && e.Message == t.Message
}

// Sentinel values for errors.Is checks against the taxonomy.
var (
	ErrCapacity       = &Error{Kind: KindCapacity}
	ErrLayout         = &Error{Kind: KindLayout}
	ErrIndex          = &Error{Kind: KindIndex}
	ErrType           = &Error{Kind: KindType}
	ErrNotSupported   = &Error{Kind: KindNotSupported}
	ErrNameConflict   = &Error{Kind: KindNameConflict}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrSizeMismatch   = &Error{Kind: KindSizeMismatch}
	ErrColumnMismatch = &Error{Kind: KindColumnMismatch}
	ErrInvalidValue   = &Error{Kind: KindInvalidValue}
)

// New creates an error with the given kind and operation context.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewColumn creates an error carrying a column name.
func NewColumn(kind Kind, op, column, message string) *Error {
	return &Error{Kind: kind, Op: op, Column: column, Message: message}
}

// Wrap creates an error wrapping an underlying cause.
func Wrap(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: cause.Error(), Cause: cause}
}

// KindOf returns the kind of err if it is (or wraps) an *Error, and
// KindUnknown otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
