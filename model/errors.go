package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies failures so every front end can translate them the
// same way.
type ErrorKind string

const (
	// NotFound: the requested post or author has no matching row.
	NotFound ErrorKind = "NOT_FOUND"
	// ValidationFailure: a required field is missing on write.
	ValidationFailure ErrorKind = "VALIDATION_FAILURE"
	// MappingFailure: a stored row cannot be turned into a domain object.
	MappingFailure ErrorKind = "MAPPING_FAILURE"
	// StorageFailure: connection, statement or transaction failure.
	StorageFailure ErrorKind = "STORAGE_FAILURE"
)

// Error is a failure with a kind. Err keeps the underlying cause.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause from github.com/pkg/errors reach the root error.
func (e *Error) Cause() error { return e.Err }

func NewNotFoundError(format string, args ...interface{}) error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...interface{}) error {
	return &Error{Kind: ValidationFailure, Msg: fmt.Sprintf(format, args...)}
}

// NewMappingError wraps a decode failure of row rowID.
func NewMappingError(rowID int64, err error, format string, args ...interface{}) error {
	return &Error{
		Kind: MappingFailure,
		Msg:  fmt.Sprintf("row %d: %s", rowID, fmt.Sprintf(format, args...)),
		Err:  err,
	}
}

// NewStorageError wraps a database failure with the operation that failed.
func NewStorageError(err error, op string) error {
	return &Error{Kind: StorageFailure, Msg: op, Err: errors.WithStack(err)}
}

// KindOf returns the kind of the first *Error in err's chain. Errors without
// a kind are storage failures, since nothing else reaches the front ends.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return StorageFailure
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
