package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes aggregate failure semantics across the catalog.
type ErrorCode string

const (
	CodeValidation          ErrorCode = "validation"
	CodeNotFound            ErrorCode = "not_found"
	CodeReferentialConflict ErrorCode = "referential_conflict"
	CodeConflict            ErrorCode = "conflict"
	CodePreconditionFailed  ErrorCode = "precondition_failed"
	CodeRetryable           ErrorCode = "retryable"
	CodeInternal            ErrorCode = "internal"
)

// Error is the canonical aggregate error wrapper.
//
// Dependents is only meaningful for CodeReferentialConflict and holds the number of
// rows that still reference the entity the caller tried to delete.
type Error struct {
	Code       ErrorCode
	Op         string
	Message    string
	Dependents int64
	Cause      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if op := strings.TrimSpace(e.Op); op != "" {
		b.WriteString(op)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(msg)
	}
	if b.Len() == 0 {
		return string(e.Code)
	}
	fmt.Fprintf(&b, " (%s)", e.Code)
	return b.String()
}

// Is matches any *Error with the same code, so errors.Is(err, &Error{Code: CodeNotFound})
// works as a code check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && t.Code == e.Code
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// NewReferentialConflict reports that entity is still referenced by n rows of dependent.
func NewReferentialConflict(op, entity, dependent string, n int64) error {
	return &Error{
		Code:       CodeReferentialConflict,
		Op:         strings.TrimSpace(op),
		Message:    fmt.Sprintf("%s cannot be deleted because it is referenced by %d %s", entity, n, pluralize(dependent, n)),
		Dependents: n,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// AsError returns the aggregate error in err's chain, or nil.
func AsError(err error) *Error {
	var aggErr *Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	return nil
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code && code != ""
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	if e := AsError(err); e != nil {
		return e.Code
	}
	return ""
}

func pluralize(noun string, n int64) string {
	if n == 1 || strings.HasSuffix(noun, "s") {
		return noun
	}
	return noun + "s"
}
