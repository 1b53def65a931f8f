// Package apperror defines the stable error kinds returned by the booking
// services. Handlers discriminate on Kind to pick an HTTP status, callers on
// the wire discriminate on it to tell "fix your request" from "try again"
// from "pick another car or date".
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindValidation - malformed or missing input. The caller must correct
	// the request; it is never retried automatically.
	KindValidation Kind = "VALIDATION"
	// KindNotFound - a referenced car, booking or location does not exist.
	KindNotFound Kind = "NOT_FOUND"
	// KindConflict - an availability violation or an invalid state
	// transition. Retrying with different parameters may succeed, the same
	// request will not.
	KindConflict Kind = "CONFLICT"
	// KindConcurrency - a concurrent conflicting write won. The whole
	// operation is safe to retry from validation.
	KindConcurrency Kind = "CONCURRENCY"
	// KindInternal - unexpected failure, nothing the caller can do.
	KindInternal Kind = "INTERNAL"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Concurrency(format string, args ...any) *AppError {
	return &AppError{Kind: KindConcurrency, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the kind from an error chain; unknown errors are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
