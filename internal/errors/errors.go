// Package errors contains the error taxonomy of the selection engine and helpers for wrapping errors with stack traces.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New creates a new error with the given message and wraps it in an Error type that contains the stack trace.
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf creates a new error and wraps in an Error type that contains the stack trace.
func Errorf(message string, args ...any) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace. If the given error already has
// a stack trace, it is used directly. If the given error is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error in an Error type that contains the stack trace and has the given
// message prepended as part of the error message.
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// IsError returns true if actual is the same type of error as expected. This method unwraps the given error objects
// (if they are wrapped in objects with a stacktrace) and then does a simple equality check on them.
func IsError(actual error, expected error) bool {
	return goerrors.Is(actual, expected)
}

// Is is errors.Is, re-exported so callers only import this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As, re-exported so callers only import this package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the original error if err is a wrapper that contains a stacktrace. In all other cases, it returns
// the error unchanged.
func Unwrap(err error) error {
	if err == nil {
		return nil
	}

	if goError, ok := err.(*goerrors.Error); ok {
		return goError.Err
	}

	return err
}

// ErrorWithStackTrace returns a string that contains both the error message and the callstack.
func ErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}

	var goError *goerrors.Error
	if errors.As(err, &goError) {
		return goError.ErrorStack()
	}

	return err.Error()
}
