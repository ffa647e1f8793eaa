// Package errors contains helper functions for wrapping errors with stack traces and panic recovery.
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New creates a new error with the given message, wrapped in an error type that contains the stack trace.
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf creates a new formatted error, wrapped in an error type that contains the stack trace.
// The format specifier supports `%w` for wrapping another error.
func Errorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace wraps the given error in an error type that contains the stack trace.
// If the given error is nil, returns nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	if ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error in an error type that contains the stack trace,
// with the given message prepended as part of the error message. If the given error is nil, returns nil.
func WithStackTraceAndPrefix(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(format, args...), 1)
}

// ContainsStackTrace returns true if the given error already carries a stack trace.
// Useful to avoid creating a nested stack trace.
func ContainsStackTrace(err error) bool {
	for {
		if _, ok := err.(interface{ ErrorStack() string }); ok {
			return true
		}

		if err = errors.Unwrap(err); err == nil {
			return false
		}
	}
}

// ErrorStack returns the stack trace attached to the given error, if any.
func ErrorStack(err error) string {
	for {
		if err == nil {
			return ""
		}

		if err, ok := err.(interface{ ErrorStack() string }); ok {
			return err.ErrorStack()
		}

		err = errors.Unwrap(err)
	}
}

// Recover tries to recover from panics, and if it succeeds, calls the given onPanic function with an error that
// explains the cause of the panic. This function should only be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, isError := rec.(error)
		if !isError {
			err = fmt.Errorf("%v", rec)
		}

		onPanic(WithStackTrace(err))
	}
}
