// Package commonerrors defines the error categories shared by every package of the module.
// Errors are expected to wrap one of the sentinel errors below so that callers can branch on the category using `Any` or `errors.Is`.
package commonerrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrNoLogger       = errors.New("missing logger")
	ErrUndefined      = errors.New("undefined")
	ErrTimeout        = errors.New("timeout")
	ErrLocked         = errors.New("locked")
	ErrNotFound       = errors.New("not found")
	ErrUnsupported    = errors.New("unsupported")
	ErrUnavailable    = errors.New("unavailable")
	ErrUnknown        = errors.New("unknown")
	ErrInvalid        = errors.New("invalid")
	ErrConflict       = errors.New("conflict")
	ErrMarshalling    = errors.New("unserialisable")
	ErrCancelled      = errors.New("cancelled")
	ErrUnexpected     = errors.New("unexpected")
	ErrUnauthorised   = errors.New("unauthorised")
	ErrForbidden      = errors.New("forbidden")
	ErrCondition      = errors.New("failed condition")
	ErrTooLarge       = errors.New("too large")
	ErrOutOfRange     = errors.New("out of range")
	ErrFailed         = errors.New("failed")
	ErrInProgress     = errors.New("in progress")
)

var commonErrors = []error{
	ErrNotImplemented,
	ErrNoLogger,
	ErrUndefined,
	ErrTimeout,
	ErrLocked,
	ErrNotFound,
	ErrUnsupported,
	ErrUnavailable,
	ErrUnknown,
	ErrInvalid,
	ErrConflict,
	ErrMarshalling,
	ErrCancelled,
	ErrUnexpected,
	ErrUnauthorised,
	ErrForbidden,
	ErrCondition,
	ErrTooLarge,
	ErrOutOfRange,
	ErrFailed,
	ErrInProgress,
}

// Any determines whether the target error is of the same type as any of the errors `err`
func Any(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return true
		}
	}
	return false
}

// None determines whether the target error is of none of the types of the errors `err`
func None(target error, err ...error) bool {
	for _, e := range err {
		if errors.Is(e, target) || errors.Is(target, e) {
			return false
		}
	}
	return true
}

// CorrespondTo determines whether the description of the target error contains any of the `description` strings (case-insensitive).
func CorrespondTo(target error, description ...string) bool {
	if target == nil {
		return false
	}
	desc := strings.ToLower(target.Error())
	for _, d := range description {
		if strings.Contains(desc, strings.ToLower(d)) {
			return true
		}
	}
	return false
}

// Ignore returns nil if the target error matches one of the errors to ignore. Otherwise, target is returned.
func Ignore(target error, ignore ...error) error {
	if Any(target, ignore...) {
		return nil
	}
	return target
}

// Join is similar to errors.Join but nil errors are discarded and a single error is returned as is.
func Join(errs ...error) error {
	var nonNil []error
	for i := range errs {
		if errs[i] != nil {
			nonNil = append(nonNil, errs[i])
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return errors.Join(nonNil...)
	}
}

// New creates a new error of type targetErr with a reason.
func New(targetErr error, reason string) error {
	if targetErr == nil {
		return errors.New(reason)
	}
	if strings.TrimSpace(reason) == "" {
		return targetErr
	}
	return fmt.Errorf("%w: %v", targetErr, reason)
}

// Newf is similar to New but the reason is formatted.
func Newf(targetErr error, format string, args ...any) error {
	return New(targetErr, fmt.Sprintf(format, args...))
}

// WrapError wraps an error into a particular targetError. If the original error is already of the target type, it is extended with the message.
func WrapError(targetError, originalError error, message string) error {
	if originalError == nil {
		return New(targetError, message)
	}
	if targetError == nil || Any(originalError, targetError) {
		if message == "" {
			return originalError
		}
		return fmt.Errorf("%v: %w", message, originalError)
	}
	if message == "" {
		return fmt.Errorf("%w: %v", targetError, originalError.Error())
	}
	return fmt.Errorf("%w: %v: %v", targetError, message, originalError.Error())
}

// WrapErrorf is similar to WrapError but the message is formatted.
func WrapErrorf(targetError, originalError error, format string, args ...any) error {
	return WrapError(targetError, originalError, fmt.Sprintf(format, args...))
}

// UndefinedVariable returns an undefined error for a particular variable.
func UndefinedVariable(variableName string) error {
	return Newf(ErrUndefined, "%v is undefined", variableName)
}

// UndefinedParameter returns an undefined error for a particular function parameter.
func UndefinedParameter(parameterName string) error {
	return Newf(ErrUndefined, "parameter %v is undefined", parameterName)
}

// ConvertContextError converts a context error into common errors.
func ConvertContextError(err error) error {
	if err == nil {
		return nil
	}
	if Any(err, ErrTimeout, ErrCancelled) {
		return err
	}
	// both the category and the original error remain in the chain.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return err
}

// DetermineCommonError returns the common error category the error belongs to (or nil if none is found).
func DetermineCommonError(err error) error {
	if err == nil {
		return nil
	}
	for i := range commonErrors {
		if errors.Is(err, commonErrors[i]) {
			return commonErrors[i]
		}
	}
	return nil
}

// IsCommonError returns whether an error is a commonerror
func IsCommonError(target error) bool {
	return DetermineCommonError(target) != nil
}
