package marketplace

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

var (
	_ retry.ITransientError      = &CommerceError{}
	_ retry.IRetryExhaustedError = &CommerceError{}
)

// ErrorCode classifies failures of the commerce services.
type ErrorCode string

const (
	CodeNetwork        ErrorCode = "Network"
	CodeTimeout        ErrorCode = "Timeout"
	CodeThrottled      ErrorCode = "Throttled"
	CodeUnavailable    ErrorCode = "Unavailable"
	CodeEntityNotFound ErrorCode = "EntityNotFound"
	CodeBadRequest     ErrorCode = "BadRequest"
	CodeNotFound       ErrorCode = "NotFound"
	CodeConflict       ErrorCode = "Conflict"
	CodeUnauthorized   ErrorCode = "Unauthorized"
	CodeInternal       ErrorCode = "Internal"
	CodeNotImplemented ErrorCode = "NotImplemented"
	CodeUnknown        ErrorCode = "Unknown"
)

// CodeFromStatusCode classifies an HTTP status returned by a commerce service.
func CodeFromStatusCode(statusCode int) ErrorCode {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return CodeThrottled
	case statusCode == http.StatusServiceUnavailable:
		return CodeUnavailable
	case statusCode == http.StatusRequestTimeout || statusCode == http.StatusGatewayTimeout:
		return CodeTimeout
	case statusCode == http.StatusNotFound || statusCode == http.StatusGone:
		return CodeNotFound
	case statusCode == http.StatusConflict:
		return CodeConflict
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return CodeUnauthorized
	case statusCode == http.StatusNotImplemented:
		return CodeNotImplemented
	case statusCode >= http.StatusInternalServerError:
		return CodeInternal
	case statusCode >= http.StatusBadRequest:
		return CodeBadRequest
	default:
		return CodeUnknown
	}
}

// CommerceError is returned by the marketplace clients when a remote call fails.
type CommerceError struct {
	Code       ErrorCode
	Operation  string
	StatusCode int
	// Err carries the common error category of the failure.
	Err error
	// RetriesExhausted is set when the HTTP client already retried the call as many times as its policy allows.
	RetriesExhausted bool
}

// NewCommerceError wraps err into a CommerceError. Transport failures are expected to have no status code.
func NewCommerceError(operation string, statusCode int, err error) *CommerceError {
	code := CodeUnknown
	switch {
	case statusCode > 0:
		code = CodeFromStatusCode(statusCode)
	case commonerrors.Any(err, commonerrors.ErrTimeout):
		code = CodeTimeout
	case retry.IsCancellation(err):
		code = CodeUnknown
	case err != nil:
		code = CodeNetwork
	}
	return &CommerceError{
		Code:       code,
		Operation:  operation,
		StatusCode: statusCode,
		Err:        err,
	}
}

func (e *CommerceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%v failed [%v, %d]: %v", e.Operation, e.Code, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%v failed [%v]: %v", e.Operation, e.Code, e.Err)
}

func (e *CommerceError) Unwrap() error {
	return e.Err
}

// IsTransient states whether calling the service again may succeed.
// Server errors are transient with the exception of 501 Not Implemented.
func (e *CommerceError) IsTransient() bool {
	switch e.Code {
	case CodeNetwork, CodeTimeout, CodeThrottled, CodeUnavailable, CodeEntityNotFound, CodeInternal:
		return true
	default:
		return false
	}
}

func (e *CommerceError) IsRetryExhausted() bool {
	return e.RetriesExhausted
}

// IsCommerceErrorWithCode states whether err is a CommerceError of one of the codes.
func IsCommerceErrorWithCode(err error, codes ...ErrorCode) bool {
	var cErr *CommerceError
	if !errors.As(err, &cErr) {
		return false
	}
	for i := range codes {
		if cErr.Code == codes[i] {
			return true
		}
	}
	return false
}
