package retry

import (
	"context"
	"errors"
	"net"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

// transientDescriptions are substrings denoting transient failures in errors which do not carry any category.
var transientDescriptions = []string{"deadlock", "timeout", "timed out"}

// ITransientError is implemented by errors which know whether the failure they describe is transient e.g. errors returned by remote services.
type ITransientError interface {
	error
	IsTransient() bool
}

// IRetryExhaustedError is implemented by errors of calls which may already have been retried by a lower layer, e.g. a retrying HTTP client.
type IRetryExhaustedError interface {
	error
	IsRetryExhausted() bool
}

// IsRetryExhausted states whether the call which led to err was already retried as many times as allowed.
// Retrying such a call again would multiply the retry budget of the lower layer.
func IsRetryExhausted(err error) bool {
	var eErr IRetryExhaustedError
	return errors.As(err, &eErr) && eErr.IsRetryExhausted()
}

// IsCancellation states whether err results from a context being cancelled.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || commonerrors.Any(err, commonerrors.ErrCancelled)
}

// IsTransient states whether an error is worth retrying: the remote side may succeed if called again.
// Cancellation is never considered transient.
func IsTransient(err error) bool {
	if err == nil || IsCancellation(err) {
		return false
	}
	var tErr ITransientError
	if errors.As(err, &tErr) {
		return tErr.IsTransient()
	}
	if commonerrors.Any(err, commonerrors.ErrUnavailable, commonerrors.ErrTimeout) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if commonerrors.IsCommonError(err) {
		return false
	}
	return commonerrors.CorrespondTo(err, transientDescriptions...)
}
