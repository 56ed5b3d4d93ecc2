// Package retry retries operations according to a RetryPolicyConfiguration and classifies errors worth retrying.
package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

// RetryIf will retry fn when the value returned from retryConditionFn is true.
// Context cancellation or expiry is never retried.
func RetryIf(ctx context.Context, logger logr.Logger, retryPolicy *RetryPolicyConfiguration, fn func() error, msgOnRetry string, retryConditionFn func(err error) bool) error {
	if retryPolicy == nil {
		return commonerrors.UndefinedVariable("retry policy configuration")
	}
	if fn == nil {
		return commonerrors.UndefinedParameter("function to retry")
	}
	if !retryPolicy.Enabled {
		return commonerrors.ConvertContextError(fn())
	}
	var retryType retry.DelayTypeFunc
	switch {
	case retryPolicy.LinearBackOffEnabled:
		retryType = retry.CombineDelay(retry.FixedDelay, retry.RandomDelay)
	case retryPolicy.BackOffEnabled:
		retryType = retry.BackOffDelay
	default:
		retryType = retry.FixedDelay
	}

	return commonerrors.ConvertContextError(
		retry.Do(
			fn,
			retry.OnRetry(func(n uint, err error) {
				logger.Error(err, fmt.Sprintf("%v (attempt #%v)", msgOnRetry, n+1), "attempt", n+1)
			}),
			retry.Delay(retryPolicy.RetryWaitMin),
			retry.MaxDelay(retryPolicy.RetryWaitMax),
			retry.MaxJitter(25*time.Millisecond),
			retry.DelayType(retryType),
			retry.Attempts(attempts(retryPolicy.RetryMax)),
			retry.RetryIf(func(err error) bool {
				if IsCancellation(err) || ctx.Err() != nil {
					return false
				}
				return retryConditionFn == nil || retryConditionFn(err)
			}),
			retry.LastErrorOnly(true),
			retry.Context(ctx),
		),
	)
}

// RetryOnError allows the caller to retry fn when the error returned by fn is retriable
// as in of the type specified by retriableErr. The policy defines the maximum retries and the wait
// interval between two retries.
func RetryOnError(ctx context.Context, logger logr.Logger, retryPolicy *RetryPolicyConfiguration, fn func() error, msgOnRetry string, retriableErr ...error) error {
	return RetryIf(ctx, logger, retryPolicy, fn, msgOnRetry, func(err error) bool {
		return commonerrors.Any(err, retriableErr...)
	})
}

// RetryOnTransientError retries fn as long as it returns transient errors (see IsTransient).
// Failures of calls whose retries were already exhausted by a lower layer are returned straight away.
func RetryOnTransientError(ctx context.Context, logger logr.Logger, retryPolicy *RetryPolicyConfiguration, fn func() error, msgOnRetry string) error {
	return RetryIf(ctx, logger, retryPolicy, fn, msgOnRetry, func(err error) bool {
		return IsTransient(err) && !IsRetryExhausted(err)
	})
}

// attempts converts a number of retries into a number of attempts. retry-go treats 0 attempts as infinite.
func attempts(retryMax int) uint {
	if retryMax < 0 {
		return 1
	}
	if retryMax >= math.MaxInt32 {
		return math.MaxInt32
	}
	return uint(retryMax) + 1
}
