package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/commonerrors/errortest"
	"github.com/marketplace-rp/saasprovisioning/logs/logstest"
)

func fastRetryPolicy(retries int) *RetryPolicyConfiguration {
	return &RetryPolicyConfiguration{
		Enabled:      true,
		RetryMax:     retries,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
}

func TestRetryOnError(t *testing.T) {
	logger := logstest.NewTestLogger(t)
	t.Run("succeeds after transient failures", func(t *testing.T) {
		counter := atomic.NewInt32(0)
		err := RetryOnError(context.Background(), logger, fastRetryPolicy(3), func() error {
			if counter.Inc() < 3 {
				return commonerrors.New(commonerrors.ErrUnavailable, faker.Sentence())
			}
			return nil
		}, "retrying", commonerrors.ErrUnavailable)
		require.NoError(t, err)
		assert.Equal(t, int32(3), counter.Load())
	})
	t.Run("stops after max retries", func(t *testing.T) {
		counter := atomic.NewInt32(0)
		err := RetryOnError(context.Background(), logger, fastRetryPolicy(2), func() error {
			counter.Inc()
			return commonerrors.ErrUnavailable
		}, "retrying", commonerrors.ErrUnavailable)
		errortest.AssertError(t, err, commonerrors.ErrUnavailable)
		assert.Equal(t, int32(3), counter.Load())
	})
	t.Run("does not retry other errors", func(t *testing.T) {
		counter := atomic.NewInt32(0)
		err := RetryOnError(context.Background(), logger, fastRetryPolicy(5), func() error {
			counter.Inc()
			return commonerrors.ErrInvalid
		}, "retrying", commonerrors.ErrUnavailable)
		errortest.AssertError(t, err, commonerrors.ErrInvalid)
		assert.Equal(t, int32(1), counter.Load())
	})
	t.Run("disabled policy runs once", func(t *testing.T) {
		counter := atomic.NewInt32(0)
		err := RetryOnError(context.Background(), logger, DefaultNoRetryPolicyConfiguration(), func() error {
			counter.Inc()
			return commonerrors.ErrUnavailable
		}, "retrying", commonerrors.ErrUnavailable)
		errortest.AssertError(t, err, commonerrors.ErrUnavailable)
		assert.Equal(t, int32(1), counter.Load())
	})
}

func TestRetryIfWithUndefinedArguments(t *testing.T) {
	logger := logstest.NewTestLogger(t)
	errortest.AssertError(t, RetryIf(context.Background(), logger, nil, func() error { return nil }, "", nil), commonerrors.ErrUndefined)
	errortest.AssertError(t, RetryIf(context.Background(), logger, fastRetryPolicy(1), nil, "", nil), commonerrors.ErrUndefined)
}

func TestRetryDoesNotRetryCancellation(t *testing.T) {
	logger := logstest.NewTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	counter := atomic.NewInt32(0)
	err := RetryOnTransientError(ctx, logger, fastRetryPolicy(5), func() error {
		counter.Inc()
		cancel()
		return commonerrors.ErrUnavailable
	}, "retrying")
	require.Error(t, err)
	assert.Equal(t, int32(1), counter.Load())
}

type transientError struct {
	transient bool
	exhausted bool
}

func (e *transientError) Error() string          { return "commerce failure" }
func (e *transientError) IsTransient() bool      { return e.transient }
func (e *transientError) IsRetryExhausted() bool { return e.exhausted }

func TestRetryOnTransientError_RetriesExhaustedByLowerLayer(t *testing.T) {
	counter := atomic.NewInt32(0)
	failure := &transientError{transient: true, exhausted: true}
	err := RetryOnTransientError(context.Background(), logstest.NewTestLogger(t), fastRetryPolicy(5), func() error {
		counter.Inc()
		return failure
	}, "retrying")
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, int32(1), counter.Load())
	assert.True(t, IsTransient(err))
	assert.True(t, IsRetryExhausted(fmt.Errorf("activation failed: %w", err)))
	assert.False(t, IsRetryExhausted(&transientError{transient: true}))
	assert.False(t, IsRetryExhausted(commonerrors.ErrUnavailable))
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{name: "nil", err: nil},
		{name: "unavailable", err: commonerrors.New(commonerrors.ErrUnavailable, "service down"), transient: true},
		{name: "timeout", err: commonerrors.ErrTimeout, transient: true},
		{name: "network timeout", err: timeoutError{}, transient: true},
		{name: "transient coded error", err: &transientError{transient: true}, transient: true},
		{name: "non transient coded error", err: &transientError{transient: false}},
		{name: "wrapped transient coded error", err: commonerrors.WrapError(commonerrors.ErrFailed, &transientError{transient: true}, "create"), transient: false},
		{name: "deadlock description", err: errors.New("Transaction was deadlocked on lock resources"), transient: true},
		{name: "timeout description", err: errors.New("operation Timeout while waiting"), transient: true},
		{name: "invalid", err: commonerrors.ErrInvalid},
		{name: "categorised error mentioning timeout", err: commonerrors.New(commonerrors.ErrInvalid, "timeout must be positive")},
		{name: "cancelled", err: context.Canceled},
		{name: "cancelled category", err: commonerrors.ConvertContextError(context.Canceled)},
		{name: "plain", err: errors.New(faker.Word() + " failure")},
	}
	for i := range tests {
		test := tests[i]
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.transient, IsTransient(test.err))
		})
	}
}
