package parallelisation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/commonerrors/errortest"
)

func recordingGroup(order *[]int, failAt int, options ...StoreOption) *ExecutionGroup[int] {
	return NewExecutionGroup[int](func(_ context.Context, i int) error {
		*order = append(*order, i)
		if i == failAt {
			return commonerrors.Newf(commonerrors.ErrFailed, "element %v", i)
		}
		return nil
	}, options...)
}

func TestSequentialExecution(t *testing.T) {
	t.Run("in order", func(t *testing.T) {
		var order []int
		group := recordingGroup(&order, -1, Sequential)
		group.RegisterFunction(1, 2, 3)
		require.NoError(t, group.Execute(context.Background()))
		assert.Equal(t, []int{1, 2, 3}, order)
	})
	t.Run("in reverse", func(t *testing.T) {
		var order []int
		group := recordingGroup(&order, -1, SequentialInReverse)
		group.RegisterFunction(1, 2, 3)
		require.NoError(t, group.Execute(context.Background()))
		assert.Equal(t, []int{3, 2, 1}, order)
	})
	t.Run("stop on first error", func(t *testing.T) {
		var order []int
		group := recordingGroup(&order, 2, SequentialInReverse, StopOnFirstError)
		group.RegisterFunction(1, 2, 3)
		err := group.Execute(context.Background())
		errortest.AssertError(t, err, commonerrors.ErrFailed)
		assert.Equal(t, []int{3, 2}, order)
	})
	t.Run("execute all", func(t *testing.T) {
		var order []int
		group := recordingGroup(&order, 2, Sequential, ExecuteAll)
		group.RegisterFunction(1, 2, 3)
		err := group.Execute(context.Background())
		errortest.AssertError(t, err, commonerrors.ErrFailed)
		assert.Equal(t, []int{1, 2, 3}, order)
	})
	t.Run("join errors", func(t *testing.T) {
		var order []int
		group := recordingGroup(&order, 1, Sequential, JoinErrors)
		group.RegisterFunction(1, 2, 1)
		err := group.Execute(context.Background())
		errortest.AssertError(t, err, commonerrors.ErrFailed)
		assert.Equal(t, []int{1, 2, 1}, order)
	})
	t.Run("cancelled context", func(t *testing.T) {
		var order []int
		group := recordingGroup(&order, -1, Sequential)
		group.RegisterFunction(1, 2, 3)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := group.Execute(ctx)
		errortest.AssertError(t, err, commonerrors.ErrCancelled)
		assert.Empty(t, order)
	})
}

func TestConcurrentExecutionWithWorkers(t *testing.T) {
	defer goleak.VerifyNone(t)
	running := atomic.NewInt32(0)
	maxRunning := atomic.NewInt32(0)
	group := NewExecutionGroup[int](func(_ context.Context, _ int) error {
		current := running.Inc()
		for {
			previous := maxRunning.Load()
			if current <= previous || maxRunning.CompareAndSwap(previous, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Dec()
		return nil
	}, Workers(2))
	group.RegisterFunction(1, 2, 3, 4, 5, 6)
	require.NoError(t, group.Execute(context.Background()))
	assert.LessOrEqual(t, maxRunning.Load(), int32(2))
	assert.Positive(t, maxRunning.Load())
}

func TestConcurrentExecutionReturnsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	expected := errors.New(faker.Sentence())
	counter := atomic.NewInt32(0)
	group := NewExecutionGroup[int](func(_ context.Context, i int) error {
		counter.Inc()
		if i == 2 {
			return expected
		}
		return nil
	}, Workers(3), JoinErrors)
	group.RegisterFunction(1, 2, 3)
	err := group.Execute(context.Background())
	assert.ErrorIs(t, err, expected)
	assert.Equal(t, int32(3), counter.Load())
}

func TestUninitialisedGroup(t *testing.T) {
	group := NewExecutionGroup[int](nil)
	errortest.AssertError(t, group.Execute(context.Background()), commonerrors.ErrUndefined)
}

func TestDetermineContextError(t *testing.T) {
	require.NoError(t, DetermineContextError(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	errortest.AssertError(t, DetermineContextError(ctx), commonerrors.ErrTimeout)
	cctx, ccancel := context.WithCancelCause(context.Background())
	cause := errors.New(faker.Word())
	ccancel(cause)
	err := DetermineContextError(cctx)
	errortest.AssertError(t, err, commonerrors.ErrCancelled)
	assert.ErrorIs(t, err, cause)
}
