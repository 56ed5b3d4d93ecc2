package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/commonerrors/errortest"
	"github.com/marketplace-rp/saasprovisioning/logs/logstest"
)

type testState struct {
	Executed    int
	Compensated int
}

type testResource string

type journal struct {
	executed    []string
	compensated []string
}

func newTestStep(t *testing.T, ctlr *gomock.Controller, j *journal, name string, expectExecution, expectCompensation bool, executionErr error) ITransactionStep[testState, testResource] {
	t.Helper()
	identifier := NewStepIdentifier(name, faker.DomainName())
	step := NewMockITransactionStep[testState, testResource](ctlr)
	step.EXPECT().GetID().Return(identifier).AnyTimes()
	if expectExecution {
		step.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, state testState, _ testResource) (testState, error) {
			j.executed = append(j.executed, name)
			if executionErr != nil {
				return state, executionErr
			}
			state.Executed++
			return state, nil
		}).Times(1)
	}
	if expectCompensation {
		step.EXPECT().Compensate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, state testState, _ testResource) (testState, error) {
			j.compensated = append(j.compensated, name)
			state.Compensated++
			return state, nil
		}).Times(1)
	}
	return step
}

func TestSaga_AllStepsSucceed_NoCompensation(t *testing.T) {
	ctx := context.Background()
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource](WithLogger(logstest.NewTestLogger(t)))

	orch.RegisterFunction(
		newTestStep(t, ctlr, j, "step1", true, false, nil),
		newTestStep(t, ctlr, j, "step2", true, false, nil),
		newTestStep(t, ctlr, j, "step3", true, false, nil),
	)
	assert.Equal(t, 3, orch.Len())

	state, report, err := orch.Execute(ctx, testState{}, testResource(faker.Word()))
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, StatusCompleted, report.Status)
	assert.True(t, report.Status.IsTerminal())
	assert.Equal(t, 3, state.Executed)
	assert.Zero(t, state.Compensated)
	assert.Equal(t, []string{"step1", "step2", "step3"}, j.executed)
	assert.Empty(t, j.compensated)
	for i := range report.Outcomes {
		assert.True(t, report.Outcomes[i].Executed)
		assert.True(t, report.Outcomes[i].IsSuccessfullyExecuted)
		assert.False(t, report.Outcomes[i].Compensated)
	}
	assert.Equal(t, -1, report.FailedStep())
	assert.Equal(t, -1, report.ResumeIndex())
	assert.NoError(t, report.CompensationErrors())
}

func TestSaga_FailureCompensatesInReverseOrder(t *testing.T) {
	ctx := context.Background()
	ctlr := gomock.NewController(t)
	j := &journal{}
	failure := commonerrors.New(commonerrors.ErrInvalid, "plan is not available")
	stepC := newTestStep(t, ctlr, j, "C", true, false, failure)
	orch := NewOrchestratorWithSteps([]ITransactionStep[testState, testResource]{
		newTestStep(t, ctlr, j, "A", true, true, nil),
		newTestStep(t, ctlr, j, "B", true, true, nil),
		stepC,
		newTestStep(t, ctlr, j, "D", false, false, nil),
	}, WithLogger(logstest.NewTestLogger(t)))

	state, report, err := orch.Execute(ctx, testState{}, testResource(faker.Word()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure))
	errortest.AssertError(t, err, commonerrors.ErrInvalid)

	var sagaErr *Error
	require.True(t, errors.As(err, &sagaErr))
	assert.Equal(t, stepC.GetID(), sagaErr.Step)
	assert.NoError(t, sagaErr.RollbackError())

	assert.Equal(t, []string{"A", "B", "C"}, j.executed)
	assert.Equal(t, []string{"B", "A"}, j.compensated)
	assert.Equal(t, 2, state.Executed)
	assert.Equal(t, 2, state.Compensated)

	require.NotNil(t, report)
	assert.Equal(t, StatusCompensated, report.Status)
	assert.Equal(t, 2, report.FailedStep())
	assert.False(t, report.Outcomes[2].IsSuccessfullyExecuted)
	assert.False(t, report.Outcomes[2].IsRetryable)
	assert.False(t, report.Outcomes[2].Compensated)
	assert.False(t, report.Outcomes[3].Executed)
	assert.True(t, report.Outcomes[0].Compensated)
	assert.True(t, report.Outcomes[1].Compensated)
	assert.Equal(t, -1, report.ResumeIndex())
	assert.Contains(t, report.String(), string(StatusCompensated))
}

func TestSaga_RollbackFailureDoesNotMaskOriginalError(t *testing.T) {
	ctx := context.Background()
	ctlr := gomock.NewController(t)
	j := &journal{}
	failure := commonerrors.New(commonerrors.ErrConflict, "subscription already exists")
	rollbackFailure := commonerrors.New(commonerrors.ErrUnexpected, "could not delete subscription")

	stepB := NewMockITransactionStep[testState, testResource](ctlr)
	stepB.EXPECT().GetID().Return(NewStepIdentifier("B", faker.DomainName())).AnyTimes()
	stepB.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, state testState, _ testResource) (testState, error) {
		state.Executed++
		return state, nil
	}).Times(1)
	stepB.EXPECT().Compensate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, state testState, _ testResource) (testState, error) {
		return state, rollbackFailure
	}).Times(1)

	logger, hook := logstest.NewRecordingTestLogger()
	orch := NewOrchestrator[testState, testResource](WithLogger(logger))
	orch.RegisterFunction(
		newTestStep(t, ctlr, j, "A", true, true, nil),
		stepB,
		newTestStep(t, ctlr, j, "C", true, false, failure),
	)

	_, report, err := orch.Execute(ctx, testState{}, testResource(faker.Word()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure))
	assert.False(t, errors.Is(err, rollbackFailure))
	assert.Contains(t, err.Error(), rollbackFailure.Error())

	var sagaErr *Error
	require.True(t, errors.As(err, &sagaErr))
	assert.True(t, errors.Is(sagaErr.RollbackError(), rollbackFailure))

	// a failing compensation does not prevent earlier steps from being compensated
	assert.Equal(t, []string{"A"}, j.compensated)
	assert.True(t, report.Outcomes[0].Compensated)
	assert.False(t, report.Outcomes[1].Compensated)
	assert.Equal(t, StatusFailed, report.Status)
	assert.True(t, errors.Is(report.CompensationErrors(), rollbackFailure))
	assert.NotEmpty(t, hook.AllEntries())
}

func TestSaga_CancellationTriggersCompensationWithLiveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctlr := gomock.NewController(t)

	stepA := NewMockITransactionStep[testState, testResource](ctlr)
	stepA.EXPECT().GetID().Return(NewStepIdentifier("A", faker.DomainName())).AnyTimes()
	stepA.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, state testState, _ testResource) (testState, error) {
		state.Executed++
		return state, nil
	}).Times(1)
	stepA.EXPECT().Compensate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, state testState, _ testResource) (testState, error) {
		require.NoError(t, ctx.Err())
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		state.Compensated++
		return state, nil
	}).Times(1)

	stepB := NewMockITransactionStep[testState, testResource](ctlr)
	stepB.EXPECT().GetID().Return(NewStepIdentifier("B", faker.DomainName())).AnyTimes()
	stepB.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, state testState, _ testResource) (testState, error) {
		cancel()
		<-ctx.Done()
		return state, ctx.Err()
	}).Times(1)

	orch := NewOrchestrator[testState, testResource](WithLogger(logstest.NewTestLogger(t)), WithCompensationTimeout(time.Minute))
	orch.RegisterFunction(stepA, stepB)

	state, report, err := orch.Execute(ctx, testState{}, testResource(faker.Word()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, state.Compensated)
	assert.Equal(t, StatusCompensated, report.Status)
	assert.False(t, report.Outcomes[1].IsRetryable)
}

func TestSaga_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource]()
	orch.RegisterFunction(newTestStep(t, ctlr, j, "A", false, false, nil))

	_, report, err := orch.Execute(ctx, testState{}, testResource(faker.Word()))
	require.Error(t, err)
	errortest.AssertError(t, err, commonerrors.ErrCancelled)
	assert.Empty(t, j.executed)
	assert.Equal(t, 0, report.FailedStep())
	assert.False(t, report.Outcomes[0].Executed)
}

func TestSaga_ResumeFromFailedStep(t *testing.T) {
	ctx := context.Background()
	ctlr := gomock.NewController(t)
	j := &journal{}
	transient := commonerrors.New(commonerrors.ErrUnavailable, "service is throttling requests")

	stepB := NewMockITransactionStep[testState, testResource](ctlr)
	stepB.EXPECT().GetID().Return(NewStepIdentifier("B", faker.DomainName())).AnyTimes()
	gomock.InOrder(
		stepB.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Return(testState{Executed: 1}, transient).Times(1),
		stepB.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, state testState, _ testResource) (testState, error) {
			state.Executed++
			return state, nil
		}).Times(1),
	)

	orch := NewOrchestrator[testState, testResource](WithLogger(logstest.NewTestLogger(t)), DeferCompensationOnRetryableFailure())
	orch.RegisterFunction(newTestStep(t, ctlr, j, "A", true, false, nil), stepB)

	state, report, err := orch.Execute(ctx, testState{}, testResource(faker.Word()))
	require.Error(t, err)
	errortest.AssertError(t, err, commonerrors.ErrUnavailable)
	assert.Equal(t, StatusInProgress, report.Status)
	assert.False(t, report.Status.IsTerminal())
	assert.True(t, report.Outcomes[1].IsRetryable)
	assert.Empty(t, j.compensated)
	resumeIndex := report.ResumeIndex()
	require.Equal(t, 1, resumeIndex)

	state, report, err = orch.ExecuteFrom(ctx, resumeIndex, state, testResource(faker.Word()))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, report.Status)
	assert.Equal(t, 2, state.Executed)
	assert.False(t, report.Outcomes[0].Executed)
	assert.True(t, report.Outcomes[1].IsSuccessfullyExecuted)
	assert.Equal(t, []string{"A"}, j.executed)
}

func TestSaga_ResumedSagaCompensatesStepsOfEarlierRun(t *testing.T) {
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource](WithLogger(logstest.NewTestLogger(t)), DeferCompensationOnRetryableFailure())
	orch.RegisterFunction(
		newTestStep(t, ctlr, j, "A", false, true, nil),
		newTestStep(t, ctlr, j, "B", false, true, nil),
		newTestStep(t, ctlr, j, "C", true, false, commonerrors.New(commonerrors.ErrConflict, "subscription cannot be activated")),
	)

	state, report, err := orch.ExecuteFrom(context.Background(), 2, testState{Executed: 2}, testResource(faker.Word()))
	require.Error(t, err)
	errortest.AssertError(t, err, commonerrors.ErrConflict)
	assert.Equal(t, []string{"C"}, j.executed)
	assert.Equal(t, []string{"B", "A"}, j.compensated)
	assert.Equal(t, 2, state.Compensated)
	assert.Equal(t, StatusCompensated, report.Status)
	assert.False(t, report.Outcomes[0].Executed)
	assert.True(t, report.Outcomes[0].Compensated)
	assert.True(t, report.Outcomes[1].Compensated)
	assert.Equal(t, -1, report.ResumeIndex())
}

func TestSaga_ResumedSagaIsNotResumableOnceCompensated(t *testing.T) {
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource]()
	orch.RegisterFunction(
		newTestStep(t, ctlr, j, "A", false, true, nil),
		newTestStep(t, ctlr, j, "B", true, false, commonerrors.New(commonerrors.ErrUnavailable, "service is throttling requests")),
	)

	_, report, err := orch.ExecuteFrom(context.Background(), 1, testState{Executed: 1}, testResource(faker.Word()))
	require.Error(t, err)
	assert.True(t, report.Outcomes[1].IsRetryable)
	assert.Equal(t, []string{"A"}, j.compensated)
	assert.Equal(t, -1, report.ResumeIndex())
}

func TestSaga_NonRetryableFailureIsCompensatedEvenIfDeferred(t *testing.T) {
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource](DeferCompensationOnRetryableFailure())
	orch.RegisterFunction(
		newTestStep(t, ctlr, j, "A", true, true, nil),
		newTestStep(t, ctlr, j, "B", true, false, commonerrors.New(commonerrors.ErrForbidden, "tenant is not allowed")),
	)

	_, report, err := orch.Execute(context.Background(), testState{}, testResource(faker.Word()))
	require.Error(t, err)
	errortest.AssertError(t, err, commonerrors.ErrForbidden)
	assert.Equal(t, []string{"A"}, j.compensated)
	assert.Equal(t, StatusCompensated, report.Status)
}

func TestSaga_CustomRetryableClassifier(t *testing.T) {
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource](WithRetryableClassifier(func(err error) bool {
		return commonerrors.Any(err, commonerrors.ErrConflict)
	}))
	orch.RegisterFunction(newTestStep(t, ctlr, j, "A", true, false, commonerrors.ErrConflict))

	_, report, err := orch.Execute(context.Background(), testState{}, testResource(faker.Word()))
	require.Error(t, err)
	assert.True(t, report.Outcomes[0].IsRetryable)
	assert.Equal(t, 0, report.ResumeIndex())
}

func TestSaga_UndefinedStep(t *testing.T) {
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource]()
	orch.RegisterFunction(newTestStep(t, ctlr, j, "A", true, true, nil), nil)

	state, report, err := orch.Execute(context.Background(), testState{}, testResource(faker.Word()))
	require.Error(t, err)
	errortest.AssertError(t, err, commonerrors.ErrUndefined)
	assert.Equal(t, []string{"A"}, j.compensated)
	assert.Equal(t, 1, state.Compensated)
	assert.Equal(t, 1, report.FailedStep())
}

func TestSaga_InvalidStart(t *testing.T) {
	ctlr := gomock.NewController(t)
	j := &journal{}
	orch := NewOrchestrator[testState, testResource]()
	orch.RegisterFunction(newTestStep(t, ctlr, j, "A", false, false, nil))

	_, report, err := orch.ExecuteFrom(context.Background(), 2, testState{}, testResource(faker.Word()))
	errortest.AssertError(t, err, commonerrors.ErrOutOfRange)
	assert.Nil(t, report)

	_, _, err = orch.ExecuteFrom(context.Background(), -1, testState{}, testResource(faker.Word()))
	errortest.AssertError(t, err, commonerrors.ErrOutOfRange)

	_, report, err = orch.ExecuteFrom(context.Background(), 1, testState{}, testResource(faker.Word()))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, report.Status)
}

func TestStepIdentifier(t *testing.T) {
	name := faker.Word()
	namespace := faker.DomainName()
	id := NewStepIdentifier(name, namespace)
	assert.Equal(t, name, id.GetName())
	assert.Equal(t, namespace, id.GetNamespace())
	assert.Equal(t, name+"@"+namespace, id.String())
}
