package saga

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/sasha-s/go-deadlock"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/parallelisation"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

var _ ISagaOrchestrator[any, any] = &Orchestrator[any, any]{}

type options struct {
	logger                     logr.Logger
	compensationTimeout        time.Duration
	isRetryable                func(error) bool
	deferRetryableCompensation bool
}

type Option func(*options)

// WithLogger sets the logger used to report step transitions.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCompensationTimeout bounds the time allowed for compensating all the steps. Compensation is never bound by the context of the forward chain.
func WithCompensationTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.compensationTimeout = timeout
	}
}

// WithRetryableClassifier defines how step failures are classified as retryable in the report. By default, transient errors are.
func WithRetryableClassifier(isRetryable func(error) bool) Option {
	return func(o *options) {
		if isRetryable != nil {
			o.isRetryable = isRetryable
		}
	}
}

// DeferCompensationOnRetryableFailure leaves successfully executed steps in place when the failure is retryable so that the saga can be resumed using ExecuteFrom.
func DeferCompensationOnRetryableFailure() Option {
	return func(o *options) {
		o.deferRetryableCompensation = true
	}
}

// NewOrchestrator returns an orchestrator executing steps in the order they are registered and compensating the successful ones in reverse order on failure.
func NewOrchestrator[S, R any](opts ...Option) *Orchestrator[S, R] {
	o := options{
		logger:      logr.Discard(),
		isRetryable: retry.IsTransient,
	}
	for i := range opts {
		opts[i](&o)
	}
	return &Orchestrator[S, R]{options: o}
}

// NewOrchestratorWithSteps is similar to NewOrchestrator but also registers steps.
func NewOrchestratorWithSteps[S, R any](steps []ITransactionStep[S, R], opts ...Option) *Orchestrator[S, R] {
	o := NewOrchestrator[S, R](opts...)
	o.RegisterFunction(steps...)
	return o
}

type Orchestrator[S, R any] struct {
	mu      deadlock.RWMutex
	steps   []ITransactionStep[S, R]
	options options
}

func (s *Orchestrator[S, R]) RegisterFunction(step ...ITransactionStep[S, R]) {
	defer s.mu.Unlock()
	s.mu.Lock()
	s.steps = append(s.steps, step...)
}

func (s *Orchestrator[S, R]) Len() int {
	defer s.mu.RUnlock()
	s.mu.RLock()
	return len(s.steps)
}

func (s *Orchestrator[S, R]) snapshot() []ITransactionStep[S, R] {
	defer s.mu.RUnlock()
	s.mu.RLock()
	steps := make([]ITransactionStep[S, R], len(s.steps))
	copy(steps, s.steps)
	return steps
}

func (s *Orchestrator[S, R]) Execute(ctx context.Context, state S, resource R) (S, *Report, error) {
	return s.ExecuteFrom(ctx, 0, state, resource)
}

func (s *Orchestrator[S, R]) ExecuteFrom(ctx context.Context, start int, state S, resource R) (result S, report *Report, err error) {
	result = state
	steps := s.snapshot()
	if start < 0 || start > len(steps) {
		err = commonerrors.Newf(commonerrors.ErrOutOfRange, "cannot start saga at step %v: only %v steps are registered", start, len(steps))
		return
	}
	ids := make([]IActionIdentifier, len(steps))
	for i := range steps {
		if steps[i] != nil {
			ids[i] = steps[i].GetID()
		}
	}
	report = newReport(ids, start)
	logger := s.options.logger

	report.Status = StatusInProgress
	var succeeded []int
	forward := parallelisation.NewExecutionGroup[int](func(ctx context.Context, i int) error {
		step := steps[i]
		if step == nil {
			return commonerrors.UndefinedVariable("transaction step")
		}
		stepLogger := logger.WithValues("step", ids[i], "index", i)
		stepLogger.V(1).Info("executing step")
		report.Outcomes[i].Executed = true
		next, subErr := step.Execute(ctx, result, resource)
		if subErr != nil {
			stepLogger.Error(subErr, "step failed")
			return subErr
		}
		result = next
		report.Outcomes[i].IsSuccessfullyExecuted = true
		succeeded = append(succeeded, i)
		stepLogger.V(1).Info("step succeeded")
		return nil
	}, parallelisation.Sequential, parallelisation.StopOnFirstError)
	for i := start; i < len(steps); i++ {
		forward.RegisterFunction(i)
	}

	forwardErr := forward.Execute(ctx)
	if forwardErr == nil {
		report.Status = StatusCompleted
		logger.V(1).Info("saga completed", "steps", len(steps)-start)
		return
	}

	sagaErr := &Error{cause: forwardErr}
	err = sagaErr
	failed := start + len(succeeded)
	if failed < len(steps) {
		sagaErr.Step = ids[failed]
		report.Outcomes[failed].Err = forwardErr
		report.Outcomes[failed].IsRetryable = !retry.IsCancellation(forwardErr) && s.options.isRetryable(forwardErr)
		if s.options.deferRetryableCompensation && report.Outcomes[failed].IsRetryable {
			logger.Info("saga interrupted by a retryable failure; compensation deferred", "step", ids[failed], "resumeIndex", failed)
			return
		}
	}

	// steps applied by an earlier run are undone too.
	applied := make([]int, 0, start+len(succeeded))
	for i := 0; i < start; i++ {
		if steps[i] != nil {
			applied = append(applied, i)
		}
	}
	applied = append(applied, succeeded...)
	rollbackErr := s.compensate(ctx, logger, steps, applied, &result, resource, report)
	sagaErr.rollbackErr = rollbackErr
	if rollbackErr != nil {
		report.Status = StatusFailed
		logger.Error(rollbackErr, "saga compensation failed", "step", sagaErr.Step)
		return
	}
	report.Status = StatusCompensated
	logger.Info("saga compensated", "step", sagaErr.Step, "compensatedSteps", len(applied))
	return
}

// compensate undoes the applied steps in reverse order. A failing compensation does not prevent the remaining ones from being attempted.
func (s *Orchestrator[S, R]) compensate(ctx context.Context, logger logr.Logger, steps []ITransactionStep[S, R], applied []int, state *S, resource R, report *Report) error {
	if len(applied) == 0 {
		return nil
	}
	report.Status = StatusCompensating
	// compensation must not be stopped by the cancellation which may have interrupted the forward chain.
	compensationCtx := context.WithoutCancel(ctx)
	if s.options.compensationTimeout > 0 {
		var cancel context.CancelFunc
		compensationCtx, cancel = context.WithTimeout(compensationCtx, s.options.compensationTimeout)
		defer cancel()
	}
	compensation := parallelisation.NewExecutionGroup[int](func(ctx context.Context, i int) error {
		stepLogger := logger.WithValues("step", report.Outcomes[i].ID, "index", i)
		stepLogger.V(1).Info("compensating step")
		next, subErr := steps[i].Compensate(ctx, *state, resource)
		if subErr != nil {
			report.Outcomes[i].CompensationErr = subErr
			stepLogger.Error(subErr, "step compensation failed")
			return subErr
		}
		*state = next
		report.Outcomes[i].Compensated = true
		return nil
	}, parallelisation.SequentialInReverse, parallelisation.JoinErrors)
	compensation.RegisterFunction(applied...)
	return compensation.Execute(compensationCtx)
}
