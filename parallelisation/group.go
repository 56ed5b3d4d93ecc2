// Package parallelisation executes groups of functions sequentially, in reverse order or concurrently with a bounded number of workers.
package parallelisation

import (
	"context"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/errgroup"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

type StoreOptions struct {
	stopOnFirstError bool
	sequential       bool
	reverse          bool
	joinErrors       bool
	workers          int
}

func (o *StoreOptions) Default() *StoreOptions {
	o.stopOnFirstError = false
	o.sequential = false
	o.reverse = false
	o.joinErrors = false
	o.workers = 0
	return o
}

func (o *StoreOptions) Merge(opts *StoreOptions) *StoreOptions {
	if opts == nil {
		return o
	}
	o.stopOnFirstError = opts.stopOnFirstError || o.stopOnFirstError
	o.sequential = opts.sequential || o.sequential
	o.reverse = opts.reverse || o.reverse
	o.joinErrors = opts.joinErrors || o.joinErrors
	o.workers = max(opts.workers, o.workers)
	return o
}

type StoreOption func(*StoreOptions) *StoreOptions

// StopOnFirstError stops ExecutionGroup execution on first error.
var StopOnFirstError StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.stopOnFirstError = true
	o.joinErrors = false
	return o
}

// JoinErrors will collate any errors which happened when executing functions in ExecutionGroup.
// This option should not be used in combination to StopOnFirstError.
var JoinErrors StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.stopOnFirstError = false
	o.joinErrors = true
	return o
}

// ExecuteAll executes all functions in the ExecutionGroup even if an error is raised. the first error raised is then returned.
var ExecuteAll StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.stopOnFirstError = false
	return o
}

// Workers defines a limit number of workers for executing the function registered in the ExecutionGroup.
func Workers(workers int) StoreOption {
	return func(o *StoreOptions) *StoreOptions {
		if o == nil {
			o = DefaultOptions()
		}
		o.workers = workers
		o.sequential = false
		return o
	}
}

// Sequential ensures every function registered in the ExecutionGroup is executed sequentially in the order they were registered.
var Sequential StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.sequential = true
	return o
}

// SequentialInReverse ensures every function registered in the ExecutionGroup is executed sequentially but in the reverse order they were registered.
var SequentialInReverse StoreOption = func(o *StoreOptions) *StoreOptions {
	if o == nil {
		o = DefaultOptions()
	}
	o.sequential = true
	o.reverse = true
	return o
}

// WithOptions defines a store configuration.
func WithOptions(option ...StoreOption) (opts *StoreOptions) {
	for i := range option {
		opts = option[i](opts)
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	return
}

// DefaultOptions returns the default store configuration
func DefaultOptions() *StoreOptions {
	opts := &StoreOptions{}
	return opts.Default()
}

type IExecutor interface {
	// Execute executes all the functions in the group.
	Execute(ctx context.Context) error
}

type IExecutionGroup[T any] interface {
	IExecutor
	RegisterFunction(function ...T)
	Len() int
}

// NewExecutionGroup returns an execution group which executes functions according to store options.
func NewExecutionGroup[T any](executeFunc ExecuteFunc[T], options ...StoreOption) *ExecutionGroup[T] {
	opts := WithOptions(options...)
	return &ExecutionGroup[T]{
		functions:   make([]wrappedElement[T], 0),
		executeFunc: executeFunc,
		options:     *opts,
	}
}

type ExecuteFunc[T any] func(ctx context.Context, element T) error

type ExecutionGroup[T any] struct {
	mu          deadlock.RWMutex
	functions   []wrappedElement[T]
	executeFunc ExecuteFunc[T]
	options     StoreOptions
}

// RegisterFunction registers functions to the group.
func (s *ExecutionGroup[T]) RegisterFunction(function ...T) {
	defer s.mu.Unlock()
	s.mu.Lock()
	for i := range function {
		s.functions = append(s.functions, newWrapped(function[i]))
	}
}

func (s *ExecutionGroup[T]) Len() int {
	defer s.mu.RUnlock()
	s.mu.RLock()
	return len(s.functions)
}

// Execute executes all the function in the group according to store options.
// The group is not locked while functions run so that long-running functions do not block registration.
func (s *ExecutionGroup[T]) Execute(ctx context.Context) error {
	if s.executeFunc == nil {
		return commonerrors.New(commonerrors.ErrUndefined, "the group was not initialised correctly")
	}
	s.mu.RLock()
	functions := make([]wrappedElement[T], len(s.functions))
	copy(functions, s.functions)
	s.mu.RUnlock()

	if s.options.sequential {
		return s.executeSequentially(ctx, functions)
	}
	return s.executeConcurrently(ctx, functions)
}

func (s *ExecutionGroup[T]) executeConcurrently(ctx context.Context, functions []wrappedElement[T]) error {
	g, gCtx := errgroup.WithContext(ctx)
	if !s.options.stopOnFirstError {
		gCtx = ctx
	}
	funcNum := len(functions)
	if funcNum == 0 {
		return DetermineContextError(ctx)
	}
	workers := s.options.workers
	if workers <= 0 {
		workers = funcNum
	}
	errCh := make(chan error, funcNum)

	g.SetLimit(workers)
	for i := range functions {
		g.Go(func() error {
			_, subErr := s.executeFunction(gCtx, functions[i])
			errCh <- subErr
			if s.options.stopOnFirstError {
				return subErr
			}
			return nil
		})
	}
	err := g.Wait()
	close(errCh)
	collateErr := make([]error, 0, funcNum)
	for subErr := range errCh {
		collateErr = append(collateErr, subErr)
	}
	switch {
	case s.options.joinErrors:
		err = commonerrors.Join(collateErr...)
	case err == nil:
		for i := range collateErr {
			if collateErr[i] != nil {
				err = collateErr[i]
				break
			}
		}
	}
	return err
}

func (s *ExecutionGroup[T]) executeSequentially(ctx context.Context, functions []wrappedElement[T]) (err error) {
	err = DetermineContextError(ctx)
	if err != nil {
		return
	}
	funcNum := len(functions)
	collateErr := make([]error, funcNum)
	for j := range functions {
		i := j
		if s.options.reverse {
			i = funcNum - j - 1
		}
		shouldBreak, subErr := s.executeFunction(ctx, functions[i])
		collateErr[j] = subErr
		if shouldBreak {
			err = subErr
			return
		}
		if subErr != nil && err == nil {
			err = subErr
			if s.options.stopOnFirstError {
				return
			}
		}
	}

	if s.options.joinErrors {
		err = commonerrors.Join(collateErr...)
	}
	return
}

func (s *ExecutionGroup[T]) executeFunction(ctx context.Context, w wrappedElement[T]) (mustBreak bool, err error) {
	err = DetermineContextError(ctx)
	if err != nil {
		mustBreak = true
		return
	}
	if w == nil {
		err = commonerrors.UndefinedVariable("function element")
		mustBreak = true
		return
	}
	err = w.Execute(ctx, s.executeFunc)
	return
}

type wrappedElement[T any] interface {
	Execute(ctx context.Context, f ExecuteFunc[T]) error
}

type basicWrap[T any] struct {
	value T
}

func (w *basicWrap[T]) Execute(ctx context.Context, f ExecuteFunc[T]) error {
	return f(ctx, w.value)
}

func newWrapped[T any](e T) wrappedElement[T] {
	return &basicWrap[T]{value: e}
}
