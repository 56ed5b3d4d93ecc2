package saga

import (
	"fmt"
)

// Error is returned when a saga could not complete. It unwraps to the error which triggered the compensation so that callers see the root cause only.
type Error struct {
	// Step is the identifier of the step which failed.
	Step        IActionIdentifier
	cause       error
	rollbackErr error
}

func (e *Error) Error() string {
	if e.rollbackErr == nil {
		return fmt.Sprintf("step %v failed: %v", e.Step, e.cause)
	}
	return fmt.Sprintf("step %v failed: %v (compensation failed: %v)", e.Step, e.cause, e.rollbackErr)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// RollbackError returns the error raised while compensating, if any.
func (e *Error) RollbackError() error {
	return e.rollbackErr
}
