package saga

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

type stepIdentifier struct {
	name      string
	namespace string
}

func (i *stepIdentifier) String() string {
	return fmt.Sprintf("%s@%s", i.name, i.namespace)
}

func (i *stepIdentifier) GetName() string {
	return i.name
}

func (i *stepIdentifier) GetNamespace() string {
	return i.namespace
}

func NewStepIdentifier(name, namespace string) IActionIdentifier {
	return &stepIdentifier{
		name:      name,
		namespace: namespace,
	}
}

// Status describes where a saga execution is in its lifecycle.
type Status string

const (
	StatusCreated      Status = "created"
	StatusInProgress   Status = "in_progress"
	StatusCompensating Status = "compensating"
	StatusCompleted    Status = "completed"
	StatusCompensated  Status = "compensated"
	// StatusFailed means compensation itself failed and the remote systems may be left in an inconsistent state.
	StatusFailed Status = "failed"
)

// IsTerminal states whether no further transition can happen.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCompensated, StatusFailed:
		return true
	default:
		return false
	}
}

// StepOutcome records what happened to a single step during a saga execution.
type StepOutcome struct {
	ID                     IActionIdentifier
	Executed               bool
	IsSuccessfullyExecuted bool
	// IsRetryable hints whether re-running the saga from this step could succeed.
	IsRetryable bool
	Compensated bool
	Err         error
	// CompensationErr is set when compensating this step failed.
	CompensationErr error
}

func (o *StepOutcome) String() string {
	return fmt.Sprintf("%v[executed: %v, success: %v, retryable: %v, compensated: %v]", o.ID, o.Executed, o.IsSuccessfullyExecuted, o.IsRetryable, o.Compensated)
}

// Report describes the outcome of a saga execution.
type Report struct {
	Status   Status
	Start    int
	Outcomes []StepOutcome
}

func newReport(ids []IActionIdentifier, start int) *Report {
	r := &Report{
		Status:   StatusCreated,
		Start:    start,
		Outcomes: make([]StepOutcome, len(ids)),
	}
	for i := range ids {
		r.Outcomes[i].ID = ids[i]
	}
	return r
}

// FailedStep returns the index of the step whose forward action failed or -1 if none did.
// A step which could not even start because the context was cancelled counts as failed.
func (r *Report) FailedStep() int {
	if r == nil {
		return -1
	}
	for i := range r.Outcomes {
		if r.Outcomes[i].Err != nil {
			return i
		}
	}
	return -1
}

// ResumeIndex returns the index from which the saga may be resumed with ExecuteFrom or -1 if resuming makes no sense.
// Resuming only makes sense if the forward chain failed on a retryable error and the successful steps were not compensated.
func (r *Report) ResumeIndex() int {
	failed := r.FailedStep()
	if failed < 0 || !r.Outcomes[failed].IsRetryable {
		return -1
	}
	for i := 0; i < failed; i++ {
		if r.Outcomes[i].Compensated {
			return -1
		}
	}
	return failed
}

// CompensationErrors aggregates every compensation failure recorded in the report.
func (r *Report) CompensationErrors() error {
	if r == nil {
		return nil
	}
	var result *multierror.Error
	for i := range r.Outcomes {
		if r.Outcomes[i].CompensationErr != nil {
			result = multierror.Append(result, fmt.Errorf("%v: %w", r.Outcomes[i].ID, r.Outcomes[i].CompensationErr))
		}
	}
	return result.ErrorOrNil()
}

func (r *Report) String() string {
	if r == nil {
		return ""
	}
	outcomes := make([]string, 0, len(r.Outcomes))
	for i := range r.Outcomes {
		outcomes = append(outcomes, r.Outcomes[i].String())
	}
	return fmt.Sprintf("%v: [%v]", r.Status, strings.Join(outcomes, ", "))
}
