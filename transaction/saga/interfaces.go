// Package saga provides an implementation for the [SAGA pattern](https://microservices.io/patterns/data/saga.html) for [transaction like distribution processes](https://learn.microsoft.com/en-us/azure/architecture/patterns/saga) across multiple services without relying on a global ACID transaction.
// The SAGA orchestration pattern breaks a distributed business operation into a sequence of local transactions coordinated by a central orchestrator. Each step executes independently, and if any step fails, the orchestrator triggers compensating transactions in reverse order to undo completed work, following the [Compensating Transaction pattern](https://learn.microsoft.com/en-us/azure/architecture/patterns/compensating-transaction).
// Steps thread a state value from one to the next: each step receives the state produced by the previous one and returns it with its own effect recorded.
// To make sagas safe across retries and resumption, steps must be idempotent: a step whose effect is already recorded in the state must treat its re-entry as a no-op success.
package saga

//go:generate go tool mockgen -destination=./mock_test.go -package=saga github.com/marketplace-rp/saasprovisioning/transaction/$GOPACKAGE IActionIdentifier,ITransactionStep

import (
	"context"
	"fmt"
)

type IActionIdentifier interface {
	fmt.Stringer
	GetName() string
	GetNamespace() string
}

// ITransactionStep describes a step in the transaction across a distributed system.
// S is the state threaded through the saga and R the resource the saga acts upon.
type ITransactionStep[S, R any] interface {
	// GetID returns an identifier of the action
	GetID() IActionIdentifier
	// Execute performs the forward action and returns the state with the effect recorded.
	Execute(ctx context.Context, state S, resource R) (S, error)
	// Compensate performs the compensating/rollback action. It must return the state unchanged and no error if there is nothing to undo.
	Compensate(ctx context.Context, state S, resource R) (S, error)
}

// ISagaOrchestrator coordinates a sequence of local transactions (ITransactionStep) to
// achieve an eventually consistent distributed workflow without relying on a
// global ACID transaction. Each step has a forward action (Execute) and a
// compensating action (Compensate). The orchestrator executes steps in order;
// if any step fails, it triggers compensating actions in reverse order to undo
// previously completed steps.
//
// References:
//   - Saga Pattern:
//     https://en.wikipedia.org/wiki/Long-running_transaction
//     https://learn.microsoft.com/en-us/azure/architecture/patterns/saga
//   - Compensating Transaction Pattern:
//     https://learn.microsoft.com/en-us/azure/architecture/patterns/compensating-transaction
type ISagaOrchestrator[S, R any] interface {
	RegisterFunction(step ...ITransactionStep[S, R])
	Len() int
	// Execute runs every registered step.
	Execute(ctx context.Context, state S, resource R) (S, *Report, error)
	// ExecuteFrom runs the registered steps starting at index start. Steps before start are considered already applied:
	// they are not executed again but they are compensated along with the steps of this run if the saga has to be rolled back.
	ExecuteFrom(ctx context.Context, start int, state S, resource R) (S, *Report, error)
}
