// Package provisioning provisions and deprovisions marketplace SaaS subscriptions as side effects of control-plane operations.
//
// Every operation is a saga (see transaction/saga) made of idempotent steps threading a marketplace.WorkflowContext.
package provisioning

import (
	"github.com/marketplace-rp/saasprovisioning/marketplace"
	"github.com/marketplace-rp/saasprovisioning/transaction/saga"
)

// StepNamespace is the namespace of every provisioning step identifier.
const StepNamespace = "marketplace"

//go:generate go tool enumer -type=WorkflowState -trimprefix=State -text -json
type WorkflowState int

const (
	StateCreateSaaS WorkflowState = iota
	StateActivateSaaS
	StateDeleteSaaS
	StateUpdateSaaS
)

// Identifier returns the identifier of the step performing this state transition.
func (i WorkflowState) Identifier() saga.IActionIdentifier {
	return saga.NewStepIdentifier(i.String(), StepNamespace)
}

// Step is a step of a provisioning saga.
type Step = saga.ITransactionStep[marketplace.WorkflowContext, marketplace.BaseResource]
