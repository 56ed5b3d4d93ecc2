package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
	"github.com/marketplace-rp/saasprovisioning/retry"
	"github.com/marketplace-rp/saasprovisioning/transaction/saga"
)

// Collaborators are the remote services provisioning relies on.
type Collaborators struct {
	Fulfillment marketplace.IFulfillmentClient
	ARM         marketplace.IARMClient
	Agreements  marketplace.IAgreementService
	// IgnoreList lists subscriptions for which no marketplace call is made. No subscription is ignored if not set.
	IgnoreList marketplace.IIgnoreList
}

// StepDependencies gathers what provisioning steps need.
type StepDependencies struct {
	Collaborators
	// RetryPolicy applies to remote calls made by steps. Only transient failures are retried.
	RetryPolicy *retry.RetryPolicyConfiguration
	Logger      logr.Logger
}

func (d *StepDependencies) checkFulfillment() error {
	if d == nil {
		return commonerrors.UndefinedParameter("step dependencies")
	}
	if d.Fulfillment == nil {
		return commonerrors.UndefinedParameter("fulfillment client")
	}
	return nil
}

func (d *StepDependencies) checkARM() error {
	err := d.checkFulfillment()
	if err != nil {
		return err
	}
	if d.ARM == nil {
		return commonerrors.UndefinedParameter("ARM client")
	}
	return nil
}

type step struct {
	id          saga.IActionIdentifier
	ignoreList  marketplace.IIgnoreList
	retryPolicy *retry.RetryPolicyConfiguration
	logger      logr.Logger
}

func newStep(state WorkflowState, deps *StepDependencies) step {
	s := step{
		id:          state.Identifier(),
		ignoreList:  deps.IgnoreList,
		retryPolicy: deps.RetryPolicy,
		logger:      deps.Logger,
	}
	if s.ignoreList == nil {
		s.ignoreList = marketplace.NewStaticIgnoreList()
	}
	if s.retryPolicy == nil {
		s.retryPolicy = retry.DefaultMarketplaceRetryPolicyConfiguration()
	}
	if s.logger.GetSink() == nil {
		s.logger = logr.Discard()
	}
	s.logger = s.logger.WithName(state.String())
	return s
}

func (s *step) GetID() saga.IActionIdentifier {
	return s.id
}

func (s *step) loggerFor(wc marketplace.WorkflowContext) logr.Logger {
	return s.logger.WithValues(wc.LogValues()...)
}

func (s *step) isIgnored(wc marketplace.WorkflowContext) bool {
	return s.ignoreList.ShouldIgnoreCreateFailure(wc.SubscriptionID)
}

// call performs a remote call, retrying it on transient failures.
func (s *step) call(ctx context.Context, logger logr.Logger, fn func() error, msgOnRetry string) error {
	return retry.RetryOnTransientError(ctx, logger, s.retryPolicy, fn, msgOnRetry)
}

// resourceIDOf returns the identifier of the resource being acted upon.
func resourceIDOf(wc marketplace.WorkflowContext, resource marketplace.BaseResource) string {
	if resource.ID != "" {
		return resource.ID
	}
	return wc.ResourceID
}

// requestedPlan returns the plan the subscription should be on. Values recorded in the context take precedence over the resource plan.
func requestedPlan(wc marketplace.WorkflowContext, resource marketplace.BaseResource) (planID string, quantity *int) {
	planID = wc.Marketplace.PlanID
	quantity = wc.Marketplace.Quantity
	if resource.Plan == nil {
		return
	}
	if planID == "" {
		planID = resource.Plan.PlanID
	}
	if quantity == nil {
		quantity = resource.Plan.Quantity
	}
	return
}
