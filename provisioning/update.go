package provisioning

import (
	"context"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/field"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
)

var _ Step = &UpdateSaaS{}

// UpdateSaaS moves the marketplace subscription of a resource to the plan and quantity requested by the resource.
// The plan in place beforehand is recorded in the context so that the change can be reverted.
type UpdateSaaS struct {
	step
	fulfillment marketplace.IFulfillmentClient
}

func NewUpdateSaaS(deps *StepDependencies) (*UpdateSaaS, error) {
	err := deps.checkFulfillment()
	if err != nil {
		return nil, err
	}
	return &UpdateSaaS{
		step:        newStep(StateUpdateSaaS, deps),
		fulfillment: deps.Fulfillment,
	}, nil
}

type planChange struct {
	planID   string
	quantity *int
}

func (c planChange) isEmpty() bool {
	return c.planID == "" && c.quantity == nil
}

// diff returns what has to be sent for the subscription to move from (currentPlanID, currentQuantity) to (planID, quantity).
func diff(currentPlanID string, currentQuantity *int, planID string, quantity *int) (change planChange) {
	if planID != "" && planID != currentPlanID {
		change.planID = planID
	}
	if quantity != nil && !field.EqualOptionalInt(quantity, currentQuantity) {
		change.quantity = field.ToOptionalInt(*quantity)
	}
	return
}

func (s *UpdateSaaS) Execute(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	logger := s.loggerFor(wc)
	if s.isIgnored(wc) {
		logger.Info("subscription is in the ignore list; the marketplace subscription is left untouched")
		return wc, nil
	}
	err := checkUpdatable(wc)
	if err == nil && resource.Plan == nil {
		err = commonerrors.Newf(commonerrors.ErrInvalid, "resource %q does not define any plan", resourceIDOf(wc, resource))
	}
	if err != nil {
		logger.Error(err, "could not update marketplace subscription")
		return wc, err
	}
	mc := wc.Marketplace
	change := diff(mc.PlanID, mc.Quantity, resource.Plan.PlanID, resource.Plan.Quantity)
	if change.isEmpty() {
		logger.V(1).Info("marketplace subscription already on the requested plan", "plan", mc.PlanID)
		return wc, nil
	}
	err = s.apply(ctx, wc, change)
	if err != nil {
		logger.Error(err, "could not update marketplace subscription", "plan", change.planID)
		return wc, err
	}
	wc.Marketplace.PreviousPlanID = mc.PlanID
	wc.Marketplace.PreviousQuantity = mc.Quantity
	wc = withPlan(wc, change)
	logger.Info("marketplace subscription updated", "plan", wc.Marketplace.PlanID, "previousPlan", wc.Marketplace.PreviousPlanID)
	return wc, nil
}

// Compensate moves the subscription back to the plan recorded before the update, if any.
func (s *UpdateSaaS) Compensate(ctx context.Context, wc marketplace.WorkflowContext, _ marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	logger := s.loggerFor(wc)
	mc := wc.Marketplace
	change := diff(mc.PlanID, mc.Quantity, mc.PreviousPlanID, mc.PreviousQuantity)
	if change.isEmpty() || s.isIgnored(wc) {
		logger.V(1).Info("no plan change to revert")
		return wc, nil
	}
	err := checkUpdatable(wc)
	if err != nil {
		logger.Error(err, "could not revert marketplace subscription plan")
		return wc, err
	}
	err = s.apply(ctx, wc, change)
	if err != nil {
		logger.Error(err, "could not revert marketplace subscription plan", "plan", change.planID)
		return wc, err
	}
	wc = withPlan(wc, change)
	wc.Marketplace.PreviousPlanID = ""
	wc.Marketplace.PreviousQuantity = nil
	logger.Info("marketplace subscription plan reverted", "plan", wc.Marketplace.PlanID)
	return wc, nil
}

func (s *UpdateSaaS) apply(ctx context.Context, wc marketplace.WorkflowContext, change planChange) error {
	return s.call(ctx, s.loggerFor(wc), func() error {
		_, err := s.fulfillment.UpdateSubscription(ctx, wc.Marketplace.MarketplaceSubscription.ID, change.planID, change.quantity, wc.RequestMetadata)
		return err
	}, "retrying marketplace subscription update")
}

func checkUpdatable(wc marketplace.WorkflowContext) error {
	if wc.IsSaaSDeleted() {
		return commonerrors.New(commonerrors.ErrConflict, "cannot update a deleted marketplace subscription")
	}
	if !wc.Marketplace.MarketplaceSubscription.IsDefined() {
		return commonerrors.UndefinedVariable("marketplace subscription to update")
	}
	return nil
}

func withPlan(wc marketplace.WorkflowContext, change planChange) marketplace.WorkflowContext {
	if change.planID != "" {
		wc.Marketplace.PlanID = change.planID
	}
	if change.quantity != nil {
		wc.Marketplace.Quantity = change.quantity
	}
	return wc
}
