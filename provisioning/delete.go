package provisioning

import (
	"context"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
)

var _ Step = &DeleteSaaS{}

// saasDeleter deletes the marketplace subscription referenced by a workflow context. It is shared by the steps having to undo a subscription.
type saasDeleter struct {
	step
	fulfillment marketplace.IFulfillmentClient
	arm         marketplace.IARMClient
}

// delete removes the marketplace subscription unless it was already deleted or never created.
// Subscription-level resources are deleted through ARM whereas tenant-level subscriptions are unsubscribed from the fulfillment API.
// A subscription which cannot be found is considered deleted.
func (d *saasDeleter) delete(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	logger := d.loggerFor(wc)
	if wc.IsSaaSDeleted() {
		logger.V(1).Info("marketplace subscription already deleted")
		return wc, nil
	}
	subscription := wc.Marketplace.MarketplaceSubscription
	if !subscription.IsDefined() {
		logger.V(1).Info("no marketplace subscription to delete")
		return wc, nil
	}
	var resourceGroup *string
	if wc.Marketplace.IsSubscriptionLevel {
		rg, err := marketplace.ParseResourceGroup(resourceIDOf(wc, resource))
		if err != nil {
			err = commonerrors.WrapError(commonerrors.ErrInvalid, err, "could not determine the resource group of the SaaS resource")
			logger.Error(err, "could not delete marketplace subscription")
			return wc, err
		}
		resourceGroup = &rg
	}
	err := d.call(ctx, logger, func() (subErr error) {
		if resourceGroup == nil {
			_, subErr = d.fulfillment.DeleteSubscription(ctx, subscription.ID, wc.RequestMetadata)
			return
		}
		_, subErr = d.arm.DeleteSaaSResource(ctx, wc.SubscriptionID, saasResourceName(subscription, resource), resourceGroup, wc.RequestMetadata)
		return
	}, "retrying marketplace subscription deletion")
	if isNotFound(err) {
		logger.Info("marketplace subscription not found; considering it deleted")
		err = nil
	}
	if err != nil {
		logger.Error(err, "could not delete marketplace subscription")
		return wc, err
	}
	logger.Info("marketplace subscription deleted")
	return wc.WithSaaSDeleted(), nil
}

func saasResourceName(subscription marketplace.MarketplaceSubscription, resource marketplace.BaseResource) string {
	if subscription.Name != "" {
		return subscription.Name
	}
	return resource.Name
}

func isNotFound(err error) bool {
	return err != nil && (marketplace.IsCommerceErrorWithCode(err, marketplace.CodeNotFound) || commonerrors.Any(err, commonerrors.ErrNotFound))
}

// DeleteSaaS deletes the marketplace subscription of a resource. There is nothing to compensate.
type DeleteSaaS struct {
	saasDeleter
}

func NewDeleteSaaS(deps *StepDependencies) (*DeleteSaaS, error) {
	err := deps.checkARM()
	if err != nil {
		return nil, err
	}
	return &DeleteSaaS{saasDeleter: newSaaSDeleter(StateDeleteSaaS, deps)}, nil
}

func newSaaSDeleter(state WorkflowState, deps *StepDependencies) saasDeleter {
	return saasDeleter{
		step:        newStep(state, deps),
		fulfillment: deps.Fulfillment,
		arm:         deps.ARM,
	}
}

func (s *DeleteSaaS) Execute(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	return s.delete(ctx, wc, resource)
}

func (s *DeleteSaaS) Compensate(_ context.Context, wc marketplace.WorkflowContext, _ marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	return wc, nil
}
