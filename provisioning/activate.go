package provisioning

import (
	"context"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
)

var _ Step = &ActivateSaaS{}

// ActivateSaaS activates the marketplace subscription created for a resource so that billing starts.
// The fulfillment client is expected to cope with the subscription not being visible yet (see httpclient.EntityNotFoundRetryPolicy).
type ActivateSaaS struct {
	saasDeleter
}

func NewActivateSaaS(deps *StepDependencies) (*ActivateSaaS, error) {
	err := deps.checkARM()
	if err != nil {
		return nil, err
	}
	return &ActivateSaaS{saasDeleter: newSaaSDeleter(StateActivateSaaS, deps)}, nil
}

func (s *ActivateSaaS) Execute(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	logger := s.loggerFor(wc)
	if s.isIgnored(wc) {
		logger.Info("subscription is in the ignore list; the marketplace subscription is considered active")
		return wc.WithSaaSActivated(), nil
	}
	if wc.SaaSActivationStatus() {
		logger.V(1).Info("marketplace subscription already activated")
		return wc, nil
	}
	if wc.IsSaaSDeleted() {
		err := commonerrors.New(commonerrors.ErrConflict, "cannot activate a deleted marketplace subscription")
		logger.Error(err, "could not activate marketplace subscription")
		return wc, err
	}
	subscription := wc.Marketplace.MarketplaceSubscription
	if !subscription.IsDefined() {
		err := commonerrors.UndefinedVariable("marketplace subscription to activate")
		logger.Error(err, "could not activate marketplace subscription")
		return wc, err
	}
	planID, quantity := requestedPlan(wc, resource)
	err := s.call(ctx, logger, func() error {
		_, subErr := s.fulfillment.ActivateSubscription(ctx, subscription.ID, planID, quantity, wc.RequestMetadata)
		return subErr
	}, "retrying marketplace subscription activation")
	if err != nil {
		logger.Error(err, "could not activate marketplace subscription", "plan", planID)
		return wc, err
	}
	logger.Info("marketplace subscription activated", "plan", planID)
	return wc.WithSaaSActivated(), nil
}

func (s *ActivateSaaS) Compensate(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	return s.delete(ctx, wc, resource)
}
