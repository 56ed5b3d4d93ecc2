package provisioning

import (
	"context"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
)

var _ Step = &CreateSaaS{}

// CreateSaaS creates the marketplace SaaS subscription of a resource.
// For subscription-level resources, the marketplace terms of the offer are signed on behalf of the customer beforehand.
type CreateSaaS struct {
	saasDeleter
	agreements marketplace.IAgreementService
}

func NewCreateSaaS(deps *StepDependencies) (*CreateSaaS, error) {
	err := deps.checkARM()
	if err != nil {
		return nil, err
	}
	if deps.Agreements == nil {
		return nil, commonerrors.UndefinedParameter("agreement service")
	}
	return &CreateSaaS{
		saasDeleter: newSaaSDeleter(StateCreateSaaS, deps),
		agreements:  deps.Agreements,
	}, nil
}

func (s *CreateSaaS) Execute(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	logger := s.loggerFor(wc)
	if s.isIgnored(wc) {
		logger.Info("subscription is in the ignore list; no marketplace subscription is created")
		return wc, nil
	}
	if wc.IsSaaSDeleted() {
		err := commonerrors.New(commonerrors.ErrConflict, "the marketplace subscription was deleted earlier in this workflow")
		logger.Error(err, "could not create marketplace subscription")
		return wc, err
	}
	if wc.Marketplace.MarketplaceSubscription.IsDefined() {
		logger.V(1).Info("marketplace subscription already created")
		return wc, nil
	}
	offer, err := marketplace.DeriveOffer(wc, resource)
	if err != nil {
		logger.Error(err, "could not create marketplace subscription")
		return wc, err
	}

	var resourceGroup *string
	if wc.Marketplace.IsSubscriptionLevel {
		rg, subErr := marketplace.ParseResourceGroup(resourceIDOf(wc, resource))
		if subErr != nil {
			err = commonerrors.WrapError(commonerrors.ErrInvalid, subErr, "could not determine the resource group of the SaaS resource")
			logger.Error(err, "could not create marketplace subscription")
			return wc, err
		}
		resourceGroup = &rg
		var agreement *marketplace.AgreementReference
		err = s.call(ctx, logger, func() (subErr error) {
			agreement, subErr = s.agreements.GetAndSignAgreement(ctx, offer, wc.RequestMetadata)
			return
		}, "retrying signing the marketplace agreement")
		if err != nil {
			logger.Error(err, "could not sign the marketplace agreement", "offer", offer.OfferID, "plan", offer.PlanID)
			return wc, err
		}
		if agreement != nil {
			wc.Marketplace.AgreementID = agreement.ID
		}
	}

	var details *marketplace.SubscriptionDetails
	err = s.call(ctx, logger, func() (subErr error) {
		details, subErr = s.arm.CreateSaaSResource(ctx, offer, wc.RequestMetadata, resourceGroup)
		return
	}, "retrying marketplace subscription creation")
	if err == nil && (details == nil || details.ID == "") {
		err = commonerrors.New(commonerrors.ErrUnexpected, "no marketplace subscription was returned")
	}
	if err != nil {
		logger.Error(err, "could not create marketplace subscription", "offer", offer.OfferID, "plan", offer.PlanID)
		return wc, err
	}
	name := details.Name
	if name == "" {
		name = offer.Name
	}
	wc = wc.WithOffer(offer).WithMarketplaceSubscription(marketplace.MarketplaceSubscription{ID: details.ID, Name: name})
	s.loggerFor(wc).Info("marketplace subscription created", "offer", offer.OfferID, "plan", offer.PlanID)
	return wc, nil
}

func (s *CreateSaaS) Compensate(ctx context.Context, wc marketplace.WorkflowContext, resource marketplace.BaseResource) (marketplace.WorkflowContext, error) {
	return s.delete(ctx, wc, resource)
}
