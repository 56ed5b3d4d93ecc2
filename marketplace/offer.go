package marketplace

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/field"
)

// Validate checks that an offer can be submitted to the marketplace.
func (o OfferDetails) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Name, validation.Required),
		validation.Field(&o.PublisherID, validation.Required),
		validation.Field(&o.OfferID, validation.Required),
		validation.Field(&o.PlanID, validation.Required),
		validation.Field(&o.Quantity, validation.NilOrNotEmpty, validation.Min(1)),
	)
}

// DeriveOffer determines the marketplace offer to subscribe to for a resource.
// Values already recorded in the workflow context take precedence over the resource plan.
func DeriveOffer(wc WorkflowContext, resource BaseResource) (offer OfferDetails, err error) {
	plan := resource.Plan
	if plan == nil {
		plan = &ResourcePlan{}
	}
	mc := wc.Marketplace
	offer = OfferDetails{
		Name:                resource.Name,
		AzureSubscriptionID: wc.SubscriptionID,
		TenantID:            wc.TenantID,
		PublisherID:         firstDefined(mc.PublisherID, plan.PublisherID),
		OfferID:             firstDefined(mc.OfferID, plan.OfferID),
		PlanID:              firstDefined(mc.PlanID, plan.PlanID),
		TermID:              firstDefined(mc.TermID, plan.TermID),
		Quantity:            mc.Quantity,
		AutoRenew:           plan.AutoRenew,
	}
	if offer.Quantity == nil && plan.Quantity != nil {
		offer.Quantity = field.ToOptionalInt(*plan.Quantity)
	}
	if offer.Name == "" {
		if id, subErr := ParseResourceID(resource.ID); subErr == nil {
			offer.Name = id.Name
		}
	}
	err = offer.Validate()
	if err != nil {
		err = commonerrors.WrapErrorf(commonerrors.ErrInvalid, err, "could not determine the marketplace offer of resource %q", resource.ID)
	}
	return
}

// WithOffer returns a copy of the context recording the offer subscribed to.
func (wc WorkflowContext) WithOffer(offer OfferDetails) WorkflowContext {
	wc.Marketplace.PublisherID = offer.PublisherID
	wc.Marketplace.OfferID = offer.OfferID
	wc.Marketplace.PlanID = offer.PlanID
	wc.Marketplace.TermID = offer.TermID
	wc.Marketplace.Quantity = offer.Quantity
	return wc
}

func firstDefined(values ...string) string {
	for i := range values {
		if values[i] != "" {
			return values[i]
		}
	}
	return ""
}
