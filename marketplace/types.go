// Package marketplace describes the marketplace SaaS domain: the workflow context threaded through provisioning sagas, the resources being acted upon and the remote services involved.
package marketplace

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	configvalidation "github.com/marketplace-rp/saasprovisioning/config/validation"
	"github.com/marketplace-rp/saasprovisioning/idgen"
)

// RequestMetadata is the caller supplied metadata forwarded to every remote call of a saga. It is never modified.
type RequestMetadata struct {
	Headers         map[string]string
	ObjectID        string
	ClientRequestID string
	CorrelationID   string
}

// ApplyTo sets the metadata headers on an outgoing request.
func (m RequestMetadata) ApplyTo(req *http.Request) {
	if req == nil {
		return
	}
	for k, v := range m.Headers {
		req.Header.Set(k, v)
	}
	if m.CorrelationID != "" {
		req.Header.Set(HeaderCorrelationRequestID, m.CorrelationID)
	}
	if m.ClientRequestID != "" {
		req.Header.Set(HeaderClientRequestID, m.ClientRequestID)
	}
	if m.ObjectID != "" {
		req.Header.Set(HeaderClientObjectID, m.ObjectID)
	}
}

const (
	HeaderCorrelationRequestID = "x-ms-correlation-request-id"
	HeaderClientRequestID      = "x-ms-client-request-id"
	HeaderClientObjectID       = "x-ms-client-object-id"
)

// MarketplaceSubscription references a SaaS subscription in the marketplace.
type MarketplaceSubscription struct {
	ID   string
	Name string
}

func (s MarketplaceSubscription) IsDefined() bool {
	return s.ID != ""
}

// MarketplaceContext is the part of the workflow context populated while provisioning.
type MarketplaceContext struct {
	MarketplaceSubscription MarketplaceSubscription
	PlanID                  string
	Quantity                *int
	OfferID                 string
	PublisherID             string
	TermID                  string
	AgreementID             string
	// IsSubscriptionLevel distinguishes SaaS resources scoped to an Azure subscription from tenant-level ones.
	IsSubscriptionLevel bool
	// PreviousPlanID and PreviousQuantity hold what was in place before a plan change so that it can be reverted.
	PreviousPlanID   string
	PreviousQuantity *int
}

// WorkflowContext is threaded through every step of a saga. It is a value: steps return an updated copy.
//
// Completion flags can only be raised, using WithSaaSActivated and WithSaaSDeleted, so that a step whose effect is already recorded never repeats it.
type WorkflowContext struct {
	SubscriptionID  string
	TenantID        string
	ResourceID      string
	APIVersion      string
	RequestMetadata RequestMetadata
	Marketplace     MarketplaceContext

	saaSActivated bool
	saaSDeleted   bool
}

// NewWorkflowContext returns a workflow context for a control-plane operation on resourceID.
// Correlation identifiers are generated if the metadata does not carry any.
func NewWorkflowContext(subscriptionID, tenantID, resourceID, apiVersion string, metadata RequestMetadata) (wc WorkflowContext, err error) {
	if metadata.CorrelationID == "" {
		metadata.CorrelationID = idgen.GenerateUUID4OrEmpty()
	}
	if metadata.ClientRequestID == "" {
		metadata.ClientRequestID = idgen.GenerateUUID4OrEmpty()
	}
	wc = WorkflowContext{
		SubscriptionID:  subscriptionID,
		TenantID:        tenantID,
		ResourceID:      resourceID,
		APIVersion:      apiVersion,
		RequestMetadata: metadata,
	}
	err = wc.Validate()
	return
}

// Validate checks the identifiers of the context.
func (wc WorkflowContext) Validate() error {
	err := validation.ValidateStruct(&wc,
		validation.Field(&wc.SubscriptionID, validation.Required, configvalidation.IsGUID()),
		validation.Field(&wc.TenantID, configvalidation.IsGUID()),
		validation.Field(&wc.ResourceID, validation.Required, validation.By(func(value any) error {
			id, _ := value.(string)
			subscriptionID, err := ParseSubscriptionID(id)
			if err != nil {
				return err
			}
			if !strings.EqualFold(subscriptionID, wc.SubscriptionID) {
				return commonerrors.Newf(commonerrors.ErrInvalid, "resource belongs to subscription %q and not %q", subscriptionID, wc.SubscriptionID)
			}
			return nil
		})),
	)
	if err != nil {
		return commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid workflow context")
	}
	return nil
}

// SaaSActivationStatus states whether the marketplace subscription was activated.
func (wc WorkflowContext) SaaSActivationStatus() bool {
	return wc.saaSActivated
}

// IsSaaSDeleted states whether the marketplace subscription was deleted.
func (wc WorkflowContext) IsSaaSDeleted() bool {
	return wc.saaSDeleted
}

// WithSaaSActivated returns a copy of the context recording the activation.
func (wc WorkflowContext) WithSaaSActivated() WorkflowContext {
	wc.saaSActivated = true
	return wc
}

// WithSaaSDeleted returns a copy of the context recording the deletion.
func (wc WorkflowContext) WithSaaSDeleted() WorkflowContext {
	wc.saaSDeleted = true
	return wc
}

// WithMarketplaceSubscription returns a copy of the context referencing subscription.
func (wc WorkflowContext) WithMarketplaceSubscription(subscription MarketplaceSubscription) WorkflowContext {
	wc.Marketplace.MarketplaceSubscription = subscription
	return wc
}

// LogValues returns the correlation data to attach to log entries.
func (wc WorkflowContext) LogValues() []any {
	return []any{
		"subscriptionId", wc.SubscriptionID,
		"tenantId", wc.TenantID,
		"resourceId", wc.ResourceID,
		"marketplaceSubscriptionId", wc.Marketplace.MarketplaceSubscription.ID,
		"correlationId", wc.RequestMetadata.CorrelationID,
	}
}

// ResourcePlan is the marketplace plan attached to a resource.
type ResourcePlan struct {
	PlanID      string
	OfferID     string
	PublisherID string
	TermID      string
	Quantity    *int
	AutoRenew   bool
}

// BaseResource is the ARM resource a saga acts upon.
type BaseResource struct {
	ID       string
	Name     string
	Type     string
	Location string
	Tags     map[string]string
	Plan     *ResourcePlan
}

// OfferDetails describes the SaaS resource to create in the marketplace.
type OfferDetails struct {
	Name                string
	AzureSubscriptionID string
	TenantID            string
	PublisherID         string
	OfferID             string
	PlanID              string
	TermID              string
	Quantity            *int
	AutoRenew           bool
}

// SubscriptionDetails describes a SaaS resource created in the marketplace.
type SubscriptionDetails struct {
	ID         string
	Name       string
	ResourceID string
	Status     string
}

// OperationResponse describes the answer of a remote operation.
type OperationResponse struct {
	StatusCode int
	// OperationLocation is set when the operation completes asynchronously.
	OperationLocation string
}

// AgreementReference references a signed marketplace agreement.
type AgreementReference struct {
	ID       string
	Accepted bool
}
