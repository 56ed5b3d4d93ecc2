package client

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/field"
	httpclient "github.com/marketplace-rp/saasprovisioning/http"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

var _ marketplace.IARMClient = &ARMClient{}

const (
	saasProvider             = "Microsoft.SaaS"
	saasLocation             = "global"
	paymentChannelDelegated  = "SubscriptionDelegated"
	azureSubscriptionIDField = "AzureSubscriptionId"
)

type saasResourceProperties struct {
	SaaSResourceName       string            `json:"saasResourceName,omitempty"`
	PublisherID            string            `json:"publisherId"`
	OfferID                string            `json:"offerId"`
	PlanID                 string            `json:"planId"`
	TermID                 string            `json:"termId,omitempty"`
	Quantity               *int              `json:"quantity,omitempty"`
	AutoRenew              bool              `json:"autoRenew"`
	PaymentChannelType     string            `json:"paymentChannelType,omitempty"`
	PaymentChannelMetadata map[string]string `json:"paymentChannelMetadata,omitempty"`
	SaaSSubscriptionID     string            `json:"saasSubscriptionId,omitempty"`
	Status                 string            `json:"status,omitempty"`
}

type saasResource struct {
	ID         string                 `json:"id,omitempty"`
	Name       string                 `json:"name,omitempty"`
	Location   string                 `json:"location,omitempty"`
	Properties saasResourceProperties `json:"properties"`
}

// ARMClient manages SaaS resources through the Microsoft.SaaS resource provider.
// Subscription-level resources live in a resource group of the customer subscription whereas tenant-level resources are addressed by their marketplace subscription id.
type ARMClient struct {
	*baseClient
}

func NewARMClient(cfg *EndpointConfiguration, client httpclient.IClient, polling *retry.RetryPolicyConfiguration, logger logr.Logger) (*ARMClient, error) {
	base, err := newBaseClient(cfg, client, polling, logger.WithName("arm"))
	if err != nil {
		return nil, err
	}
	return &ARMClient{baseClient: base}, nil
}

func subscriptionLevelPath(azureSubscriptionID, resourceGroup, resourceName string) []string {
	return []string{"subscriptions", azureSubscriptionID, "resourceGroups", resourceGroup, "providers", saasProvider, "resources", resourceName}
}

func tenantLevelPath(elements ...string) []string {
	return append([]string{"providers", saasProvider, "saasresources"}, elements...)
}

func (c *ARMClient) CreateSaaSResource(ctx context.Context, offer marketplace.OfferDetails, metadata marketplace.RequestMetadata, resourceGroup *string) (*marketplace.SubscriptionDetails, error) {
	err := offer.Validate()
	if err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid offer")
	}
	body := saasResource{
		Location: saasLocation,
		Properties: saasResourceProperties{
			SaaSResourceName: offer.Name,
			PublisherID:      offer.PublisherID,
			OfferID:          offer.OfferID,
			PlanID:           offer.PlanID,
			TermID:           offer.TermID,
			Quantity:         offer.Quantity,
			AutoRenew:        offer.AutoRenew,
		},
	}
	var path []string
	rg := field.OptionalString(resourceGroup, "")
	if rg != "" {
		if offer.AzureSubscriptionID == "" {
			return nil, commonerrors.UndefinedVariable("Azure subscription id of a subscription-level SaaS resource")
		}
		path = subscriptionLevelPath(offer.AzureSubscriptionID, rg, offer.Name)
	} else {
		path = tenantLevelPath()
		body.Name = offer.Name
		if offer.AzureSubscriptionID != "" {
			body.Properties.PaymentChannelType = paymentChannelDelegated
			body.Properties.PaymentChannelMetadata = map[string]string{azureSubscriptionIDField: offer.AzureSubscriptionID}
		}
	}
	const operation = "create SaaS resource"
	req, err := c.newRequest(ctx, http.MethodPut, body, metadata, path...)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, operation, req, http.StatusOK, http.StatusCreated, http.StatusAccepted)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusAccepted {
		location := operationResponse(resp).OperationLocation
		closeBody(resp)
		resp, err = c.pollOperation(ctx, operation, location, metadata)
		if err != nil {
			return nil, err
		}
	}
	var created saasResource
	err = decodeJSON(resp, &created)
	if err != nil {
		return nil, err
	}
	details := &marketplace.SubscriptionDetails{
		ID:         created.Properties.SaaSSubscriptionID,
		Name:       created.Name,
		ResourceID: created.ID,
		Status:     created.Properties.Status,
	}
	if details.ID == "" {
		details.ID = created.Name
	}
	if details.ID == "" {
		return nil, commonerrors.Newf(commonerrors.ErrUnexpected, "%v: no marketplace subscription was returned", operation)
	}
	return details, nil
}

func (c *ARMClient) DeleteSaaSResource(ctx context.Context, azureSubscriptionID, resourceName string, resourceGroup *string, metadata marketplace.RequestMetadata) (*marketplace.OperationResponse, error) {
	if resourceName == "" {
		return nil, commonerrors.UndefinedParameter("SaaS resource name")
	}
	var path []string
	rg := field.OptionalString(resourceGroup, "")
	if rg != "" {
		if azureSubscriptionID == "" {
			return nil, commonerrors.UndefinedParameter("Azure subscription id")
		}
		path = subscriptionLevelPath(azureSubscriptionID, rg, resourceName)
	} else {
		path = tenantLevelPath(resourceName)
	}
	const operation = "delete SaaS resource"
	req, err := c.newRequest(ctx, http.MethodDelete, nil, metadata, path...)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, operation, req, http.StatusOK, http.StatusAccepted, http.StatusNoContent)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusAccepted {
		location := operationResponse(resp).OperationLocation
		closeBody(resp)
		resp, err = c.pollOperation(ctx, operation, location, metadata)
		if err != nil {
			return nil, err
		}
	}
	closeBody(resp)
	return operationResponse(resp), nil
}
