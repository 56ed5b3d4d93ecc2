package client

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	httpclient "github.com/marketplace-rp/saasprovisioning/http"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
)

var _ marketplace.IFulfillmentClient = &FulfillmentClient{}

const subscriptionsPath = "api/saas/subscriptions"

type activationRequest struct {
	PlanID   string `json:"planId"`
	Quantity *int   `json:"quantity,omitempty"`
}

type updateRequest struct {
	PlanID   string `json:"planId,omitempty"`
	Quantity *int   `json:"quantity,omitempty"`
}

// FulfillmentClient calls the SaaS fulfillment API.
// Activation goes through a dedicated HTTP client since it needs to cope with subscriptions not being visible yet straight after their creation (see httpclient.EntityNotFoundRetryPolicy).
type FulfillmentClient struct {
	*baseClient
	activation *baseClient
}

// NewFulfillmentClient returns a fulfillment client. activationClient is used for activating subscriptions and client for anything else.
func NewFulfillmentClient(cfg *EndpointConfiguration, client, activationClient httpclient.IClient, logger logr.Logger) (*FulfillmentClient, error) {
	logger = logger.WithName("fulfillment")
	base, err := newBaseClient(cfg, client, nil, logger)
	if err != nil {
		return nil, err
	}
	if activationClient == nil {
		return nil, commonerrors.UndefinedParameter("activation http client")
	}
	activation, err := newBaseClient(cfg, activationClient, nil, logger)
	if err != nil {
		return nil, err
	}
	return &FulfillmentClient{baseClient: base, activation: activation}, nil
}

func (c *FulfillmentClient) ActivateSubscription(ctx context.Context, subscriptionID, planID string, quantity *int, metadata marketplace.RequestMetadata) (*marketplace.OperationResponse, error) {
	if subscriptionID == "" {
		return nil, commonerrors.UndefinedParameter("marketplace subscription id")
	}
	if planID == "" {
		return nil, commonerrors.UndefinedParameter("plan id")
	}
	req, err := c.newRequest(ctx, http.MethodPost, activationRequest{PlanID: planID, Quantity: quantity}, metadata, subscriptionsPath, subscriptionID, "activate")
	if err != nil {
		return nil, err
	}
	resp, err := c.activation.do(ctx, "activate subscription", req, http.StatusOK, http.StatusAccepted)
	if err != nil {
		return nil, err
	}
	closeBody(resp)
	return operationResponse(resp), nil
}

func (c *FulfillmentClient) DeleteSubscription(ctx context.Context, subscriptionID string, metadata marketplace.RequestMetadata) (*marketplace.OperationResponse, error) {
	if subscriptionID == "" {
		return nil, commonerrors.UndefinedParameter("marketplace subscription id")
	}
	req, err := c.newRequest(ctx, http.MethodDelete, nil, metadata, subscriptionsPath, subscriptionID)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "delete subscription", req, http.StatusOK, http.StatusAccepted, http.StatusNoContent)
	if err != nil {
		return nil, err
	}
	closeBody(resp)
	return operationResponse(resp), nil
}

func (c *FulfillmentClient) UpdateSubscription(ctx context.Context, subscriptionID, planID string, quantity *int, metadata marketplace.RequestMetadata) (*marketplace.OperationResponse, error) {
	if subscriptionID == "" {
		return nil, commonerrors.UndefinedParameter("marketplace subscription id")
	}
	if planID == "" && quantity == nil {
		return nil, commonerrors.New(commonerrors.ErrInvalid, "either a plan or a quantity must be provided")
	}
	req, err := c.newRequest(ctx, http.MethodPatch, updateRequest{PlanID: planID, Quantity: quantity}, metadata, subscriptionsPath, subscriptionID)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, "update subscription", req, http.StatusOK, http.StatusAccepted)
	if err != nil {
		return nil, err
	}
	closeBody(resp)
	return operationResponse(resp), nil
}
