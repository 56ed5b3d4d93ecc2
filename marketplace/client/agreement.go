package client

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	httpclient "github.com/marketplace-rp/saasprovisioning/http"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
)

var _ marketplace.IAgreementService = &AgreementService{}

type agreementProperties struct {
	Publisher         string `json:"publisher,omitempty"`
	Product           string `json:"product,omitempty"`
	Plan              string `json:"plan,omitempty"`
	LicenseTextLink   string `json:"licenseTextLink,omitempty"`
	PrivacyPolicyLink string `json:"privacyPolicyLink,omitempty"`
	RetrieveDatetime  string `json:"retrieveDatetime,omitempty"`
	Signature         string `json:"signature,omitempty"`
	Accepted          bool   `json:"accepted"`
}

type agreement struct {
	ID         string              `json:"id,omitempty"`
	Name       string              `json:"name,omitempty"`
	Type       string              `json:"type,omitempty"`
	Properties agreementProperties `json:"properties"`
}

// AgreementService accepts the marketplace terms of an offer on behalf of the customer subscription.
type AgreementService struct {
	*baseClient
}

func NewAgreementService(cfg *EndpointConfiguration, client httpclient.IClient, logger logr.Logger) (*AgreementService, error) {
	base, err := newBaseClient(cfg, client, nil, logger.WithName("agreement"))
	if err != nil {
		return nil, err
	}
	return &AgreementService{baseClient: base}, nil
}

func agreementPath(offer marketplace.OfferDetails) []string {
	return []string{"subscriptions", offer.AzureSubscriptionID, "providers", "Microsoft.MarketplaceOrdering", "offerTypes", "virtualmachine", "publishers", offer.PublisherID, "offers", offer.OfferID, "plans", offer.PlanID, "agreements", "current"}
}

// GetAndSignAgreement retrieves the current terms of the offer and accepts them unless they already are.
func (s *AgreementService) GetAndSignAgreement(ctx context.Context, offer marketplace.OfferDetails, metadata marketplace.RequestMetadata) (*marketplace.AgreementReference, error) {
	if offer.AzureSubscriptionID == "" {
		return nil, commonerrors.UndefinedVariable("Azure subscription id")
	}
	err := offer.Validate()
	if err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid offer")
	}
	path := agreementPath(offer)
	req, err := s.newRequest(ctx, http.MethodGet, nil, metadata, path...)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(ctx, "get agreement", req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var current agreement
	err = decodeJSON(resp, &current)
	if err != nil {
		return nil, err
	}
	if current.Properties.Accepted {
		s.logger.V(1).Info("agreement already accepted", "agreement", current.ID)
		return &marketplace.AgreementReference{ID: current.ID, Accepted: true}, nil
	}

	current.Properties.Accepted = true
	req, err = s.newRequest(ctx, http.MethodPut, current, metadata, path...)
	if err != nil {
		return nil, err
	}
	resp, err = s.do(ctx, "sign agreement", req, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	var signed agreement
	err = decodeJSON(resp, &signed)
	if err != nil {
		return nil, err
	}
	if signed.ID == "" {
		signed.ID = current.ID
	}
	if !signed.Properties.Accepted {
		return nil, commonerrors.Newf(commonerrors.ErrFailed, "agreement %q could not be accepted", signed.ID)
	}
	return &marketplace.AgreementReference{ID: signed.ID, Accepted: true}, nil
}
