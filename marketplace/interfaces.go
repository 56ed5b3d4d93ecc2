package marketplace

//go:generate go tool mockgen -destination=../provisioning/mock_test.go -package=provisioning github.com/marketplace-rp/saasprovisioning/$GOPACKAGE IFulfillmentClient,IARMClient,IAgreementService,IIgnoreList

import "context"

// IFulfillmentClient calls the marketplace SaaS fulfillment API.
type IFulfillmentClient interface {
	// ActivateSubscription activates a marketplace subscription on a plan.
	ActivateSubscription(ctx context.Context, subscriptionID, planID string, quantity *int, metadata RequestMetadata) (*OperationResponse, error)
	// DeleteSubscription unsubscribes a marketplace subscription.
	DeleteSubscription(ctx context.Context, subscriptionID string, metadata RequestMetadata) (*OperationResponse, error)
	// UpdateSubscription changes the plan and/or quantity of a marketplace subscription.
	UpdateSubscription(ctx context.Context, subscriptionID, planID string, quantity *int, metadata RequestMetadata) (*OperationResponse, error)
}

// IARMClient manages SaaS resources through ARM.
type IARMClient interface {
	// CreateSaaSResource creates a SaaS resource. resourceGroup is only defined for subscription-level resources.
	CreateSaaSResource(ctx context.Context, offer OfferDetails, metadata RequestMetadata, resourceGroup *string) (*SubscriptionDetails, error)
	// DeleteSaaSResource deletes a SaaS resource. resourceGroup is only defined for subscription-level resources, otherwise resourceName is the marketplace subscription id.
	DeleteSaaSResource(ctx context.Context, azureSubscriptionID, resourceName string, resourceGroup *string, metadata RequestMetadata) (*OperationResponse, error)
}

// IAgreementService obtains and signs the marketplace terms of an offer.
type IAgreementService interface {
	GetAndSignAgreement(ctx context.Context, offer OfferDetails, metadata RequestMetadata) (*AgreementReference, error)
}

// IIgnoreList flags Azure subscriptions for which no marketplace call should be made.
type IIgnoreList interface {
	ShouldIgnoreCreateFailure(azureSubscriptionID string) bool
}
