package marketplace

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

// ParseResourceID parses an ARM resource identifier e.g. `/subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.Datadog/monitors/{name}`.
func ParseResourceID(resourceID string) (*arm.ResourceID, error) {
	if strings.TrimSpace(resourceID) == "" {
		return nil, commonerrors.UndefinedVariable("resource id")
	}
	id, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return nil, commonerrors.WrapErrorf(commonerrors.ErrInvalid, err, "could not parse resource id %q", resourceID)
	}
	return id, nil
}

// ParseResourceGroup returns the resource group a resource belongs to.
func ParseResourceGroup(resourceID string) (string, error) {
	id, err := ParseResourceID(resourceID)
	if err != nil {
		return "", err
	}
	if id.ResourceGroupName == "" {
		return "", commonerrors.Newf(commonerrors.ErrNotFound, "resource %q is not part of a resource group", resourceID)
	}
	return id.ResourceGroupName, nil
}

// ParseSubscriptionID returns the Azure subscription a resource belongs to.
func ParseSubscriptionID(resourceID string) (string, error) {
	id, err := ParseResourceID(resourceID)
	if err != nil {
		return "", err
	}
	if id.SubscriptionID == "" {
		return "", commonerrors.Newf(commonerrors.ErrNotFound, "resource %q is not part of a subscription", resourceID)
	}
	return id.SubscriptionID, nil
}
