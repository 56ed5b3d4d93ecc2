package parallelisation

import (
	"context"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

// DetermineContextError determines what the context error is if any.
func DetermineContextError(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil && cause != err {
		return commonerrors.ConvertContextError(commonerrors.Join(err, cause))
	}
	return commonerrors.ConvertContextError(err)
}
