package client

import (
	"github.com/go-logr/logr"
	"golang.org/x/oauth2"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	httpclient "github.com/marketplace-rp/saasprovisioning/http"
)

// Clients gathers the marketplace collaborators of a provisioning service.
type Clients struct {
	Fulfillment *FulfillmentClient
	ARM         *ARMClient
	Agreement   *AgreementService
	closers     []httpclient.IClient
}

// NewClients creates every marketplace client from the configuration. Requests are authorised with tokens from ts.
// The activation endpoint is called through a client retrying on EntityNotFound answers. Any other call retries according to httpclient.DefaultMarketplaceRetryPolicy.
func NewClients(cfg *ClientConfiguration, ts oauth2.TokenSource, logger logr.Logger) (clients *Clients, err error) {
	if cfg == nil {
		err = commonerrors.UndefinedParameter("client configuration")
		return
	}
	err = cfg.Validate()
	if err != nil {
		return
	}
	httpLogger := logger.WithName("http")
	defaultClient := httpclient.NewConfigurableRetryableOauthClientWithTokenSource(&cfg.HTTP, httpLogger, ts, httpclient.DefaultMarketplaceRetryPolicy)
	activationClient := httpclient.NewConfigurableRetryableOauthClientWithTokenSource(&cfg.HTTP, httpLogger, ts, httpclient.EntityNotFoundRetryPolicy(cfg.EntityNotFoundRetryAfter))
	clients = &Clients{closers: []httpclient.IClient{defaultClient, activationClient}}

	clients.Fulfillment, err = NewFulfillmentClient(&cfg.Fulfillment, defaultClient, activationClient, logger)
	if err != nil {
		return
	}
	clients.ARM, err = NewARMClient(&cfg.ARM, defaultClient, cfg.pollingPolicy(), logger)
	if err != nil {
		return
	}
	clients.Agreement, err = NewAgreementService(&cfg.Agreement, defaultClient, logger)
	return
}

func (c *Clients) Close() error {
	var errs []error
	for i := range c.closers {
		errs = append(errs, c.closers[i].Close())
	}
	return commonerrors.Join(errs...)
}
