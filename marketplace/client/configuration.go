package client

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marketplace-rp/saasprovisioning/config"
	configvalidation "github.com/marketplace-rp/saasprovisioning/config/validation"
	httpclient "github.com/marketplace-rp/saasprovisioning/http"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

const (
	DefaultFulfillmentBaseURL    = "https://marketplaceapi.microsoft.com"
	DefaultFulfillmentAPIVersion = "2018-08-31"
	DefaultARMBaseURL            = "https://management.azure.com"
	DefaultSaaSAPIVersion        = "2018-03-01-beta"
	DefaultAgreementAPIVersion   = "2021-01-01"
)

// EndpointConfiguration describes a remote service.
type EndpointConfiguration struct {
	BaseURL    string `mapstructure:"base_url"`
	APIVersion string `mapstructure:"api_version"`
}

func (cfg *EndpointConfiguration) Validate() error {
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.BaseURL, validation.Required, configvalidation.IsHTTPBaseURL()),
		validation.Field(&cfg.APIVersion, validation.Required),
	)
}

// ClientConfiguration describes how to reach the marketplace services.
type ClientConfiguration struct {
	Fulfillment EndpointConfiguration              `mapstructure:"fulfillment"`
	ARM         EndpointConfiguration              `mapstructure:"arm"`
	Agreement   EndpointConfiguration              `mapstructure:"agreement"`
	HTTP        httpclient.HTTPClientConfiguration `mapstructure:"http"`
	// EntityNotFoundRetryAfter is the wait between activation attempts while the subscription is not visible to the fulfillment service yet, unless the service tells otherwise.
	EntityNotFoundRetryAfter time.Duration `mapstructure:"entity_not_found_retry_after"`
	// PollingPeriod is the wait between two checks of an asynchronous operation.
	PollingPeriod time.Duration `mapstructure:"polling_period"`
	// PollingTimeout bounds the time spent waiting for an asynchronous operation.
	PollingTimeout time.Duration `mapstructure:"polling_timeout"`
}

func (cfg *ClientConfiguration) Validate() error {
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.EntityNotFoundRetryAfter, validation.Min(time.Duration(0))),
		validation.Field(&cfg.PollingPeriod, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&cfg.PollingTimeout, validation.Required, validation.Min(cfg.PollingPeriod)),
	)
}

// DefaultClientConfiguration returns the configuration of the public marketplace services.
func DefaultClientConfiguration() *ClientConfiguration {
	return &ClientConfiguration{
		Fulfillment: EndpointConfiguration{
			BaseURL:    DefaultFulfillmentBaseURL,
			APIVersion: DefaultFulfillmentAPIVersion,
		},
		ARM: EndpointConfiguration{
			BaseURL:    DefaultARMBaseURL,
			APIVersion: DefaultSaaSAPIVersion,
		},
		Agreement: EndpointConfiguration{
			BaseURL:    DefaultARMBaseURL,
			APIVersion: DefaultAgreementAPIVersion,
		},
		HTTP:                     *httpclient.DefaultMarketplaceHTTPClientConfiguration(),
		EntityNotFoundRetryAfter: httpclient.DefaultEntityNotFoundRetryAfter,
		PollingPeriod:            5 * time.Second,
		PollingTimeout:           10 * time.Minute,
	}
}

// pollingPolicy converts the polling settings into a retry policy with a constant wait.
func (cfg *ClientConfiguration) pollingPolicy() *retry.RetryPolicyConfiguration {
	return newPollingPolicy(cfg.PollingPeriod, cfg.PollingTimeout)
}

func newPollingPolicy(period, timeout time.Duration) *retry.RetryPolicyConfiguration {
	if period <= 0 {
		period = time.Second
	}
	return &retry.RetryPolicyConfiguration{
		Enabled:      true,
		RetryMax:     max(int(timeout/period), 1),
		RetryWaitMin: period,
		RetryWaitMax: period,
	}
}
