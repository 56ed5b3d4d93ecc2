package provisioning

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marketplace-rp/saasprovisioning/config"
	configvalidation "github.com/marketplace-rp/saasprovisioning/config/validation"
	"github.com/marketplace-rp/saasprovisioning/logs"
	"github.com/marketplace-rp/saasprovisioning/marketplace/client"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

// EnvVarPrefix is the prefix of the environment variables configuring the provisioning service e.g. `SAAS_MARKETPLACE_FULFILLMENT_BASE_URL`.
const EnvVarPrefix = "saas"

var _ config.IServiceConfiguration = &ServiceConfiguration{}

type ServiceConfiguration struct {
	Logging     logs.LoggingConfiguration  `mapstructure:"log"`
	Marketplace client.ClientConfiguration `mapstructure:"marketplace"`
	// StepRetryPolicy applies to the remote calls made by steps, on top of the retries performed by the HTTP clients.
	StepRetryPolicy retry.RetryPolicyConfiguration `mapstructure:"step_retry"`
	// IgnoredSubscriptions lists Azure subscriptions (e.g. used for testing) for which no marketplace subscription is managed.
	IgnoredSubscriptions []string `mapstructure:"ignored_subscriptions"`
	// CompensationTimeout bounds the time spent undoing a failed saga. No limit is applied if zero.
	CompensationTimeout time.Duration `mapstructure:"compensation_timeout"`
	// MaxConcurrentSagas bounds the number of sagas run concurrently when acting on several resources.
	MaxConcurrentSagas int `mapstructure:"max_concurrent_sagas"`
	// DeferCompensationOnRetryableFailure leaves a saga interrupted by a transient failure in place so that it can be resumed.
	DeferCompensationOnRetryableFailure bool `mapstructure:"defer_compensation"`
}

func (cfg *ServiceConfiguration) Validate() error {
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}
	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.IgnoredSubscriptions, validation.Each(validation.Required, configvalidation.IsGUID())),
		validation.Field(&cfg.CompensationTimeout, validation.Min(time.Duration(0))),
		validation.Field(&cfg.MaxConcurrentSagas, validation.Required, validation.Min(1)),
	)
}

func DefaultServiceConfiguration() *ServiceConfiguration {
	return &ServiceConfiguration{
		Logging:             *logs.DefaultLoggingConfiguration(),
		Marketplace:         *client.DefaultClientConfiguration(),
		StepRetryPolicy:     *retry.DefaultMarketplaceRetryPolicyConfiguration(),
		CompensationTimeout: 5 * time.Minute,
		MaxConcurrentSagas:  4,
	}
}

// LoadServiceConfiguration loads the configuration from the environment, falling back to DefaultServiceConfiguration.
func LoadServiceConfiguration() (*ServiceConfiguration, error) {
	cfg := &ServiceConfiguration{}
	err := config.Load(EnvVarPrefix, cfg, DefaultServiceConfiguration())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
