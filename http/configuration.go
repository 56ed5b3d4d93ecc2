package http

import (
	"runtime"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marketplace-rp/saasprovisioning/config"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

type HTTPClientConfiguration struct {
	MaxConnsPerHost       int           `mapstructure:"max_connections_per_host"`
	MaxIdleConns          int           `mapstructure:"max_idle_connections"`
	MaxIdleConnsPerHost   int           `mapstructure:"max_idle_connections_per_host"`
	IdleConnTimeout       time.Duration `mapstructure:"timeout_idle_connection"`
	TLSHandshakeTimeout   time.Duration `mapstructure:"timeout_tls_handshake"`
	ExpectContinueTimeout time.Duration `mapstructure:"timeout_expect_continue"`
	// RequestTimeout bounds each individual attempt. Zero means no limit other than the request context.
	RequestTimeout time.Duration                  `mapstructure:"timeout_request"`
	RetryPolicy    retry.RetryPolicyConfiguration `mapstructure:"retry_policy"`
}

func (cfg *HTTPClientConfiguration) Validate() error {
	// Validate Embedded Structs
	err := config.ValidateEmbedded(cfg)
	if err != nil {
		return err
	}

	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.MaxIdleConns, validation.Min(0)),
		validation.Field(&cfg.MaxIdleConnsPerHost, validation.Max(cfg.MaxIdleConns)),
		validation.Field(&cfg.IdleConnTimeout, validation.Required),
		validation.Field(&cfg.RequestTimeout, validation.Min(time.Duration(0))),
	)
}

// DefaultHTTPClientConfiguration returns a configuration with no retry. Default values similar to https://github.com/hashicorp/go-cleanhttp/blob/6d9e2ac5d828e5f8594b97f88c4bde14a67bb6d2/cleanhttp.go#L23
func DefaultHTTPClientConfiguration() *HTTPClientConfiguration {
	return &HTTPClientConfiguration{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		RetryPolicy:           *retry.DefaultNoRetryPolicyConfiguration(),
	}
}

// DefaultRobustHTTPClientConfiguration returns a configuration for a client retrying 4 times without backoff.
func DefaultRobustHTTPClientConfiguration() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RetryPolicy = *retry.DefaultBasicRetryPolicyConfiguration()
	return cfg
}

// DefaultRobustHTTPClientConfigurationWithExponentialBackOff returns a configuration for a client performing exponential backoff and honouring `Retry-After`.
func DefaultRobustHTTPClientConfigurationWithExponentialBackOff() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RetryPolicy = *retry.DefaultExponentialBackoffRetryPolicyConfiguration()
	return cfg
}

// DefaultRobustHTTPClientConfigurationWithLinearBackOff returns a configuration for a client performing linear backoff and honouring `Retry-After`.
func DefaultRobustHTTPClientConfigurationWithLinearBackOff() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RetryPolicy = *retry.DefaultLinearBackoffRetryPolicyConfiguration()
	return cfg
}

// DefaultMarketplaceHTTPClientConfiguration returns the configuration used for marketplace services (fulfillment, ARM, agreements).
func DefaultMarketplaceHTTPClientConfiguration() *HTTPClientConfiguration {
	cfg := DefaultHTTPClientConfiguration()
	cfg.RequestTimeout = time.Minute
	cfg.RetryPolicy = *retry.DefaultMarketplaceRetryPolicyConfiguration()
	return cfg
}
