package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

// RetryableClient is an http client which will retry failed requests according to the retry configuration.
type RetryableClient struct {
	client *retryablehttp.Client
}

// NewConfigurableRetryableClientWithPolicy creates a new http client which will retry failed requests according to the retry configuration.
// checkRetry decides which responses are retried. Once retries are exhausted, the last response is handed back to the caller.
func NewConfigurableRetryableClientWithPolicy(cfg *HTTPClientConfiguration, logger logr.Logger, client *http.Client, checkRetry retryablehttp.CheckRetry) IRetryableClient {
	if cfg == nil {
		cfg = DefaultHTTPClientConfiguration()
	}
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	if checkRetry == nil {
		checkRetry = DefaultMarketplaceRetryPolicy
	}
	if t, ok := client.Transport.(*http.Transport); ok {
		setTransportConfiguration(cfg, t)
	}
	if cfg.RequestTimeout > 0 {
		client.Timeout = cfg.RequestTimeout
	}
	retryMax := 0
	if cfg.RetryPolicy.Enabled {
		retryMax = cfg.RetryPolicy.RetryMax
	}
	subClient := &retryablehttp.Client{
		HTTPClient:   client,
		Logger:       newLogger(logger),
		RetryWaitMin: cfg.RetryPolicy.RetryWaitMin,
		RetryWaitMax: cfg.RetryPolicy.RetryWaitMax,
		RetryMax:     retryMax,
		CheckRetry:   checkRetry,
		Backoff:      BackOffPolicyFactory(&cfg.RetryPolicy).Apply,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return &RetryableClient{client: subClient}
}

// NewConfigurableRetryableOauthClientWithTokenSource creates a new http client which will retry failed requests according to the retry configuration and checkRetry policy.
// Each attempt is authorised with a bearer token obtained from the token source e.g. a managed identity.
func NewConfigurableRetryableOauthClientWithTokenSource(cfg *HTTPClientConfiguration, logger logr.Logger, ts oauth2.TokenSource, checkRetry retryablehttp.CheckRetry) IRetryableClient {
	base := cleanhttp.DefaultPooledClient()
	if ts == nil {
		return NewConfigurableRetryableClientWithPolicy(cfg, logger, base, checkRetry)
	}
	if cfg != nil {
		if t, ok := base.Transport.(*http.Transport); ok {
			setTransportConfiguration(cfg, t)
		}
	}
	oauthClientCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return NewConfigurableRetryableClientWithPolicy(cfg, logger, oauth2.NewClient(oauthClientCtx, ts), checkRetry)
}

func (c *RetryableClient) StandardClient() *http.Client {
	return c.client.StandardClient()
}

func (c *RetryableClient) UnderlyingClient() *retryablehttp.Client {
	return c.client
}

func (c *RetryableClient) Do(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, commonerrors.UndefinedParameter("request")
	}
	r, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "could not create retryable request")
	}
	return c.client.Do(r)
}

func (c *RetryableClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

type leveledLogger struct {
	logger logr.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(commonerrors.ErrUnexpected, msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.V(1).Info(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.V(0).Info(fmt.Sprintf("WARNING: %v", msg), keysAndValues...)
}

func newLogger(logger logr.Logger) retryablehttp.LeveledLogger {
	if logger.IsZero() || logger.GetSink() == nil {
		return nil
	}
	return &leveledLogger{
		logger: logger,
	}
}
