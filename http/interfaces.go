// Package http provides the robust HTTP client used to talk to marketplace services.
// Clients retry failed requests according to a retry policy configuration (no retry, basic retries, linear or exponential backoff) and
// honour `Retry-After` hints. The decision whether a response is worth retrying is made by a `retryablehttp.CheckRetry` policy such as
// DefaultMarketplaceRetryPolicy or EntityNotFoundRetryPolicy.
// It is a thin wrapper over some hashicorp implementations and hence over the standard net/http client library.
package http

import (
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// IClient defines an HTTP client similar to http.Client but without shared state with other clients used in the same program.
// See https://github.com/hashicorp/go-cleanhttp for more details.
type IClient interface {
	io.Closer
	// Do performs a generic request.
	Do(req *http.Request) (*http.Response, error)
	// StandardClient returns a standard library *http.Client with a custom Transport layer.
	StandardClient() *http.Client
}

// IRetryWaitPolicy defines the policy which specifies how much wait/sleep should happen between retry attempts.
type IRetryWaitPolicy interface {
	// Apply determines the amount of time to wait before the next retry attempt.
	// the time will be comprised between the `min` and `max` value unless other information are retrieved from the server response e.g. `Retry-After` header.
	Apply(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration
}

// IRetryableClient is a retryable client. It is a normal client with the additional method of extracting the underlying go-retryablehttp client so it can be used in libraries that use it
type IRetryableClient interface {
	IClient
	UnderlyingClient() *retryablehttp.Client
}
