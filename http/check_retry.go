package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-http-utils/headers"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	// EntityNotFoundErrorCode is returned by the fulfillment service while a freshly created subscription has not propagated yet.
	EntityNotFoundErrorCode = "EntityNotFound"
	// DefaultEntityNotFoundRetryAfter is the wait suggested when the server does not supply any `Retry-After` hint.
	DefaultEntityNotFoundRetryAfter = 5 * time.Second
	maxInspectedBodySize            = 64 * 1024
)

// DefaultMarketplaceRetryPolicy states whether a request to a marketplace service should be retried.
// Network errors, throttling (429) and server errors (5xx except 501) are retried. Context cancellation never is.
func DefaultMarketplaceRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		// retryablehttp knows which transport errors are not recoverable (e.g. invalid scheme, TLS certificate errors).
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp == nil {
		return true, nil
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, nil
	case resp.StatusCode == http.StatusNotImplemented:
		return false, nil
	case resp.StatusCode == 0 || resp.StatusCode >= http.StatusInternalServerError:
		return true, nil
	default:
		return false, nil
	}
}

// EntityNotFoundRetryPolicy returns a retry policy dealing with the propagation window of the fulfillment service:
// a 400 response whose body mentions EntityNotFound is turned into a 503 carrying a `Retry-After` hint (the server one if present, defaultRetryAfter otherwise) and retried.
// Any other 400 response is turned into a 200 and passed through without retry.
// Other responses are handled by DefaultMarketplaceRetryPolicy.
func EntityNotFoundRetryPolicy(defaultRetryAfter time.Duration) retryablehttp.CheckRetry {
	if defaultRetryAfter < 0 {
		defaultRetryAfter = DefaultEntityNotFoundRetryAfter
	}
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil || resp == nil || resp.StatusCode != http.StatusBadRequest {
			return DefaultMarketplaceRetryPolicy(ctx, resp, err)
		}
		body, subErr := peekBody(resp)
		if subErr != nil {
			return false, subErr
		}
		if !strings.Contains(string(body), EntityNotFoundErrorCode) {
			rewriteStatus(resp, http.StatusOK)
			return false, nil
		}
		rewriteStatus(resp, http.StatusServiceUnavailable)
		if resp.Header == nil {
			resp.Header = make(http.Header)
		}
		if resp.Header.Get(headers.RetryAfter) == "" {
			resp.Header.Set(headers.RetryAfter, strconv.FormatInt(int64(math.Ceil(defaultRetryAfter.Seconds())), 10))
		}
		return true, nil
	}
}

// peekBody reads the beginning of the response body and restores it so that it can be read again by the caller.
func peekBody(resp *http.Response) (body []byte, err error) {
	if resp.Body == nil || resp.Body == http.NoBody {
		return
	}
	body, err = io.ReadAll(io.LimitReader(resp.Body, maxInspectedBodySize))
	if err != nil {
		return
	}
	resp.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(body), resp.Body), Closer: resp.Body}
	return
}

type readCloser struct {
	io.Reader
	io.Closer
}

func rewriteStatus(resp *http.Response, statusCode int) {
	resp.StatusCode = statusCode
	resp.Status = fmt.Sprintf("%d %v", statusCode, http.StatusText(statusCode))
}
