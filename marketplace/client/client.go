// Package client implements the marketplace collaborators over HTTP: the SaaS fulfillment API, the ARM SaaS resource provider and the marketplace agreements API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-http-utils/headers"
	"github.com/go-logr/logr"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	httpclient "github.com/marketplace-rp/saasprovisioning/http"
	httperrors "github.com/marketplace-rp/saasprovisioning/http/errors"
	"github.com/marketplace-rp/saasprovisioning/marketplace"
	"github.com/marketplace-rp/saasprovisioning/retry"
)

const (
	apiVersionParameter = "api-version"
	contentTypeJSON     = "application/json"
)

type baseClient struct {
	endpoint   *url.URL
	apiVersion string
	client     httpclient.IClient
	logger     logr.Logger
	polling    *retry.RetryPolicyConfiguration
}

func newBaseClient(cfg *EndpointConfiguration, client httpclient.IClient, polling *retry.RetryPolicyConfiguration, logger logr.Logger) (*baseClient, error) {
	if cfg == nil {
		return nil, commonerrors.UndefinedParameter("endpoint configuration")
	}
	if client == nil {
		return nil, commonerrors.UndefinedParameter("http client")
	}
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid base URL")
	}
	if polling == nil {
		polling = DefaultClientConfiguration().pollingPolicy()
	}
	return &baseClient{
		endpoint:   endpoint,
		apiVersion: cfg.APIVersion,
		client:     client,
		logger:     logger,
		polling:    polling,
	}, nil
}

func (c *baseClient) newRequest(ctx context.Context, method string, body any, metadata marketplace.RequestMetadata, pathElements ...string) (*http.Request, error) {
	u := c.endpoint.JoinPath(pathElements...)
	query := u.Query()
	query.Set(apiVersionParameter, c.apiVersion)
	u.RawQuery = query.Encode()
	return newJSONRequest(ctx, method, u.String(), body, metadata)
}

func newJSONRequest(ctx context.Context, method, target string, body any, metadata marketplace.RequestMetadata) (req *http.Request, err error) {
	var reader io.Reader
	if body != nil {
		content, subErr := json.Marshal(body)
		if subErr != nil {
			err = commonerrors.WrapError(commonerrors.ErrMarshalling, subErr, "could not serialise request body")
			return
		}
		reader = bytes.NewReader(content)
	}
	req, err = http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrInvalid, err, "could not create request")
		return
	}
	req.Header.Set(headers.Accept, contentTypeJSON)
	if body != nil {
		req.Header.Set(headers.ContentType, contentTypeJSON)
	}
	metadata.ApplyTo(req)
	return
}

// do sends the request and returns the response if its status is one of the expected ones. Otherwise, a marketplace.CommerceError is returned.
func (c *baseClient) do(ctx context.Context, operation string, req *http.Request, expectedStatus ...int) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err == nil && resp != nil && slices.Contains(expectedStatus, resp.StatusCode) {
		return resp, nil
	}
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	exhausted := c.gaveUp(ctx, resp, err)
	apiErr := httperrors.FormatAPIErrorToGo(ctx, operation, resp, err, httperrors.ExtractAzureErrorDescription)
	if apiErr == nil {
		apiErr = commonerrors.Newf(commonerrors.ErrUnexpected, "%v: unexpected status %d", operation, statusCode)
	}
	cErr := marketplace.NewCommerceError(operation, statusCode, apiErr)
	if statusCode == http.StatusServiceUnavailable && strings.Contains(apiErr.Error(), httpclient.EntityNotFoundErrorCode) {
		// the activation policy reports a subscription which never became visible as a 503.
		cErr.Code = marketplace.CodeEntityNotFound
	}
	cErr.RetriesExhausted = exhausted && cErr.IsTransient()
	c.logger.V(1).Info("remote call failed", "operation", operation, "status", statusCode, "code", cErr.Code, "retriesExhausted", cErr.RetriesExhausted)
	return nil, cErr
}

// gaveUp states whether the underlying client already retried the call until its retry budget was consumed:
// it retries failed requests by itself and its policy still considers the last answer worth retrying.
func (c *baseClient) gaveUp(ctx context.Context, resp *http.Response, err error) bool {
	rc, ok := c.client.(httpclient.IRetryableClient)
	if !ok {
		return false
	}
	underlying := rc.UnderlyingClient()
	if underlying == nil || underlying.RetryMax <= 0 || underlying.CheckRetry == nil {
		return false
	}
	shouldRetry, _ := underlying.CheckRetry(ctx, resp, err)
	return shouldRetry
}

// pollOperation waits for an asynchronous operation to complete by querying its location until it stops answering 202 Accepted.
func (c *baseClient) pollOperation(ctx context.Context, operation, location string, metadata marketplace.RequestMetadata) (resp *http.Response, err error) {
	if location == "" {
		err = commonerrors.Newf(commonerrors.ErrUnexpected, "%v: no location was provided to follow the operation", operation)
		return
	}
	err = retry.RetryOnError(ctx, c.logger, c.polling, func() error {
		req, subErr := newJSONRequest(ctx, http.MethodGet, location, nil, metadata)
		if subErr != nil {
			return subErr
		}
		r, subErr := c.do(ctx, operation, req, http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent)
		if subErr != nil {
			return subErr
		}
		if r.StatusCode == http.StatusAccepted {
			closeBody(r)
			return commonerrors.Newf(commonerrors.ErrInProgress, "%v is still in progress", operation)
		}
		resp = r
		return nil
	}, "waiting for "+operation, commonerrors.ErrInProgress)
	if commonerrors.Any(err, commonerrors.ErrInProgress) {
		err = marketplace.NewCommerceError(operation, 0, commonerrors.WrapError(commonerrors.ErrTimeout, err, "operation did not complete in time"))
	}
	return
}

func decodeJSON(resp *http.Response, v any) error {
	defer closeBody(resp)
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		return commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not parse response")
	}
	return nil
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}

func operationResponse(resp *http.Response) *marketplace.OperationResponse {
	r := &marketplace.OperationResponse{StatusCode: resp.StatusCode}
	r.OperationLocation = resp.Header.Get("Operation-Location")
	if r.OperationLocation == "" {
		r.OperationLocation = resp.Header.Get(headers.Location)
	}
	return r
}
