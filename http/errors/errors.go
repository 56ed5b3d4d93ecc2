// Package errors converts HTTP responses returned by remote services into common errors.
package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

const maxErrorBodySize = 64 * 1024

// ExtractAPIErrorDescriptionFunc defines a function which can extract an error message from a API response.
type ExtractAPIErrorDescriptionFunc func(ctx context.Context, resp *http.Response) (message string, err error)

// APIErrorDetails corresponds to the error payload returned by Azure services, e.g. `{"error":{"code":"EntityNotFound","message":"..."}}`.
type APIErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`
}

type apiErrorResponse struct {
	Error *APIErrorDetails `json:"error"`
}

// ParseAPIError parses an Azure style error payload. ErrMarshalling is returned if the payload does not follow such format.
func ParseAPIError(body []byte) (*APIErrorDetails, error) {
	var payload apiErrorResponse
	err := json.Unmarshal(body, &payload)
	if err != nil {
		return nil, commonerrors.WrapError(commonerrors.ErrMarshalling, err, "could not parse error payload")
	}
	if payload.Error == nil || (payload.Error.Code == "" && payload.Error.Message == "") {
		return nil, commonerrors.New(commonerrors.ErrMarshalling, "payload does not describe an error")
	}
	return payload.Error, nil
}

// ExtractAzureErrorDescription returns `code: message` for Azure style error payloads and the raw body otherwise.
func ExtractAzureErrorDescription(ctx context.Context, resp *http.Response) (message string, err error) {
	if resp == nil || resp.Body == nil || resp.Body == http.NoBody {
		return
	}
	err = commonerrors.ConvertContextError(ctx.Err())
	if err != nil {
		return
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrUnexpected, err, "could not read response body")
		return
	}
	details, subErr := ParseAPIError(body)
	if subErr != nil {
		message = strings.TrimSpace(string(body))
		return
	}
	switch {
	case details.Code == "":
		message = details.Message
	case details.Message == "":
		message = details.Code
	default:
		message = fmt.Sprintf("%v: %v", details.Code, details.Message)
	}
	return
}

// FormatAPIErrorToGo formats an API error into a Go error.
// errorContext corresponds to the description of what led to the error e.g. `Failed activating subscription`. This is to add further details about the error.
// resp corresponds to the HTTP response from a certain endpoint. Its body is closed by this function.
// clientErr corresponds to the error which may be returned by the HTTP client when calling the endpoint.
func FormatAPIErrorToGo(ctx context.Context, errorContext string, resp *http.Response, clientErr error, errorExtract ExtractAPIErrorDescriptionFunc) (err error) {
	statusCode := 0
	errorDetails := ""
	respErr := commonerrors.ErrUnexpected
	if resp != nil {
		statusCode = resp.StatusCode
		respErr = MapErrorToHTTPResponseCode(statusCode)
		if errorExtract == nil {
			errorExtract = ExtractAzureErrorDescription
		}
		details, subErr := errorExtract(ctx, resp)
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
		if commonerrors.Ignore(subErr, commonerrors.ErrMarshalling) != nil {
			if respErr == nil {
				respErr = commonerrors.ErrUnexpected
			}
			err = commonerrors.Join(commonerrors.New(respErr, errorContext), subErr)
			return
		}
		errorDetails = strings.TrimSpace(details)
	}
	if respErr == nil {
		if clientErr == nil {
			return
		}
		respErr = commonerrors.ErrUnexpected
	}
	if clientErr != nil {
		if ctxErr := commonerrors.ConvertContextError(ctx.Err()); ctxErr != nil {
			respErr = commonerrors.DetermineCommonError(ctxErr)
		} else if category := commonerrors.DetermineCommonError(clientErr); category != nil && resp == nil {
			respErr = category
		}
	}
	errMsgBuilder := strings.Builder{}
	if strings.TrimSpace(errorContext) != "" {
		errMsgBuilder.WriteString(errorContext)
	}
	if statusCode != 0 {
		if errMsgBuilder.Len() > 0 {
			errMsgBuilder.WriteString(" ")
		}
		errMsgBuilder.WriteString(fmt.Sprintf("(%d)", statusCode))
	}
	if errorDetails != "" {
		if errMsgBuilder.Len() > 0 {
			errMsgBuilder.WriteString(": ")
		}
		errMsgBuilder.WriteString(errorDetails)
	}
	if clientErr != nil {
		if errMsgBuilder.Len() > 0 {
			errMsgBuilder.WriteString("; ")
		}
		errMsgBuilder.WriteString(clientErr.Error())
	}

	err = commonerrors.New(respErr, errMsgBuilder.String())
	return
}

// MapErrorToHTTPResponseCode maps a response status code to a common error.
func MapErrorToHTTPResponseCode(statusCode int) error {
	if statusCode < http.StatusBadRequest {
		return nil
	}
	switch statusCode {
	case http.StatusBadRequest:
		return commonerrors.ErrInvalid
	case http.StatusUnauthorized:
		return commonerrors.ErrUnauthorised
	case http.StatusPaymentRequired:
		return commonerrors.ErrUnknown
	case http.StatusForbidden:
		return commonerrors.ErrForbidden
	case http.StatusNotFound:
		return commonerrors.ErrNotFound
	case http.StatusMethodNotAllowed:
		return commonerrors.ErrNotFound
	case http.StatusNotAcceptable:
		return commonerrors.ErrUnsupported
	case http.StatusProxyAuthRequired:
		return commonerrors.ErrUnauthorised
	case http.StatusRequestTimeout:
		return commonerrors.ErrTimeout
	case http.StatusConflict:
		return commonerrors.ErrConflict
	case http.StatusGone:
		return commonerrors.ErrNotFound
	case http.StatusLengthRequired:
		return commonerrors.ErrInvalid
	case http.StatusPreconditionFailed:
		return commonerrors.ErrCondition
	case http.StatusRequestEntityTooLarge:
		return commonerrors.ErrTooLarge
	case http.StatusRequestURITooLong:
		return commonerrors.ErrTooLarge
	case http.StatusUnsupportedMediaType:
		return commonerrors.ErrUnsupported
	case http.StatusRequestedRangeNotSatisfiable:
		return commonerrors.ErrOutOfRange
	case http.StatusExpectationFailed:
		return commonerrors.ErrUnsupported
	case http.StatusTeapot:
		return commonerrors.ErrUnknown
	case http.StatusMisdirectedRequest:
		return commonerrors.ErrUnsupported
	case http.StatusUnprocessableEntity:
		return commonerrors.ErrMarshalling
	case http.StatusLocked:
		return commonerrors.ErrLocked
	case http.StatusFailedDependency:
		return commonerrors.ErrFailed
	case http.StatusTooEarly:
		return commonerrors.ErrUnexpected
	case http.StatusUpgradeRequired:
		return commonerrors.ErrUnsupported
	case http.StatusPreconditionRequired:
		return commonerrors.ErrCondition
	case http.StatusTooManyRequests:
		return commonerrors.ErrUnavailable
	case http.StatusRequestHeaderFieldsTooLarge:
		return commonerrors.ErrTooLarge
	case http.StatusUnavailableForLegalReasons:
		return commonerrors.ErrUnavailable

	case http.StatusInternalServerError:
		return commonerrors.ErrUnexpected
	case http.StatusNotImplemented:
		return commonerrors.ErrNotImplemented
	case http.StatusBadGateway:
		return commonerrors.ErrUnavailable
	case http.StatusServiceUnavailable:
		return commonerrors.ErrUnavailable
	case http.StatusGatewayTimeout:
		return commonerrors.ErrTimeout
	case http.StatusHTTPVersionNotSupported:
		return commonerrors.ErrUnsupported
	case http.StatusNetworkAuthenticationRequired:
		return commonerrors.ErrUnauthorised
	default:
		return commonerrors.ErrUnexpected
	}
}
