// Package validation provides ozzo-validation rules shared by configurations and request models.
package validation

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/idgen"
)

// IsGUID checks that a string value is a GUID e.g. an Azure subscription or tenant identifier. Empty values are accepted.
func IsGUID() validation.Rule {
	return validation.By(func(vRaw any) error {
		v, ok := vRaw.(string)
		if !ok {
			return commonerrors.Newf(commonerrors.ErrMarshalling, "unsupported type for GUID validation: %T", vRaw)
		}
		if v == "" || idgen.IsValidUUID(v) {
			return nil
		}
		return commonerrors.Newf(commonerrors.ErrInvalid, "%q is not a valid GUID", v)
	})
}

// IsHTTPBaseURL checks that a string value is an absolute http(s) URL without query. Empty values are accepted.
func IsHTTPBaseURL() validation.Rule {
	return validation.By(func(vRaw any) error {
		v, ok := vRaw.(string)
		if !ok {
			return commonerrors.Newf(commonerrors.ErrMarshalling, "unsupported type for URL validation: %T", vRaw)
		}
		if v == "" {
			return nil
		}
		err := is.URL.Validate(v)
		if err != nil {
			return commonerrors.WrapError(commonerrors.ErrInvalid, err, "")
		}
		u, err := url.Parse(v)
		if err != nil {
			return commonerrors.WrapError(commonerrors.ErrInvalid, err, "")
		}
		scheme := strings.ToLower(u.Scheme)
		if scheme != "http" && scheme != "https" {
			return commonerrors.Newf(commonerrors.ErrInvalid, "unsupported scheme %q", u.Scheme)
		}
		if u.RawQuery != "" {
			return commonerrors.New(commonerrors.ErrInvalid, "base URL must not contain a query")
		}
		return nil
	})
}
