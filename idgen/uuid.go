// Package idgen generates the identifiers attached to outgoing marketplace requests (correlation and client request ids).
package idgen

import (
	"github.com/gofrs/uuid/v5"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

// GenerateUUID4 generates a UUID.
func GenerateUUID4() (string, error) {
	uuid, err := uuid.NewV4()
	if err != nil {
		return "", commonerrors.WrapError(commonerrors.ErrUnexpected, err, "failed generating uuid")
	}
	return uuid.String(), nil
}

// GenerateUUID4OrEmpty is similar to GenerateUUID4 but returns an empty string if generation failed.
func GenerateUUID4OrEmpty() string {
	id, _ := GenerateUUID4()
	return id
}

// IsValidUUID states whether a string is a valid UUID.
func IsValidUUID(u string) bool {
	_, err := uuid.FromString(u)
	return err == nil
}
