package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
	"github.com/marketplace-rp/saasprovisioning/field"
)

// WrapFieldValidationError creates an error resulting from the validation of a field in a structure
func WrapFieldValidationError(fieldName string, mapStructure, prefix *string, err error) IValidationError {
	vErr := newValidationError(err)
	if vErr == nil {
		return nil
	}
	vErr.RecordField(fieldName, mapStructure, prefix)
	return vErr
}

// WrapValidationError creates an error resulting from the validation of a structure
func WrapValidationError(prefix *string, err error) IValidationError {
	vErr := newValidationError(err)
	if vErr == nil {
		return nil
	}
	if prefix != nil && strings.TrimSpace(*prefix) != "" {
		vErr.RecordPrefix(*prefix)
	}
	return vErr
}

// IValidationError defines a typical structure validation error.
// The environment variable path (e.g. `SAAS_FULFILLMENT_BASE_URL`) is reported so that operators know which entry to fix.
type IValidationError interface {
	error
	fmt.Stringer
	GetMapStructurePath() string
	GetTreePath() string
	GetReason() string
	Unwrap() error
	RecordField(fieldName string, mapStructureFieldName *string, mapStructurePrefix *string)
	RecordPrefix(mapStructurePrefix string)
	GetTree() []string
	GetMapStructureTree() []string
	GetMapStructurePrefix() *string
}

type validationError struct {
	tree               []string
	mapStructureTree   []string
	mapStructurePrefix *string
	reason             string
}

func (v *validationError) GetTree() []string {
	return v.tree
}

func (v *validationError) GetMapStructureTree() []string {
	return v.mapStructureTree
}

func (v *validationError) GetMapStructurePrefix() *string {
	return v.mapStructurePrefix
}

func (v *validationError) RecordField(fieldName string, mapStructureFieldName *string, mapStructurePrefix *string) {
	v.tree = append([]string{strings.TrimSpace(fieldName)}, v.tree...)
	if mapStructureFieldName != nil {
		v.mapStructureTree = append([]string{strings.ToUpper(strings.TrimSpace(*mapStructureFieldName))}, v.mapStructureTree...)
	}
	if mapStructurePrefix != nil {
		v.mapStructurePrefix = mapStructurePrefix
	}
}

func (v *validationError) RecordPrefix(mapStructurePrefix string) {
	v.mapStructurePrefix = field.ToOptionalString(mapStructurePrefix)
}

func (v *validationError) Error() string {
	mapstructureStr := v.GetMapStructurePath()
	if mapstructureStr != "" {
		mapstructureStr = fmt.Sprintf(" [%v]", mapstructureStr)
	}
	treeStr := v.GetTreePath()
	if treeStr != "" {
		treeStr = fmt.Sprintf(" (%v)", treeStr)
	}
	reasonStr := v.GetReason()
	if reasonStr != "" {
		reasonStr = fmt.Sprintf(" %v", reasonStr)
	}
	return commonerrors.Newf(v.Unwrap(), "structure failed validation:%v%v%v", treeStr, mapstructureStr, reasonStr).Error()
}

func (v *validationError) GetMapStructurePath() string {
	if len(v.mapStructureTree) == 0 {
		return ""
	}
	mapstructureStr := strings.ReplaceAll(strings.Join(v.mapStructureTree, EnvVarSeparator), "-", EnvVarSeparator)
	if v.mapStructurePrefix != nil {
		mapstructureStr = fmt.Sprintf("%v_%v", strings.ToUpper(strings.TrimSpace(*v.mapStructurePrefix)), mapstructureStr)
	}
	return mapstructureStr
}

func (v *validationError) GetTreePath() string {
	return strings.Join(v.tree, "->")
}

func (v *validationError) GetReason() string {
	return v.reason
}

func (v *validationError) Unwrap() error {
	return commonerrors.ErrInvalid
}

func (v *validationError) String() string {
	return v.Error()
}

func newValidationError(err error) *validationError {
	if err == nil {
		return nil
	}
	var vErr *validationError
	if errors.As(err, &vErr) {
		return vErr
	}
	var ve IValidationError
	if errors.As(err, &ve) {
		return &validationError{
			tree:               ve.GetTree(),
			mapStructureTree:   ve.GetMapStructureTree(),
			mapStructurePrefix: ve.GetMapStructurePrefix(),
			reason:             ve.GetReason(),
		}
	}
	var oe validation.Error
	if errors.As(err, &oe) {
		return &validationError{reason: oe.Message()}
	}
	var oes validation.Errors
	if errors.As(err, &oes) {
		return newValidationErrorFromOzzoValidationErrors(oes)
	}
	return &validationError{reason: err.Error()}
}

func newValidationErrorFromOzzoValidationErrors(oes validation.Errors) *validationError {
	if len(oes) == 0 {
		return &validationError{reason: oes.Error()}
	}
	// Only the first failing field is reported, nested validation errors are unfolded.
	params := slices.Sorted(maps.Keys(oes))
	param := params[0]
	veo := newValidationError(oes[param])
	if veo == nil {
		veo = &validationError{reason: oes.Error()}
	}
	veo.RecordField(param, nil, nil)
	return veo
}
