package config

import (
	"reflect"
	"strings"
)

// ValidateEmbedded uses reflection to find embedded structs and validate them
func ValidateEmbedded(cfg Validator) error {
	r := reflect.ValueOf(cfg).Elem()
	for i := 0; i < r.NumField(); i++ {
		f := r.Field(i)
		if f.Kind() != reflect.Struct {
			continue
		}
		validator, ok := f.Addr().Interface().(Validator)
		if !ok {
			continue
		}
		err := wrapFieldValidationError(r.Type().Field(i), validator.Validate())
		if err != nil {
			return err
		}
	}
	return nil
}

func wrapFieldValidationError(field reflect.StructField, err error) error {
	if err == nil {
		return nil
	}
	var mapStructure *string
	if mapStructureStr, hasTag := field.Tag.Lookup("mapstructure"); hasTag {
		processed := processMapStructureString(mapStructureStr)
		if processed != "" {
			mapStructure = &processed
		}
	}
	return WrapFieldValidationError(field.Name, mapStructure, nil, err)
}

// processMapStructureString returns the key part of a mapstructure tag (options such as `omitempty` or `squash` are discarded).
func processMapStructureString(str string) string {
	processedStr := strings.TrimSpace(str)
	if processedStr == "-" {
		return ""
	}
	return strings.TrimSpace(strings.Split(processedStr, ",")[0])
}
