// Package field provides utilities to set optional structure fields e.g. a resource group which only exists for subscription-level SaaS resources.
package field

// ToOptionalInt returns a pointer to an int
func ToOptionalInt(i int) *int {
	return &i
}

// OptionalInt returns the value of an optional field or else
// returns defaultValue.
func OptionalInt(ptr *int, defaultValue int) int {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}

// ToOptionalString returns a pointer to a string.
func ToOptionalString(s string) *string {
	return &s
}

// OptionalString returns the value of an optional field or else returns defaultValue.
func OptionalString(ptr *string, defaultValue string) string {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}

// EqualOptionalInt states whether two optional ints hold the same value (two undefined values are equal).
func EqualOptionalInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
