package config

type IServiceConfiguration interface {
	// Validates configuration entries.
	Validate() error
}

// Validator is implemented by any configuration structure (or sub-structure) able to check itself.
type Validator interface {
	Validate() error
}
