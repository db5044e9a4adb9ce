package validator

// Validator validates structs by their `validate` tags and single values by an
// inline tag.
type Validator interface {
	// Validate checks every tagged field of data.
	Validate(data any) error
	// Var checks a single value against tag, e.g. Var(login, "email").
	Var(value any, tag string) error
}
