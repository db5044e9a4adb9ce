// Package uid generates identifiers.
//
// Numeric ids (snowflake) are used as primary keys, string ids (UUIDv7) for
// correlation ids and token ids.
package uid

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
