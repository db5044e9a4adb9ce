package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values by dotted key.
//
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt32(key string) int32
	GetFloat64(key string) float64

	// GetSecond reads an integer and interprets it as seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer and interprets it as minutes.
	GetMinute(key string) time.Duration

	// GetArray reads either a list value or a comma separated string.
	// Elements are trimmed and empty elements dropped.
	GetArray(key string) []string
}
