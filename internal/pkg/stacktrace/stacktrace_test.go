package stacktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternal(t *testing.T) {
	frames := Internal(0)

	require.NotEmpty(t, frames)
	assert.True(t, strings.HasPrefix(frames[0], "internal/pkg/stacktrace/stacktrace_test.go:"), frames[0])
	for _, f := range frames {
		assert.NotContains(t, f, "/stacktrace/stacktrace.go")
	}
}
