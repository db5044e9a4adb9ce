// Package stacktrace extracts the application's own frames from the current
// call stack, for compact panic logs.
package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const maxDepth = 64

// Internal returns "internal/<pkg>/<file>.go:<line>" entries for the frames
// of the calling goroutine that belong to this module's internal tree,
// innermost first. Standard library "internal/..." packages are left out.
// skip drops that many callers above Internal itself.
func Internal(skip int) []string {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var out []string
	for {
		frame, more := frames.Next()
		idx := strings.LastIndex(frame.File, "/internal/")
		if idx != -1 && strings.Contains(frame.Function, "/internal/") {
			out = append(out, frame.File[idx+1:]+":"+strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}
	return out
}
