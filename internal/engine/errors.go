package engine

import (
	"errors"
	"fmt"
	"strings"
)

// EngineError reports a failed engine invocation: the process exited
// non-zero, timed out, or could not be started. The captured streams ride
// along so callers can surface the engine's own diagnostics. Output from a
// failed invocation is never handed to the parsers.
type EngineError struct {
	Op       string // "search", "summarize", "index"
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *EngineError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("engine %s timed out", e.Op)
	}
	if msg := e.Diagnostic(); msg != "" {
		return fmt.Sprintf("engine %s failed (exit %d): %s", e.Op, e.ExitCode, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("engine %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("engine %s failed (exit %d)", e.Op, e.ExitCode)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Diagnostic returns the first non-empty line of the captured streams,
// preferring stderr. It is what gets shown to the user.
func (e *EngineError) Diagnostic() string {
	for _, stream := range []string{e.Stderr, e.Stdout} {
		for _, line := range strings.Split(stream, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// IsEngineError reports whether err carries an EngineError.
func IsEngineError(err error) bool {
	var engineErr *EngineError
	return errors.As(err, &engineErr)
}
