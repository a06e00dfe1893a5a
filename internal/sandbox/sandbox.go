// Package sandbox runs the external DevCopilot engine process, either
// directly on the host or inside a Docker container. It captures stdout,
// stderr and the exit code; interpretation of the output is left to callers.
package sandbox

import (
	"context"
	"time"
)

// Result captures the output of one engine invocation.
type Result struct {
	Stdout   string
	Stderr   string
	Code     int
	TimedOut bool
}

// Runner executes a command in a working directory with a timeout.
// Implementations decide where the process actually runs.
type Runner interface {
	// RunCmd runs a command.
	// - ctx: base context for cancellation
	// - workDir: directory the process runs in (usually the target repo)
	// - name: executable name, e.g. "python3"
	// - args: arguments, e.g. []string{"cli.py", "search", ...}
	// - timeout: optional timeout (<=0 uses the configured default)
	RunCmd(ctx context.Context, workDir, name string, args []string, timeout time.Duration) (Result, error)
}

// RunCmd is a convenience wrapper around the default runner.
func RunCmd(ctx context.Context, workDir, name string, args []string, timeout time.Duration) (Result, error) {
	return NewDefaultRunner().RunCmd(ctx, workDir, name, args, timeout)
}
