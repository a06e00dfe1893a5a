package sandbox

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Mode represents the sandbox execution mode.
type Mode string

const (
	// ModeHost runs the engine directly on the host. This is the default:
	// the engine normally lives in a local Python environment with its own
	// dependencies installed.
	ModeHost Mode = "host"
	// ModeDocker runs the engine in a container. Requires an image that has
	// the engine and its dependencies installed (DEVCOPILOT_ENGINE_IMAGE).
	ModeDocker Mode = "docker"
	// ModeAuto uses Docker when the daemon is reachable and an engine image
	// is configured, otherwise the host.
	ModeAuto Mode = "auto"
)

// defaultEngineTimeout bounds one engine invocation. LLM-backed summarize
// runs can be slow, so this is generous.
const defaultEngineTimeout = 5 * time.Minute

// Config holds configuration for engine execution.
type Config struct {
	Mode        Mode
	EngineImage string        // Docker image carrying the engine
	CPU         string        // CPU limit (e.g. "2")
	Memory      string        // Memory limit (e.g. "1g")
	CmdTimeout  time.Duration // Default invocation timeout (0 = use default)
}

// DefaultConfig returns the configuration derived from environment variables.
func DefaultConfig() Config {
	modeStr := strings.ToLower(os.Getenv("DEVCOPILOT_SANDBOX_MODE"))
	if modeStr == "" {
		modeStr = "host"
	}

	var mode Mode
	switch modeStr {
	case "docker":
		mode = ModeDocker
	case "host":
		mode = ModeHost
	case "auto":
		mode = ModeAuto
	default:
		log.Printf("WARNING: Unknown DEVCOPILOT_SANDBOX_MODE value '%s', defaulting to 'host'", modeStr)
		mode = ModeHost
	}

	cmdTimeout := defaultEngineTimeout
	if timeoutStr := os.Getenv("DEVCOPILOT_CMD_TIMEOUT"); timeoutStr != "" {
		if d, err := time.ParseDuration(timeoutStr); err == nil && d > 0 {
			cmdTimeout = d
		} else {
			log.Printf("WARNING: Invalid DEVCOPILOT_CMD_TIMEOUT value '%s', using default %v", timeoutStr, defaultEngineTimeout)
		}
	}

	return Config{
		Mode:        mode,
		EngineImage: os.Getenv("DEVCOPILOT_ENGINE_IMAGE"),
		CPU:         getEnvOrDefault("DEVCOPILOT_ENGINE_CPU", "2"),
		Memory:      getEnvOrDefault("DEVCOPILOT_ENGINE_MEMORY", "1g"),
		CmdTimeout:  cmdTimeout,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// IsDockerAvailable checks if Docker is available and accessible.
func IsDockerAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "docker", "ps")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// NewDefaultRunner creates a runner based on the environment configuration.
func NewDefaultRunner() Runner {
	config := DefaultConfig()
	ctx := context.Background()

	switch config.Mode {
	case ModeDocker:
		if !IsDockerAvailable(ctx) {
			log.Printf("WARNING: Docker mode requested but Docker is not available. Falling back to host execution.")
			return &HostRunner{config: config}
		}
		dockerRunner, err := NewDockerRunner(config)
		if err != nil {
			log.Printf("WARNING: Failed to create Docker runner: %v. Falling back to host execution.", err)
			return &HostRunner{config: config}
		}
		return dockerRunner

	case ModeAuto:
		if config.EngineImage != "" && IsDockerAvailable(ctx) {
			dockerRunner, err := NewDockerRunner(config)
			if err != nil {
				log.Printf("WARNING: Docker available but failed to create runner: %v. Falling back to host execution.", err)
				return &HostRunner{config: config}
			}
			return dockerRunner
		}
		return &HostRunner{config: config}

	default:
		return &HostRunner{config: config}
	}
}

// NewRunner creates a specific runner implementation.
func NewRunner(mode Mode, config Config) (Runner, error) {
	switch mode {
	case ModeDocker:
		return NewDockerRunner(config)
	case ModeHost:
		return &HostRunner{config: config}, nil
	default:
		return nil, fmt.Errorf("unknown runner mode: %s", mode)
	}
}
