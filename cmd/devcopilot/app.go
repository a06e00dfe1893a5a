package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"github.com/devcopilot/devcopilot/internal/config"
	"github.com/devcopilot/devcopilot/internal/engine"
	"github.com/devcopilot/devcopilot/internal/history"
	"github.com/devcopilot/devcopilot/internal/secrets"
	"github.com/devcopilot/devcopilot/internal/workspace"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// app bundles the loaded configuration and the engine client so every
// subcommand wires up the same way.
type app struct {
	cfg     *config.Config
	manager *config.Manager
	client  *engine.Client
}

// overrides are per-invocation engine settings from command flags. Empty
// fields fall through to the loaded config.
type overrides struct {
	apiKey     string
	apiURL     string
	model      string
	dbPath     string
	collection string
}

func (o overrides) apply(cfg *config.Config) {
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	if o.model != "" {
		cfg.Model = o.model
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.collection != "" {
		cfg.Collection = o.collection
	}
}

func newApp(ov overrides) (*app, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}
	ov.apply(cfg)

	// Key sources in priority order: flag, environment, .env, OS keyring,
	// config file.
	apiKey := secrets.Resolve(
		secrets.FromLiteral(ov.apiKey),
		secrets.FromEnv(os.LookupEnv, secrets.EnvVar),
		secrets.FromDotenv(".env", secrets.EnvVar),
		secrets.FromKeyring(),
		secrets.FromLiteral(cfg.APIKey),
	)

	client := engine.NewClient(engine.Config{
		Bin:        cfg.EngineBin,
		BaseArgs:   cfg.EngineArgs,
		APIKey:     apiKey,
		APIURL:     cfg.APIURL,
		Model:      cfg.Model,
		DBPath:     cfg.DBPath,
		Collection: cfg.Collection,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, nil)

	return &app{cfg: cfg, manager: manager, client: client}, nil
}

// resolveRepo picks the repository to operate on: the --repo flag if given,
// otherwise the repo root enclosing the current directory.
func resolveRepo(flagValue string) (string, error) {
	if flagValue != "" {
		abs, err := filepath.Abs(flagValue)
		if err != nil {
			return "", fmt.Errorf("invalid repo path %q: %w", flagValue, err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return workspace.FindRepoRoot(cwd), nil
}

// openHistory opens the history store next to the config file. History is
// best-effort; callers treat a nil store as "recording disabled".
func (a *app) openHistory(ctx context.Context) *history.Store {
	path := filepath.Join(filepath.Dir(a.manager.GetConfigPath()), "history.db")
	store, err := history.NewStore(ctx, path)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "⚠️  History disabled: %s\n", err)
		return nil
	}
	return store
}

// reportEngineError prints an engine failure the way a user can act on it:
// the one-line diagnostic first, the operation and exit detail after.
func reportEngineError(err error) {
	var engErr *engine.EngineError
	if errors.As(err, &engErr) {
		if diag := engErr.Diagnostic(); diag != "" {
			errorColor.Fprintf(os.Stderr, "Engine error: %s\n", diag)
		} else {
			errorColor.Fprintf(os.Stderr, "Engine error: %s\n", engErr)
		}
		if engErr.TimedOut {
			dimColor.Fprintln(os.Stderr, "The engine timed out; try --timeout with a larger value.")
		}
		return
	}
	errorColor.Fprintf(os.Stderr, "Error: %s\n", err)
}
