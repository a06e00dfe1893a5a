package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/devcopilot/devcopilot/internal/engine"
	"github.com/devcopilot/devcopilot/internal/watcher"
	"github.com/devcopilot/devcopilot/internal/workspace"
)

func watchCmd() *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a repository and reindex on source changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(overrides{})
			if err != nil {
				return err
			}
			repo, err := resolveRepo(repoPath)
			if err != nil {
				return err
			}

			w, err := watcher.New(repo, workspace.DefaultSourceExtensions, workspace.NewIgnoreMatcher(repo))
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			// One index run at a time; bursts that arrive mid-run are
			// picked up by the next debounce window.
			var indexing atomic.Bool
			w.OnChange(func(paths []string) {
				if !indexing.CompareAndSwap(false, true) {
					return
				}
				defer indexing.Store(false)

				fmt.Printf("📝 %d files changed, reindexing...\n", len(paths))
				if err := app.client.Index(ctx, engine.IndexOptions{RepoPath: repo}); err != nil {
					reportEngineError(err)
					return
				}
				successColor.Println("✅ Index updated")
			})

			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()

			fmt.Printf("👀 Watching %s (Ctrl-C to stop)\n", repo)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
			case <-ctx.Done():
			}
			fmt.Println("\nStopping watcher")
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "repository path (default: enclosing repo root)")

	return cmd
}
