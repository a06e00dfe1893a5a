package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devcopilot/devcopilot/internal/engine"
	"github.com/devcopilot/devcopilot/internal/workspace"
)

func indexCmd() *cobra.Command {
	var (
		ov       overrides
		repoPath string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index a repository for semantic search",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ov)
			if err != nil {
				return err
			}
			repo, err := resolveRepo(repoPath)
			if err != nil {
				return err
			}

			if ptype := workspace.DetectProjectType(repo); ptype != workspace.ProjectTypePython && ptype != workspace.ProjectTypeUnknown {
				warnColor.Printf("⚠️  %s looks like a %s project; the engine indexes Python sources best.\n", repo, ptype)
			}

			lister, err := workspace.NewLister(repo, workspace.ListerConfig{})
			if err == nil {
				if files, err := lister.List(); err == nil {
					fmt.Printf("Indexing %s (%d source files)...\n", repo, len(files))
				}
			}

			if err := app.client.Index(cmd.Context(), engine.IndexOptions{RepoPath: repo, Force: force}); err != nil {
				reportEngineError(err)
				os.Exit(1)
			}

			successColor.Println("✅ Indexing complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "repository path (default: enclosing repo root)")
	cmd.Flags().BoolVar(&force, "force", false, "rebuild the index from scratch")
	addEngineFlags(cmd, &ov)

	return cmd
}
