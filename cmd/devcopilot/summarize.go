package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devcopilot/devcopilot/internal/engine"
	"github.com/devcopilot/devcopilot/internal/history"
	"github.com/devcopilot/devcopilot/internal/report"
	"github.com/devcopilot/devcopilot/internal/richtext"
)

func summarizeCmd() *cobra.Command {
	var (
		ov             overrides
		repoPath       string
		baseBranch     string
		currentBranch  string
		maxFiles       int
		timeoutSeconds int
		outputPath     string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the current PR against a base branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(ov)
			if err != nil {
				return err
			}
			repo, err := resolveRepo(repoPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			doc, err := app.client.SummarizePR(ctx, engine.SummarizeOptions{
				RepoPath:       repo,
				BaseBranch:     baseBranch,
				CurrentBranch:  currentBranch,
				MaxFiles:       maxFiles,
				TimeoutSeconds: timeoutSeconds,
			})
			if err != nil {
				reportEngineError(err)
				os.Exit(1)
			}

			recordHistory(ctx, app, history.KindSummary, doc.Meta.Branch, repo, len(doc.FileChanges))

			if outputPath != "" {
				if err := report.WritePRSummary(doc, outputPath); err != nil {
					return err
				}
				successColor.Printf("✅ Summary exported to %s\n", outputPath)
			}
			if asJSON {
				return printJSON(doc)
			}
			if outputPath == "" {
				printPRSummary(doc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "repository path (default: enclosing repo root)")
	cmd.Flags().StringVar(&baseBranch, "base", "", "base branch to diff against (default: engine default)")
	cmd.Flags().StringVar(&currentBranch, "current", "", "branch to summarize (default: checked-out branch)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "limit the number of summarized files")
	cmd.Flags().IntVar(&timeoutSeconds, "timeout", 0, "per-file LLM timeout in seconds")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "export the summary to a markdown file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	addEngineFlags(cmd, &ov)

	return cmd
}

func printPRSummary(doc richtext.PRSummaryDocument) {
	headerColor.Println("Pull Request Summary")
	if doc.Meta.Branch != "" {
		fmt.Printf("Branch: %s\n", doc.Meta.Branch)
	}
	fmt.Printf("Commits: %d   Changed files: %d\n", doc.Meta.CommitCount, doc.Meta.ChangedFileCount)

	if len(doc.CommitHistory) > 0 {
		fmt.Println()
		headerColor.Println("Commit History")
		for _, commit := range doc.CommitHistory {
			fmt.Println(commit)
		}
	}

	for _, fc := range doc.FileChanges {
		fmt.Println()
		successColor.Printf("🔹 %s\n", fc.Filename)
		fmt.Println(fc.Content)
	}

	if doc.OverallSummary != "" {
		fmt.Println()
		headerColor.Println("Overall PR Summary")
		fmt.Println(doc.OverallSummary)
	}

	for _, w := range doc.Warnings {
		warnColor.Printf("⚠️  %s\n", w)
	}

	if doc.PipelineInfo != "" {
		fmt.Println()
		dimColor.Println(doc.PipelineInfo)
	}
}
