package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devcopilot/devcopilot/internal/engine"
	"github.com/devcopilot/devcopilot/internal/history"
	"github.com/devcopilot/devcopilot/internal/richtext"
)

// addEngineFlags registers the per-invocation engine override flags shared
// by the search-like commands.
func addEngineFlags(cmd *cobra.Command, ov *overrides) {
	cmd.Flags().StringVar(&ov.apiKey, "api-key", "", "LLM API key (overrides stored key)")
	cmd.Flags().StringVar(&ov.apiURL, "api-url", "", "LLM API endpoint (overrides config)")
	cmd.Flags().StringVar(&ov.model, "model", "", "LLM model name (overrides config)")
	cmd.Flags().StringVar(&ov.dbPath, "db", "", "vector store path (overrides config)")
	cmd.Flags().StringVar(&ov.collection, "collection", "", "vector store collection (overrides config)")
}

func searchCmd() *cobra.Command {
	var (
		ov         overrides
		mode       string
		repoPath   string
		topK       int
		indexFirst bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the codebase (HyDE ranking or RAG answer)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]

			searchMode := engine.SearchMode(strings.ToLower(mode))
			if searchMode != engine.ModeHyDE && searchMode != engine.ModeRAG {
				return fmt.Errorf("unknown mode %q (want hyde or rag)", mode)
			}

			app, err := newApp(ov)
			if err != nil {
				return err
			}
			repo, err := resolveRepo(repoPath)
			if err != nil {
				return err
			}
			if topK <= 0 {
				topK = app.cfg.TopK
			}

			opts := engine.SearchOptions{
				Query:      query,
				RepoPath:   repo,
				TopK:       topK,
				IndexFirst: indexFirst || app.cfg.AutoIndex,
			}

			ctx := cmd.Context()
			if searchMode == engine.ModeRAG {
				answer, err := app.client.RAGQuery(ctx, opts)
				if err != nil {
					reportEngineError(err)
					os.Exit(1)
				}
				recordHistory(ctx, app, history.KindRAG, query, repo, len(answer.Sources))
				if asJSON {
					return printJSON(answer)
				}
				printRagAnswer(answer)
				return nil
			}

			results, err := app.client.HyDESearch(ctx, opts)
			if err != nil {
				reportEngineError(err)
				os.Exit(1)
			}
			recordHistory(ctx, app, history.KindHyDE, query, repo, len(results))
			if asJSON {
				return printJSON(results)
			}
			printSearchResults(query, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "hyde", "search mode: hyde or rag")
	cmd.Flags().StringVar(&repoPath, "repo", "", "repository path (default: enclosing repo root)")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of results (default from config)")
	cmd.Flags().BoolVar(&indexFirst, "index", false, "reindex the repository before searching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	addEngineFlags(cmd, &ov)

	return cmd
}

// askCmd is search in RAG mode under a friendlier name.
func askCmd() *cobra.Command {
	var (
		ov         overrides
		repoPath   string
		topK       int
		indexFirst bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the codebase (RAG)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := args[0]

			app, err := newApp(ov)
			if err != nil {
				return err
			}
			repo, err := resolveRepo(repoPath)
			if err != nil {
				return err
			}
			if topK <= 0 {
				topK = app.cfg.TopK
			}

			ctx := cmd.Context()
			answer, err := app.client.RAGQuery(ctx, engine.SearchOptions{
				Query:      question,
				RepoPath:   repo,
				TopK:       topK,
				IndexFirst: indexFirst || app.cfg.AutoIndex,
			})
			if err != nil {
				reportEngineError(err)
				os.Exit(1)
			}

			recordHistory(ctx, app, history.KindRAG, question, repo, len(answer.Sources))

			if asJSON {
				return printJSON(answer)
			}
			printRagAnswer(answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "repository path (default: enclosing repo root)")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of supporting sources (default from config)")
	cmd.Flags().BoolVar(&indexFirst, "index", false, "reindex the repository before asking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the answer as JSON")
	addEngineFlags(cmd, &ov)

	return cmd
}

func recordHistory(ctx context.Context, app *app, kind history.Kind, query, repo string, count int) {
	store := app.openHistory(ctx)
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.Record(ctx, kind, query, repo, count); err != nil {
		warnColor.Fprintf(os.Stderr, "⚠️  Failed to record history: %s\n", err)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSearchResults(query string, results []richtext.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results found.")
		dimColor.Printf("Try rephrasing the query or running with --index.\n")
		return
	}

	headerColor.Printf("Results for %q\n\n", query)
	for i, r := range results {
		fmt.Printf("%d. ", i+1)
		successColor.Printf("%s: %s\n", strings.ToUpper(r.Kind), r.Name)
		if r.FilePath != "" {
			loc := r.FilePath
			if r.StartLine != nil && r.EndLine != nil {
				loc = fmt.Sprintf("%s:%d-%d", r.FilePath, *r.StartLine, *r.EndLine)
			}
			fmt.Printf("   📄 %s\n", loc)
		}
		if r.Similarity != nil {
			fmt.Printf("   📊 Similarity: %.3f\n", *r.Similarity)
		}
		if r.Docstring != "" {
			dimColor.Printf("   %s\n", r.Docstring)
		}
		fmt.Println()
	}
}

func printRagAnswer(answer richtext.RagAnswer) {
	if answer.Text == "" && len(answer.Sources) == 0 {
		fmt.Println("No answer produced.")
		return
	}

	headerColor.Println("💡 Answer")
	fmt.Println(answer.Text)

	if len(answer.Sources) > 0 {
		fmt.Println()
		headerColor.Println("Supporting Sources")
		for i, src := range answer.Sources {
			fmt.Printf("%d. ", i+1)
			successColor.Printf("%s: %s", strings.ToUpper(src.Kind), src.Name)
			if src.FilePath != "" {
				fmt.Printf("  (%s)", src.FilePath)
			}
			fmt.Println()
			if src.CodeSnippet != "" {
				dimColor.Println(indent(src.CodeSnippet, "   "))
			}
		}
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
