package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load .env file if it exists so LLM_API_KEY reaches the engine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "devcopilot",
		Short:         "Semantic code search and PR summarization",
		Long:          "devcopilot wraps the DevCopilot engine: HyDE and RAG code search,\nPR summarization, repository indexing and change watching.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		searchCmd(),
		askCmd(),
		summarizeCmd(),
		indexCmd(),
		watchCmd(),
		historyCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
