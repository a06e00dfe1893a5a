package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			headerColor.Printf("devcopilot %s\n", Version)
			fmt.Println("Mode-based code search (HyDE/RAG) and PR summarization")
		},
	}
}
