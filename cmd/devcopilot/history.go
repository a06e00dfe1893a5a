package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage query history",
	}
	cmd.AddCommand(historyListCmd(), historyClearCmd(), historyPruneCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent queries and summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(overrides{})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store := app.openHistory(ctx)
			if store == nil {
				return fmt.Errorf("history store unavailable")
			}
			defer store.Close()

			entries, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			for _, e := range entries {
				dimColor.Printf("%s  ", e.CreatedAt.Format("2006-01-02 15:04"))
				headerColor.Printf("%-8s", e.Kind)
				fmt.Printf(" %s", e.Query)
				if e.ResultCount > 0 {
					dimColor.Printf("  (%d results)", e.ResultCount)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(overrides{})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store := app.openHistory(ctx)
			if store == nil {
				return fmt.Errorf("history store unavailable")
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return err
			}
			successColor.Println("✅ History cleared")
			return nil
		},
	}
}

func historyPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Keep only the newest entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(overrides{})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store := app.openHistory(ctx)
			if store == nil {
				return fmt.Errorf("history store unavailable")
			}
			defer store.Close()

			removed, err := store.Prune(ctx, keep)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d entries, kept the newest %d.\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 100, "number of entries to keep")
	return cmd
}
