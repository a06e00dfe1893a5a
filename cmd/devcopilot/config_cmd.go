package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devcopilot/devcopilot/internal/config"
	"github.com/devcopilot/devcopilot/internal/secrets"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and manage configuration",
	}
	cmd.AddCommand(
		configShowCmd(),
		configPathCmd(),
		configSetCmd(),
		configSetKeyCmd(),
		configUnsetKeyCmd(),
	)
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration (secrets redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.NewManager()
			if err != nil {
				return err
			}
			cfg, err := manager.Load()
			if err != nil {
				return err
			}

			redacted := *cfg
			if redacted.APIKey != "" {
				redacted.APIKey = "********"
			}
			data, err := json.MarshalIndent(redacted, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.NewManager()
			if err != nil {
				return err
			}
			fmt.Println(manager.GetConfigPath())
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a configuration field",
		Long: `Set a configuration field and save the config file.

Fields: api_url, model, db_path, collection, top_k, engine_bin, auto_index, timeout_seconds`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, value := args[0], args[1]

			manager, err := config.NewManager()
			if err != nil {
				return err
			}
			cfg, err := manager.Load()
			if err != nil {
				return err
			}

			switch field {
			case "api_url":
				cfg.APIURL = value
			case "model":
				cfg.Model = value
			case "db_path":
				cfg.DBPath = value
			case "collection":
				cfg.Collection = value
			case "engine_bin":
				cfg.EngineBin = value
			case "top_k":
				n, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("top_k must be an integer: %w", err)
				}
				cfg.TopK = n
			case "timeout_seconds":
				n, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("timeout_seconds must be an integer: %w", err)
				}
				cfg.TimeoutSeconds = n
			case "auto_index":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("auto_index must be true or false: %w", err)
				}
				cfg.AutoIndex = b
			default:
				return fmt.Errorf("unknown field %q", field)
			}

			if err := manager.Save(cfg); err != nil {
				return err
			}
			successColor.Printf("✅ %s updated\n", field)
			return nil
		},
	}
}

func configSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store the LLM API key in the OS keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.StoreInKeyring(args[0]); err != nil {
				return fmt.Errorf("failed to store key: %w", err)
			}
			successColor.Println("✅ API key stored in keyring")
			return nil
		},
	}
}

func configUnsetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset-key",
		Short: "Remove the LLM API key from the OS keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.DeleteFromKeyring(); err != nil {
				return fmt.Errorf("failed to remove key: %w", err)
			}
			successColor.Println("✅ API key removed from keyring")
			return nil
		},
	}
}
