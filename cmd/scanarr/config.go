package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/scanarr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the daemon.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		discovered, err := config.Discover()
		if err != nil {
			return err
		}
		path = discovered
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		printConfigErrors(&config.Error{Path: path, Errors: errs})
		return errors.New("configuration invalid")
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Printf("  server:    %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("  database:  %s\n", cfg.Database.Path)

	if cfg.Emby.Configured() {
		fmt.Printf("  emby:      %s\n", cfg.Emby.URL)
	} else {
		fmt.Println("  emby:      not configured")
	}

	t := cfg.Emby.Triggers
	fmt.Printf("  triggers:  on_generate=%v on_rename=%v", t.OnGenerate, t.OnRename)
	if t.Cron != "" {
		fmt.Printf(" cron=%q", t.Cron)
	}
	fmt.Println()
	if len(t.Libraries) > 0 {
		fmt.Printf("  libraries: %d targeted\n", len(t.Libraries))
	} else {
		fmt.Println("  libraries: all")
	}

	switch {
	case cfg.Notify.NtfyTopic != "" && cfg.Notify.TelegramToken != "":
		fmt.Println("  notify:    ntfy, telegram")
	case cfg.Notify.NtfyTopic != "":
		fmt.Println("  notify:    ntfy")
	case cfg.Notify.TelegramToken != "":
		fmt.Println("  notify:    telegram")
	default:
		fmt.Println("  notify:    disabled")
	}
}
