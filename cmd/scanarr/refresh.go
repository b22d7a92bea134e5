package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Run a refresh campaign",
	Long: `Trigger a refresh campaign on the Emby server and report the outcomes.

By default the command waits for the campaign to finish. With --async the
campaign is queued and the command returns immediately; use
'scanarr history' to see the outcomes later.

Examples:
  scanarr refresh           # Refresh and wait for outcomes
  scanarr refresh --async   # Queue a refresh and return`,
	Args: cobra.NoArgs,
	RunE: runRefreshCmd,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().Bool("async", false, "Queue the campaign without waiting")
}

func runRefreshCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	async, _ := cmd.Flags().GetBool("async")

	if async {
		if err := client.RefreshAsync(); err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		fmt.Println("Refresh queued")
		return nil
	}

	resp, err := client.Refresh()
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	printOutcomes(resp)
	return nil
}

func printOutcomes(r *RefreshResponse) {
	fmt.Printf("Refresh finished: %d succeeded, %d failed\n\n", r.Succeeded, r.Failed)

	fmt.Printf("  %-6s %-24s %s\n", "RESULT", "LIBRARY", "MESSAGE")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, o := range r.Outcomes {
		result := "ok"
		if !o.Success {
			result = "FAIL"
		}
		library := o.LibraryName
		if library == "" {
			library = "(all)"
		}
		fmt.Printf("  %-6s %-24s %s\n", result, library, o.Message)
	}
}
