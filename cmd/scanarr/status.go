package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatus(serverURL, status)
	return nil
}

func printStatus(server string, s *StatusResponse) {
	embyState := "not configured"
	if s.EmbyConfigured {
		embyState = "configured"
	}
	refreshState := "idle"
	if s.Refreshing {
		refreshState = "running"
	}

	fmt.Printf("scanarr v%s | Server: %s\n\n", s.Version, server)
	fmt.Printf("  Emby:      %s\n", embyState)
	fmt.Printf("  Refresh:   %s\n", refreshState)
	fmt.Printf("  History:   %d outcomes\n", s.HistoryCount)
	fmt.Printf("  Uptime:    %s\n", (time.Duration(s.UptimeSeconds) * time.Second).String())
}
