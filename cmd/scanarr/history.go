package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent refresh outcomes",
	RunE:  runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of outcomes to show")
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL)
	history, err := client.History(limit)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	if jsonOutput {
		printJSON(history)
		return nil
	}

	if len(history.Items) == 0 {
		fmt.Println("No refresh history")
		return nil
	}

	fmt.Printf("Refresh History (%d):\n\n", history.Count)
	fmt.Printf("  %-12s %-6s %-24s %s\n", "TIME", "RESULT", "LIBRARY", "MESSAGE")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, o := range history.Items {
		t, _ := time.Parse(time.RFC3339, o.Timestamp)
		ago := formatTimeAgo(t.Unix())
		result := "ok"
		if !o.Success {
			result = "FAIL"
		}
		library := o.LibraryName
		if library == "" {
			library = "(all)"
		}
		fmt.Printf("  %-12s %-6s %-24s %s\n", ago, result, library, o.Message)
	}

	return nil
}
