package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger <generate|rename>",
	Short: "Report an upstream pipeline completion",
	Long: `Report a completed pipeline step to the daemon.

The daemon decides per its trigger policy whether the event starts a
refresh campaign. Intended for the end of STRM generation or rename
scripts:

  scanarr trigger generate --path /data/strm --count 42
  scanarr trigger rename --path /media/movies`,
	ValidArgs: []string{"generate", "rename"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      runTriggerCmd,
}

func init() {
	rootCmd.AddCommand(triggerCmd)
	triggerCmd.Flags().String("path", "", "Directory the pipeline step produced")
	triggerCmd.Flags().Int("count", 0, "Number of items the pipeline step produced")
}

func runTriggerCmd(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	count, _ := cmd.Flags().GetInt("count")

	client := NewClient(serverURL)
	if err := client.Trigger(args[0], path, count); err != nil {
		return fmt.Errorf("trigger failed: %w", err)
	}

	fmt.Println("Event accepted")
	return nil
}
