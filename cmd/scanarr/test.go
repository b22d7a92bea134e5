package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the Emby server",
	RunE:  runTestCmd,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTestCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	result, err := client.Test()
	if err != nil {
		return fmt.Errorf("test failed: %w", err)
	}

	if jsonOutput {
		printJSON(result)
		if !result.Success {
			return errors.New("connection test failed")
		}
		return nil
	}

	if !result.Success {
		return errors.New(result.Message)
	}

	fmt.Println(result.Message)
	if result.Server != nil && result.Server.OperatingSystem != "" {
		fmt.Printf("  os: %s\n", result.Server.OperatingSystem)
	}
	return nil
}
