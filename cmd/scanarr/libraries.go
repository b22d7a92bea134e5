package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries [id-or-name]",
	Short: "List media libraries on the Emby server",
	Long: `List media libraries on the Emby server.

With an argument, resolve a single library by id or name. Name matching
is forgiving: case, accents and close spellings are accepted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLibrariesCmd,
}

func init() {
	rootCmd.AddCommand(librariesCmd)
}

func runLibrariesCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if len(args) == 1 {
		lib, err := client.Library(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve library: %w", err)
		}
		if jsonOutput {
			printJSON(lib)
			return nil
		}
		fmt.Printf("%s  %s  %s\n", lib.ID, lib.Name, lib.CollectionType)
		return nil
	}

	libs, err := client.Libraries()
	if err != nil {
		return fmt.Errorf("failed to fetch libraries: %w", err)
	}

	if jsonOutput {
		printJSON(libs)
		return nil
	}

	if len(libs.Items) == 0 {
		fmt.Println("No libraries (is emby configured?)")
		return nil
	}

	fmt.Printf("Libraries (%d):\n\n", libs.Count)
	fmt.Printf("  %-10s %-24s %s\n", "ID", "NAME", "TYPE")
	fmt.Println("  " + strings.Repeat("-", 45))

	for _, l := range libs.Items {
		fmt.Printf("  %-10s %-24s %s\n", l.ID, l.Name, l.CollectionType)
	}

	return nil
}
