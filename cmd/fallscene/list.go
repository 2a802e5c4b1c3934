package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallscene/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available compositions",
	Long:  `Shows a list of all compositions registered in fallscene.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	comps := registry.List()

	if len(comps) == 0 {
		fmt.Println("No compositions available.")
		return
	}

	fmt.Println("Available compositions:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, c := range comps {
		if len(c.ID) > maxIDLen {
			maxIDLen = len(c.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "----", "-----")

	// Print compositions
	for _, c := range comps {
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, c.ID, c.Size, c.Title)
	}

	fmt.Println()
	fmt.Println("Run 'fallscene preview -c <id>' to preview a composition.")
}
