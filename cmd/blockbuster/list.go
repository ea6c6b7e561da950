package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbuster/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available presets",
	Long:  `Shows a list of all rule presets that can be played.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, p := range presets {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, p := range presets {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, p.ID, maxTitleLen, p.Title, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'blockbuster play <id>' to play a preset.")
}
