package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/little-wizard/internal/registry"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all available maps",
	Long: `Shows every registered map: the built-in ones, the generated forest
and any YAML maps found under --maps.`,
	Args: cobra.NoArgs,
	Run:  runMaps,
}

func runMaps(_ *cobra.Command, _ []string) {
	maps := registry.List()

	if len(maps) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range maps {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, m := range maps {
		marker := ""
		if m.ID == cfg.Map.ID {
			marker = "  (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxIDLen, m.ID, m.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'wizard play <id>' to play a map.")
}
