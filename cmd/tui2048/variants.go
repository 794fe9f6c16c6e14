package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/variant"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all rule sets",
	Long:  `Shows every variant: board size, winning tile and chance of spawning a 4.`,
	Run:   runVariants,
}

func runVariants(_ *cobra.Command, _ []string) {
	variants := variant.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Println("Available variants:")
	fmt.Println()

	fmt.Printf("  %-*s  %-6s  %-8s  %-6s  %s\n", maxIDLen, "ID", "Board", "Target", "Fours", "Title")
	fmt.Printf("  %-*s  %-6s  %-8s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "-----", "-----")

	for _, v := range variants {
		target := "endless"
		if !v.Endless() {
			target = fmt.Sprintf("%d", v.Target)
		}
		marker := ""
		if v.ID == cfg.Game.Variant {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %-6s  %-8s  %-6s  %s%s\n",
			maxIDLen, v.ID,
			fmt.Sprintf("%dx%d", v.Size, v.Size),
			target,
			fmt.Sprintf("%.0f%%", v.Spawn4Prob*100),
			v.Title, marker)
	}

	fmt.Println()
	fmt.Println("Run 'tui2048 play <id>' to play a variant.")
}
