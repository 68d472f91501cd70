package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the levels in the level directory (or the built-in set) with the
best recorded move count of each.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	a, err := newApp()
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	all, err := a.levels.LoadAll()
	if err != nil {
		a.close()
		fail("%v", err)
	}

	if len(all) == 0 {
		fmt.Printf("No levels in %s.\n", a.levels.Root())
		return
	}

	fmt.Printf("Levels in %s:\n\n", a.levels.Root())

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range all {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Best", "Name")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "----")

	for _, l := range all {
		best := "-"
		if a.store != nil {
			if stats, statsErr := a.store.GetLevelStats(l.ID); statsErr == nil && stats.BestMoves > 0 {
				best = fmt.Sprintf("%d", stats.BestMoves)
			}
		}
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, l.ID, best, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'slidelink play --level <id>' to play a level.")
}
