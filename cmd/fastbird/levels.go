package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels",
	Long:  `Shows lives, points per dodge, and match length for each level.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Levels:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-2s  %-6s  %-5s  %-6s  %s\n", "ID", "Name", "Lives", "Points", "Time")
	fmt.Printf("  %-2s  %-6s  %-5s  %-6s  %s\n", "--", "----", "-----", "------", "----")

	for _, l := range fastbird.Levels {
		fmt.Printf("  %-2d  %-6s  %-5s  %-6d  %ds\n",
			l.ID, l.Name, fastbird.Hearts(l.Config.Lives, l.Config.Lives),
			l.Config.ScorePerDodge, int(l.Config.Duration.Seconds()))
	}

	fmt.Println()
	fmt.Println("Run 'fastbird play --level <id>' to play a level.")
}
