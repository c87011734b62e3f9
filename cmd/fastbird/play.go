package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
	"github.com/vovakirdan/fast-bird/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a Fast Bird match.

Without --level a level picker is shown first.

Controls:
  Space/Up/W - Jump
  P          - Pause
  R          - Restart (after the match ends)
  Esc/B      - Back (while paused or after the match ends)
  Q/Ctrl+C   - Quit

Examples:
  fastbird play
  fastbird play --level 3
  fastbird play --seed 42 --fps 30
  fastbird play --config ./my-fastbird.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level 1-3 (0 = pick interactively)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagLevel < 0 || flagLevel > fastbird.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", flagLevel)
		fmt.Fprintln(os.Stderr, "Run 'fastbird levels' to see available levels.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	logger := newLogger("fastbird")

	level := flagLevel
	if level == 0 {
		picked, err := tui.RunLevelSelector(cfg)
		if err != nil {
			fail(err)
		}
		// User pressed back or quit
		if picked == 0 {
			return
		}
		level = picked
	}

	svc, release := tui.OpenServices(flagDBPath, flagConfig, false, logger)
	svc.Bell = os.Stdout

	runErr := tui.Run(svc.NewGame(level), svc.Store, cfg)

	// Close store before potential exit
	release()

	if runErr != nil {
		fail(runErr)
	}
}
