package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fast-bird/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Fast Bird with the full menu",
	Long: `Start Fast Bird in interactive menu mode.

The menu leads to the level picker, the statistics screen, and the
settings. After a match you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc/B        - Back
  Q            - Quit

Examples:
  fastbird menu
  fastbird menu --fps 30
  fastbird menu --db ./fastbird.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	svc, release := tui.OpenServices(flagDBPath, flagConfig, false, newLogger("fastbird"))
	svc.Bell = os.Stdout

	err := tui.RunSession(svc, runtimeConfig())
	release()
	if err != nil {
		fail(err)
	}
}
