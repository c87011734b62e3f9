package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fast-bird/internal/platform/tui"
	"github.com/vovakirdan/fast-bird/internal/settings"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change sound and vibration",
	Long: `Show or change the saved preferences.

With --sound or --vibration the value is saved directly; otherwise the
interactive settings screen opens.

Examples:
  fastbird settings
  fastbird settings --vibration=false
  fastbird settings --sound=true --vibration=true`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

func init() {
	settingsCmd.Flags().Bool("sound", true, "Enable sound")
	settingsCmd.Flags().Bool("vibration", true, "Enable vibration (terminal bell on hits)")
	settingsCmd.Flags().Bool("show", false, "Print the current settings and exit")
}

func runSettings(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(fmt.Errorf("opening settings database: %w", err))
	}
	defer store.Close()

	mgr := settings.NewManager(store)
	if err := mgr.Load(); err != nil {
		store.Close()
		fail(err)
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("sound") {
		on, _ := flags.GetBool("sound")
		if err := mgr.SetSound(on); err != nil {
			store.Close()
			fail(err)
		}
		changed = true
	}
	if flags.Changed("vibration") {
		on, _ := flags.GetBool("vibration")
		if err := mgr.SetVibration(on); err != nil {
			store.Close()
			fail(err)
		}
		changed = true
	}

	show, _ := flags.GetBool("show")
	if changed || show {
		printSettings(mgr.Get())
		return
	}

	if _, err := tui.RunSettings(mgr, runtimeConfig()); err != nil {
		store.Close()
		fail(err)
	}
}

func printSettings(s settings.Settings) {
	fmt.Printf("  Sound:      %s\n", onOff(s.SoundEnabled))
	fmt.Printf("  Vibration:  %s\n", onOff(s.VibrationEnabled))
	privacy := "not accepted"
	if s.PrivacyAccepted {
		privacy = "accepted"
	}
	fmt.Printf("  Privacy:    %s\n", privacy)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
