package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fast-bird/internal/games/fastbird"
	"github.com/vovakirdan/fast-bird/internal/platform/tui"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

var (
	flagStatsLevel int
	flagStatsLimit int
	flagStatsTUI   bool
	flagStatsClear bool
	flagStatsYes   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show match statistics",
	Long: `Display aggregate statistics and the most recent matches.

Examples:
  fastbird stats
  fastbird stats --level 2
  fastbird stats --tui
  fastbird stats --clear`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLevel, "level", 0, "Only show one level (0 = all)")
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent matches to list")
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Open the interactive statistics screen")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete the match history")
	statsCmd.Flags().BoolVarP(&flagStatsYes, "yes", "y", false, "Do not ask before clearing")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(fmt.Errorf("opening results database: %w", err))
	}
	defer store.Close()

	switch {
	case flagStatsClear:
		clearStats(store)
	case flagStatsTUI:
		cfg := runtimeConfig()
		if _, err := tui.RunStatistics(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			store.Close()
			fail(err)
		}
	default:
		if err := printStats(store, flagStatsLevel, flagStatsLimit); err != nil {
			store.Close()
			fail(err)
		}
	}
}

func clearStats(store *storage.Store) {
	if !flagStatsYes {
		fmt.Print("Delete every recorded match? [y/N] ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Nothing deleted.")
			return
		}
	}
	if err := store.ClearResults(); err != nil {
		store.Close()
		fail(err)
	}
	fmt.Println("Match history cleared.")
}

func printStats(store *storage.Store, level, limit int) error {
	title := "All levels"
	var st storage.Stats
	if level == 0 {
		var err error
		if st, err = store.Stats(); err != nil {
			return err
		}
	} else {
		byLevel, err := store.StatsByLevel()
		if err != nil {
			return err
		}
		st = byLevel[level]
		title = fastbird.LevelName(level)
	}

	fmt.Printf("Statistics - %s\n", title)
	fmt.Println()

	if st.GamesCount == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fastbird play' to record the first one!")
		return nil
	}

	fmt.Printf("  Games:        %s\n", humanize.Comma(int64(st.GamesCount)))
	fmt.Printf("  Wins:         %s\n", humanize.Comma(int64(st.Wins)))
	fmt.Printf("  Win rate:     %d%%\n", st.WinRate)
	fmt.Printf("  Best score:   %s\n", humanize.Comma(int64(st.HighScore)))
	fmt.Printf("  Average:      %s\n", humanize.Comma(int64(st.AverageScore)))
	fmt.Printf("  Last played:  %s\n", humanize.Time(st.LastPlayed))
	fmt.Println()

	// Filtering happens after the fetch, so read the whole history for one level.
	fetch := limit
	if level != 0 {
		fetch = 0
	}
	results, err := store.Results(fetch)
	if err != nil {
		return err
	}

	fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %s\n", "Date", "Level", "Score", "Result", "When")
	fmt.Printf("  %-10s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "----")

	shown := 0
	for _, r := range results {
		if level != 0 && r.Level != level {
			continue
		}
		if limit > 0 && shown >= limit {
			break
		}
		outcome := "Lose"
		if r.Won {
			outcome = "Win"
		}
		fmt.Printf("  %-10s  %-6s  %-6d  %-6s  %s\n",
			r.CreatedAt.Format("02.01.2006"), fastbird.LevelName(r.Level), r.Score, outcome,
			humanize.RelTime(r.CreatedAt, time.Now(), "ago", "from now"))
		shown++
	}
	return nil
}
