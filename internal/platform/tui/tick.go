// Package tui provides the Bubble Tea front end for Fast Bird: the game
// loop, menus, statistics and settings screens, and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Run identifies the
// game model that scheduled it so a stale tick chain cannot drive a new game.
type TickMsg struct {
	At  time.Time
	Run uint64
}

var runSeq atomic.Uint64

// nextRun returns a fresh tick chain identifier.
func nextRun() uint64 {
	return runSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, run uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Run: run}
	})
}
