package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fast-bird/internal/core"
	"github.com/vovakirdan/fast-bird/internal/storage"
)

// press builds the key message a terminal sends for s.
func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "fastbird.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeGame ends its match with a win after finishAt steps.
type fakeGame struct {
	state    core.GameState
	steps    int
	resets   int
	resizes  int
	finishAt int
	outcome  *core.Outcome
	closed   bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Level() int    { return 1 }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{Level: 1, Lives: 3}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	if g.closed {
		return core.StepResult{State: g.state}
	}
	if in.Has(core.ActionRestart) && g.state.GameOver {
		g.Reset(core.RuntimeConfig{})
	}
	if in.Has(core.ActionPause) && !g.state.GameOver {
		g.state.Paused = !g.state.Paused
	}
	if g.state.Paused || g.state.GameOver {
		return core.StepResult{State: g.state}
	}

	g.steps++
	if g.finishAt > 0 && g.steps >= g.finishAt {
		g.state.GameOver = true
		g.state.Won = true
		g.state.Score = 20
		g.outcome = &core.Outcome{Score: 20, Level: 1, Won: true}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) Resize(cols, rows int) { g.resizes++ }

func (g *fakeGame) TakeOutcome() (core.Outcome, bool) {
	if g.outcome == nil {
		return core.Outcome{}, false
	}
	out := *g.outcome
	g.outcome = nil
	return out, true
}

func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Close()                { g.closed = true }
