package fastbird

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/fast-bird/internal/core"
)

// World units per terminal cell. Hitboxes and jump height are expressed in
// world units, so a cell is taller than it is wide.
const (
	CellW = 10.0
	CellH = 20.0
)

// Game adapts a Controller to the fixed-tick terminal platform. Each Step
// advances match time by one tick period.
type Game struct {
	level int
	opts  []Option

	ctrl    *Controller
	snap    Snapshot
	outcome *core.Outcome
	config  core.RuntimeConfig
	tick    time.Duration
}

// NewGame creates a terminal game for the level. Controller options are
// applied to every match the game starts.
func NewGame(level int, opts ...Option) *Game {
	return &Game{
		level: level,
		opts:  opts,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "fastbird"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fast Bird"
}

// Level returns the level being played.
func (g *Game) Level() int {
	return g.level
}

// Controller exposes the running match.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Reset discards the current match and starts a new one sized to the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.ctrl != nil {
		g.ctrl.Close()
	}
	g.config = cfg

	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.tick = time.Second / time.Duration(rate)

	opts := append([]Option{WithRand(rand.New(rand.NewSource(cfg.Seed)))}, g.opts...)
	g.ctrl = NewController(g.level, opts...)
	g.outcome = nil
	g.ctrl.Subscribe(func(snap Snapshot) { g.snap = snap })
	g.ctrl.OnWin(func(score, level int) {
		g.outcome = &core.Outcome{Score: score, Level: level, Won: true}
	})
	g.ctrl.OnLose(func(score, level int) {
		g.outcome = &core.Outcome{Score: score, Level: level}
	})

	w, h, ground := Viewport(cfg.ScreenW, cfg.ScreenH)
	g.ctrl.Initialize(w, h, ground)
	g.ctrl.Start()
}

// Resize fits the running match to a new terminal size without restarting it.
func (g *Game) Resize(cols, rows int) {
	g.config.ScreenW = cols
	g.config.ScreenH = rows
	if g.ctrl == nil {
		return
	}
	g.ctrl.Resize(Viewport(cols, rows))
}

// TakeOutcome returns the result of a match that ended since the last call.
// Every finished match is reported exactly once.
func (g *Game) TakeOutcome() (core.Outcome, bool) {
	if g.outcome == nil {
		return core.Outcome{}, false
	}
	out := *g.outcome
	g.outcome = nil
	return out, true
}

// Viewport converts a terminal size into world geometry. The ground line
// sits two rows above the bottom to leave room for the help line.
func Viewport(cols, rows int) (width, height, groundY float64) {
	width = float64(cols) * CellW
	height = float64(rows) * CellH
	groundY = float64(groundRow(rows)) * CellH
	return width, height, groundY
}

func groundRow(rows int) int {
	return max(rows-2, 1)
}

// Step applies the frame's input and advances the match by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.ctrl == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) && g.snap.Phase.Terminal() {
		g.ctrl.Restart()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.ctrl.TogglePause()
	}
	if in.Has(core.ActionJump) {
		g.ctrl.Jump()
	}

	g.ctrl.Advance(g.tick)
	return core.StepResult{State: g.State()}
}

// State returns the platform summary of the match.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{Level: g.level}
	}
	snap := g.snap
	return core.GameState{
		Score:    snap.Score,
		Level:    snap.Level,
		Lives:    snap.Lives,
		GameOver: snap.Phase.Terminal(),
		Won:      snap.Phase == PhaseWon,
		Paused:   snap.Paused,
	}
}

// Close stops the running match.
func (g *Game) Close() {
	if g.ctrl != nil {
		g.ctrl.Close()
	}
}
