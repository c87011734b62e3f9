package fastbird

import (
	"time"

	"github.com/vovakirdan/fast-bird/internal/core"
)

// Phase is the lifecycle stage of a match.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePlaying
	PhaseWon
	PhaseLost
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the match has ended.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// VerticalPhase is the bird's jump stage.
type VerticalPhase int

const (
	Grounded VerticalPhase = iota
	Rising
	Falling
)

// String returns a human-readable name.
func (v VerticalPhase) String() string {
	switch v {
	case Grounded:
		return "grounded"
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// Snapshot is the published, read-only view of a match.
type Snapshot struct {
	Level         int
	Phase         Phase
	Paused        bool
	Score         int
	Lives         int
	InitialLives  int
	HeartsVisible int // Trails Lives while the lost-heart cue plays
	TimeRemaining time.Duration

	Bird      core.Vec
	BirdPhase VerticalPhase
	Blinking  bool // Bird hidden for this half of a blink

	Fox           core.Vec
	FoxActive     bool
	FoxFacingLeft bool

	// NextSpawnIn is the match time left until the next spawn attempt,
	// zero when none is scheduled.
	NextSpawnIn time.Duration

	Width, Height, GroundY float64

	Encounters int
	Dodges     int
	Hits       int
}

// Snapshot returns the current published state.
func (c *Controller) Snapshot() Snapshot {
	s := c.state
	snap := Snapshot{
		Level:         c.level,
		Phase:         s.phase,
		Paused:        s.paused,
		Score:         s.score,
		Lives:         s.lives,
		InitialLives:  c.cfg.Lives,
		HeartsVisible: s.heartsVisible,
		TimeRemaining: s.timeRemaining,
		Bird:          s.bird.pos,
		BirdPhase:     s.bird.phase,
		Blinking:      s.blinking,
		Fox:           s.fox.pos,
		FoxActive:     s.fox.active,
		FoxFacingLeft: s.fox.fromRight,
		Width:         c.width,
		Height:        c.height,
		GroundY:       c.groundY,
		Encounters:    s.encounters,
		Dodges:        s.dodges,
		Hits:          s.hits,
	}
	if s.spawnTask.Active() {
		snap.NextSpawnIn = s.nextSpawnAt - c.sched.Now()
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.nextObserver++
	id := c.nextObserver
	c.observers[id] = fn
	return func() {
		delete(c.observers, id)
	}
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, fn := range c.observers {
		fn(snap)
	}
}
