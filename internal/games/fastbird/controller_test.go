package fastbird

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/fast-bird/internal/config"
	"github.com/vovakirdan/fast-bird/internal/core"
)

const (
	testW      = 400.0
	testH      = 1000.0
	testGround = 800.0
)

// seqSource replays fixed values and then repeats the last one.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	if s.i >= len(s.vals) {
		return s.vals[len(s.vals)-1]
	}
	v := s.vals[s.i]
	s.i++
	return v
}

type countingFeedback struct{ n int }

func (f *countingFeedback) Haptic() { f.n++ }

type vibration bool

func (v vibration) VibrationEnabled() bool { return bool(v) }

type outcome struct {
	won, lost  int
	score, lvl int
}

// newMatch returns an initialized and started controller. The fox always
// enters from the left and spawn attempts after the first are far apart.
func newMatch(t *testing.T, level int, opts ...Option) (*Controller, *outcome) {
	t.Helper()
	base := []Option{WithRand(&seqSource{vals: []float64{0.9, 0.99}})}
	c := NewController(level, append(base, opts...)...)
	out := &outcome{}
	c.OnWin(func(score, lvl int) {
		out.won++
		out.score, out.lvl = score, lvl
	})
	c.OnLose(func(score, lvl int) {
		out.lost++
		out.score, out.lvl = score, lvl
	})
	c.Initialize(testW, testH, testGround)
	c.Start()
	return c, out
}

func noSpawnTuning() config.FastBirdConfig {
	cfg := config.DefaultFastBirdConfig()
	cfg.Timing.FirstSpawnDelay = time.Hour
	return cfg
}

// advanceUntil steps the match in 1ms increments until cond holds.
func advanceUntil(t *testing.T, c *Controller, limit time.Duration, cond func(Snapshot) bool) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < limit; elapsed += time.Millisecond {
		if cond(c.Snapshot()) {
			return
		}
		c.Advance(time.Millisecond)
	}
	if !cond(c.Snapshot()) {
		t.Fatalf("condition not reached within %v", limit)
	}
}

func TestNewController(t *testing.T) {
	c := NewController(2)
	snap := c.Snapshot()

	if snap.Phase != PhaseNotStarted {
		t.Errorf("phase = %v, want not_started", snap.Phase)
	}
	if snap.Lives != 2 || snap.InitialLives != 2 {
		t.Errorf("lives = %d/%d, want 2/2", snap.Lives, snap.InitialLives)
	}
	if snap.TimeRemaining != 46*time.Second {
		t.Errorf("time = %v, want 46s", snap.TimeRemaining)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
}

func TestInitializePlacesActors(t *testing.T) {
	c := NewController(1)
	c.Initialize(testW, testH, testGround)
	snap := c.Snapshot()

	if snap.Bird.X != testW/2 || snap.Bird.Y != testGround {
		t.Errorf("bird = %+v, want centered on ground", snap.Bird)
	}
	if snap.BirdPhase != Grounded {
		t.Errorf("bird phase = %v, want grounded", snap.BirdPhase)
	}
	if snap.FoxActive {
		t.Error("fox should be inactive")
	}
	if snap.Fox.X >= 0 {
		t.Errorf("fox x = %v, want off-screen", snap.Fox.X)
	}
	if snap.Phase != PhaseNotStarted {
		t.Errorf("phase = %v, want not_started", snap.Phase)
	}
}

func TestStartPreconditions(t *testing.T) {
	c := NewController(1)
	c.Start()
	if c.Snapshot().Phase != PhaseNotStarted {
		t.Fatal("start before initialize should be ignored")
	}

	c.Initialize(testW, testH, testGround)
	c.Start()
	c.Advance(time.Second)
	c.Start()

	snap := c.Snapshot()
	if snap.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", snap.Phase)
	}
	if snap.TimeRemaining != 29*time.Second {
		t.Errorf("time = %v, want 29s", snap.TimeRemaining)
	}
}

func TestFirstSpawnAfterTwoSeconds(t *testing.T) {
	c, _ := newMatch(t, 1)

	if got := c.Snapshot().NextSpawnIn; got != 2*time.Second {
		t.Fatalf("next spawn in %v, want 2s", got)
	}

	c.Advance(1999 * time.Millisecond)
	if c.Snapshot().FoxActive {
		t.Fatal("fox spawned early")
	}
	c.Advance(time.Millisecond)
	snap := c.Snapshot()
	if !snap.FoxActive {
		t.Fatal("fox should be active at 2s")
	}
	if snap.FoxFacingLeft {
		t.Error("fox entering from the left should face right")
	}
	if snap.Encounters != 1 {
		t.Errorf("encounters = %d, want 1", snap.Encounters)
	}
}

func TestSpawnDelayRange(t *testing.T) {
	tests := []struct {
		draw float64
		want time.Duration
	}{
		{0, 1500 * time.Millisecond},
		{0.5, 2250 * time.Millisecond},
		{0.75, 2625 * time.Millisecond},
	}

	for _, tt := range tests {
		c := NewController(1, WithRand(&seqSource{vals: []float64{0.9, tt.draw}}))
		c.Initialize(testW, testH, testGround)
		c.Start()
		c.Advance(2 * time.Second)

		if got := c.Snapshot().NextSpawnIn; got != tt.want {
			t.Errorf("draw %v: next spawn in %v, want %v", tt.draw, got, tt.want)
		}
		if tt.want >= 3*time.Second {
			t.Errorf("draw %v: delay %v not below 3s", tt.draw, tt.want)
		}
	}
}

func TestSpawnFromRight(t *testing.T) {
	c := NewController(1, WithRand(&seqSource{vals: []float64{0.1, 0.99}}))
	c.Initialize(testW, testH, testGround)
	c.Start()
	c.Advance(2 * time.Second)

	snap := c.Snapshot()
	if !snap.FoxActive || !snap.FoxFacingLeft {
		t.Fatalf("fox active=%v facingLeft=%v, want entering from the right", snap.FoxActive, snap.FoxFacingLeft)
	}
	if snap.Fox.X <= testW {
		t.Errorf("fox x = %v, want off-screen right", snap.Fox.X)
	}
}

func TestBusySpawnAttemptReschedules(t *testing.T) {
	cfg := config.DefaultFastBirdConfig()
	cfg.Timing.FoxTravel = 10 * time.Second
	c := NewController(1, WithRand(&seqSource{vals: []float64{0.9, 0, 0.5}}), WithTuning(cfg))
	c.Initialize(testW, testH, testGround)
	c.Start()

	// Spawn at 2s, busy attempt at 3.5s.
	c.Advance(3500 * time.Millisecond)
	snap := c.Snapshot()
	if snap.Encounters != 1 {
		t.Fatalf("encounters = %d, want 1", snap.Encounters)
	}
	if snap.NextSpawnIn != 2250*time.Millisecond {
		t.Errorf("next spawn in %v, want 2.25s", snap.NextSpawnIn)
	}
}

func TestJumpArc(t *testing.T) {
	c, _ := newMatch(t, 1, WithTuning(noSpawnTuning()))

	c.Jump()
	if got := c.Snapshot().BirdPhase; got != Rising {
		t.Fatalf("phase = %v, want rising", got)
	}

	c.Jump()
	c.Advance(304 * time.Millisecond)
	snap := c.Snapshot()
	if snap.BirdPhase != Falling {
		t.Fatalf("phase = %v, want falling after rise", snap.BirdPhase)
	}
	apex := testGround - testH*0.35
	if snap.Bird.Y != apex {
		t.Errorf("apex y = %v, want %v", snap.Bird.Y, apex)
	}

	c.Advance(1100 * time.Millisecond)
	snap = c.Snapshot()
	if snap.BirdPhase != Grounded {
		t.Fatalf("phase = %v, want grounded after fall", snap.BirdPhase)
	}
	if snap.Bird.Y != testGround {
		t.Errorf("y = %v, want ground", snap.Bird.Y)
	}

	c.Jump()
	if got := c.Snapshot().BirdPhase; got != Rising {
		t.Errorf("second jump phase = %v, want rising", got)
	}
}

func TestFallStartsWhenRiseEnds(t *testing.T) {
	c, _ := newMatch(t, 1, WithTuning(noSpawnTuning()))

	// The rise ends at 300ms even though the motion tick that sees it lands
	// at 304ms, so 800ms after the jump the bird is exactly halfway down.
	c.Jump()
	c.Advance(800 * time.Millisecond)

	snap := c.Snapshot()
	if snap.BirdPhase != Falling {
		t.Fatalf("phase = %v, want falling", snap.BirdPhase)
	}
	apex := testGround - testH*0.35
	if want := core.Lerp(apex, testGround, 0.5); snap.Bird.Y != want {
		t.Errorf("y = %v, want %v", snap.Bird.Y, want)
	}
}

func TestJumpIgnoredWhenNotPlaying(t *testing.T) {
	c := NewController(1)
	c.Initialize(testW, testH, testGround)
	c.Jump()
	if c.Snapshot().BirdPhase != Grounded {
		t.Fatal("jump before start should be ignored")
	}

	c.Start()
	c.TogglePause()
	c.Jump()
	if c.Snapshot().BirdPhase != Grounded {
		t.Fatal("jump while paused should be ignored")
	}
}

func TestDodgeWhileFalling(t *testing.T) {
	fb := &countingFeedback{}
	c, _ := newMatch(t, 1, WithFeedback(fb))

	// The fox reaches the bird shortly after 4.1s; the bird is then low on its fall.
	c.Advance(3 * time.Second)
	c.Jump()
	c.Advance(1500 * time.Millisecond)

	snap := c.Snapshot()
	if snap.Score != 10 {
		t.Errorf("score = %d, want 10", snap.Score)
	}
	if snap.Lives != 3 {
		t.Errorf("lives = %d, want 3", snap.Lives)
	}
	if snap.FoxActive {
		t.Error("encounter should have ended")
	}
	if snap.Dodges != 1 || snap.Hits != 0 {
		t.Errorf("dodges/hits = %d/%d, want 1/0", snap.Dodges, snap.Hits)
	}
	if fb.n != 0 {
		t.Errorf("haptic fired %d times on a dodge", fb.n)
	}
}

func TestHitWhileGrounded(t *testing.T) {
	fb := &countingFeedback{}
	c, out := newMatch(t, 2, WithFeedback(fb))

	advanceUntil(t, c, 5*time.Second, func(s Snapshot) bool { return s.Hits > 0 })

	snap := c.Snapshot()
	if snap.Lives != 1 {
		t.Errorf("lives = %d, want 1", snap.Lives)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if fb.n != 1 {
		t.Errorf("haptic count = %d, want 1", fb.n)
	}
	if !snap.Blinking {
		t.Error("blink cue should be running")
	}
	if snap.HeartsVisible != 2 {
		t.Errorf("hearts = %d, want 2 until the heart falls", snap.HeartsVisible)
	}

	c.Advance(time.Second)
	snap = c.Snapshot()
	if snap.Blinking {
		t.Error("blink cue should be over")
	}
	if snap.HeartsVisible != 1 {
		t.Errorf("hearts = %d, want 1", snap.HeartsVisible)
	}
	if snap.Phase != PhasePlaying || out.lost != 0 {
		t.Error("match should still be playing")
	}
}

func TestHapticRespectsSettings(t *testing.T) {
	fb := &countingFeedback{}
	c, _ := newMatch(t, 2, WithFeedback(fb), WithSettings(vibration(false)))

	advanceUntil(t, c, 5*time.Second, func(s Snapshot) bool { return s.Hits > 0 })
	if fb.n != 0 {
		t.Errorf("haptic count = %d, want 0 with vibration off", fb.n)
	}
}

func TestLoseAfterDelay(t *testing.T) {
	c, out := newMatch(t, 3)

	advanceUntil(t, c, 5*time.Second, func(s Snapshot) bool { return s.Lives == 0 })
	if c.Snapshot().NextSpawnIn != 0 {
		t.Error("spawner should stop once lives run out")
	}

	c.Advance(1499 * time.Millisecond)
	if c.Snapshot().Phase != PhasePlaying || out.lost != 0 {
		t.Fatal("lost fired before the delay")
	}

	c.Advance(time.Millisecond)
	snap := c.Snapshot()
	if snap.Phase != PhaseLost {
		t.Fatalf("phase = %v, want lost", snap.Phase)
	}
	if out.lost != 1 || out.won != 0 {
		t.Errorf("won/lost = %d/%d, want 0/1", out.won, out.lost)
	}
	if out.lvl != 3 || out.score != 0 {
		t.Errorf("callback = (%d, %d), want (0, 3)", out.score, out.lvl)
	}

	c.Advance(time.Minute)
	if out.lost != 1 || out.won != 0 {
		t.Error("callbacks fired after the match ended")
	}
}

func TestWinWhenTimeRunsOut(t *testing.T) {
	c, out := newMatch(t, 2, WithTuning(noSpawnTuning()))

	c.Advance(46*time.Second - 100*time.Millisecond)
	snap := c.Snapshot()
	if snap.TimeRemaining != 100*time.Millisecond {
		t.Fatalf("time = %v, want 100ms", snap.TimeRemaining)
	}
	if out.won != 0 {
		t.Fatal("won fired early")
	}

	c.Advance(100 * time.Millisecond)
	snap = c.Snapshot()
	if snap.Phase != PhaseWon {
		t.Fatalf("phase = %v, want won", snap.Phase)
	}
	if snap.TimeRemaining != 0 || snap.Lives != 2 {
		t.Errorf("time/lives = %v/%d, want 0/2", snap.TimeRemaining, snap.Lives)
	}
	if out.won != 1 || out.lost != 0 || out.lvl != 2 {
		t.Errorf("outcome = %+v", *out)
	}

	c.Advance(time.Minute)
	c.Jump()
	c.TogglePause()
	if c.Snapshot() != snap {
		t.Error("state changed after the match ended")
	}
}

func TestMissWhenBirdClearsFox(t *testing.T) {
	c, _ := newMatch(t, 1)

	// Airborne for the whole time the fox passes under the bird.
	c.Advance(3950 * time.Millisecond)
	c.Jump()
	c.Advance(3100 * time.Millisecond)

	snap := c.Snapshot()
	if snap.FoxActive {
		t.Error("fox should have left the screen")
	}
	if snap.Score != 0 || snap.Lives != 3 {
		t.Errorf("score/lives = %d/%d, want 0/3", snap.Score, snap.Lives)
	}
	if snap.Encounters != 1 || snap.Dodges != 0 || snap.Hits != 0 {
		t.Errorf("encounters/dodges/hits = %d/%d/%d, want 1/0/0", snap.Encounters, snap.Dodges, snap.Hits)
	}
}

func TestPauseFreezesProgress(t *testing.T) {
	c, _ := newMatch(t, 1)

	c.Advance(2500 * time.Millisecond)
	c.Jump()
	c.Advance(100 * time.Millisecond)

	c.TogglePause()
	frozen := c.Snapshot()
	if !frozen.Paused {
		t.Fatal("expected paused")
	}

	c.Advance(10 * time.Second)
	if got := c.Snapshot(); got != frozen {
		t.Fatalf("snapshot changed while paused:\n got %+v\nwant %+v", got, frozen)
	}

	c.TogglePause()
	c.Advance(100 * time.Millisecond)
	resumed := c.Snapshot()
	if resumed.TimeRemaining != frozen.TimeRemaining-100*time.Millisecond {
		t.Errorf("time = %v, want %v", resumed.TimeRemaining, frozen.TimeRemaining-100*time.Millisecond)
	}
	if resumed.Fox.X <= frozen.Fox.X {
		t.Error("fox should keep moving after resume")
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	c, _ := newMatch(t, 1)
	margin := config.DefaultFastBirdConfig().Geometry.FoxWidth

	c.Advance(3 * time.Second)
	before := c.Snapshot()
	if !before.FoxActive {
		t.Fatal("fox should be crossing")
	}

	c.Resize(2*testW, 2*testH, 2*testGround)
	after := c.Snapshot()

	frac := (before.Fox.X - (-margin)) / ((testW + margin) - (-margin))
	if want := core.Lerp(-margin, 2*testW+margin, frac); math.Abs(after.Fox.X-want) > 1e-9 {
		t.Errorf("fox x = %v, want %v", after.Fox.X, want)
	}
	if after.Fox.Y != 2*testGround {
		t.Errorf("fox y = %v, want %v", after.Fox.Y, 2*testGround)
	}
	if after.Bird != (core.Vec{X: testW, Y: 2 * testGround}) {
		t.Errorf("bird = %+v", after.Bird)
	}
	if after.TimeRemaining != before.TimeRemaining || after.Phase != PhasePlaying {
		t.Errorf("resize changed the match: %+v", after)
	}
	if after.Width != 2*testW || after.GroundY != 2*testGround {
		t.Errorf("geometry = %v x %v", after.Width, after.GroundY)
	}

	c.Advance(100 * time.Millisecond)
	if got := c.Snapshot().TimeRemaining; got != before.TimeRemaining-100*time.Millisecond {
		t.Errorf("time = %v after resize, countdown should continue", got)
	}
}

func TestResizeWhilePausedAndAirborne(t *testing.T) {
	c, _ := newMatch(t, 1, WithTuning(noSpawnTuning()))

	c.Jump()
	c.Advance(304 * time.Millisecond)
	c.TogglePause()
	before := c.Snapshot()

	c.Resize(testW, 2*testH, 2*testGround)
	after := c.Snapshot()
	if !after.Paused || after.BirdPhase != Falling {
		t.Fatalf("resize lost pause or jump: %+v", after)
	}
	wantY := 2*testGround - (testGround-before.Bird.Y)*2
	if math.Abs(after.Bird.Y-wantY) > 1e-9 {
		t.Errorf("bird y = %v, want %v", after.Bird.Y, wantY)
	}

	c.TogglePause()
	c.Advance(1100 * time.Millisecond)
	if snap := c.Snapshot(); snap.BirdPhase != Grounded || snap.Bird.Y != 2*testGround {
		t.Errorf("bird should land on the new ground: %+v", snap.Bird)
	}
}

func TestPauseOnlyWhilePlaying(t *testing.T) {
	c := NewController(1)
	c.Initialize(testW, testH, testGround)
	c.TogglePause()
	if c.Snapshot().Paused {
		t.Fatal("pause before start should be ignored")
	}
}

func TestRestartMatchesFreshStart(t *testing.T) {
	c, _ := newMatch(t, 2)
	advanceUntil(t, c, 5*time.Second, func(s Snapshot) bool { return s.Hits > 0 })
	c.Advance(300 * time.Millisecond)
	c.Jump()

	c.Restart()
	fresh, _ := newMatch(t, 2)

	if got, want := c.Snapshot(), fresh.Snapshot(); got != want {
		t.Fatalf("restart state:\n got %+v\nwant %+v", got, want)
	}
}

func TestRestartDropsPendingLoss(t *testing.T) {
	c, out := newMatch(t, 3)
	advanceUntil(t, c, 5*time.Second, func(s Snapshot) bool { return s.Lives == 0 })

	c.Restart()
	c.Advance(1600 * time.Millisecond)

	snap := c.Snapshot()
	if out.lost != 0 {
		t.Fatal("loss from the previous attempt fired after restart")
	}
	if snap.Phase != PhasePlaying || snap.Lives != 1 {
		t.Errorf("phase/lives = %v/%d, want playing/1", snap.Phase, snap.Lives)
	}
}

func TestRestartAfterWin(t *testing.T) {
	c, out := newMatch(t, 1, WithTuning(noSpawnTuning()))
	c.Advance(30 * time.Second)
	if out.won != 1 {
		t.Fatal("expected a win")
	}

	c.Restart()
	snap := c.Snapshot()
	if snap.Phase != PhasePlaying || snap.TimeRemaining != 30*time.Second {
		t.Errorf("phase/time = %v/%v, want playing/30s", snap.Phase, snap.TimeRemaining)
	}
}

func TestCloseStopsEverything(t *testing.T) {
	c, out := newMatch(t, 3)
	advanceUntil(t, c, 5*time.Second, func(s Snapshot) bool { return s.Lives == 0 })

	c.Close()
	c.Advance(time.Minute)
	c.Restart()
	c.Advance(time.Minute)

	if out.lost != 0 || out.won != 0 {
		t.Errorf("callbacks fired after close: %+v", *out)
	}
}

func TestScoreAndLivesMonotonic(t *testing.T) {
	c := NewController(1, WithRand(&seqSource{vals: []float64{0.3, 0.7, 0.1, 0.9, 0.5, 0.2, 0.8}}))
	c.Initialize(testW, testH, testGround)

	prevScore, prevLives := 0, c.Snapshot().Lives
	c.Subscribe(func(s Snapshot) {
		if s.Score < prevScore {
			t.Errorf("score decreased from %d to %d", prevScore, s.Score)
		}
		if s.Score-prevScore != 0 && s.Score-prevScore != 10 {
			t.Errorf("score jumped by %d", s.Score-prevScore)
		}
		if s.Lives > prevLives || prevLives-s.Lives > 1 {
			t.Errorf("lives went from %d to %d", prevLives, s.Lives)
		}
		if s.Lives < 0 {
			t.Errorf("negative lives %d", s.Lives)
		}
		prevScore, prevLives = s.Score, s.Lives
	})
	c.Start()

	for i := 0; i < 4000 && !c.Snapshot().Phase.Terminal(); i++ {
		if i%37 == 0 {
			c.Jump()
		}
		c.Advance(10 * time.Millisecond)
	}
	if !c.Snapshot().Phase.Terminal() {
		t.Fatal("match should have ended within 40s")
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	c := NewController(1)
	calls := 0
	unsubscribe := c.Subscribe(func(Snapshot) { calls++ })

	c.Initialize(testW, testH, testGround)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	unsubscribe()
	c.Start()
	if calls != 1 {
		t.Errorf("calls = %d after unsubscribe, want 1", calls)
	}
}
