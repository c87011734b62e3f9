package fastbird

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fast-bird/internal/config"
	"github.com/vovakirdan/fast-bird/internal/core"
	"github.com/vovakirdan/fast-bird/internal/sched"
)

// Source supplies uniform random numbers in [0, 1).
// *rand.Rand satisfies it; tests pass fixed sequences.
type Source interface {
	Float64() float64
}

// Feedback receives the haptic cue of a damaging hit.
type Feedback interface {
	Haptic()
}

// SettingsReader exposes the one user setting the match consults.
type SettingsReader interface {
	VibrationEnabled() bool
}

// Option customizes a Controller.
type Option func(*Controller)

// WithRand sets the random source used for spawn delays and entry sides.
func WithRand(src Source) Option {
	return func(c *Controller) { c.rng = src }
}

// WithFeedback sets the haptic feedback sink.
func WithFeedback(f Feedback) Option {
	return func(c *Controller) { c.feedback = f }
}

// WithSettings sets the settings consulted for vibration.
func WithSettings(s SettingsReader) Option {
	return func(c *Controller) { c.settings = s }
}

// WithTuning overrides the default timings and geometry.
func WithTuning(t config.FastBirdConfig) Option {
	return func(c *Controller) { c.tuning = t }
}

// WithLogger sets the logger for match lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

type birdMotion struct {
	pos        core.Vec
	phase      VerticalPhase
	phaseStart time.Duration
	apexY      float64
	task       *sched.Task
}

type foxEncounter struct {
	pos        core.Vec
	fromRight  bool
	startX     float64
	endX       float64
	startTime  time.Duration
	active     bool
	resolved   bool
	dodgeGiven bool
	task       *sched.Task
}

type matchState struct {
	phase         Phase
	paused        bool
	score         int
	lives         int
	heartsVisible int
	timeRemaining time.Duration
	blinking      bool

	bird birdMotion
	fox  foxEncounter

	nextSpawnAt   time.Duration
	spawnTask     *sched.Task
	countdownTask *sched.Task
	blinkTask     *sched.Task

	encounters int
	dodges     int
	hits       int
}

// Controller owns the authoritative state of one match. All methods must be
// called from a single goroutine; the platform drives time through Advance.
// Every precondition failure is a silent no-op.
type Controller struct {
	level    int
	cfg      LevelConfig
	tuning   config.FastBirdConfig
	rng      Source
	feedback Feedback
	settings SettingsReader
	logger   *log.Logger
	sched    *sched.Scheduler

	width, height, groundY float64
	initialized            bool
	closed                 bool

	state matchState

	onWin  func(score, level int)
	onLose func(score, level int)

	observers    map[int]func(Snapshot)
	nextObserver int
}

// NewController creates a match for the given level in the NotStarted phase.
func NewController(level int, opts ...Option) *Controller {
	c := &Controller{
		level:     level,
		cfg:       LevelConfigFor(level),
		tuning:    config.DefaultFastBirdConfig(),
		sched:     sched.New(),
		observers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.resetState()
	return c
}

// Level returns the level the match was created for.
func (c *Controller) Level() int {
	return c.level
}

// Config returns the resolved level configuration.
func (c *Controller) Config() LevelConfig {
	return c.cfg
}

// OnWin sets the callback invoked once when the countdown ends with lives left.
func (c *Controller) OnWin(fn func(score, level int)) {
	c.onWin = fn
}

// OnLose sets the callback invoked once when the last life is lost.
func (c *Controller) OnLose(fn func(score, level int)) {
	c.onLose = fn
}

// Initialize records the viewport geometry and places the bird at the
// horizontal center on the ground and the fox off-screen.
func (c *Controller) Initialize(width, height, groundY float64) {
	if c.closed {
		return
	}
	c.width = width
	c.height = height
	c.groundY = groundY
	c.initialized = true
	c.placeActors()
	c.notify()
}

// Start begins the countdown and the fox spawner. It only acts once, on an
// initialized match that has not started yet.
func (c *Controller) Start() {
	if c.closed || !c.initialized || c.state.phase != PhaseNotStarted {
		return
	}
	s := &c.state
	s.phase = PhasePlaying
	s.paused = false

	s.countdownTask = c.sched.Every(c.tuning.Timing.CountdownInterval, c.tickCountdown)
	c.scheduleSpawn(c.tuning.Timing.FirstSpawnDelay)

	c.logger.Debug("match started", "level", c.level, "lives", s.lives, "duration", s.timeRemaining)
	c.notify()
}

// Restart drops every pending task and starts the same level from scratch.
func (c *Controller) Restart() {
	if c.closed || !c.initialized {
		return
	}
	c.sched.CancelAll()
	c.resetState()
	c.placeActors()
	c.Start()
}

// Resize moves the match to new viewport geometry. Actors keep their place
// relative to the ground and the screen edges, and every timer keeps its
// progress.
func (c *Controller) Resize(width, height, groundY float64) {
	if c.closed || !c.initialized {
		return
	}
	s := &c.state

	scaleY := 1.0
	if c.height > 0 {
		scaleY = height / c.height
	}
	s.bird.pos = core.Vec{X: width / 2, Y: groundY - (c.groundY-s.bird.pos.Y)*scaleY}
	if s.bird.phase != Grounded {
		s.bird.apexY = groundY - height*c.tuning.Geometry.JumpHeightRatio
	}

	margin := c.tuning.Geometry.FoxWidth
	if s.fox.active {
		frac := 0.0
		if span := s.fox.endX - s.fox.startX; span != 0 {
			frac = (s.fox.pos.X - s.fox.startX) / span
		}
		startX, endX := -margin, width+margin
		if s.fox.fromRight {
			startX, endX = endX, startX
		}
		s.fox.startX, s.fox.endX = startX, endX
		s.fox.pos = core.Vec{X: core.Lerp(startX, endX, frac), Y: groundY}
	} else {
		s.fox.pos = core.Vec{X: -margin, Y: groundY}
	}

	c.width = width
	c.height = height
	c.groundY = groundY
	c.notify()
}

// Jump launches the bird if it is on the ground during unpaused play.
func (c *Controller) Jump() {
	s := &c.state
	if c.closed || s.phase != PhasePlaying || s.paused || s.bird.phase != Grounded {
		return
	}

	s.bird.phase = Rising
	s.bird.phaseStart = c.sched.Now()
	s.bird.apexY = c.groundY - c.height*c.tuning.Geometry.JumpHeightRatio
	s.bird.task = c.sched.Every(c.tuning.Timing.MotionInterval, c.updateBird)

	c.checkCollision()
	c.notify()
}

// TogglePause suspends or resumes the match. Nothing advances while paused,
// so resuming continues exactly where the match stopped.
func (c *Controller) TogglePause() {
	if c.closed || c.state.phase != PhasePlaying {
		return
	}
	c.state.paused = !c.state.paused
	c.logger.Debug("pause toggled", "paused", c.state.paused)
	c.notify()
}

// Advance moves match time forward by dt. Time does not pass before the
// match starts, while paused, or after it ended.
func (c *Controller) Advance(dt time.Duration) {
	if c.closed || c.state.phase != PhasePlaying || c.state.paused {
		return
	}
	c.sched.Advance(dt)
}

// Close tears the match down. No callback fires afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.sched.CancelAll()
	c.onWin = nil
	c.onLose = nil
	c.observers = make(map[int]func(Snapshot))
}

func (c *Controller) resetState() {
	c.state = matchState{
		phase:         PhaseNotStarted,
		lives:         c.cfg.Lives,
		heartsVisible: c.cfg.Lives,
		timeRemaining: c.cfg.Duration,
	}
}

func (c *Controller) placeActors() {
	s := &c.state
	s.bird = birdMotion{
		pos:   core.Vec{X: c.width / 2, Y: c.groundY},
		phase: Grounded,
	}
	s.fox = foxEncounter{
		pos: core.Vec{X: -c.tuning.Geometry.FoxWidth, Y: c.groundY},
	}
}

func (c *Controller) tickCountdown() {
	s := &c.state
	if s.phase != PhasePlaying {
		return
	}

	s.timeRemaining -= c.tuning.Timing.CountdownInterval
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.countdownTask.Cancel()
		if s.lives > 0 {
			c.finish(PhaseWon)
			return
		}
	}
	c.notify()
}

func (c *Controller) scheduleSpawn(delay time.Duration) {
	s := &c.state
	s.nextSpawnAt = c.sched.Now() + delay
	s.spawnTask = c.sched.After(delay, c.spawnAttempt)
}

func (c *Controller) spawnAttempt() {
	s := &c.state
	if s.phase != PhasePlaying || s.lives == 0 {
		return
	}
	if !s.fox.active {
		c.spawnFox()
	}
	c.scheduleSpawn(c.randomSpawnDelay())
	c.notify()
}

func (c *Controller) randomSpawnDelay() time.Duration {
	lo := c.tuning.Timing.SpawnDelayMin
	hi := c.tuning.Timing.SpawnDelayMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(c.rng.Float64()*float64(hi-lo))
}

func (c *Controller) spawnFox() {
	s := &c.state
	margin := c.tuning.Geometry.FoxWidth
	fromRight := c.rng.Float64() < 0.5

	startX, endX := -margin, c.width+margin
	if fromRight {
		startX, endX = endX, startX
	}

	s.fox = foxEncounter{
		pos:       core.Vec{X: startX, Y: c.groundY},
		fromRight: fromRight,
		startX:    startX,
		endX:      endX,
		startTime: c.sched.Now(),
		active:    true,
	}
	s.fox.task = c.sched.Every(c.tuning.Timing.MotionInterval, c.updateFox)
	s.encounters++
}

func (c *Controller) updateFox() {
	s := &c.state
	if s.phase != PhasePlaying || !s.fox.active {
		return
	}

	progress := float64(c.sched.Now()-s.fox.startTime) / float64(c.tuning.Timing.FoxTravel)
	s.fox.pos.X = core.Lerp(s.fox.startX, s.fox.endX, core.EaseInOutQuad(progress))

	if !s.fox.resolved {
		c.checkCollision()
	}

	// A full traverse without a resolution is a miss.
	if s.fox.active && progress >= 1 {
		c.endEncounter()
	}
	c.notify()
}

func (c *Controller) updateBird() {
	s := &c.state
	if s.phase != PhasePlaying {
		return
	}
	b := &s.bird
	elapsed := float64(c.sched.Now() - b.phaseStart)

	switch b.phase {
	case Rising:
		progress := elapsed / float64(c.tuning.Timing.JumpRise)
		b.pos.Y = core.Lerp(c.groundY, b.apexY, core.EaseInOutQuad(progress))
		c.checkCollision()
		if progress >= 1 {
			b.phase = Falling
			b.phaseStart += c.tuning.Timing.JumpRise
		}

	case Falling:
		progress := elapsed / float64(c.tuning.Timing.JumpFall)
		b.pos.Y = core.Lerp(b.apexY, c.groundY, core.EaseInOutQuad(progress))
		c.checkCollision()
		if progress >= 1 {
			b.phase = Grounded
			b.pos.Y = c.groundY
			b.task.Cancel()
		}

	default:
		b.task.Cancel()
	}
	c.notify()
}

func (c *Controller) checkCollision() {
	s := &c.state
	if s.phase != PhasePlaying || s.paused || !s.fox.active || s.fox.resolved || s.lives == 0 {
		return
	}

	g := c.tuning.Geometry
	birdBox := core.BoxAround(s.bird.pos, g.BirdHitbox, g.BirdHitbox)
	foxBox := core.BoxAround(s.fox.pos, g.FoxHitbox, g.FoxHitbox)
	if !birdBox.Intersects(foxBox) {
		return
	}

	s.fox.resolved = true
	if s.bird.phase == Falling {
		c.resolveDodge()
	} else {
		c.resolveHit()
	}
}

func (c *Controller) resolveDodge() {
	s := &c.state
	if s.fox.dodgeGiven {
		return
	}
	s.fox.dodgeGiven = true
	s.score += c.cfg.ScorePerDodge
	s.dodges++
	c.endEncounter()
	c.logger.Debug("dodge", "score", s.score)
}

func (c *Controller) resolveHit() {
	s := &c.state
	c.endEncounter()

	s.lives--
	s.hits++
	if c.feedback != nil && (c.settings == nil || c.settings.VibrationEnabled()) {
		c.feedback.Haptic()
	}
	c.startBlink()

	lives := s.lives
	c.sched.After(c.tuning.Feedback.HeartFall, func() {
		c.state.heartsVisible = lives
		c.notify()
	})

	c.logger.Debug("hit", "lives", s.lives)
	if s.lives == 0 {
		s.spawnTask.Cancel()
		c.sched.After(c.tuning.Timing.LossDelay, func() {
			c.finish(PhaseLost)
		})
	}
}

func (c *Controller) endEncounter() {
	s := &c.state
	s.fox.active = false
	s.fox.task.Cancel()
	s.fox.task = nil
}

func (c *Controller) startBlink() {
	s := &c.state
	s.blinkTask.Cancel()

	blinks := c.tuning.Feedback.Blinks
	if blinks <= 0 || c.tuning.Feedback.BlinkDuration <= 0 {
		s.blinking = false
		return
	}

	// Each blink is one visible and one hidden half period.
	toggles := 0
	half := c.tuning.Feedback.BlinkDuration / time.Duration(blinks*2)
	if half <= 0 {
		half = time.Millisecond
	}
	s.blinking = true
	var task *sched.Task
	task = c.sched.Every(half, func() {
		toggles++
		c.state.blinking = toggles%2 == 0
		if toggles >= blinks*2 {
			c.state.blinking = false
			task.Cancel()
		}
		c.notify()
	})
	s.blinkTask = task
}

func (c *Controller) finish(phase Phase) {
	s := &c.state
	if s.phase != PhasePlaying {
		return
	}
	s.phase = phase
	s.paused = false
	s.blinking = false
	s.heartsVisible = s.lives
	c.sched.CancelAll()

	c.logger.Debug("match finished", "result", phase, "score", s.score, "level", c.level)
	c.notify()

	switch phase {
	case PhaseWon:
		if c.onWin != nil {
			c.onWin(s.score, c.level)
		}
	case PhaseLost:
		if c.onLose != nil {
			c.onLose(s.score, c.level)
		}
	}
}
