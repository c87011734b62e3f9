package core

// RuntimeConfig contains configuration passed to a game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform needs after every tick.
type GameState struct {
	Score    int
	Level    int
	Lives    int
	GameOver bool // Won or lost
	Won      bool
	Paused   bool
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Outcome is the result of a finished match. Games report it once.
type Outcome struct {
	Score int
	Level int
	Won   bool
}
