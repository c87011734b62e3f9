// Package config provides YAML-based tuning for the match simulation:
// timings, hit boxes and jump geometry. Level tables are not configurable.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FastBirdConfig contains all tunable parameters of a match.
type FastBirdConfig struct {
	Timing   TimingConfig   `yaml:"timing"`
	Geometry GeometryConfig `yaml:"geometry"`
	Feedback FeedbackConfig `yaml:"feedback"`
}

// TimingConfig defines scheduler intervals and delays.
type TimingConfig struct {
	MotionInterval    time.Duration `yaml:"motion_interval"`    // Bird and fox position updates
	CountdownInterval time.Duration `yaml:"countdown_interval"` // Countdown step
	FirstSpawnDelay   time.Duration `yaml:"first_spawn_delay"`
	SpawnDelayMin     time.Duration `yaml:"spawn_delay_min"` // Inclusive
	SpawnDelayMax     time.Duration `yaml:"spawn_delay_max"` // Exclusive
	FoxTravel         time.Duration `yaml:"fox_travel"`
	JumpRise          time.Duration `yaml:"jump_rise"`
	JumpFall          time.Duration `yaml:"jump_fall"`
	LossDelay         time.Duration `yaml:"loss_delay"`
}

// GeometryConfig defines sizes in viewport units.
type GeometryConfig struct {
	JumpHeightRatio float64 `yaml:"jump_height_ratio"` // Fraction of viewport height
	BirdHitbox      float64 `yaml:"bird_hitbox"`       // Square side
	FoxHitbox       float64 `yaml:"fox_hitbox"`        // Square side
	FoxWidth        float64 `yaml:"fox_width"`         // Off-screen margin for entry/exit
}

// FeedbackConfig defines the hit feedback cues.
type FeedbackConfig struct {
	BlinkDuration time.Duration `yaml:"blink_duration"`
	Blinks        int           `yaml:"blinks"`
	HeartFall     time.Duration `yaml:"heart_fall"` // Lost heart stays visible this long
}

// Validate reports the first inconsistent parameter.
func (c FastBirdConfig) Validate() error {
	t := c.Timing
	switch {
	case t.MotionInterval <= 0:
		return errors.New("config: timing.motion_interval must be positive")
	case t.CountdownInterval <= 0:
		return errors.New("config: timing.countdown_interval must be positive")
	case t.FirstSpawnDelay < 0:
		return errors.New("config: timing.first_spawn_delay must not be negative")
	case t.SpawnDelayMin <= 0 || t.SpawnDelayMax < t.SpawnDelayMin:
		return fmt.Errorf("config: invalid spawn delay range [%v, %v)", t.SpawnDelayMin, t.SpawnDelayMax)
	case t.FoxTravel <= 0 || t.JumpRise <= 0 || t.JumpFall <= 0:
		return errors.New("config: fox_travel, jump_rise and jump_fall must be positive")
	case t.LossDelay < 0:
		return errors.New("config: timing.loss_delay must not be negative")
	}

	g := c.Geometry
	if g.JumpHeightRatio <= 0 || g.JumpHeightRatio >= 1 {
		return fmt.Errorf("config: geometry.jump_height_ratio %.2f out of (0, 1)", g.JumpHeightRatio)
	}
	if g.BirdHitbox <= 0 || g.FoxHitbox <= 0 || g.FoxWidth < 0 {
		return errors.New("config: hit boxes must be positive")
	}

	if c.Feedback.Blinks < 0 || c.Feedback.BlinkDuration < 0 || c.Feedback.HeartFall < 0 {
		return errors.New("config: feedback values must not be negative")
	}
	return nil
}
