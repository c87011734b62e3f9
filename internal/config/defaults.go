package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/fastbird.yaml
var defaultFastBirdYAML []byte

// DefaultFastBirdConfig returns the built-in tuning.
func DefaultFastBirdConfig() FastBirdConfig {
	return FastBirdConfig{
		Timing: TimingConfig{
			MotionInterval:    16 * time.Millisecond,
			CountdownInterval: 100 * time.Millisecond,
			FirstSpawnDelay:   2 * time.Second,
			SpawnDelayMin:     1500 * time.Millisecond,
			SpawnDelayMax:     3 * time.Second,
			FoxTravel:         5 * time.Second,
			JumpRise:          300 * time.Millisecond,
			JumpFall:          time.Second,
			LossDelay:         1500 * time.Millisecond,
		},
		Geometry: GeometryConfig{
			JumpHeightRatio: 0.35,
			BirdHitbox:      60,
			FoxHitbox:       100,
			FoxWidth:        100,
		},
		Feedback: FeedbackConfig{
			BlinkDuration: time.Second,
			Blinks:        3,
			HeartFall:     800 * time.Millisecond,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFastBirdYAML
}
