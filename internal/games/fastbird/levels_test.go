package fastbird

import (
	"testing"
	"time"
)

func TestLevelConfigFor(t *testing.T) {
	tests := []struct {
		level int
		want  LevelConfig
	}{
		{1, LevelConfig{Lives: 3, ScorePerDodge: 10, Duration: 30 * time.Second}},
		{2, LevelConfig{Lives: 2, ScorePerDodge: 15, Duration: 46 * time.Second}},
		{3, LevelConfig{Lives: 1, ScorePerDodge: 20, Duration: 60 * time.Second}},
		{0, LevelConfig{Lives: 3, ScorePerDodge: 10, Duration: 30 * time.Second}},
		{4, LevelConfig{Lives: 3, ScorePerDodge: 10, Duration: 30 * time.Second}},
		{-7, LevelConfig{Lives: 3, ScorePerDodge: 10, Duration: 30 * time.Second}},
	}

	for _, tt := range tests {
		if got := LevelConfigFor(tt.level); got != tt.want {
			t.Errorf("LevelConfigFor(%d) = %+v, want %+v", tt.level, got, tt.want)
		}
	}
}

func TestLevelNames(t *testing.T) {
	if LevelCount() != 3 {
		t.Fatalf("LevelCount() = %d, want 3", LevelCount())
	}
	if got := LevelName(3); got != "Hard" {
		t.Errorf("LevelName(3) = %q", got)
	}
	if got := LevelName(99); got != "Easy" {
		t.Errorf("LevelName(99) = %q, want fallback", got)
	}
}

func TestUnknownLevelController(t *testing.T) {
	c := NewController(42)
	if c.Config() != LevelConfigFor(1) {
		t.Errorf("config = %+v, want level 1", c.Config())
	}
	if c.Level() != 42 {
		t.Errorf("level = %d, want the requested id", c.Level())
	}
}
