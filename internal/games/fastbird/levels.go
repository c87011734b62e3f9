// Package fastbird implements the Fast Bird match: a bird dodges foxes by
// jumping until the countdown runs out or the lives are gone.
package fastbird

import "time"

// LevelConfig holds the parameters of one difficulty level.
type LevelConfig struct {
	Lives         int
	ScorePerDodge int
	Duration      time.Duration
}

// Level describes a selectable level for menus.
type Level struct {
	ID     int
	Name   string
	Config LevelConfig
}

// Levels lists the selectable levels in order.
var Levels = []Level{
	{ID: 1, Name: "Easy", Config: LevelConfig{Lives: 3, ScorePerDodge: 10, Duration: 30 * time.Second}},
	{ID: 2, Name: "Medium", Config: LevelConfig{Lives: 2, ScorePerDodge: 15, Duration: 46 * time.Second}},
	{ID: 3, Name: "Hard", Config: LevelConfig{Lives: 1, ScorePerDodge: 20, Duration: 60 * time.Second}},
}

// LevelConfigFor returns the configuration for a level. Unknown levels fall
// back to level 1.
func LevelConfigFor(level int) LevelConfig {
	for _, l := range Levels {
		if l.ID == level {
			return l.Config
		}
	}
	return Levels[0].Config
}

// LevelCount returns the number of levels.
func LevelCount() int {
	return len(Levels)
}

// LevelName returns the display name of a level, or the level 1 name for unknown levels.
func LevelName(level int) string {
	for _, l := range Levels {
		if l.ID == level {
			return l.Name
		}
	}
	return Levels[0].Name
}
