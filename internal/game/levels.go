// Package game runs the 2048 engine as a tick-driven registry game with
// classic, campaign and endless modes.
package game

import (
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Target tile value to reach
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Settings are the process-wide gameplay parameters shared by all new games.
type Settings struct {
	FourProbability float64
	WinTile         int
	Levels          []Level
}

var settings = DefaultSettings()

// DefaultSettings returns the built-in gameplay parameters.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}

// SettingsFromConfig converts the game and campaign sections of cfg.
func SettingsFromConfig(cfg config.Config) Settings {
	levels := make([]Level, len(cfg.Campaign.Levels))
	for i, lc := range cfg.Campaign.Levels {
		levels[i] = Level{ID: i + 1, Name: lc.Name, Target: lc.Target, Spawn4: lc.SpawnFour}
	}
	winTile := cfg.Game.WinTile
	if winTile <= 0 {
		winTile = engine.WinningTile
	}
	return Settings{
		FourProbability: cfg.Game.FourProbability,
		WinTile:         winTile,
		Levels:          levels,
	}
}

// Configure replaces the gameplay parameters. It must be called before games
// are created, typically once at startup.
func Configure(s Settings) {
	if len(s.Levels) == 0 {
		s.Levels = DefaultSettings().Levels
	}
	settings = s
}

// CurrentSettings returns the active gameplay parameters.
func CurrentSettings() Settings {
	return settings
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(settings.Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(settings.Levels) {
		return nil
	}
	return &settings.Levels[index]
}

// Levels returns a copy of the campaign levels.
func Levels() []Level {
	return append([]Level(nil), settings.Levels...)
}
