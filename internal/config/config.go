// Package config provides YAML-based configuration loading for the 2048
// front-ends: gameplay tuning, campaign levels, storage, SSH and HTTP servers.
package config

import "time"

// Config is the full application configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Campaign CampaignConfig `yaml:"campaign"`
	TUI      TUIConfig      `yaml:"tui"`
	Storage  StorageConfig  `yaml:"storage"`
	SSH      SSHConfig      `yaml:"ssh"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
}

// GameConfig tunes the classic and endless variants.
type GameConfig struct {
	FourProbability float64 `yaml:"spawn_four_probability"` // Chance a spawned tile is a 4
	WinTile         int     `yaml:"win_tile"`               // Tile that raises the Classic win banner
}

// CampaignConfig lists the campaign levels in play order.
type CampaignConfig struct {
	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig defines one campaign level.
type LevelConfig struct {
	Name      string  `yaml:"name"`
	Target    int     `yaml:"target"`     // Tile value that clears the level
	SpawnFour float64 `yaml:"spawn_four"` // Chance a spawned tile is a 4
}

// TUIConfig holds terminal front-end settings.
type TUIConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// StorageConfig holds the scores database location.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig holds SSH server settings.
type SSHConfig struct {
	Address             string        `yaml:"address"`
	HostKeyPath         string        `yaml:"host_key_path"`
	IdleTimeout         time.Duration `yaml:"idle_timeout"`
	MaxConnectionsPerIP int           `yaml:"max_connections_per_ip"`
}

// HTTPConfig holds HTTP API settings.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	SessionTTL     time.Duration `yaml:"session_ttl"` // Idle games are dropped after this; 0 keeps them
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// FourProbabilityForPreset returns the spawn-four probability for a preset.
// Unknown presets return ok=false.
func FourProbabilityForPreset(preset DifficultyPreset) (p float64, ok bool) {
	switch preset {
	case DifficultyEasy:
		return 0.05, true
	case DifficultyNormal:
		return 0.10, true
	case DifficultyHard:
		return 0.25, true
	default:
		return 0, false
	}
}
