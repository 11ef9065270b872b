package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			FourProbability: 0.10,
			WinTile:         2048,
		},
		Campaign: CampaignConfig{
			Levels: []LevelConfig{
				{Name: "Warm-up", Target: 128, SpawnFour: 0.10},
				{Name: "Getting Started", Target: 256, SpawnFour: 0.10},
				{Name: "Building Momentum", Target: 512, SpawnFour: 0.10},
				{Name: "The Climb", Target: 1024, SpawnFour: 0.10},
				{Name: "Classic 2048", Target: 2048, SpawnFour: 0.10},
				{Name: "Beyond Limits", Target: 4096, SpawnFour: 0.12},
				{Name: "Master Class", Target: 8192, SpawnFour: 0.15},
				{Name: "Expert Challenge", Target: 8192, SpawnFour: 0.18},
				{Name: "Grandmaster", Target: 8192, SpawnFour: 0.20},
				{Name: "Ultimate Champion", Target: 8192, SpawnFour: 0.25},
			},
		},
		TUI: TUIConfig{
			TickRate: 60,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/t2048.db",
		},
		SSH: SSHConfig{
			Address:             ":23234",
			IdleTimeout:         30 * time.Minute,
			MaxConnectionsPerIP: 2,
		},
		HTTP: HTTPConfig{
			Address:        ":8048",
			RequestTimeout: 10 * time.Second,
			SessionTTL:     time.Hour,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
