package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables applied on top of the YAML configuration.
const (
	EnvDBPath   = "T2048_DB_PATH"
	EnvSSHAddr  = "T2048_SSH_ADDR"
	EnvHTTPAddr = "T2048_HTTP_ADDR"
	EnvLogLevel = "T2048_LOG_LEVEL"
)

// Load loads the configuration, applies environment overrides and validates it.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	// Files are decoded over the defaults so partial files keep the remaining values.
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "t2048.yaml")); err == nil {
		candidate := DefaultConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	candidate := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &candidate); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return candidate, nil
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error; existing variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides configuration values from T2048_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvSSHAddr); v != "" {
		cfg.SSH.Address = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

// Validate reports the first out-of-range value in the configuration.
func (c Config) Validate() error {
	if c.Game.FourProbability < 0 || c.Game.FourProbability > 1 {
		return fmt.Errorf("config: game.spawn_four_probability %v out of range [0,1]", c.Game.FourProbability)
	}
	if !isPowerOfTwo(c.Game.WinTile) {
		return fmt.Errorf("config: game.win_tile %d is not a power of two", c.Game.WinTile)
	}
	if len(c.Campaign.Levels) == 0 {
		return errors.New("config: campaign.levels is empty")
	}
	for i, lvl := range c.Campaign.Levels {
		if !isPowerOfTwo(lvl.Target) || lvl.Target < 4 {
			return fmt.Errorf("config: campaign level %d (%s): target %d is not a power of two", i+1, lvl.Name, lvl.Target)
		}
		if lvl.SpawnFour < 0 || lvl.SpawnFour > 1 {
			return fmt.Errorf("config: campaign level %d (%s): spawn_four %v out of range [0,1]", i+1, lvl.Name, lvl.SpawnFour)
		}
	}
	if c.TUI.TickRate <= 0 {
		return fmt.Errorf("config: tui.tick_rate must be positive, got %d", c.TUI.TickRate)
	}
	if c.SSH.MaxConnectionsPerIP < 0 {
		return fmt.Errorf("config: ssh.max_connections_per_ip must not be negative, got %d", c.SSH.MaxConnectionsPerIP)
	}
	if c.HTTP.SessionTTL < 0 {
		return fmt.Errorf("config: http.session_ttl must not be negative, got %s", c.HTTP.SessionTTL)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", filename)
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
