package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvDBPath, EnvSSHAddr, EnvHTTPAddr, EnvLogLevel} {
		t.Setenv(k, "")
	}
	return home
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := DefaultConfig()

	if cfg.Game != def.Game {
		t.Errorf("game = %+v, want %+v", cfg.Game, def.Game)
	}
	if len(cfg.Campaign.Levels) != len(def.Campaign.Levels) {
		t.Fatalf("levels = %d, want %d", len(cfg.Campaign.Levels), len(def.Campaign.Levels))
	}
	for i := range def.Campaign.Levels {
		if cfg.Campaign.Levels[i] != def.Campaign.Levels[i] {
			t.Errorf("level %d = %+v, want %+v", i, cfg.Campaign.Levels[i], def.Campaign.Levels[i])
		}
	}
	if cfg.SSH != def.SSH {
		t.Errorf("ssh = %+v, want %+v", cfg.SSH, def.SSH)
	}
	if cfg.HTTP != def.HTTP {
		t.Errorf("http = %+v, want %+v", cfg.HTTP, def.HTTP)
	}
	if cfg.Storage != def.Storage || cfg.TUI != def.TUI || cfg.Log != def.Log {
		t.Errorf("storage/tui/log mismatch: %+v %+v %+v", cfg.Storage, cfg.TUI, cfg.Log)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  spawn_four_probability: 0.3\nssh:\n  idle_timeout: 5m\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.FourProbability != 0.3 {
		t.Errorf("four probability = %v, want 0.3", cfg.Game.FourProbability)
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout = %v, want 5m", cfg.SSH.IdleTimeout)
	}
	// Untouched values keep their defaults
	if cfg.Game.WinTile != 2048 {
		t.Errorf("win tile = %d, want 2048", cfg.Game.WinTile)
	}
	if cfg.HTTP.Address != ":8048" {
		t.Errorf("http address = %q, want :8048", cfg.HTTP.Address)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	isolateHome(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("tui:\n  tick_rate: 30\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TUI.TickRate != 30 {
		t.Errorf("tick rate = %d, want 30", cfg.TUI.TickRate)
	}
}

func TestApplyEnv(t *testing.T) {
	isolateHome(t)
	t.Setenv(EnvDBPath, "/tmp/x.db")
	t.Setenv(EnvSSHAddr, ":2222")
	t.Setenv(EnvHTTPAddr, ":9000")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.DBPath != "/tmp/x.db" {
		t.Errorf("db path = %q", cfg.Storage.DBPath)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("ssh address = %q", cfg.SSH.Address)
	}
	if cfg.HTTP.Address != ":9000" {
		t.Errorf("http address = %q", cfg.HTTP.Address)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("T2048_HTTP_ADDR=:7777\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Unsetenv(EnvHTTPAddr); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv(EnvHTTPAddr); got != ":7777" {
		t.Errorf("%s = %q, want :7777", EnvHTTPAddr, got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"probability below zero", func(c *Config) { c.Game.FourProbability = -0.1 }},
		{"probability above one", func(c *Config) { c.Game.FourProbability = 1.5 }},
		{"win tile not power of two", func(c *Config) { c.Game.WinTile = 2000 }},
		{"empty levels", func(c *Config) { c.Campaign.Levels = nil }},
		{"level target not power of two", func(c *Config) { c.Campaign.Levels[0].Target = 100 }},
		{"level spawn four out of range", func(c *Config) { c.Campaign.Levels[2].SpawnFour = 2 }},
		{"zero tick rate", func(c *Config) { c.TUI.TickRate = 0 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFourProbabilityForPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   float64
		ok     bool
	}{
		{DifficultyEasy, 0.05, true},
		{DifficultyNormal, 0.10, true},
		{DifficultyHard, 0.25, true},
		{"insane", 0, false},
	}

	for _, tt := range tests {
		got, ok := FourProbabilityForPreset(tt.preset)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FourProbabilityForPreset(%q) = %v, %v; want %v, %v", tt.preset, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := isolateHome(t)
	if got := ExpandHome("~/.t2048/t2048.db"); got != filepath.Join(home, ".t2048", "t2048.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandHome changed absolute path: %q", got)
	}
}
