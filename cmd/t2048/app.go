package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// app is the configuration and logger shared by every command.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

// loadApp reads .env, the config file and the global flags, then configures
// the game package for new games.
func loadApp(prefix string) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.TUI.TickRate = flagFPS
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}

	game.Configure(game.SettingsFromConfig(cfg))
	return &app{cfg: cfg, logger: logger}, nil
}

// applyDifficulty overrides the spawn-four probability from a preset name.
func (a *app) applyDifficulty(preset string) error {
	if preset == "" {
		return nil
	}
	p, ok := config.FourProbabilityForPreset(config.DifficultyPreset(preset))
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", preset)
	}
	a.cfg.Game.FourProbability = p
	game.Configure(game.SettingsFromConfig(a.cfg))
	return nil
}

// openStore opens the scores database. Failures are logged and nil is
// returned so play can continue without scores.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		a.logger.Warn("could not open scores database", "path", a.cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.TUI.TickRate,
		Seed:     flagSeed,
	}
}

// localOwner names the saved-game slot for local play.
func localOwner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return "local:" + u.Username
	}
	return "local"
}

func closeStore(store *storage.Store) {
	if store != nil {
		_ = store.Close()
	}
}
