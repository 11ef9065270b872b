package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// GameOptions configures a GameModel.
type GameOptions struct {
	Store  *storage.Store // nil disables scores and saves
	Logger *log.Logger    // nil discards
	Owner  string         // saved-game owner, empty disables saves
	Resume *game.Progress // continue from here instead of a new board
}

// GameModel runs one game at a fixed tick rate. Keys pressed between two
// ticks are collected into a frame and applied on the next tick.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	resume    *game.Progress
	rec       recorder
	logger    *log.Logger
	keys      *KeyMapper
	frame     core.InputFrame
	state     core.GameState
	finished  bool // the current run's score has been handled
	rank      int
	quitting  bool
	goingBack bool

	standalone bool // back exits the program instead of returning to a menu
}

// NewGameModel wraps g. A zero seed is replaced by the current time.
func NewGameModel(g registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return GameModel{
		game:   g,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		resume: opts.Resume,
		rec:    recorder{store: opts.Store, owner: opts.Owner, logger: opts.Logger},
		logger: opts.Logger,
		keys:   NewKeyMapper(),
	}
}

// Init resets the game, restores the saved progress if any and starts ticking.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.resume != nil {
		if rg, ok := m.game.(resumable); ok {
			if err := rg.Resume(*m.resume); err != nil {
				m.logger.Warn("could not resume saved game", "game", m.game.ID(), "error", err)
			}
		}
	}
	return tickCmd(m.config.TickRate)
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.onKey(msg)
	case TickMsg:
		return m.onTick()
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m GameModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.rec.save(m.game)
		m.quitting = true
		return m, tea.Quit
	}

	// leaving is only allowed once the run has stopped or is paused
	if m.frame.Has(core.ActionBack) && (m.state.Finished() || m.state.Paused) {
		m.rec.save(m.game)
		m.goingBack = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m GameModel) onTick() (tea.Model, tea.Cmd) {
	if m.goingBack {
		return m, nil
	}
	if m.frame.Has(core.ActionRestart) && m.state.Finished() {
		m.endRun()
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.finished, m.rank = false, 0
	} else {
		m.state = m.game.Step(m.frame).State
		if m.state.GameOver {
			m.endRun()
		}
	}
	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// endRun records the current run's score once and drops its save.
func (m *GameModel) endRun() {
	if m.finished {
		return
	}
	m.finished = true
	m.rank = m.rec.finish(m.game, m.state.Score)
	m.rec.forget(m.game.ID())
}

// saveScreenshot writes the plain-text board to ~/.t2048/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Debug("could not create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Debug("could not save screenshot", "error", err)
	}
}

func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to leave the program.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.goingBack
}

// Rank returns the leaderboard position of the finished run, or 0 while it
// is still going or when its score was not stored.
func (m GameModel) Rank() int {
	return m.rank
}

// Run plays a single game in the terminal until the user quits.
func Run(g registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	m := NewGameModel(g, cfg, opts)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
