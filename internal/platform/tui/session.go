package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel is the top-level model of one SSH connection. It shows the
// menu and swaps in a game or the scoreboard until that child asks to go
// back, then rebuilds the menu so new saved games show up.
type SessionModel struct {
	id       string
	username string
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	child    tea.Model // GameModel or ScoreboardModel off the menu screen
	quitting bool
}

// NewSessionModel creates the session for username. Saved games are keyed
// by that name.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	m := SessionModel{
		id:       uuid.NewString(),
		username: username,
		store:    store,
		logger:   logger,
		config:   cfg,
	}
	m.menu = m.newMenu()
	return m
}

// ID returns the session id used in logs.
func (m SessionModel) ID() string {
	return m.id
}

func (m SessionModel) newMenu() MenuModel {
	menu := NewMenuModel(m.store, m.username, m.config)
	menu.embedded = true
	return menu
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}
	if m.screen == screenMenu {
		return m.updateMenu(msg)
	}
	return m.updateChild(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	choice := m.menu.Selected()
	if choice == nil {
		return m, cmd
	}

	if choice.Kind == ChoiceScores {
		scores := NewScoreboardModel(m.store, choice.GameID, m.config.ScreenW, m.config.ScreenH)
		scores.embedded = true
		// the leaderboard is shared between SSH users
		scores.keys.Clear.SetEnabled(false)
		m.child, m.screen = scores, screenScores
		return m, scores.Init()
	}

	g, err := choice.NewGame()
	if err != nil {
		m.logger.Warn("cannot create game", "session", m.id, "game", choice.GameID, "error", err)
		m.menu = m.newMenu()
		return m, nil
	}
	m.logger.Debug("game started", "session", m.id, "game", g.ID(), "resume", choice.Resume != nil)

	gm := NewGameModel(g, m.config, GameOptions{
		Store:  m.store,
		Logger: m.logger,
		Owner:  m.username,
		Resume: choice.Resume,
	})
	m.child, m.screen = gm, screenGame
	return m, gm.Init()
}

// updateChild forwards msg to the game or scoreboard and handles its exit.
func (m SessionModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.child.Update(msg)
	m.child = next

	var quit, back bool
	switch c := next.(type) {
	case GameModel:
		quit, back = c.IsQuitting(), c.BackToMenu()
	case ScoreboardModel:
		quit, back = c.IsQuitting(), c.IsGoingBack()
	}

	switch {
	case quit:
		m.quitting = true
		return m, tea.Quit
	case back:
		m.child, m.screen = nil, screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.screen == screenMenu:
		return m.menu.View()
	default:
		return m.child.View()
	}
}
