package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ChoiceKind is what the user picked in the menu.
type ChoiceKind int

const (
	ChoicePlay ChoiceKind = iota
	ChoiceScores
)

// MenuChoice holds the user's selection from the main menu.
type MenuChoice struct {
	Kind   ChoiceKind
	GameID string
	Level  int            // 1-based campaign start level, 0 = from the beginning
	Resume *game.Progress // Set when continuing a saved game
}

// NewGame instantiates the variant this choice refers to.
func (c MenuChoice) NewGame() (registry.Game, error) {
	if c.GameID == game.IDCampaign && c.Level > 0 {
		return game.NewCampaign(game.StartAt(c.Level)), nil
	}
	return registry.Create(c.GameID)
}

// menuItem is one selectable line. Items without a choice open the level page.
type menuItem struct {
	label  string
	choice *MenuChoice
}

// menuPage is a titled list with its own cursor.
type menuPage struct {
	title  string
	items  []menuItem
	cursor int
}

func (p *menuPage) move(delta int) {
	p.cursor = (p.cursor + delta + len(p.items)) % len(p.items)
}

// MenuModel lets users pick a mode, a campaign level, a saved game or the
// scoreboard. The level list is a second page on top of the main one.
type MenuModel struct {
	main      menuPage
	levels    menuPage
	onLevels  bool
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model
	selected  *MenuChoice
	quitting  bool
	embedded  bool // Selecting does not quit the program
}

// NewMenuModel creates a menu. Saved games for owner are offered first.
func NewMenuModel(store *storage.Store, owner string, cfg core.RuntimeConfig) MenuModel {
	main := menuPage{title: "2 0 4 8"}
	main.items = append(savedGameItems(store, owner),
		playItem("Classic", game.IDClassic, 0),
		playItem(fmt.Sprintf("Campaign (%d levels)", game.LevelCount()), game.IDCampaign, 0),
		playItem("Endless", game.IDEndless, 0),
		menuItem{label: "Select Level..."},
		menuItem{label: "High Scores", choice: &MenuChoice{Kind: ChoiceScores}},
	)

	levels := menuPage{title: "SELECT LEVEL"}
	for i, lvl := range game.Levels() {
		label := fmt.Sprintf("%2d. %s (Target: %d)", i+1, lvl.Name, lvl.Target)
		levels.items = append(levels.items, playItem(label, game.IDCampaign, i+1))
	}

	return MenuModel{
		main:      main,
		levels:    levels,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

func playItem(label, gameID string, level int) menuItem {
	return menuItem{label: label, choice: &MenuChoice{Kind: ChoicePlay, GameID: gameID, Level: level}}
}

// savedGameItems lists a resume entry for each variant owner has a save for.
func savedGameItems(store *storage.Store, owner string) []menuItem {
	if store == nil || owner == "" {
		return nil
	}
	var items []menuItem
	for _, info := range registry.List() {
		saved, err := store.LoadGame(owner, info.ID)
		if err != nil || saved == nil {
			continue
		}
		items = append(items, menuItem{
			label: fmt.Sprintf("Resume %s (score %d)", info.Title, saved.Score),
			choice: &MenuChoice{
				Kind:   ChoicePlay,
				GameID: info.ID,
				Resume: &game.Progress{
					Grid:    saved.Grid,
					Score:   saved.Score,
					Level:   saved.Level,
					WinSeen: saved.WinSeen,
				},
			},
		})
	}
	return items
}

func (m *MenuModel) page() *menuPage {
	if m.onLevels {
		return &m.levels
	}
	return &m.main
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	p := m.page()
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		if m.onLevels {
			m.onLevels = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		p.move(-1)
	case MenuActionDown:
		p.move(1)
	case MenuActionScoreboard:
		if !m.onLevels {
			return m.choose(MenuChoice{Kind: ChoiceScores})
		}
	case MenuActionSelect:
		item := p.items[p.cursor]
		if item.choice == nil {
			m.onLevels = true
			m.levels.cursor = 0
			return m, nil
		}
		return m.choose(*item.choice)
	}
	return m, nil
}

func (m MenuModel) choose(c MenuChoice) (tea.Model, tea.Cmd) {
	m.selected = &c
	if m.embedded {
		return m, nil
	}
	return m, tea.Quit
}

// View renders the current page centred in the window.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	p := m.page()

	lines := make([]string, 0, len(p.items))
	for i, item := range p.items {
		if i == p.cursor {
			lines = append(lines, menuCurStyle.Render("> "+item.label))
		} else {
			lines = append(lines, menuItemStyle.Render("  "+item.label))
		}
	}
	hint := "esc: quit"
	if m.onLevels {
		hint = "esc: back"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		menuTitleStyle.Render(p.title),
		"",
		strings.Join(lines, "\n"),
		"",
		menuHintStyle.Render(m.help.ShortHelpView(m.keyMapper.MenuHelp())+"  "+hint),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// Selected returns the selection, or nil if still choosing.
func (m MenuModel) Selected() *MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, resized to the last window size seen.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// RunMenu shows the main menu and returns the selection, or nil on quit.
func RunMenu(store *storage.Store, owner string, cfg core.RuntimeConfig) (*MenuChoice, core.RuntimeConfig, error) {
	final, err := tea.NewProgram(NewMenuModel(store, owner, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, cfg, err
	}
	m, ok := final.(MenuModel)
	if !ok || m.IsQuitting() {
		return nil, cfg, nil
	}
	return m.Selected(), m.Config(), nil
}
