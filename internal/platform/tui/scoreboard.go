package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	statsPanelMinWidth = 78 // Narrower terminals show stats as one line
	statsPanelWidth    = 24
	scoreboardLimit    = 100
)

var (
	sbTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	sbActiveTab  = sbTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	sbBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbWarnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// scoreboardKeys are the scoreboard key bindings.
type scoreboardKeys struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Clear, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Clear, k.Back, k.Quit}}
}

func newScoreboardKeys(allowClear bool) scoreboardKeys {
	k := scoreboardKeys{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "mode")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Clear: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.Clear.SetEnabled(allowClear)
	return k
}

// ScoreboardModel lists the best finished games of each mode.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	current   int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      scoreboardKeys
	width     int
	height    int
	confirm   bool // Clear was pressed once; a second press clears
	quitting  bool
	goingBack bool
	embedded  bool // Back/quit do not stop the program
}

// NewScoreboardModel opens the scoreboard on gameID, or on the first mode
// when gameID is empty or unknown. Clearing scores is only offered locally.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(store != nil),
		width:  width,
		height: height,
	}
	for i, info := range m.modes {
		if info.ID == gameID {
			m.current = i
		}
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) modeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.current].ID
}

func (m ScoreboardModel) wide() bool {
	return m.width >= statsPanelMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	dateW := 14
	if m.wide() {
		dateW = min(max(m.width-statsPanelWidth-44, 12), 20)
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "Max Tile", Width: 9},
			{Title: "Played", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches scores and stats for the current mode.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modeID()
		if m.scores, m.loadErr = m.store.TopScores(id, scoreboardLimit); m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxTile),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.modes)) % len(m.modes)
	m.confirm = false
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles mode switching, scrolling and the two-step clear.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if !m.confirm {
				m.confirm = true
				return m, nil
			}
			m.confirm = false
			m.loadErr = m.store.ClearScores(m.modeID())
			if m.loadErr == nil {
				m.reload()
			}
			return m, nil
		}
		m.confirm = false

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, sbTitleStyle.Render("HIGH SCORES")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.tabs()))
	b.WriteString("\n\n")

	board := sbBoxStyle.Render(m.tableView())
	if m.wide() {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", sbBoxStyle.Width(statsPanelWidth).Render(m.statsPanel()))
	}
	b.WriteString(board)
	b.WriteString("\n")

	switch {
	case m.confirm:
		b.WriteString(sbWarnStyle.Render(fmt.Sprintf("Clear all %s scores? Press x again to confirm.", m.modes[m.current].Title)))
		b.WriteString("\n")
	case m.loadErr != nil:
		b.WriteString(sbWarnStyle.Render("Error: " + m.loadErr.Error()))
		b.WriteString("\n")
	case !m.wide():
		if line := m.statsLine(); line != "" {
			b.WriteString(sbMutedStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString(sbMutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		if i == m.current {
			tabs[i] = sbActiveTab.Render(info.Title)
		} else {
			tabs[i] = sbTabStyle.Render(info.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) tableView() string {
	if m.store == nil {
		return sbMutedStyle.Italic(true).Padding(1, 2).Render("Scores are disabled (no database).")
	}
	if len(m.scores) == 0 {
		return sbMutedStyle.Italic(true).Padding(1, 2).Render("No scores recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// statsPanel renders aggregate stats with the best tile in its board colour.
func (m ScoreboardModel) statsPanel() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return sbMutedStyle.Render("No games yet")
	}
	tile := lipgloss.NewStyle().Bold(true)
	if style, ok := colorStyles[game.TileColor(m.stats.BestTile)]; ok {
		tile = style.Bold(true)
	}

	lines := []string{
		sbTitleStyle.Render("Stats"),
		"",
		fmt.Sprintf("Games      %d", m.stats.GamesCount),
		fmt.Sprintf("Best       %d", m.stats.HighScore),
		"Best tile  " + tile.Render(strconv.Itoa(m.stats.BestTile)),
		fmt.Sprintf("Average    %.0f", m.stats.AvgScore),
		fmt.Sprintf("Total      %d", m.stats.TotalScore),
	}
	if !m.stats.LastPlayed.IsZero() {
		lines = append(lines, "", sbMutedStyle.Render("Last "+m.stats.LastPlayed.Format("Jan 02 15:04")))
	}
	return strings.Join(lines, "\n")
}

// statsLine is the one-line stats summary for narrow terminals.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Games: %d  Best: %d  Best tile: %d  Avg: %.0f",
		m.stats.GamesCount, m.stats.HighScore, m.stats.BestTile, m.stats.AvgScore)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program. It reports whether
// the user went back rather than quitting.
func RunScoreboard(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(
		NewScoreboardModel(store, gameID, width, height),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
