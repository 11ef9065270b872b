package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// actionBinding ties a key binding to the game action it produces.
type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Bindings are checked in order; the first match wins.
type KeyMapper struct {
	game []actionBinding
	menu []menuBinding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// NewKeyMapper creates a key mapper with the default bindings: arrows, WASD
// and hjkl slide the board.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: []actionBinding{
			{bind("q", "quit", "q", "ctrl+c"), core.ActionQuit},
			{bind("↑/w/k", "up", "up", "w", "k"), core.ActionUp},
			{bind("↓/s/j", "down", "down", "s", "j"), core.ActionDown},
			{bind("←/a/h", "left", "left", "a", "h"), core.ActionLeft},
			{bind("→/d/l", "right", "right", "d", "l"), core.ActionRight},
			{bind("p", "pause", "p", " "), core.ActionPause},
			{bind("r", "restart", "r"), core.ActionRestart},
			{bind("c", "continue", "c"), core.ActionContinue},
			{bind("esc", "menu", "esc", "b"), core.ActionBack},
			{bind("enter", "confirm", "enter"), core.ActionConfirm},
		},
		menu: []menuBinding{
			{bind("q", "quit", "q", "ctrl+c"), MenuActionQuit},
			{bind("↑/k", "up", "up", "w", "k"), MenuActionUp},
			{bind("↓/j", "down", "down", "s", "j"), MenuActionDown},
			{bind("enter", "select", "enter", " "), MenuActionSelect},
			{bind("esc", "back", "esc", "b"), MenuActionBack},
			{bind("tab", "scores", "tab"), MenuActionScoreboard},
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	frame.Set(action)
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}

// ShortHelp lists the movement and session keys, for use with bubbles/help.
func (km *KeyMapper) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(km.game))
	for _, b := range km.game {
		if b.action != core.ActionConfirm {
			out = append(out, b.binding)
		}
	}
	return out
}

// FullHelp groups game keys by movement and everything else.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	var moves, other []key.Binding
	for _, b := range km.game {
		if b.action.IsMove() {
			moves = append(moves, b.binding)
		} else {
			other = append(other, b.binding)
		}
	}
	return [][]key.Binding{moves, other}
}

// MenuHelp lists the menu bindings other than back, whose meaning depends on
// the page.
func (km *KeyMapper) MenuHelp() []key.Binding {
	out := make([]key.Binding, 0, len(km.menu))
	for _, b := range km.menu {
		if b.action != MenuActionBack {
			out = append(out, b.binding)
		}
	}
	return out
}
