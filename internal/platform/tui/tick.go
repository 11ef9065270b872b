// Package tui is the Bubble Tea front-end for 2048. It runs a game at a fixed
// tick rate and wraps it in the mode menu and scoreboard, locally or per SSH
// session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one game step.
type TickMsg time.Time

// frameInterval is the delay between ticks at rate per second. Non-positive
// rates fall back to 60.
func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(frameInterval(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
