package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var colorStyles = buildColorStyles()

// buildColorStyles creates one lipgloss style per colour. Bright colours are
// bold so high tiles stand out.
func buildColorStyles() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(colorCodes)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range colorCodes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		if c.Bright() {
			style = style.Bold(true)
		}
		styles[c] = style
	}
	return styles
}

// RenderScreen styles a Screen for display, one lipgloss render per colour run.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		var b strings.Builder
		for _, span := range s.Spans(y) {
			style, ok := colorStyles[span.Color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			b.WriteString(style.Render(span.Text))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}
