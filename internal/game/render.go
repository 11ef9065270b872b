package game

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell including the left border
	cellHeight = 2 // Height of each cell including the top border
	hudHeight  = 3

	boardW = engine.Size*cellWidth + 1
	boardH = engine.Size*cellHeight + 1

	minScreenW = boardW + 2
	minScreenH = hudHeight + 1 + boardH + 2
)

// tileColors maps tile values to colours; larger tiles use tileColorMax.
var tileColors = map[int]core.Color{
	2:    core.ColorWhite,
	4:    core.ColorBrightWhite,
	8:    core.ColorYellow,
	16:   core.ColorOrange,
	32:   core.ColorBrightRed,
	64:   core.ColorRed,
	128:  core.ColorBrightYellow,
	256:  core.ColorBrightGreen,
	512:  core.ColorGreen,
	1024: core.ColorBrightCyan,
	2048: core.ColorBrightMagenta,
}

const tileColorMax = core.ColorMagenta

// TileColor returns the display colour of a tile value.
func TileColor(v int) core.Color {
	if c, ok := tileColors[v]; ok {
		return c
	}
	if v > engine.WinningTile {
		return tileColorMax
	}
	return core.ColorDefault
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.eng == nil {
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	g.renderBoard(dst, boardX, boardY)
	if controls := g.Controls(); len(controls) <= g.screenW {
		dst.DrawTextColor((g.screenW-len(controls))/2, boardY+boardH+1, controls, core.ColorGray)
	}
	g.renderOverlays(dst, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and mode info.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", g.eng.Score())
	if g.lastMoveDelta > 0 {
		scoreStr += fmt.Sprintf(" +%d", g.lastMoveDelta)
	}
	dst.DrawText(boardX, 1, scoreStr)

	var infoStr string
	switch g.mode {
	case ModeCampaign:
		infoStr = fmt.Sprintf("Level %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.currentTarget)
	default:
		infoStr = fmt.Sprintf("Max: %d", g.eng.MaxTile())
	}
	infoX := max(boardX+boardW-len(infoStr), boardX)
	if g.mode == ModeCampaign {
		// Too wide to share a line with the score
		dst.DrawText(infoX, 2, infoStr)
		return
	}
	dst.DrawText(infoX, 1, infoStr)
}

// renderBoard draws the 4x4 grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range engine.Size + 1 {
		for x := range engine.Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			dst.SetColor(px, py, junction(x, y), core.ColorGray)
			if x < engine.Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < engine.Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	grid := g.eng.Grid()
	for i, val := range grid {
		if val == 0 {
			continue
		}
		row, col := i/engine.Size, i%engine.Size
		cellX := boardX + col*cellWidth + 1
		cellY := boardY + row*cellHeight + 1

		valStr := strconv.Itoa(val)
		padLeft := max((cellWidth-1-len(valStr))/2, 0)
		dst.DrawTextColor(cellX+padLeft, cellY, valStr, TileColor(val))

		if g.lastSpawned != nil && g.lastSpawned.Index == i {
			dst.SetColor(cellX, cellY, '·', core.ColorGray)
		}
	}
}

// junction returns the box-drawing rune at grid intersection (x, y).
func junction(x, y int) rune {
	last := engine.Size
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == last:
		return '┐'
	case y == last && x == 0:
		return '└'
	case y == last && x == last:
		return '┘'
	case y == 0:
		return '┬'
	case y == last:
		return '┴'
	case x == 0:
		return '├'
	case x == last:
		return '┤'
	default:
		return '┼'
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, core.ColorBrightWhite, "PAUSED", "Press P to resume")

	case g.levelCleared:
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		next := "Final level complete!"
		if g.levelIndex < LevelCount()-1 {
			next = fmt.Sprintf("Next: Level %d", g.levelIndex+2)
		}
		drawOverlay(dst, centerX, centerY, core.ColorBrightGreen, targetStr, next)

	case g.campaignDone:
		drawOverlay(dst, centerX, centerY, core.ColorBrightMagenta,
			"CAMPAIGN COMPLETE!", fmt.Sprintf("Score: %d", g.eng.Score()), "Press R to restart")

	case g.awaitingWin:
		drawOverlay(dst, centerX, centerY, core.ColorBrightYellow,
			fmt.Sprintf("You reached %d!", settings.WinTile), "C: continue  R: restart")

	case g.gameOver:
		drawOverlay(dst, centerX, centerY, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", g.eng.Score()),
			fmt.Sprintf("Max tile: %d", g.eng.MaxTile()),
			"Press R to restart")
	}
}

// drawOverlay draws a boxed block of lines centred on (centerX, centerY).
func drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.RectAround(centerX, centerY, maxLen+4, len(lines)+2)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = c
		}
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, color)
	}
}
