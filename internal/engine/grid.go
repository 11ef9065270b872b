// Package engine implements the 2048 grid engine: the merge primitive, the four
// directional moves, random tile spawning and terminal-state detection.
//
// The package is pure logic with no I/O. Rendering, input, persistence and
// prompts live in the platform packages and only call the exported operations.
package engine

import (
	"fmt"
	"strings"
)

const (
	// Size is the grid dimension.
	Size = 4
	// Cells is the number of cells in a grid.
	Cells = Size * Size
	// WinningTile is the tile value that wins the game.
	WinningTile = 2048
	// StartTiles is the number of tiles spawned by a new game.
	StartTiles = 2
	// DefaultFourProbability is the chance that a spawned tile is a 4 instead of a 2.
	DefaultFourProbability = 0.1
)

// Grid is a row-major 4x4 board. Index = row*Size + col. 0 means empty.
type Grid [Cells]int

// GridFromRows builds a grid from a 4x4 row array.
func GridFromRows(rows [Size][Size]int) Grid {
	var g Grid
	for r := range Size {
		for c := range Size {
			g[r*Size+c] = rows[r][c]
		}
	}
	return g
}

// At returns the value at (row, col).
func (g Grid) At(row, col int) int {
	return g[row*Size+col]
}

// Rows returns the grid as a 4x4 array.
func (g Grid) Rows() [Size][Size]int {
	var rows [Size][Size]int
	for i, v := range g {
		rows[i/Size][i%Size] = v
	}
	return rows
}

// Sum returns the total value of all tiles.
func (g Grid) Sum() int {
	total := 0
	for _, v := range g {
		total += v
	}
	return total
}

// String formats the grid as four space-separated rows.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%4d", g.At(r, c))
		}
	}
	return sb.String()
}

// Validate checks that every cell is 0 or a positive power of two.
func (g Grid) Validate() error {
	for i, v := range g {
		if !IsTileValue(v) {
			return fmt.Errorf("%w: cell %d has value %d", ErrInvalidGrid, i, v)
		}
	}
	return nil
}

// IsTileValue reports whether v is 0 or a positive power of two.
func IsTileValue(v int) bool {
	if v == 0 {
		return true
	}
	return v > 0 && v&(v-1) == 0
}
