package engine

import "fmt"

// MoveResult is the outcome of sliding a grid in one direction.
type MoveResult struct {
	Grid       Grid
	Moved      bool // at least one cell changed
	ScoreDelta int  // sum of all merge results
}

// lineTable maps each direction to the four lines of cell indices, each line
// listed in travel order (the cell tiles slide towards comes first).
var lineTable = buildLineTable()

func buildLineTable() map[Direction][Size][Size]int {
	table := make(map[Direction][Size][Size]int, len(Directions))
	for _, dir := range Directions {
		var lines [Size][Size]int
		for i := range Size {
			for k := range Size {
				lines[i][k] = lineIndex(dir, i, k)
			}
		}
		table[dir] = lines
	}
	return table
}

// lineIndex returns the grid index of the k-th cell of line i for dir.
func lineIndex(dir Direction, i, k int) int {
	switch dir {
	case Left:
		return i*Size + k
	case Right:
		return i*Size + (Size - 1 - k)
	case Up:
		return k*Size + i
	default: // Down
		return (Size-1-k)*Size + i
	}
}

// mergeLine slides one line towards index 0 and merges equal neighbours.
// Each tile takes part in at most one merge: after a merge the scan skips
// past the merged pair, so [2 2 2 0] becomes [4 2 0 0].
func mergeLine(line [Size]int) (result [Size]int, gain int) {
	var tiles [Size]int
	n := 0
	for _, v := range line {
		if v != 0 {
			tiles[n] = v
			n++
		}
	}

	w := 0
	for i := 0; i < n; i++ {
		if i+1 < n && tiles[i] == tiles[i+1] {
			result[w] = tiles[i] * 2
			gain += result[w]
			i++
		} else {
			result[w] = tiles[i]
		}
		w++
	}

	return result, gain
}

// Move slides every line of g in dir. It neither spawns a tile nor checks
// terminal state; the grid passed in is not modified.
func Move(g Grid, dir Direction) (MoveResult, error) {
	lines, ok := lineTable[dir]
	if !ok {
		return MoveResult{Grid: g}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	out := g
	total := 0
	for _, idx := range lines {
		var line [Size]int
		for k, cell := range idx {
			line[k] = g[cell]
		}

		merged, gain := mergeLine(line)
		for k, cell := range idx {
			out[cell] = merged[k]
		}
		total += gain
	}

	return MoveResult{
		Grid:       out,
		Moved:      out != g,
		ScoreDelta: total,
	}, nil
}
