package engine

// HasWon reports whether any tile has reached WinningTile.
func HasWon(g Grid) bool {
	for _, v := range g {
		if v >= WinningTile {
			return true
		}
	}
	return false
}

// HasEmptyCell reports whether at least one cell is empty.
func HasEmptyCell(g Grid) bool {
	for _, v := range g {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge reports whether two horizontally or vertically adjacent
// cells hold the same value.
func HasPossibleMerge(g Grid) bool {
	for r := range Size {
		for c := range Size {
			v := g.At(r, c)
			if c < Size-1 && g.At(r, c+1) == v {
				return true
			}
			if r < Size-1 && g.At(r+1, c) == v {
				return true
			}
		}
	}
	return false
}

// CanMove reports whether some direction would change the grid.
func CanMove(g Grid) bool {
	return HasEmptyCell(g) || HasPossibleMerge(g)
}

// IsGameOver reports whether the grid is full and no adjacent pair can merge.
func IsGameOver(g Grid) bool {
	return !CanMove(g)
}

// MaxTile returns the highest tile value on the grid.
func MaxTile(g Grid) int {
	maxVal := 0
	for _, v := range g {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// EmptyCells returns the indices of all empty cells in ascending order.
func EmptyCells(g Grid) []int {
	var cells []int
	for i, v := range g {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}
