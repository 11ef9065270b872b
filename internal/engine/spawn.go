package engine

import "fmt"

// RandomSource supplies the draws used for spawning tiles. *rand.Rand
// satisfies it; tests inject scripted sources.
type RandomSource interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// Tile is a tile placed on the grid by Spawn.
type Tile struct {
	Index int
	Value int
}

// Row returns the tile's row.
func (t Tile) Row() int { return t.Index / Size }

// Col returns the tile's column.
func (t Tile) Col() int { return t.Index % Size }

// Spawn places a 2 or a 4 in a uniformly chosen empty cell of g. The tile is a
// 4 with probability fourProb. It returns ErrBoardFull if g has no empty cell.
func Spawn(g *Grid, rng RandomSource, fourProb float64) (Tile, error) {
	empty := EmptyCells(*g)
	if len(empty) == 0 {
		return Tile{}, ErrBoardFull
	}

	n := rng.Intn(len(empty))
	if n < 0 || n >= len(empty) {
		return Tile{}, fmt.Errorf("engine: random source returned %d for Intn(%d)", n, len(empty))
	}

	value := 2
	if rng.Float64() < fourProb {
		value = 4
	}

	tile := Tile{Index: empty[n], Value: value}
	g[tile.Index] = value
	return tile, nil
}
