package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLine(t *testing.T) {
	tests := []struct {
		name     string
		input    [Size]int
		expected [Size]int
		score    int
	}{
		{"simple merge", [Size]int{2, 2, 0, 0}, [Size]int{4, 0, 0, 0}, 4},
		{"no cascade on triple", [Size]int{2, 2, 2, 0}, [Size]int{4, 2, 0, 0}, 4},
		{"double merge", [Size]int{2, 2, 2, 2}, [Size]int{4, 4, 0, 0}, 8},
		{"merged tile not re-merged", [Size]int{2, 2, 4, 0}, [Size]int{4, 4, 0, 0}, 4},
		{"merged tile not re-merged with gap", [Size]int{4, 0, 4, 8}, [Size]int{8, 8, 0, 0}, 8},
		{"one merge per tile", [Size]int{4, 4, 4, 4}, [Size]int{8, 8, 0, 0}, 16},
		{"no merge possible", [Size]int{2, 4, 8, 16}, [Size]int{2, 4, 8, 16}, 0},
		{"slide with gap", [Size]int{0, 0, 2, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", [Size]int{2, 0, 0, 2}, [Size]int{4, 0, 0, 0}, 4},
		{"no change needed", [Size]int{4, 2, 0, 0}, [Size]int{4, 2, 0, 0}, 0},
		{"empty row", [Size]int{0, 0, 0, 0}, [Size]int{0, 0, 0, 0}, 0},
		{"single tile", [Size]int{0, 4, 0, 0}, [Size]int{4, 0, 0, 0}, 0},
		{"merge in the middle", [Size]int{2, 8, 8, 2}, [Size]int{2, 16, 2, 0}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := mergeLine(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.Equal(t, tt.score, score)
		})
	}
}

func TestMergeLineSettledIsIdentity(t *testing.T) {
	settled := [][Size]int{
		{2, 4, 8, 16},
		{4, 2, 0, 0},
		{1024, 0, 0, 0},
		{0, 0, 0, 0},
		{2, 4, 2, 4},
	}
	for _, line := range settled {
		result, score := mergeLine(line)
		assert.Equal(t, line, result)
		assert.Zero(t, score)
	}
}

func TestMoveLeft(t *testing.T) {
	g := GridFromRows([Size][Size]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := GridFromRows([Size][Size]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	})

	res, err := Move(g, Left)
	require.NoError(t, err)
	assert.Equal(t, expected, res.Grid, "got\n%v", res.Grid)
	assert.True(t, res.Moved)
	assert.Equal(t, 4+8+4+4, res.ScoreDelta)
}

func TestMoveRight(t *testing.T) {
	g := GridFromRows([Size][Size]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})
	expected := GridFromRows([Size][Size]int{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	})

	res, err := Move(g, Right)
	require.NoError(t, err)
	assert.Equal(t, expected, res.Grid, "got\n%v", res.Grid)
	assert.True(t, res.Moved)
}

func TestMoveRightMergesFromTheRight(t *testing.T) {
	g := GridFromRows([Size][Size]int{{2, 2, 2, 0}})

	res, err := Move(g, Right)
	require.NoError(t, err)
	assert.Equal(t, [Size]int{0, 0, 2, 4}, res.Grid.Rows()[0])
	assert.Equal(t, 4, res.ScoreDelta)
}

func TestMoveUp(t *testing.T) {
	g := GridFromRows([Size][Size]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})
	expected := GridFromRows([Size][Size]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res, err := Move(g, Up)
	require.NoError(t, err)
	assert.Equal(t, expected, res.Grid, "got\n%v", res.Grid)
	assert.True(t, res.Moved)
	assert.Equal(t, 4+8+4+4, res.ScoreDelta)
}

func TestMoveDown(t *testing.T) {
	g := GridFromRows([Size][Size]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})
	expected := GridFromRows([Size][Size]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	})

	res, err := Move(g, Down)
	require.NoError(t, err)
	assert.Equal(t, expected, res.Grid, "got\n%v", res.Grid)
	assert.True(t, res.Moved)
}

func TestMoveAlreadySettled(t *testing.T) {
	g := GridFromRows([Size][Size]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res, err := Move(g, Left)
	require.NoError(t, err)
	assert.False(t, res.Moved)
	assert.Zero(t, res.ScoreDelta)
	assert.Equal(t, g, res.Grid)
}

func TestMoveInvalidDirection(t *testing.T) {
	g := GridFromRows([Size][Size]int{{2, 2, 0, 0}})

	for _, dir := range []Direction{0, Down + 1, -1} {
		res, err := Move(g, dir)
		require.ErrorIs(t, err, ErrInvalidDirection)
		assert.Equal(t, g, res.Grid)
		assert.False(t, res.Moved)
	}
}

// randomGrid fills roughly two thirds of the cells with small powers of two.
func randomGrid(rng *rand.Rand) Grid {
	var g Grid
	for i := range g {
		if rng.Intn(3) == 0 {
			continue
		}
		g[i] = 1 << (1 + rng.Intn(5))
	}
	return g
}

func reverseLine(line [Size]int) [Size]int {
	var out [Size]int
	for i, v := range line {
		out[Size-1-i] = v
	}
	return out
}

func TestMoveProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))

	for range 500 {
		g := randomGrid(rng)
		for _, dir := range Directions {
			res, err := Move(g, dir)
			require.NoError(t, err)

			require.NoError(t, res.Grid.Validate(), "closure after %s on\n%v", dir, g)
			assert.Equal(t, g.Sum(), res.Grid.Sum(), "sum after %s on\n%v", dir, g)
			assert.Equal(t, res.Grid != g, res.Moved)
		}
	}
}

func TestReversalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(4096))

	for range 200 {
		g := randomGrid(rng)
		rows := g.Rows()

		right, err := Move(g, Right)
		require.NoError(t, err)
		for r, row := range rows {
			left, _ := mergeLine(reverseLine(row))
			assert.Equal(t, reverseLine(left), right.Grid.Rows()[r])
		}

		down, err := Move(g, Down)
		require.NoError(t, err)
		for c := range Size {
			var col [Size]int
			for r := range Size {
				col[r] = g.At(r, c)
			}
			up, _ := mergeLine(reverseLine(col))
			want := reverseLine(up)
			for r := range Size {
				assert.Equal(t, want[r], down.Grid.At(r, c))
			}
		}
	}
}
