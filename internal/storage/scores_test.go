package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveScores(t *testing.T, s *Store, gameID string, scores ...int) {
	t.Helper()
	for _, score := range scores {
		_, err := s.SaveScore(gameID, score, score/10)
		require.NoError(t, err)
	}
}

func scoreValues(entries []ScoreEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestTopScoresOrderAndVariants(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 100, 50, 200)
	saveScores(t, store, "2048_endless", 500)

	top, err := store.TopScores("2048", 10)
	require.NoError(t, err)
	assert.Equal(t, []int{200, 100, 50}, scoreValues(top))
	assert.Equal(t, 20, top[0].MaxTile)
	assert.Equal(t, "2048", top[0].GameID)
	assert.False(t, top[0].CreatedAt.IsZero())

	endless, err := store.TopScores("2048_endless", 10)
	require.NoError(t, err)
	assert.Len(t, endless, 1)
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 100, 200, 300, 400, 500)

	top, err := store.TopScores("2048", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{500, 400, 300}, scoreValues(top))

	// non-positive limits fall back to 10
	saveScores(t, store, "2048", 1, 2, 3, 4, 5, 6, 7)
	top, err = store.TopScores("2048", 0)
	require.NoError(t, err)
	assert.Len(t, top, 10)
}

func TestTopScoresTiesKeepInsertOrder(t *testing.T) {
	store := openTestStore(t)
	first, err := store.SaveScore("2048", 300, 32)
	require.NoError(t, err)
	second, err := store.SaveScore("2048", 300, 64)
	require.NoError(t, err)

	top, err := store.TopScores("2048", 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, first, top[0].ID)
	assert.Equal(t, second, top[1].ID)
}

func TestAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := range 20 {
		saveScores(t, store, "2048", i*10)
	}

	all, err := store.AllScores("2048")
	require.NoError(t, err)
	assert.Len(t, all, 20)
	assert.Equal(t, 190, all[0].Score)
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("2048")
	require.NoError(t, err)
	assert.Zero(t, high)

	saveScores(t, store, "2048", 100, 300, 200)
	high, err = store.HighScore("2048")
	require.NoError(t, err)
	assert.Equal(t, 300, high)
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 100, 200)
	saveScores(t, store, "2048_campaign", 300)

	require.NoError(t, store.ClearScores("2048"))

	classic, err := store.TopScores("2048", 10)
	require.NoError(t, err)
	assert.Empty(t, classic)

	campaign, err := store.TopScores("2048_campaign", 10)
	require.NoError(t, err)
	assert.Len(t, campaign, 1, "other variants are untouched")
}

func TestRank(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 500, 300, 300, 100)
	saveScores(t, store, "2048_endless", 10000)

	tests := []struct {
		score, want int
	}{
		{600, 1},
		{500, 2},
		{400, 2},
		{300, 4},
		{50, 5},
	}
	for _, tt := range tests {
		got, err := store.Rank("2048", tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Rank(%d)", tt.score)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)
	_, err := store.SaveScore("2048", 100, 16)
	require.NoError(t, err)
	_, err = store.SaveScore("2048", 300, 64)
	require.NoError(t, err)
	_, err = store.SaveScore("2048_endless", 50, 8)
	require.NoError(t, err)

	stats, err := store.GetGameStats("2048")
	require.NoError(t, err)
	assert.Equal(t, "2048", stats.GameID)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 300, stats.HighScore)
	assert.Equal(t, 64, stats.BestTile)
	assert.Equal(t, int64(400), stats.TotalScore)
	assert.InDelta(t, 200, stats.AvgScore, 0.001)
	assert.False(t, stats.LastPlayed.IsZero())

	empty, err := store.GetGameStats("2048_campaign")
	require.NoError(t, err)
	assert.Equal(t, "2048_campaign", empty.GameID)
	assert.Zero(t, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())

	all, err := store.GetAllGamesStats()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 50, all["2048_endless"].HighScore)
	assert.Equal(t, 1, all["2048_endless"].GamesCount)
}
