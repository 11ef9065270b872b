package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// stuckAfterLeft is one Left move away from a full grid with no merges.
var stuckAfterLeft = engine.Grid{
	2, 2, 8, 32,
	16, 2, 64, 8,
	2, 16, 8, 2,
	16, 2, 16, 4,
}

func newTestServer(t *testing.T, withStore bool) (*Server, *storage.Store) {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "api.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
	}
	cfg := config.HTTPConfig{Address: ":0", RequestTimeout: 5 * time.Second}
	return New(cfg, engine.DefaultFourProbability, store, log.New(io.Discard)), store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createGame(t *testing.T, s *Server, body string) gameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/games", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[gameRes](t, rec)
}

// setGrid replaces a session's grid so moves are predictable.
func setGrid(t *testing.T, s *Server, id string, g engine.Grid, score int) {
	t.Helper()
	sess, ok := s.sessions.get(id)
	require.True(t, ok)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	require.NoError(t, sess.eng.Restore(engine.State{Grid: g, Score: score}))
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, true, decode[map[string]any](t, rec)["ok"])
}

func TestCreateGame(t *testing.T) {
	s, _ := newTestServer(t, false)
	res := createGame(t, s, "")

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Moved)
	assert.False(t, res.Won)
	assert.False(t, res.GameOver)

	tiles := 0
	for _, v := range res.Grid {
		if v != 0 {
			tiles++
			assert.Contains(t, []int{2, 4}, v)
		}
	}
	assert.Equal(t, engine.StartTiles, tiles)
}

func TestCreateGameSeeded(t *testing.T) {
	s, _ := newTestServer(t, false)
	a := createGame(t, s, `{"seed": 42}`)
	b := createGame(t, s, `{"seed": 42}`)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Grid, b.Grid)
}

func TestCreateGameBadJSON(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/games", `{"seed":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", decode[map[string]string](t, rec)["error"])
}

func TestGetGame(t *testing.T) {
	s, _ := newTestServer(t, false)
	created := createGame(t, s, "")

	rec := do(t, s, http.MethodGet, "/games/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[gameRes](t, rec)
	assert.Equal(t, created.Grid, got.Grid)
	assert.Equal(t, created.ID, got.ID)
}

func TestUnknownGame(t *testing.T) {
	s, _ := newTestServer(t, false)

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/games/nope", ""},
		{http.MethodPost, "/games/nope/moves", `{"direction":"left"}`},
		{http.MethodDelete, "/games/nope", ""},
	}
	for _, tt := range tests {
		rec := do(t, s, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, "not_found", decode[map[string]string](t, rec)["error"])
	}
}

func TestMove(t *testing.T) {
	s, _ := newTestServer(t, false)
	id := createGame(t, s, `{"seed": 1}`).ID
	setGrid(t, s, id, engine.Grid{2, 2}, 10)

	rec := do(t, s, http.MethodPost, "/games/"+id+"/moves", `{"direction":"left"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[gameRes](t, rec)

	assert.True(t, res.Moved)
	assert.Equal(t, 4, res.ScoreDelta)
	assert.Equal(t, 14, res.Score)
	assert.Equal(t, 4, res.Grid[0])

	tiles := 0
	for _, v := range res.Grid {
		if v != 0 {
			tiles++
		}
	}
	assert.Equal(t, 2, tiles, "merged tile plus one spawn")
}

func TestMoveNoOp(t *testing.T) {
	s, _ := newTestServer(t, false)
	id := createGame(t, s, "").ID
	grid := engine.Grid{2, 4}
	setGrid(t, s, id, grid, 8)

	rec := do(t, s, http.MethodPost, "/games/"+id+"/moves", `{"direction":"left"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[gameRes](t, rec)

	assert.False(t, res.Moved)
	assert.Equal(t, 0, res.ScoreDelta)
	assert.Equal(t, 8, res.Score)
	assert.Equal(t, grid, res.Grid)
}

func TestMoveInvalidDirection(t *testing.T) {
	s, _ := newTestServer(t, false)
	created := createGame(t, s, "")

	rec := do(t, s, http.MethodPost, "/games/"+created.ID+"/moves", `{"direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_direction", decode[map[string]string](t, rec)["error"])

	rec = do(t, s, http.MethodGet, "/games/"+created.ID, "")
	assert.Equal(t, created.Grid, decode[gameRes](t, rec).Grid)
}

func TestMoveBadJSON(t *testing.T) {
	s, _ := newTestServer(t, false)
	id := createGame(t, s, "").ID
	rec := do(t, s, http.MethodPost, "/games/"+id+"/moves", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", decode[map[string]string](t, rec)["error"])
}

func TestGameOverRecordsScoreOnce(t *testing.T) {
	s, store := newTestServer(t, true)
	id := createGame(t, s, "").ID
	setGrid(t, s, id, stuckAfterLeft, 0)

	rec := do(t, s, http.MethodPost, "/games/"+id+"/moves", `{"direction":"left"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[gameRes](t, rec)
	assert.True(t, res.Moved)
	assert.True(t, res.GameOver)
	assert.False(t, res.Won)
	assert.Equal(t, 4, res.Score)

	// further moves cannot change the grid and must not record again
	for _, dir := range []string{"left", "right", "up", "down"} {
		rec = do(t, s, http.MethodPost, "/games/"+id+"/moves", `{"direction":"`+dir+`"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, decode[gameRes](t, rec).Moved)
	}

	scores, err := store.TopScores(game.IDClassic, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, scores[0].Score)
	assert.Equal(t, 64, scores[0].MaxTile)

	rec = do(t, s, http.MethodGet, "/scores", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]scoreRes](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].Score)
}

func TestWonGameKeepsPlaying(t *testing.T) {
	s, _ := newTestServer(t, false)
	id := createGame(t, s, "").ID
	setGrid(t, s, id, engine.Grid{1024, 1024}, 0)

	rec := do(t, s, http.MethodPost, "/games/"+id+"/moves", `{"direction":"left"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[gameRes](t, rec)
	assert.True(t, res.Won)
	assert.False(t, res.GameOver)
	assert.Equal(t, 2048, res.MaxTile)

	rec = do(t, s, http.MethodPost, "/games/"+id+"/moves", `{"direction":"right"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[gameRes](t, rec).Won)
}

func TestDeleteGame(t *testing.T) {
	s, _ := newTestServer(t, false)
	id := createGame(t, s, "").ID

	rec := do(t, s, http.MethodDelete, "/games/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/games/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoresWithoutStore(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/scores", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestScoresLimit(t *testing.T) {
	s, store := newTestServer(t, true)
	for _, score := range []int{10, 30, 20} {
		_, err := store.SaveScore(game.IDClassic, score, 8)
		require.NoError(t, err)
	}

	rec := do(t, s, http.MethodGet, "/scores?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]scoreRes](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, 30, list[0].Score)
	assert.Equal(t, 20, list[1].Score)

	rec = do(t, s, http.MethodGet, "/scores?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundRoute(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[map[string]string](t, rec)["error"])
}

func TestWonStuckBoardReportsGameOver(t *testing.T) {
	s, _ := newTestServer(t, false)
	id := createGame(t, s, "").ID
	stuck := engine.Grid{
		2048, 4, 2, 4,
		4, 2, 4, 2,
		2, 4, 2, 4,
		4, 2, 4, 2,
	}
	setGrid(t, s, id, stuck, 20000)

	rec := do(t, s, http.MethodGet, "/games/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[gameRes](t, rec)
	assert.True(t, res.Won)
	assert.True(t, res.GameOver)
}
