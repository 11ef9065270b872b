package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
)

const (
	defaultScoresLimit = 10
	maxScoresLimit     = 100
)

type newGameReq struct {
	Seed int64 `json:"seed"` // 0 picks a time-based seed
}

type moveReq struct {
	Direction string `json:"direction"`
}

// gameRes is the body returned by every game endpoint. GameOver reports that
// no move can change the grid, independently of Won.
type gameRes struct {
	ID         string      `json:"id"`
	Grid       engine.Grid `json:"grid"`
	Score      int         `json:"score"`
	MaxTile    int         `json:"maxTile"`
	Moved      bool        `json:"moved"`
	ScoreDelta int         `json:"scoreDelta"`
	Won        bool        `json:"won"`
	GameOver   bool        `json:"gameOver"`
}

type scoreRes struct {
	Score     int       `json:"score"`
	MaxTile   int       `json:"maxTile"`
	CreatedAt time.Time `json:"createdAt"`
}

func stateRes(id string, eng *engine.Engine) gameRes {
	g := eng.Grid()
	return gameRes{
		ID:       id,
		Grid:     g,
		Score:    eng.Score(),
		MaxTile:  engine.MaxTile(g),
		Won:      engine.HasWon(g),
		GameOver: engine.IsGameOver(g),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "games": s.sessions.len()})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	sess := s.sessions.create(
		engine.WithSeed(req.Seed),
		engine.WithFourProbability(s.fourProbability),
	)
	s.logger.Debug("game created", "id", sess.id, "seed", req.Seed)

	sess.mu.Lock()
	res := stateRes(sess.id, sess.eng)
	sess.mu.Unlock()

	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	sess.mu.Lock()
	res := stateRes(sess.id, sess.eng)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	dir, err := engine.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_direction")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out, err := sess.eng.ApplyMove(dir)
	if err != nil {
		s.logger.Error("apply move", "id", sess.id, "direction", dir, "error", err)
		writeError(w, http.StatusInternalServerError, "move_failed")
		return
	}
	sess.updatedAt = time.Now()

	res := stateRes(sess.id, sess.eng)
	res.Moved = out.Moved
	res.ScoreDelta = out.ScoreDelta

	if res.GameOver && !sess.scoreSaved {
		s.recordScore(sess)
	}

	writeJSON(w, http.StatusOK, res)
}

// recordScore stores the final score once per game. Failures are logged only.
// Callers hold sess.mu.
func (s *Server) recordScore(sess *session) {
	sess.scoreSaved = true
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveScore(game.IDClassic, sess.eng.Score(), sess.eng.MaxTile()); err != nil {
		s.logger.Warn("could not save score", "id", sess.id, "error", err)
		return
	}
	s.logger.Info("game finished", "id", sess.id, "score", sess.eng.Score(), "max_tile", sess.eng.MaxTile())
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "scores_unavailable")
		return
	}

	limit := defaultScoresLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, maxScoresLimit)
	}

	entries, err := s.store.TopScores(game.IDClassic, limit)
	if err != nil {
		s.logger.Error("load scores", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	out := make([]scoreRes, 0, len(entries))
	for _, e := range entries {
		out = append(out, scoreRes{Score: e.Score, MaxTile: e.MaxTile, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeJSON(w, status, map[string]string{"error": code})
}
