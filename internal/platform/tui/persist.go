package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// resumable is implemented by games whose progress can be saved.
type resumable interface {
	Progress() game.Progress
	Resume(p game.Progress) error
	InProgress() bool
}

// recorder writes a GameModel's results and saves. Every method is a no-op
// without a store, saves also need an owner, and failures are only logged.
type recorder struct {
	store  *storage.Store
	owner  string
	logger *log.Logger
}

// finish stores a final score and returns its leaderboard rank, 0 when
// nothing was stored. Empty games are not recorded.
func (r recorder) finish(g registry.Game, score int) int {
	if r.store == nil || score <= 0 {
		return 0
	}
	maxTile := 0
	if rg, ok := g.(resumable); ok {
		maxTile = engine.MaxTile(rg.Progress().Grid)
	}

	rank, err := r.store.Rank(g.ID(), score)
	if err != nil {
		r.logger.Debug("could not rank score", "game", g.ID(), "error", err)
	}
	if _, err := r.store.SaveScore(g.ID(), score, maxTile); err != nil {
		r.logger.Debug("could not save score", "game", g.ID(), "error", err)
		return 0
	}
	r.logger.Info("game finished", "game", g.ID(), "score", score, "max_tile", maxTile, "rank", rank)
	return rank
}

// save stores an unfinished game so the menu can offer to resume it.
func (r recorder) save(g registry.Game) {
	if r.store == nil || r.owner == "" {
		return
	}
	rg, ok := g.(resumable)
	if !ok || !rg.InProgress() {
		return
	}
	p := rg.Progress()
	err := r.store.SaveGame(storage.SavedGame{
		Owner:   r.owner,
		GameID:  g.ID(),
		Grid:    p.Grid,
		Score:   p.Score,
		Level:   p.Level,
		WinSeen: p.WinSeen,
	})
	if err != nil {
		r.logger.Debug("could not save game", "game", g.ID(), "error", err)
	}
}

// forget drops the save for gameID once its run has ended.
func (r recorder) forget(gameID string) {
	if r.store == nil || r.owner == "" {
		return
	}
	if err := r.store.DeleteGame(r.owner, gameID); err != nil {
		r.logger.Debug("could not delete saved game", "game", gameID, "error", err)
	}
}
