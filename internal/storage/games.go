package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// SavedGame is an in-progress game that can be resumed later.
// A game is keyed by its owner (local user, SSH user) and variant.
type SavedGame struct {
	Owner     string
	GameID    string
	Grid      engine.Grid
	Score     int
	Level     int  // Campaign level index, 0 for other variants
	WinSeen   bool // The 2048 banner was already acknowledged
	UpdatedAt time.Time
}

// SaveGame stores or replaces the saved game for owner and variant.
func (s *Store) SaveGame(g SavedGame) error {
	if err := g.Grid.Validate(); err != nil {
		return fmt.Errorf("storage: refusing to save game: %w", err)
	}
	gridJSON, err := json.Marshal(g.Grid)
	if err != nil {
		return fmt.Errorf("storage: cannot encode grid: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_games (owner, game_id, grid, score, level, win_seen, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner, game_id) DO UPDATE SET
		   grid = excluded.grid,
		   score = excluded.score,
		   level = excluded.level,
		   win_seen = excluded.win_seen,
		   updated_at = CURRENT_TIMESTAMP`,
		g.Owner, g.GameID, string(gridJSON), g.Score, g.Level, g.WinSeen,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame retrieves the saved game for owner and variant.
// Returns nil without error when there is none.
func (s *Store) LoadGame(owner, gameID string) (*SavedGame, error) {
	g := SavedGame{Owner: owner, GameID: gameID}
	var gridJSON string
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT grid, score, level, win_seen, updated_at
		 FROM saved_games
		 WHERE owner = ? AND game_id = ?`,
		owner, gameID,
	).Scan(&gridJSON, &g.Score, &g.Level, &g.WinSeen, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}

	if err := json.Unmarshal([]byte(gridJSON), &g.Grid); err != nil {
		return nil, fmt.Errorf("storage: corrupt grid for %s/%s: %w", owner, gameID, err)
	}
	if err := g.Grid.Validate(); err != nil {
		return nil, fmt.Errorf("storage: corrupt grid for %s/%s: %w", owner, gameID, err)
	}
	g.UpdatedAt = parseTime(updatedAt)

	return &g, nil
}

// DeleteGame removes the saved game for owner and variant, if any.
func (s *Store) DeleteGame(owner, gameID string) error {
	if _, err := s.db.Exec("DELETE FROM saved_games WHERE owner = ? AND game_id = ?", owner, gameID); err != nil {
		return fmt.Errorf("storage: cannot delete game: %w", err)
	}
	return nil
}
