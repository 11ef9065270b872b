package game

import "github.com/vovakirdan/tui-2048/internal/engine"

// StateType names the phase a game is in.
type StateType string

const (
	StatePlaying      StateType = "playing"
	StatePaused       StateType = "paused"
	StateLevelCleared StateType = "level_cleared"
	StateWin          StateType = "win"
	StateGameOver     StateType = "game_over"
	StateComplete     StateType = "campaign_complete"
	StatePausedSmall  StateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    Mode
	Level   int // 1-based campaign level, 0 for other modes
	Target  int // Current target tile, 0 outside campaign
	Score   int
	Grid    engine.Grid
	MaxTile int
	State   StateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.campaignDone:
		state = StateComplete
	case g.awaitingWin:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:   g.tick,
		Mode:   g.mode,
		Target: g.currentTarget,
		State:  state,
	}
	if g.mode == ModeCampaign {
		snap.Level = g.levelIndex + 1
	}
	if g.eng != nil {
		snap.Score = g.eng.Score()
		snap.Grid = g.eng.Grid()
		snap.MaxTile = g.eng.MaxTile()
	}
	return snap
}
