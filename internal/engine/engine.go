package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// State is the grid and score of a game.
type State struct {
	Grid  Grid
	Score int
}

// Outcome is returned by ApplyMove for the caller to render and to decide
// whether to surface a win or loss.
type Outcome struct {
	Grid       Grid
	Score      int
	Moved      bool
	ScoreDelta int
	Spawned    *Tile // nil when the move had no effect
	Won        bool
	GameOver   bool // only evaluated when Won is false
}

// Engine owns the grid and score of one game session. It is not safe for
// concurrent use; serve each session with its own Engine.
type Engine struct {
	grid     Grid
	score    int
	rng      RandomSource
	fourProb float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for spawning.
func WithRand(rng RandomSource) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed seeds a math/rand source. A seed of 0 keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithFourProbability sets the chance of spawning a 4.
func WithFourProbability(p float64) Option {
	return func(e *Engine) {
		e.SetFourProbability(p)
	}
}

// New creates an engine with an empty grid. Call NewGame to start playing.
func New(opts ...Option) *Engine {
	e := &Engine{
		fourProb: DefaultFourProbability,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// SetFourProbability changes the chance of spawning a 4 for later spawns.
// Values are clamped to [0, 1].
func (e *Engine) SetFourProbability(p float64) {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	e.fourProb = p
}

// FourProbability returns the current chance of spawning a 4.
func (e *Engine) FourProbability() float64 {
	return e.fourProb
}

// NewGame clears the grid and score and spawns the starting tiles.
func (e *Engine) NewGame() State {
	e.grid = Grid{}
	e.score = 0
	for range StartTiles {
		//nolint:errcheck // Cannot fail on a freshly cleared grid
		Spawn(&e.grid, e.rng, e.fourProb)
	}
	return e.State()
}

// ApplyMove slides the grid in dir. When nothing moves the grid and score are
// left untouched and no tile is spawned. Otherwise the score is increased, one
// tile is spawned, and the win check runs before the game-over check.
func (e *Engine) ApplyMove(dir Direction) (Outcome, error) {
	res, err := Move(e.grid, dir)
	if err != nil {
		return e.outcome(), err
	}

	if !res.Moved {
		return e.outcome(), nil
	}

	e.grid = res.Grid
	e.score += res.ScoreDelta

	tile, err := Spawn(&e.grid, e.rng, e.fourProb)
	if err != nil {
		return e.outcome(), fmt.Errorf("engine: spawn after %s: %w", dir, err)
	}

	out := e.outcome()
	out.Moved = true
	out.ScoreDelta = res.ScoreDelta
	out.Spawned = &tile
	out.Won = HasWon(e.grid)
	if !out.Won {
		out.GameOver = IsGameOver(e.grid)
	}
	return out, nil
}

func (e *Engine) outcome() Outcome {
	return Outcome{Grid: e.grid, Score: e.score}
}

// State returns the current grid and score.
func (e *Engine) State() State {
	return State{Grid: e.grid, Score: e.score}
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Won reports whether the current grid holds a winning tile.
func (e *Engine) Won() bool {
	return HasWon(e.grid)
}

// GameOver reports whether no move can change the current grid.
func (e *Engine) GameOver() bool {
	return IsGameOver(e.grid)
}

// MaxTile returns the highest tile on the current grid.
func (e *Engine) MaxTile() int {
	return MaxTile(e.grid)
}

// Restore replaces the grid and score with a previously saved state.
func (e *Engine) Restore(s State) error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if s.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidGrid, s.Score)
	}
	e.grid = s.Grid
	e.score = s.Score
	return nil
}
