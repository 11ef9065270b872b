package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Registry IDs, also used as score keys.
const (
	IDClassic  = "2048"
	IDCampaign = "2048_campaign"
	IDEndless  = "2048_endless"
)

// levelClearTicks is how long the level-cleared banner stays up (2s at 60fps).
const levelClearTicks = 120

// Game implements registry.Game on top of one engine.Engine.
type Game struct {
	mode       Mode
	eng        *engine.Engine
	tick       uint64
	startLevel int // 1-based, 0 means first level

	levelIndex    int
	currentTarget int

	screenW int
	screenH int

	gameOver      bool
	awaitingWin   bool // Classic win banner waits for continue/restart
	winSeen       bool // Win banner acknowledged; no further banners
	campaignDone  bool
	levelCleared  bool
	clearTicks    int
	paused        bool
	tooSmall      bool
	lastSpawned   *engine.Tile
	lastMoveDelta int
}

// Option configures a Game.
type Option func(*Game)

// StartAt starts a campaign at the given 1-based level.
func StartAt(level int) Option {
	return func(g *Game) {
		g.startLevel = level
	}
}

// New creates a game in the given mode.
func New(mode Mode, opts ...Option) *Game {
	g := &Game{mode: mode}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewClassic creates a classic game: reach 2048, then optionally keep going.
func NewClassic() *Game { return New(ModeClassic) }

// NewCampaign creates a campaign game.
func NewCampaign(opts ...Option) *Game { return New(ModeCampaign, opts...) }

// NewEndless creates an endless game with no win banner.
func NewEndless() *Game { return New(ModeEndless) }

func init() {
	registry.Register(IDClassic, func() registry.Game { return NewClassic() })
	registry.Register(IDCampaign, func() registry.Game { return NewCampaign() })
	registry.Register(IDEndless, func() registry.Game { return NewEndless() })
}

// ModeForID returns the mode registered under id.
func ModeForID(id string) (Mode, error) {
	switch id {
	case IDClassic:
		return ModeClassic, nil
	case IDCampaign:
		return ModeCampaign, nil
	case IDEndless:
		return ModeEndless, nil
	default:
		return "", fmt.Errorf("game: unknown variant %q", id)
	}
}

// ResolveID accepts a registry id or a mode name ("classic", "campaign",
// "endless") and returns the registry id.
func ResolveID(name string) (string, error) {
	switch Mode(name) {
	case ModeClassic:
		return IDClassic, nil
	case ModeCampaign:
		return IDCampaign, nil
	case ModeEndless:
		return IDEndless, nil
	}
	if _, err := ModeForID(name); err != nil {
		return "", err
	}
	return name, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeCampaign:
		return IDCampaign
	case ModeEndless:
		return IDEndless
	default:
		return IDClassic
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeCampaign:
		return "2048 (Campaign)"
	case ModeEndless:
		return "2048 (Endless)"
	default:
		return "2048"
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.eng = engine.New(engine.WithSeed(seed))
	g.tick = 0
	g.clearFlags()

	g.levelIndex = 0
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
	}
	g.loadLevel()

	g.eng.NewGame()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) clearFlags() {
	g.gameOver = false
	g.awaitingWin = false
	g.winSeen = false
	g.campaignDone = false
	g.levelCleared = false
	g.clearTicks = 0
	g.paused = false
	g.lastSpawned = nil
	g.lastMoveDelta = 0
}

// loadLevel sets the target and spawn odds for the current mode and level.
func (g *Game) loadLevel() {
	if g.mode != ModeCampaign {
		g.currentTarget = 0
		g.eng.SetFourProbability(settings.FourProbability)
		return
	}

	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}
	g.currentTarget = level.Target
	g.eng.SetFourProbability(level.Spawn4)
}

// Resize adapts the game to new terminal dimensions without touching the board.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = width < minScreenW || height < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.clearTicks++
		if g.clearTicks >= levelClearTicks {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.awaitingWin {
		if in.Has(core.ActionContinue) {
			g.awaitingWin = false
			g.winSeen = true
			g.gameOver = g.eng.GameOver()
		}
		return core.StepResult{State: g.State()}
	}

	if g.finished() {
		return core.StepResult{State: g.State()}
	}

	dir := directionFor(in)
	if dir == 0 {
		return core.StepResult{State: g.State()}
	}

	moved := g.processMove(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFor picks at most one direction per tick.
func directionFor(in core.InputFrame) engine.Direction {
	switch {
	case in.Has(core.ActionUp):
		return engine.Up
	case in.Has(core.ActionDown):
		return engine.Down
	case in.Has(core.ActionLeft):
		return engine.Left
	case in.Has(core.ActionRight):
		return engine.Right
	}
	return 0
}

// processMove applies one move and updates the mode-specific state.
func (g *Game) processMove(dir engine.Direction) bool {
	out, err := g.eng.ApplyMove(dir)
	if err != nil || !out.Moved {
		return false
	}
	g.lastSpawned = out.Spawned
	g.lastMoveDelta = out.ScoreDelta

	switch g.mode {
	case ModeClassic:
		if g.reachedWinTile() {
			g.awaitingWin = true
			return true
		}
	case ModeCampaign:
		if engine.MaxTile(out.Grid) >= g.currentTarget {
			g.levelCleared = true
			g.clearTicks = 0
			return true
		}
	}

	// The engine skips the game-over check whenever a 2048 tile is on the board.
	g.gameOver = out.GameOver || engine.IsGameOver(out.Grid)
	return true
}

// advanceLevel moves to the next level, keeping board and score.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.clearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.campaignDone = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	g.gameOver = g.eng.GameOver()
}

// reachedWinTile reports whether the configured win tile is on the board and
// its banner has not been acknowledged yet.
func (g *Game) reachedWinTile() bool {
	return !g.winSeen && g.eng.MaxTile() >= settings.WinTile
}

func (g *Game) finished() bool {
	return g.gameOver || g.campaignDone || g.awaitingWin
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.gameOver || g.campaignDone,
		Won:      g.awaitingWin,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Progress is the resumable part of a game.
type Progress struct {
	Grid    engine.Grid
	Score   int
	Level   int // 0-based campaign level
	WinSeen bool
}

// Progress returns the current board, score and mode-specific position.
func (g *Game) Progress() Progress {
	return Progress{
		Grid:    g.eng.Grid(),
		Score:   g.eng.Score(),
		Level:   g.levelIndex,
		WinSeen: g.winSeen,
	}
}

// InProgress reports whether the game has moves left worth saving.
func (g *Game) InProgress() bool {
	return g.eng != nil && !g.gameOver && !g.campaignDone && g.eng.Score() > 0
}

// Resume continues a saved game. Reset must have been called first.
func (g *Game) Resume(p Progress) error {
	if err := g.eng.Restore(engine.State{Grid: p.Grid, Score: p.Score}); err != nil {
		return fmt.Errorf("game: resume %s: %w", g.ID(), err)
	}
	g.clearFlags()
	g.winSeen = p.WinSeen

	if g.mode == ModeCampaign {
		g.levelIndex = core.Clamp(p.Level, 0, LevelCount()-1)
	}
	g.loadLevel()

	switch {
	case g.mode == ModeClassic && g.reachedWinTile():
		g.awaitingWin = true
	case g.eng.GameOver():
		g.gameOver = true
	}
	return nil
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.mode == ModeClassic {
		return "Arrows/WASD/hjkl: Move | P: Pause | C: Continue | R: Restart | Q: Quit"
	}
	return "Arrows/WASD/hjkl: Move | P: Pause | R: Restart | Q: Quit"
}
