package core

// RuntimeConfig is what a variant learns about its environment on Reset.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // steps per second
	Seed     int64 // 0 asks the front-end to pick a time-based seed
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a variant's state the front-end acts on.
type GameState struct {
	Score    int
	GameOver bool // no move is left; the run has ended
	Won      bool // the win overlay waits for continue or restart
	Paused   bool
}

// Finished reports whether the run has stopped, won or lost.
func (s GameState) Finished() bool {
	return s.GameOver || s.Won
}

// StepResult reports one tick.
type StepResult struct {
	State GameState
	Moved bool // a slide changed the board
}
