package engine

import "errors"

var (
	// ErrInvalidDirection is returned for a move outside Left, Right, Up, Down.
	ErrInvalidDirection = errors.New("engine: invalid direction")

	// ErrBoardFull is returned when a tile is spawned on a grid with no empty cell.
	ErrBoardFull = errors.New("engine: no empty cell to spawn into")

	// ErrInvalidGrid is returned when restoring a grid or score that breaks the
	// grid invariants.
	ErrInvalidGrid = errors.New("engine: invalid grid")
)
