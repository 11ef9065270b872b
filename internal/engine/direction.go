package engine

import (
	"fmt"
	"strings"
)

// Direction is the direction tiles travel in a move.
type Direction int

// The zero Direction is not a valid move.
const (
	Left Direction = iota + 1
	Right
	Up
	Down
)

// Directions lists the four valid directions.
var Directions = []Direction{Left, Right, Up, Down}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

// ParseDirection converts a name such as "left" or "Up" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
