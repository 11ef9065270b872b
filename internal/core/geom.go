// Package core holds the terminal-independent pieces shared by the 2048
// variants and the front-ends: the character screen, colours, input frames
// and runtime settings. It imports nothing from Bubble Tea.
package core

import "cmp"

// Rect is a screen rectangle. X and Y are the top-left cell.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the w x h rectangle whose top-left cell is (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround returns the w x h rectangle centred on (cx, cy). Odd leftovers
// go to the right and bottom.
func RectAround(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
