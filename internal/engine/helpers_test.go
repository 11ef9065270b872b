package engine

// scriptedSource replays fixed draws. When a script runs out it falls back to
// 0 for Intn and 0.5 for Float64 (always a 2).
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// checkerboard is full and has no equal neighbours.
var checkerboard = Grid{
	2, 4, 2, 4,
	4, 2, 4, 2,
	2, 4, 2, 4,
	4, 2, 4, 2,
}
