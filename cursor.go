package termcore

// Cursor tracks the current write position (0-based coordinates).
type Cursor struct {
	Row int
	Col int
}

// NewCursor creates a cursor at (0, 0).
func NewCursor() *Cursor {
	return &Cursor{}
}

// clamp constrains v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
