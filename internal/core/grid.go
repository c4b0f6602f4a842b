package core

// ByteGrid stores a space-time diagram in row-major order: row y holds the
// automaton's state at time y.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a zeroed grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Row returns row y as a sub-slice of the backing storage.
func (g *ByteGrid) Row(y int) []uint8 {
	return g.data[y*g.W : (y+1)*g.W]
}

// Rows returns every row as a sub-slice, oldest first.
func (g *ByteGrid) Rows() [][]uint8 {
	rows := make([][]uint8, g.H)
	for y := range rows {
		rows[y] = g.Row(y)
	}
	return rows
}

// Clone returns a deep copy of the grid contents as independent rows.
func (g *ByteGrid) Clone() [][]uint8 {
	rows := make([][]uint8, g.H)
	for y := range rows {
		rows[y] = append([]uint8(nil), g.Row(y)...)
	}
	return rows
}
