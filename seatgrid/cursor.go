package seatgrid

// Position addresses a seat by row index and index into GridRow.Cells().
type Position struct {
	Row int
	Col int
}

// CellAt returns the seat under p.
func (v GridView) CellAt(p Position) (SeatCell, bool) {
	if p.Row < 0 || p.Row >= len(v.Rows) {
		return SeatCell{}, false
	}
	cells := v.Rows[p.Row].Cells()
	if p.Col < 0 || p.Col >= len(cells) {
		return SeatCell{}, false
	}
	return cells[p.Col], true
}

// Move shifts p by the given deltas, clamped to the grid. Moving onto a
// shorter row clamps the column to that row's last seat.
func (v GridView) Move(p Position, dRow, dCol int) Position {
	if len(v.Rows) == 0 {
		return Position{}
	}
	p.Row = clamp(p.Row+dRow, 0, len(v.Rows)-1)
	width := len(v.Rows[p.Row].Cells())
	if width == 0 {
		p.Col = 0
		return p
	}
	p.Col = clamp(p.Col+dCol, 0, width-1)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
