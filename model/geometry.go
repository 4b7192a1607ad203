package model

// Rect is the set of grid slots occupied by a positioned cell: columns
// [Col, Col+Cols) and rows [Row, Row+Rows).
type Rect struct {
	Col  int
	Row  int
	Cols int
	Rows int
}

// NewRect creates a rectangle anchored at (col, row).
func NewRect(col, row, cols, rows int) Rect {
	return Rect{Col: col, Row: row, Cols: cols, Rows: rows}
}

// Right returns the exclusive right column bound.
func (r Rect) Right() int {
	return r.Col + r.Cols
}

// Bottom returns the exclusive bottom row bound.
func (r Rect) Bottom() int {
	return r.Row + r.Rows
}

// Contains checks if the slot (col, row) is inside the rectangle.
func (r Rect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Right() && row >= r.Row && row < r.Bottom()
}

// Intersects checks if two rectangles share at least one slot.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Col < other.Right() && other.Col < r.Right() &&
		r.Row < other.Bottom() && other.Row < r.Bottom()
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	col := min(r.Col, other.Col)
	row := min(r.Row, other.Row)
	return Rect{
		Col:  col,
		Row:  row,
		Cols: max(r.Right(), other.Right()) - col,
		Rows: max(r.Bottom(), other.Bottom()) - row,
	}
}

// Area returns the number of slots covered.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Cols * r.Rows
}

// IsEmpty returns true if the rectangle covers no slot.
func (r Rect) IsEmpty() bool {
	return r.Cols <= 0 || r.Rows <= 0
}

// Slots returns every (col, row) pair in row-major order.
func (r Rect) Slots() []Position {
	if r.IsEmpty() {
		return nil
	}
	slots := make([]Position, 0, r.Area())
	for row := r.Row; row < r.Bottom(); row++ {
		for col := r.Col; col < r.Right(); col++ {
			slots = append(slots, Position{Col: col, Row: row})
		}
	}
	return slots
}
