package position

import (
	"fmt"
	"math"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// Bounds is the declared size of a layout section. Rows of 0 means the
// section grows as needed.
type Bounds struct {
	Columns int
	Rows    int
}

func (b Bounds) cell() *validation.Cell {
	return &validation.Cell{Col: b.Columns, Row: b.Rows}
}

// state is threaded through the placement fold.
type state struct {
	occ    Occupancy
	cursor model.Position // next flow slot to try
}

// Place assigns positions to loose cells. Explicit cells are placed first,
// then flow cells in source order. The returned cells keep input order.
func Place(cells []model.Cell, bounds Bounds, occ Occupancy) ([]model.Cell, Occupancy, error) {
	return place(cells, nil, bounds, occ)
}

// place is Place with errors located at ids[i] instead of i when ids is
// set, so callers placing a subset of a layout's children keep the
// children's own indices in error paths.
func place(cells []model.Cell, ids []int, bounds Bounds, occ Occupancy) ([]model.Cell, Occupancy, error) {
	placed := make([]model.Cell, len(cells))
	st := state{occ: occ}
	node := func(i int) string {
		if ids != nil {
			i = ids[i]
		}
		return fmt.Sprintf("cell[%d]", i)
	}

	for i, c := range cells {
		if !c.Explicit() {
			continue
		}
		next, err := placeExplicit(st, c, bounds)
		if err != nil {
			return nil, occ, validation.Locate(err, node(i))
		}
		st = next
		placed[i] = c
	}

	for i, c := range cells {
		if c.Explicit() {
			continue
		}
		anchor, next, err := placeFlow(st, c, bounds)
		if err != nil {
			return nil, occ, validation.Locate(err, node(i))
		}
		st = next
		placed[i] = c.At(anchor.Col, anchor.Row)
	}

	return placed, st.occ, nil
}

// PlaceRows positions the cells of a row container. Row i gets row index
// startRow+i; its cells take sequential columns, skipping slots blocked by
// earlier rowspans or explicit cells.
func PlaceRows(rows []model.Row, bounds Bounds, occ Occupancy, startRow int) ([]model.Row, Occupancy, error) {
	out := make([]model.Row, len(rows))
	for i, row := range rows {
		rowIndex := startRow + i
		cells := make([]model.Cell, len(row.Cells))
		col := 0
		for j, c := range row.Cells {
			node := fmt.Sprintf("row[%d]/cell[%d]", i, j)
			if c.Explicit() {
				next, err := placeExplicit(state{occ: occ}, c, bounds)
				if err != nil {
					return nil, occ, validation.Locate(err, node)
				}
				occ = next.occ
				cells[j] = c
				continue
			}

			cols, rowspan := c.Span()
			if cols > bounds.Columns {
				return nil, occ, spanOverflow(model.Position{Col: col, Row: rowIndex}, cols, bounds).At(node)
			}
			anchor, ok := nextFreeInRow(occ, col, rowIndex, cols, rowspan, bounds.Columns)
			if !ok {
				return nil, occ, spanOverflow(model.Position{Col: col, Row: rowIndex}, cols, bounds).At(node)
			}
			occ = occ.Mark(model.NewRect(anchor.Col, anchor.Row, cols, rowspan))
			cells[j] = c.At(anchor.Col, anchor.Row)
			col = anchor.Col + cols
		}
		out[i] = model.Row{Cells: cells, Properties: row.Properties}
	}
	return out, occ, nil
}

// nextFreeInRow finds the first column >= col in row where a cols x rows
// rectangle fits without crossing the last column or any occupied slot.
func nextFreeInRow(occ Occupancy, col, row, cols, rows, columns int) (model.Position, bool) {
	for c := col; c+cols <= columns; c++ {
		if _, _, taken := occ.Conflict(model.NewRect(c, row, cols, rows)); !taken {
			return model.Position{Col: c, Row: row}, true
		}
	}
	return model.Position{}, false
}

func placeExplicit(st state, c model.Cell, bounds Bounds) (state, error) {
	p := *c.Position
	if p.Col < 0 || p.Row < 0 {
		return st, &validation.Error{
			Code:     validation.CodeInvalidPosition,
			Message:  "negative coordinates",
			Position: &validation.Cell{Col: p.Col, Row: p.Row},
			Bounds:   bounds.cell(),
		}
	}
	if p.Col >= bounds.Columns || (bounds.Rows > 0 && p.Row >= bounds.Rows) {
		return st, &validation.Error{
			Code:     validation.CodeInvalidPosition,
			Message:  "position outside declared bounds",
			Position: &validation.Cell{Col: p.Col, Row: p.Row},
			Bounds:   bounds.cell(),
		}
	}

	rect, _ := c.Rect()
	if rect.Right() > bounds.Columns {
		return st, spanOverflow(p, rect.Cols, bounds)
	}
	if slot, owner, taken := st.occ.Conflict(rect); taken {
		return st, &validation.Error{
			Code:     validation.CodePositionConflict,
			Message:  fmt.Sprintf("cell anchored at (%d, %d) overlaps an existing cell", p.Col, p.Row),
			Position: &validation.Cell{Col: slot.Col, Row: slot.Row},
			Conflict: &validation.Cell{Col: owner.Col, Row: owner.Row},
			Bounds:   bounds.cell(),
		}
	}
	st.occ = st.occ.Mark(rect)
	return st, nil
}

func placeFlow(st state, c model.Cell, bounds Bounds) (model.Position, state, error) {
	cols, rows := c.Span()
	if cols > bounds.Columns {
		return model.Position{}, st, spanOverflow(st.cursor, cols, bounds)
	}

	cur := st.cursor
	// A free anchor always exists below the last occupied row, so the
	// search is bounded.
	limit := max(st.occ.Bottom(), cur.Row) + rows + 1
	for cur.Row <= limit {
		if cur.Col+cols > bounds.Columns {
			cur = model.Position{Col: 0, Row: cur.Row + 1}
			continue
		}
		rect := model.NewRect(cur.Col, cur.Row, cols, rows)
		if _, _, taken := st.occ.Conflict(rect); taken {
			cur.Col++
			continue
		}
		st.occ = st.occ.Mark(rect)
		st.cursor = model.Position{Col: cur.Col + cols, Row: cur.Row}
		return cur, st, nil
	}
	return model.Position{}, st, &validation.Error{
		Code:     validation.CodeInvalidPosition,
		Message:  "no free slot for flow cell",
		Position: &validation.Cell{Col: st.cursor.Col, Row: st.cursor.Row},
		Bounds:   bounds.cell(),
	}
}

func spanOverflow(p model.Position, cols int, bounds Bounds) *validation.Error {
	return &validation.Error{
		Code:     validation.CodeSpanOverflow,
		Message:  fmt.Sprintf("colspan %d starting at column %d exceeds %d columns", cols, p.Col, bounds.Columns),
		Position: &validation.Cell{Col: p.Col, Row: p.Row},
		Bounds:   bounds.cell(),
	}
}

// ColumnCount reads the "columns" property: an integer N or a list of
// track sizes. The second result is false when the property is absent.
func ColumnCount(props model.Properties) (int, bool, error) {
	v, ok := props.Get("columns")
	if !ok {
		return 0, false, nil
	}
	n, err := trackCount(v)
	if err != nil {
		return 0, true, &validation.Error{
			Code:     validation.CodeInvalidProperty,
			Property: "columns",
			Value:    v,
			Message:  err.Error(),
			Allowed:  []string{"positive integer", "list of track sizes"},
		}
	}
	return n, true, nil
}

// RowCount reads an integer "rows" property. Track lists do not bound
// the row count.
func RowCount(props model.Properties) int {
	v, ok := props.Get("rows")
	if !ok {
		return 0
	}
	if n, ok := asInt(v); ok && n > 0 {
		return n
	}
	return 0
}

func trackCount(v any) (int, error) {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return 0, fmt.Errorf("empty track list")
		}
		return len(t), nil
	case []string:
		if len(t) == 0 {
			return 0, fmt.Errorf("empty track list")
		}
		return len(t), nil
	}
	n, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("unsupported columns value %T", v)
	}
	if n < 1 {
		return 0, fmt.Errorf("column count must be positive")
	}
	return n, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case float32:
		f := float64(n)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	}
	return 0, false
}
