package position

import (
	"fmt"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// Placement is the positioned copy of a layout plus summary geometry.
type Placement struct {
	// Layout is a copy of the input in which every cell, including cells
	// inside rows, headers and footers, has a position.
	Layout *model.Layout

	Columns int

	// BodyRows is one past the last occupied body row.
	BodyRows int

	// HeaderRows and FooterRows give the row count of each section.
	HeaderRows []int
	FooterRows []int

	// Body holds the body occupancy, used by backends to find the cell
	// covering a slot.
	Body Occupancy
}

// Gaps lists the unoccupied body slots.
func (p *Placement) Gaps() []model.Position {
	return p.Body.Gaps(p.Columns)
}

// Layout positions every cell of l. Stacks have no tracks; their copy is
// returned with Columns set to 0. Nested layouts inside cell content are
// positioned by the caller when it reaches them.
func Layout(l *model.Layout) (*Placement, error) {
	if l == nil {
		return nil, &validation.Error{Code: validation.CodeMissingRequiredProperty, Message: "nil layout"}
	}
	node := l.Kind.String()
	if l.Kind == model.KindStack {
		if len(l.Headers) > 0 || len(l.Footers) > 0 {
			return nil, &validation.Error{
				Code:    validation.CodeInvalidNesting,
				Node:    node,
				Message: "headers and footers are only valid in tables",
			}
		}
		return &Placement{Layout: l}, nil
	}
	if l.Kind == model.KindGrid && (len(l.Headers) > 0 || len(l.Footers) > 0) {
		return nil, &validation.Error{
			Code:    validation.CodeInvalidNesting,
			Node:    node,
			Message: "headers and footers are only valid in tables",
		}
	}
	if !l.Kind.IsLayout() {
		return nil, &validation.Error{Code: validation.CodeInvalidNesting, Node: node, Message: "not a layout kind"}
	}

	columns, declared, err := ColumnCount(l.Properties)
	if err != nil {
		return nil, validation.Locate(err, node)
	}
	if !declared {
		columns = inferColumns(l)
	}
	bounds := Bounds{Columns: columns, Rows: RowCount(l.Properties)}

	children, occ, err := placeChildren(l.Children, bounds)
	if err != nil {
		return nil, validation.Locate(err, node+"/body")
	}

	out := l.WithChildren(children)
	p := &Placement{Layout: out, Columns: columns, BodyRows: occ.Bottom(), Body: occ}

	if len(l.Headers) > 0 {
		headers := make([]model.Header, len(l.Headers))
		for i, h := range l.Headers {
			rows, rocc, err := PlaceRows(h.Rows, Bounds{Columns: columns}, Empty(), 0)
			if err != nil {
				return nil, validation.Locate(err, fmt.Sprintf("%s/header[%d]", node, i))
			}
			headers[i] = model.Header{Rows: rows, Repeat: h.Repeat, Level: h.Level}
			p.HeaderRows = append(p.HeaderRows, max(rocc.Bottom(), len(rows)))
		}
		out.Headers = headers
	}
	if len(l.Footers) > 0 {
		footers := make([]model.Footer, len(l.Footers))
		for i, f := range l.Footers {
			rows, rocc, err := PlaceRows(f.Rows, Bounds{Columns: columns}, Empty(), 0)
			if err != nil {
				return nil, validation.Locate(err, fmt.Sprintf("%s/footer[%d]", node, i))
			}
			footers[i] = model.Footer{Rows: rows, Repeat: f.Repeat, Level: f.Level}
			p.FooterRows = append(p.FooterRows, max(rocc.Bottom(), len(rows)))
		}
		out.Footers = footers
	}

	return p, nil
}

// placeChildren handles a mix of loose cells and rows: explicit loose
// cells first, then rows in order, then flow cells into the free slots.
func placeChildren(children []model.Child, bounds Bounds) ([]model.Child, Occupancy, error) {
	var (
		explicit, flow       []model.Cell
		explicitIDs, flowIDs []int
		rows                 []model.Row
		rowIDs               []int
	)
	for i, ch := range children {
		switch c := ch.(type) {
		case model.Cell:
			if c.Explicit() {
				explicit = append(explicit, c)
				explicitIDs = append(explicitIDs, i)
			} else {
				flow = append(flow, c)
				flowIDs = append(flowIDs, i)
			}
		case model.Row:
			rows = append(rows, c)
			rowIDs = append(rowIDs, i)
		}
	}

	out := make([]model.Child, len(children))

	placed, occ, err := place(explicit, explicitIDs, bounds, Empty())
	if err != nil {
		return nil, occ, err
	}
	for i, c := range placed {
		out[explicitIDs[i]] = c
	}

	placedRows, occ, err := PlaceRows(rows, bounds, occ, 0)
	if err != nil {
		return nil, occ, err
	}
	for i, r := range placedRows {
		out[rowIDs[i]] = r
	}

	placed, occ, err = place(flow, flowIDs, bounds, occ)
	if err != nil {
		return nil, occ, err
	}
	for i, c := range placed {
		out[flowIDs[i]] = c
	}

	return out, occ, nil
}

// inferColumns derives a column count when none is declared: the widest
// row or explicit cell extent, minimum 1.
func inferColumns(l *model.Layout) int {
	width := 1
	rowWidth := func(r model.Row) int {
		w := 0
		for _, c := range r.Cells {
			cols, _ := c.Span()
			if c.Explicit() {
				w = max(w, c.Position.Col+cols)
			} else {
				w += cols
			}
		}
		return w
	}
	if l.Kind != model.KindTable {
		for _, c := range l.Cells() {
			if r, ok := c.Rect(); ok {
				width = max(width, r.Right())
			}
		}
		return width
	}
	for _, ch := range l.Children {
		switch c := ch.(type) {
		case model.Row:
			width = max(width, rowWidth(c))
		case model.Cell:
			cols, _ := c.Span()
			if r, ok := c.Rect(); ok {
				width = max(width, r.Right())
			} else {
				width = max(width, cols)
			}
		}
	}
	for _, h := range l.Headers {
		for _, r := range h.Rows {
			width = max(width, rowWidth(r))
		}
	}
	for _, f := range l.Footers {
		for _, r := range f.Rows {
			width = max(width, rowWidth(r))
		}
	}
	return width
}
