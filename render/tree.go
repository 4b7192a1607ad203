package render

import (
	"sort"

	"github.com/tsawler/folio/locale"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/property"
	"github.com/tsawler/folio/validation"
)

// Document is the resolved form of one render call.
type Document struct {
	Layouts   []*Layout
	Locale    *locale.Locale
	Direction string
	Options   Options
	Warnings  []validation.Warning
}

// RTL reports right-to-left text direction.
func (d *Document) RTL() bool { return d.Direction == "rtl" }

// Layout is a positioned layout with resolved properties.
type Layout struct {
	Kind  model.NodeKind
	Path  string
	Depth int

	// Source is the positioned IR node.
	Source *model.Layout

	Props property.Set

	// Tracks holds one entry per column: the declared tracks, or auto
	// tracks when the column count was inferred. Stacks have none.
	Tracks []property.Track

	Columns  int
	BodyRows int

	Children []Child
	Headers  []*Section
	Footers  []*Section
	Lines    []*Line

	// Gaps lists unoccupied body slots.
	Gaps []model.Position
}

// Child is one body child: exactly one of Cell and Row is set.
type Child struct {
	Cell *Cell
	Row  *Row
}

// Row is a row container and its cells.
type Row struct {
	Path  string
	Props model.Properties
	Cells []*Cell
}

// Section is a table header or footer.
type Section struct {
	Kind   model.NodeKind // KindHeader or KindFooter
	Path   string
	Repeat bool
	Level  int
	Rows   []*Row
	// RowCount is the number of grid rows the section occupies.
	RowCount int
}

// Cells returns the section's cells in row order.
func (s *Section) Cells() []*Cell {
	var out []*Cell
	for _, r := range s.Rows {
		out = append(out, r.Cells...)
	}
	return out
}

// Cell is a positioned cell with resolved properties and content.
type Cell struct {
	Path   string
	Source model.Cell
	// Explicit reports whether the authored cell carried a position.
	// Source is the positioned copy, so it always has one.
	Explicit bool
	Col      int
	Row     int
	ColSpan int
	RowSpan int
	Props   property.CellSet
	Content []*Content
}

// Content is a resolved content leaf.
type Content struct {
	Kind   model.NodeKind
	Path   string
	Source model.Content

	// Text is the interpolated label text or the formatted field value,
	// unescaped.
	Text  string
	Style property.TextStyle

	// Field only.
	Value any
	Found bool

	// NestedLayout only.
	Layout *Layout
}

// Line is a resolved decorative rule.
type Line struct {
	Path   string
	Source model.Line
	Stroke property.Stroke
}

// BodyCells returns every body cell in child order.
func (l *Layout) BodyCells() []*Cell {
	var out []*Cell
	for _, ch := range l.Children {
		if ch.Cell != nil {
			out = append(out, ch.Cell)
			continue
		}
		out = append(out, ch.Row.Cells...)
	}
	return out
}

// BodyGrid groups body cells by their anchor row, each row sorted by
// column. The result has BodyRows entries; rows covered only by spans
// are empty.
func (l *Layout) BodyGrid() [][]*Cell {
	return groupRows(l.BodyCells(), l.BodyRows)
}

// SectionGrid groups a header or footer's cells by anchor row.
func SectionGrid(s *Section) [][]*Cell {
	return groupRows(s.Cells(), s.RowCount)
}

func groupRows(cells []*Cell, rows int) [][]*Cell {
	out := make([][]*Cell, rows)
	for _, c := range cells {
		if c.Row >= 0 && c.Row < rows {
			out[c.Row] = append(out[c.Row], c)
		}
	}
	for _, r := range out {
		sort.SliceStable(r, func(i, j int) bool { return r[i].Col < r[j].Col })
	}
	return out
}

// SortedCells returns body cells ordered by (row, column).
func (l *Layout) SortedCells() []*Cell {
	cells := l.BodyCells()
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// TotalRows is the table row count including header and footer rows.
func (l *Layout) TotalRows() int {
	n := l.BodyRows
	for _, s := range l.Headers {
		n += s.RowCount
	}
	for _, s := range l.Footers {
		n += s.RowCount
	}
	return n
}
