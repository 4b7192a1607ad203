package model

// Layout is a Grid, Table or Stack with its children.
type Layout struct {
	Kind       NodeKind
	Properties Properties
	Children   []Child
	Lines      []Line

	// Table only
	Headers []Header
	Footers []Footer
}

func (l *Layout) Type() NodeKind { return l.Kind }

// NewGrid creates a grid layout.
func NewGrid(props Properties, children ...Child) *Layout {
	return &Layout{Kind: KindGrid, Properties: props, Children: children}
}

// NewTable creates a table layout.
func NewTable(props Properties, children ...Child) *Layout {
	return &Layout{Kind: KindTable, Properties: props, Children: children}
}

// NewStack creates a stack layout.
func NewStack(props Properties, children ...Child) *Layout {
	return &Layout{Kind: KindStack, Properties: props, Children: children}
}

// WithHeaders returns a copy of the layout with the given header sections.
func (l *Layout) WithHeaders(headers ...Header) *Layout {
	c := *l
	c.Headers = headers
	return &c
}

// WithFooters returns a copy of the layout with the given footer sections.
func (l *Layout) WithFooters(footers ...Footer) *Layout {
	c := *l
	c.Footers = footers
	return &c
}

// WithLines returns a copy of the layout with the given decorative lines.
func (l *Layout) WithLines(lines ...Line) *Layout {
	c := *l
	c.Lines = lines
	return &c
}

// WithChildren returns a copy of the layout with its children replaced.
func (l *Layout) WithChildren(children []Child) *Layout {
	c := *l
	c.Children = children
	return &c
}

// Cells returns the layout's direct Cell children, skipping rows.
func (l *Layout) Cells() []Cell {
	var cells []Cell
	for _, ch := range l.Children {
		if c, ok := ch.(Cell); ok {
			cells = append(cells, c)
		}
	}
	return cells
}

// Rows returns the layout's direct Row children.
func (l *Layout) Rows() []Row {
	var rows []Row
	for _, ch := range l.Children {
		if r, ok := ch.(Row); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// IsEmpty reports whether the layout has no children and no sections.
func (l *Layout) IsEmpty() bool {
	return len(l.Children) == 0 && len(l.Headers) == 0 && len(l.Footers) == 0
}

// Position is a zero-based (column, row) coordinate.
type Position struct {
	Col int
	Row int
}

// Cell is a single grid/table slot.
type Cell struct {
	// Position is nil for flow cells.
	Position   *Position
	ColSpan    int // values < 1 are treated as 1
	RowSpan    int // values < 1 are treated as 1
	Properties Properties
	Content    []Content
}

func (Cell) Type() NodeKind { return KindCell }
func (Cell) isChild()       {}

// NewCell creates a flow cell with a 1x1 span.
func NewCell(content ...Content) Cell {
	return Cell{ColSpan: 1, RowSpan: 1, Content: content}
}

// NewCellAt creates an explicitly positioned cell with a 1x1 span.
func NewCellAt(col, row int, content ...Content) Cell {
	return Cell{Position: &Position{Col: col, Row: row}, ColSpan: 1, RowSpan: 1, Content: content}
}

// Explicit reports whether the cell's position was authored.
func (c Cell) Explicit() bool { return c.Position != nil }

// Span returns the normalized (colspan, rowspan) pair.
func (c Cell) Span() (cols, rows int) {
	cols, rows = c.ColSpan, c.RowSpan
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// WithSpan returns a copy of the cell with the given span.
func (c Cell) WithSpan(cols, rows int) Cell {
	c.ColSpan, c.RowSpan = cols, rows
	return c
}

// WithProperties returns a copy of the cell with its properties replaced.
func (c Cell) WithProperties(props Properties) Cell {
	c.Properties = props
	return c
}

// At returns a copy of the cell anchored at (col, row).
func (c Cell) At(col, row int) Cell {
	c.Position = &Position{Col: col, Row: row}
	return c
}

// Rect returns the occupied rectangle of a positioned cell. The second
// result is false for flow cells.
func (c Cell) Rect() (Rect, bool) {
	if c.Position == nil {
		return Rect{}, false
	}
	cols, rows := c.Span()
	return Rect{Col: c.Position.Col, Row: c.Position.Row, Cols: cols, Rows: rows}, true
}

// Row is an ordered group of cells with row-level properties.
type Row struct {
	Cells      []Cell
	Properties Properties
}

func (Row) Type() NodeKind { return KindRow }
func (Row) isChild()       {}

// NewRow creates a row.
func NewRow(props Properties, cells ...Cell) Row {
	return Row{Cells: cells, Properties: props}
}

// Header is a repeatable group of table rows rendered before the body.
type Header struct {
	Rows   []Row
	Repeat bool
	Level  int
}

func (Header) Type() NodeKind { return KindHeader }

// Footer is a repeatable group of table rows rendered after the body.
type Footer struct {
	Rows   []Row
	Repeat bool
	Level  int
}

func (Footer) Type() NodeKind { return KindFooter }

// Orientation of a decorative line.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Line is a decorative rule. Position is a row boundary index for
// horizontal lines and a column boundary index for vertical lines; Start
// and End bound the line along the other axis.
type Line struct {
	Orientation Orientation
	Position    int
	Start       *int
	End         *int
	Stroke      any
}

func (Line) Type() NodeKind { return KindLine }

// HLine creates a horizontal line at the given row boundary.
func HLine(y int, stroke any) Line {
	return Line{Orientation: Horizontal, Position: y, Stroke: stroke}
}

// VLine creates a vertical line at the given column boundary.
func VLine(x int, stroke any) Line {
	return Line{Orientation: Vertical, Position: x, Stroke: stroke}
}

// Between returns a copy of the line bounded to [start, end).
func (ln Line) Between(start, end int) Line {
	ln.Start = &start
	ln.End = &end
	return ln
}
