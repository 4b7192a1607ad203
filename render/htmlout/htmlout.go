// Package htmlout renders a prepared document as HTML: grids become CSS
// grid containers, tables become semantic tables and stacks become flex
// containers.
//
// All text passes through interpolate.HTMLEscape before it enters the
// tree, and attribute values are escaped by html.Render.
package htmlout

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/folio/interpolate"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/property"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

// Render emits doc as an HTML fragment, or a complete document when
// doc.Options.FullDocument is set. Multiple layouts are separated by a
// newline.
func Render(doc *render.Document) (out string, err error) {
	defer validation.Recover(&err)

	r := &renderer{doc: doc}
	r.d = render.NewDispatcher[*html.Node](r, doc.Options.MaxDepth)

	nodes, err := r.d.All(doc)
	if err != nil {
		return "", err
	}
	if doc.RTL() {
		for _, n := range nodes {
			setAttr(n, "dir", "rtl")
		}
	}
	if doc.Options.FullDocument {
		return document(doc, nodes)
	}

	parts := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := renderNode(n)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, "\n"), nil
}

type renderer struct {
	doc *render.Document
	d   *render.Dispatcher[*html.Node]
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func setStyle(n *html.Node, d decls) {
	if len(d) > 0 {
		setAttr(n, "style", d.String())
	}
}

// text inserts pre-escaped text.
func text(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: interpolate.HTMLEscape(s)}
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", &validation.Error{Code: validation.CodeStructuralEncodeFailure, Message: "rendering HTML", Err: err}
	}
	return buf.String(), nil
}

// ============================================================================
// Layouts
// ============================================================================

func (r *renderer) Grid(l *render.Layout) (*html.Node, error) {
	n := element(atom.Div, "ash-grid")
	var d decls
	d.add("display", "grid")
	d.add("grid-template-columns", tracks(l.Tracks))
	if len(l.Props.Rows) > 0 {
		d.add("grid-template-rows", tracks(l.Props.Rows))
	}
	gaps(&d, l.Props, "column-gap", "row-gap")
	if a := l.Props.Align; a != nil {
		if a.H != property.HUnset {
			d.add("justify-items", justifyItems(a.H))
		}
		if a.V != property.VUnset {
			d.add("align-items", selfAlign(a.V))
		}
	}
	setStyle(n, d)

	borders := l.Borders()
	for _, c := range l.SortedCells() {
		cell, err := r.cell(atom.Div, c, l, borders)
		if err != nil {
			return nil, err
		}
		var cd decls
		cd.add("grid-column", fmt.Sprintf("%d / span %d", c.Col+1, c.ColSpan))
		cd.add("grid-row", fmt.Sprintf("%d / span %d", c.Row+1, c.RowSpan))
		prependStyle(cell, cd)
		n.AppendChild(cell)
	}
	return n, nil
}

func (r *renderer) Table(l *render.Layout) (*html.Node, error) {
	n := element(atom.Table, "ash-table")
	var d decls
	if l.Props.ColumnGutter != nil || l.Props.RowGutter != nil {
		d.add("border-collapse", "separate")
		cg, rg := "0", "0"
		if l.Props.ColumnGutter != nil {
			cg = length(*l.Props.ColumnGutter)
		}
		if l.Props.RowGutter != nil {
			rg = length(*l.Props.RowGutter)
		}
		d.add("border-spacing", cg+" "+rg)
	} else {
		d.add("border-collapse", "collapse")
	}
	setStyle(n, d)

	if cg := colgroup(l.Tracks); cg != nil {
		n.AppendChild(cg)
	}

	borders := l.Borders()
	for _, h := range l.Headers {
		sec, err := r.section(atom.Thead, "ash-header", atom.Th, h, l, borders)
		if err != nil {
			return nil, err
		}
		n.AppendChild(sec)
	}
	body := element(atom.Tbody, "")
	if err := r.rows(body, atom.Td, l.BodyGrid(), l, borders); err != nil {
		return nil, err
	}
	n.AppendChild(body)
	for _, f := range l.Footers {
		sec, err := r.section(atom.Tfoot, "ash-footer", atom.Td, f, l, borders)
		if err != nil {
			return nil, err
		}
		n.AppendChild(sec)
	}
	return n, nil
}

func (r *renderer) section(a atom.Atom, class string, cellAtom atom.Atom, s *render.Section, l *render.Layout, borders map[*render.Cell]map[render.LineSide]property.Stroke) (*html.Node, error) {
	n := element(a, class)
	if s.Repeat {
		setAttr(n, "data-repeat", "true")
	}
	if s.Level > 0 {
		setAttr(n, "data-level", strconv.Itoa(s.Level))
	}
	if err := r.rows(n, cellAtom, render.SectionGrid(s), l, borders); err != nil {
		return nil, err
	}
	return n, nil
}

// rows emits one <tr> per grid row. Slots that no cell covers get an empty
// cell so later cells keep their columns.
func (r *renderer) rows(parent *html.Node, cellAtom atom.Atom, grid [][]*render.Cell, l *render.Layout, borders map[*render.Cell]map[render.LineSide]property.Stroke) error {
	covered := make([][]bool, len(grid))
	for i := range covered {
		covered[i] = make([]bool, l.Columns)
	}
	for _, row := range grid {
		for _, c := range row {
			for y := c.Row; y < c.Row+c.RowSpan && y < len(grid); y++ {
				for x := c.Col; x < c.Col+c.ColSpan && x < l.Columns; x++ {
					covered[y][x] = true
				}
			}
		}
	}
	for y, row := range grid {
		tr := element(atom.Tr, "")
		anchors := map[int]*render.Cell{}
		for _, c := range row {
			anchors[c.Col] = c
		}
		for x := 0; x < l.Columns; x++ {
			if c, ok := anchors[x]; ok {
				td, err := r.cell(cellAtom, c, l, borders)
				if err != nil {
					return err
				}
				if c.ColSpan > 1 {
					setAttr(td, "colspan", strconv.Itoa(c.ColSpan))
				}
				if c.RowSpan > 1 {
					setAttr(td, "rowspan", strconv.Itoa(c.RowSpan))
				}
				tr.AppendChild(td)
				continue
			}
			if !covered[y][x] {
				tr.AppendChild(element(cellAtom, "ash-cell ash-empty"))
			}
		}
		parent.AppendChild(tr)
	}
	return nil
}

func colgroup(ts []property.Track) *html.Node {
	var total float64
	sized := false
	for _, t := range ts {
		switch t.Kind {
		case property.TrackFraction:
			total += t.Fraction
			sized = true
		case property.TrackFixed:
			sized = true
		}
	}
	if !sized {
		return nil
	}
	cg := element(atom.Colgroup, "")
	for _, t := range ts {
		col := element(atom.Col, "")
		var d decls
		switch t.Kind {
		case property.TrackFraction:
			if total > 0 {
				d.add("width", formatNumber(t.Fraction/total*100)+"%")
			}
		case property.TrackFixed:
			d.add("width", length(t.Length))
		}
		setStyle(col, d)
		cg.AppendChild(col)
	}
	return cg
}

func (r *renderer) Stack(l *render.Layout) (*html.Node, error) {
	n := element(atom.Div, "ash-stack")
	dir := l.Props.Direction
	if dir == "" {
		dir = property.TTB
	}
	var d decls
	d.add("display", "flex")
	d.add("flex-direction", dir.FlexDirection())
	if l.Props.Spacing != nil {
		d.add("gap", length(*l.Props.Spacing))
	}
	setStyle(n, d)

	for _, c := range l.BodyCells() {
		cell, err := r.cell(atom.Div, c, l, nil)
		if err != nil {
			return nil, err
		}
		n.AppendChild(cell)
	}
	return n, nil
}

func gaps(d *decls, s property.Set, colProp, rowProp string) {
	if s.ColumnGutter != nil {
		d.add(colProp, length(*s.ColumnGutter))
	}
	if s.RowGutter != nil {
		d.add(rowProp, length(*s.RowGutter))
	}
}

func prependStyle(n *html.Node, d decls) {
	for i := range n.Attr {
		if n.Attr[i].Key == "style" {
			n.Attr[i].Val = d.String() + "; " + n.Attr[i].Val
			return
		}
	}
	setStyle(n, d)
}

// ============================================================================
// Cells and content
// ============================================================================

// cell emits a cell with its effective properties. CSS does not cascade
// fills, strokes or padding into children, so every cell carries them.
func (r *renderer) cell(a atom.Atom, c *render.Cell, l *render.Layout, borders map[*render.Cell]map[render.LineSide]property.Stroke) (*html.Node, error) {
	n := element(a, "ash-cell")
	p := c.Props.Effective
	table := l.Kind == model.KindTable

	var d decls
	if p.Fill != nil {
		d.add("background-color", color(*p.Fill))
	}
	switch {
	case p.Stroke != nil:
		d.add("border", stroke(*p.Stroke))
	case table:
		d.add("border", stroke(render.DefaultTableStroke))
	}
	for side, s := range orderedSides(borders[c]) {
		d.add("border-"+side, stroke(s))
	}
	if p.Inset != nil {
		d.add("padding", length(*p.Inset))
	}
	if p.Height != nil {
		d.add("height", length(*p.Height))
	}
	if p.Align != nil {
		if p.Align.H != property.HUnset {
			d.add("text-align", textAlign(p.Align.H))
		}
		if p.Align.V != property.VUnset {
			if table {
				d.add("vertical-align", verticalAlign(p.Align.V))
			} else {
				d.add("align-self", selfAlign(p.Align.V))
			}
		}
	}
	if p.Breakable != nil && !*p.Breakable {
		d.add("break-inside", "avoid")
	}
	setStyle(n, d)

	for _, content := range c.Content {
		child, err := r.content(content)
		if err != nil {
			return nil, err
		}
		n.AppendChild(child)
	}
	return n, nil
}

var sideNames = []struct {
	side render.LineSide
	name string
}{
	{render.SideTop, "top"},
	{render.SideRight, "right"},
	{render.SideBottom, "bottom"},
	{render.SideLeft, "left"},
}

// orderedSides yields borders in a fixed order so output is stable.
func orderedSides(m map[render.LineSide]property.Stroke) func(func(string, property.Stroke) bool) {
	return func(yield func(string, property.Stroke) bool) {
		for _, s := range sideNames {
			if st, ok := m[s.side]; ok {
				if !yield(s.name, st) {
					return
				}
			}
		}
	}
}

func (r *renderer) content(c *render.Content) (*html.Node, error) {
	switch c.Kind {
	case model.KindLabel:
		n := element(atom.Span, "ash-label")
		setStyle(n, textStyle(c.Style))
		n.AppendChild(text(c.Text))
		return n, nil
	case model.KindField:
		f := c.Source.(model.Field)
		n := element(atom.Span, "ash-field")
		setAttr(n, "data-source", f.Path())
		if f.Format != "" {
			setAttr(n, "data-format", f.Format)
		}
		if !c.Found {
			setAttr(n, "data-missing", "true")
		}
		setStyle(n, textStyle(c.Style))
		n.AppendChild(text(c.Text))
		return n, nil
	case model.KindNestedLayout:
		return r.d.Render(c.Layout)
	}
	return nil, &validation.Error{
		Code:    validation.CodeInvalidNesting,
		Node:    c.Path,
		Message: fmt.Sprintf("unsupported content %s", c.Kind),
	}
}
