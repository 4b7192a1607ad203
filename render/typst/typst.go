// Package typst renders a prepared document as Typst markup. Each layout
// becomes one function call (#grid, #table or #stack) whose cells carry
// their own explicit coordinates.
package typst

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/property"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

// Render emits doc as markup source. Layouts are separated by a blank
// line and preceded by the page preamble when one is configured.
func Render(doc *render.Document) (out string, err error) {
	defer validation.Recover(&err)

	r := &renderer{doc: doc}
	r.d = render.NewDispatcher[expr](r, doc.Options.MaxDepth)

	exprs, err := r.d.All(doc)
	if err != nil {
		return "", err
	}

	var parts []string
	pre, err := preamble(doc)
	if err != nil {
		return "", err
	}
	if pre != "" {
		parts = append(parts, pre)
	}
	for _, e := range exprs {
		parts = append(parts, format(e, doc.Options.Pretty))
	}
	return strings.Join(parts, "\n\n"), nil
}

type renderer struct {
	doc *render.Document
	d   *render.Dispatcher[expr]
}

func (r *renderer) Grid(l *render.Layout) (expr, error) {
	c := &call{hash: true, name: "grid"}
	r.layoutArgs(c, l)
	for _, cell := range l.SortedCells() {
		e, err := r.cell("grid.cell", cell, cell.Row, true)
		if err != nil {
			return nil, err
		}
		c.add(e)
	}
	lines(c, "grid", l)
	return c, nil
}

func (r *renderer) Table(l *render.Layout) (expr, error) {
	c := &call{hash: true, name: "table"}
	r.layoutArgs(c, l)
	if l.Props.Stroke == nil {
		c.add(arg("stroke", stroke(render.DefaultTableStroke)))
	}

	offset := 0
	for _, h := range l.Headers {
		sec, err := r.section("table.header", h)
		if err != nil {
			return nil, err
		}
		c.add(sec)
		offset += h.RowCount
	}
	for _, cell := range l.SortedCells() {
		e, err := r.cell("table.cell", cell, offset+cell.Row, true)
		if err != nil {
			return nil, err
		}
		c.add(e)
	}
	for _, f := range l.Footers {
		sec, err := r.section("table.footer", f)
		if err != nil {
			return nil, err
		}
		c.add(sec)
	}
	lines(c, "table", l)
	return c, nil
}

// section emits a header or footer. Its cells are placed by column only;
// rows follow the section's own order.
func (r *renderer) section(name string, s *render.Section) (expr, error) {
	c := &call{name: name}
	c.add(arg("repeat", strconv.FormatBool(s.Repeat)))
	if s.Level > 0 {
		c.add(arg("level", strconv.Itoa(s.Level)))
	}
	cellName := strings.Split(name, ".")[0] + ".cell"
	for _, row := range render.SectionGrid(s) {
		for _, cell := range row {
			e, err := r.cell(cellName, cell, 0, false)
			if err != nil {
				return nil, err
			}
			c.add(e)
		}
	}
	return c, nil
}

func (r *renderer) Stack(l *render.Layout) (expr, error) {
	c := &call{hash: true, name: "stack"}
	dir := l.Props.Direction
	if dir == "" {
		dir = property.TTB
	}
	c.add(arg("dir", string(dir)))
	if l.Props.Spacing != nil {
		c.add(arg("spacing", length(*l.Props.Spacing)))
	}
	for _, cell := range l.BodyCells() {
		body, err := r.content(cell)
		if err != nil {
			return nil, err
		}
		c.add(wrapBlock(cell.Props.Local, body))
	}
	return c, nil
}

// layoutArgs emits the container's own track and styling arguments.
func (r *renderer) layoutArgs(c *call, l *render.Layout) {
	p := l.Props
	c.add(arg("columns", trackList(l.Tracks)))
	if rows := rowTracks(l); rows != "" {
		c.add(arg("rows", rows))
	}
	if p.ColumnGutter != nil {
		c.add(arg("column-gutter", length(*p.ColumnGutter)))
	}
	if p.RowGutter != nil {
		c.add(arg("row-gutter", length(*p.RowGutter)))
	}
	if p.Fill != nil {
		c.add(arg("fill", color(*p.Fill)))
	}
	if p.Stroke != nil {
		c.add(arg("stroke", stroke(*p.Stroke)))
	}
	if p.Inset != nil {
		c.add(arg("inset", length(*p.Inset)))
	}
	if p.Align != nil && !p.Align.IsZero() {
		c.add(arg("align", alignment(*p.Align)))
	}
}

// rowTracks returns the declared row tracks, or auto rows carrying row
// heights when any row sets one.
func rowTracks(l *render.Layout) string {
	if len(l.Props.Rows) > 0 {
		return trackList(l.Props.Rows)
	}
	placed := l.AllCells()
	total := l.BodyRows
	if l.Kind == model.KindTable {
		total = l.TotalRows()
	}
	rows := make([]string, total)
	found := false
	for _, pc := range placed {
		if h := pc.Cell.Props.Effective.Height; h != nil && pc.Row < total {
			rows[pc.Row] = length(*h)
			found = true
		}
	}
	if !found {
		return ""
	}
	for i := range rows {
		if rows[i] == "" {
			rows[i] = "auto"
		}
	}
	return array(rows)
}

// cell emits a positioned cell with the properties it sets itself.
func (r *renderer) cell(name string, c *render.Cell, y int, withY bool) (expr, error) {
	body, err := r.content(c)
	if err != nil {
		return nil, err
	}
	e := &call{name: name, body: body}
	e.add(arg("x", strconv.Itoa(c.Col)))
	if withY {
		e.add(arg("y", strconv.Itoa(y)))
	}
	if c.ColSpan > 1 {
		e.add(arg("colspan", strconv.Itoa(c.ColSpan)))
	}
	if c.RowSpan > 1 {
		e.add(arg("rowspan", strconv.Itoa(c.RowSpan)))
	}
	p := c.Props.Local
	if p.Fill != nil {
		e.add(arg("fill", color(*p.Fill)))
	}
	if p.Stroke != nil {
		e.add(arg("stroke", stroke(*p.Stroke)))
	}
	if p.Inset != nil {
		e.add(arg("inset", length(*p.Inset)))
	}
	if p.Align != nil && !p.Align.IsZero() {
		e.add(arg("align", alignment(*p.Align)))
	}
	if p.Breakable != nil {
		e.add(arg("breakable", strconv.FormatBool(*p.Breakable)))
	}
	return e, nil
}

// wrapBlock applies cell properties to a stack child, which has no cell
// element of its own.
func wrapBlock(p property.Set, body *block) expr {
	if p.Align != nil && !p.Align.IsZero() {
		body = &block{items: []expr{&call{hash: true, name: "align", args: []expr{raw(alignment(*p.Align))}, body: body}}}
	}
	b := &call{name: "block", body: body}
	if p.Fill != nil {
		b.add(arg("fill", color(*p.Fill)))
	}
	if p.Stroke != nil {
		b.add(arg("stroke", stroke(*p.Stroke)))
	}
	if p.Inset != nil {
		b.add(arg("inset", length(*p.Inset)))
	}
	if p.Breakable != nil {
		b.add(arg("breakable", strconv.FormatBool(*p.Breakable)))
	}
	if len(b.args) == 0 {
		return body
	}
	return b
}

func lines(c *call, prefix string, l *render.Layout) {
	for _, ln := range l.Lines {
		src := ln.Source
		e := &call{name: prefix + ".hline"}
		axis := "y"
		if src.Orientation == model.Vertical {
			e.name = prefix + ".vline"
			axis = "x"
		}
		e.add(arg(axis, strconv.Itoa(src.Position)))
		if src.Start != nil {
			e.add(arg("start", strconv.Itoa(*src.Start)))
		}
		if src.End != nil {
			e.add(arg("end", strconv.Itoa(*src.End)))
		}
		e.add(arg("stroke", stroke(ln.Stroke)))
		c.add(e)
	}
}

// ============================================================================
// Content
// ============================================================================

func (r *renderer) content(c *render.Cell) (*block, error) {
	b := &block{}
	for _, item := range c.Content {
		switch item.Kind {
		case model.KindLabel, model.KindField:
			b.items = append(b.items, styled(item.Text, item.Style))
		case model.KindNestedLayout:
			e, err := r.d.Render(item.Layout)
			if err != nil {
				return nil, err
			}
			b.items = append(b.items, e)
		default:
			return nil, &validation.Error{
				Code:    validation.CodeInvalidNesting,
				Node:    item.Path,
				Message: fmt.Sprintf("unsupported content %s", item.Kind),
			}
		}
	}
	return b, nil
}

// styled renders text as a string literal wrapped in the calls its style
// needs.
func styled(text string, st property.TextStyle) expr {
	e := quote(text)

	var args []string
	if st.Family != "" {
		args = append(args, "font: "+quote(st.Family))
	}
	if st.Size != nil {
		args = append(args, "size: "+length(*st.Size))
	}
	if st.Weight != 0 {
		args = append(args, "weight: "+quote(st.Weight.Name()))
	}
	if st.Style != "" {
		args = append(args, "style: "+quote(string(st.Style)))
	}
	if st.Color != nil {
		args = append(args, "fill: "+color(*st.Color))
	}
	if len(args) > 0 {
		e = "text(" + strings.Join(args, ", ") + ", " + e + ")"
	}
	if st.Background != nil {
		e = "highlight(fill: " + color(*st.Background) + ", " + e + ")"
	}
	if st.Align != property.HUnset {
		e = "align(" + horizontal(st.Align) + ", " + e + ")"
	}
	return raw("#" + e)
}
