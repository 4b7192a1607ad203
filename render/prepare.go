package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/folio/interpolate"
	"github.com/tsawler/folio/locale"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/position"
	"github.com/tsawler/folio/property"
	"github.com/tsawler/folio/validation"
)

// Prepare positions, resolves and interpolates layouts. The returned
// document is shared by every backend. Structural problems are returned as
// *validation.Error; cosmetic ones are collected in Document.Warnings.
func Prepare(layouts []*model.Layout, opts Options) (*Document, error) {
	opts = opts.WithDefaults()
	log := opts.Logger.Named("prepare")

	dir := opts.TextDirection()
	if dir != "ltr" && dir != "rtl" {
		return nil, &validation.Error{
			Code:     validation.CodeInvalidProperty,
			Property: "direction",
			Value:    dir,
			Message:  "unknown text direction",
			Allowed:  []string{"ltr", "rtl"},
		}
	}

	f, warnings := locale.New(opts.Locale, opts.Logger.Named("locale"))
	if opts.Currency != "" {
		warnings = append(warnings, f.SetCurrency(opts.Currency)...)
	}
	p := &preparer{
		opts:     opts,
		log:      log,
		res:      property.NewResolver(opts.Logger.Named("property")),
		ip:       interpolate.New(f),
		ctx:      opts.Context(),
		warnings: warnings,
	}

	doc := &Document{Locale: f.Locale(), Direction: dir, Options: opts}
	for i, l := range layouts {
		parent := ""
		if len(layouts) > 1 {
			parent = fmt.Sprintf("layout[%d]", i)
		}
		rl, err := p.layout(l, parent, 0)
		if err != nil {
			return nil, err
		}
		doc.Layouts = append(doc.Layouts, rl)
	}
	doc.Warnings = p.warnings
	log.Debug("prepared document",
		zap.Int("layouts", len(doc.Layouts)),
		zap.String("locale", doc.Locale.Code),
		zap.Int("warnings", len(doc.Warnings)))
	return doc, nil
}

type preparer struct {
	opts     Options
	log      *zap.Logger
	res      *property.Resolver
	ip       *interpolate.Interpolator
	ctx      interpolate.Context
	warnings []validation.Warning
}

func join(parent, node string) string {
	if parent == "" {
		return node
	}
	return parent + "/" + node
}

func (p *preparer) layout(l *model.Layout, parent string, depth int) (*Layout, error) {
	if l == nil {
		return nil, &validation.Error{
			Code:    validation.CodeMissingRequiredProperty,
			Node:    parent,
			Message: "nested layout is nil",
		}
	}
	path := join(parent, l.Kind.String())
	if depth > p.opts.MaxDepth {
		return nil, &validation.Error{
			Code:    validation.CodeInvalidNesting,
			Node:    path,
			Message: fmt.Sprintf("layout nesting exceeds %d levels", p.opts.MaxDepth),
		}
	}

	placement, err := position.Layout(l)
	if err != nil {
		return nil, validation.Locate(err, parent)
	}
	src := placement.Layout

	props, warnings, err := p.res.Layout(src.Properties, property.Scope{
		Node: path, Column: -1, Row: -1, Record: p.ctx.Record, Variables: p.ctx.Variables,
	})
	if err != nil {
		return nil, err
	}
	p.warnings = append(p.warnings, warnings...)

	out := &Layout{
		Kind:     src.Kind,
		Path:     path,
		Depth:    depth,
		Source:   src,
		Props:    props,
		Columns:  placement.Columns,
		BodyRows: placement.BodyRows,
	}
	if src.Kind != model.KindStack {
		out.Tracks = props.Columns
		if len(out.Tracks) == 0 {
			out.Tracks = make([]property.Track, placement.Columns)
			for i := range out.Tracks {
				out.Tracks[i] = property.Auto
			}
		}
	}

	if err := p.children(out, src, l, depth); err != nil {
		return nil, err
	}
	for i, h := range src.Headers {
		s, err := p.section(out, model.KindHeader, i, h.Rows, l.Headers[i].Rows, h.Repeat, h.Level, placement.HeaderRows[i], depth)
		if err != nil {
			return nil, err
		}
		out.Headers = append(out.Headers, s)
	}
	for i, f := range src.Footers {
		s, err := p.section(out, model.KindFooter, i, f.Rows, l.Footers[i].Rows, f.Repeat, f.Level, placement.FooterRows[i], depth)
		if err != nil {
			return nil, err
		}
		out.Footers = append(out.Footers, s)
	}
	if err := p.lines(out, src); err != nil {
		return nil, err
	}

	if src.Kind != model.KindStack {
		out.Gaps = placement.Gaps()
		if p.opts.ReportGaps {
			for _, g := range out.Gaps {
				p.warnings = append(p.warnings, validation.Warning{
					Code:    validation.CodeGridGap,
					Node:    path + "/body",
					Value:   fmt.Sprintf("(%d, %d)", g.Col, g.Row),
					Message: fmt.Sprintf("no cell covers column %d, row %d", g.Col, g.Row),
				})
			}
		}
	}
	return out, nil
}

// children prepares the positioned body of src; authored is the layout
// before positioning, with children in the same order.
func (p *preparer) children(out *Layout, src, authored *model.Layout, depth int) error {
	body := out.Path + "/body"
	if src.Kind == model.KindStack {
		body = out.Path
	}
	rowOrdinal := 0
	for i, ch := range src.Children {
		switch c := ch.(type) {
		case model.Cell:
			cellPath := fmt.Sprintf("%s/cell[%d]", body, i)
			col, row := 0, i
			if src.Kind != model.KindStack {
				col, row = c.Position.Col, c.Position.Row
			}
			explicit := authored.Children[i].(model.Cell).Explicit()
			cell, err := p.cell(c, explicit, src.Properties, nil, cellPath, col, row, depth)
			if err != nil {
				return err
			}
			out.Children = append(out.Children, Child{Cell: cell})
		case model.Row:
			rowPath := fmt.Sprintf("%s/row[%d]", body, rowOrdinal)
			rowOrdinal++
			if src.Kind == model.KindStack {
				return &validation.Error{
					Code:    validation.CodeInvalidNesting,
					Node:    rowPath,
					Message: "rows are only valid in grids and tables",
				}
			}
			row, err := p.row(c, authored.Children[i].(model.Row), src.Properties, rowPath, depth)
			if err != nil {
				return err
			}
			out.Children = append(out.Children, Child{Row: row})
		}
	}
	return nil
}

func (p *preparer) row(r, authored model.Row, layoutProps model.Properties, path string, depth int) (*Row, error) {
	out := &Row{Path: path, Props: r.Properties}
	for j, c := range r.Cells {
		cell, err := p.cell(c, authored.Cells[j].Explicit(), layoutProps, r.Properties, fmt.Sprintf("%s/cell[%d]", path, j),
			c.Position.Col, c.Position.Row, depth)
		if err != nil {
			return nil, err
		}
		out.Cells = append(out.Cells, cell)
	}
	return out, nil
}

func (p *preparer) section(out *Layout, kind model.NodeKind, i int, rows, authored []model.Row, repeat bool, level, count, depth int) (*Section, error) {
	s := &Section{
		Kind:     kind,
		Path:     fmt.Sprintf("%s/%s[%d]", out.Path, kind, i),
		Repeat:   repeat,
		Level:    level,
		RowCount: count,
	}
	for j, r := range rows {
		row, err := p.row(r, authored[j], out.Source.Properties, fmt.Sprintf("%s/row[%d]", s.Path, j), depth)
		if err != nil {
			return nil, err
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func (p *preparer) cell(c model.Cell, explicit bool, layoutProps, rowProps model.Properties, path string, col, row, depth int) (*Cell, error) {
	cs, warnings, err := p.res.Cell(layoutProps, rowProps, c.Properties, property.Scope{
		Node: path, Column: col, Row: row, Record: p.ctx.Record, Variables: p.ctx.Variables,
	})
	if err != nil {
		return nil, err
	}
	p.warnings = append(p.warnings, warnings...)

	cols, rows := c.Span()
	out := &Cell{Path: path, Source: c, Explicit: explicit, Col: col, Row: row, ColSpan: cols, RowSpan: rows, Props: cs}
	for k, item := range c.Content {
		content, err := p.content(item, fmt.Sprintf("%s/content[%d]", path, k), depth)
		if err != nil {
			return nil, err
		}
		out.Content = append(out.Content, content)
	}
	return out, nil
}

func (p *preparer) content(item model.Content, path string, depth int) (*Content, error) {
	switch c := item.(type) {
	case model.Label:
		style, err := p.style(c.Style, path)
		if err != nil {
			return nil, err
		}
		return &Content{
			Kind:   model.KindLabel,
			Path:   path,
			Source: c,
			Text:   p.ip.Text(c.Text, p.ctx),
			Style:  style,
		}, nil

	case model.Field:
		if len(c.Source) == 0 {
			return nil, &validation.Error{
				Code:     validation.CodeMissingRequiredProperty,
				Node:     path,
				Property: "source",
				Message:  "field source path is empty",
			}
		}
		style, err := p.style(c.Style, path)
		if err != nil {
			return nil, err
		}
		value, text, found, warnings := p.ip.Field(c.Source, c.Format, c.DecimalPlaces, p.ctx)
		for _, w := range warnings {
			w.Node = path
			w.Property = "format"
			p.warnings = append(p.warnings, w)
		}
		if !found {
			p.log.Debug("field value not found", zap.String("node", path), zap.String("source", c.Path()))
		}
		return &Content{
			Kind:   model.KindField,
			Path:   path,
			Source: c,
			Text:   text,
			Style:  style,
			Value:  value,
			Found:  found,
		}, nil

	case model.NestedLayout:
		nested, err := p.layout(c.Layout, path, depth+1)
		if err != nil {
			return nil, err
		}
		return &Content{Kind: model.KindNestedLayout, Path: path, Source: c, Layout: nested}, nil
	}
	return nil, &validation.Error{
		Code:    validation.CodeInvalidNesting,
		Node:    path,
		Message: fmt.Sprintf("unsupported content %T", item),
	}
}

func (p *preparer) style(s model.Style, path string) (property.TextStyle, error) {
	if s.IsZero() {
		return property.TextStyle{}, nil
	}
	st, warnings, err := property.ResolveStyle(s, path)
	if err != nil {
		return property.TextStyle{}, err
	}
	p.warnings = append(p.warnings, warnings...)
	return st, nil
}

func (p *preparer) lines(out *Layout, src *model.Layout) error {
	if len(src.Lines) == 0 {
		return nil
	}
	if src.Kind == model.KindStack {
		return &validation.Error{
			Code:    validation.CodeInvalidNesting,
			Node:    out.Path + "/line[0]",
			Message: "lines are only valid in grids and tables",
		}
	}
	rows := out.TotalRows()
	for i, ln := range src.Lines {
		path := fmt.Sprintf("%s/line[%d]", out.Path, i)
		limit, span := rows, out.Columns
		if ln.Orientation == model.Vertical {
			limit, span = out.Columns, rows
		}
		if ln.Position < 0 || ln.Position > limit {
			return &validation.Error{
				Code:     validation.CodeInvalidPosition,
				Node:     path,
				Property: "position",
				Value:    ln.Position,
				Message:  fmt.Sprintf("%s line position must be in 0..%d", ln.Orientation, limit),
			}
		}
		start, end := 0, span
		if ln.Start != nil {
			start = *ln.Start
		}
		if ln.End != nil {
			end = *ln.End
		}
		if start < 0 || end > span || start >= end {
			return &validation.Error{
				Code:    validation.CodeInvalidPosition,
				Node:    path,
				Value:   fmt.Sprintf("[%d, %d)", start, end),
				Message: fmt.Sprintf("line extent must lie within 0..%d", span),
			}
		}

		stroke := property.DefaultStroke
		if ln.Stroke != nil {
			st, err := property.ParseStroke(ln.Stroke)
			if err != nil {
				if validation.CodeOf(err) != validation.CodeInvalidColor {
					return &validation.Error{
						Code: validation.CodeInvalidProperty, Node: path, Property: "stroke",
						Value: ln.Stroke, Message: "invalid stroke", Err: err,
					}
				}
				p.warnings = append(p.warnings, validation.Warning{
					Code: validation.CodeInvalidColor, Node: path, Property: "stroke",
					Value: ln.Stroke, Message: "invalid stroke paint; using black",
				})
			}
			stroke = st
		}
		out.Lines = append(out.Lines, &Line{Path: path, Source: ln, Stroke: stroke})
	}
	return nil
}
