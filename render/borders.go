package render

import (
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/property"
)

// DefaultTableStroke is applied to table cells when no stroke is set.
var DefaultTableStroke = property.Stroke{Thickness: property.Pt(0.5), Paint: property.Black}

// LineSide identifies a cell border.
type LineSide int

const (
	SideTop LineSide = iota
	SideBottom
	SideLeft
	SideRight
)

// PlacedCell is a cell with its row offset in the whole table: header
// rows come first, then the body, then footer rows.
type PlacedCell struct {
	Cell *Cell
	Row  int
}

// AllCells returns every cell of l with table-wide row indices.
func (l *Layout) AllCells() []PlacedCell {
	var out []PlacedCell
	offset := 0
	for _, s := range l.Headers {
		for _, c := range s.Cells() {
			out = append(out, PlacedCell{Cell: c, Row: offset + c.Row})
		}
		offset += s.RowCount
	}
	for _, c := range l.BodyCells() {
		out = append(out, PlacedCell{Cell: c, Row: offset + c.Row})
	}
	offset += l.BodyRows
	for _, s := range l.Footers {
		for _, c := range s.Cells() {
			out = append(out, PlacedCell{Cell: c, Row: offset + c.Row})
		}
		offset += s.RowCount
	}
	return out
}

// Borders maps each decorative line onto the cell edges it runs along.
// Backends without a line primitive draw lines as cell borders.
func (l *Layout) Borders() map[*Cell]map[LineSide]property.Stroke {
	out := map[*Cell]map[LineSide]property.Stroke{}
	if len(l.Lines) == 0 {
		return out
	}
	set := func(c *Cell, side LineSide, s property.Stroke) {
		if out[c] == nil {
			out[c] = map[LineSide]property.Stroke{}
		}
		out[c][side] = s
	}
	total := l.TotalRows()
	cells := l.AllCells()
	for _, ln := range l.Lines {
		src := ln.Source
		start, end := 0, l.Columns
		if src.Orientation == model.Vertical {
			end = total
		}
		if src.Start != nil {
			start = *src.Start
		}
		if src.End != nil {
			end = *src.End
		}
		for _, pc := range cells {
			c := pc.Cell
			if src.Orientation == model.Horizontal {
				if c.Col+c.ColSpan <= start || c.Col >= end {
					continue
				}
				if pc.Row+c.RowSpan == src.Position {
					set(c, SideBottom, ln.Stroke)
				}
				if pc.Row == src.Position {
					set(c, SideTop, ln.Stroke)
				}
				continue
			}
			if pc.Row+c.RowSpan <= start || pc.Row >= end {
				continue
			}
			if c.Col+c.ColSpan == src.Position {
				set(c, SideRight, ln.Stroke)
			}
			if c.Col == src.Position {
				set(c, SideLeft, ln.Stroke)
			}
		}
	}
	return out
}
