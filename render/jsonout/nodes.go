package jsonout

import (
	"reflect"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/render"
)

// FunctionSentinel replaces function-valued properties, which have no
// serialized form.
const FunctionSentinel = "<function>"

// Layout is the serialized form of a grid, table or stack.
type Layout struct {
	Type       string         `json:"type"`
	Path       string         `json:"path"`
	Direction  string         `json:"direction,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Columns    int            `json:"columns"`
	Rows       int            `json:"rows"`
	Headers    []Section      `json:"headers,omitempty"`
	Children   []any          `json:"children"`
	Footers    []Section      `json:"footers,omitempty"`
	Lines      []Line         `json:"lines,omitempty"`
}

// Section is a table header or footer.
type Section struct {
	Type   string `json:"type"`
	Repeat bool   `json:"repeat"`
	Level  int    `json:"level,omitempty"`
	Rows   []Row  `json:"rows"`
}

// Row is a row container.
type Row struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	Cells      []Cell         `json:"cells"`
}

// Cell is a positioned cell. Position and Span are (column, row) pairs.
type Cell struct {
	Type       string         `json:"type"`
	Path       string         `json:"path"`
	Position   [2]int         `json:"position"`
	Span       [2]int         `json:"span"`
	Explicit   bool           `json:"explicit,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Content    []any          `json:"content"`
}

// Label is literal text after interpolation. Template holds the authored
// text when it contained placeholders.
type Label struct {
	Type     string         `json:"type"`
	Text     string         `json:"text"`
	Template string         `json:"template,omitempty"`
	Style    map[string]any `json:"style,omitempty"`
}

// Field carries both the raw value and its formatted text.
type Field struct {
	Type          string         `json:"type"`
	Source        []string       `json:"source"`
	Format        string         `json:"format,omitempty"`
	DecimalPlaces *int           `json:"decimal_places,omitempty"`
	Value         any            `json:"value"`
	Text          string         `json:"text"`
	Found         bool           `json:"found"`
	Style         map[string]any `json:"style,omitempty"`
}

// Nested wraps a layout embedded in a cell.
type Nested struct {
	Type   string  `json:"type"`
	Layout *Layout `json:"layout"`
}

// Line is a decorative rule.
type Line struct {
	Type        string `json:"type"`
	Orientation string `json:"orientation"`
	Position    int    `json:"position"`
	Start       *int   `json:"start,omitempty"`
	End         *int   `json:"end,omitempty"`
	Stroke      any    `json:"stroke,omitempty"`
}

// ============================================================================
// Conversion
// ============================================================================

func typeName(k model.NodeKind) string { return k.String() }

func (r *renderer) layout(l *render.Layout) (*Layout, error) {
	out := &Layout{
		Type:       typeName(l.Kind),
		Path:       l.Path,
		Properties: properties(l.Source.Properties),
		Columns:    l.Columns,
		Rows:       l.BodyRows,
		Children:   []any{},
	}
	for _, h := range l.Headers {
		s, err := r.section(h)
		if err != nil {
			return nil, err
		}
		out.Headers = append(out.Headers, s)
	}
	for _, ch := range l.Children {
		if ch.Cell != nil {
			c, err := r.cell(ch.Cell)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, c)
			continue
		}
		row, err := r.row(ch.Row)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, row)
	}
	for _, f := range l.Footers {
		s, err := r.section(f)
		if err != nil {
			return nil, err
		}
		out.Footers = append(out.Footers, s)
	}
	for _, ln := range l.Lines {
		src := ln.Source
		out.Lines = append(out.Lines, Line{
			Type:        typeName(model.KindLine),
			Orientation: src.Orientation.String(),
			Position:    src.Position,
			Start:       src.Start,
			End:         src.End,
			Stroke:      raw(src.Stroke),
		})
	}
	return out, nil
}

func (r *renderer) section(s *render.Section) (Section, error) {
	out := Section{Type: typeName(s.Kind), Repeat: s.Repeat, Level: s.Level, Rows: []Row{}}
	for _, row := range s.Rows {
		rj, err := r.row(row)
		if err != nil {
			return Section{}, err
		}
		out.Rows = append(out.Rows, rj)
	}
	return out, nil
}

func (r *renderer) row(row *render.Row) (Row, error) {
	out := Row{Type: typeName(model.KindRow), Properties: properties(row.Props), Cells: []Cell{}}
	for _, c := range row.Cells {
		cj, err := r.cell(c)
		if err != nil {
			return Row{}, err
		}
		out.Cells = append(out.Cells, cj)
	}
	return out, nil
}

func (r *renderer) cell(c *render.Cell) (Cell, error) {
	out := Cell{
		Type:       typeName(model.KindCell),
		Path:       c.Path,
		Position:   [2]int{c.Col, c.Row},
		Span:       [2]int{c.ColSpan, c.RowSpan},
		Explicit:   c.Explicit,
		Properties: properties(c.Source.Properties),
		Content:    []any{},
	}
	for _, item := range c.Content {
		switch item.Kind {
		case model.KindLabel:
			src := item.Source.(model.Label)
			lj := Label{Type: typeName(item.Kind), Text: item.Text, Style: style(src.Style)}
			if src.Text != item.Text {
				lj.Template = src.Text
			}
			out.Content = append(out.Content, lj)
		case model.KindField:
			src := item.Source.(model.Field)
			out.Content = append(out.Content, Field{
				Type:          typeName(item.Kind),
				Source:        src.Source,
				Format:        src.Format,
				DecimalPlaces: src.DecimalPlaces,
				Value:         item.Value,
				Text:          item.Text,
				Found:         item.Found,
				Style:         style(src.Style),
			})
		case model.KindNestedLayout:
			nested, err := r.d.Render(item.Layout)
			if err != nil {
				return Cell{}, err
			}
			out.Content = append(out.Content, Nested{Type: typeName(item.Kind), Layout: nested})
		}
	}
	return out, nil
}

// properties returns the authored property values in serializable form.
func properties(p model.Properties) map[string]any {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = raw(v)
	}
	return out
}

func style(s model.Style) map[string]any {
	if s.IsZero() {
		return nil
	}
	out := map[string]any{}
	for k, v := range map[string]any{
		"font_size":        s.FontSize,
		"font_weight":      s.FontWeight,
		"font_style":       s.FontStyle,
		"color":            s.Color,
		"background_color": s.BackgroundColor,
		"font_family":      s.FontFamily,
		"text_align":       s.TextAlign,
	} {
		if v != nil {
			out[k] = raw(v)
		}
	}
	return out
}

// raw converts an authored value for encoding. Functions become the
// sentinel and nested containers are converted element-wise.
func raw(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case model.PropertyFunc:
		return FunctionSentinel
	case model.Properties:
		return properties(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = raw(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = raw(e)
		}
		return out
	case model.Position:
		return [2]int{t.Col, t.Row}
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return FunctionSentinel
	}
	return v
}
