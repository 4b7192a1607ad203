package model

import "strings"

// Label is literal text. It may contain [path] placeholders that are
// resolved against the data context.
type Label struct {
	Text  string
	Style Style
}

func (Label) Type() NodeKind { return KindLabel }
func (Label) isContent()     {}

// Field is a value read from the data context by walking Source.
type Field struct {
	Source        []string
	Format        string
	DecimalPlaces *int
	Style         Style
}

func (Field) Type() NodeKind { return KindField }
func (Field) isContent()     {}

// Path returns the dot-joined source path.
func (f Field) Path() string {
	return strings.Join(f.Source, ".")
}

// NewField creates a field from a dot-separated path.
func NewField(path string) Field {
	return Field{Source: strings.Split(path, ".")}
}

// NestedLayout embeds a complete layout inside a cell.
type NestedLayout struct {
	Layout *Layout
}

func (NestedLayout) Type() NodeKind { return KindNestedLayout }
func (NestedLayout) isContent()     {}

// Style holds optional text styling. A nil field means inherit/default.
// Values are authored literals; the property package normalizes them.
type Style struct {
	FontSize        any
	FontWeight      any
	FontStyle       any
	Color           any
	BackgroundColor any
	FontFamily      any
	TextAlign       any
}

// IsZero reports whether no style attribute is set.
func (s Style) IsZero() bool {
	return s.FontSize == nil && s.FontWeight == nil && s.FontStyle == nil &&
		s.Color == nil && s.BackgroundColor == nil && s.FontFamily == nil &&
		s.TextAlign == nil
}
