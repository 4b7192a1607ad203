package property

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/validation"
)

// DashStyle is a stroke pattern.
type DashStyle int

const (
	DashSolid DashStyle = iota
	DashDashed
	DashDotted
	DashDouble
)

func (d DashStyle) String() string {
	switch d {
	case DashDashed:
		return "dashed"
	case DashDotted:
		return "dotted"
	case DashDouble:
		return "double"
	default:
		return "solid"
	}
}

var dashTokens = map[string]DashStyle{
	"solid":  DashSolid,
	"dashed": DashDashed,
	"dotted": DashDotted,
	"double": DashDouble,
}

// Stroke is a normalized border or rule.
type Stroke struct {
	None      bool
	Thickness Length
	Paint     Color
	Dash      DashStyle
}

// NoStroke disables a border.
var NoStroke = Stroke{None: true}

// DefaultStroke is used when a stroke is enabled without details.
var DefaultStroke = Stroke{Thickness: Pt(1), Paint: Black}

func (s Stroke) String() string {
	if s.None {
		return "none"
	}
	return fmt.Sprintf("%s %s %s", s.Thickness, s.Dash, s.Paint)
}

var strokeAllowed = []string{
	"none", "true", "<length>", "<color>", "<length> + <color>",
	"{thickness, paint, dash}", "dash: solid|dashed|dotted|double",
}

// ParseStroke normalizes a stroke. Invalid paint is reported as an
// invalid_color *Error alongside a usable stroke painted black, so callers
// may downgrade it to a warning.
func ParseStroke(v any) (Stroke, error) {
	switch t := v.(type) {
	case Stroke:
		return t, nil
	case bool:
		if t {
			return DefaultStroke, nil
		}
		return NoStroke, nil
	case string:
		return parseStrokeString(t)
	case map[string]any:
		return parseStrokeMap(t)
	}
	if _, ok := toFloat(v); ok {
		l, err := ParseLength(v)
		if err != nil {
			return Stroke{}, invalidStroke(v, "invalid thickness")
		}
		return Stroke{Thickness: l, Paint: Black}, nil
	}
	return Stroke{}, invalidStroke(v, fmt.Sprintf("unsupported stroke %T", v))
}

func parseStrokeString(s string) (Stroke, error) {
	low := strings.ToLower(strings.TrimSpace(s))
	if low == "none" || low == "" {
		return NoStroke, nil
	}
	st := DefaultStroke
	tokens := strings.FieldsFunc(low, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t'
	})
	var paintErr error
	for _, tok := range tokens {
		if d, ok := dashTokens[tok]; ok {
			st.Dash = d
			continue
		}
		if l, err := ParseLength(tok); err == nil {
			st.Thickness = l
			continue
		}
		if looksNumeric(tok) {
			return Stroke{}, invalidStroke(s, fmt.Sprintf("invalid thickness %q", tok))
		}
		c, err := ParseColor(tok)
		if err != nil {
			paintErr = invalidColor(tok, fmt.Sprintf("unknown stroke paint %q", tok))
			continue
		}
		st.Paint = c
	}
	if paintErr != nil {
		st.Paint = Black
		return st, paintErr
	}
	return st, nil
}

// looksNumeric reports whether tok was meant as a length.
func looksNumeric(tok string) bool {
	switch tok[0] {
	case '-', '+', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return false
}

func parseStrokeMap(m map[string]any) (Stroke, error) {
	st := DefaultStroke
	if v, ok := m["thickness"]; ok && v != nil {
		l, err := ParseLength(v)
		if err != nil {
			return Stroke{}, invalidStroke(m, "invalid thickness")
		}
		st.Thickness = l
	}
	if v, ok := m["dash"]; ok && v != nil {
		s, _ := v.(string)
		d, ok := dashTokens[strings.ToLower(s)]
		if !ok {
			return Stroke{}, invalidStroke(m, fmt.Sprintf("unknown dash %v", v))
		}
		st.Dash = d
	}
	if v, ok := first(m, "paint", "color"); ok && v != nil {
		c, err := ParseColor(v)
		if err != nil {
			return st, err
		}
		st.Paint = c
	}
	return st, nil
}

func invalidStroke(v any, msg string) *validation.Error {
	return &validation.Error{
		Code:    validation.CodeInvalidProperty,
		Message: msg,
		Value:   v,
		Allowed: strokeAllowed,
	}
}
