package property

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/validation"
)

// HAlign is a normalized horizontal alignment. The zero value means unset.
type HAlign int

const (
	HUnset HAlign = iota
	HStart
	HCenter
	HEnd
	HJustify
)

func (h HAlign) String() string {
	switch h {
	case HStart:
		return "start"
	case HCenter:
		return "center"
	case HEnd:
		return "end"
	case HJustify:
		return "justify"
	default:
		return ""
	}
}

// VAlign is a normalized vertical alignment. The zero value means unset.
type VAlign int

const (
	VUnset VAlign = iota
	VStart
	VCenter
	VEnd
)

func (v VAlign) String() string {
	switch v {
	case VStart:
		return "start"
	case VCenter:
		return "center"
	case VEnd:
		return "end"
	default:
		return ""
	}
}

// Alignment is a (horizontal, vertical) pair. Either axis may be unset.
type Alignment struct {
	H HAlign
	V VAlign
}

// IsZero reports whether neither axis is set.
func (a Alignment) IsZero() bool { return a.H == HUnset && a.V == VUnset }

// String returns "h+v", "h" or "+v".
func (a Alignment) String() string {
	switch {
	case a.V == VUnset:
		return a.H.String()
	case a.H == HUnset:
		return "+" + a.V.String()
	default:
		return a.H.String() + "+" + a.V.String()
	}
}

var horizontalTokens = map[string]HAlign{
	"left":    HStart,
	"start":   HStart,
	"center":  HCenter,
	"centre":  HCenter,
	"right":   HEnd,
	"end":     HEnd,
	"justify": HJustify,
}

var verticalTokens = map[string]VAlign{
	"top":     VStart,
	"horizon": VCenter,
	"middle":  VCenter,
	"bottom":  VEnd,
}

// verticalOnly accepts start/center/end in the second slot of a pair.
var verticalPairTokens = map[string]VAlign{
	"top":     VStart,
	"start":   VStart,
	"horizon": VCenter,
	"middle":  VCenter,
	"center":  VCenter,
	"bottom":  VEnd,
	"end":     VEnd,
}

var alignmentAllowed = []string{
	"left", "start", "center", "right", "end", "justify",
	"top", "horizon", "middle", "bottom",
	"<h>+<v>", "[h, v]", "{horizontal, vertical}",
}

// ParseAlignment normalizes a single token ("center"), a combined string
// ("center+top", "right bottom"), a two-element tuple or a map with
// horizontal and vertical keys.
func ParseAlignment(v any) (Alignment, error) {
	switch t := v.(type) {
	case Alignment:
		return t, nil
	case string:
		return parseAlignmentString(t)
	case []any:
		return parseAlignmentPair(v, t)
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return parseAlignmentPair(v, items)
	case map[string]any:
		var a Alignment
		if h, ok := t["horizontal"].(string); ok {
			hv, ok := horizontalTokens[strings.ToLower(h)]
			if !ok {
				return Alignment{}, invalidAlignment(v, fmt.Sprintf("unknown horizontal alignment %q", h))
			}
			a.H = hv
		}
		if s, ok := t["vertical"].(string); ok {
			vv, ok := verticalPairTokens[strings.ToLower(s)]
			if !ok {
				return Alignment{}, invalidAlignment(v, fmt.Sprintf("unknown vertical alignment %q", s))
			}
			a.V = vv
		}
		if a.IsZero() {
			return Alignment{}, invalidAlignment(v, "map needs horizontal or vertical")
		}
		return a, nil
	}
	return Alignment{}, invalidAlignment(v, fmt.Sprintf("unsupported alignment %T", v))
}

func parseAlignmentString(s string) (Alignment, error) {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 || len(tokens) > 2 {
		return Alignment{}, invalidAlignment(s, "expected one or two alignment tokens")
	}
	var a Alignment
	for _, tok := range tokens {
		if h, ok := horizontalTokens[tok]; ok && a.H == HUnset {
			a.H = h
			continue
		}
		if v, ok := verticalTokens[tok]; ok && a.V == VUnset {
			a.V = v
			continue
		}
		return Alignment{}, invalidAlignment(s, fmt.Sprintf("unknown or repeated token %q", tok))
	}
	return a, nil
}

func parseAlignmentPair(orig any, items []any) (Alignment, error) {
	if len(items) != 2 {
		return Alignment{}, invalidAlignment(orig, "alignment pair needs two elements")
	}
	var a Alignment
	if s, ok := items[0].(string); ok {
		h, ok := horizontalTokens[strings.ToLower(s)]
		if !ok {
			return Alignment{}, invalidAlignment(orig, fmt.Sprintf("unknown horizontal alignment %q", s))
		}
		a.H = h
	} else if items[0] != nil {
		return Alignment{}, invalidAlignment(orig, "horizontal alignment must be a string")
	}
	if s, ok := items[1].(string); ok {
		v, ok := verticalPairTokens[strings.ToLower(s)]
		if !ok {
			return Alignment{}, invalidAlignment(orig, fmt.Sprintf("unknown vertical alignment %q", s))
		}
		a.V = v
	} else if items[1] != nil {
		return Alignment{}, invalidAlignment(orig, "vertical alignment must be a string")
	}
	return a, nil
}

func invalidAlignment(v any, msg string) *validation.Error {
	return &validation.Error{
		Code:    validation.CodeInvalidAlignment,
		Message: msg,
		Value:   v,
		Allowed: alignmentAllowed,
	}
}
