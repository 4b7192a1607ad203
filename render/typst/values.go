package typst

import (
	"strconv"
	"strings"

	"github.com/tsawler/folio/property"
)

func number(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// length renders a length in a unit the markup language understands.
// Web-only units are converted.
func length(l property.Length) string {
	switch l.Unit {
	case "px":
		return number(l.Value*0.75) + "pt"
	case "rem":
		return number(l.Value) + "em"
	case "ex", "ch":
		return number(l.Value*0.5) + "em"
	case "vw", "vh":
		return number(l.Value) + "%"
	case "":
		return number(l.Value) + "pt"
	}
	return number(l.Value) + l.Unit
}

// track renders a column or row size. The language has no minmax or
// content-keyword tracks: minmax keeps its upper bound and the keywords
// become auto.
func track(t property.Track) string {
	switch t.Kind {
	case property.TrackFraction:
		return number(t.Fraction) + "fr"
	case property.TrackFixed:
		return length(t.Length)
	case property.TrackMinMax:
		return track(*t.Max)
	default:
		return "auto"
	}
}

func trackList(ts []property.Track) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = track(t)
	}
	return array(parts)
}

// array renders a parenthesized list. A single element keeps its trailing
// comma so it is not read as a grouped expression.
func array(parts []string) string {
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// builtinColors are the color names the markup language predefines.
var builtinColors = map[string]bool{
	"black": true, "gray": true, "silver": true, "white": true,
	"navy": true, "blue": true, "aqua": true, "teal": true,
	"purple": true, "fuchsia": true, "maroon": true, "red": true,
	"orange": true, "yellow": true, "olive": true, "green": true,
	"lime": true,
}

func color(c property.Color) string {
	switch {
	case c.IsNone():
		return "none"
	case c.Kind == property.ColorNamed && builtinColors[c.Value]:
		return c.Value
	}
	return `rgb("` + c.Hex() + `")`
}

func stroke(s property.Stroke) string {
	if s.None {
		return "none"
	}
	switch s.Dash {
	case property.DashDashed, property.DashDotted:
		return "(thickness: " + length(s.Thickness) + ", paint: " + color(s.Paint) + `, dash: "` + s.Dash.String() + `")`
	}
	return length(s.Thickness) + " + " + color(s.Paint)
}

func horizontal(h property.HAlign) string {
	switch h {
	case property.HCenter:
		return "center"
	case property.HEnd:
		return "end"
	case property.HStart, property.HJustify:
		return "start"
	}
	return ""
}

func vertical(v property.VAlign) string {
	switch v {
	case property.VStart:
		return "top"
	case property.VCenter:
		return "horizon"
	case property.VEnd:
		return "bottom"
	}
	return ""
}

func alignment(a property.Alignment) string {
	h, v := horizontal(a.H), vertical(a.V)
	switch {
	case h != "" && v != "":
		return h + " + " + v
	case h != "":
		return h
	}
	return v
}

// quote renders s as a string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
