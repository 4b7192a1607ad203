package htmlout

import (
	"strconv"
	"strings"

	"github.com/tsawler/folio/property"
)

// decls is an ordered CSS declaration list.
type decls []string

func (d *decls) add(prop, value string) {
	if value != "" {
		*d = append(*d, prop+": "+value)
	}
}

func (d decls) String() string { return strings.Join(d, "; ") }

// length renders a length. Authored points map 1:1 onto CSS pixels;
// other units pass through.
func length(l property.Length) string {
	if l.Unit == "pt" {
		return formatNumber(l.Value) + "px"
	}
	return formatNumber(l.Value) + l.Unit
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func track(t property.Track) string {
	switch t.Kind {
	case property.TrackFraction:
		return formatNumber(t.Fraction) + "fr"
	case property.TrackFixed:
		return length(t.Length)
	case property.TrackMinMax:
		return "minmax(" + track(*t.Min) + ", " + track(*t.Max) + ")"
	case property.TrackMinContent:
		return "min-content"
	case property.TrackMaxContent:
		return "max-content"
	case property.TrackFitContent:
		return "fit-content(" + length(t.Length) + ")"
	default:
		return "auto"
	}
}

func tracks(ts []property.Track) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = track(t)
	}
	return strings.Join(parts, " ")
}

func color(c property.Color) string {
	if c.IsNone() {
		return "transparent"
	}
	return c.Value
}

func stroke(s property.Stroke) string {
	if s.None {
		return "none"
	}
	return length(s.Thickness) + " " + s.Dash.String() + " " + color(s.Paint)
}

func textAlign(h property.HAlign) string {
	return h.String()
}

func justifyItems(h property.HAlign) string {
	if h == property.HJustify {
		return "stretch"
	}
	return h.String()
}

func selfAlign(v property.VAlign) string {
	return v.String()
}

func verticalAlign(v property.VAlign) string {
	switch v {
	case property.VStart:
		return "top"
	case property.VCenter:
		return "middle"
	case property.VEnd:
		return "bottom"
	}
	return ""
}

// textStyle renders a resolved text style.
func textStyle(st property.TextStyle) decls {
	var d decls
	if st.Size != nil {
		d.add("font-size", length(*st.Size))
	}
	if st.Weight != 0 {
		d.add("font-weight", strconv.Itoa(int(st.Weight)))
	}
	if st.Style != "" {
		d.add("font-style", string(st.Style))
	}
	if st.Color != nil {
		d.add("color", color(*st.Color))
	}
	if st.Background != nil {
		d.add("background-color", color(*st.Background))
	}
	if st.Family != "" {
		d.add("font-family", fontFamily(st.Family))
	}
	if st.Align != property.HUnset {
		d.add("text-align", textAlign(st.Align))
	}
	return d
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "ui-serif": true, "ui-sans-serif": true,
	"ui-monospace": true, "math": true, "emoji": true,
}

// fontFamily quotes each comma-separated family name as a CSS string.
// Generic keywords stay bare.
func fontFamily(list string) string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name == "" {
			continue
		}
		if genericFamilies[strings.ToLower(name)] {
			names = append(names, strings.ToLower(name))
			continue
		}
		names = append(names, cssString(name))
	}
	return strings.Join(names, ", ")
}

// cssString writes s as a double-quoted CSS string with control
// characters hex-escaped.
func cssString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
