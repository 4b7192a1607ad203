package typst

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tsawler/folio/property"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

// preamble returns the #set rules for page and text, or "" when the
// document needs none.
func preamble(doc *render.Document) (string, error) {
	p := doc.Options.Page
	var lines []string

	var page []string
	if p.Paper != "" {
		page = append(page, "paper: "+quote(p.Paper))
	}
	for _, dim := range []struct {
		name  string
		value any
	}{{"width", p.Width}, {"height", p.Height}} {
		if dim.value == nil {
			continue
		}
		l, err := pageLength(dim.name, dim.value)
		if err != nil {
			return "", err
		}
		page = append(page, dim.name+": "+l)
	}
	if p.Margin != nil {
		m, err := margin(p.Margin)
		if err != nil {
			return "", err
		}
		page = append(page, "margin: "+m)
	}
	if len(page) > 0 {
		lines = append(lines, "#set page("+strings.Join(page, ", ")+")")
	}

	var text []string
	if p.Font != "" {
		text = append(text, "font: "+quote(p.Font))
	}
	if p.FontSize != nil {
		l, err := pageLength("font_size", p.FontSize)
		if err != nil {
			return "", err
		}
		text = append(text, "size: "+l)
	}
	if len(text) > 0 || doc.RTL() {
		text = append(text, "lang: "+quote(doc.Locale.Language()))
	}
	if doc.RTL() {
		text = append(text, "dir: rtl")
	}
	if len(text) > 0 {
		lines = append(lines, "#set text("+strings.Join(text, ", ")+")")
	}
	return strings.Join(lines, "\n"), nil
}

func pageLength(name string, v any) (string, error) {
	l, err := property.ParseLength(v)
	if err != nil {
		return "", validation.Locate(err, "page."+name)
	}
	return length(l), nil
}

// margin accepts one length or a map of sides (top, bottom, left, right,
// x, y, rest).
func margin(v any) (string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return pageLength("margin", v)
	}
	var parts []string
	for _, side := range slices.Sorted(maps.Keys(m)) {
		switch side {
		case "top", "bottom", "left", "right", "x", "y", "rest", "inside", "outside":
		default:
			return "", &validation.Error{
				Code:     validation.CodeInvalidProperty,
				Node:     "page",
				Property: "margin",
				Value:    side,
				Message:  fmt.Sprintf("unknown margin side %q", side),
				Allowed:  []string{"top", "bottom", "left", "right", "x", "y", "rest"},
			}
		}
		l, err := pageLength("margin."+side, m[side])
		if err != nil {
			return "", err
		}
		parts = append(parts, side+": "+l)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
