package property

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/tsawler/folio/validation"
)

// ColorKind distinguishes the canonical color encodings.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorNamed
	ColorHex
)

// Color is a normalized paint: none, a named token or a hex string.
type Color struct {
	Kind  ColorKind
	Value string // lowercase name, or "#rrggbb" / "#rrggbbaa"
}

// None is the transparent color.
var None = Color{Kind: ColorNone}

// Black is the default stroke paint.
var Black = Color{Kind: ColorNamed, Value: "black"}

// IsNone reports whether the color is transparent.
func (c Color) IsNone() bool { return c.Kind == ColorNone }

func (c Color) String() string {
	if c.Kind == ColorNone {
		return "none"
	}
	return c.Value
}

// RGBA returns the color's components.
func (c Color) RGBA() color.RGBA {
	switch c.Kind {
	case ColorNamed:
		return colornames.Map[c.Value]
	case ColorHex:
		rgba, _ := parseHex(c.Value)
		return rgba
	}
	return color.RGBA{}
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when not opaque.
func (c Color) Hex() string {
	if c.Kind == ColorHex {
		return c.Value
	}
	rgba := c.RGBA()
	if c.Kind == ColorNone {
		return "#00000000"
	}
	return hexOf(rgba)
}

func hexOf(rgba color.RGBA) string {
	if rgba.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", rgba.R, rgba.G, rgba.B, rgba.A)
}

var hexPattern = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)

var colorAllowed = []string{"none", "transparent", "<named color>", "#rgb", "#rrggbb", "#rrggbbaa", "{r, g, b[, a]}"}

// ParseColor normalizes a color. Named colors are the CSS/SVG set.
func ParseColor(v any) (Color, error) {
	switch t := v.(type) {
	case Color:
		return t, nil
	case bool:
		if !t {
			return None, nil
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "none", "transparent":
			return None, nil
		}
		if hexPattern.MatchString(s) {
			rgba, _ := parseHex(s)
			return Color{Kind: ColorHex, Value: hexOf(rgba)}, nil
		}
		name := strings.ReplaceAll(s, " ", "")
		if _, ok := colornames.Map[name]; ok {
			return Color{Kind: ColorNamed, Value: name}, nil
		}
		return Color{}, invalidColor(v, fmt.Sprintf("unknown color %q", t))
	case map[string]any:
		return parseRGBMap(t)
	case color.RGBA:
		return Color{Kind: ColorHex, Value: hexOf(t)}, nil
	}
	return Color{}, invalidColor(v, fmt.Sprintf("unsupported color %T", v))
}

func parseRGBMap(m map[string]any) (Color, error) {
	comp := func(key string, def uint8) (uint8, bool) {
		v, ok := m[key]
		if !ok {
			return def, true
		}
		f, ok := toFloat(v)
		if !ok || f < 0 || f > 255 {
			return 0, false
		}
		return uint8(f), true
	}
	r, okR := comp("r", 0)
	g, okG := comp("g", 0)
	b, okB := comp("b", 0)
	a, okA := comp("a", 0xff)
	if !okR || !okG || !okB || !okA {
		return Color{}, invalidColor(m, "components must be numbers in 0..255")
	}
	return Color{Kind: ColorHex, Value: hexOf(color.RGBA{R: r, G: g, B: b, A: a})}, nil
}

func parseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 || len(h) == 4 {
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil || len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func invalidColor(v any, msg string) *validation.Error {
	return &validation.Error{
		Code:    validation.CodeInvalidColor,
		Message: msg,
		Value:   v,
		Allowed: colorAllowed,
	}
}
