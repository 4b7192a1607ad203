package property

import (
	"fmt"
	"strings"
)

// FontWeight is a CSS-style numeric weight in 100..900.
type FontWeight int

const (
	WeightThin       FontWeight = 100
	WeightExtraLight FontWeight = 200
	WeightLight      FontWeight = 300
	WeightRegular    FontWeight = 400
	WeightMedium     FontWeight = 500
	WeightSemiBold   FontWeight = 600
	WeightBold       FontWeight = 700
	WeightExtraBold  FontWeight = 800
	WeightBlack      FontWeight = 900
)

var weightNames = map[string]FontWeight{
	"thin":       WeightThin,
	"extralight": WeightExtraLight,
	"light":      WeightLight,
	"normal":     WeightRegular,
	"regular":    WeightRegular,
	"medium":     WeightMedium,
	"semibold":   WeightSemiBold,
	"bold":       WeightBold,
	"extrabold":  WeightExtraBold,
	"black":      WeightBlack,
}

// Name returns the weight's canonical name ("bold", "regular", ...).
func (w FontWeight) Name() string {
	switch w {
	case WeightThin:
		return "thin"
	case WeightExtraLight:
		return "extralight"
	case WeightLight:
		return "light"
	case WeightRegular:
		return "regular"
	case WeightMedium:
		return "medium"
	case WeightSemiBold:
		return "semibold"
	case WeightBold:
		return "bold"
	case WeightExtraBold:
		return "extrabold"
	case WeightBlack:
		return "black"
	}
	return fmt.Sprintf("%d", int(w))
}

// ParseFontWeight accepts a weight name or a multiple of 100 in 100..900.
func ParseFontWeight(v any) (FontWeight, error) {
	if s, ok := v.(string); ok {
		key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
		if w, ok := weightNames[key]; ok {
			return w, nil
		}
		return 0, fmt.Errorf("unknown font weight %q", s)
	}
	if w, ok := v.(FontWeight); ok {
		return w, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("unsupported font weight %T", v)
	}
	n := int(f)
	if float64(n) != f || n < 100 || n > 900 || n%100 != 0 {
		return 0, fmt.Errorf("font weight %v out of range", v)
	}
	return FontWeight(n), nil
}

// FontStyle is normal, italic or oblique.
type FontStyle string

const (
	StyleNormal  FontStyle = "normal"
	StyleItalic  FontStyle = "italic"
	StyleOblique FontStyle = "oblique"
)

// ParseFontStyle normalizes a font style token.
func ParseFontStyle(v any) (FontStyle, error) {
	s, _ := v.(string)
	switch FontStyle(strings.ToLower(s)) {
	case StyleNormal:
		return StyleNormal, nil
	case StyleItalic:
		return StyleItalic, nil
	case StyleOblique:
		return StyleOblique, nil
	}
	return "", fmt.Errorf("unknown font style %v", v)
}
