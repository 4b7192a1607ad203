package property

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/folio/validation"
)

// Length is a numeric value with a unit. A bare number is in points.
type Length struct {
	Value float64
	Unit  string
}

// Pt creates a length in points.
func Pt(v float64) Length { return Length{Value: v, Unit: "pt"} }

// String formats the length with its unit, e.g. "12pt" or "1.5em".
func (l Length) String() string {
	return formatFloat(l.Value) + l.Unit
}

// IsZero reports whether the length has zero magnitude.
func (l Length) IsZero() bool { return l.Value == 0 }

var lengthUnits = []string{"pt", "px", "mm", "cm", "in", "em", "rem", "ex", "ch", "vw", "vh", "%"}

var lengthPattern = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))\s*([a-z%]*)$`)

// ParseLength accepts a number (points), a numeric string, or a string
// with one of the supported unit suffixes.
func ParseLength(v any) (Length, error) {
	switch t := v.(type) {
	case Length:
		return t, nil
	case *Length:
		if t != nil {
			return *t, nil
		}
	case string:
		return parseLengthString(t)
	default:
		if f, ok := toFloat(v); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return Length{}, invalidLength(v, "non-finite length")
			}
			return Pt(f), nil
		}
	}
	return Length{}, invalidLength(v, fmt.Sprintf("unsupported length %T", v))
}

func parseLengthString(s string) (Length, error) {
	m := lengthPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Length{}, invalidLength(s, "not a length")
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(f, 0) {
		return Length{}, invalidLength(s, "not a finite number")
	}
	unit := m[2]
	if unit == "" {
		unit = "pt"
	}
	for _, u := range lengthUnits {
		if u == unit {
			return Length{Value: f, Unit: unit}, nil
		}
	}
	return Length{}, invalidLength(s, fmt.Sprintf("unknown unit %q", unit))
}

func invalidLength(v any, msg string) *validation.Error {
	return &validation.Error{
		Code:    validation.CodeInvalidLength,
		Message: msg,
		Value:   v,
		Allowed: append([]string{"number"}, lengthUnits...),
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// formatFloat prints integral values without a decimal point and others
// with the shortest exact representation.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
