package property

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/folio/validation"
)

// TrackKind identifies a normalized track size.
type TrackKind int

const (
	TrackAuto TrackKind = iota
	TrackFraction
	TrackFixed
	TrackMinMax
	TrackMinContent
	TrackMaxContent
	TrackFitContent
)

func (k TrackKind) String() string {
	switch k {
	case TrackAuto:
		return "auto"
	case TrackFraction:
		return "fraction"
	case TrackFixed:
		return "fixed"
	case TrackMinMax:
		return "minmax"
	case TrackMinContent:
		return "min-content"
	case TrackMaxContent:
		return "max-content"
	case TrackFitContent:
		return "fit-content"
	default:
		return "unknown"
	}
}

// Track is one normalized column or row size.
type Track struct {
	Kind     TrackKind
	Fraction float64 // TrackFraction
	Length   Length  // TrackFixed, TrackFitContent bound
	Min, Max *Track  // TrackMinMax
}

// Auto is the auto track.
var Auto = Track{Kind: TrackAuto}

// Fr creates a fractional track.
func Fr(n float64) Track { return Track{Kind: TrackFraction, Fraction: n} }

// Fixed creates a fixed-length track.
func Fixed(l Length) Track { return Track{Kind: TrackFixed, Length: l} }

// MinMax creates a minmax track.
func MinMax(lo, hi Track) Track { return Track{Kind: TrackMinMax, Min: &lo, Max: &hi} }

var trackAllowed = []string{
	"auto", "<n>fr", "<length>", "min-content", "max-content",
	"fit-content(<length>)", "minmax(<track>, <track>)",
	"{fr: n}", "{minmax: [a, b]}", "{fit_content: bound}",
}

var (
	frPattern         = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)\s*fr$`)
	fitContentPattern = regexp.MustCompile(`^fit-content\((.+)\)$`)
	minmaxPattern     = regexp.MustCompile(`^minmax\((.+),(.+)\)$`)
)

// ParseTrack normalizes one authored track size.
func ParseTrack(v any) (Track, error) {
	switch t := v.(type) {
	case Track:
		return t, nil
	case string:
		return parseTrackString(t)
	case map[string]any:
		return parseTrackMap(t)
	case []any:
		return parseTrackTuple(t)
	case nil:
		return Track{}, invalidTrack(v, "missing track size")
	}
	if f, ok := toFloat(v); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return Track{}, invalidTrack(v, "track length must be finite and non-negative")
		}
		return Fixed(Pt(f)), nil
	}
	return Track{}, invalidTrack(v, fmt.Sprintf("unsupported track size %T", v))
}

// ParseTracks normalizes a track list or an integer N meaning N equal
// fractional tracks.
func ParseTracks(v any) ([]Track, error) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []string:
		items = make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
	case []Track:
		return t, nil
	default:
		f, ok := toFloat(v)
		if !ok || f != math.Trunc(f) || f < 1 {
			return nil, invalidTrack(v, "expected a track list or a positive column count")
		}
		tracks := make([]Track, int(f))
		for i := range tracks {
			tracks[i] = Fr(1)
		}
		return tracks, nil
	}
	if len(items) == 0 {
		return nil, invalidTrack(v, "empty track list")
	}
	tracks := make([]Track, len(items))
	for i, item := range items {
		tr, err := ParseTrack(item)
		if err != nil {
			return nil, err
		}
		tracks[i] = tr
	}
	return tracks, nil
}

func parseTrackString(s string) (Track, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "auto":
		return Auto, nil
	case "min-content", "min_content":
		return Track{Kind: TrackMinContent}, nil
	case "max-content", "max_content":
		return Track{Kind: TrackMaxContent}, nil
	}
	if m := frPattern.FindStringSubmatch(s); m != nil {
		f, _ := strconv.ParseFloat(m[1], 64)
		return Fr(f), nil
	}
	if m := fitContentPattern.FindStringSubmatch(s); m != nil {
		l, err := ParseLength(strings.TrimSpace(m[1]))
		if err != nil {
			return Track{}, invalidTrack(s, "invalid fit-content bound")
		}
		return Track{Kind: TrackFitContent, Length: l}, nil
	}
	if m := minmaxPattern.FindStringSubmatch(s); m != nil {
		return minmaxOf(s, strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
	}
	l, err := ParseLength(s)
	if err != nil {
		return Track{}, invalidTrack(s, "not a track size")
	}
	return Fixed(l), nil
}

func parseTrackMap(m map[string]any) (Track, error) {
	if v, ok := first(m, "fr", "fraction"); ok {
		f, ok := toFloat(v)
		if !ok || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return Track{}, invalidTrack(m, "fraction must be a non-negative number")
		}
		return Fr(f), nil
	}
	if v, ok := m["fixed"]; ok {
		if unit, ok := m["unit"].(string); ok {
			v = fmt.Sprintf("%v%s", v, unit)
		}
		l, err := ParseLength(v)
		if err != nil {
			return Track{}, invalidTrack(m, "invalid fixed length")
		}
		return Fixed(l), nil
	}
	if v, ok := m["minmax"]; ok {
		pair, ok := v.([]any)
		if !ok || len(pair) != 2 {
			return Track{}, invalidTrack(m, "minmax needs two tracks")
		}
		return minmaxOf(m, pair[0], pair[1])
	}
	if lo, ok := m["min"]; ok {
		if hi, ok := m["max"]; ok {
			return minmaxOf(m, lo, hi)
		}
	}
	if v, ok := first(m, "fit_content", "fit-content"); ok {
		l, err := ParseLength(v)
		if err != nil {
			return Track{}, invalidTrack(m, "invalid fit-content bound")
		}
		return Track{Kind: TrackFitContent, Length: l}, nil
	}
	if _, ok := first(m, "min_content", "min-content"); ok {
		return Track{Kind: TrackMinContent}, nil
	}
	if _, ok := first(m, "max_content", "max-content"); ok {
		return Track{Kind: TrackMaxContent}, nil
	}
	return Track{}, invalidTrack(m, "unrecognized track map")
}

func parseTrackTuple(t []any) (Track, error) {
	if len(t) == 0 {
		return Track{}, invalidTrack(t, "empty tuple")
	}
	tag, _ := t[0].(string)
	switch strings.ToLower(tag) {
	case "fr", "fraction":
		if len(t) == 2 {
			return parseTrackMap(map[string]any{"fr": t[1]})
		}
	case "minmax":
		if len(t) == 3 {
			return minmaxOf(t, t[1], t[2])
		}
	case "fixed":
		if len(t) == 2 {
			return parseTrackMap(map[string]any{"fixed": t[1]})
		}
		if len(t) == 3 {
			return parseTrackMap(map[string]any{"fixed": t[1], "unit": t[2]})
		}
	case "fit_content", "fit-content":
		if len(t) == 2 {
			return parseTrackMap(map[string]any{"fit_content": t[1]})
		}
	}
	return Track{}, invalidTrack(t, "unrecognized track tuple")
}

func minmaxOf(orig, lo, hi any) (Track, error) {
	a, err := ParseTrack(lo)
	if err != nil {
		return Track{}, invalidTrack(orig, "invalid minmax minimum")
	}
	b, err := ParseTrack(hi)
	if err != nil {
		return Track{}, invalidTrack(orig, "invalid minmax maximum")
	}
	if a.Kind == TrackMinMax || b.Kind == TrackMinMax {
		return Track{}, invalidTrack(orig, "minmax cannot nest")
	}
	return MinMax(a, b), nil
}

func first(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func invalidTrack(v any, msg string) *validation.Error {
	return &validation.Error{
		Code:    validation.CodeInvalidTrackSize,
		Message: msg,
		Value:   v,
		Allowed: trackAllowed,
	}
}
