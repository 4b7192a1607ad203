package property

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// ============================================================================
// Lengths
// ============================================================================

func TestParseLength(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Length
	}{
		{"int is points", 12, Pt(12)},
		{"float is points", 1.5, Pt(1.5)},
		{"bare numeric string", "10", Pt(10)},
		{"points", "12pt", Pt(12)},
		{"em", "1.5em", Length{1.5, "em"}},
		{"percent", "50%", Length{50, "%"}},
		{"spaced unit", "2 cm", Length{2, "cm"}},
		{"upper case", "3MM", Length{3, "mm"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLength(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLengthRejects(t *testing.T) {
	for _, in := range []any{"wide", "12furlongs", true, []any{1}} {
		_, err := ParseLength(in)
		require.Error(t, err, "%v", in)
		assert.True(t, errors.Is(err, validation.ErrInvalidLength))
	}
}

func TestLengthString(t *testing.T) {
	assert.Equal(t, "12pt", Pt(12).String())
	assert.Equal(t, "1.5em", Length{1.5, "em"}.String())
}

// ============================================================================
// Tracks
// ============================================================================

func TestParseTrack(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Track
	}{
		{"auto", "auto", Auto},
		{"fraction string", "2fr", Fr(2)},
		{"fraction map", map[string]any{"fr": 3}, Fr(3)},
		{"fraction tuple", []any{"fr", 1.5}, Fr(1.5)},
		{"number is fixed points", 100, Fixed(Pt(100))},
		{"fixed string", "2.5cm", Fixed(Length{2.5, "cm"})},
		{"fixed map with unit", map[string]any{"fixed": 40, "unit": "mm"}, Fixed(Length{40, "mm"})},
		{"percent", "25%", Fixed(Length{25, "%"})},
		{"min-content", "min-content", Track{Kind: TrackMinContent}},
		{"max-content", "max-content", Track{Kind: TrackMaxContent}},
		{"fit-content", "fit-content(120pt)", Track{Kind: TrackFitContent, Length: Pt(120)}},
		{"minmax string", "minmax(100pt, 1fr)", MinMax(Fixed(Pt(100)), Fr(1))},
		{"minmax map", map[string]any{"minmax": []any{"auto", "2fr"}}, MinMax(Auto, Fr(2))},
		{"minmax tuple", []any{"minmax", 50, "1fr"}, MinMax(Fixed(Pt(50)), Fr(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTrack(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrackRejects(t *testing.T) {
	for _, in := range []any{"huge", nil, -5, map[string]any{"span": 2}, []any{"fr"}, "minmax(minmax(1fr, 2fr), 1fr)"} {
		_, err := ParseTrack(in)
		require.Error(t, err, "%v", in)
		assert.True(t, errors.Is(err, validation.ErrInvalidTrackSize), "%v", in)
	}
}

func TestParseTracksInteger(t *testing.T) {
	got, err := ParseTracks(3)
	require.NoError(t, err)
	assert.Equal(t, []Track{Fr(1), Fr(1), Fr(1)}, got)

	_, err = ParseTracks(0)
	require.Error(t, err)
	_, err = ParseTracks([]any{})
	require.Error(t, err)
}

// ============================================================================
// Alignment
// ============================================================================

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   any
		want Alignment
	}{
		{"left", Alignment{H: HStart}},
		{"right", Alignment{H: HEnd}},
		{"center", Alignment{H: HCenter}},
		{"justify", Alignment{H: HJustify}},
		{"top", Alignment{V: VStart}},
		{"horizon", Alignment{V: VCenter}},
		{"middle", Alignment{V: VCenter}},
		{"bottom", Alignment{V: VEnd}},
		{"center+top", Alignment{H: HCenter, V: VStart}},
		{"right bottom", Alignment{H: HEnd, V: VEnd}},
		{[]any{"left", "center"}, Alignment{H: HStart, V: VCenter}},
		{[]any{nil, "bottom"}, Alignment{V: VEnd}},
		{map[string]any{"horizontal": "end", "vertical": "top"}, Alignment{H: HEnd, V: VStart}},
	}
	for _, tt := range tests {
		got, err := ParseAlignment(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestParseAlignmentRejects(t *testing.T) {
	for _, in := range []any{"diagonal", "left right", "center top bottom", 5, []any{"left"}} {
		_, err := ParseAlignment(in)
		require.Error(t, err, "%v", in)
		assert.True(t, errors.Is(err, validation.ErrInvalidAlignment), "%v", in)
	}
}

func TestAlignmentString(t *testing.T) {
	assert.Equal(t, "center", Alignment{H: HCenter}.String())
	assert.Equal(t, "+end", Alignment{V: VEnd}.String())
	assert.Equal(t, "start+center", Alignment{H: HStart, V: VCenter}.String())
}

// ============================================================================
// Colors and strokes
// ============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   any
		want Color
	}{
		{"none", None},
		{"transparent", None},
		{"Red", Color{Kind: ColorNamed, Value: "red"}},
		{"lightgray", Color{Kind: ColorNamed, Value: "lightgray"}},
		{"#ABC", Color{Kind: ColorHex, Value: "#aabbcc"}},
		{"#336699", Color{Kind: ColorHex, Value: "#336699"}},
		{"#33669980", Color{Kind: ColorHex, Value: "#33669980"}},
		{map[string]any{"r": 255, "g": 0, "b": 0}, Color{Kind: ColorHex, Value: "#ff0000"}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Color{Kind: ColorNamed, Value: "red"}.Hex())
	assert.Equal(t, "#00000000", None.Hex())
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []any{"reddish", "#12", 42} {
		_, err := ParseColor(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validation.ErrInvalidColor))
	}
}

func TestParseStroke(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Stroke
	}{
		{"none", "none", NoStroke},
		{"false", false, NoStroke},
		{"true", true, DefaultStroke},
		{"thickness", 2, Stroke{Thickness: Pt(2), Paint: Black}},
		{"thickness and paint", "1.5pt + blue", Stroke{Thickness: Pt(1.5), Paint: Color{Kind: ColorNamed, Value: "blue"}}},
		{"with dash", "0.5pt gray dashed", Stroke{Thickness: Pt(0.5), Paint: Color{Kind: ColorNamed, Value: "gray"}, Dash: DashDashed}},
		{"map", map[string]any{"thickness": "2pt", "paint": "#ff0000", "dash": "dotted"},
			Stroke{Thickness: Pt(2), Paint: Color{Kind: ColorHex, Value: "#ff0000"}, Dash: DashDotted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStroke(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStrokeRejects(t *testing.T) {
	_, err := ParseStroke(map[string]any{"dash": "wavy"})
	assert.True(t, errors.Is(err, validation.ErrInvalidProperty))

	st, err := ParseStroke(map[string]any{"thickness": 1, "paint": "nope"})
	assert.True(t, errors.Is(err, validation.ErrInvalidColor))
	assert.Equal(t, Black, st.Paint)

	for _, in := range []string{"1xp red", "-- blue", "1pt + 2q dashed"} {
		_, err := ParseStroke(in)
		assert.True(t, errors.Is(err, validation.ErrInvalidProperty), "%q", in)
	}
}

func TestParseStrokeUnknownPaintKeepsStroke(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Stroke
	}{
		{"thickness and bad paint", "1pt bluish", Stroke{Thickness: Pt(1), Paint: Black}},
		{"bad paint with dash", "2pt + nope + dotted", Stroke{Thickness: Pt(2), Paint: Black, Dash: DashDotted}},
		{"bad paint wins over good", "red 3pt bluish", Stroke{Thickness: Pt(3), Paint: Black}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStroke(tt.in)
			require.Error(t, err)
			assert.Equal(t, validation.CodeInvalidColor, validation.CodeOf(err))
			assert.Equal(t, tt.want, got)
		})
	}
}

// ============================================================================
// Fonts and direction
// ============================================================================

func TestParseFontWeight(t *testing.T) {
	for in, want := range map[any]FontWeight{
		"bold": WeightBold, "Semi-Bold": WeightSemiBold, "normal": WeightRegular, 300: WeightLight,
	} {
		got, err := ParseFontWeight(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []any{"heavy-ish", 450, 1000} {
		_, err := ParseFontWeight(in)
		assert.Error(t, err, "%v", in)
	}
	assert.Equal(t, "bold", WeightBold.Name())
}

func TestDirection(t *testing.T) {
	d, err := ParseDirection("BTT")
	require.NoError(t, err)
	assert.Equal(t, "column-reverse", d.FlexDirection())
	assert.True(t, d.Vertical())
	assert.Equal(t, "row-reverse", RTL.FlexDirection())

	_, err = ParseDirection("sideways")
	assert.True(t, errors.Is(err, validation.ErrInvalidProperty))
}

// ============================================================================
// Text styles
// ============================================================================

func TestResolveStyle(t *testing.T) {
	st, warnings, err := ResolveStyle(model.Style{
		FontSize:   "14pt",
		FontWeight: "bold",
		FontStyle:  "italic",
		Color:      "navy",
		FontFamily: "Inter",
		TextAlign:  "right",
	}, "cell")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, Pt(14), *st.Size)
	assert.Equal(t, WeightBold, st.Weight)
	assert.Equal(t, StyleItalic, st.Style)
	assert.Equal(t, "navy", st.Color.Value)
	assert.Equal(t, "Inter", st.Family)
	assert.Equal(t, HEnd, st.Align)
}

func TestResolveStyleInvalidColorWarns(t *testing.T) {
	st, warnings, err := ResolveStyle(model.Style{Color: "not-a-color"}, "label")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, validation.CodeInvalidColor, warnings[0].Code)
	assert.Equal(t, "color", warnings[0].Property)
	assert.Nil(t, st.Color)
}

func TestResolveStyleInvalidWeightFails(t *testing.T) {
	_, _, err := ResolveStyle(model.Style{FontWeight: "chunky"}, "label")
	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, validation.CodeInvalidProperty, ve.Code)
	assert.Equal(t, "font_weight", ve.Property)
	assert.Contains(t, ve.Allowed, "bold")
}
