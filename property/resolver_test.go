package property

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

func TestCascadeMostSpecificWins(t *testing.T) {
	got := Cascade(
		model.Properties{"fill": "red", "align": "left", "inset": 4},
		model.Properties{"fill": "blue", "align": nil},
		model.Properties{"fill": "green"},
	)
	assert.Equal(t, model.Properties{"fill": "green", "align": "left", "inset": 4}, got)
}

func TestCascadeIsAtomic(t *testing.T) {
	got := Cascade(
		model.Properties{"stroke": map[string]any{"thickness": 2, "paint": "red"}},
		model.Properties{"stroke": map[string]any{"dash": "dotted"}},
	)
	assert.Equal(t, map[string]any{"dash": "dotted"}, got["stroke"])
}

func TestResolverLayout(t *testing.T) {
	r := NewResolver(nil)
	set, warnings, err := r.Layout(model.Properties{
		"columns":    []any{"1fr", "2fr", 100},
		"gutter":     "6pt",
		"row-gutter": 2,
		"align":      "center",
		"fill":       "#eee",
		"unknown":    "ignored",
	}, Scope{Node: "grid"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []Track{Fr(1), Fr(2), Fixed(Pt(100))}, set.Columns)
	assert.Equal(t, Pt(6), *set.ColumnGutter)
	assert.Equal(t, Pt(2), *set.RowGutter)
	assert.Equal(t, Alignment{H: HCenter}, *set.Align)
	assert.Equal(t, "#eeeeee", set.Fill.Value)
}

func TestResolverLayoutRowsInteger(t *testing.T) {
	set, _, err := NewResolver(nil).Layout(model.Properties{"rows": 2}, Scope{})
	require.NoError(t, err)
	assert.Equal(t, []Track{Auto, Auto}, set.Rows)
}

func TestResolverInvalidPropertyNamesNode(t *testing.T) {
	_, _, err := NewResolver(nil).Layout(model.Properties{"columns": []any{"1fr", "wide"}}, Scope{Node: "table"})
	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, validation.CodeInvalidProperty, ve.Code)
	assert.Equal(t, "table", ve.Node)
	assert.Equal(t, "columns", ve.Property)
	assert.NotEmpty(t, ve.Allowed)
	assert.True(t, errors.Is(err, validation.ErrInvalidTrackSize))
}

func TestResolverInvalidColorFallsBack(t *testing.T) {
	set, warnings, err := NewResolver(nil).Layout(model.Properties{"fill": "purplish"}, Scope{Node: "grid"})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, validation.CodeInvalidColor, warnings[0].Code)
	assert.True(t, set.Fill.IsNone())
}

func TestResolverInvalidStrokePaintFallsBackToBlack(t *testing.T) {
	for name, stroke := range map[string]any{
		"string": "1pt bluish",
		"map":    map[string]any{"thickness": "1pt", "paint": "bluish"},
	} {
		t.Run(name, func(t *testing.T) {
			set, warnings, err := NewResolver(nil).Layout(model.Properties{"stroke": stroke}, Scope{Node: "grid"})
			require.NoError(t, err)
			require.Len(t, warnings, 1)
			assert.Equal(t, validation.CodeInvalidColor, warnings[0].Code)
			assert.Equal(t, "stroke", warnings[0].Property)
			assert.Contains(t, warnings[0].Message, "using black")
			assert.Equal(t, Stroke{Thickness: Pt(1), Paint: Black}, *set.Stroke)
		})
	}
}

func TestResolverInvalidFillNamesTransparent(t *testing.T) {
	_, warnings, err := NewResolver(nil).Layout(model.Properties{"fill": "bluish"}, Scope{Node: "grid"})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "using transparent")
}

func TestResolverMalformedStrokeFails(t *testing.T) {
	_, _, err := NewResolver(nil).Layout(model.Properties{"stroke": "1xp red"}, Scope{Node: "grid"})
	require.Error(t, err)
	assert.Equal(t, validation.CodeInvalidProperty, validation.CodeOf(err))
}

func TestResolverCellCascade(t *testing.T) {
	r := NewResolver(nil)
	cs, warnings, err := r.Cell(
		model.Properties{"fill": "white", "align": "left", "columns": 3},
		model.Properties{"fill": "gray", "height": 20},
		model.Properties{"align": "right", "breakable": false},
		Scope{Node: "cell", Column: 1, Row: 2},
	)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "gray", cs.Effective.Fill.Value)
	assert.Equal(t, Alignment{H: HEnd}, *cs.Effective.Align)
	assert.Equal(t, Pt(20), *cs.Effective.Height)
	assert.Empty(t, cs.Effective.Columns)
	require.NotNil(t, cs.Effective.Breakable)
	assert.False(t, *cs.Effective.Breakable)

	assert.Equal(t, "gray", cs.Local.Fill.Value)
	assert.Nil(t, cs.Local.Inset)
}

func TestResolverCellInheritsLayoutOnlyInEffective(t *testing.T) {
	cs, _, err := NewResolver(nil).Cell(model.Properties{"inset": 5}, nil, nil, Scope{})
	require.NoError(t, err)
	assert.Equal(t, Pt(5), *cs.Effective.Inset)
	assert.Nil(t, cs.Local.Inset)
}

func TestResolverFunctionProperty(t *testing.T) {
	stripe := model.Func(func(ctx model.FuncContext) (any, error) {
		if ctx.Row%2 == 0 {
			return "#f0f0f0", nil
		}
		return nil, nil
	})
	r := NewResolver(nil)

	set, _, err := r.Layout(model.Properties{"fill": stripe}, Scope{})
	require.NoError(t, err)
	assert.Nil(t, set.Fill, "per-cell functions are not resolved on the container")

	even, _, err := r.Cell(model.Properties{"fill": stripe}, nil, nil, Scope{Row: 0})
	require.NoError(t, err)
	assert.Equal(t, "#f0f0f0", even.Effective.Fill.Value)
	assert.Equal(t, "#f0f0f0", even.Local.Fill.Value, "inherited functions resolve on the cell")

	odd, _, err := r.Cell(model.Properties{"fill": stripe}, nil, nil, Scope{Row: 1})
	require.NoError(t, err)
	assert.Nil(t, odd.Effective.Fill)
}

func TestResolverFunctionFailureWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewResolver(zap.New(core))

	failing := model.Func(func(model.FuncContext) (any, error) {
		return nil, errors.New("boom")
	})
	panicking := model.Func(func(model.FuncContext) (any, error) {
		panic("kaboom")
	})

	cs, warnings, err := r.Cell(nil, nil, model.Properties{"fill": failing, "align": panicking}, Scope{Node: "cell[0]"})
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, validation.CodeFunctionEvaluationFailure, w.Code)
		assert.Equal(t, "cell[0]", w.Node)
	}
	assert.Nil(t, cs.Effective.Fill)
	assert.Nil(t, cs.Effective.Align)
	assert.Equal(t, 2, logs.FilterMessage("property function failed").Len())
}

func TestResolverLogsUnknownKeys(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, _, err := NewResolver(zap.New(core)).Cell(nil, nil, model.Properties{"columns": 2}, Scope{Node: "cell"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("ignoring unknown cell property").Len())
}

// ============================================================================
// Expressions
// ============================================================================

func TestExprProperty(t *testing.T) {
	fn, err := Expr(`row % 2 == 0 ? "#eeeeee" : "none"`)
	require.NoError(t, err)

	v, err := fn.Eval(model.FuncContext{Row: 2})
	require.NoError(t, err)
	assert.Equal(t, "#eeeeee", v)

	v, err = fn.Eval(model.FuncContext{Row: 3})
	require.NoError(t, err)
	assert.Equal(t, "none", v)
}

func TestExprReadsRecord(t *testing.T) {
	fn := MustExpr(`record.amount > 100 ? "red" : "black"`)
	cs, warnings, err := NewResolver(nil).Cell(nil, nil, model.Properties{"fill": fn},
		Scope{Record: map[string]any{"amount": 250}})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "red", cs.Effective.Fill.Value)
}

func TestExprCompileError(t *testing.T) {
	_, err := Expr(`row +`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustExpr(`)(`) })
}
