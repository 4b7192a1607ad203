package jsonout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

func label(s string) model.Label { return model.Label{Text: s} }

func renderJSON(t *testing.T, opts render.Options, layouts ...*model.Layout) string {
	t.Helper()
	doc, err := render.Prepare(layouts, opts)
	require.NoError(t, err)
	out, err := Render(doc)
	require.NoError(t, err)
	return out
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

// texts collects label and field texts of serialized cells in order.
func texts(cells []any) []string {
	var out []string
	for _, c := range cells {
		for _, item := range c.(map[string]any)["content"].([]any) {
			out = append(out, item.(map[string]any)["text"].(string))
		}
	}
	return out
}

// ============================================================================
// Layouts
// ============================================================================

func TestRenderTableRoundTrip(t *testing.T) {
	table := model.NewTable(model.Properties{"columns": 2},
		model.NewRow(nil, model.NewCell(label("b1")), model.NewCell(label("b2"))),
		model.NewRow(nil, model.NewCell(label("b3")), model.NewCell(label("b4"))),
		model.NewRow(nil, model.NewCell(label("b5"))),
	).WithHeaders(
		model.Header{Repeat: true, Rows: []model.Row{model.NewRow(nil, model.NewCell(label("h1")), model.NewCell(label("h2")))}},
		model.Header{Level: 2, Rows: []model.Row{model.NewRow(nil, model.NewCell(label("g1")).WithSpan(2, 1))}},
	).WithFooters(model.Footer{Rows: []model.Row{
		model.NewRow(nil, model.NewCell(label("f1")), model.NewCell(label("f2"))),
	}})

	m := decode(t, renderJSON(t, render.Options{}, table))
	assert.Equal(t, "table", m["type"])
	assert.Equal(t, float64(2), m["columns"])
	assert.Equal(t, float64(3), m["rows"])

	headers := m["headers"].([]any)
	require.Len(t, headers, 2)
	first := headers[0].(map[string]any)
	assert.Equal(t, "header", first["type"])
	assert.Equal(t, true, first["repeat"])
	assert.Equal(t, float64(2), headers[1].(map[string]any)["level"])

	var got []string
	for _, h := range headers {
		for _, row := range h.(map[string]any)["rows"].([]any) {
			got = append(got, texts(row.(map[string]any)["cells"].([]any))...)
		}
	}
	children := m["children"].([]any)
	require.Len(t, children, 3)
	for _, row := range children {
		r := row.(map[string]any)
		assert.Equal(t, "row", r["type"])
		got = append(got, texts(r["cells"].([]any))...)
	}
	footers := m["footers"].([]any)
	require.Len(t, footers, 1)
	for _, row := range footers[0].(map[string]any)["rows"].([]any) {
		got = append(got, texts(row.(map[string]any)["cells"].([]any))...)
	}

	want := []string{"h1", "h2", "g1", "b1", "b2", "b3", "b4", "b5", "f1", "f2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFieldCarriesRawValue(t *testing.T) {
	places := 2
	grid := model.NewGrid(model.Properties{"columns": 1},
		model.NewCell(
			model.Field{Source: []string{"order", "total"}, Format: "currency", DecimalPlaces: &places},
			model.NewField("missing"),
		),
	)
	out := renderJSON(t, render.Options{
		Locale: "de-DE",
		Record: map[string]any{"order": map[string]any{"total": 1234.5}},
	}, grid)

	content := decode(t, out)["children"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)

	field := content[0].(map[string]any)
	assert.Equal(t, "field", field["type"])
	assert.Equal(t, []any{"order", "total"}, field["source"])
	assert.Equal(t, "currency", field["format"])
	assert.Equal(t, float64(2), field["decimal_places"])
	assert.Equal(t, 1234.5, field["value"])
	assert.Equal(t, "1.234,50 €", field["text"])
	assert.Equal(t, true, field["found"])

	missing := content[1].(map[string]any)
	assert.Nil(t, missing["value"])
	assert.Equal(t, "", missing["text"])
	assert.Equal(t, false, missing["found"])
}

func TestRenderRawProperties(t *testing.T) {
	fill := model.Func(func(model.FuncContext) (any, error) { return "red", nil })
	grid := model.NewGrid(model.Properties{
		"columns": []any{"1fr", map[string]any{"minmax": []any{"10pt", "1fr"}}},
		"align":   []any{"center", "top"},
		"fill":    fill,
	}, model.NewCellAt(1, 0, label("x")).WithProperties(model.Properties{"inset": "2pt"}))

	m := decode(t, renderJSON(t, render.Options{}, grid))
	props := m["properties"].(map[string]any)
	assert.Equal(t, FunctionSentinel, props["fill"])
	assert.Equal(t, []any{"center", "top"}, props["align"])
	assert.Equal(t, []any{"1fr", map[string]any{"minmax": []any{"10pt", "1fr"}}}, props["columns"])

	cell := m["children"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{float64(1), float64(0)}, cell["position"])
	assert.Equal(t, []any{float64(1), float64(1)}, cell["span"])
	assert.Equal(t, true, cell["explicit"])
	assert.Equal(t, map[string]any{"inset": "2pt"}, cell["properties"])
}

func TestRenderLabelTemplateAndStyle(t *testing.T) {
	grid := model.NewGrid(model.Properties{"columns": 1},
		model.NewCell(
			model.Label{Text: "Hi [who]", Style: model.Style{FontWeight: "bold"}},
			label("plain"),
		),
	)
	out := renderJSON(t, render.Options{Record: map[string]any{"who": "<script>"}}, grid)
	assert.Contains(t, out, `"text":"Hi <script>"`)

	content := decode(t, out)["children"].([]any)[0].(map[string]any)["content"].([]any)
	first := content[0].(map[string]any)
	assert.Equal(t, "Hi [who]", first["template"])
	assert.Equal(t, map[string]any{"font_weight": "bold"}, first["style"])
	_, hasTemplate := content[1].(map[string]any)["template"]
	assert.False(t, hasTemplate)
}

func TestRenderNestedAndLines(t *testing.T) {
	inner := model.NewStack(model.Properties{"direction": "ltr"}, model.NewCell(label("in")))
	outer := model.NewGrid(model.Properties{"columns": 1},
		model.NewCell(model.NestedLayout{Layout: inner}),
	).WithLines(model.HLine(1, map[string]any{"thickness": "2pt"}).Between(0, 1))

	m := decode(t, renderJSON(t, render.Options{}, outer))
	nested := m["children"].([]any)[0].(map[string]any)["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "nested_layout", nested["type"])
	layout := nested["layout"].(map[string]any)
	assert.Equal(t, "stack", layout["type"])
	_, hasDir := layout["direction"]
	assert.False(t, hasDir, "only the top-level layout carries direction")

	lines := m["lines"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, map[string]any{
		"type":        "line",
		"orientation": "horizontal",
		"position":    float64(1),
		"start":       float64(0),
		"end":         float64(1),
		"stroke":      map[string]any{"thickness": "2pt"},
	}, lines[0])
}

func TestRenderMarksOnlyAuthoredPositionsExplicit(t *testing.T) {
	grid := model.NewGrid(model.Properties{"columns": 2},
		model.NewCellAt(1, 0, label("explicit")),
		model.NewCell(label("a")),
		model.NewCell(label("b")),
		model.NewCell(label("c")),
	)
	table := model.NewTable(model.Properties{"columns": 2},
		model.NewRow(nil, model.NewCell(label("flow")), model.NewCellAt(1, 0, label("pinned"))),
	)
	layouts := decode(t, renderJSON(t, render.Options{}, grid, table))["layouts"].([]any)
	gridCells := layouts[0].(map[string]any)["children"].([]any)
	rowCells := layouts[1].(map[string]any)["children"].([]any)[0].(map[string]any)["cells"].([]any)

	type want struct {
		col, row float64
		explicit bool
	}
	tests := []struct {
		name string
		cell any
		want want
	}{
		{"grid explicit", gridCells[0], want{1, 0, true}},
		{"grid flow a", gridCells[1], want{0, 0, false}},
		{"grid flow b", gridCells[2], want{0, 1, false}},
		{"grid flow c", gridCells[3], want{1, 1, false}},
		{"row flow", rowCells[0], want{0, 0, false}},
		{"row explicit", rowCells[1], want{1, 0, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := tt.cell.(map[string]any)
			assert.Equal(t, []any{tt.want.col, tt.want.row}, cell["position"])
			explicit, present := cell["explicit"]
			if tt.want.explicit {
				assert.Equal(t, true, explicit)
			} else {
				assert.False(t, present, "flow cell must omit explicit")
			}
		})
	}
}

func TestRenderKeepsMissingPlaceholders(t *testing.T) {
	grid := model.NewGrid(model.Properties{"columns": 1},
		model.NewCell(label("Hello [missing]!")),
		model.NewCell(label("[x]")),
	)
	m := decode(t, renderJSON(t, render.Options{Record: map[string]any{"x": "<script>"}}, grid))
	assert.Equal(t, []string{"Hello [missing]!", "<script>"}, texts(m["children"].([]any)))
}

func TestRenderIsDeterministic(t *testing.T) {
	build := func() *model.Layout {
		return model.NewTable(model.Properties{
			"columns": []any{"1fr", 80}, "fill": "#eeeeee", "stroke": "1pt red", "inset": 4,
		},
			model.NewRow(model.Properties{"height": 20},
				model.NewCell(model.NewField("name")),
				model.NewCell(model.Field{Source: []string{"total"}, Format: "currency"}),
			),
		).WithHeaders(model.Header{Repeat: true, Rows: []model.Row{
			model.NewRow(nil, model.NewCell(label("Name")), model.NewCell(label("Total"))),
		}}).WithLines(model.HLine(1, "2pt blue"))
	}
	opts := render.Options{
		Record: map[string]any{"name": "ACME", "total": 1234.5, "tags": map[string]any{"b": 2, "a": 1}},
		Data:   model.Dataset{Variables: map[string]any{"z": 1, "y": 2, "x": 3}},
		Locale: "de-DE",
	}
	first := renderJSON(t, opts, build())
	for range 5 {
		assert.Equal(t, first, renderJSON(t, opts, build()))
	}
}

func TestRenderMultipleLayouts(t *testing.T) {
	a := model.NewGrid(model.Properties{"columns": 1}, model.NewCell(label("a")))
	b := model.NewStack(nil, model.NewCell(label("b")))
	m := decode(t, renderJSON(t, render.Options{Data: model.Dataset{Direction: "rtl"}}, a, b))

	assert.Equal(t, "rtl", m["direction"])
	layouts := m["layouts"].([]any)
	require.Len(t, layouts, 2)
	assert.Equal(t, "layout[0]/grid", layouts[0].(map[string]any)["path"])
	assert.Equal(t, "stack", layouts[1].(map[string]any)["type"])
}

func TestRenderPretty(t *testing.T) {
	grid := model.NewGrid(model.Properties{"columns": 1}, model.NewCell(label("a")))
	out := renderJSON(t, render.Options{Pretty: true}, grid)
	assert.True(t, strings.HasPrefix(out, "{\n  \"type\": \"grid\""))
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRenderEncodeFailure(t *testing.T) {
	grid := model.NewGrid(model.Properties{"columns": 1}, model.NewCell(model.NewField("ch")))
	doc, err := render.Prepare([]*model.Layout{grid}, render.Options{Record: map[string]any{"ch": make(chan int)}})
	require.NoError(t, err)

	_, err = Render(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrStructuralEncode)
}

// ============================================================================
// Records
// ============================================================================

func sampleData(n int) model.Dataset {
	data := model.Dataset{Variables: map[string]any{"title": "Sales"}}
	for i := range n {
		data.Records = append(data.Records, map[string]any{"id": i})
	}
	return data
}

func TestRecords(t *testing.T) {
	out, err := Records(sampleData(2), FormatJSON, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"records":[{"id":0},{"id":1}],"variables":{"title":"Sales"}}`, out)

	out, err = Records(model.Dataset{}, FormatJSON, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"records":[]}`, out)
}

func TestRecordsGrouped(t *testing.T) {
	data := model.Dataset{Groups: []model.Group{{
		Level:      1,
		Key:        "region",
		Value:      "EU",
		Aggregates: map[string]any{"total": 30},
		Subgroups: []model.Group{
			{Level: 2, Key: "country", Value: "DE", Records: []map[string]any{{"amount": 10}, {"amount": 20}}},
		},
	}}}
	out, err := Records(data, FormatJSON, render.Options{})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := map[string]any{"records": []any{
		map[string]any{
			"group_key":   "region",
			"group_value": "EU",
			"group_level": float64(1),
			"aggregates":  map[string]any{"total": float64(30)},
			"records": []any{
				map[string]any{
					"group_key":   "country",
					"group_value": "DE",
					"group_level": float64(2),
					"records": []any{
						map[string]any{"amount": float64(10)},
						map[string]any{"amount": float64(20)},
					},
				},
			},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("grouped records mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsPretty(t *testing.T) {
	out, err := Records(sampleData(1), FormatJSON, render.Options{Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"records\": [\n    {\n      \"id\": 0\n    }\n  ],\n  \"variables\": {\n    \"title\": \"Sales\"\n  }\n}", out)
}

func TestRecordsJSONL(t *testing.T) {
	out, err := Records(sampleData(3), FormatJSONL, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":0}\n{\"id\":1}\n{\"id\":2}\n", out)
	assert.Equal(t, ".jsonl", FormatJSONL.FileExtension())
	assert.Equal(t, "json", FormatJSON.String())
}

func TestStreamChunks(t *testing.T) {
	data := sampleData(250)

	var chunks []string
	for chunk, err := range Stream(data, render.Options{ChunkSize: 100}) {
		require.NoError(t, err)
		chunks = append(chunks, string(chunk))
	}
	require.Len(t, chunks, 3)
	assert.True(t, strings.HasPrefix(chunks[0], `{"records":[{"id":0},`))
	assert.True(t, strings.HasPrefix(chunks[1], `,{"id":100}`))
	assert.True(t, strings.HasSuffix(chunks[2], `{"id":249}],"variables":{"title":"Sales"}}`))

	whole, err := Records(data, FormatJSON, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, whole, strings.Join(chunks, ""))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(whole), &decoded))
	assert.Len(t, decoded["records"], 250)
}

func TestStreamDefaultChunkSizeAndEarlyStop(t *testing.T) {
	n := 0
	for range Stream(sampleData(1000), render.Options{}) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)

	count := 0
	for range Stream(sampleData(1000), render.Options{}) {
		count++
	}
	assert.Equal(t, 1000/render.DefaultChunkSize, count)
}

func TestStreamEncodeFailure(t *testing.T) {
	data := model.Dataset{Records: []map[string]any{{"ok": 1}, {"bad": make(chan int)}}}

	var lastErr error
	for _, err := range Stream(data, render.Options{}) {
		lastErr = err
	}
	require.Error(t, lastErr)
	assert.ErrorIs(t, lastErr, validation.ErrStructuralEncode)
	assert.Contains(t, lastErr.Error(), "records[1]")

	_, err := Records(data, FormatJSONL, render.Options{})
	assert.ErrorIs(t, err, validation.ErrStructuralEncode)
}
