package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/folio/locale"
)

func newInterpolator(t *testing.T, code string) *Interpolator {
	t.Helper()
	f, _ := locale.New(code, nil)
	return New(f)
}

// ============================================================================
// Text substitution
// ============================================================================

func TestText(t *testing.T) {
	ctx := Context{
		Record: map[string]any{
			"name":  "Ada",
			"total": 1234.5,
			"user":  map[string]any{"address": map[string]any{"city": "London"}},
			"tags":  []any{"a", "b"},
			"none":  nil,
		},
		Variables: map[string]any{"report": "Q1", "name": "shadowed"},
	}
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no placeholders", "no placeholders"},
		{"simple", "Hello [name]!", "Hello Ada!"},
		{"nested", "City: [user.address.city]", "City: London"},
		{"number", "Total [total]", "Total 1,234.5"},
		{"slice index", "First tag [tags.0]", "First tag a"},
		{"variable", "Report [report]", "Report Q1"},
		{"record before variables", "[name]", "Ada"},
		{"missing preserved", "Hello [missing]!", "Hello [missing]!"},
		{"partial path preserved", "[user.phone.home]", "[user.phone.home]"},
		{"nil preserved", "[none]", "[none]"},
		{"index out of range", "[tags.5]", "[tags.5]"},
		{"several", "[name] in [user.address.city] ([report])", "Ada in London (Q1)"},
		{"nested brackets untouched", "[[name]]", "[Ada]"},
		{"spaces trimmed", "[ name ]", "Ada"},
	}
	ip := newInterpolator(t, "en-US")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ip.Text(tt.in, ctx))
		})
	}
}

func TestTextUsesLocale(t *testing.T) {
	ip := newInterpolator(t, "de-DE")
	assert.Equal(t, "Summe 1.234,56", ip.Text("Summe [n]", Context{Record: map[string]any{"n": 1234.56}}))
}

func TestTextHTMLEscape(t *testing.T) {
	ip := newInterpolator(t, "en-US")
	ctx := Context{Record: map[string]any{"x": "<script>", "name": "<script>alert('x')</script>"}}

	assert.Equal(t, "<script>", ip.Text("[x]", ctx))
	assert.Equal(t, "&lt;script&gt;", HTMLEscape(ip.Text("[x]", ctx)))
	assert.Equal(t,
		"Hi &lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt; &amp; &#34;friends&#34;",
		HTMLEscape(ip.Text(`Hi [name] & "friends"`, ctx)))
}

func TestField(t *testing.T) {
	two := 2
	ip := newInterpolator(t, "en-US")
	ctx := Context{Record: map[string]any{"order": map[string]any{"total": 1234.5, "note": nil}}}

	v, text, found, warnings := ip.Field([]string{"order", "total"}, "currency", nil, ctx)
	assert.True(t, found)
	assert.Equal(t, 1234.5, v)
	assert.Equal(t, "$1,234.50", text)
	assert.Empty(t, warnings)

	_, text, _, _ = ip.Field([]string{"order", "total"}, "number", &two, ctx)
	assert.Equal(t, "1,234.50", text)

	v, text, found, _ = ip.Field([]string{"order", "note"}, "", nil, ctx)
	assert.False(t, found)
	assert.Nil(t, v)
	assert.Empty(t, text)

	_, _, _, warnings = ip.Field([]string{"order", "total"}, "date", nil, ctx)
	assert.Len(t, warnings, 1)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"a.b", "c"}, Placeholders("x [a.b] y [ c ]"))
	assert.Nil(t, Placeholders("none"))
}

// ============================================================================
// Walking
// ============================================================================

type address struct {
	City string `json:"city"`
	Zip  string
}

func TestWalk(t *testing.T) {
	data := map[string]any{
		"any":     map[any]any{1: "one", "two": 2, 3.5: "float"},
		"typed":   map[string]int{"x": 7},
		"intkeys": map[int]string{42: "answer"},
		"struct":  address{City: "Paris", Zip: "75001"},
		"ptr":     &address{City: "Rome"},
		"strs":    []string{"p", "q"},
		"nilmap":  map[string]any(nil),
	}
	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"any.1", "one", true},
		{"any.two", 2, true},
		{"any.3.5", nil, false},
		{"typed.x", 7, true},
		{"intkeys.42", "answer", true},
		{"struct.city", "Paris", true},
		{"struct.Zip", "75001", true},
		{"ptr.City", "Rome", true},
		{"strs.1", "q", true},
		{"strs.-1", nil, false},
		{"nilmap", nil, false},
		{"nilmap.x", nil, false},
		{"struct.city.more", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Walk(data, SplitPath(tt.path))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupFallsBackToVariables(t *testing.T) {
	ctx := Context{Variables: map[string]any{"page": 3}}
	v, ok := Lookup(ctx, []string{"page"})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = Lookup(Context{}, []string{"page"})
	assert.False(t, ok)
}
