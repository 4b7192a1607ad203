package folio_test

import (
	"fmt"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/model"
)

func pair() *model.Layout {
	return model.NewGrid(model.Properties{"columns": 2},
		model.NewCell(model.Label{Text: "a"}),
		model.NewCell(model.Label{Text: "b"}),
	)
}

func Example_html() {
	out, _, err := folio.New(pair()).HTML()
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// <div class="ash-grid" style="display: grid; grid-template-columns: 1fr 1fr"><div class="ash-cell" style="grid-column: 1 / span 1; grid-row: 1 / span 1"><span class="ash-label">a</span></div><div class="ash-cell" style="grid-column: 2 / span 1; grid-row: 1 / span 1"><span class="ash-label">b</span></div></div>
}

func Example_typst() {
	out, _, err := folio.New(pair()).Typst()
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// #grid(columns: (1fr, 1fr), grid.cell(x: 0, y: 0)[#"a"], grid.cell(x: 1, y: 0)[#"b"])
}

func Example_records() {
	ds := model.Dataset{
		Records:   []map[string]any{{"region": "north", "sales": 120}, {"region": "south", "sales": 95}},
		Variables: map[string]any{"quarter": "Q3"},
	}
	out, _, err := folio.New().Data(ds).Records()
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output:
	// {"records":[{"region":"north","sales":120},{"region":"south","sales":95}],"variables":{"quarter":"Q3"}}
}

func Example_warnings() {
	_, warnings, err := folio.New(pair()).Locale("tlh").HTML()
	if err != nil {
		panic(err)
	}
	fmt.Println(folio.FormatWarnings(warnings))
	// Output:
	// unknown_locale: unknown locale; using en-US (property "locale", value tlh)
}
