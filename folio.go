// Package folio renders report layouts to HTML, Typst markup and JSON
// through a fluent API.
//
// Basic usage:
//
//	grid := model.NewGrid(model.Properties{"columns": 2},
//	    model.NewCell(model.Label{Text: "Customer"}),
//	    model.NewCell(model.NewField("customer.name")),
//	)
//	html, warnings, err := folio.New(grid).
//	    Record(map[string]any{"customer": map[string]any{"name": "ACME"}}).
//	    HTML()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", folio.FormatWarnings(warnings))
//	}
//
// With options:
//
//	src, _, err := folio.New(table).
//	    Data(dataset).
//	    Locale("de-DE").
//	    Page(render.Page{Paper: "a4"}).
//	    Typst()
//
// The lower-level packages (position, property, render and the backends
// under render/) are also available for advanced use.
package folio

import (
	"github.com/tsawler/folio/config"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// Warning is a non-fatal problem reported next to rendered output.
type Warning = validation.Warning

// New returns a Renderer for the given top-level layouts.
//
// Example:
//
//	html, warnings, err := folio.New(grid).HTML()
func New(layouts ...*model.Layout) *Renderer {
	return &Renderer{
		layouts: append([]*model.Layout(nil), layouts...),
		options: defaultOptions(),
	}
}

// FromProfile returns a Renderer configured from an HCL or YAML render
// profile. A profile that cannot be loaded is reported by the terminal
// operation.
//
// Example:
//
//	out, _, err := folio.FromProfile("report.hcl", table).Render()
func FromProfile(path string, layouts ...*model.Layout) *Renderer {
	r := New(layouts...)
	p, err := config.Load(path)
	if err != nil {
		r.err = err
		return r
	}
	return r.Profile(p)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutput is a helper that wraps a call to a terminal operation such as
// HTML() and panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	html := folio.MustOutput(folio.New(grid).HTML())
func MustOutput[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// FormatWarnings joins warnings into one human readable string, one
// warning per line.
func FormatWarnings(warnings []Warning) string {
	return validation.FormatWarnings(warnings)
}
