package render

import (
	"go.uber.org/zap"

	"github.com/tsawler/folio/interpolate"
	"github.com/tsawler/folio/model"
)

const (
	// DefaultChunkSize is the number of records per streamed JSON chunk.
	DefaultChunkSize = 100

	// DefaultMaxDepth bounds layout nesting.
	DefaultMaxDepth = 16
)

// Page configures the markup preamble.
type Page struct {
	Paper    string // e.g. "a4", "us-letter"
	Width    any    // lengths; nil means unset
	Height   any
	Margin   any
	Font     string
	FontSize any
}

// IsZero reports whether no page setting is present.
func (p Page) IsZero() bool {
	return p.Paper == "" && p.Width == nil && p.Height == nil && p.Margin == nil &&
		p.Font == "" && p.FontSize == nil
}

// Options carries the data context, locale and backend flags of one render
// call.
type Options struct {
	// Data is the materialized input: records, variables and groups.
	Data model.Dataset

	// Record is the record placeholders and fields read first. Variables
	// from Data are the fallback.
	Record map[string]any

	// Locale selects number and date formatting. Unknown codes fall back
	// to en-US with a warning.
	Locale string

	// Currency is the ISO 4217 code used by "currency" fields that name
	// none. Empty selects the locale's regional currency.
	Currency string

	// Direction overrides Data.Direction ("ltr" or "rtl").
	Direction string

	// Pretty indents JSON output and the markup source.
	Pretty bool

	// ChunkSize is the number of records per streamed JSON chunk.
	ChunkSize int

	// MaxDepth bounds layout nesting; deeper layouts are invalid_nesting.
	MaxDepth int

	// FullDocument wraps HTML output in a complete document.
	FullDocument bool

	// Title is the HTML document title.
	Title string

	// Page is the markup preamble; empty means no preamble.
	Page Page

	// ReportGaps reports unoccupied grid slots as grid_gap warnings.
	ReportGaps bool

	Logger *zap.Logger
}

// WithDefaults fills unset fields.
func (o Options) WithDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Context returns the interpolation context.
func (o Options) Context() interpolate.Context {
	return interpolate.Context{Record: o.Record, Variables: o.Data.Variables}
}

// TextDirection returns the effective text direction.
func (o Options) TextDirection() string {
	if o.Direction != "" {
		return o.Direction
	}
	if o.Data.Direction != "" {
		return o.Data.Direction
	}
	return "ltr"
}
