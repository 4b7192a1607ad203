package folio

import (
	"fmt"
	"iter"
	"maps"

	"go.uber.org/zap"

	"github.com/tsawler/folio/config"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/render/htmlout"
	"github.com/tsawler/folio/render/jsonout"
	"github.com/tsawler/folio/render/typst"
	"github.com/tsawler/folio/validation"
)

// Renderer provides a fluent interface for rendering layouts. Each
// configuration method returns a new Renderer, making it safe for
// concurrent use and allowing method chaining.
type Renderer struct {
	layouts []*model.Layout

	// Configuration
	options renderOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Renderer with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (r *Renderer) clone() *Renderer {
	return &Renderer{
		layouts: r.layouts,
		options: r.options.clone(),
		err:     r.err,
	}
}

// ============================================================================
// Configuration Methods (return new Renderer instance)
// ============================================================================

// Data sets the dataset: detail records, report variables, groups and
// text direction.
func (r *Renderer) Data(ds model.Dataset) *Renderer {
	n := r.clone()
	n.options.data = ds
	n.options.data.Variables = maps.Clone(ds.Variables)
	return n
}

// Record sets the record placeholders and fields are resolved against.
// Report variables are the fallback.
//
// Example:
//
//	html, _, err := folio.New(invoice).Record(order).HTML()
func (r *Renderer) Record(rec map[string]any) *Renderer {
	n := r.clone()
	n.options.record = maps.Clone(rec)
	return n
}

// Variables adds report variables. Later calls override earlier keys.
func (r *Renderer) Variables(vars map[string]any) *Renderer {
	n := r.clone()
	if n.options.data.Variables == nil {
		n.options.data.Variables = map[string]any{}
	}
	maps.Copy(n.options.data.Variables, vars)
	return n
}

// Locale selects number and date formatting ("de-DE"). Unknown codes
// fall back to en-US with a warning.
func (r *Renderer) Locale(code string) *Renderer {
	n := r.clone()
	n.options.locale = code
	return n
}

// Currency sets the ISO 4217 code used by "currency" fields that name
// none.
func (r *Renderer) Currency(code string) *Renderer {
	n := r.clone()
	n.options.currency = code
	return n
}

// Direction sets the text direction ("ltr" or "rtl"), overriding the
// dataset's.
func (r *Renderer) Direction(dir string) *Renderer {
	n := r.clone()
	n.options.direction = dir
	return n
}

// RTL is shorthand for Direction("rtl").
func (r *Renderer) RTL() *Renderer { return r.Direction("rtl") }

// Pretty indents JSON and Typst output.
func (r *Renderer) Pretty() *Renderer {
	n := r.clone()
	n.options.pretty = true
	return n
}

// FullDocument wraps HTML output in a complete document with the given
// title.
func (r *Renderer) FullDocument(title string) *Renderer {
	n := r.clone()
	n.options.fullDocument = true
	n.options.title = title
	return n
}

// Page sets the Typst page preamble.
func (r *Renderer) Page(p render.Page) *Renderer {
	n := r.clone()
	n.options.page = p
	return n
}

// ChunkSize sets the number of records per streamed JSON chunk.
func (r *Renderer) ChunkSize(size int) *Renderer {
	n := r.clone()
	n.options.chunkSize = size
	return n
}

// MaxDepth bounds layout nesting.
func (r *Renderer) MaxDepth(depth int) *Renderer {
	n := r.clone()
	n.options.maxDepth = depth
	return n
}

// ReportGaps reports unoccupied grid slots as grid_gap warnings.
func (r *Renderer) ReportGaps() *Renderer {
	n := r.clone()
	n.options.reportGaps = true
	return n
}

// Backend selects the emitter used by Render.
func (r *Renderer) Backend(b config.Backend) *Renderer {
	n := r.clone()
	n.options.backend = b
	return n
}

// Logger sets the logger for debug output. Nil disables logging.
func (r *Renderer) Logger(log *zap.Logger) *Renderer {
	n := r.clone()
	n.options.logger = log
	return n
}

// Profile applies a decoded render profile. Settings not present in the
// profile keep their current values.
func (r *Renderer) Profile(p *config.Profile) *Renderer {
	n := r.clone()
	if err := p.Validate(); err != nil {
		n.err = err
		return n
	}
	o := &n.options
	o.backend = p.Backend
	if p.Locale != "" {
		o.locale = p.Locale
	}
	if p.Currency != "" {
		o.currency = p.Currency
	}
	if p.Page.TextDirection != "" {
		o.direction = p.Page.TextDirection
	}
	o.pretty = o.pretty || p.Pretty
	if p.FullDocument {
		o.fullDocument = true
		o.title = p.Title
	}
	if p.ChunkSize > 0 {
		o.chunkSize = p.ChunkSize
	}
	if p.MaxDepth > 0 {
		o.maxDepth = p.MaxDepth
	}
	o.reportGaps = o.reportGaps || p.ReportGaps
	if page := p.Options().Page; !page.IsZero() {
		o.page = page
	}
	if len(p.Variables) > 0 {
		if o.variables == nil {
			o.variables = map[string]any{}
		}
		maps.Copy(o.variables, p.Variables)
	}
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document positions, resolves and interpolates the layouts without
// emitting output. Backends consume the returned tree.
func (r *Renderer) Document() (doc *render.Document, warnings []Warning, err error) {
	defer validation.Recover(&err)
	if r.err != nil {
		return nil, nil, r.err
	}
	if len(r.layouts) == 0 {
		return nil, nil, &validation.Error{
			Code:    validation.CodeMissingRequiredProperty,
			Message: "no layouts to render",
		}
	}
	doc, err = render.Prepare(r.layouts, r.options.render())
	if err != nil {
		return nil, nil, err
	}
	return doc, doc.Warnings, nil
}

// HTML renders the layouts as an HTML fragment, or a full document when
// FullDocument was set.
func (r *Renderer) HTML() (string, []Warning, error) {
	return r.emit(config.BackendHTML, htmlout.Render)
}

// Typst renders the layouts as Typst markup.
//
// Example:
//
//	src, _, err := folio.New(table).Page(render.Page{Paper: "a4"}).Typst()
func (r *Renderer) Typst() (string, []Warning, error) {
	return r.emit(config.BackendTypst, typst.Render)
}

// JSON serializes the positioned layouts with raw field values.
func (r *Renderer) JSON() (string, []Warning, error) {
	return r.emit(config.BackendJSON, jsonout.Render)
}

// Records serializes the dataset as {"records": [...]}, with groups
// nested when the dataset is grouped. No layouts are needed.
func (r *Renderer) Records() (string, []Warning, error) {
	return r.records(jsonout.FormatJSON)
}

// RecordLines serializes the dataset as JSON Lines, one top-level record
// or group per line.
func (r *Renderer) RecordLines() (string, []Warning, error) {
	return r.records(jsonout.FormatJSONL)
}

// JSONStream returns the records document as chunks of ChunkSize records.
// Chunks are produced as the consumer pulls them; concatenated they equal
// Records() without Pretty.
//
// Example:
//
//	for chunk, err := range folio.New().Data(ds).JSONStream() {
//	    if err != nil {
//	        return err
//	    }
//	    w.Write(chunk)
//	}
func (r *Renderer) JSONStream() iter.Seq2[[]byte, error] {
	if r.err != nil {
		err := r.err
		return func(yield func([]byte, error) bool) { yield(nil, err) }
	}
	opts := r.options.render()
	return jsonout.Stream(opts.Data, opts)
}

// Render emits output with the backend selected by Backend or a profile.
func (r *Renderer) Render() (string, []Warning, error) {
	switch r.options.backend {
	case config.BackendTypst:
		return r.Typst()
	case config.BackendJSON:
		return r.JSON()
	case config.BackendRecords:
		return r.Records()
	case config.BackendHTML, "":
		return r.HTML()
	}
	return "", nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidProfile, r.options.backend)
}

func (r *Renderer) emit(backend config.Backend, fn func(*render.Document) (string, error)) (out string, warnings []Warning, err error) {
	defer validation.Recover(&err)

	doc, warnings, err := r.Document()
	if err != nil {
		return "", nil, err
	}
	out, err = fn(doc)
	if err != nil {
		return "", warnings, err
	}
	doc.Options.Logger.Debug("rendered",
		zap.String("backend", string(backend)),
		zap.Int("layouts", len(doc.Layouts)),
		zap.Int("warnings", len(warnings)),
		zap.Int("bytes", len(out)))
	return out, warnings, nil
}

func (r *Renderer) records(format jsonout.Format) (out string, warnings []Warning, err error) {
	defer validation.Recover(&err)
	if r.err != nil {
		return "", nil, r.err
	}
	opts := r.options.render()
	out, err = jsonout.Records(opts.Data, format, opts)
	if err != nil {
		return "", nil, err
	}
	return out, nil, nil
}
