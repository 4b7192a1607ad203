// Package jsonout serializes prepared documents and record sets as JSON.
//
// Layout output keeps the authored properties and the raw field values
// next to the formatted text, so downstream consumers can re-format
// without re-running the query. Text is never HTML-escaped.
package jsonout

import (
	"bytes"
	"encoding/json"

	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

// Batch is the top level of a multi-layout document.
type Batch struct {
	Direction string    `json:"direction"`
	Layouts   []*Layout `json:"layouts"`
}

// Render serializes doc. One layout is emitted as the layout object
// itself; several are wrapped in {"layouts": [...]}.
func Render(doc *render.Document) (out string, err error) {
	defer validation.Recover(&err)

	r := &renderer{}
	r.d = render.NewDispatcher[*Layout](r, doc.Options.MaxDepth)

	layouts, err := r.d.All(doc)
	if err != nil {
		return "", err
	}

	var v any
	if len(layouts) == 1 {
		layouts[0].Direction = doc.Direction
		v = layouts[0]
	} else {
		v = Batch{Direction: doc.Direction, Layouts: layouts}
	}
	b, err := encode(v, doc.Options.Pretty)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type renderer struct {
	d *render.Dispatcher[*Layout]
}

func (r *renderer) Grid(l *render.Layout) (*Layout, error)  { return r.layout(l) }
func (r *renderer) Table(l *render.Layout) (*Layout, error) { return r.layout(l) }
func (r *renderer) Stack(l *render.Layout) (*Layout, error) { return r.layout(l) }

// encode marshals v without HTML escaping. Unsupported values are
// reported as structural_encode_failure.
func encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, &validation.Error{
			Code:    validation.CodeStructuralEncodeFailure,
			Message: "encoding JSON",
			Err:     err,
		}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
