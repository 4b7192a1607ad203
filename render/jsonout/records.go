package jsonout

import (
	"bytes"
	"encoding/json"
	"iter"
	"strconv"

	"go.uber.org/zap"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

// Format selects the records encoding.
type Format int

const (
	// FormatJSON emits one {"records": [...]} document.
	FormatJSON Format = iota
	// FormatJSONL emits one record or group per line.
	FormatJSONL
)

// String returns a human-readable representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	if f == FormatJSONL {
		return ".jsonl"
	}
	return ".json"
}

// Group is the serialized form of a pre-aggregated record group. Records
// holds detail rows for leaf groups and nested groups otherwise.
type Group struct {
	GroupKey   string         `json:"group_key,omitempty"`
	GroupValue any            `json:"group_value"`
	GroupLevel int            `json:"group_level"`
	Aggregates map[string]any `json:"aggregates,omitempty"`
	Records    []any          `json:"records"`
}

func group(g model.Group) Group {
	out := Group{
		GroupKey:   g.Key,
		GroupValue: raw(g.Value),
		GroupLevel: g.Level,
		Aggregates: g.Aggregates,
		Records:    []any{},
	}
	if g.IsLeaf() {
		for _, rec := range g.Records {
			out.Records = append(out.Records, record(rec))
		}
		return out
	}
	for _, sg := range g.Subgroups {
		out.Records = append(out.Records, group(sg))
	}
	return out
}

func record(rec map[string]any) any {
	if rec == nil {
		return map[string]any{}
	}
	return raw(rec)
}

// entries returns the number of top-level entries and an accessor:
// groups when the dataset is grouped, detail records otherwise. Entries
// are converted on access.
func entries(data model.Dataset) (int, func(int) any) {
	if len(data.Groups) > 0 {
		return len(data.Groups), func(i int) any { return group(data.Groups[i]) }
	}
	return len(data.Records), func(i int) any { return record(data.Records[i]) }
}

// Stream emits the records document in chunks of opts.ChunkSize entries.
// Concatenating the chunks yields the same document Records returns
// without Pretty. Each chunk is built when the consumer asks for it; the
// consumer may stop at any point.
func Stream(data model.Dataset, opts render.Options) iter.Seq2[[]byte, error] {
	opts = opts.WithDefaults()
	log := opts.Logger.Named("jsonout")
	return func(yield func([]byte, error) bool) {
		n, at := entries(data)

		var buf bytes.Buffer
		buf.WriteString(`{"records":[`)
		for i := range n {
			if i > 0 && i%opts.ChunkSize == 0 {
				log.Debug("emitting chunk", zap.Int("through", i))
				if !yield(bytes.Clone(buf.Bytes()), nil) {
					return
				}
				buf.Reset()
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := encode(at(i), false)
			if err != nil {
				yield(nil, validation.Locate(err, recordPath(i)))
				return
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		if len(data.Variables) > 0 {
			b, err := encode(raw(data.Variables), false)
			if err != nil {
				yield(nil, validation.Locate(err, "variables"))
				return
			}
			buf.WriteString(`,"variables":`)
			buf.Write(b)
		}
		buf.WriteByte('}')
		yield(buf.Bytes(), nil)
	}
}

// Lines emits one JSON document per top-level record or group.
func Lines(data model.Dataset) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		n, at := entries(data)
		for i := range n {
			b, err := encode(at(i), false)
			if err != nil {
				yield(nil, validation.Locate(err, recordPath(i)))
				return
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

// Records serializes the dataset in the given format.
func Records(data model.Dataset, format Format, opts render.Options) (out string, err error) {
	defer validation.Recover(&err)

	var buf bytes.Buffer
	switch format {
	case FormatJSONL:
		for line, err := range Lines(data) {
			if err != nil {
				return "", err
			}
			buf.Write(line)
			buf.WriteByte('\n')
		}
		return buf.String(), nil
	default:
		for chunk, err := range Stream(data, opts) {
			if err != nil {
				return "", err
			}
			buf.Write(chunk)
		}
	}
	if !opts.Pretty {
		return buf.String(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return "", &validation.Error{Code: validation.CodeStructuralEncodeFailure, Message: "indenting JSON", Err: err}
	}
	return pretty.String(), nil
}

func recordPath(i int) string {
	return "records[" + strconv.Itoa(i) + "]"
}
