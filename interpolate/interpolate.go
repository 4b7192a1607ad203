// Package interpolate substitutes [path] placeholders in text with values
// from a data context.
//
// A path is a dot-separated key sequence such as [user.address.city].
// Lookups try the current record first and the report variables second.
// When any step of the walk fails, or the value found is nil, the
// placeholder is left in the output unchanged, brackets included.
package interpolate

import (
	"html"
	"regexp"
	"strings"

	"github.com/tsawler/folio/locale"
	"github.com/tsawler/folio/validation"
)

var placeholder = regexp.MustCompile(`\[([^\[\]]+)\]`)

// Context is the data visible to placeholders and fields.
type Context struct {
	Record    map[string]any
	Variables map[string]any
}

// HTMLEscape escapes the five HTML-special characters < > & ' ". Escaping
// is per character, so escaping interpolated output is the same as
// escaping each literal fragment and value separately.
func HTMLEscape(s string) string { return html.EscapeString(s) }

// Interpolator resolves placeholders and converts found values to text.
type Interpolator struct {
	format *locale.Formatter
}

// New creates an interpolator that formats found values with f.
func New(f *locale.Formatter) *Interpolator {
	return &Interpolator{format: f}
}

// Text substitutes every placeholder in s. The result is not escaped.
func (ip *Interpolator) Text(s string, ctx Context) string {
	matches := placeholder.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(s[last:m[0]])
		if v, ok := Lookup(ctx, SplitPath(s[m[2]:m[3]])); ok {
			sb.WriteString(ip.format.Text(v))
		} else {
			sb.WriteString(s[m[0]:m[1]])
		}
		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// Field resolves a field's source path. Found values are formatted with
// the field's format; a missing value yields empty text.
func (ip *Interpolator) Field(source []string, format string, places *int, ctx Context) (value any, text string, found bool, warnings []validation.Warning) {
	value, found = Lookup(ctx, source)
	if !found {
		return nil, "", false, nil
	}
	text, warnings = ip.format.Format(value, format, places)
	return value, text, true, warnings
}

// Placeholders returns the paths referenced by s, in order of appearance.
func Placeholders(s string) []string {
	var out []string
	for _, m := range placeholder.FindAllStringSubmatch(s, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// SplitPath splits a dot-separated path into keys.
func SplitPath(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
