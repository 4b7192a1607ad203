package typst

import "strings"

// expr is a fragment of markup source.
type expr interface {
	write(b *strings.Builder, pretty bool, depth int)
}

// raw is emitted verbatim.
type raw string

func (r raw) write(b *strings.Builder, _ bool, _ int) { b.WriteString(string(r)) }

// arg is a named argument.
func arg(name, value string) expr { return raw(name + ": " + value) }

// call is a function call with an optional trailing content block. hash
// marks calls that appear in markup rather than code.
type call struct {
	hash bool
	name string
	args []expr
	body *block
}

func (c *call) add(e expr) { c.args = append(c.args, e) }

func (c *call) write(b *strings.Builder, pretty bool, depth int) {
	if c.hash {
		b.WriteByte('#')
	}
	b.WriteString(c.name)
	if len(c.args) > 0 || c.body == nil {
		b.WriteByte('(')
		for i, a := range c.args {
			switch {
			case pretty:
				b.WriteByte('\n')
				indent(b, depth+1)
			case i > 0:
				b.WriteString(", ")
			}
			a.write(b, pretty, depth+1)
			if pretty {
				b.WriteByte(',')
			}
		}
		if pretty && len(c.args) > 0 {
			b.WriteByte('\n')
			indent(b, depth)
		}
		b.WriteByte(')')
	}
	if c.body != nil {
		c.body.write(b, pretty, depth)
	}
}

// block is a content block; items are separated by a space.
type block struct {
	items []expr
}

func (k *block) write(b *strings.Builder, pretty bool, depth int) {
	b.WriteByte('[')
	for i, it := range k.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		it.write(b, pretty, depth)
	}
	b.WriteByte(']')
}

func indent(b *strings.Builder, depth int) {
	for range depth {
		b.WriteString("  ")
	}
}

func format(e expr, pretty bool) string {
	var b strings.Builder
	e.write(&b, pretty, 0)
	return b.String()
}
