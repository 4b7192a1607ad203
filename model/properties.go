package model

import "sort"

// Properties maps a property key to its authored value. Values are raw
// literals (strings, numbers, slices, maps) or a PropertyFunc.
type Properties map[string]any

// Get returns the value for key; nil values count as absent.
func (p Properties) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// With returns a copy of p with key set to value.
func (p Properties) With(key string, value any) Properties {
	c := make(Properties, len(p)+1)
	for k, v := range p {
		c[k] = v
	}
	c[key] = value
	return c
}

// Keys returns the property keys in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FuncContext is passed to function-valued properties.
type FuncContext struct {
	Column    int
	Row       int
	Node      string
	Record    map[string]any
	Variables map[string]any
}

// PropertyFunc computes a property value from its render context.
type PropertyFunc interface {
	Eval(ctx FuncContext) (any, error)
}

// Func adapts an ordinary function to PropertyFunc.
type Func func(ctx FuncContext) (any, error)

// Eval calls f(ctx).
func (f Func) Eval(ctx FuncContext) (any, error) { return f(ctx) }
