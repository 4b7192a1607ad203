package render

import (
	"fmt"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// Backend emits one layout kind at a time. Implementations render nested
// layouts through the Dispatcher they were registered with.
type Backend[T any] interface {
	Grid(l *Layout) (T, error)
	Table(l *Layout) (T, error)
	Stack(l *Layout) (T, error)
}

// Dispatcher routes layouts to a backend by kind.
type Dispatcher[T any] struct {
	backend  Backend[T]
	maxDepth int
}

// NewDispatcher creates a dispatcher for b. A non-positive maxDepth uses
// DefaultMaxDepth.
func NewDispatcher[T any](b Backend[T], maxDepth int) *Dispatcher[T] {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Dispatcher[T]{backend: b, maxDepth: maxDepth}
}

// Render emits l with the backend method for its kind.
func (d *Dispatcher[T]) Render(l *Layout) (T, error) {
	var zero T
	if l == nil {
		return zero, &validation.Error{Code: validation.CodeMissingRequiredProperty, Message: "nil layout"}
	}
	if l.Depth > d.maxDepth {
		return zero, &validation.Error{
			Code:    validation.CodeInvalidNesting,
			Node:    l.Path,
			Message: fmt.Sprintf("layout nesting exceeds %d levels", d.maxDepth),
		}
	}
	switch l.Kind {
	case model.KindGrid:
		return d.backend.Grid(l)
	case model.KindTable:
		return d.backend.Table(l)
	case model.KindStack:
		return d.backend.Stack(l)
	default:
		return zero, &validation.Error{
			Code:    validation.CodeInvalidNesting,
			Node:    l.Path,
			Message: fmt.Sprintf("%s is not a layout", l.Kind),
		}
	}
}

// All renders every layout of doc in order.
func (d *Dispatcher[T]) All(doc *Document) ([]T, error) {
	out := make([]T, 0, len(doc.Layouts))
	for _, l := range doc.Layouts {
		v, err := d.Render(l)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
