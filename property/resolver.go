package property

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// Set is the normalized, effective property set of one node. Nil pointers
// and empty slices mean the property is unset.
type Set struct {
	Columns      []Track
	Rows         []Track
	ColumnGutter *Length
	RowGutter    *Length
	Align        *Alignment
	Fill         *Color
	Stroke       *Stroke
	Inset        *Length
	Height       *Length
	Direction    Direction
	Spacing      *Length
	Breakable    *bool
}

// IsZero reports whether no property is set.
func (s Set) IsZero() bool {
	return len(s.Columns) == 0 && len(s.Rows) == 0 && s.ColumnGutter == nil &&
		s.RowGutter == nil && s.Align == nil && s.Fill == nil && s.Stroke == nil &&
		s.Inset == nil && s.Height == nil && s.Direction == "" && s.Spacing == nil &&
		s.Breakable == nil
}

// CellSet is the result of resolving a cell. Effective holds the full
// layout → row → cell cascade. Local holds what the row and the cell set
// themselves plus inherited function values, which is what a backend emits
// on the cell when the layout's literal values are already emitted on the
// container.
type CellSet struct {
	Effective Set
	Local     Set
}

// Keys accepted at each level.
var (
	layoutKeys = keySet("columns", "rows", "gutter", "column_gutter", "row_gutter",
		"align", "fill", "stroke", "inset", "direction", "spacing")
	rowKeys  = keySet("height", "fill", "stroke", "align", "inset")
	cellKeys = keySet("align", "fill", "stroke", "inset", "breakable")

	// Keys that cascade from a layout or row into its cells.
	inheritable = []string{"align", "fill", "stroke", "inset"}
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// Scope is the evaluation context of function-valued properties.
type Scope struct {
	Node      string
	Column    int
	Row       int
	Record    map[string]any
	Variables map[string]any
}

// Resolver normalizes and cascades properties.
type Resolver struct {
	log *zap.Logger
}

// NewResolver creates a resolver. A nil logger disables logging.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Cascade merges property levels from least to most specific. A key takes
// the value of the most specific level where it is set and non-nil; values
// are never merged.
func Cascade(levels ...model.Properties) model.Properties {
	out := model.Properties{}
	for _, level := range levels {
		for k, v := range level {
			if v != nil {
				out[normalizeKey(k)] = v
			}
		}
	}
	return out
}

func normalizeKey(k string) string {
	return strings.ReplaceAll(strings.ToLower(k), "-", "_")
}

// Layout resolves a layout's own properties. Inheritable keys holding a
// function are left to the cells, where the function is evaluated per
// position.
func (r *Resolver) Layout(props model.Properties, scope Scope) (Set, []validation.Warning, error) {
	var (
		set      Set
		warnings []validation.Warning
	)
	var gutter any
	props = Cascade(props)
	for _, key := range props.Keys() {
		v := props[key]
		if !layoutKeys[key] {
			r.log.Debug("ignoring unknown layout property", zap.String("node", scope.Node), zap.String("property", key))
			continue
		}
		if _, isFunc := v.(model.PropertyFunc); isFunc && isInheritable(key) {
			continue
		}
		v, w := r.evaluate(key, v, scope)
		warnings = append(warnings, w...)
		if v == nil {
			continue
		}
		if key == "gutter" {
			gutter = v
			continue
		}
		w, err := r.apply(&set, key, v, scope.Node)
		if err != nil {
			return Set{}, nil, err
		}
		warnings = append(warnings, w...)
	}
	if gutter != nil {
		l, err := ParseLength(gutter)
		if err != nil {
			return Set{}, nil, propertyError(err, scope.Node, "gutter", gutter)
		}
		if set.ColumnGutter == nil {
			set.ColumnGutter = &l
		}
		if set.RowGutter == nil {
			set.RowGutter = &l
		}
	}
	return set, warnings, nil
}

// Cell resolves the cascade layout → row → cell for one positioned cell.
// row may be nil for cells that are direct layout children.
func (r *Resolver) Cell(layout, row, cell model.Properties, scope Scope) (CellSet, []validation.Warning, error) {
	var warnings []validation.Warning

	inherited := model.Properties{}
	for k, v := range Cascade(layout) {
		if isInheritable(k) {
			inherited[k] = v
		}
	}
	rowProps := model.Properties{}
	for k, v := range Cascade(row) {
		if !rowKeys[k] {
			r.log.Debug("ignoring unknown row property", zap.String("node", scope.Node), zap.String("property", k))
			continue
		}
		rowProps[k] = v
	}
	cellProps := model.Properties{}
	for k, v := range Cascade(cell) {
		if !cellKeys[k] {
			r.log.Debug("ignoring unknown cell property", zap.String("node", scope.Node), zap.String("property", k))
			continue
		}
		cellProps[k] = v
	}

	local := Cascade(rowProps, cellProps)
	effective := Cascade(inherited, rowProps, cellProps)

	// Function values are evaluated once per key and shared by both sets.
	resolved := make(map[string]any, len(effective))
	for _, key := range effective.Keys() {
		v, w := r.evaluate(key, effective[key], scope)
		warnings = append(warnings, w...)
		resolved[key] = v
	}

	var out CellSet
	for _, key := range effective.Keys() {
		v := resolved[key]
		if v == nil {
			continue
		}
		w, err := r.apply(&out.Effective, key, v, scope.Node)
		if err != nil {
			return CellSet{}, nil, err
		}
		_, isLocal := local[key]
		_, isFunc := effective[key].(model.PropertyFunc)
		// Inherited literals were already reported on the layout.
		if isLocal || isFunc {
			warnings = append(warnings, w...)
			if _, err := r.apply(&out.Local, key, v, scope.Node); err != nil {
				return CellSet{}, nil, err
			}
		}
	}
	return out, warnings, nil
}

func isInheritable(key string) bool {
	for _, k := range inheritable {
		if k == key {
			return true
		}
	}
	return false
}

// evaluate calls a function-valued property. A failing function yields nil
// and a warning; rendering continues without the property.
func (r *Resolver) evaluate(key string, v any, scope Scope) (out any, warnings []validation.Warning) {
	fn, ok := v.(model.PropertyFunc)
	if !ok {
		return v, nil
	}
	fail := func(msg string) {
		r.log.Warn("property function failed",
			zap.String("node", scope.Node),
			zap.String("property", key),
			zap.String("error", msg))
		out = nil
		warnings = []validation.Warning{{
			Code:     validation.CodeFunctionEvaluationFailure,
			Node:     scope.Node,
			Property: key,
			Message:  msg,
		}}
	}
	defer func() {
		if rec := recover(); rec != nil {
			fail(fmt.Sprintf("panic: %v", rec))
		}
	}()
	res, err := fn.Eval(model.FuncContext{
		Column:    scope.Column,
		Row:       scope.Row,
		Node:      scope.Node,
		Record:    scope.Record,
		Variables: scope.Variables,
	})
	if err != nil {
		fail(err.Error())
		return out, warnings
	}
	return res, nil
}

func (r *Resolver) apply(set *Set, key string, v any, node string) ([]validation.Warning, error) {
	switch key {
	case "columns":
		tracks, err := ParseTracks(v)
		if err != nil {
			return nil, propertyError(err, node, key, v)
		}
		set.Columns = tracks
	case "rows":
		tracks, err := parseRowTracks(v)
		if err != nil {
			return nil, propertyError(err, node, key, v)
		}
		set.Rows = tracks
	case "column_gutter", "row_gutter", "inset", "height", "spacing":
		l, err := ParseLength(v)
		if err != nil {
			return nil, propertyError(err, node, key, v)
		}
		switch key {
		case "column_gutter":
			set.ColumnGutter = &l
		case "row_gutter":
			set.RowGutter = &l
		case "inset":
			set.Inset = &l
		case "height":
			set.Height = &l
		case "spacing":
			set.Spacing = &l
		}
	case "align":
		a, err := ParseAlignment(v)
		if err != nil {
			return nil, propertyError(err, node, key, v)
		}
		set.Align = &a
	case "fill":
		c, err := ParseColor(v)
		if err != nil {
			none := None
			set.Fill = &none
			return []validation.Warning{colorWarning(err, node, key, v, "transparent")}, nil
		}
		set.Fill = &c
	case "stroke":
		s, err := ParseStroke(v)
		if err != nil {
			if validation.CodeOf(err) == validation.CodeInvalidColor {
				set.Stroke = &s
				return []validation.Warning{colorWarning(err, node, key, v, "black")}, nil
			}
			return nil, propertyError(err, node, key, v)
		}
		set.Stroke = &s
	case "direction":
		d, err := ParseDirection(v)
		if err != nil {
			return nil, propertyError(err, node, key, v)
		}
		set.Direction = d
	case "breakable":
		b, ok := v.(bool)
		if !ok {
			return nil, &validation.Error{
				Code: validation.CodeInvalidProperty, Node: node, Property: key,
				Value: v, Message: "expected a boolean", Allowed: []string{"true", "false"},
			}
		}
		set.Breakable = &b
	}
	return nil, nil
}

// parseRowTracks treats an integer as N auto rows; the integer itself is
// also the row bound used by the positioning engine.
func parseRowTracks(v any) ([]Track, error) {
	if f, ok := toFloat(v); ok && f >= 1 && f == float64(int(f)) {
		tracks := make([]Track, int(f))
		for i := range tracks {
			tracks[i] = Auto
		}
		return tracks, nil
	}
	return ParseTracks(v)
}

// propertyError wraps a value error as invalid_property, keeping the
// specific cause reachable through errors.Is.
func propertyError(err error, node, key string, v any) error {
	var ve *validation.Error
	if !errors.As(err, &ve) {
		return err
	}
	return &validation.Error{
		Code:     validation.CodeInvalidProperty,
		Node:     node,
		Property: key,
		Value:    v,
		Message:  ve.Message,
		Allowed:  ve.Allowed,
		Err:      ve,
	}
}
