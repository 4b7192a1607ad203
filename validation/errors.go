// Package validation defines the structured error taxonomy shared by the
// positioning engine, the property resolver and the renderer backends.
//
// Structural problems are returned as *Error values and stop the pipeline
// for the layout being rendered. Cosmetic problems are reported as Warning
// values next to an otherwise complete output.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a class of failure.
type Code string

const (
	// DSL/property validation
	CodeInvalidProperty         Code = "invalid_property"
	CodeMissingRequiredProperty Code = "missing_required_property"
	CodeInvalidNesting          Code = "invalid_nesting"

	// Positioning
	CodePositionConflict Code = "position_conflict"
	CodeSpanOverflow     Code = "span_overflow"
	CodeInvalidPosition  Code = "invalid_position"
	CodeGridGap          Code = "grid_gap"

	// Property values
	CodeInvalidTrackSize Code = "invalid_track_size"
	CodeInvalidColor     Code = "invalid_color"
	CodeInvalidAlignment Code = "invalid_alignment"
	CodeInvalidLength    Code = "invalid_length"

	// Rendering/encoding
	CodeStructuralEncodeFailure   Code = "structural_encode_failure"
	CodeFunctionEvaluationFailure Code = "function_evaluation_failure"

	// Formatting fallbacks (never fatal)
	CodeUnknownLocale   Code = "unknown_locale"
	CodeInvalidDate     Code = "invalid_date"
	CodeUnknownCurrency Code = "unknown_currency"
)

// Fatal reports whether failures of this class halt the pipeline.
func (c Code) Fatal() bool {
	switch c {
	case CodeGridGap, CodeFunctionEvaluationFailure, CodeInvalidColor,
		CodeUnknownLocale, CodeInvalidDate, CodeUnknownCurrency:
		return false
	default:
		return true
	}
}

// Cell is a (column, row) coordinate used for location context.
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Col, c.Row)
}

// Error is a structured validation or rendering failure.
type Error struct {
	Code    Code
	Message string

	// Location context. Zero values are omitted from Error().
	Node     string // e.g. "table/body/row[2]/cell[1]"
	Property string
	Value    any
	Allowed  []string
	Position *Cell
	Conflict *Cell // position of the prior occupant
	Bounds   *Cell // declared column/row count

	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	if e.Node != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Node)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Property != "" {
		fmt.Fprintf(&sb, " (property %q", e.Property)
		if e.Value != nil {
			fmt.Fprintf(&sb, ", value %v", e.Value)
		}
		sb.WriteString(")")
	}
	if len(e.Allowed) > 0 {
		fmt.Fprintf(&sb, "; allowed: %s", strings.Join(e.Allowed, ", "))
	}
	if e.Position != nil {
		fmt.Fprintf(&sb, "; position %s", e.Position)
	}
	if e.Conflict != nil {
		fmt.Fprintf(&sb, "; occupied by cell at %s", e.Conflict)
	}
	if e.Bounds != nil {
		fmt.Fprintf(&sb, "; bounds %d columns", e.Bounds.Col)
		if e.Bounds.Row > 0 {
			fmt.Fprintf(&sb, " x %d rows", e.Bounds.Row)
		}
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code, so the sentinels below can be
// used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// At returns a copy of e with its node location set, prefixing any existing
// location.
func (e *Error) At(node string) *Error {
	c := *e
	switch {
	case c.Node == "":
		c.Node = node
	case node != "":
		c.Node = node + "/" + c.Node
	}
	return &c
}

// Sentinels for errors.Is.
var (
	ErrInvalidProperty         = &Error{Code: CodeInvalidProperty}
	ErrMissingRequiredProperty = &Error{Code: CodeMissingRequiredProperty}
	ErrInvalidNesting          = &Error{Code: CodeInvalidNesting}
	ErrPositionConflict        = &Error{Code: CodePositionConflict}
	ErrSpanOverflow            = &Error{Code: CodeSpanOverflow}
	ErrInvalidPosition         = &Error{Code: CodeInvalidPosition}
	ErrInvalidTrackSize        = &Error{Code: CodeInvalidTrackSize}
	ErrInvalidColor            = &Error{Code: CodeInvalidColor}
	ErrInvalidAlignment        = &Error{Code: CodeInvalidAlignment}
	ErrInvalidLength           = &Error{Code: CodeInvalidLength}
	ErrStructuralEncode        = &Error{Code: CodeStructuralEncodeFailure}
)

// New creates an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Locate prefixes the node location of err if it is an *Error, and returns
// err unchanged otherwise.
func Locate(err error, node string) error {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.At(node)
	}
	return err
}

// CodeOf returns the Code of err, or "" when err is not an *Error.
func CodeOf(err error) Code {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}
