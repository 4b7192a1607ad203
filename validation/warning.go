package validation

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal problem encountered while rendering. The output
// that accompanies a warning is complete; a safe default was substituted
// for the offending value.
type Warning struct {
	Code     Code
	Node     string
	Property string
	Value    any
	Message  string
}

func (w Warning) String() string {
	var sb strings.Builder
	sb.WriteString(string(w.Code))
	if w.Node != "" {
		sb.WriteString(" at ")
		sb.WriteString(w.Node)
	}
	if w.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(w.Message)
	}
	if w.Property != "" {
		fmt.Fprintf(&sb, " (property %q", w.Property)
		if w.Value != nil {
			fmt.Fprintf(&sb, ", value %v", w.Value)
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// Warn converts a non-fatal *Error into a Warning.
func Warn(e *Error) Warning {
	return Warning{
		Code:     e.Code,
		Node:     e.Node,
		Property: e.Property,
		Value:    e.Value,
		Message:  e.Message,
	}
}

// FormatWarnings joins warnings into a single human readable string,
// one warning per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// Recover converts a panic recovered at a public boundary into a
// structural_encode_failure error. Use it as:
//
//	defer validation.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = &Error{Code: CodeStructuralEncodeFailure, Message: "internal failure", Err: e}
		return
	}
	*err = &Error{Code: CodeStructuralEncodeFailure, Message: fmt.Sprintf("internal failure: %v", r)}
}
