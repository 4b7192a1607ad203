package property

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/validation"
)

// Direction is the flow axis of a stack.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
	TTB Direction = "ttb"
	BTT Direction = "btt"
)

// FlexDirection returns the equivalent CSS flex-direction.
func (d Direction) FlexDirection() string {
	switch d {
	case RTL:
		return "row-reverse"
	case TTB:
		return "column"
	case BTT:
		return "column-reverse"
	default:
		return "row"
	}
}

// Vertical reports whether children stack along the block axis.
func (d Direction) Vertical() bool { return d == TTB || d == BTT }

// ParseDirection accepts ltr, rtl, ttb and btt.
func ParseDirection(v any) (Direction, error) {
	s, _ := v.(string)
	switch d := Direction(strings.ToLower(s)); d {
	case LTR, RTL, TTB, BTT:
		return d, nil
	}
	return "", &validation.Error{
		Code:    validation.CodeInvalidProperty,
		Message: fmt.Sprintf("unknown direction %v", v),
		Value:   v,
		Allowed: []string{"ltr", "rtl", "ttb", "btt"},
	}
}
