package property

import (
	"errors"

	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/validation"
)

// TextStyle is the normalized form of model.Style. Zero fields are unset.
type TextStyle struct {
	Size       *Length
	Weight     FontWeight
	Style      FontStyle
	Color      *Color
	Background *Color
	Family     string
	Align      HAlign
}

// IsZero reports whether no attribute is set.
func (s TextStyle) IsZero() bool {
	return s.Size == nil && s.Weight == 0 && s.Style == "" && s.Color == nil &&
		s.Background == nil && s.Family == "" && s.Align == HUnset
}

// ResolveStyle normalizes a text style. Invalid colors degrade to a warning
// and are dropped; other invalid attributes are errors.
func ResolveStyle(s model.Style, node string) (TextStyle, []validation.Warning, error) {
	var (
		out      TextStyle
		warnings []validation.Warning
	)
	if s.FontSize != nil {
		l, err := ParseLength(s.FontSize)
		if err != nil {
			return TextStyle{}, nil, styleError(err, node, "font_size", s.FontSize)
		}
		out.Size = &l
	}
	if s.FontWeight != nil {
		w, err := ParseFontWeight(s.FontWeight)
		if err != nil {
			return TextStyle{}, nil, &validation.Error{
				Code: validation.CodeInvalidProperty, Node: node, Property: "font_weight",
				Value: s.FontWeight, Message: err.Error(),
				Allowed: []string{"thin", "extralight", "light", "regular", "medium", "semibold", "bold", "extrabold", "black", "100..900"},
			}
		}
		out.Weight = w
	}
	if s.FontStyle != nil {
		fs, err := ParseFontStyle(s.FontStyle)
		if err != nil {
			return TextStyle{}, nil, &validation.Error{
				Code: validation.CodeInvalidProperty, Node: node, Property: "font_style",
				Value: s.FontStyle, Message: err.Error(),
				Allowed: []string{"normal", "italic", "oblique"},
			}
		}
		out.Style = fs
	}
	if s.FontFamily != nil {
		fam, ok := s.FontFamily.(string)
		if !ok || fam == "" {
			return TextStyle{}, nil, &validation.Error{
				Code: validation.CodeInvalidProperty, Node: node, Property: "font_family",
				Value: s.FontFamily, Message: "font family must be a non-empty string",
			}
		}
		out.Family = fam
	}
	if s.TextAlign != nil {
		a, err := ParseAlignment(s.TextAlign)
		if err != nil || a.V != VUnset {
			return TextStyle{}, nil, &validation.Error{
				Code: validation.CodeInvalidProperty, Node: node, Property: "text_align",
				Value: s.TextAlign, Message: "text alignment is horizontal only",
				Allowed: []string{"left", "start", "center", "right", "end", "justify"},
			}
		}
		out.Align = a.H
	}
	for _, c := range []struct {
		key string
		v   any
		dst **Color
	}{
		{"color", s.Color, &out.Color},
		{"background_color", s.BackgroundColor, &out.Background},
	} {
		if c.v == nil {
			continue
		}
		col, err := ParseColor(c.v)
		if err != nil {
			warnings = append(warnings, colorWarning(err, node, c.key, c.v, "the inherited color"))
			continue
		}
		*c.dst = &col
	}
	return out, warnings, nil
}

func styleError(err error, node, key string, v any) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return &validation.Error{
			Code: validation.CodeInvalidProperty, Node: node, Property: key,
			Value: v, Message: ve.Message, Allowed: ve.Allowed, Err: err,
		}
	}
	return err
}

// colorWarning downgrades an invalid color to a warning naming the value
// used in its place.
func colorWarning(err error, node, key string, v any, fallback string) validation.Warning {
	msg := "invalid color"
	var ve *validation.Error
	if errors.As(err, &ve) {
		msg = ve.Message
	}
	return validation.Warning{
		Code:     validation.CodeInvalidColor,
		Node:     node,
		Property: key,
		Value:    v,
		Message:  msg + "; using " + fallback,
	}
}
