package config

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclProfile is the HCL file shape. Attributes that accept several types
// are decoded as cty values and converted afterwards.
type hclProfile struct {
	Backend      string    `hcl:"backend,optional"`
	Locale       string    `hcl:"locale,optional"`
	Currency     string    `hcl:"currency,optional"`
	Title        string    `hcl:"title,optional"`
	FullDocument bool      `hcl:"full_document,optional"`
	Pretty       bool      `hcl:"pretty,optional"`
	ChunkSize    int       `hcl:"chunk_size,optional"`
	MaxDepth     int       `hcl:"max_depth,optional"`
	ReportGaps   bool      `hcl:"report_gaps,optional"`
	Page         *hclPage  `hcl:"page,block"`
	Variables    cty.Value `hcl:"variables,optional"`
}

type hclPage struct {
	Paper         string    `hcl:"paper,optional"`
	Width         cty.Value `hcl:"width,optional"`
	Height        cty.Value `hcl:"height,optional"`
	Margin        cty.Value `hcl:"margin,optional"`
	Font          string    `hcl:"font,optional"`
	FontSize      cty.Value `hcl:"font_size,optional"`
	TextDirection string    `hcl:"text_direction,optional"`
}

func parseHCL(src []byte, filename string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse HCL file %s: %w", filename, diags)
	}

	var raw hclProfile
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode HCL file %s: %w", filename, diags)
	}

	p := &Profile{
		Backend:      Backend(raw.Backend),
		Locale:       raw.Locale,
		Currency:     raw.Currency,
		Title:        raw.Title,
		FullDocument: raw.FullDocument,
		Pretty:       raw.Pretty,
		ChunkSize:    raw.ChunkSize,
		MaxDepth:     raw.MaxDepth,
		ReportGaps:   raw.ReportGaps,
	}

	vars, err := ctyToGo(raw.Variables)
	if err != nil {
		return nil, fmt.Errorf("%w: variables: %v", ErrInvalidProfile, err)
	}
	if vars != nil {
		m, ok := vars.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: variables must be an object", ErrInvalidProfile)
		}
		p.Variables = m
	}

	if pg := raw.Page; pg != nil {
		p.Page = Page{Paper: pg.Paper, Font: pg.Font, TextDirection: pg.TextDirection}
		for _, f := range []struct {
			name string
			src  cty.Value
			dst  *any
		}{
			{"width", pg.Width, &p.Page.Width},
			{"height", pg.Height, &p.Page.Height},
			{"margin", pg.Margin, &p.Page.Margin},
			{"font_size", pg.FontSize, &p.Page.FontSize},
		} {
			v, err := ctyToGo(f.src)
			if err != nil {
				return nil, fmt.Errorf("%w: page.%s: %v", ErrInvalidProfile, f.name, err)
			}
			*f.dst = v
		}
	}
	return p, nil
}

// ctyToGo converts a cty value to plain Go values. Whole numbers become
// int so they format without a fraction.
func ctyToGo(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			gv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = gv
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			gv, err := ctyToGo(v)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
}
