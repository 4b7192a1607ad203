package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/folio/render"
)

const hclProfileSrc = `
backend       = "typst"
locale        = "de-DE"
currency      = "EUR"
pretty        = true
chunk_size    = 50

variables = {
  company = "ACME GmbH"
  year    = 2024
  rate    = 0.19
  regions = ["north", "south"]
  flags   = { draft = true }
}

page {
  paper          = "a4"
  margin         = { x = "2cm", top = 20 }
  font           = "Inter"
  font_size      = "10pt"
  text_direction = "ltr"
}
`

const yamlProfileSrc = `
backend: html
locale: fr-FR
title: Rapport
full_document: true
report_gaps: true
page:
  width: 210mm
  font_size: 11
variables:
  company: ACME SA
  year: 2024
`

func TestParseHCL(t *testing.T) {
	p, err := Parse([]byte(hclProfileSrc), "report.hcl")
	require.NoError(t, err)

	assert.Equal(t, BackendTypst, p.Backend)
	assert.Equal(t, "de-DE", p.Locale)
	assert.Equal(t, "EUR", p.Currency)
	assert.True(t, p.Pretty)
	assert.Equal(t, 50, p.ChunkSize)

	wantVars := map[string]any{
		"company": "ACME GmbH",
		"year":    2024,
		"rate":    0.19,
		"regions": []any{"north", "south"},
		"flags":   map[string]any{"draft": true},
	}
	if diff := cmp.Diff(wantVars, p.Variables); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "a4", p.Page.Paper)
	assert.Equal(t, map[string]any{"x": "2cm", "top": 20}, p.Page.Margin)
	assert.Equal(t, "10pt", p.Page.FontSize)
	assert.Nil(t, p.Page.Width)
}

func TestParseYAML(t *testing.T) {
	p, err := Parse([]byte(yamlProfileSrc), "report.yaml")
	require.NoError(t, err)

	assert.Equal(t, BackendHTML, p.Backend)
	assert.Equal(t, "fr-FR", p.Locale)
	assert.True(t, p.FullDocument)
	assert.True(t, p.ReportGaps)
	assert.Equal(t, "210mm", p.Page.Width)
	assert.Equal(t, 11, p.Page.FontSize)
	assert.Equal(t, map[string]any{"company": "ACME SA", "year": 2024}, p.Variables)
}

func TestParseDefaults(t *testing.T) {
	for _, name := range []string{"empty.hcl", "empty.yml"} {
		t.Run(name, func(t *testing.T) {
			p, err := Parse(nil, name)
			require.NoError(t, err)
			assert.Equal(t, BackendHTML, p.Backend)
			assert.Nil(t, p.Variables)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		src      string
		target   error
	}{
		{"unknown extension", "report.toml", "", ErrUnsupportedFormat},
		{"unknown backend", "p.hcl", `backend = "pdf"`, ErrInvalidProfile},
		{"negative chunk size", "p.yaml", "chunk_size: -1", ErrInvalidProfile},
		{"negative depth", "p.hcl", "max_depth = -2", ErrInvalidProfile},
		{"bad direction", "p.yaml", "page:\n  text_direction: up", ErrInvalidProfile},
		{"variables not object", "p.hcl", `variables = "x"`, ErrInvalidProfile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), tt.filename)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	_, err := Parse([]byte(`backend = `), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.hcl")

	_, err = Parse([]byte("unknown_key: 1"), "p.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_key")

	_, err = Parse([]byte(`colour = "red"`), "p.hcl")
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(hclProfileSrc), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendTypst, p.Backend)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProfileOptions(t *testing.T) {
	p, err := Parse([]byte(hclProfileSrc), "report.hcl")
	require.NoError(t, err)

	got := p.Options()
	want := render.Options{
		Locale:    "de-DE",
		Currency:  "EUR",
		Direction: "ltr",
		Pretty:    true,
		ChunkSize: 50,
		Page: render.Page{
			Paper:    "a4",
			Margin:   map[string]any{"x": "2cm", "top": 20},
			Font:     "Inter",
			FontSize: "10pt",
		},
	}
	assert.Equal(t, want, got)
}
