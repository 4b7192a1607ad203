// Package config loads render profiles: the backend, locale, page setup
// and report variables for a run, kept in an HCL or YAML file next to the
// report definition.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/render"
)

// Backend names an output emitter.
type Backend string

const (
	BackendHTML    Backend = "html"
	BackendTypst   Backend = "typst"
	BackendJSON    Backend = "json"
	BackendRecords Backend = "records"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither HCL nor
	// YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported profile format")

	// ErrInvalidProfile wraps every validation failure of a decoded
	// profile.
	ErrInvalidProfile = errors.New("config: invalid profile")
)

// Page is the page setup of a profile.
type Page struct {
	Paper         string `yaml:"paper"`
	Width         any    `yaml:"width"`
	Height        any    `yaml:"height"`
	Margin        any    `yaml:"margin"`
	Font          string `yaml:"font"`
	FontSize      any    `yaml:"font_size"`
	TextDirection string `yaml:"text_direction"`
}

// Profile is a decoded render profile.
type Profile struct {
	Backend      Backend        `yaml:"backend"`
	Locale       string         `yaml:"locale"`
	Currency     string         `yaml:"currency"`
	Title        string         `yaml:"title"`
	FullDocument bool           `yaml:"full_document"`
	Pretty       bool           `yaml:"pretty"`
	ChunkSize    int            `yaml:"chunk_size"`
	MaxDepth     int            `yaml:"max_depth"`
	ReportGaps   bool           `yaml:"report_gaps"`
	Page         Page           `yaml:"page"`
	Variables    map[string]any `yaml:"variables"`
}

// Load reads a profile, choosing the decoder by file extension.
func Load(path string) (*Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading profile: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes src; filename selects the format and labels diagnostics.
func Parse(src []byte, filename string) (*Profile, error) {
	var (
		p   *Profile
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		p, err = parseHCL(src, filename)
	case ".yaml", ".yml":
		p, err = parseYAML(src)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field values and fills the default backend.
func (p *Profile) Validate() error {
	switch p.Backend {
	case "":
		p.Backend = BackendHTML
	case BackendHTML, BackendTypst, BackendJSON, BackendRecords:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidProfile, p.Backend)
	}
	if p.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size must not be negative", ErrInvalidProfile)
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative", ErrInvalidProfile)
	}
	switch p.Page.TextDirection {
	case "", "ltr", "rtl":
	default:
		return fmt.Errorf("%w: text_direction must be ltr or rtl, got %q", ErrInvalidProfile, p.Page.TextDirection)
	}
	return nil
}

// Options returns the render options the profile describes. Variables are
// not included; callers merge them into the dataset.
func (p *Profile) Options() render.Options {
	return render.Options{
		Locale:       p.Locale,
		Currency:     p.Currency,
		Direction:    p.Page.TextDirection,
		Pretty:       p.Pretty,
		ChunkSize:    p.ChunkSize,
		MaxDepth:     p.MaxDepth,
		FullDocument: p.FullDocument,
		Title:        p.Title,
		ReportGaps:   p.ReportGaps,
		Page: render.Page{
			Paper:    p.Page.Paper,
			Width:    p.Page.Width,
			Height:   p.Page.Height,
			Margin:   p.Page.Margin,
			Font:     p.Page.Font,
			FontSize: p.Page.FontSize,
		},
	}
}
