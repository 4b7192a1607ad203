package folio

import (
	"maps"

	"go.uber.org/zap"

	"github.com/tsawler/folio/config"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/render"
)

// renderOptions holds the configuration of a Renderer.
type renderOptions struct {
	backend config.Backend

	data      model.Dataset
	record    map[string]any
	variables map[string]any // profile defaults; data.Variables wins

	locale    string
	currency  string
	direction string

	pretty       bool
	fullDocument bool
	title        string
	page         render.Page
	chunkSize    int
	maxDepth     int
	reportGaps   bool

	logger *zap.Logger
}

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		backend: config.BackendHTML,
		locale:  "", // en-US
	}
}

// clone creates a copy of renderOptions. Maps are copied so chained
// Renderers never share mutable state.
func (o renderOptions) clone() renderOptions {
	newOpts := o
	newOpts.record = maps.Clone(o.record)
	newOpts.variables = maps.Clone(o.variables)
	newOpts.data.Variables = maps.Clone(o.data.Variables)
	newOpts.data.Records = append([]map[string]any(nil), o.data.Records...)
	newOpts.data.Groups = append([]model.Group(nil), o.data.Groups...)
	return newOpts
}

// dataset returns the data with profile variables merged underneath.
func (o renderOptions) dataset() model.Dataset {
	ds := o.data
	if len(o.variables) == 0 {
		return ds
	}
	vars := maps.Clone(o.variables)
	maps.Copy(vars, ds.Variables)
	ds.Variables = vars
	return ds
}

// render converts the options for the render packages.
func (o renderOptions) render() render.Options {
	return render.Options{
		Data:         o.dataset(),
		Record:       o.record,
		Locale:       o.locale,
		Currency:     o.currency,
		Direction:    o.direction,
		Pretty:       o.pretty,
		ChunkSize:    o.chunkSize,
		MaxDepth:     o.maxDepth,
		FullDocument: o.fullDocument,
		Title:        o.title,
		Page:         o.page,
		ReportGaps:   o.reportGaps,
		Logger:       o.logger,
	}.WithDefaults()
}
