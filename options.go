package cantine

import (
	"context"
	"time"

	"github.com/tsawler/cantine/format"
	"github.com/tsawler/cantine/layout"
	"github.com/tsawler/cantine/ocr"
	"github.com/tsawler/cantine/render"
)

// extractOptions holds configuration for menu extraction.
type extractOptions struct {
	ctx context.Context

	// Year inference
	now func() time.Time
	loc *time.Location

	// Layout inference
	config *layout.Config

	// Rendering
	format   format.Format
	renderer render.Renderer
	ocr      []ocr.Option
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		ctx: context.Background(),
		now: time.Now,
	}
}

// clone creates a deep copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	n := o
	if o.config != nil {
		cfg := *o.config
		cfg.Profiles = append([]layout.PageProfile(nil), o.config.Profiles...)
		n.config = &cfg
	}
	n.ocr = append([]ocr.Option(nil), o.ocr...)
	return n
}
