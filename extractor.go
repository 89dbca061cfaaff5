package cantine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tsawler/cantine/format"
	"github.com/tsawler/cantine/layout"
	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/ocr"
	"github.com/tsawler/cantine/render"
	"github.com/tsawler/cantine/render/htmldump"
	"github.com/tsawler/cantine/render/pdf"
	"github.com/tsawler/cantine/week"
)

// ErrUnsupportedFormat is returned for documents that are neither a PDF, an
// HTML dump nor an image. It is always wrapped with render.ErrInvalidDocument.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor provides a fluent interface for reading menus. Each
// configuration method returns a new Extractor, making it safe for
// concurrent use and allowing method chaining.
type Extractor struct {
	// Source, shared with every copy
	src *source

	// Configuration
	options extractOptions
}

// source is the document behind an Extractor. A file is read once, on first
// use, and its bytes serve every copy of the Extractor.
type source struct {
	filename string

	once sync.Once
	data []byte
	err  error
}

func fileSource(filename string) *source {
	return &source{filename: filename}
}

func bytesSource(data []byte) *source {
	s := &source{data: data}
	s.once.Do(func() {})
	return s
}

func (s *source) load() ([]byte, error) {
	s.once.Do(func() {
		if s.filename == "" {
			s.err = fmt.Errorf("no filename specified")
			return
		}
		s.data, s.err = os.ReadFile(s.filename)
		if s.err != nil {
			s.err = fmt.Errorf("failed to open menu: %w", s.err)
		}
	})
	return s.data, s.err
}

// clone creates a copy of the Extractor sharing its source, with a deep copy
// of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		src:     e.src,
		options: e.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Now fixes the current time used to infer the year of worded headers such
// as "Lundi 11 mars".
//
// Example:
//
//	days, _, err := cantine.Open("menu.pdf").Now(published).Days()
func (e *Extractor) Now(t time.Time) *Extractor {
	n := e.clone()
	n.options.now = func() time.Time { return t }
	return n
}

// Clock sets the function returning the current time.
func (e *Extractor) Clock(now func() time.Time) *Extractor {
	n := e.clone()
	n.options.now = now
	return n
}

// Location sets the time zone the current time is read in.
func (e *Extractor) Location(loc *time.Location) *Extractor {
	n := e.clone()
	n.options.loc = loc
	return n
}

// Config replaces the default layout configuration.
//
// Example:
//
//	cfg := layout.DefaultConfig()
//	cfg.MergeDrift = 30
//	days, _, err := cantine.Open("menu.pdf").Config(cfg).Days()
func (e *Extractor) Config(cfg layout.Config) *Extractor {
	n := e.clone()
	n.options.config = &cfg
	return n
}

// Context sets the context rendering runs under.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	n := e.clone()
	n.options.ctx = ctx
	return n
}

// Format forces the document format instead of sniffing it.
func (e *Extractor) Format(f format.Format) *Extractor {
	n := e.clone()
	n.options.format = f
	return n
}

// Renderer replaces the renderer chosen from the document format.
func (e *Extractor) Renderer(r render.Renderer) *Extractor {
	n := e.clone()
	n.options.renderer = r
	return n
}

// OCR passes options to the OCR renderer used for images.
//
// Example:
//
//	days, _, err := cantine.Open("scan.png").OCR(ocr.WithLanguage("fra+eng")).Days()
func (e *Extractor) OCR(opts ...ocr.Option) *Extractor {
	n := e.clone()
	n.options.ocr = append(n.options.ocr, opts...)
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// DetectedFormat returns the format the document will be read as.
func (e *Extractor) DetectedFormat() (format.Format, error) {
	data, err := e.load()
	if err != nil {
		return format.Unknown, err
	}
	return e.detect(data), nil
}

// Pages renders the document into pages of fragments.
func (e *Extractor) Pages() ([]render.Page, error) {
	data, err := e.load()
	if err != nil {
		return nil, err
	}

	renderer, err := e.renderer(e.detect(data))
	if err != nil {
		return nil, err
	}

	pages, err := renderer.Render(e.options.ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// Days reads the days of every page. A page that cannot be parsed is
// reported as a warning as long as another page yields days; when none
// does, the error of the first page is returned.
//
// Example:
//
//	days, warnings, err := cantine.Open("menu.pdf").Days()
func (e *Extractor) Days() ([]model.Day, []Warning, error) {
	analyses, err := e.Analyze()
	if err != nil {
		return nil, nil, err
	}

	var (
		days     []model.Day
		warnings []Warning
	)
	for _, a := range analyses {
		if a.Err != nil {
			warnings = append(warnings, Warning{Page: a.Page.Number, Err: a.Err})
			continue
		}
		days = append(days, a.Days...)
	}

	if len(days) == 0 {
		if len(warnings) > 0 {
			return nil, nil, fmt.Errorf("page %d: %w", warnings[0].Page, warnings[0].Err)
		}
		return nil, nil, fmt.Errorf("%w: document has no pages", ErrUnparsableLayout)
	}
	return days, warnings, nil
}

// Analyze renders the document and parses every page, keeping the layout
// analysis of each. Page failures are recorded per page, not returned.
func (e *Extractor) Analyze() ([]PageAnalysis, error) {
	if e.options.config != nil {
		if err := e.options.config.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", week.ErrInvalidConfig, err)
		}
	}

	pages, err := e.Pages()
	if err != nil {
		return nil, err
	}

	opts := e.weekOptions()
	analyses := make([]PageAnalysis, len(pages))
	for i, page := range pages {
		days, result, err := week.Analyze(page.Fragments, page.Dimensions, opts...)
		analyses[i] = PageAnalysis{Page: page, Days: days, Result: result, Err: err}
	}
	return analyses, nil
}

// load returns the document bytes, reading the file on first use.
func (e *Extractor) load() ([]byte, error) {
	return e.src.load()
}

// detect sniffs the content first, then falls back on the file extension.
func (e *Extractor) detect(data []byte) format.Format {
	if e.options.format != format.Unknown {
		return e.options.format
	}
	if f := format.DetectFromMagic(data); f != format.Unknown {
		return f
	}
	return format.Detect(e.src.filename)
}

func (e *Extractor) renderer(f format.Format) (render.Renderer, error) {
	if e.options.renderer != nil {
		return e.options.renderer, nil
	}
	return RendererFor(f, e.options.ocr...)
}

func (e *Extractor) weekOptions() []week.Option {
	opts := []week.Option{week.WithNow(e.options.now)}
	if e.options.loc != nil {
		opts = append(opts, week.WithLocation(e.options.loc))
	}
	if e.options.config != nil {
		opts = append(opts, week.WithConfig(*e.options.config))
	}
	return opts
}

// RendererFor returns the renderer reading documents of format f.
func RendererFor(f format.Format, ocrOpts ...ocr.Option) (render.Renderer, error) {
	switch f {
	case format.PDF:
		return pdf.New(), nil
	case format.HTML:
		return htmldump.New(), nil
	case format.Image:
		return ocr.New(ocrOpts...), nil
	default:
		return nil, fmt.Errorf("%w: %w", render.ErrInvalidDocument, ErrUnsupportedFormat)
	}
}
