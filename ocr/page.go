// Package ocr reads scanned or photographed menus through Tesseract.
//
// Recognized words are scaled from image pixels to a nominal page size, so
// that the page profiles used for PDF renderings also apply to scans.
//
// Recognition needs Tesseract and is only compiled in with the "ocr" build
// tag:
//
//	go build -tags ocr ./...
//
// Without it, Render returns ErrOCRNotEnabled.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sort"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/render"
)

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the Tesseract language menus are recognized in.
const DefaultLanguage = "fra"

// DefaultPageSize is the nominal size scans are scaled to, an A4 landscape
// page in points.
var DefaultPageSize = model.Dimensions{Width: 842, Height: 595}

// Word is one recognized word and its box in image pixels.
type Word struct {
	Box  image.Rectangle
	Text string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLanguage sets the Tesseract language, such as "fra+eng".
func WithLanguage(lang string) Option {
	return func(r *Renderer) {
		r.language = lang
	}
}

// WithPageSize sets the nominal page size words are scaled to.
func WithPageSize(dims model.Dimensions) Option {
	return func(r *Renderer) {
		r.pageSize = dims
	}
}

// Renderer renders images through OCR.
type Renderer struct {
	language string
	pageSize model.Dimensions
	// recognize is swapped in tests
	recognize func(ctx context.Context, img []byte, lang string) ([]Word, error)
}

// New creates an OCR renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		language:  DefaultLanguage,
		pageSize:  DefaultPageSize,
		recognize: recognize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render implements render.Renderer. An image is always a single page.
func (r *Renderer) Render(ctx context.Context, in io.Reader) ([]render.Page, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrInvalidDocument, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: empty image", render.ErrInvalidDocument)
	}

	words, err := r.recognize(ctx, data, r.language)
	if err != nil {
		return nil, err
	}
	render.Logger().Debug("ocr recognized", "words", len(words), "width", cfg.Width, "height", cfg.Height)

	return []render.Page{{
		Number:     1,
		Dimensions: r.pageSize,
		Fragments:  Fragments(words, image.Pt(cfg.Width, cfg.Height), r.pageSize),
	}}, nil
}

// Fragments scales words from an image of the given size to a page of
// nominal size dims. Words sharing a text line get the same Top, the
// smallest of the line, so that they merge into runs. Each word keeps a
// trailing space to separate it from the next one once merged.
func Fragments(words []Word, size image.Point, dims model.Dimensions) []model.Fragment {
	if size.X <= 0 || size.Y <= 0 || len(words) == 0 {
		return nil
	}

	sorted := make([]Word, 0, len(words))
	for _, w := range words {
		if w.Text != "" && !w.Box.Empty() {
			sorted = append(sorted, w)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Min.Y < sorted[j].Box.Min.Y
	})

	tops := lineTops(sorted)
	frags := make([]model.Fragment, len(sorted))
	for i, w := range sorted {
		frags[i] = model.Fragment{
			Top:  tops[i] * dims.Height / size.Y,
			Left: w.Box.Min.X * dims.Width / size.X,
			Text: w.Text + " ",
			Ink:  model.InkUnknown,
		}
	}
	return frags
}

// lineTops assigns each word, sorted by top, the top of the line it belongs
// to. A word joins the current line when its vertical center lies within the
// line's first word box.
func lineTops(words []Word) []int {
	tops := make([]int, len(words))
	var line image.Rectangle
	for i, w := range words {
		center := (w.Box.Min.Y + w.Box.Max.Y) / 2
		if i == 0 || center < line.Min.Y || center >= line.Max.Y {
			line = w.Box
		}
		tops[i] = line.Min.Y
	}
	return tops
}
