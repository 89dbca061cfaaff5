// Package render defines the fragment sources that feed layout inference.
//
// A Renderer turns one document into pages of positioned text fragments.
// Three implementations exist:
//   - render/htmldump reads positioned HTML dumps of a PDF
//   - render/pdf reads PDF content streams directly
//   - ocr reads word boxes recognized in a scanned page
//
// Renderers log through a package-level logger that discards everything
// until SetLogger is called.
package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/tsawler/cantine/model"
)

// ErrInvalidDocument is returned when a document cannot be read at all, as
// opposed to a document that reads fine but holds no menu.
var ErrInvalidDocument = errors.New("invalid document")

// Page is one rendered page.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Dimensions is the nominal page size; zero when the source does not
	// tell, in which case the default page profile applies.
	Dimensions model.Dimensions

	// Fragments in source order.
	Fragments []model.Fragment
}

// Renderer reads a document into pages.
type Renderer interface {
	Render(ctx context.Context, r io.Reader) ([]Page, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, r io.Reader) ([]Page, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, r io.Reader) ([]Page, error) {
	return f(ctx, r)
}

var logger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used by all renderers. Nil restores the discard
// logger. SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the renderer logger.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.DiscardHandler)
		logger.Store(l)
	}
	return l
}
