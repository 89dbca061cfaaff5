// Package pdf renders menu PDFs into positioned text fragments.
//
// pdfcpu reads and validates the file and hands over the decoded content
// stream of every page; package graphicsstate follows the text state and
// reports each shown string. Fragment coordinates are flipped so that Top
// grows downwards from the top edge of the page, like in an HTML dump.
//
// Strings are decoded as WinAnsi, or UTF-16 when they carry a byte order
// mark. Composite fonts with custom CMaps are not decoded.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/tsawler/cantine/graphicsstate"
	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/render"
)

// Renderer reads PDF documents.
type Renderer struct{}

// New creates a PDF renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, in io.Reader) ([]render.Page, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrInvalidDocument, err)
	}

	dims, err := pctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("%w: page dimensions: %w", render.ErrInvalidDocument, err)
	}

	pages := make([]render.Page, 0, pctx.PageCount)
	for nr := 1; nr <= pctx.PageCount; nr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := render.Page{Number: nr}
		if nr <= len(dims) {
			page.Dimensions = model.Dimensions{
				Width:  int(math.Round(dims[nr-1].Width)),
				Height: int(math.Round(dims[nr-1].Height)),
			}
		}

		spans, err := pageSpans(pctx, nr)
		if err != nil {
			// keep what was read before the error
			render.Logger().Warn("pdf page content", "page", nr, "error", err)
		}
		page.Fragments = fragments(spans, page.Dimensions.Height)
		pages = append(pages, page)
	}

	render.Logger().Debug("pdf rendered", "pages", len(pages))
	return pages, nil
}

func pageSpans(pctx *pdfmodel.Context, nr int) ([]graphicsstate.Span, error) {
	content, err := pdfcpu.ExtractPageContent(pctx, nr)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	return graphicsstate.NewTextExtractor(Decode).ExtractBytes(data)
}

func fragments(spans []graphicsstate.Span, height int) []model.Fragment {
	frags := make([]model.Fragment, 0, len(spans))
	for _, s := range spans {
		frags = append(frags, model.Fragment{
			Top:  int(float64(height) - s.Y),
			Left: int(s.X),
			Text: s.Text,
			Ink:  model.ClassifyInk(s.Fill),
		})
	}
	return frags
}

var utf16BOM = []byte{0xfe, 0xff}

// Decode turns the bytes of a shown string into text. It is the decoder
// handed to graphicsstate.
func Decode(_ string, raw []byte) string {
	if bytes.HasPrefix(raw, utf16BOM) {
		dec := xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil {
			return string(out)
		}
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
