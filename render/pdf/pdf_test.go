package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/render"
)

// buildPDF writes a single page PDF with the given content stream and a
// Helvetica font resource named F1.
func buildPDF(width, height int, stream string) []byte {
	var b strings.Builder
	offsets := make([]int, 6)

	b.WriteString("%PDF-1.4\n")

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	fmt.Fprintf(&b, "3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n", width, height)

	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	return []byte(b.String())
}

func TestRender_Fragments(t *testing.T) {
	stream := strings.Join([]string{
		"BT /F1 12 Tf 1 0 0 1 40 470 Tm (Lundi 11 mars) Tj ET",
		`BT /F1 12 Tf 1 0 0 1 40 425 Tm (Poulet r\364ti) Tj ET`,
		"1 0 0 rg BT /F1 12 Tf 1 0 0 1 45 295 Tm (Label rouge) Tj ET",
	}, "\n")

	pages, err := New().Render(context.Background(), bytes.NewReader(buildPDF(842, 595, stream)))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	page := pages[0]
	if page.Number != 1 || page.Dimensions != (model.Dimensions{Width: 842, Height: 595}) {
		t.Errorf("unexpected page %d with dimensions %+v", page.Number, page.Dimensions)
	}

	want := []model.Fragment{
		{Top: 125, Left: 40, Text: "Lundi 11 mars", Ink: model.InkDefault},
		{Top: 170, Left: 40, Text: "Poulet rôti", Ink: model.InkDefault},
		{Top: 300, Left: 45, Text: "Label rouge", Ink: model.InkRed},
	}
	if len(page.Fragments) != len(want) {
		t.Fatalf("expected %d fragments, got %v", len(want), page.Fragments)
	}
	for i := range want {
		if page.Fragments[i] != want[i] {
			t.Errorf("fragment %d: got %+v, want %+v", i, page.Fragments[i], want[i])
		}
	}
}

func TestRender_InvalidDocument(t *testing.T) {
	_, err := New().Render(context.Background(), strings.NewReader("%PDF-1.4\nnot a pdf at all"))
	if !errors.Is(err, render.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Render(ctx, bytes.NewReader(buildPDF(842, 595, "BT (x) Tj ET")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"ascii", []byte("Compote"), "Compote"},
		{"winansi accents", []byte("P\xe2tes fra\xeeches"), "Pâtes fraîches"},
		{"winansi euro", []byte("3 \x80"), "3 €"},
		{"winansi oe", []byte("\x9cuf"), "œuf"},
		{"utf16", []byte{0xfe, 0xff, 0x00, 'A', 0x00, 0xe9}, "Aé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode("F1", tt.raw); got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
