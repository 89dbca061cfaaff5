package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultsToDiscard(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected the default logger to discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("rendered", "pages", 2)
	if !strings.Contains(buf.String(), "pages=2") {
		t.Errorf("expected the message in the configured logger, got %q", buf.String())
	}
}

func TestRendererFunc(t *testing.T) {
	var r Renderer = RendererFunc(func(_ context.Context, in io.Reader) ([]Page, error) {
		b, _ := io.ReadAll(in)
		return []Page{{Number: len(b)}}, nil
	})

	pages, err := r.Render(context.Background(), strings.NewReader("abc"))
	if err != nil || len(pages) != 1 || pages[0].Number != 3 {
		t.Errorf("unexpected result %v, %v", pages, err)
	}
}
