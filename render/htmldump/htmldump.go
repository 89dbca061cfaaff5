// Package htmldump reads positioned HTML dumps of PDF pages.
//
// A dump has one absolutely positioned element per text run:
//
//	<div style='position: absolute; top: 125px; left: 40.5px'>Lundi 11 mars</div>
//	<div style='top: 300px; left: 45px; color: red'>Label rouge</div>
//
// An element whose style carries a width and a height but no position opens
// a new page of that size. Positions are truncated to whole pixels.
package htmldump

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"golang.org/x/net/html"

	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/render"
)

// Renderer reads HTML dumps.
type Renderer struct{}

// New creates an HTML dump renderer.
func New() *Renderer {
	return &Renderer{}
}

// style holds the declarations of a style attribute that matter here.
type style struct {
	top, left     int
	hasTop        bool
	hasLeft       bool
	width, height int
	hasSize       bool
	color         color.Color
	hasColor      bool
}

var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true, "wbr": true,
}

// Render implements render.Renderer.
func (Renderer) Render(ctx context.Context, r io.Reader) ([]render.Page, error) {
	var (
		pages   []render.Page
		current *render.Page
		text    strings.Builder
		open    *style
		depth   int
	)

	newPage := func(dims model.Dimensions) {
		pages = append(pages, render.Page{Number: len(pages) + 1, Dimensions: dims})
		current = &pages[len(pages)-1]
	}

	z := html.NewTokenizer(r)
	for n := 0; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: %w", render.ErrInvalidDocument, err)
			}
			render.Logger().Debug("html dump rendered", "pages", len(pages))
			return pages, nil

		case html.TextToken:
			if open != nil {
				text.Write(z.Text())
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if open != nil {
				if tt == html.StartTagToken && !voidElements[string(name)] {
					depth++
				}
				continue
			}
			if !hasAttr {
				continue
			}
			st, ok := styleOf(z)
			if !ok {
				continue
			}

			switch {
			case st.hasTop && st.hasLeft:
				if tt == html.SelfClosingTagToken || voidElements[string(name)] {
					continue
				}
				open, depth = &st, 1
				text.Reset()
			case st.hasSize:
				newPage(model.Dimensions{Width: st.width, Height: st.height})
			}

		case html.EndTagToken:
			if open == nil {
				continue
			}
			if depth--; depth > 0 {
				continue
			}
			if current == nil {
				newPage(model.Dimensions{})
			}
			if frag, ok := fragmentOf(*open, text.String()); ok {
				current.Fragments = append(current.Fragments, frag)
			}
			open = nil
		}
	}
}

func fragmentOf(st style, raw string) (model.Fragment, bool) {
	txt := strings.ReplaceAll(raw, "\u00a0", " ")
	if txt == "" {
		return model.Fragment{}, false
	}
	ink := model.ClassifyInk(nil)
	if st.hasColor {
		ink = model.ClassifyInk(st.color)
	}
	return model.Fragment{Top: st.top, Left: st.left, Text: txt, Ink: ink}, true
}

// styleOf reads the style attribute of the current tag.
func styleOf(z *html.Tokenizer) (style, bool) {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "style" {
			return parseStyle(string(val)), true
		}
		if !more {
			return style{}, false
		}
	}
}

func parseStyle(s string) style {
	var st style
	var hasWidth, hasHeight bool
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)

		switch prop {
		case "top":
			st.top, st.hasTop = parseLength(val)
		case "left":
			st.left, st.hasLeft = parseLength(val)
		case "width":
			st.width, hasWidth = parseLength(val)
		case "height":
			st.height, hasHeight = parseLength(val)
		case "color":
			c, ok := parseColor(val)
			st.hasColor = true
			if ok {
				st.color = c
			} else {
				st.color = color.Transparent
			}
		}
	}
	st.hasSize = hasWidth && hasHeight
	return st
}

// parseLength reads "123px" or "123.75px" as 123.
func parseLength(v string) (int, bool) {
	v = strings.TrimSuffix(strings.ToLower(v), "px")
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// parseColor understands CSS colour names, #rgb, #rrggbb and rgb(r, g, b).
func parseColor(v string) (color.Color, bool) {
	v = strings.ToLower(strings.TrimSpace(v))

	switch {
	case strings.HasPrefix(v, "#"):
		if len(v) == 4 {
			v = string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return nil, false
		}
		return c, true

	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		parts := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(parts) != 3 {
			return nil, false
		}
		var rgb [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return nil, false
			}
			rgb[i] = uint8(n)
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, true
	}

	c, ok := colornames.Map[v]
	return c, ok
}
