package model

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Ink is the colour class of a fragment. Only the distinction between red
// annotation ink and everything else matters to layout inference.
type Ink int

const (
	// InkUnknown is used by sources that cannot observe colour (OCR).
	InkUnknown Ink = iota
	InkDefault
	InkRed
	InkOther
)

// String returns a string representation of the ink class
func (i Ink) String() string {
	switch i {
	case InkDefault:
		return "default"
	case InkRed:
		return "red"
	case InkOther:
		return "other"
	default:
		return "unknown"
	}
}

// Fragment is one positioned piece of text emitted by a renderer.
type Fragment struct {
	// Top is the distance in pixels from the top edge of the page
	Top int

	// Left is the distance in pixels from the left edge of the page
	Left int

	// Text is the raw text, possibly with leading or trailing spaces
	Text string

	// Ink is the colour class the text was drawn with
	Ink Ink
}

// Dimensions is the nominal size of a rendered page.
type Dimensions struct {
	Width  int
	Height int
}

// Thresholds used by ClassifyInk. Red annotation ink in the menus is a
// saturated red; dark reds and pinks are treated as ordinary colour.
const (
	redHueMargin     = 20.0
	redMinSaturation = 0.5
	redMinValue      = 0.4
	blackMaxValue    = 0.2
)

// ClassifyInk maps a colour to its ink class. Near-black and grey colours are
// InkDefault, saturated reds are InkRed, anything else is InkOther. A nil
// colour is InkDefault, as text without an explicit colour is drawn in black.
func ClassifyInk(c color.Color) Ink {
	if c == nil {
		return InkDefault
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// fully transparent
		return InkOther
	}
	h, s, v := cf.Hsv()
	switch {
	case v <= blackMaxValue || s < 0.15:
		return InkDefault
	case (h <= redHueMargin || h >= 360-redHueMargin) && s >= redMinSaturation && v >= redMinValue:
		return InkRed
	default:
		return InkOther
	}
}
