// Package cantine provides a fluent API for reading the days of a weekly
// canteen menu out of a PDF, a positioned HTML dump of one, or a scan.
//
// Basic usage:
//
//	days, warnings, err := cantine.Open("menu.pdf").Days()
//	if errors.Is(err, cantine.ErrUnparsableLayout) {
//	    // not a menu, or not one laid out the way we know
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", cantine.FormatWarnings(warnings))
//	}
//
// With options:
//
//	days, _, err := cantine.FromBytes(upload).
//	    Now(time.Now()).
//	    Location(paris).
//	    Config(layoutConfig).
//	    Days()
//
// For finer control, the week, layout and render packages are available.
package cantine

import (
	"github.com/tsawler/cantine/week"
)

// ErrUnparsableLayout is returned when no page of a document can be read as
// a menu.
var ErrUnparsableLayout = week.ErrUnparsableLayout

// ErrInvalidConfig is returned when the layout configuration given to
// Extractor.Config does not validate.
var ErrInvalidConfig = week.ErrInvalidConfig

// Open returns an Extractor for the file at filename. The file is read by
// the first terminal operation and kept for the following ones.
//
// Example:
//
//	days, _, err := cantine.Open("menu.pdf").Days()
func Open(filename string) *Extractor {
	return &Extractor{
		src:     fileSource(filename),
		options: defaultOptions(),
	}
}

// FromBytes returns an Extractor for a document already in memory. The
// format is sniffed from the content.
//
// Example:
//
//	days, _, err := cantine.FromBytes(body).Days()
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		src:     bytesSource(data),
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := cantine.Must(cantine.Open("menu.pdf").Pages())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDays is Must for Days: it discards warnings.
//
// Example:
//
//	days := cantine.MustDays(cantine.Open("menu.pdf").Days())
func MustDays[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
