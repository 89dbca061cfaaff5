// Package week turns the positioned fragments of one menu page into the days
// it describes.
//
// Parse runs the layout passes of package layout, then resolves every column
// header into a date and assembles the days:
//
//	days, err := week.Parse(fragments, dims, week.WithNow(func() time.Time { return now }))
//	if errors.Is(err, week.ErrUnparsableLayout) {
//	    // the page is not a menu, or not the menu layout we know
//	}
//
// A page either yields a complete list of days or fails as a whole; there is
// no partial result.
package week

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/cantine/frdate"
	"github.com/tsawler/cantine/layout"
	"github.com/tsawler/cantine/model"
)

// ErrUnparsableLayout is returned when the page cannot be reconstructed: no
// day column survives, or a column header is not a date.
var ErrUnparsableLayout = errors.New("unparsable layout")

// ErrInvalidConfig is returned when the layout configuration given with
// WithConfig does not validate.
var ErrInvalidConfig = errors.New("invalid layout configuration")

type options struct {
	config layout.Config
	now    func() time.Time
	loc    *time.Location
}

// Option configures Parse.
type Option func(*options)

// WithConfig replaces the default layout configuration.
func WithConfig(config layout.Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithNow sets the clock used to infer the year of worded headers.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLocation sets the time zone "now" is read in. It matters around
// midnight on new year's eve only.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

func buildOptions(opts []Option) options {
	o := options{config: layout.DefaultConfig(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loc != nil {
		now, loc := o.now, o.loc
		o.now = func() time.Time { return now().In(loc) }
	}
	return o
}

// Parse reconstructs the days of one page.
func Parse(fragments []model.Fragment, dims model.Dimensions, opts ...Option) ([]model.Day, error) {
	days, _, err := Analyze(fragments, dims, opts...)
	return days, err
}

// Analyze is Parse that also returns the layout analysis, filled up to the
// stage that failed. The analysis is nil when the configuration is invalid.
func Analyze(fragments []model.Fragment, dims model.Dimensions, opts ...Option) ([]model.Day, *layout.AnalysisResult, error) {
	o := buildOptions(opts)
	if err := o.config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	result, err := layout.NewAnalyzerWithConfig(o.config).Analyze(fragments, dims)
	if err != nil {
		return nil, result, fmt.Errorf("%w: %w", ErrUnparsableLayout, err)
	}

	days, err := NewAssembler(frdate.NewResolver(o.now)).Assemble(result.Columns)
	if err != nil {
		return nil, result, err
	}
	return days, result, nil
}

// Assembler maps day columns to days.
type Assembler struct {
	resolver *frdate.Resolver
}

// NewAssembler creates an assembler resolving headers with resolver.
func NewAssembler(resolver *frdate.Resolver) *Assembler {
	return &Assembler{resolver: resolver}
}

// Assemble resolves the header of every column and takes the remaining runs
// as items, keeping column order. A single bad header fails the whole page,
// as it means the columns themselves were reconstructed wrongly.
func (a *Assembler) Assemble(columns []layout.Column) ([]model.Day, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrUnparsableLayout)
	}

	days := make([]model.Day, 0, len(columns))
	for i, col := range columns {
		header, ok := col.Header()
		if !ok || len(col.Runs) < 2 {
			return nil, fmt.Errorf("%w: column %d has no items", ErrUnparsableLayout, i)
		}

		date, err := a.resolver.Resolve(header.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", ErrUnparsableLayout, i, err)
		}

		items := make([]string, 0, len(col.Runs)-1)
		for _, run := range col.Runs[1:] {
			items = append(items, strings.TrimSpace(run.Text))
		}
		days = append(days, model.Day{Date: date, Items: items})
	}
	return days, nil
}
