package layout

import (
	"fmt"

	"github.com/tsawler/cantine/model"
)

// Band is a half-open vertical pixel range [Min, Max).
type Band struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Contains reports whether y lies inside the band.
func (b Band) Contains(y int) bool {
	return y >= b.Min && y < b.Max
}

// PageProfile lists the category label bands of one known page geometry.
type PageProfile struct {
	// Name identifies the profile in logs and configuration files
	Name string `yaml:"name" json:"name"`

	// Width and Height must match the rendered page exactly
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// CategoryBands hold the "Entrées", "Plats", "Desserts"... captions
	CategoryBands []Band `yaml:"category_bands" json:"category_bands"`
}

// Matches reports whether the profile applies to a page of the given size.
func (p PageProfile) Matches(dims model.Dimensions) bool {
	return p.Width == dims.Width && p.Height == dims.Height
}

// Config holds configuration for menu layout inference
type Config struct {
	// ContentBand is the vertical range holding menu rows; everything above
	// (title, week banner) and below (footer, legend) is dropped.
	// Default: [120, 525)
	ContentBand Band

	// Profiles are the known page geometries. The first one is the fallback
	// for pages whose size matches no profile.
	Profiles []PageProfile

	// MergeDrift is the maximum horizontal distance between the estimated end
	// of a run and the next fragment on the same row for them to be merged.
	// Default: 12 pixels
	MergeDrift int

	// CharWidth is the estimated width of one character, used in place of
	// real glyph metrics to compute run ends.
	// Default: 4 pixels
	CharWidth int

	// ColumnTolerance is the maximum distance between the centres of two runs
	// for them to belong to the same column.
	// Default: 30 pixels
	ColumnTolerance int

	// LineTolerance is the maximum vertical distance between a run and the
	// previous run of its column for it to be treated as a wrapped line.
	// Default: 15 pixels
	LineTolerance int

	// RowRepeatMargin and RowRepeatMin define how often a text must repeat in
	// a row for the row to be a structural label: at least
	// max(rowSize-RowRepeatMargin, RowRepeatMin) times.
	// Defaults: 1 and 2
	RowRepeatMargin int
	RowRepeatMin    int

	// MinColumnRuns is the minimum number of runs (header included) a column
	// needs to be kept.
	// Default: 2
	MinColumnRuns int

	// FrequentItemColumns is the column count from which items found in all
	// columns but one are removed, such as the bread served every day. Zero
	// disables the pass.
	// Default: 4
	FrequentItemColumns int
}

// DefaultProfiles returns the page geometries the menu has been published in.
// Landscape A4 comes first and is therefore the fallback.
func DefaultProfiles() []PageProfile {
	return []PageProfile{
		{
			Name:   "a4-landscape",
			Width:  842,
			Height: 595,
			CategoryBands: []Band{
				{Min: 150, Max: 160},
				{Min: 232, Max: 242},
				{Min: 318, Max: 328},
				{Min: 398, Max: 408},
				{Min: 452, Max: 462},
			},
		},
		{
			Name:   "letter-landscape",
			Width:  792,
			Height: 612,
			CategoryBands: []Band{
				{Min: 156, Max: 166},
				{Min: 240, Max: 250},
				{Min: 328, Max: 338},
				{Min: 410, Max: 420},
				{Min: 466, Max: 476},
			},
		},
	}
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		ContentBand:     Band{Min: 120, Max: 525},
		Profiles:        DefaultProfiles(),
		MergeDrift:      12,
		CharWidth:       4,
		ColumnTolerance: 30,
		LineTolerance:   15,
		RowRepeatMargin: 1,
		RowRepeatMin:    2,
		MinColumnRuns:   2,

		FrequentItemColumns: 4,
	}
}

// Profile returns the profile matching dims, or the first registered profile
// when none matches. The boolean reports whether the match was exact.
func (c Config) Profile(dims model.Dimensions) (PageProfile, bool) {
	for _, p := range c.Profiles {
		if p.Matches(dims) {
			return p, true
		}
	}
	if len(c.Profiles) == 0 {
		return PageProfile{Name: "none"}, false
	}
	return c.Profiles[0], false
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.ContentBand.Max <= c.ContentBand.Min {
		return fmt.Errorf("content band [%d, %d) is empty", c.ContentBand.Min, c.ContentBand.Max)
	}
	if c.CharWidth <= 0 {
		return fmt.Errorf("char width must be positive, got %d", c.CharWidth)
	}
	if c.MergeDrift < 0 || c.ColumnTolerance < 0 || c.LineTolerance < 0 {
		return fmt.Errorf("tolerances must not be negative")
	}
	if c.RowRepeatMin < 1 {
		return fmt.Errorf("row repeat minimum must be at least 1, got %d", c.RowRepeatMin)
	}
	if c.RowRepeatMargin < 0 {
		return fmt.Errorf("row repeat margin must not be negative, got %d", c.RowRepeatMargin)
	}
	if c.FrequentItemColumns != 0 && c.FrequentItemColumns < 3 {
		return fmt.Errorf("frequent item columns must be 0 or at least 3, got %d", c.FrequentItemColumns)
	}
	if c.MinColumnRuns < 1 {
		return fmt.Errorf("min column runs must be at least 1, got %d", c.MinColumnRuns)
	}
	for _, p := range c.Profiles {
		for _, b := range p.CategoryBands {
			if b.Max <= b.Min {
				return fmt.Errorf("profile %q: band [%d, %d) is empty", p.Name, b.Min, b.Max)
			}
		}
	}
	return nil
}
