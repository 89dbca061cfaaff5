package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/cantine/model"
)

// Run is one or more fragments of a row merged into a word or phrase.
type Run struct {
	// Top is the row the run starts on
	Top int

	// Start is the left edge of the first fragment
	Start int

	// End is the estimated right edge. Glyph widths are unknown, so it is
	// derived from the character count of the last merged fragment.
	End int

	// Text is the merged text
	Text string

	// Bottom is the row of the last line joined into the run; it equals Top
	// unless the run spans wrapped lines.
	Bottom int
}

// Center returns the horizontal centre of the run
func (r Run) Center() int {
	return r.Start + (r.End-r.Start)/2
}

// Key returns the case-insensitive identity of the run's text
func (r Run) Key() string {
	return strings.ToLower(r.Text)
}

func (r *Run) trim() {
	r.Text = strings.TrimSpace(r.Text)
}

// WordMerger merges fragments that sit next to each other on the same row.
type WordMerger struct {
	config Config
}

// NewWordMerger creates a word merger with default configuration
func NewWordMerger() *WordMerger {
	return &WordMerger{config: DefaultConfig()}
}

// NewWordMergerWithConfig creates a word merger with custom configuration
func NewWordMergerWithConfig(config Config) *WordMerger {
	return &WordMerger{config: config}
}

// Merge walks fragments sorted by (top, left), as returned by
// FragmentFilter.Filter, and returns one run per merged word or phrase.
func (m *WordMerger) Merge(fragments []model.Fragment) []Run {
	var runs []Run

	for _, frag := range fragments {
		if n := len(runs); n > 0 && m.adjacent(runs[n-1], frag) {
			m.absorb(&runs[n-1], frag)
			continue
		}
		if n := len(runs); n > 0 {
			runs[n-1].trim()
		}
		runs = append(runs, m.newRun(frag))
	}
	if n := len(runs); n > 0 {
		runs[n-1].trim()
	}

	// whitespace-only fragments such as &nbsp; cells leave empty runs
	kept := runs[:0]
	for _, run := range runs {
		if run.Text != "" {
			kept = append(kept, run)
		}
	}
	return kept
}

func (m *WordMerger) adjacent(run Run, frag model.Fragment) bool {
	return run.Top == frag.Top && absInt(frag.Left-run.End) < m.config.MergeDrift
}

func (m *WordMerger) newRun(frag model.Fragment) Run {
	text := strings.TrimLeftFunc(frag.Text, unicode.IsSpace)
	return Run{
		Top:    frag.Top,
		Start:  frag.Left,
		End:    frag.Left + m.width(text),
		Text:   text,
		Bottom: frag.Top,
	}
}

func (m *WordMerger) absorb(run *Run, frag model.Fragment) {
	text := frag.Text
	// Runs of trailing spaces are padding emitted by the renderer; a single
	// trailing space is a real word boundary.
	if strings.HasSuffix(text, "  ") {
		text = strings.TrimRight(text, " ")
	}
	if endsWithSpace(run.Text) {
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
	}
	run.End = frag.Left + m.width(text)
	run.Text += text
}

func (m *WordMerger) width(text string) int {
	return utf8.RuneCountInString(text) * m.config.CharWidth
}

func endsWithSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
