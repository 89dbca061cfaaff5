package layout

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// ErrNoColumns is returned when no column survives clustering.
var ErrNoColumns = errors.New("no column found")

// Column is the set of runs believed to form one day: a header followed by
// the items, top to bottom.
type Column struct {
	Runs []Run
}

// Header returns the first run of the column
func (c Column) Header() (Run, bool) {
	if len(c.Runs) == 0 {
		return Run{}, false
	}
	return c.Runs[0], true
}

// Texts returns the text of every run in order
func (c Column) Texts() []string {
	texts := make([]string, len(c.Runs))
	for i, run := range c.Runs {
		texts[i] = run.Text
	}
	return texts
}

// accepts reports whether any member of the column is horizontally close to
// run. Every member counts, so a column's reach grows as runs join it.
func (c Column) accepts(run Run, tolerance int) bool {
	center := run.Center()
	for _, member := range c.Runs {
		if absInt(member.Center()-center) < tolerance {
			return true
		}
	}
	return false
}

// ColumnClusterer groups runs into day columns.
type ColumnClusterer struct {
	config Config
}

// NewColumnClusterer creates a column clusterer with default configuration
func NewColumnClusterer() *ColumnClusterer {
	return &ColumnClusterer{config: DefaultConfig()}
}

// NewColumnClustererWithConfig creates a column clusterer with custom configuration
func NewColumnClustererWithConfig(config Config) *ColumnClusterer {
	return &ColumnClusterer{config: config}
}

// Cluster assigns runs, in row order, to columns; joins wrapped lines; removes
// case-insensitive duplicates within each column, then items repeated across
// nearly every column, and drops columns with too few runs. It returns
// ErrNoColumns when nothing survives.
func (cc *ColumnClusterer) Cluster(runs []Run) ([]Column, error) {
	columns := cc.assign(runs)

	for i := range columns {
		columns[i].Runs = dedupe(columns[i].Runs)
	}
	cc.dropFrequent(columns)

	kept := columns[:0]
	for _, col := range columns {
		if len(col.Runs) >= cc.config.MinColumnRuns {
			kept = append(kept, col)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoColumns
	}
	return kept, nil
}

// assign is a greedy single pass: the first column with a close member wins,
// otherwise the run opens a new column.
func (cc *ColumnClusterer) assign(runs []Run) []Column {
	var columns []Column

	for _, run := range runs {
		idx := -1
		for i := range columns {
			if columns[i].accepts(run, cc.config.ColumnTolerance) {
				idx = i
				break
			}
		}
		if idx < 0 {
			columns = append(columns, Column{Runs: []Run{run}})
			continue
		}

		col := &columns[idx]
		last := &col.Runs[len(col.Runs)-1]
		if cc.isContinuation(*last, run) {
			joinLines(last, run)
			continue
		}
		col.Runs = append(col.Runs, run)
	}

	return columns
}

// isContinuation reports whether run is the wrapped tail of last: close below
// it and starting with a lower-case letter.
func (cc *ColumnClusterer) isContinuation(last, run Run) bool {
	if absInt(run.Top-last.Bottom) >= cc.config.LineTolerance {
		return false
	}
	r, size := utf8.DecodeRuneInString(run.Text)
	return size > 0 && unicode.IsLower(r)
}

func joinLines(last *Run, run Run) {
	if !endsWithSpace(last.Text) && !startsWithSpace(run.Text) {
		last.Text += " "
	}
	last.Text += run.Text
	if run.Start < last.Start {
		last.Start = run.Start
	}
	if run.End > last.End {
		last.End = run.End
	}
	last.Bottom = run.Top
}

// dropFrequent removes the items present in at least len(columns)-1 columns
// once there are FrequentItemColumns columns or more. Headers are kept.
func (cc *ColumnClusterer) dropFrequent(columns []Column) {
	if cc.config.FrequentItemColumns <= 0 || len(columns) < cc.config.FrequentItemColumns {
		return
	}

	// columns are deduplicated, so a key counts once per column
	counts := make(map[string]int)
	for _, col := range columns {
		for _, run := range col.Runs[1:] {
			counts[run.Key()]++
		}
	}

	threshold := len(columns) - 1
	for i := range columns {
		runs := columns[i].Runs
		kept := runs[:1]
		for _, run := range runs[1:] {
			if counts[run.Key()] < threshold {
				kept = append(kept, run)
			}
		}
		columns[i].Runs = kept
	}
}

// dedupe keeps the first run of every case-insensitive text.
func dedupe(runs []Run) []Run {
	seen := make(map[string]bool, len(runs))
	out := runs[:0]
	for _, run := range runs {
		key := run.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, run)
	}
	return out
}
