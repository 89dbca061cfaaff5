package layout

// RowNoiseRemover drops rows that repeat the same label across the page,
// such as a day-of-week banner printed once per column.
type RowNoiseRemover struct {
	config Config
}

// NewRowNoiseRemover creates a row noise remover with default configuration
func NewRowNoiseRemover() *RowNoiseRemover {
	return &RowNoiseRemover{config: DefaultConfig()}
}

// NewRowNoiseRemoverWithConfig creates a row noise remover with custom configuration
func NewRowNoiseRemoverWithConfig(config Config) *RowNoiseRemover {
	return &RowNoiseRemover{config: config}
}

// Remove returns the runs of every row that is not a repeated label, in their
// original order, along with the tops of the rows that were dropped.
func (r *RowNoiseRemover) Remove(runs []Run) (kept []Run, dropped []int) {
	rows := make(map[int][]Run)
	var order []int
	for _, run := range runs {
		if _, seen := rows[run.Top]; !seen {
			order = append(order, run.Top)
		}
		rows[run.Top] = append(rows[run.Top], run)
	}

	noisy := make(map[int]bool)
	for _, top := range order {
		if r.isRepeatedLabel(rows[top]) {
			noisy[top] = true
			dropped = append(dropped, top)
		}
	}

	kept = make([]Run, 0, len(runs))
	for _, run := range runs {
		if !noisy[run.Top] {
			kept = append(kept, run)
		}
	}
	return kept, dropped
}

// isRepeatedLabel reports whether one text value covers the row. A frequent
// duplicate means the whole row is structure, so the caller drops every run
// of it, including the odd one out.
func (r *RowNoiseRemover) isRepeatedLabel(row []Run) bool {
	threshold := len(row) - r.config.RowRepeatMargin
	if threshold < r.config.RowRepeatMin {
		threshold = r.config.RowRepeatMin
	}

	counts := make(map[string]int, len(row))
	for _, run := range row {
		key := run.Key()
		counts[key]++
		if counts[key] >= threshold {
			return true
		}
	}
	return false
}
