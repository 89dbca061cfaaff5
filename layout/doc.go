// Package layout reconstructs the grid of a weekly menu page from positioned
// text fragments.
//
// The page is known only as a list of (top, left, text) fragments, so the grid
// is inferred geometrically in four passes, each consuming the full output of
// the previous one:
//
//   - [FragmentFilter] - drops red annotations and fragments outside the
//     content band or inside a category label band
//   - [WordMerger] - merges horizontally adjacent fragments of a row into [Run]s
//   - [RowNoiseRemover] - drops rows made of a label repeated across columns
//   - [ColumnClusterer] - groups runs into day [Column]s by horizontal centre,
//     joining wrapped lines and removing duplicates
//
// The [Analyzer] chains the passes:
//
//	analyzer := layout.NewAnalyzer()
//	result, err := analyzer.Analyze(fragments, model.Dimensions{Width: 842, Height: 595})
//	if errors.Is(err, layout.ErrNoColumns) {
//	    // nothing that looks like a day column survived
//	}
//
// # Configuration
//
// Every threshold lives in [Config]. Page geometry specific label bands are
// registered as [PageProfile]s keyed by exact page dimensions; the first
// registered profile is the fallback for unknown geometries.
//
//	config := layout.DefaultConfig()
//	config.CharWidth = 5
//	analyzer := layout.NewAnalyzerWithConfig(config)
package layout
