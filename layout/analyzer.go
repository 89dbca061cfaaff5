package layout

import (
	"fmt"

	"github.com/tsawler/cantine/model"
)

// AnalysisResult holds every intermediate layer of a layout analysis, so a
// failed page can be inspected stage by stage.
type AnalysisResult struct {
	// Profile is the page profile whose category bands were applied
	Profile PageProfile

	// ExactProfile is false when Profile is the fallback
	ExactProfile bool

	// Fragments are the fragments that passed the filter, sorted by (top, left)
	Fragments []model.Fragment

	// Runs are the merged runs, before row noise removal
	Runs []Run

	// DroppedRows are the tops of the rows removed as repeated labels
	DroppedRows []int

	// Columns are the surviving day columns in discovery order
	Columns []Column
}

// Analyzer runs the four geometric passes in order.
type Analyzer struct {
	config Config

	filter    *FragmentFilter
	merger    *WordMerger
	rows      *RowNoiseRemover
	clusterer *ColumnClusterer
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{
		config:    config,
		filter:    NewFragmentFilterWithConfig(config),
		merger:    NewWordMergerWithConfig(config),
		rows:      NewRowNoiseRemoverWithConfig(config),
		clusterer: NewColumnClustererWithConfig(config),
	}
}

// Config returns the configuration the analyzer was built with
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze reconstructs the day columns of a page. The result is returned even
// on failure, filled up to the stage that failed.
func (a *Analyzer) Analyze(fragments []model.Fragment, dims model.Dimensions) (*AnalysisResult, error) {
	result := &AnalysisResult{}
	result.Profile, result.ExactProfile = a.config.Profile(dims)

	// Step 1: Drop fragments that cannot be content
	result.Fragments = a.filter.Filter(fragments, dims)

	// Step 2: Merge adjacent fragments into runs
	result.Runs = a.merger.Merge(result.Fragments)

	// Step 3: Remove repeated label rows
	var runs []Run
	runs, result.DroppedRows = a.rows.Remove(result.Runs)

	// Step 4: Cluster into columns
	columns, err := a.clusterer.Cluster(runs)
	if err != nil {
		return result, fmt.Errorf("clustering %d runs: %w", len(runs), err)
	}
	result.Columns = columns

	return result, nil
}
