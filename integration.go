// integration.go exposes the per-page layout analysis behind Days
package cantine

import (
	"github.com/tsawler/cantine/layout"
	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/render"
)

// PageAnalysis is the outcome of parsing one page.
type PageAnalysis struct {
	// Page is the rendered page.
	Page render.Page

	// Days are the days read from the page; nil when Err is set.
	Days []model.Day

	// Result holds the layout passes, filled up to the stage that failed.
	Result *layout.AnalysisResult

	// Err is why the page could not be parsed.
	Err error
}

// OK reports whether the page was parsed.
func (a PageAnalysis) OK() bool {
	return a.Err == nil
}

// AnalyzeDocument parses every page of the menu at path with the default
// configuration.
//
// Example:
//
//	analyses, err := cantine.AnalyzeDocument("menu.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range analyses {
//	    fmt.Printf("Page %d: %d columns, %d rows dropped\n",
//	        a.Page.Number, len(a.Result.Columns), len(a.Result.DroppedRows))
//	}
func AnalyzeDocument(path string) ([]PageAnalysis, error) {
	return Open(path).Analyze()
}
