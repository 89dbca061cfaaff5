package cantine

import (
	"fmt"
	"strings"
)

// Warning reports a page that was skipped while the rest of the document
// could be read.
type Warning struct {
	// Page is the 1-based page number.
	Page int

	// Err is why the page was skipped.
	Err error
}

// String returns a one-line description of the warning.
func (w Warning) String() string {
	return fmt.Sprintf("page %d: %v", w.Page, w.Err)
}

// Unwrap returns the page error, so that errors.Is works on warnings.
func (w Warning) Unwrap() error {
	return w.Err
}

// Error implements error.
func (w Warning) Error() string {
	return w.String()
}

// FormatWarnings joins warnings, one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
