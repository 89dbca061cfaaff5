package layout

import (
	"sort"

	"github.com/tsawler/cantine/model"
)

// FragmentFilter discards fragments that can never be menu content.
type FragmentFilter struct {
	config Config
}

// NewFragmentFilter creates a fragment filter with default configuration
func NewFragmentFilter() *FragmentFilter {
	return &FragmentFilter{config: DefaultConfig()}
}

// NewFragmentFilterWithConfig creates a fragment filter with custom configuration
func NewFragmentFilterWithConfig(config Config) *FragmentFilter {
	return &FragmentFilter{config: config}
}

// Filter returns the fragments that are neither red, outside the content band
// nor inside a category label band of the page profile, sorted by (top, left).
// The input slice is not modified.
func (f *FragmentFilter) Filter(fragments []model.Fragment, dims model.Dimensions) []model.Fragment {
	profile, _ := f.config.Profile(dims)

	kept := make([]model.Fragment, 0, len(fragments))
	for _, frag := range fragments {
		if f.drop(frag, profile) {
			continue
		}
		kept = append(kept, frag)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Top != kept[j].Top {
			return kept[i].Top < kept[j].Top
		}
		return kept[i].Left < kept[j].Left
	})
	return kept
}

func (f *FragmentFilter) drop(frag model.Fragment, profile PageProfile) bool {
	if frag.Ink == model.InkRed {
		return true
	}
	if !f.config.ContentBand.Contains(frag.Top) {
		return true
	}
	for _, band := range profile.CategoryBands {
		if band.Contains(frag.Top) {
			return true
		}
	}
	return false
}
