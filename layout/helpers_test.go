package layout

import (
	"fmt"

	"github.com/tsawler/cantine/model"
)

var a4Landscape = model.Dimensions{Width: 842, Height: 595}

// Helper to create a fragment in default ink
func frag(top, left int, txt string) model.Fragment {
	return model.Fragment{Top: top, Left: left, Text: txt, Ink: model.InkDefault}
}

// Helper to create a run with an explicit extent
func run(top, start, end int, txt string) Run {
	return Run{Top: top, Start: start, End: end, Text: txt, Bottom: top}
}

// gridPage builds a clean page of cols columns, each holding a header row and
// items rows, laid out clear of every band of the default A4 profile.
func gridPage(cols, items int) []model.Fragment {
	tops := []int{125, 170, 200, 260, 290, 340, 370, 420, 480, 510}
	var frags []model.Fragment
	for c := 0; c < cols; c++ {
		left := 50 + c*160
		frags = append(frags, frag(tops[0], left, fmt.Sprintf("Jour %d", c)))
		for i := 1; i <= items; i++ {
			frags = append(frags, frag(tops[i], left, fmt.Sprintf("Plat %d-%d", c, i)))
		}
	}
	return frags
}
