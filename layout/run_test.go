package layout

import (
	"testing"

	"github.com/tsawler/cantine/model"
)

func TestWordMerger_MergesAdjacentFragments(t *testing.T) {
	m := NewWordMerger()

	runs := m.Merge([]model.Fragment{frag(200, 0, "Sal"), frag(200, 4, "ade")})

	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "Salade" {
		t.Errorf("expected %q, got %q", "Salade", runs[0].Text)
	}
	// end is re-estimated from the appended text only
	if runs[0].End != 4+3*4 {
		t.Errorf("expected end %d, got %d", 4+3*4, runs[0].End)
	}
}

func TestWordMerger_SplitsOnGapAndRow(t *testing.T) {
	m := NewWordMerger()

	runs := m.Merge([]model.Fragment{
		frag(200, 0, "Salade"),  // ends at 24
		frag(200, 36, "Pâtes"),  // gap of 12: not below the drift
		frag(230, 0, "Fromage"), // next row
	})

	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(runs), runs)
	}
}

func TestWordMerger_WhitespaceHandling(t *testing.T) {
	tests := []struct {
		name  string
		frags []model.Fragment
		want  string
	}{
		{
			name:  "single boundary space kept",
			frags: []model.Fragment{frag(200, 0, "Poulet "), frag(200, 28, "basquaise")},
			want:  "Poulet basquaise",
		},
		{
			name:  "leading space dropped after trailing space",
			frags: []model.Fragment{frag(200, 0, "Poulet "), frag(200, 28, " basquaise")},
			want:  "Poulet basquaise",
		},
		{
			name:  "leading space kept when run has none",
			frags: []model.Fragment{frag(200, 0, "Pommes"), frag(200, 24, " vapeur")},
			want:  "Pommes vapeur",
		},
		{
			name:  "trailing padding collapsed",
			frags: []model.Fragment{frag(200, 0, "Riz"), frag(200, 12, " cantonais   ")},
			want:  "Riz cantonais",
		},
		{
			name:  "outer whitespace trimmed",
			frags: []model.Fragment{frag(200, 0, "  Soupe "), frag(300, 0, " Pain  ")},
			want:  "Soupe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := NewWordMerger().Merge(tt.frags)
			if len(runs) == 0 {
				t.Fatal("expected at least one run")
			}
			if runs[0].Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, runs[0].Text)
			}
		})
	}
}

func TestWordMerger_TrailingPaddingShortensEnd(t *testing.T) {
	runs := NewWordMerger().Merge([]model.Fragment{frag(200, 0, "Riz"), frag(200, 12, " cantonais   ")})

	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	// " cantonais" is 10 characters once the padding is gone
	if runs[0].End != 12+10*4 {
		t.Errorf("expected end %d, got %d", 12+10*4, runs[0].End)
	}
}

func TestWordMerger_CustomCharWidth(t *testing.T) {
	config := DefaultConfig()
	config.CharWidth = 10

	runs := NewWordMergerWithConfig(config).Merge([]model.Fragment{frag(200, 0, "Sal"), frag(200, 4, "ade")})
	if len(runs) != 2 {
		t.Fatalf("wider glyphs push the estimated end away, expected 2 runs, got %d", len(runs))
	}
}

func TestWordMerger_Empty(t *testing.T) {
	if runs := NewWordMerger().Merge(nil); len(runs) != 0 {
		t.Errorf("expected no runs, got %+v", runs)
	}
}

func TestWordMerger_DropsBlankRuns(t *testing.T) {
	runs := NewWordMerger().Merge([]model.Fragment{
		frag(130, 40, "\u00a0"),
		frag(170, 40, "Taboulé"),
		frag(200, 40, "   "),
		frag(200, 300, "Riz"),
	})

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Text != "Taboulé" || runs[1].Text != "Riz" {
		t.Errorf("unexpected runs %+v", runs)
	}
}

func TestWordMerger_BlankBetweenWords(t *testing.T) {
	runs := NewWordMerger().Merge([]model.Fragment{
		frag(200, 0, "Poulet"),
		frag(200, 24, " "),
		frag(200, 28, "basquaise"),
	})

	if len(runs) != 1 || runs[0].Text != "Poulet basquaise" {
		t.Errorf("expected a single merged run, got %+v", runs)
	}
}

func TestRun_Center(t *testing.T) {
	r := run(0, 10, 30, "x")
	if r.Center() != 20 {
		t.Errorf("expected center 20, got %d", r.Center())
	}
}
