package layout

import "testing"

func TestRowNoiseRemover_DropsWholeRepeatedRow(t *testing.T) {
	r := NewRowNoiseRemover()

	runs := []Run{
		run(100, 0, 40, "Semaine 12"),
		run(100, 160, 200, "Semaine 12"),
		run(100, 320, 360, "semaine 12"),
		run(100, 480, 520, "Semaine 12"),
		run(100, 640, 680, "Menu végétarien"),
		run(130, 0, 40, "Salade"),
		run(130, 160, 200, "Soupe"),
	}

	kept, dropped := r.Remove(runs)

	if len(kept) != 2 {
		t.Fatalf("expected 2 runs kept, got %d: %+v", len(kept), kept)
	}
	for _, k := range kept {
		if k.Top == 100 {
			t.Errorf("run %q of the repeated row survived", k.Text)
		}
	}
	if len(dropped) != 1 || dropped[0] != 100 {
		t.Errorf("expected row 100 reported as dropped, got %v", dropped)
	}
}

func TestRowNoiseRemover_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		drop bool
	}{
		{"single run", []string{"Salade"}, false},
		{"two distinct", []string{"Salade", "Soupe"}, false},
		{"two identical", []string{"Salade", "salade"}, true},
		{"three with one pair", []string{"Yaourt", "Yaourt", "Fruit"}, true},
		{"five with three repeats", []string{"Pain", "Pain", "Pain", "Riz", "Pâtes"}, false},
		{"five distinct", []string{"a", "b", "c", "d", "e"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var runs []Run
			for i, txt := range tt.row {
				runs = append(runs, run(200, i*160, i*160+40, txt))
			}
			kept, _ := NewRowNoiseRemover().Remove(runs)
			if dropped := len(kept) == 0; dropped != tt.drop {
				t.Errorf("dropped = %v, want %v", dropped, tt.drop)
			}
		})
	}
}

func TestRowNoiseRemover_CustomMargin(t *testing.T) {
	config := DefaultConfig()
	config.RowRepeatMargin = 2

	runs := []Run{
		run(200, 0, 40, "Pain"),
		run(200, 160, 200, "Pain"),
		run(200, 320, 360, "Pain"),
		run(200, 480, 520, "Riz"),
		run(200, 640, 680, "Pâtes"),
	}

	kept, _ := NewRowNoiseRemoverWithConfig(config).Remove(runs)
	if len(kept) != 0 {
		t.Errorf("expected the row to be dropped with a margin of 2, kept %d", len(kept))
	}
}

func TestRowNoiseRemover_PreservesOrder(t *testing.T) {
	runs := []Run{
		run(100, 0, 10, "A"),
		run(100, 50, 60, "B"),
		run(120, 0, 10, "C"),
	}

	kept, dropped := NewRowNoiseRemover().Remove(runs)
	if len(dropped) != 0 {
		t.Fatalf("expected nothing dropped, got %v", dropped)
	}
	for i, r := range runs {
		if kept[i].Text != r.Text {
			t.Errorf("position %d: got %q, want %q", i, kept[i].Text, r.Text)
		}
	}
}
