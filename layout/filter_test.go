package layout

import (
	"testing"

	"github.com/tsawler/cantine/model"
)

func TestFragmentFilter_DropsRedInk(t *testing.T) {
	f := NewFragmentFilter()

	red := frag(200, 10, "Fait maison")
	red.Ink = model.InkRed

	got := f.Filter([]model.Fragment{red, frag(200, 100, "Salade")}, a4Landscape)
	if len(got) != 1 || got[0].Text != "Salade" {
		t.Errorf("expected only the default ink fragment, got %+v", got)
	}
}

func TestFragmentFilter_ContentBand(t *testing.T) {
	f := NewFragmentFilter()

	tests := []struct {
		top  int
		keep bool
	}{
		{119, false},
		{120, true},
		{524, true},
		{525, false},
		{40, false},
	}

	for _, tt := range tests {
		got := f.Filter([]model.Fragment{frag(tt.top, 10, "x")}, a4Landscape)
		if (len(got) == 1) != tt.keep {
			t.Errorf("top %d: kept = %v, want %v", tt.top, len(got) == 1, tt.keep)
		}
	}
}

func TestFragmentFilter_CategoryBands(t *testing.T) {
	config := DefaultConfig()
	config.Profiles = []PageProfile{
		{Name: "first", Width: 100, Height: 100, CategoryBands: []Band{{Min: 200, Max: 210}}},
		{Name: "second", Width: 842, Height: 595, CategoryBands: []Band{{Min: 300, Max: 310}}},
	}
	f := NewFragmentFilterWithConfig(config)

	frags := []model.Fragment{frag(205, 0, "Entrées"), frag(305, 0, "Plats"), frag(400, 0, "Riz")}

	t.Run("known geometry uses its own bands", func(t *testing.T) {
		got := f.Filter(frags, model.Dimensions{Width: 842, Height: 595})
		if len(got) != 2 || got[0].Text != "Entrées" || got[1].Text != "Riz" {
			t.Errorf("unexpected result %+v", got)
		}
	})

	t.Run("unknown geometry falls back to first profile", func(t *testing.T) {
		got := f.Filter(frags, model.Dimensions{Width: 1, Height: 1})
		if len(got) != 2 || got[0].Text != "Plats" || got[1].Text != "Riz" {
			t.Errorf("unexpected result %+v", got)
		}
	})
}

func TestFragmentFilter_SortsByTopThenLeft(t *testing.T) {
	f := NewFragmentFilter()

	got := f.Filter([]model.Fragment{
		frag(300, 50, "c"),
		frag(200, 80, "b"),
		frag(200, 10, "a"),
		frag(300, 50, "d"),
	}, a4Landscape)

	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d fragments, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("position %d: got %q, want %q", i, got[i].Text, w)
		}
	}
}

func TestConfig_Profile(t *testing.T) {
	config := DefaultConfig()

	p, exact := config.Profile(model.Dimensions{Width: 792, Height: 612})
	if !exact || p.Name != "letter-landscape" {
		t.Errorf("expected exact letter profile, got %q (exact=%v)", p.Name, exact)
	}

	p, exact = config.Profile(model.Dimensions{Width: 500, Height: 500})
	if exact || p.Name != "a4-landscape" {
		t.Errorf("expected fallback to a4 profile, got %q (exact=%v)", p.Name, exact)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	bad := DefaultConfig()
	bad.CharWidth = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero char width")
	}

	bad = DefaultConfig()
	bad.ContentBand = Band{Min: 300, Max: 300}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty content band")
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero row repeat minimum", func(c *Config) { c.RowRepeatMin = 0 }},
		{"negative row repeat margin", func(c *Config) { c.RowRepeatMargin = -1 }},
		{"frequent items over two columns", func(c *Config) { c.FrequentItemColumns = 2 }},
		{"negative frequent item columns", func(c *Config) { c.FrequentItemColumns = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	off := DefaultConfig()
	off.FrequentItemColumns = 0
	if err := off.Validate(); err != nil {
		t.Errorf("disabling the frequent item pass should be valid: %v", err)
	}
}
