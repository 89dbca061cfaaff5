package model

import (
	"encoding/json"
	"image/color"
	"testing"
	"time"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		valid bool
	}{
		{"regular day", 2024, time.March, 13, true},
		{"leap day", 2024, time.February, 29, true},
		{"leap day in common year", 2023, time.February, 29, false},
		{"day zero", 2024, time.March, 0, false},
		{"day past end of month", 2024, time.April, 31, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := NewDate(tt.year, tt.month, tt.day)
			if ok != tt.valid {
				t.Fatalf("NewDate(%d, %v, %d) ok = %v, want %v", tt.year, tt.month, tt.day, ok, tt.valid)
			}
			if ok && (d.Year != tt.year || d.Month != tt.month || d.Day != tt.day) {
				t.Errorf("unexpected date %v", d)
			}
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 27}

	if got := d.AddDays(3); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays(3) = %v", got)
	}
	if got := d.AddDays(-58); got != (Date{2023, time.December, 31}) {
		t.Errorf("AddDays(-58) = %v", got)
	}
	if got := d.DaysUntil(Date{2024, time.March, 10}); got != 12 {
		t.Errorf("DaysUntil = %d, want 12", got)
	}
	if got := (Date{2024, time.March, 10}).DaysUntil(d); got != -12 {
		t.Errorf("DaysUntil = %d, want -12", got)
	}
	if d.Weekday() != time.Tuesday {
		t.Errorf("Weekday = %v, want Tuesday", d.Weekday())
	}
	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) || d.Compare(d) != 0 {
		t.Error("comparison helpers disagree")
	}
}

func TestISOWeekStart(t *testing.T) {
	tests := []struct {
		year, week int
		want       Date
		ok         bool
	}{
		{2024, 11, Date{2024, time.March, 11}, true},
		{2021, 1, Date{2021, time.January, 4}, true},
		{2020, 53, Date{2020, time.December, 28}, true},
		{2021, 53, Date{}, false},
		{2024, 0, Date{}, false},
	}

	for _, tt := range tests {
		got, ok := ISOWeekStart(tt.year, tt.week)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ISOWeekStart(%d, %d) = %v, %v; want %v, %v", tt.year, tt.week, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-13")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.String() != "2024-03-13" {
		t.Errorf("String() = %q", d.String())
	}

	if _, err := ParseDate("13/03/2024"); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestDayJSON(t *testing.T) {
	day := Day{Date: Date{2024, time.March, 13}, Items: []string{"Salade", "Poulet"}}

	data, err := json.Marshal(day)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"date":"2024-03-13","dishes":["Salade","Poulet"]}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var back Day
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Date != day.Date || len(back.Items) != 2 {
		t.Errorf("unexpected round trip %+v", back)
	}
}

func TestDayPlainText(t *testing.T) {
	day := Day{Items: []string{"Salade", "Poulet", "Riz"}}

	if got := day.PlainText(false); got != "- Salade\n- Poulet\n- Riz" {
		t.Errorf("PlainText(false) = %q", got)
	}
	if got := day.PlainText(true); got != "Au menu : Salade, Poulet et Riz." {
		t.Errorf("PlainText(true) = %q", got)
	}

	single := Day{Items: []string{"Soupe"}}
	if got := single.PlainText(true); got != "Au menu : Soupe." {
		t.Errorf("PlainText(true) single = %q", got)
	}
}

func TestDayHTMLEscapes(t *testing.T) {
	day := Day{Items: []string{"Fish & chips"}}
	if got := day.HTML(); got != "<ul><li>Fish &amp; chips</li></ul>" {
		t.Errorf("HTML() = %q", got)
	}
}

func TestDayHasItem(t *testing.T) {
	day := Day{Items: []string{"Poulet basquaise", "Riz"}}
	if !day.HasItem("POULET") {
		t.Error("expected case-insensitive match")
	}
	if day.HasItem("frites") {
		t.Error("unexpected match")
	}
}

func TestClassifyInk(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  Ink
	}{
		{"nil", nil, InkDefault},
		{"black", color.Black, InkDefault},
		{"grey", color.RGBA{128, 128, 128, 255}, InkDefault},
		{"red", color.RGBA{255, 0, 0, 255}, InkRed},
		{"crimson-ish", color.RGBA{220, 20, 40, 255}, InkRed},
		{"blue", color.RGBA{0, 0, 255, 255}, InkOther},
		{"transparent", color.RGBA{0, 0, 0, 0}, InkOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyInk(tt.color); got != tt.want {
				t.Errorf("ClassifyInk = %v, want %v", got, tt.want)
			}
		})
	}
}
