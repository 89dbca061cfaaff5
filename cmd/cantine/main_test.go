package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/cantine/internal/menutest"
	"github.com/tsawler/cantine/model"
)

var monday = model.Date{Year: 2024, Month: time.March, Day: 11}

func writeMenu(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write menu: %v", err)
	}
	return path
}

func TestRun_PlainText(t *testing.T) {
	path := writeMenu(t, "menu.html", menutest.HTML(menutest.Week(monday)))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-now", "2024-03-08", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	if !strings.HasPrefix(out, "2024-03-11 :\n- Entrée du 11\n- Plat du 11\n- Dessert du 11") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "2024-03-15 :") {
		t.Errorf("expected Friday in output:\n%s", out)
	}
}

func TestRun_Human(t *testing.T) {
	path := writeMenu(t, "menu.pdf", menutest.PDF(menutest.Week(monday)))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-human", "-now", "2024-03-08T10:00:00+01:00", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Au menu : Entrée du 12, Plat du 12 et Dessert du 12.") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}

func TestRun_JSON(t *testing.T) {
	path := writeMenu(t, "menu.html", menutest.HTML(menutest.Week(monday)))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-json", "-now", "2024-03-08", "-tz", "UTC", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	var days []model.Day
	if err := json.Unmarshal(stdout.Bytes(), &days); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if len(days) != 5 {
		t.Fatalf("expected 5 days, got %d", len(days))
	}
	if days[4].Date != monday.AddDays(4) {
		t.Errorf("expected Friday last, got %v", days[4].Date)
	}
}

func TestRun_Debug(t *testing.T) {
	path := writeMenu(t, "menu.html", menutest.HTML(menutest.Week(monday)))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-debug", "-now", "2024-03-08", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"=== page 1 (842x595)", "columns: 5", `"Lundi 11 mars"`} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	garbage := writeMenu(t, "menu.html", []byte("<html><body><p>fermé</p></body></html>"))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no argument", nil, 2},
		{"two arguments", []string{"a.pdf", "b.pdf"}, 2},
		{"unknown flag", []string{"-nope", "a.pdf"}, 2},
		{"bad date", []string{"-now", "vendredi", "a.pdf"}, 2},
		{"bad zone", []string{"-tz", "Mars/Olympus", "a.pdf"}, 2},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.pdf")}, 1},
		{"no menu", []string{garbage}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("exit code %d, want %d (stderr: %s)", code, tt.code, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("expected no output, got %q", stdout.String())
			}
		})
	}
}
