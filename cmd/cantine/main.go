// Command cantine reads a menu document and prints the days it serves.
//
// Usage:
//
//	cantine menu.pdf                    # days as plain item lists
//	cantine -human menu.pdf             # "Au menu : ..." sentences
//	cantine -json menu.html             # JSON
//	cantine -now 2024-03-08 menu.pdf    # infer years around that date
//	cantine -debug menu.pdf             # dump every layout pass
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tsawler/cantine"
	"github.com/tsawler/cantine/catalogue"
	"github.com/tsawler/cantine/model"
	"github.com/tsawler/cantine/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cantine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print days as JSON")
	human := fs.Bool("human", false, "print items as a sentence")
	nowFlag := fs.String("now", "", "current date (YYYY-MM-DD or RFC 3339) used to infer years")
	tz := fs.String("tz", "", "time zone the current date is read in")
	debug := fs.Bool("debug", false, "dump the layout analysis of every page")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: cantine [-json] [-human] [-now date] [-tz zone] [-debug] <menu.pdf|menu.html|scan.png>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if *debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	render.SetLogger(logger)

	ext := cantine.Open(fs.Arg(0))
	if *nowFlag != "" {
		now, err := parseNow(*nowFlag)
		if err != nil {
			fmt.Fprintln(stderr, "cantine:", err)
			return 2
		}
		ext = ext.Now(now)
	}
	if *tz != "" {
		loc, err := time.LoadLocation(*tz)
		if err != nil {
			fmt.Fprintln(stderr, "cantine:", err)
			return 2
		}
		ext = ext.Location(loc)
	}

	if *debug {
		analyses, err := ext.Analyze()
		if err != nil {
			fmt.Fprintln(stderr, "cantine:", err)
			return 1
		}
		dumpAnalyses(stdout, analyses)
	}

	days, warnings, err := ext.Days()
	if err != nil {
		fmt.Fprintln(stderr, "cantine:", err)
		if errors.Is(err, cantine.ErrUnparsableLayout) {
			return 3
		}
		return 1
	}
	if len(warnings) > 0 {
		fmt.Fprintln(stderr, cantine.FormatWarnings(warnings))
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(days); err != nil {
			fmt.Fprintln(stderr, "cantine:", err)
			return 1
		}
		return 0
	}
	fmt.Fprintln(stdout, catalogue.Days(days).PlainText(*human))
	return 0
}

func parseNow(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -now %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return d.At(12, 0, time.UTC), nil
}

func dumpAnalyses(w io.Writer, analyses []cantine.PageAnalysis) {
	for _, a := range analyses {
		res := a.Result
		fmt.Fprintf(w, "=== page %d (%dx%d) profile %s exact=%t ===\n",
			a.Page.Number, a.Page.Dimensions.Width, a.Page.Dimensions.Height, res.Profile.Name, res.ExactProfile)

		fmt.Fprintf(w, "fragments: %d read, %d kept\n", len(a.Page.Fragments), len(res.Fragments))
		fmt.Fprintf(w, "runs: %d\n", len(res.Runs))
		for _, run := range res.Runs {
			fmt.Fprintf(w, "  [%4d,%4d] %q\n", run.Top, run.Start, run.Text)
		}
		fmt.Fprintf(w, "dropped rows: %v\n", res.DroppedRows)
		fmt.Fprintf(w, "columns: %d\n", len(res.Columns))
		for i, col := range res.Columns {
			fmt.Fprintf(w, "  %d: %q\n", i, col.Texts())
		}
		if a.Err != nil {
			fmt.Fprintf(w, "error: %v\n", a.Err)
		}
		fmt.Fprintln(w)
	}
}
