// Package frdate resolves the French date headers printed above each day of
// a menu, such as "Lundi 13 mars", into calendar dates.
//
// Headers never carry a year. The year is inferred by trying the years around
// the current date and keeping the one where the printed weekday matches the
// calendar, nearest to now.
package frdate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/cantine/model"
)

var (
	// ErrUnrecognizedHeader is returned when a header has neither the worded
	// nor the numeric shape, or names an unknown weekday or month.
	ErrUnrecognizedHeader = errors.New("unrecognized date header")

	// ErrNoMatchingYear is returned when no candidate year has the printed
	// day of month falling on the printed weekday.
	ErrNoMatchingYear = errors.New("no year matches the weekday")
)

var weekdays = map[string]time.Weekday{
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
	"dimanche": time.Sunday,
}

// Month names are stored folded, so "février", "fevrier" and "FÉVRIER" all hit
// the same entry.
var months = map[string]time.Month{
	"janvier":   time.January,
	"fevrier":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"aout":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"decembre":  time.December,
}

// fold lower-cases s with French rules and strips combining diacritics.
// Casers and transformers keep state, so fresh ones are built per call.
func fold(s string) string {
	lower := cases.Lower(language.French).String(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return folded
}

// ParseWeekday returns the weekday named by a French weekday name.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdays[fold(name)]
	return wd, ok
}

// ParseMonth returns the month named by a French month name, with or without
// accents.
func ParseMonth(name string) (time.Month, bool) {
	m, ok := months[fold(name)]
	return m, ok
}

// parseDayOfMonth accepts "13" as well as the ordinal "1er".
func parseDayOfMonth(token string) (int, bool) {
	token = strings.TrimSuffix(fold(token), "er")
	day, err := strconv.Atoi(token)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

// Resolver turns date headers into dates relative to a clock.
type Resolver struct {
	now        func() time.Time
	yearWindow int
}

// NewResolver creates a resolver reading the current time from now. A nil
// now uses time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now, yearWindow: 1}
}

// Resolve parses a header, either worded ("Lundi 13 mars") or numeric
// ("2024-03-13").
func (r *Resolver) Resolve(header string) (model.Date, error) {
	header = strings.TrimSpace(header)
	if !strings.ContainsFunc(header, unicode.IsLetter) {
		return resolveNumeric(header)
	}
	return r.resolveWorded(header)
}

func resolveNumeric(header string) (model.Date, error) {
	parts := strings.Split(header, "-")
	if len(parts) != 3 {
		return model.Date{}, fmt.Errorf("%w: %q", ErrUnrecognizedHeader, header)
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.Date{}, fmt.Errorf("%w: %q", ErrUnrecognizedHeader, header)
		}
		fields[i] = n
	}

	d, ok := model.NewDate(fields[0], time.Month(fields[1]), fields[2])
	if !ok {
		return model.Date{}, fmt.Errorf("%w: %q is not a calendar date", ErrUnrecognizedHeader, header)
	}
	return d, nil
}

func (r *Resolver) resolveWorded(header string) (model.Date, error) {
	tokens := strings.Fields(header)
	if len(tokens) != 3 {
		return model.Date{}, fmt.Errorf("%w: %q has %d words, want 3", ErrUnrecognizedHeader, header, len(tokens))
	}

	weekday, ok := ParseWeekday(tokens[0])
	if !ok {
		return model.Date{}, fmt.Errorf("%w: unknown weekday %q", ErrUnrecognizedHeader, tokens[0])
	}
	day, ok := parseDayOfMonth(tokens[1])
	if !ok {
		return model.Date{}, fmt.Errorf("%w: invalid day %q", ErrUnrecognizedHeader, tokens[1])
	}
	month, ok := ParseMonth(tokens[2])
	if !ok {
		return model.Date{}, fmt.Errorf("%w: unknown month %q", ErrUnrecognizedHeader, tokens[2])
	}

	return r.nearest(weekday, month, day, header)
}

// nearest picks, among the candidate years, the date that falls on weekday
// and is closest to now.
func (r *Resolver) nearest(weekday time.Weekday, month time.Month, day int, header string) (model.Date, error) {
	today := model.DateOf(r.now())

	var (
		best     model.Date
		bestDist = -1
	)
	for year := today.Year - r.yearWindow; year <= today.Year+r.yearWindow; year++ {
		candidate, ok := model.NewDate(year, month, day)
		if !ok || candidate.Weekday() != weekday {
			continue
		}
		dist := today.DaysUntil(candidate)
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}

	if bestDist < 0 {
		return model.Date{}, fmt.Errorf("%w: %q", ErrNoMatchingYear, header)
	}
	return best, nil
}
