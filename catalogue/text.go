package catalogue

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/tsawler/cantine/model"
)

// ErrInvalidWeek is returned by ParseWeek for anything but "YYYY-WW".
var ErrInvalidWeek = errors.New("invalid week")

// Days is a list of day menus sorted by date.
type Days []model.Day

// PlainText renders every day as its date followed by its items.
func (ds Days) PlainText(human bool) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.Date.String() + " :\n" + d.PlainText(human)
	}
	return strings.Join(parts, "\n\n")
}

// HTML renders every day as a link to its page followed by its items. The
// current day is highlighted.
func (ds Days) HTML(today model.Date) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = fmt.Sprintf(`<li><a href="/days/%s" style="color: %s;">%s</a></li>%s`,
			d.Date, highlight(d.Date == today), d.Date, d.HTML())
	}
	return strings.Join(parts, "<br>")
}

// Week is an ISO week, from its Monday to its Friday.
type Week struct {
	From model.Date `json:"from"`
	To   model.Date `json:"to"`
}

// String returns the week as "YYYY-WW".
func (w Week) String() string {
	year, week := w.From.ISOWeek()
	return FormatWeek(year, week)
}

// WeeksList is the list of weeks having a menu.
type WeeksList struct {
	Weeks []Week `json:"weeks"`
}

// PlainText renders one week per line.
func (l WeeksList) PlainText() string {
	lines := make([]string, len(l.Weeks))
	for i, w := range l.Weeks {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// HTML renders the weeks as a list of links, highlighting the week of today.
func (l WeeksList) HTML(today model.Date) string {
	ty, tw := today.ISOWeek()
	current := FormatWeek(ty, tw)

	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, w := range l.Weeks {
		s := w.String()
		fmt.Fprintf(&sb, `<li><a href="/weeks/%s" style="color: %s;">%s</a></li>`, s, highlight(s == current), s)
	}
	sb.WriteString("</ul>")
	return sb.String()
}

// PlainText summarizes an update.
func (u Update) PlainText() string {
	return "Ajoutés : " + joinDates(u.Inserted) + "\nRemplacés : " + joinDates(u.Replaced)
}

// HTML summarizes an update.
func (u Update) HTML() string {
	return "<p>" + html.EscapeString(u.PlainText()) + "</p>"
}

func joinDates(dates []model.Date) string {
	if len(dates) == 0 {
		return "aucun"
	}
	s := make([]string, len(dates))
	for i, d := range dates {
		s[i] = d.String()
	}
	return strings.Join(s, ", ")
}

func highlight(current bool) string {
	if current {
		return "red"
	}
	return "blue"
}

// FormatWeek returns the "YYYY-WW" form of an ISO week.
func FormatWeek(year, week int) string {
	return fmt.Sprintf("%d-%02d", year, week)
}

// ParseWeek parses "YYYY-WW" (or "YYYY-W") into an ISO year and week.
func ParseWeek(s string) (year, week int, err error) {
	ys, ws, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
	}
	year, err1 := strconv.Atoi(ys)
	week, err2 := strconv.Atoi(ws)
	if err1 != nil || err2 != nil || len(ys) != 4 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
	}
	if _, ok := model.ISOWeekStart(year, week); !ok {
		return 0, 0, fmt.Errorf("%w: %q has no week %d", ErrInvalidWeek, ys, week)
	}
	return year, week, nil
}
