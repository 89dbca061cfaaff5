// Package catalogue keeps every known day menu, sorted by date, and answers
// the questions asked of it: what is served today, next, on a given day or
// week, and when an item is served next.
//
// A Catalogue is safe for concurrent use.
package catalogue

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/tsawler/cantine/model"
)

var (
	// ErrWeekNotFound is returned by Week when no day of that week is known.
	ErrWeekNotFound = errors.New("week not found")

	// ErrDayNotFound is returned by Day when the date is not known.
	ErrDayNotFound = errors.New("day not found")
)

// DefaultLunchCutoff is the hour after which "next" no longer means today.
const DefaultLunchCutoff = 14

// Update reports what an Insert changed.
type Update struct {
	Inserted []model.Date `json:"inserted"`
	Replaced []model.Date `json:"replaced"`
}

// Catalogue is the sorted set of known days.
type Catalogue struct {
	mu     sync.RWMutex
	days   []model.Day
	cutoff int
	loc    *time.Location
}

// Option configures a Catalogue.
type Option func(*Catalogue)

// WithLunchCutoff sets the hour, in the catalogue location, from which Next
// and FindNext skip today.
func WithLunchCutoff(hour int) Option {
	return func(c *Catalogue) {
		c.cutoff = hour
	}
}

// WithLocation sets the location "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(c *Catalogue) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// New creates an empty catalogue.
func New(opts ...Option) *Catalogue {
	c := &Catalogue{cutoff: DefaultLunchCutoff, loc: time.Local}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the location the catalogue computes dates in.
func (c *Catalogue) Location() *time.Location {
	return c.loc
}

// Insert adds days to the catalogue. A day whose date is already known
// replaces the items of that date.
func (c *Catalogue) Insert(days []model.Day) Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	var u Update
	for _, day := range days {
		day = day.Clone()
		i, found := c.search(day.Date)
		if found {
			c.days[i].Items = day.Items
			u.Replaced = append(u.Replaced, day.Date)
			continue
		}
		c.days = append(c.days, model.Day{})
		copy(c.days[i+1:], c.days[i:])
		c.days[i] = day
		u.Inserted = append(u.Inserted, day.Date)
	}

	sortDates(u.Inserted)
	sortDates(u.Replaced)
	return u
}

// search returns the position of date, or where it would be inserted.
func (c *Catalogue) search(date model.Date) (int, bool) {
	i := sort.Search(len(c.days), func(i int) bool {
		return !c.days[i].Date.Before(date)
	})
	return i, i < len(c.days) && c.days[i].Date == date
}

func sortDates(dates []model.Date) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}

// Len returns the number of known days.
func (c *Catalogue) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.days)
}

// DateAt returns the date of now in the catalogue location.
func (c *Catalogue) DateAt(now time.Time) model.Date {
	return model.DateOf(now.In(c.loc))
}

// Today returns the menu of the current date.
func (c *Catalogue) Today(now time.Time) (model.Day, bool) {
	day, err := c.Day(c.DateAt(now))
	return day, err == nil
}

// nextDate is today, or tomorrow once lunch is over.
func (c *Catalogue) nextDate(now time.Time) model.Date {
	local := now.In(c.loc)
	date := model.DateOf(local)
	if local.Hour() >= c.cutoff {
		date = date.AddDays(1)
	}
	return date
}

// Next returns the first menu served from now on.
func (c *Catalogue) Next(now time.Time) (model.Day, bool) {
	return c.FindNext(now, "")
}

// FindNext returns the first menu served from now on with an item containing
// query, ignoring case. An empty query matches any day.
func (c *Catalogue) FindNext(now time.Time, query string) (model.Day, bool) {
	from := c.nextDate(now)

	c.mu.RLock()
	defer c.mu.RUnlock()

	i, _ := c.search(from)
	for ; i < len(c.days); i++ {
		if query == "" || c.days[i].HasItem(query) {
			return c.days[i].Clone(), true
		}
	}
	return model.Day{}, false
}

// Day returns the menu of date.
func (c *Catalogue) Day(date model.Date) (model.Day, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, found := c.search(date)
	if !found {
		return model.Day{}, ErrDayNotFound
	}
	return c.days[i].Clone(), nil
}

// Days returns every known day, sorted by date.
func (c *Catalogue) Days() Days {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(Days, len(c.days))
	for i, d := range c.days {
		out[i] = d.Clone()
	}
	return out
}

// Week returns the known days of an ISO week.
func (c *Catalogue) Week(year, week int) (Days, error) {
	monday, ok := model.ISOWeekStart(year, week)
	if !ok {
		return nil, ErrWeekNotFound
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out Days
	for i, _ := c.search(monday); i < len(c.days); i++ {
		if y, w := c.days[i].Date.ISOWeek(); y != year || w != week {
			break
		}
		out = append(out, c.days[i].Clone())
	}
	if len(out) == 0 {
		return nil, ErrWeekNotFound
	}
	return out, nil
}

// Weeks lists the distinct ISO weeks having at least one known day.
func (c *Catalogue) Weeks() WeeksList {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := WeeksList{Weeks: []Week{}}
	for _, d := range c.days {
		monday := d.Date.AddDays(-((int(d.Date.Weekday()) + 6) % 7))
		if n := len(list.Weeks); n > 0 && list.Weeks[n-1].From == monday {
			continue
		}
		list.Weeks = append(list.Weeks, Week{From: monday, To: monday.AddDays(4)})
	}
	return list
}
