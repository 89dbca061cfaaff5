// Package icalendar exports day menus as an iCalendar feed, one lunch event
// per day.
package icalendar

import (
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/tsawler/cantine/model"
)

// ProductID identifies the exporter in the PRODID property.
const ProductID = "-//cantine//menu calendar//FR"

// stampLayout is the UTC date-time form of RFC 5545.
const stampLayout = "20060102T150405Z"

// Options controls the exported events.
type Options struct {
	// Location is the zone the lunch hours are given in. Defaults to time.Local.
	Location *time.Location

	// StartHour and EndHour bound the lunch break. Default to 12 and 13.
	StartHour int
	EndHour   int

	// Summary is the event title. Defaults to "Pause déjeuner".
	Summary string
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.StartHour == 0 && o.EndHour == 0 {
		o.StartHour, o.EndHour = 12, 13
	}
	if o.Summary == "" {
		o.Summary = "Pause déjeuner"
	}
	return o
}

// Export renders days as a VCALENDAR. Every event is confirmed and described
// by the plain item list of its day. UIDs are name-based UUIDs of the start
// time, so exporting the same day twice yields the same event.
func Export(days []model.Day, opts Options) string {
	opts = opts.withDefaults()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)

	for _, day := range days {
		start := day.Date.At(opts.StartHour, 0, opts.Location)
		end := day.Date.At(opts.EndHour, 0, opts.Location)

		event := cal.AddEvent(EventID(start))
		event.SetDtStampTime(start)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetStatus(ics.ObjectStatusConfirmed)
		event.SetSummary(opts.Summary)
		event.SetDescription(day.PlainText(false))
	}
	return cal.Serialize()
}

// EventID returns the UID of the event starting at start.
func EventID(start time.Time) string {
	return uuid.NewSHA1(uuid.Nil, []byte(start.UTC().Format(stampLayout))).String()
}
