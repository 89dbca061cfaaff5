package icalendar

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/cantine/model"
)

func paris(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	return loc
}

func TestExport_Events(t *testing.T) {
	days := []model.Day{
		{Date: model.Date{Year: 2024, Month: time.March, Day: 11}, Items: []string{"Soupe", "Poulet"}},
		{Date: model.Date{Year: 2024, Month: time.April, Day: 2}, Items: []string{"Tarte"}},
	}

	out := Export(days, Options{Location: paris(t)})

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "PRODID:"+ProductID)
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(out, "STATUS:CONFIRMED"))
	assert.Contains(t, out, "SUMMARY:Pause déjeuner")
	assert.Contains(t, out, "Soupe")

	// winter time, then summer time
	assert.Contains(t, out, "DTSTART:20240311T110000Z")
	assert.Contains(t, out, "DTEND:20240311T120000Z")
	assert.Contains(t, out, "DTSTART:20240402T100000Z")
	assert.Contains(t, out, "DTEND:20240402T110000Z")
}

func TestExport_StableUIDs(t *testing.T) {
	days := []model.Day{{Date: model.Date{Year: 2024, Month: time.March, Day: 11}, Items: []string{"Soupe"}}}
	loc := paris(t)

	first := Export(days, Options{Location: loc})
	second := Export(days, Options{Location: loc})
	assert.Equal(t, first, second)

	uid := EventID(time.Date(2024, time.March, 11, 12, 0, 0, 0, loc))
	assert.Contains(t, first, "UID:"+uid)
	assert.Len(t, uid, 36)
	assert.Equal(t, byte('5'), uid[14], "expected a name-based SHA-1 UUID")
}

func TestExport_CustomOptions(t *testing.T) {
	days := []model.Day{{Date: model.Date{Year: 2024, Month: time.March, Day: 11}, Items: []string{"Soupe"}}}

	out := Export(days, Options{Location: time.UTC, StartHour: 11, EndHour: 12, Summary: "Cantine"})
	assert.Contains(t, out, "DTSTART:20240311T110000Z")
	assert.Contains(t, out, "SUMMARY:Cantine")
}

func TestExport_Empty(t *testing.T) {
	out := Export(nil, Options{})
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
