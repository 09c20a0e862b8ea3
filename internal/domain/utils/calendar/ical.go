package calendar

import (
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Steelnight/dumpdate-bot/internal/domain/common/errorz"
)

// Entry is one VEVENT from the municipal pickup calendar: a collection day
// and the feed's summary line naming the collected categories.
type Entry struct {
	Date    time.Time
	Summary string
}

// ParsePickupCalendar reads an iCalendar feed and extracts the pickup
// entries. Events without a parseable DTSTART or without a SUMMARY are
// rejected rather than silently dropped, since a partial calendar would
// mean silently missed reminders.
func ParsePickupCalendar(r io.Reader) ([]Entry, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, event := range cal.Events() {
		start := event.GetProperty(ics.ComponentPropertyDtStart)
		summary := event.GetProperty(ics.ComponentPropertySummary)
		if start == nil || summary == nil || summary.Value == "" {
			return nil, errorz.ErrInvalidFeed
		}

		// All-day values come as YYYYMMDD, sometimes with a time part
		// appended after 'T'.
		raw, _, _ := strings.Cut(start.Value, "T")
		date, errParse := time.Parse("20060102", raw)
		if errParse != nil {
			return nil, errorz.ErrInvalidFeed
		}

		entries = append(entries, Entry{
			Date:    date,
			Summary: summary.Value,
		})
	}

	return entries, nil
}
