package events

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"

	"github.com/lululau/weekcal/internal/calendar"
)

// DefaultICSType tags imported events that carry no CATEGORIES.
const DefaultICSType = "event"

// ParseICS converts the VEVENTs of an iCalendar stream into events, in file
// order. IDs are assigned 1..n. Start and end are taken in the local zone;
// recurrence rules are not expanded. A VEVENT without a usable DTSTART is
// skipped with a warning.
func ParseICS(r io.Reader) ([]calendar.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ICS: %w", err)
	}

	out := make([]calendar.Event, 0)
	for _, ve := range cal.Events() {
		ev, err := convertVEvent(ve)
		if err != nil {
			log.WithError(err).WithField("uid", ve.Id()).Warn("skipping vevent")
			continue
		}
		ev.ID = len(out) + 1
		out = append(out, ev)
	}
	return out, nil
}

func convertVEvent(ve *ical.VEvent) (calendar.Event, error) {
	var ev calendar.Event
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}

	start, allDay, err := startOf(ve)
	if err != nil {
		return ev, err
	}
	start = start.In(time.Local)
	ev.Date = calendar.CanonicalKey(start)

	ev.Type = DefaultICSType
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil && p.Value != "" {
		first, _, _ := strings.Cut(p.Value, ",")
		ev.Type = strings.ToLower(strings.TrimSpace(first))
	}

	if allDay {
		return ev, nil
	}
	ev.StartTime = start.Format("15:04")
	if end, err := ve.GetEndAt(); err == nil {
		ev.EndTime = end.In(time.Local).Format("15:04")
	}
	return ev, nil
}

func startOf(ve *ical.VEvent) (time.Time, bool, error) {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return time.Time{}, false, errors.New("missing DTSTART")
	}
	allDay := !strings.Contains(prop.Value, "T")
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}
	if allDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return time.Time{}, true, fmt.Errorf("bad DTSTART %q: %w", prop.Value, err)
		}
		// All-day dates are floating; keep the written calendar day.
		y, m, d := start.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), true, nil
	}
	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("bad DTSTART %q: %w", prop.Value, err)
	}
	return start, false, nil
}
