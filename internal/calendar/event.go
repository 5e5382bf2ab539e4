package calendar

import "time"

// Event is a scheduled item. Date is a canonical YYYY-MM-DD key; StartTime and
// EndTime are HH:MM strings and are not checked against each other. Type is
// an open tag that is passed through untouched.
type Event struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Date      string `json:"date" yaml:"date"`
	StartTime string `json:"time" yaml:"time"`
	EndTime   string `json:"endTime" yaml:"endTime"`
	Type      string `json:"type" yaml:"type"`
}

// Index answers which events fall on a given date. It is read-only once
// built and may be shared between renders.
type Index struct {
	byKey     map[string][]Event
	total     int
	unmatched int
}

// NewIndex groups events by date key, keeping input order within a day.
// Events whose Date is not a canonical key can never match a cell; they are
// kept out of the index and counted by Unmatched.
func NewIndex(events []Event) *Index {
	idx := &Index{
		byKey: make(map[string][]Event),
		total: len(events),
	}
	for _, ev := range events {
		if _, err := ParseKey(ev.Date); err != nil {
			idx.unmatched++
			continue
		}
		idx.byKey[ev.Date] = append(idx.byKey[ev.Date], ev)
	}
	return idx
}

// EventsOn returns the events dated on date's calendar day in input order.
// The time of day is ignored. It returns nil when nothing matches and for
// the zero time carried by padding cells.
func (idx *Index) EventsOn(date time.Time) []Event {
	if idx == nil || date.IsZero() {
		return nil
	}
	matched := idx.byKey[CanonicalKey(date)]
	if len(matched) == 0 {
		return nil
	}
	out := make([]Event, len(matched))
	copy(out, matched)
	return out
}

// Len is the number of events the index was built from.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return idx.total
}

// Unmatched counts events dropped for having a malformed date key.
func (idx *Index) Unmatched() int {
	if idx == nil {
		return 0
	}
	return idx.unmatched
}
