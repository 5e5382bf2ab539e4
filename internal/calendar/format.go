package calendar

import (
	"errors"
	"fmt"
	"time"
)

// KeyLayout is the reference layout of a canonical date key.
const KeyLayout = "2006-01-02"

// ErrInvalidKey indicates a string that is not a canonical YYYY-MM-DD key.
var ErrInvalidKey = errors.New("date key must be formatted as YYYY-MM-DD")

// CanonicalKey returns the YYYY-MM-DD form of the date's local fields. It is
// the only join key between events and grid cells.
func CanonicalKey(date time.Time) string {
	y, m, d := date.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseKey converts a canonical key into that day at local noon, the same
// instant grid cells use. Keys that do not survive a round trip (such as
// "2025-5-10") are rejected.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil || CanonicalKey(t) != key {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	y, m, d := t.Date()
	return noon(y, m, d, time.Local), nil
}

// Names supplies the localized labels used in headers.
type Names interface {
	WeekdayShort(time.Weekday) string
	MonthLong(time.Month) string
}

type englishNames struct{}

func (englishNames) WeekdayShort(w time.Weekday) string {
	return w.String()[:3]
}

func (englishNames) MonthLong(m time.Month) string {
	return m.String()
}

// English is the default label set.
var English Names = englishNames{}

// Formatter renders dates into display labels.
type Formatter struct {
	names Names
}

// NewFormatter builds a Formatter. A nil Names falls back to English.
func NewFormatter(names Names) Formatter {
	if names == nil {
		names = English
	}
	return Formatter{names: names}
}

// WeekdayShort returns the abbreviated weekday name, e.g. "Sat".
func (f Formatter) WeekdayShort(date time.Time) string {
	return f.labels().WeekdayShort(date.Weekday())
}

// MonthLong returns the full month name, e.g. "May".
func (f Formatter) MonthLong(date time.Time) string {
	return f.labels().MonthLong(date.Month())
}

// Title is the header shown above a grid, e.g. "May 2025".
func (f Formatter) Title(date time.Time) string {
	return fmt.Sprintf("%s %d", f.MonthLong(date), date.Year())
}

func (f Formatter) labels() Names {
	if f.names == nil {
		return English
	}
	return f.names
}
