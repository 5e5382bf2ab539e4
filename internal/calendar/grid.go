package calendar

import "time"

// Cell is one slot of a grid. Month grids lead with Empty padding cells that
// carry no date; callers must not look up events for them.
type Cell struct {
	Date  time.Time
	Empty bool
}

// Grid lays dates out in rows starting on a configurable weekday.
type Grid struct {
	weekStart time.Weekday
}

// NewGrid returns a Grid whose columns begin on weekStart. Out-of-range
// weekdays fall back to Sunday.
func NewGrid(weekStart time.Weekday) Grid {
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = time.Sunday
	}
	return Grid{weekStart: weekStart}
}

// WeekStart returns the weekday of column 0.
func (g Grid) WeekStart() time.Weekday {
	return g.weekStart
}

// WeekdayIndex is the column of date, 0 being the configured week start.
func (g Grid) WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) - int(g.weekStart) + 7) % 7
}

// Weekdays lists the column weekdays in display order.
func (g Grid) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(g.weekStart) + i) % 7)
	}
	return days
}

// WeekGrid returns the 7 consecutive dates of the week containing anchor,
// each at local noon. Every day of one week yields the same grid.
func (g Grid) WeekGrid(anchor time.Time) []time.Time {
	y, m, d := anchor.Date()
	d -= g.WeekdayIndex(anchor)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = noon(y, m, d+i, anchor.Location())
	}
	return dates
}

// MonthGrid returns the leading padding for anchor's month followed by one
// cell per day. The tail is not padded to a full week.
func (g Grid) MonthGrid(anchor time.Time) []Cell {
	y, m, _ := anchor.Date()
	first := noon(y, m, 1, anchor.Location())
	offset := g.WeekdayIndex(first)
	days := DaysInMonth(y, m)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Date: noon(y, m, d, anchor.Location())})
	}
	return cells
}

// DaysInMonth is day 0 of the following month, i.e. the last day of month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// noon builds a grid date. Some zones skip midnight on DST days, so cells sit
// at 12:00 where every calendar day exists.
func noon(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}
