package calendar

import (
	"time"

	calendarlib "github.com/Lofanmi/chinese-calendar-golang/calendar"
)

// Gregorian year range supported by the lunar calendar library. Days outside
// it are still laid out, just without lunar labels.
const (
	MinLunarYear = 1900
	MaxLunarYear = 3000
)

// Day is a grid cell enriched for presentation.
type Day struct {
	Date            time.Time
	Empty           bool
	InMonth         bool
	IsToday         bool
	Events          []Event
	LunarDayAlias   string
	LunarMonthAlias string
	SolarTerm       string
	hasLunarData    bool
}

// SecondaryLabel selects the string that should be rendered beneath the
// Gregorian date. Solar terms take precedence, followed by lunar month names
// whenever it is the first day of a lunar month.
func (d Day) SecondaryLabel() string {
	if d.SolarTerm != "" {
		return d.SolarTerm
	}
	if d.LunarDayAlias == "初一" && d.LunarMonthAlias != "" {
		return d.LunarMonthAlias
	}
	return d.LunarDayAlias
}

// HasLunarData reports whether lunar metadata was successfully calculated.
func (d Day) HasLunarData() bool {
	return d.hasLunarData
}

// View is everything the presentation layer needs for one frame.
type View struct {
	Mode     ViewMode
	Anchor   time.Time
	Title    string
	Weekdays []string
	Days     []Day
}

// Rows splits Days into rows of seven. The last month row may be shorter.
func (v View) Rows() [][]Day {
	rows := make([][]Day, 0, (len(v.Days)+6)/7)
	for i := 0; i < len(v.Days); i += 7 {
		end := min(i+7, len(v.Days))
		rows = append(rows, v.Days[i:end])
	}
	return rows
}

// EventCount is the number of events placed on the view.
func (v View) EventCount() int {
	n := 0
	for _, d := range v.Days {
		n += len(d.Events)
	}
	return n
}

// Service materialises week/month views from a Clock.
type Service struct {
	now       func() time.Time
	grid      Grid
	formatter Formatter
	index     *Index
	lunar     bool
}

// Option configures the Service.
type Option func(*Service)

// WithNow overrides the clock, which is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithEvents sets the static event list.
func WithEvents(events []Event) Option {
	return func(s *Service) {
		s.index = NewIndex(events)
	}
}

// WithWeekStart sets the weekday of the first column.
func WithWeekStart(day time.Weekday) Option {
	return func(s *Service) {
		s.grid = NewGrid(day)
	}
}

// WithNames sets the weekday/month label source.
func WithNames(names Names) Option {
	return func(s *Service) {
		s.formatter = NewFormatter(names)
	}
}

// WithLunar toggles lunar labels on day cells.
func WithLunar(enabled bool) Option {
	return func(s *Service) {
		s.lunar = enabled
	}
}

// NewService constructs a Service with Sunday-first columns, English labels,
// no events and lunar labels enabled.
func NewService(opts ...Option) *Service {
	s := &Service{
		now:       time.Now,
		grid:      NewGrid(time.Sunday),
		formatter: NewFormatter(English),
		index:     NewIndex(nil),
		lunar:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClock returns a Clock sharing the service's notion of now.
func (s *Service) NewClock() *Clock {
	return NewClock(s.now)
}

// Grid exposes the grid builder.
func (s *Service) Grid() Grid {
	return s.grid
}

// Index exposes the event index.
func (s *Service) Index() *Index {
	return s.index
}

// Formatter exposes the label formatter.
func (s *Service) Formatter() Formatter {
	return s.formatter
}

// View builds the frame for the clock's current anchor and mode. It does not
// mutate the clock.
func (s *Service) View(c *Clock) View {
	anchor := c.Anchor()
	mode := c.Mode()
	oracle := NewOracle(s.now)

	var cells []Cell
	if mode == ModeMonth {
		cells = s.grid.MonthGrid(anchor)
	} else {
		for _, d := range s.grid.WeekGrid(anchor) {
			cells = append(cells, Cell{Date: d})
		}
	}

	days := make([]Day, len(cells))
	for i, cell := range cells {
		days[i] = s.buildDay(cell, anchor.Month(), oracle)
	}

	weekdays := make([]string, 0, 7)
	for _, wd := range s.grid.Weekdays() {
		weekdays = append(weekdays, s.formatter.labels().WeekdayShort(wd))
	}

	return View{
		Mode:     mode,
		Anchor:   anchor,
		Title:    s.formatter.Title(anchor),
		Weekdays: weekdays,
		Days:     days,
	}
}

func (s *Service) buildDay(cell Cell, currentMonth time.Month, oracle Oracle) Day {
	if cell.Empty {
		return Day{Empty: true}
	}
	day := cell.Date
	out := Day{
		Date:    day,
		InMonth: day.Month() == currentMonth,
		IsToday: oracle.IsToday(day),
		Events:  s.index.EventsOn(day),
	}
	if !s.lunar || day.Year() < MinLunarYear || day.Year() > MaxLunarYear {
		return out
	}

	cal := calendarlib.BySolar(
		int64(day.Year()),
		int64(day.Month()),
		int64(day.Day()),
		12, 0, 0,
	)
	out.LunarDayAlias = cal.Lunar.DayAlias()
	out.LunarMonthAlias = cal.Lunar.MonthAlias()
	out.hasLunarData = true
	if solarterm := cal.Solar.CurrentSolarterm; solarterm != nil {
		if solarterm.IsInDay(&day) {
			out.SolarTerm = solarterm.Alias()
		}
	}
	return out
}
