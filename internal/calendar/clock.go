package calendar

import "time"

// Clock is the mutable view state: the anchor date and the view mode. It is
// owned by the presentation layer and is only changed through navigation and
// mode switches.
type Clock struct {
	now    func() time.Time
	anchor time.Time
	mode   ViewMode
}

// NewClock starts a week view anchored on now(). A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now:    now,
		anchor: now(),
		mode:   ModeWeek,
	}
}

// Anchor returns the reference date of the current grid.
func (c *Clock) Anchor() time.Time {
	return c.anchor
}

// Mode returns the current view mode.
func (c *Clock) Mode() ViewMode {
	return c.mode
}

// SetViewMode switches granularity without touching the anchor. Values other
// than ModeWeek and ModeMonth are ignored.
func (c *Clock) SetViewMode(mode ViewMode) {
	if !mode.Valid() {
		return
	}
	c.mode = mode
}

// Toggle flips between week and month view.
func (c *Clock) Toggle() {
	if c.mode == ModeWeek {
		c.mode = ModeMonth
		return
	}
	c.mode = ModeWeek
}

// Navigate moves the anchor one week or one calendar month.
func (c *Clock) Navigate(dir Direction) {
	step := 1
	if dir < 0 {
		step = -1
	}
	switch c.mode {
	case ModeMonth:
		c.anchor = AddMonths(c.anchor, step)
	default:
		c.anchor = c.anchor.AddDate(0, 0, 7*step)
	}
}

// Next is Navigate(Next).
func (c *Clock) Next() { c.Navigate(Next) }

// Prev is Navigate(Prev).
func (c *Clock) Prev() { c.Navigate(Prev) }

// Today moves the anchor back to the current moment, keeping the mode.
func (c *Clock) Today() {
	c.anchor = c.now()
}

// Jump anchors the view on an arbitrary date. A zero time is ignored so the
// anchor is never left unset.
func (c *Clock) Jump(date time.Time) {
	if date.IsZero() {
		return
	}
	c.anchor = date
}

// AddMonths shifts t by n calendar months. When the target month is shorter
// than t's day-of-month the result is clamped to the target's last day, so
// Jan 31 + 1 month is Feb 28 (or 29), never Mar 3. The time of day is kept.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}
