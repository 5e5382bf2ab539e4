package calendar

import "time"

// Oracle decides whether a date is the current real-world day. now() is
// consulted on every call, so a long-running view rolls over at midnight.
type Oracle struct {
	now func() time.Time
}

// NewOracle uses time.Now when now is nil.
func NewOracle(now func() time.Time) Oracle {
	if now == nil {
		now = time.Now
	}
	return Oracle{now: now}
}

// IsToday compares year, month and day with now().
func (o Oracle) IsToday(date time.Time) bool {
	now := time.Now
	if o.now != nil {
		now = o.now
	}
	return sameDay(date, now())
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
