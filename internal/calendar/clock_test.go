package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewClockDefaults(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 30, 0, 0, time.Local)
	c := NewClock(fixedNow(now))
	assert.Equal(t, now, c.Anchor())
	assert.Equal(t, ModeWeek, c.Mode())
}

func TestSetViewModeKeepsAnchor(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 30, 0, 0, time.Local)
	c := NewClock(fixedNow(now))
	c.SetViewMode(ModeMonth)
	assert.Equal(t, ModeMonth, c.Mode())
	assert.Equal(t, now, c.Anchor())

	c.SetViewMode(ViewMode(42))
	assert.Equal(t, ModeMonth, c.Mode())

	c.Toggle()
	assert.Equal(t, ModeWeek, c.Mode())
	assert.Equal(t, now, c.Anchor())
}

func TestNavigateWeek(t *testing.T) {
	start := time.Date(2025, 12, 29, 0, 0, 0, 0, time.Local)
	c := NewClock(fixedNow(start))
	c.Next()
	assert.Equal(t, "2026-01-05", CanonicalKey(c.Anchor()))
	c.Prev()
	c.Prev()
	assert.Equal(t, "2025-12-22", CanonicalKey(c.Anchor()))
}

func TestNavigateWeekRoundTrip(t *testing.T) {
	d := time.Date(2024, 1, 1, 15, 0, 0, 0, time.Local)
	for i := 0; i < 400; i++ {
		c := NewClock(fixedNow(d))
		c.Next()
		c.Prev()
		assert.Equal(t, CanonicalKey(d), CanonicalKey(c.Anchor()))
		d = d.AddDate(0, 0, 1)
	}
}

func TestNavigateMonthClamps(t *testing.T) {
	tests := []struct {
		name  string
		start string
		dir   Direction
		want  string
	}{
		{"jan 31 forward", "2025-01-31", Next, "2025-02-28"},
		{"jan 31 forward leap", "2024-01-31", Next, "2024-02-29"},
		{"mar 31 back", "2025-03-31", Prev, "2025-02-28"},
		{"may 31 forward", "2025-05-31", Next, "2025-06-30"},
		{"keeps day", "2025-05-10", Next, "2025-06-10"},
		{"year rollover forward", "2025-12-15", Next, "2026-01-15"},
		{"year rollover back", "2025-01-15", Prev, "2024-12-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseKey(tt.start)
			assert.NoError(t, err)
			c := NewClock(fixedNow(start))
			c.SetViewMode(ModeMonth)
			c.Navigate(tt.dir)
			assert.Equal(t, tt.want, CanonicalKey(c.Anchor()))
		})
	}
}

func TestNavigateMonthRoundTripKeepsMonth(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.Local)
	c := NewClock(fixedNow(start))
	c.SetViewMode(ModeMonth)
	c.Next()
	assert.Equal(t, "2025-02-28", CanonicalKey(c.Anchor()))
	c.Prev()
	// Clamping is not invertible: the month is restored, the day is not.
	assert.Equal(t, "2025-01-28", CanonicalKey(c.Anchor()))
}

func TestTodayAndJump(t *testing.T) {
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local)
	c := NewClock(fixedNow(now))
	c.SetViewMode(ModeMonth)
	c.Next()
	c.Next()
	c.Today()
	assert.Equal(t, now, c.Anchor())
	assert.Equal(t, ModeMonth, c.Mode())

	target := time.Date(1999, 12, 31, 0, 0, 0, 0, time.Local)
	c.Jump(target)
	assert.Equal(t, target, c.Anchor())
	c.Jump(time.Time{})
	assert.Equal(t, target, c.Anchor())
}

func TestAddMonthsKeepsClock(t *testing.T) {
	d := time.Date(2025, 3, 31, 13, 45, 10, 0, time.Local)
	got := AddMonths(d, -1)
	assert.Equal(t, time.Date(2025, 2, 28, 13, 45, 10, 0, time.Local), got)
	assert.Equal(t, time.Date(2026, 3, 31, 13, 45, 10, 0, time.Local), AddMonths(d, 12))
}

func TestParseViewMode(t *testing.T) {
	m, err := ParseViewMode("Month")
	assert.NoError(t, err)
	assert.Equal(t, ModeMonth, m)
	m, err = ParseViewMode("week")
	assert.NoError(t, err)
	assert.Equal(t, ModeWeek, m)
	_, err = ParseViewMode("year")
	assert.Error(t, err)
	assert.Equal(t, "month", ModeMonth.String())
}
