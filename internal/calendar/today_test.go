package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTodayRealClock(t *testing.T) {
	o := NewOracle(nil)
	now := time.Now()
	// Skip the narrow window where the test straddles midnight.
	if now.Add(time.Second).Day() != now.Day() {
		t.Skip("too close to midnight")
	}
	assert.True(t, o.IsToday(now))
	assert.False(t, o.IsToday(now.AddDate(0, 0, 1)))
	assert.False(t, o.IsToday(now.AddDate(0, 0, -1)))
}

func TestIsTodayReevaluatesClock(t *testing.T) {
	current := time.Date(2025, 5, 10, 23, 59, 0, 0, time.Local)
	o := NewOracle(func() time.Time { return current })
	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.Local)
	assert.True(t, o.IsToday(day))

	current = current.Add(2 * time.Minute)
	assert.False(t, o.IsToday(day))
	assert.True(t, o.IsToday(day.AddDate(0, 0, 1)))
}

func TestIsTodayComparesAllFields(t *testing.T) {
	o := NewOracle(fixedNow(time.Date(2025, 5, 10, 8, 0, 0, 0, time.Local)))
	assert.False(t, o.IsToday(time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)))
	assert.False(t, o.IsToday(time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)))
	var zero Oracle
	assert.False(t, zero.IsToday(time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)))
}
