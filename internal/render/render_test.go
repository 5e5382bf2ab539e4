package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lululau/weekcal/internal/calendar"
)

var sample = []calendar.Event{
	{ID: 1, Title: "Team Meeting", Date: "2025-05-10", StartTime: "10:00", EndTime: "11:00", Type: "meeting"},
	{ID: 2, Title: "Project Deadline", Date: "2025-05-10", StartTime: "14:00", EndTime: "16:00", Type: "deadline"},
	{ID: 3, Title: "Bake Off", Date: "2025-05-10", StartTime: "17:00", EndTime: "18:00", Type: "party"},
	{ID: 4, Title: "Code Review", Date: "2025-05-15", StartTime: "09:00", EndTime: "10:00", Type: "review"},
}

func newFixture(t *testing.T, mode calendar.ViewMode) (*calendar.Service, *calendar.Clock) {
	t.Helper()
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
	now := time.Date(2025, 5, 8, 9, 0, 0, 0, time.Local)
	svc := calendar.NewService(
		calendar.WithNow(func() time.Time { return now }),
		calendar.WithEvents(sample),
		calendar.WithLunar(false),
	)
	clock := svc.NewClock()
	clock.SetViewMode(mode)
	return svc, clock
}

func TestWeekBlockListsEvents(t *testing.T) {
	svc, clock := newFixture(t, calendar.ModeWeek)
	out := Build(svc.View(clock), 140).String()

	assert.Contains(t, out, "May 2025")
	assert.Contains(t, out, "Thu [8]")
	assert.Contains(t, out, "10:00-11:00")
	assert.Contains(t, out, "Team Meeting")
	assert.Contains(t, out, "#deadline")
	assert.Contains(t, out, "#party")
	assert.NotContains(t, out, "Code Review")
	assert.Less(t, strings.Index(out, "Team Meeting"), strings.Index(out, "Project"))
}

func TestMonthBlockSummarisesBusyDays(t *testing.T) {
	svc, clock := newFixture(t, calendar.ModeMonth)
	block := Build(svc.View(clock), 120)
	out := block.String()

	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "[8]")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "+2")
	assert.Contains(t, out, "Code")
	assert.Equal(t, len(block.Lines), block.Height)
	assert.Positive(t, block.Width)
}

func TestMonthBlockContainsLunarLabels(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
	svc := calendar.NewService(calendar.WithNow(func() time.Time {
		return time.Date(2025, 11, 18, 0, 0, 0, 0, time.Local)
	}))
	clock := svc.NewClock()
	clock.SetViewMode(calendar.ModeMonth)
	out := Build(svc.View(clock), 120).String()
	if !strings.Contains(out, "初") && !strings.Contains(out, "廿") {
		t.Fatalf("expected lunar labels in layout, got:\n%s", out)
	}
}

func TestMonthEventLines(t *testing.T) {
	assert.Nil(t, monthEventLines(nil, 10))
	assert.Equal(t, []string{"Team Mee…"}, monthEventLines(sample[:1], 10))
	lines := monthEventLines(sample[:3], 10)
	require.Len(t, lines, 2)
	assert.Equal(t, "+2 more", lines[1])
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "10:00-11:00", TimeRange(sample[0]))
	assert.Equal(t, "all day", TimeRange(calendar.Event{}))
	assert.Equal(t, "09:00", TimeRange(calendar.Event{StartTime: "09:00"}))
}

func TestWeekColumnWidth(t *testing.T) {
	assert.Equal(t, minWeekColumnWidth, WeekColumnWidth(40))
	assert.Equal(t, maxWeekColumnWidth, WeekColumnWidth(400))
	assert.Equal(t, 12, WeekColumnWidth(0))
}

func TestTypeStyleToleratesUnknownTags(t *testing.T) {
	assert.NotPanics(t, func() { TypeStyle("made-up").Render("x") })
}

func TestRunPlain(t *testing.T) {
	svc, clock := newFixture(t, calendar.ModeWeek)
	var buf bytes.Buffer
	require.NoError(t, RunPlain(PlainOptions{
		Writer:  &buf,
		Service: svc,
		Clock:   clock,
		Width:   120,
		Notice:  "events: fixture",
	}))
	assert.Contains(t, buf.String(), "Team Meeting")
	assert.Contains(t, buf.String(), "events: fixture")
}
