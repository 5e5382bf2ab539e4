package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lululau/weekcal/internal/calendar"
	"github.com/lululau/weekcal/internal/render"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	SetNoColor(true)
	render.SetNoColor(true)
	t.Cleanup(func() {
		SetNoColor(false)
		render.SetNoColor(false)
	})
	now := time.Date(2025, 1, 31, 9, 0, 0, 0, time.Local)
	svc := calendar.NewService(
		calendar.WithNow(func() time.Time { return now }),
		calendar.WithEvents([]calendar.Event{{ID: 1, Title: "Month End", Date: "2025-01-31", Type: "deadline"}}),
		calendar.WithLunar(false),
	)
	return newModel(svc, svc.NewClock(), "events: test")
}

func press(t *testing.T, m model, keys ...tea.KeyMsg) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNavigationKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("l"))
	assert.Equal(t, "2025-02-07", calendar.CanonicalKey(m.clock.Anchor()))
	m = press(t, m, runes("h"), runes("h"))
	assert.Equal(t, "2025-01-24", calendar.CanonicalKey(m.clock.Anchor()))

	m = press(t, m, runes("."), runes("m"))
	assert.Equal(t, calendar.ModeMonth, m.clock.Mode())
	m = press(t, m, runes("]"))
	assert.Equal(t, "2025-02-28", calendar.CanonicalKey(m.clock.Anchor()))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, calendar.ModeWeek, m.clock.Mode())
	m = press(t, m, runes("w"))
	assert.Equal(t, calendar.ModeWeek, m.clock.Mode())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestJumpToDate(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("g"))
	assert.Equal(t, inputDate, m.inputMode)
	assert.Contains(t, m.View(), "Go to date")

	m = press(t, m, runes("nope"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, inputDate, m.inputMode)
	assert.Contains(t, m.View(), "expected YYYY-MM-DD")

	m.input.SetValue("2024-02-29")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, inputNone, m.inputMode)
	assert.Equal(t, "2024-02-29", calendar.CanonicalKey(m.clock.Anchor()))

	m = press(t, m, runes("g"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, inputNone, m.inputMode)
}

func TestAddEventIsReportedAsUnavailable(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("a"))
	assert.Contains(t, m.View(), addEventUnavailable)
	m = press(t, m, runes("l"))
	assert.NotContains(t, m.View(), addEventUnavailable)
}

func TestViewShowsEventsAndNotice(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(model)
	out := m.View()
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "Month End")
	assert.Contains(t, out, "events: test")
}

func TestParseJump(t *testing.T) {
	d, ok := parseJump(" 2025-05 ")
	require.True(t, ok)
	assert.Equal(t, "2025-05-01", calendar.CanonicalKey(d))
	assert.Equal(t, 12, d.Hour())
	_, ok = parseJump("2025-13-01")
	assert.False(t, ok)
}
