package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/weekcal/internal/calendar"
	"github.com/lululau/weekcal/internal/textwidth"
)

const (
	cellPadding         = 1
	monthEventRows      = 2
	minMonthColumnWidth = 8
	minWeekColumnWidth  = 12
	maxWeekColumnWidth  = 24
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FEC260"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5B4FC"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	todayStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	tableWrapperStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#475569")).
				Padding(0, 1)
	columnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("#475569")).
			PaddingRight(1)
)

// typeColors maps known event tags to an accent. Other tags render neutral.
var typeColors = map[string]lipgloss.Color{
	"meeting":  lipgloss.Color("#3B82F6"),
	"deadline": lipgloss.Color("#EF4444"),
	"review":   lipgloss.Color("#22C55E"),
	"social":   lipgloss.Color("#EAB308"),
}

// TypeStyle returns the accent style for an event tag.
func TypeStyle(tag string) lipgloss.Style {
	if noColorMode {
		return lipgloss.NewStyle()
	}
	if c, ok := typeColors[strings.ToLower(tag)]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
}

func style(s lipgloss.Style) lipgloss.Style {
	if noColorMode {
		return lipgloss.NewStyle()
	}
	return s
}

// Block packages rendered lines with their visual width/height.
type Block struct {
	Lines  []string
	Width  int
	Height int
}

// String joins the block lines.
func (b Block) String() string {
	return strings.Join(b.Lines, "\n")
}

// Build renders a view. width is the available terminal width and only
// affects the week layout.
func Build(view calendar.View, width int) Block {
	var body string
	if view.Mode == calendar.ModeMonth {
		body = buildMonthTable(view)
	} else {
		body = buildWeekColumns(view, width)
	}

	lines := append([]string{style(titleStyle).Render(view.Title), ""}, strings.Split(body, "\n")...)
	w := 0
	for _, line := range lines {
		w = max(w, textwidth.StringWidth(line))
	}
	return Block{Lines: lines, Width: w, Height: len(lines)}
}

// DayLabel is the day-of-month as shown in a cell. Today is bracketed so it
// stays visible without colour.
func DayLabel(day calendar.Day) string {
	if day.Empty {
		return ""
	}
	if day.IsToday {
		return fmt.Sprintf("[%d]", day.Date.Day())
	}
	return fmt.Sprintf("%2d", day.Date.Day())
}

// TimeRange renders "HH:MM-HH:MM", or "all day" when no start is known.
func TimeRange(ev calendar.Event) string {
	switch {
	case ev.StartTime == "":
		return "all day"
	case ev.EndTime == "":
		return ev.StartTime
	default:
		return ev.StartTime + "-" + ev.EndTime
	}
}

func buildMonthTable(view calendar.View) string {
	colWidth := monthColumnWidth(view) + cellPadding*2
	columns := make([]table.Column, len(view.Weekdays))
	for i, title := range view.Weekdays {
		columns[i] = table.Column{Title: title, Width: colWidth}
	}

	showLunar := false
	for _, day := range view.Days {
		if day.HasLunarData() {
			showLunar = true
			break
		}
	}

	var today string
	weeks := view.Rows()
	rows := make([]table.Row, 0, len(weeks)*(3+monthEventRows)+1)
	rows = append(rows, blankRow(len(columns)))
	for weekIdx, week := range weeks {
		numbers := blankRow(len(columns))
		lunar := blankRow(len(columns))
		evRows := make([]table.Row, monthEventRows)
		for i := range evRows {
			evRows[i] = blankRow(len(columns))
		}
		for col, day := range week {
			if day.Empty {
				continue
			}
			numbers[col] = DayLabel(day)
			if day.IsToday {
				today = numbers[col]
			}
			lunar[col] = day.SecondaryLabel()
			for i, line := range monthEventLines(day.Events, colWidth-cellPadding*2) {
				evRows[i][col] = line
			}
		}
		rows = append(rows, numbers)
		if showLunar {
			rows = append(rows, lunar)
		}
		for _, r := range evRows {
			if !isBlank(r) {
				rows = append(rows, r)
			}
		}
		if weekIdx != len(weeks)-1 {
			rows = append(rows, blankRow(len(columns)))
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)
	t.SetStyles(tableStyles())
	t.Blur()

	out := strings.TrimRight(t.View(), "\n")
	if !noColorMode {
		out = tableWrapperStyle.Render(out)
	}
	// Colours are applied after the table is laid out; bubbles/table measures
	// raw bytes and would miscount escape sequences.
	return highlightToday(out, today)
}

func monthEventLines(evs []calendar.Event, width int) []string {
	if len(evs) == 0 {
		return nil
	}
	lines := make([]string, 0, monthEventRows)
	for i, ev := range evs {
		if i == monthEventRows-1 && len(evs) > monthEventRows {
			lines = append(lines, textwidth.Truncate(fmt.Sprintf("+%d more", len(evs)-i), width))
			break
		}
		lines = append(lines, textwidth.Truncate(ev.Title, width))
	}
	return lines
}

func monthColumnWidth(view calendar.View) int {
	width := minMonthColumnWidth
	for _, title := range view.Weekdays {
		width = max(width, textwidth.StringWidth(title))
	}
	for _, day := range view.Days {
		width = max(width, textwidth.StringWidth(DayLabel(day)))
		width = max(width, textwidth.StringWidth(day.SecondaryLabel()))
	}
	return width
}

func highlightToday(output, label string) string {
	if noColorMode || label == "" {
		return output
	}
	re := regexp.MustCompile(regexp.QuoteMeta(label))
	return re.ReplaceAllStringFunc(output, func(m string) string {
		return todayStyle.Render(m)
	})
}

func blankRow(cols int) table.Row {
	return make(table.Row, cols)
}

func isBlank(row table.Row) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	if noColorMode {
		styles.Header = lipgloss.NewStyle().Padding(0, 1)
	} else {
		styles.Header = headerStyle.Copy().Padding(0, 1)
	}
	styles.Selected = lipgloss.NewStyle()
	styles.Cell = lipgloss.NewStyle().Padding(0, cellPadding)
	return styles
}

// WeekColumnWidth derives the per-day width from the terminal width.
func WeekColumnWidth(termWidth int) int {
	if termWidth <= 0 {
		termWidth = 100
	}
	// Each column spends two cells on its border and padding.
	return min(max(termWidth/7-2, minWeekColumnWidth), maxWeekColumnWidth)
}

func buildWeekColumns(view calendar.View, termWidth int) string {
	colWidth := WeekColumnWidth(termWidth)
	cols := make([]string, 0, len(view.Days))
	for i, day := range view.Days {
		header := fmt.Sprintf("%s %s", view.Weekdays[i%len(view.Weekdays)], strings.TrimSpace(DayLabel(day)))
		var lines []string
		switch {
		case day.IsToday:
			lines = append(lines, style(todayStyle).Render(header))
		case !day.InMonth:
			lines = append(lines, style(dimStyle).Render(header))
		default:
			lines = append(lines, style(headerStyle).Render(header))
		}
		if day.HasLunarData() {
			lines = append(lines, style(dimStyle).Render(day.SecondaryLabel()))
		}
		lines = append(lines, strings.Repeat("─", colWidth))
		if len(day.Events) == 0 {
			lines = append(lines, style(dimStyle).Render("-"))
		}
		for _, ev := range day.Events {
			lines = append(lines,
				style(dimStyle).Render(textwidth.Truncate(TimeRange(ev), colWidth)),
				TypeStyle(ev.Type).Bold(!noColorMode).Render(textwidth.Truncate(ev.Title, colWidth)),
			)
			if ev.Type != "" {
				lines = append(lines, style(dimStyle).Render(textwidth.Truncate("#"+ev.Type, colWidth)))
			}
			lines = append(lines, "")
		}
		cols = append(cols, columnStyle.Width(colWidth+1).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// HelpLine describes the interactive key bindings.
func HelpLine() string {
	helpText := "h/[ prev  l/] next  w week  m month  tab toggle  . today  g go to date  a add event  q quit"
	if noColorMode {
		return helpText
	}
	return helpStyle.Render(helpText)
}
