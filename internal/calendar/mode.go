package calendar

import (
	"fmt"
	"strings"
)

// ViewMode indicates whether we display a single week or a whole month.
type ViewMode int

const (
	ModeWeek ViewMode = iota
	ModeMonth
)

func (m ViewMode) String() string {
	switch m {
	case ModeWeek:
		return "week"
	case ModeMonth:
		return "month"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(m))
	}
}

// Valid reports whether m is one of the enumerated modes.
func (m ViewMode) Valid() bool {
	return m == ModeWeek || m == ModeMonth
}

// ParseViewMode accepts "week" or "month" in any case.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "w":
		return ModeWeek, nil
	case "month", "m":
		return ModeMonth, nil
	default:
		return ModeWeek, fmt.Errorf("unknown view mode %q (want week or month)", s)
	}
}

// Direction is the navigation step sign.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)
