package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/lululau/weekcal/internal/calendar"
)

// PlainOptions controls how the non-interactive renderer behaves.
type PlainOptions struct {
	Writer  io.Writer
	Service *calendar.Service
	Clock   *calendar.Clock
	Width   int
	// Notice is printed under the grid when non-empty.
	Notice string
}

// RunPlain renders the clock's current view exactly once.
func RunPlain(opts PlainOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Service == nil {
		opts.Service = calendar.NewService()
	}
	if opts.Clock == nil {
		opts.Clock = opts.Service.NewClock()
	}
	width := opts.Width
	if width == 0 {
		width = DetectWidth()
	}

	block := Build(opts.Service.View(opts.Clock), width)
	if _, err := fmt.Fprintln(opts.Writer, block.String()); err != nil {
		return err
	}
	if opts.Notice != "" {
		if _, err := fmt.Fprintln(opts.Writer, "\n"+Notice(opts.Notice)); err != nil {
			return err
		}
	}
	return nil
}

// Notice styles a secondary message such as the event source.
func Notice(msg string) string {
	if noColorMode {
		return msg
	}
	return dimStyle.Render(msg)
}

// DetectWidth tries to determine the terminal width, falling back to 100 cols.
func DetectWidth() int {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) {
		if w, _, err := term.GetSize(int(fd)); err == nil {
			return w
		}
	}
	return 100
}
