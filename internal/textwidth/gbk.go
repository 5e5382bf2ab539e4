package textwidth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const ellipsis = "…"

// columns measures runes by their GBK byte length, which is 1 for ASCII and
// 2 for CJK. Runes GBK cannot encode count as 2 unless they are ASCII.
type columns struct {
	enc *encoding.Encoder
	buf [utf8.UTFMax]byte
}

func newColumns() *columns {
	return &columns{enc: simplifiedchinese.GBK.NewEncoder()}
}

func (c *columns) rune(r rune) int {
	switch {
	case r == '\r':
		return 0
	case r <= unicode.MaxASCII:
		return 1
	}
	n := utf8.EncodeRune(c.buf[:], r)
	encoded, err := c.enc.Bytes(c.buf[:n])
	if err != nil || len(encoded) == 0 {
		return 2
	}
	return len(encoded)
}

func (c *columns) line(s string) int {
	width := 0
	for _, r := range ansiRegexp.ReplaceAllString(s, "") {
		width += c.rune(r)
	}
	return width
}

// StringWidth returns the widest line of s in monospace columns.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	c := newColumns()
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		widest = max(widest, c.line(line))
	}
	return widest
}

// PadRight appends ASCII spaces until the rendered width matches target.
func PadRight(s string, width int) string {
	diff := width - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return s + strings.Repeat(" ", diff)
}

// Truncate cuts s to at most width columns, ending in an ellipsis when
// shortened. ANSI escapes are dropped from truncated output.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(s) <= width {
		return s
	}
	c := newColumns()
	limit := width - c.line(ellipsis)
	var sb strings.Builder
	used := 0
	for _, r := range ansiRegexp.ReplaceAllString(s, "") {
		w := c.rune(r)
		if used+w > limit {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	sb.WriteString(ellipsis)
	return sb.String()
}
