// Package components provides the ANSI-aware text primitives used to lay
// out widget cards. Widths are terminal cells, so Hangul syllables and
// emoji count as two.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis is appended to text cut short by TruncateWithTail and FitLines.
const Ellipsis = "…"

// VisibleLen returns the visible width of s in terminal cells, ignoring
// ANSI escape sequences.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "")
}

// TruncateWithTail cuts s to at most maxWidth cells, ending with tail when
// anything was removed. The tail counts toward maxWidth.
func TruncateWithTail(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadCenter centers s within width. An odd remainder goes on the right.
func PadCenter(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	total := width - vis
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// Wrap word-wraps s at width cells. Words longer than width are broken.
// Existing newlines are kept.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	wrapped := ansi.Wrap(s, width, "")
	return strings.Split(wrapped, "\n")
}

// FitLines wraps s to width and keeps at most maxLines lines. When text is
// dropped, the last kept line ends with an ellipsis.
func FitLines(s string, width, maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	lines := Wrap(s, width)
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := strings.TrimRight(lines[maxLines-1], " ")
	if VisibleLen(last)+VisibleLen(Ellipsis) > width {
		last = Truncate(last, width-VisibleLen(Ellipsis))
	}
	lines[maxLines-1] = last + Ellipsis
	return lines
}
