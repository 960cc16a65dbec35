// Package canvas composes placed blocks into a fixed-size terminal frame.
package canvas

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Block is a rendered piece of text anchored at a cell.
type Block struct {
	X, Y int
	View string
}

type segment struct {
	x    int
	text string
}

// Compose draws blocks into a width x height frame. Blocks are expected not
// to overlap; where they do, the later block starts after the earlier one.
// Content past the frame edges is cut. Every output line is padded to width.
func Compose(width, height int, blocks []Block) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	rows := make([][]segment, height)
	for _, b := range blocks {
		for i, line := range strings.Split(b.View, "\n") {
			y := b.Y + i
			if y < 0 || y >= height {
				continue
			}
			rows[y] = append(rows[y], segment{x: b.X, text: line})
		}
	}

	out := make([]string, height)
	for y, segs := range rows {
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].x < segs[j].x })
		var b strings.Builder
		cursor := 0
		for _, seg := range segs {
			if seg.x > cursor {
				b.WriteString(strings.Repeat(" ", seg.x-cursor))
				cursor = seg.x
			}
			b.WriteString(seg.text)
			cursor += lipgloss.Width(seg.text)
			if cursor >= width {
				break
			}
		}
		out[y] = fit(b.String(), width)
	}
	return strings.Join(out, "\n")
}

// fit truncates or pads line to exactly width cells.
func fit(line string, width int) string {
	if lipgloss.Width(line) > width {
		line = ansi.Truncate(line, width, "")
	}
	if gap := width - lipgloss.Width(line); gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return line
}

// Truncate fits s to width, marking cut text with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(s, width-1, "") + "…"
}
