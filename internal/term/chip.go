// Package term renders scene chips as terminal blocks and exposes them to the
// flow engine. Sizes are in terminal cells: one column per cell horizontally
// and one row per line vertically.
package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	rw "github.com/mattn/go-runewidth"

	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/scene"
)

var (
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	framedChip    = chipStyle.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	weightedFrame = framedChip.Copy().BorderForeground(lipgloss.Color("62"))
)

// Chip is a block of wrapped text. It implements flow.Measurable.
type Chip struct {
	data  flow.ParentData
	text  string
	style lipgloss.Style

	// set by PlaceAt
	x, y   int
	block  string
	placed bool
}

// NewChip builds a chip from its scene description. The chip's alignment
// must already be valid; scene.Validate guarantees that.
func NewChip(c scene.Chip) *Chip {
	align, _ := flow.ParseCrossAlignment(c.Align)

	style := chipStyle
	if c.Framed() {
		style = framedChip
		if c.Weight > 0 {
			style = weightedFrame
		}
	}
	style = style.Copy().Padding(0, c.Padding)
	if c.Color != "" {
		style = style.Foreground(lipgloss.Color(c.Color))
	}

	return &Chip{
		data: flow.ParentData{
			Key:    c.Key,
			Weight: c.Weight,
			Fill:   c.Fill,
			Align:  align,
		},
		text:  strings.TrimSpace(c.Text),
		style: style,
	}
}

// NewChips converts every chip of s.
func NewChips(s scene.Scene) []*Chip {
	chips := make([]*Chip, len(s.Chips))
	for i, c := range s.Chips {
		chips[i] = NewChip(c)
	}
	return chips
}

// Measurables adapts chips for flow.Policy.
func Measurables(chips []*Chip) []flow.Measurable {
	out := make([]flow.Measurable, len(chips))
	for i, c := range chips {
		out[i] = c
	}
	return out
}

func (c *Chip) frameWidth() int  { return c.style.GetHorizontalFrameSize() }
func (c *Chip) frameHeight() int { return c.style.GetVerticalFrameSize() }

// longestWord is the widest unbreakable run of the text.
func (c *Chip) longestWord() int {
	widest := 0
	for _, word := range strings.Fields(c.text) {
		widest = max(widest, rw.StringWidth(word))
	}
	return widest
}

// naturalWidth is the text width without any wrapping.
func (c *Chip) naturalWidth() int {
	return lipgloss.Width(c.text)
}

// MinIntrinsicWidth is the longest word plus the frame.
func (c *Chip) MinIntrinsicWidth(int) int {
	return c.longestWord() + c.frameWidth()
}

// MaxIntrinsicWidth is the unwrapped text plus the frame.
func (c *Chip) MaxIntrinsicWidth(int) int {
	return c.naturalWidth() + c.frameWidth()
}

// MinIntrinsicHeight is the height of the text wrapped to width.
func (c *Chip) MinIntrinsicHeight(width int) int {
	return c.heightAt(width)
}

// MaxIntrinsicHeight equals MinIntrinsicHeight; text has one height per width.
func (c *Chip) MaxIntrinsicHeight(width int) int {
	return c.heightAt(width)
}

func (c *Chip) ParentData() flow.ParentData { return c.data }

// Measure wraps the text to the widest width c allows, up to its natural
// width, then grows to c's minimums. The block may exceed c.MaxWidth when a
// single word does not fit; the canvas truncates it.
func (c *Chip) Measure(cs flow.Constraints) flow.Placeable {
	width := min(c.MaxIntrinsicWidth(flow.Infinity), cs.MaxWidth)
	width = max(width, cs.MinWidth, c.MinIntrinsicWidth(flow.Infinity))
	block := c.render(width)

	height := lipgloss.Height(block)
	if height < cs.MinHeight {
		block = lipgloss.PlaceVertical(cs.MinHeight, lipgloss.Top, block)
		height = cs.MinHeight
	}
	return &chipPlaceable{chip: c, block: block, width: lipgloss.Width(block), height: height}
}

func (c *Chip) heightAt(width int) int {
	if width == flow.Infinity {
		width = c.MaxIntrinsicWidth(width)
	}
	return lipgloss.Height(c.render(max(width, c.MinIntrinsicWidth(width))))
}

// render draws the chip in exactly width cells when width covers the
// longest word.
func (c *Chip) render(width int) string {
	content := max(1, width-c.frameWidth())
	return c.style.Render(wrapText(c.text, content))
}

// wrapText wraps text at word boundaries and pads every line to width.
func wrapText(text string, width int) string {
	wrapped := ansi.Wordwrap(text, width, "")
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " ")
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += strings.Repeat(" ", gap)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Position returns where the chip was last placed and whether it was placed
// at all.
func (c *Chip) Position() (x, y int, ok bool) {
	return c.x, c.y, c.placed
}

// View returns the block drawn at the last placement.
func (c *Chip) View() string {
	return c.block
}

// Key returns the chip's identity.
func (c *Chip) Key() string { return c.data.Key }

// Text returns the chip's text without styling.
func (c *Chip) Text() string { return c.text }

type chipPlaceable struct {
	chip          *Chip
	block         string
	width, height int
}

func (p *chipPlaceable) Width() int  { return p.width }
func (p *chipPlaceable) Height() int { return p.height }

func (p *chipPlaceable) PlaceAt(x, y int) {
	p.chip.x, p.chip.y = x, y
	p.chip.block = p.block
	p.chip.placed = true
}
