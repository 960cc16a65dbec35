package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/flowbox/internal/canvas"
	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/scene"
	"github.com/treykane/flowbox/internal/term"
)

var noBorder = false

// hintPolicy lays the footer segments out as a flow row.
var hintPolicy = flow.NewRowPolicy(flow.SpacedBy(FooterHintSpacing, flow.AlignStart), flow.Start, flow.Unbounded)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(max(0, width-1), rows)
	style := statusStyle
	if m.layoutErr != nil {
		style = errorStatus
	}
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows flows the footer segments into at most rowLimit rows of
// width cells. A segment wider than the row wraps at word boundaries. When
// the segments need more rows the last row is marked with an ellipsis and
// fit is false.
func (m *Model) buildStatusRows(width, rowLimit int) (rows []string, fit bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	segments := m.statusSegments()
	if len(segments) == 0 {
		return []string{""}, true
	}
	chips := make([]*term.Chip, len(segments))
	for i, seg := range segments {
		chips[i] = term.NewChip(scene.Chip{
			Key:    fmt.Sprintf("hint-%d", i),
			Text:   seg,
			Border: &noBorder,
			Color:  "240",
		})
	}

	res, err := hintPolicy.Measure(term.Measurables(chips), flow.Loose(width, flow.Infinity))
	if err != nil {
		appLog.Warn("lay out footer", "width", width, "error", err)
		return []string{canvas.Truncate(strings.Join(segments, "  "), width)}, false
	}

	rows = strings.Split(term.Render(chips, width, res.Height), "\n")
	if len(rows) <= rowLimit {
		return rows, true
	}
	rows = rows[:rowLimit]
	rows[rowLimit-1] = markOverflow(rows[rowLimit-1], width)
	return rows, false
}

// markOverflow ends row with an ellipsis, cutting it if needed.
func markOverflow(row string, width int) string {
	row = strings.TrimRight(row, " ")
	if lipgloss.Width(row)+2 <= width {
		return row + " …"
	}
	return canvas.Truncate(row+"  ", width)
}

// statusSegments lists the footer contents in display order: key hints,
// layout context and the status message.
func (m *Model) statusSegments() []string {
	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	segments := make([]string, 0, len(help)+len(context)+1)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(context) > 0 {
		segments = append(segments, "Layout: "+context[0])
		segments = append(segments, context[1:]...)
	}
	if status := strings.TrimSpace(m.status); status != "" {
		segments = append(segments, "Status: "+status)
	}
	return segments
}

func (m *Model) statusHelpSegments() []string {
	if m.showHelp {
		return []string{
			m.hint("close help", actionHelp),
			m.hint("quit", actionQuit),
		}
	}
	return []string{
		m.hint("orientation", actionOrientation),
		m.hint("max items", actionMaxItemsUp, actionMaxItemsDown),
		m.hint("unbounded", actionMaxItemsReset),
		m.hint("main", actionMainCycle),
		m.hint("cross", actionCrossCycle),
		m.hint("spacing", actionSpacingDown, actionSpacingUp),
		m.hint("direction", actionDirection),
		m.hint("report", actionReport),
		m.hint("scroll", actionScrollUp, actionScrollDown),
		m.hint("help", actionHelp),
		m.hint("quit", actionQuit),
	}
}

// hint joins the primary keys of actions with "/" and appends label.
func (m *Model) hint(label string, actions ...string) string {
	keys := make([]string, 0, len(actions))
	for _, action := range actions {
		if key := m.primaryActionKey(action); key != "" {
			keys = append(keys, key)
		}
	}
	return strings.Join(keys, "/") + " " + label
}

func (m *Model) statusContextSegments() []string {
	return []string{
		fmt.Sprintf("%s %dx%d in %d lines", orDefault(m.cfg.Orientation, flow.Horizontal.String()), m.result.Width, m.result.Height, m.result.Flow.LineCount()),
		fmt.Sprintf("max %s", maxItemsLabel(m.cfg.MaxItems)),
		fmt.Sprintf("%s/%s", orDefault(m.cfg.MainArrangement, "start"), orDefault(m.cfg.CrossArrangement, "start")),
		fmt.Sprintf("spacing %g", m.cfg.Spacing),
		orDefault(m.cfg.Direction, flow.LTR.String()),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (m *Model) renderHelp(width, height int) string {
	rows := []struct{ keys, what string }{
		{m.allActionKeys(actionOrientation), "Toggle row / column"},
		{m.allActionKeys(actionMaxItemsUp), "Allow one more item per line"},
		{m.allActionKeys(actionMaxItemsDown), "Allow one item fewer per line"},
		{m.allActionKeys(actionMaxItemsReset), "Unbounded items per line"},
		{m.allActionKeys(actionMainCycle), "Cycle the main-axis arrangement"},
		{m.allActionKeys(actionCrossCycle), "Cycle the cross-axis arrangement"},
		{m.allActionKeys(actionSpacingDown), "Less spacing between items"},
		{m.allActionKeys(actionSpacingUp), "More spacing between items"},
		{m.allActionKeys(actionDirection), "Toggle left-to-right / right-to-left"},
		{m.allActionKeys(actionReport), "Toggle the layout report"},
		{m.allActionKeys(actionScrollUp), "Scroll the canvas up"},
		{m.allActionKeys(actionScrollDown), "Scroll the canvas down"},
		{m.allActionKeys(actionScrollPageUp) + " / " + m.allActionKeys(actionScrollPageDown), "Scroll the canvas by a page"},
		{m.allActionKeys(actionHelp), "Toggle help"},
		{m.allActionKeys(actionQuit), "Quit"},
	}

	lines := []string{titleStyle.Render("Keyboard Shortcuts"), ""}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("  %-22s %s", row.keys, row.what))
	}
	lines = append(lines,
		"",
		"CLI",
		"  flowbox --configure    Save the current flags as defaults",
		"  flowbox --print        Print the laid-out scene once",
		"",
		mutedStyle.Render("Press ? to return."),
	)

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
