package app

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderCanvas draws the canvas pane: a header summarising the layout above
// the scrollable canvas viewport.
func (m *Model) renderCanvas(layout LayoutDimensions) string {
	summary := fmt.Sprintf("%s  %dx%d, %d lines", m.sceneTitle(), m.result.Width, m.result.Height, m.result.Flow.LineCount())
	if m.layoutErr != nil {
		summary = m.sceneTitle() + "  layout failed: " + m.layoutErr.Error()
	}
	header := titleStyle.Render(truncate(summary, layout.ViewportWidth))
	return renderPane(canvasPane, layout.CanvasWidth, layout.ContentHeight, header+"\n"+m.viewport.View())
}

// renderReport draws the report pane next to the canvas.
func (m *Model) renderReport(layout LayoutDimensions) string {
	header := titleStyle.Render(truncate("Report  "+m.renderer.Style(), layout.ReportViewportWidth))
	return renderPane(reportPane, layout.ReportWidth, layout.ContentHeight, header+"\n"+m.report.View())
}

// renderPane sizes style so the pane including its border is width x height.
func renderPane(style lipgloss.Style, width, height int, content string) string {
	innerWidth := max(0, width-style.GetHorizontalBorderSize())
	innerHeight := max(0, height-style.GetVerticalBorderSize())
	if innerWidth == 0 || innerHeight == 0 {
		return ""
	}
	return style.Width(innerWidth).Height(innerHeight).Render(content)
}
