// layout.go centralizes the terminal layout calculations.
//
// The canvas pane takes the full width, or shares it with the report pane
// when that is visible and the terminal is wide enough. The footer reserves
// two or three rows depending on how the key hints flow at the current width.
// Each pane loses its border and padding plus one header row to get the
// viewport size.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	CanvasWidth          int // canvas pane width including its frame
	ReportWidth          int // report pane width including its frame; 0 when hidden
	ContentHeight        int // terminal height minus the footer
	FooterHeight         int
	ViewportWidth        int // usable canvas width
	ViewportHeight       int // usable canvas height
	ReportViewportWidth  int
	ReportViewportHeight int
}

// calculateLayout computes all UI dimensions from the terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	footer := m.footerHeightForWidth(m.width)
	contentHeight := max(0, m.height-footer)

	reportWidth := 0
	if m.showReport && m.width/ReportWidthDivider >= MinReportWidth {
		reportWidth = m.width / ReportWidthDivider
	}
	canvasWidth := max(0, m.width-reportWidth)

	layout := LayoutDimensions{
		CanvasWidth:    canvasWidth,
		ReportWidth:    reportWidth,
		ContentHeight:  contentHeight,
		FooterHeight:   footer,
		ViewportWidth:  max(0, canvasWidth-canvasPane.GetHorizontalFrameSize()),
		ViewportHeight: max(0, contentHeight-canvasPane.GetVerticalFrameSize()-1),
	}
	if reportWidth > 0 {
		layout.ReportViewportWidth = max(0, reportWidth-reportPane.GetHorizontalFrameSize())
		layout.ReportViewportHeight = max(0, contentHeight-reportPane.GetVerticalFrameSize()-1)
	}
	return layout
}

// footerHeightForWidth prefers FooterMinRows and expands to FooterMaxRows
// when the hints do not fit.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout resizes the viewports to the calculated layout.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight
	m.report.Width = layout.ReportViewportWidth
	m.report.Height = layout.ReportViewportHeight
}
