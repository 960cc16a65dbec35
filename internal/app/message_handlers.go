package app

import tea "github.com/charmbracelet/bubbletea"

// handleWindowResize stores the new terminal size, resizes the panes and
// reflows the canvas.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.applyLayout(m.calculateLayout())
	m.relayout()
	return m, m.requestReport()
}

// handleReportRequest starts the render for a debounce tick that is still
// current.
func (m *Model) handleReportRequest(msg reportRequestMsg) tea.Cmd {
	if msg.seq != m.reportSeq || !m.showReport {
		return nil
	}
	return renderReportCmd(m.renderer, m.reportMarkdown(), m.report.Width, msg.seq)
}

// handleReportResult shows a finished render unless a newer one was
// requested or the pane was resized in the meantime.
func (m *Model) handleReportResult(msg reportResultMsg) {
	if msg.seq != m.reportSeq || msg.width != m.report.Width {
		return
	}
	m.report.SetContent(msg.content)
}
