package app

import "github.com/charmbracelet/lipgloss"

// View draws the full UI (canvas pane + optional report pane + footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	footer := m.renderStatus(m.width, layout.FooterHeight)
	if layout.ContentHeight == 0 {
		return padBlock(footer, m.width, m.height)
	}

	var body string
	if m.showHelp {
		body = m.renderHelp(m.width, layout.ContentHeight)
	} else {
		body = m.renderCanvas(layout)
		if layout.ReportWidth > 0 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderReport(layout))
		}
	}
	body = padBlock(body, m.width, layout.ContentHeight)

	view := body + "\n" + footer
	return padBlock(view, m.width, m.height)
}
