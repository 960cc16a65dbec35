// render.go renders the markdown report pane off the update loop.
//
// Glamour rendering is slow next to a relayout, so every layout change bumps
// reportSeq and schedules a render after ReportDebounce. A request or result
// whose sequence is no longer current is dropped, so holding a key only
// renders the final layout. Renderers are reused per width bucket by
// report.Renderer.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/flowbox/internal/report"
	"github.com/treykane/flowbox/internal/term"
)

// reportRequestMsg is emitted by the debounce timer.
type reportRequestMsg struct {
	seq int
}

// reportResultMsg carries a finished render back to Update.
type reportResultMsg struct {
	seq     int
	width   int
	content string
}

// requestReport schedules a report render when the pane is visible.
func (m *Model) requestReport() tea.Cmd {
	if !m.showReport {
		return nil
	}
	m.reportSeq++
	seq := m.reportSeq
	return tea.Tick(ReportDebounce, func(time.Time) tea.Msg {
		return reportRequestMsg{seq: seq}
	})
}

// renderReportCmd renders markdown at width on a background goroutine.
func renderReportCmd(renderer *report.Renderer, markdown string, width, seq int) tea.Cmd {
	return func() tea.Msg {
		return reportResultMsg{
			seq:     seq,
			width:   width,
			content: renderer.Render(markdown, width),
		}
	}
}

// reportMarkdown describes the current layout. It runs on the update loop
// because it reads the chips.
func (m *Model) reportMarkdown() string {
	in := report.Input{
		Title:       m.sceneTitle(),
		Policy:      m.policy,
		Constraints: m.constraints,
		Result:      m.result,
	}
	intrinsics, err := report.ComputeIntrinsics(m.policy, term.Measurables(m.chips), m.constraints.MaxWidth, m.constraints.MaxHeight)
	if err != nil {
		appLog.Warn("compute intrinsic sizes", "error", err)
	} else {
		in.Intrinsics = &intrinsics
	}
	return report.Markdown(in)
}
