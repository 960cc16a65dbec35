package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/flowbox/internal/flow"
)

// handleKey dispatches a key press through the keybinding maps.
func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch m.actionForKey(key) {
	case actionQuit:
		return m, tea.Quit
	case actionHelp:
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.status = ""
		}
		return m, nil
	case actionOrientation:
		return m, m.toggleOrientation()
	case actionMaxItemsUp:
		return m, m.stepMaxItems(1)
	case actionMaxItemsDown:
		return m, m.stepMaxItems(-1)
	case actionMaxItemsReset:
		m.cfg.MaxItems = 0
		return m, m.applySettings("Max items: unbounded")
	case actionMainCycle:
		m.cfg.MainArrangement = cycle(flow.ArrangementNames(), m.cfg.MainArrangement)
		return m, m.applySettings("Main arrangement: " + m.cfg.MainArrangement)
	case actionCrossCycle:
		m.cfg.CrossArrangement = cycle(flow.ArrangementNames(), m.cfg.CrossArrangement)
		return m, m.applySettings("Cross arrangement: " + m.cfg.CrossArrangement)
	case actionSpacingDown:
		return m, m.stepSpacing(-SpacingStep)
	case actionSpacingUp:
		return m, m.stepSpacing(SpacingStep)
	case actionDirection:
		if m.cfg.Direction == flow.RTL.String() {
			m.cfg.Direction = flow.LTR.String()
		} else {
			m.cfg.Direction = flow.RTL.String()
		}
		return m, m.applySettings("Direction: " + m.cfg.Direction)
	case actionReport:
		return m, m.toggleReport()
	case actionScrollUp:
		m.viewport.LineUp(1)
		return m, nil
	case actionScrollDown:
		m.viewport.LineDown(1)
		return m, nil
	case actionScrollPageUp:
		m.viewport.ViewUp()
		return m, nil
	case actionScrollPageDown:
		m.viewport.ViewDown()
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleOrientation() tea.Cmd {
	if m.cfg.Orientation == flow.Vertical.String() {
		m.cfg.Orientation = flow.Horizontal.String()
	} else {
		m.cfg.Orientation = flow.Vertical.String()
	}
	m.viewport.GotoTop()
	return m.applySettings("Orientation: " + m.cfg.Orientation)
}

// stepMaxItems moves the per-line limit by delta. Stepping down from
// unbounded starts just below the longest current line; stepping up past the
// number of chips returns to unbounded, where the limit has no effect.
func (m *Model) stepMaxItems(delta int) tea.Cmd {
	next := m.cfg.MaxItems
	switch {
	case next == 0 && delta < 0:
		next = max(1, m.longestLine()-1)
	case next == 0:
		m.status = "Max items: unbounded"
		return nil
	default:
		next = max(1, next+delta)
	}
	if next >= min(len(m.chips), MaxItemsLimit) {
		next = 0
	}
	m.cfg.MaxItems = next
	return m.applySettings("Max items: " + maxItemsLabel(next))
}

func (m *Model) longestLine() int {
	longest := 0
	for _, line := range m.result.Flow.Lines {
		longest = max(longest, line.Len())
	}
	return longest
}

func (m *Model) stepSpacing(delta int) tea.Cmd {
	next := clamp(int(m.cfg.Spacing)+delta, 0, MaxSpacing)
	if float64(next) == m.cfg.Spacing {
		return nil
	}
	m.cfg.Spacing = float64(next)
	return m.applySettings(fmt.Sprintf("Spacing: %d", next))
}

func (m *Model) toggleReport() tea.Cmd {
	m.showReport = !m.showReport
	m.applyLayout(m.calculateLayout())
	m.relayout()
	if !m.showReport {
		m.status = "Report hidden"
		return nil
	}
	m.status = "Report shown"
	return m.requestReport()
}

func maxItemsLabel(n int) string {
	if n == 0 || n == flow.Unbounded {
		return "unbounded"
	}
	return fmt.Sprint(n)
}
