// Package app is the interactive flowbox UI: a canvas pane showing the scene
// laid out by the flow engine, an optional report pane and a footer whose key
// hints are themselves laid out as a flow row.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/flowbox/internal/config"
	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/report"
	"github.com/treykane/flowbox/internal/scene"
	"github.com/treykane/flowbox/internal/term"
)

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	// Layout inputs. cfg is edited live by the layout actions and turned
	// into policy on every change.
	cfg    config.Config
	scene  scene.Scene
	policy flow.Policy
	chips  []*term.Chip

	// Last layout.
	constraints flow.Constraints
	result      flow.Result
	layoutErr   error

	// UI widgets
	viewport   viewport.Model
	report     viewport.Model
	renderer   *report.Renderer
	showHelp   bool
	showReport bool
	status     string

	// Layout sizing
	width  int
	height int

	// Debounced report bookkeeping
	reportSeq int

	keyForAction map[string][]string
	keyToAction  map[string]string
}

// New prepares the UI for sc with cfg as the starting settings.
func New(cfg config.Config, sc scene.Scene) (*Model, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:      cfg,
		scene:    sc,
		policy:   policy,
		chips:    term.NewChips(sc),
		viewport: viewport.New(0, 0),
		report:   viewport.New(0, 0),
		renderer: report.NewRenderer(cfg.GlamourStyle, ReportCacheEntries),
		status:   "Ready",
	}
	m.report.SetContent("Rendering report...")
	m.loadKeybindings(cfg)
	return m, nil
}

// Init has nothing to start; the first WindowSizeMsg triggers the layout.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case reportRequestMsg:
		return m, m.handleReportRequest(msg)
	case reportResultMsg:
		m.handleReportResult(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

// relayout measures the chips under the canvas constraints and redraws the
// canvas viewport.
func (m *Model) relayout() {
	m.constraints = m.canvasConstraints()
	result, err := m.policy.Measure(term.Measurables(m.chips), m.constraints)
	if err != nil {
		m.layoutErr = err
		m.setStatusError("Layout failed", err, "constraints", m.constraints.String())
		m.viewport.SetContent("")
		return
	}
	m.layoutErr = nil
	m.result = result
	m.viewport.SetContent(term.Render(m.chips, m.viewport.Width, result.Height))
}

// canvasConstraints bounds a row by the viewport width and lets it grow
// downward; a column is bounded by the viewport in both axes so it wraps into
// further columns.
func (m *Model) canvasConstraints() flow.Constraints {
	if m.policy.Orientation == flow.Vertical {
		return flow.Loose(m.viewport.Width, m.viewport.Height)
	}
	return flow.Loose(m.viewport.Width, flow.Infinity)
}

// applySettings rebuilds the policy after cfg changed and relays out.
func (m *Model) applySettings(status string) tea.Cmd {
	policy, err := m.cfg.Policy()
	if err != nil {
		m.setStatusError("Invalid layout settings", err)
		return nil
	}
	m.policy = policy
	m.relayout()
	if m.layoutErr == nil {
		m.status = status
	}
	return m.requestReport()
}

func (m *Model) sceneTitle() string {
	if m.scene.Title != "" {
		return m.scene.Title
	}
	return "flowbox"
}
