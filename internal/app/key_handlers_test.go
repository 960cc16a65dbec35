package app

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/flowbox/internal/config"
	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/scene"
)

func newTestModel(t *testing.T, width, height int) *Model {
	t.Helper()
	return newSceneModel(t, scene.Default(), width, height)
}

func newSceneModel(t *testing.T, sc scene.Scene, width, height int) *Model {
	t.Helper()
	m, err := New(config.Default(), sc)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// bareScene has count borderless two-cell chips.
func bareScene(count int) scene.Scene {
	border := false
	s := scene.Scene{Title: "bare"}
	for i := 0; i < count; i++ {
		s.Chips = append(s.Chips, scene.Chip{Key: fmt.Sprintf("c%d", i), Text: "ab", Border: &border})
	}
	return s
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Orientation = "diagonal"
	if _, err := New(cfg, scene.Default()); err == nil {
		t.Fatal("expected invalid orientation to be rejected")
	}

	bad := scene.Scene{Chips: []scene.Chip{{Text: "x", Weight: -1}}}
	if _, err := New(config.Default(), bad); err == nil {
		t.Fatal("expected invalid scene to be rejected")
	}
}

func TestWindowResizeLaysOutTheScene(t *testing.T) {
	// 24 columns leave a 20-cell canvas: six 2-cell chips fit on one line.
	m := newSceneModel(t, bareScene(6), 24, 20)

	if m.viewport.Width != 20 {
		t.Fatalf("expected a 20-cell viewport, got %d", m.viewport.Width)
	}
	if got := m.result.Flow.LineCount(); got != 1 {
		t.Fatalf("expected one line, got %d", got)
	}
	if m.constraints.MaxHeight != flow.Infinity {
		t.Fatalf("expected a row to grow downward, got %s", m.constraints)
	}
}

func TestHandleKeyAdjustsMaxItems(t *testing.T) {
	m := newSceneModel(t, bareScene(6), 24, 20)

	m.handleKey("-")
	if m.cfg.MaxItems != 5 {
		t.Fatalf("expected stepping down from unbounded to give 5, got %d", m.cfg.MaxItems)
	}
	if got := m.result.Flow.LineCount(); got != 2 {
		t.Fatalf("expected two lines with five items per line, got %d", got)
	}

	m.handleKey("-")
	m.handleKey("-")
	if m.cfg.MaxItems != 3 || m.policy.MaxItemsInMainAxis != 3 {
		t.Fatalf("expected 3 items per line, got cfg=%d policy=%d", m.cfg.MaxItems, m.policy.MaxItemsInMainAxis)
	}
	if m.status != "Max items: 3" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m.handleKey("+")
	m.handleKey("+")
	m.handleKey("+")
	if m.cfg.MaxItems != 0 || m.policy.MaxItemsInMainAxis != flow.Unbounded {
		t.Fatalf("expected stepping past the chip count to reset to unbounded, got %d", m.cfg.MaxItems)
	}

	m.handleKey("-")
	m.handleKey("0")
	if m.cfg.MaxItems != 0 || m.status != "Max items: unbounded" {
		t.Fatalf("expected reset to unbounded, got %d %q", m.cfg.MaxItems, m.status)
	}
}

func TestHandleKeyNeverStepsBelowOne(t *testing.T) {
	m := newSceneModel(t, bareScene(6), 24, 20)
	for i := 0; i < 10; i++ {
		m.handleKey("-")
	}
	if m.cfg.MaxItems != 1 {
		t.Fatalf("expected the limit to stop at 1, got %d", m.cfg.MaxItems)
	}
	if got := m.result.Flow.LineCount(); got != 6 {
		t.Fatalf("expected one chip per line, got %d lines", got)
	}
}

func TestHandleKeyCyclesSettings(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 24, 20)

	tests := []struct {
		key   string
		check func() bool
		desc  string
	}{
		{key: "o", desc: "orientation becomes column", check: func() bool {
			return m.cfg.Orientation == "column" && m.policy.Orientation == flow.Vertical
		}},
		{key: "o", desc: "orientation returns to row", check: func() bool {
			return m.cfg.Orientation == "row" && m.policy.Orientation == flow.Horizontal
		}},
		{key: "a", desc: "main arrangement cycles to center", check: func() bool {
			return m.cfg.MainArrangement == "center" && m.policy.MainArrangement.String() == "center"
		}},
		{key: "c", desc: "cross arrangement cycles to center", check: func() bool {
			return m.cfg.CrossArrangement == "center" && m.policy.CrossArrangement.String() == "center"
		}},
		{key: "]", desc: "spacing grows", check: func() bool {
			return m.cfg.Spacing == 1 && m.policy.MainArrangement.Spacing() == 1
		}},
		{key: "d", desc: "direction flips to rtl", check: func() bool {
			return m.cfg.Direction == "rtl" && m.policy.Direction == flow.RTL
		}},
		{key: "d", desc: "direction flips back", check: func() bool {
			return m.cfg.Direction == "ltr" && m.policy.Direction == flow.LTR
		}},
	}
	for _, tt := range tests {
		m.handleKey(tt.key)
		if !tt.check() {
			t.Fatalf("%s: unexpected state cfg=%+v", tt.desc, m.cfg)
		}
	}
}

func TestHandleKeySpacingStaysInRange(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 24, 20)

	if _, cmd := m.handleKey("["); cmd != nil || m.cfg.Spacing != 0 {
		t.Fatalf("expected spacing to stay at 0 without work, got %g", m.cfg.Spacing)
	}
	for i := 0; i < MaxSpacing+5; i++ {
		m.handleKey("]")
	}
	if m.cfg.Spacing != MaxSpacing {
		t.Fatalf("expected spacing capped at %d, got %g", MaxSpacing, m.cfg.Spacing)
	}
}

func TestRTLPlacesFirstChipOnTheRight(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 24, 20)
	m.handleKey("d")

	// three 2-cell chips: the row is 6 cells wide and runs right to left
	if got := m.result.Placements[0].X; got != 4 {
		t.Fatalf("expected the first chip at x=4, got %d", got)
	}
	if got := m.result.Placements[2].X; got != 0 {
		t.Fatalf("expected the last chip at x=0, got %d", got)
	}
}

func TestHandleKeyTogglesReportAndHelp(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 100, 30)

	_, cmd := m.handleKey("r")
	if !m.showReport || cmd == nil {
		t.Fatal("expected the report to open and schedule a render")
	}
	if m.report.Width != 46 || m.viewport.Width != 46 {
		t.Fatalf("expected both panes resized, got canvas=%d report=%d", m.viewport.Width, m.report.Width)
	}

	if _, cmd := m.handleKey("r"); m.showReport || cmd != nil {
		t.Fatal("expected the report to close without scheduling work")
	}
	if m.viewport.Width != 96 {
		t.Fatalf("expected the canvas to take the full width again, got %d", m.viewport.Width)
	}

	m.handleKey("?")
	if !m.showHelp {
		t.Fatal("expected help to open")
	}
	m.handleKey("?")
	if m.showHelp {
		t.Fatal("expected help to close")
	}
}

func TestHandleKeyScrollsCanvas(t *testing.T) {
	// One chip per line on a short terminal overflows the viewport.
	m := newSceneModel(t, bareScene(40), 24, 12)
	m.cfg.MaxItems = 1
	m.applySettings("")

	m.handleKey("j")
	if m.viewport.YOffset != 1 {
		t.Fatalf("expected scroll down by one line, got %d", m.viewport.YOffset)
	}
	m.handleKey("k")
	if m.viewport.YOffset != 0 {
		t.Fatalf("expected scroll back to the top, got %d", m.viewport.YOffset)
	}
}

func TestHandleKeyQuit(t *testing.T) {
	m := &Model{}
	m.loadKeybindings(config.Config{})

	_, cmd := m.handleKey("q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected a tea.QuitMsg")
	}
}

func TestCycle(t *testing.T) {
	names := []string{"a", "b", "c"}
	if got := cycle(names, "c"); got != "a" {
		t.Fatalf("expected wrap to a, got %q", got)
	}
	if got := cycle(names, "zzz"); got != "a" {
		t.Fatalf("expected unknown to restart at a, got %q", got)
	}
}
