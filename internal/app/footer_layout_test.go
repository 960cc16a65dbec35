package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFooterHeightForWidthPrefersTwoRowsWhenFit(t *testing.T) {
	m := &Model{}

	if got := m.footerHeightForWidth(240); got != FooterMinRows {
		t.Fatalf("expected %d footer rows at wide width, got %d", FooterMinRows, got)
	}
}

func TestFooterHeightForWidthExpandsToThreeRowsWhenNeeded(t *testing.T) {
	m := &Model{
		status: "Layout failed: constraints are invalid because the minimum width exceeds the maximum",
	}

	if got := m.footerHeightForWidth(72); got != FooterMaxRows {
		t.Fatalf("expected %d footer rows at narrow width, got %d", FooterMaxRows, got)
	}
}

func TestBuildStatusRowsFlowsHintsIntoRows(t *testing.T) {
	m := &Model{}

	rows, fit := m.buildStatusRows(240, FooterMinRows)
	if !fit || len(rows) != 1 {
		t.Fatalf("expected a single fitting row, got %d rows fit=%v", len(rows), fit)
	}
	if !strings.HasPrefix(rows[0], "Keys: o orientation  +/- max items") {
		t.Fatalf("expected hints separated by the hint spacing, got %q", rows[0])
	}
}

func TestBuildStatusRowsTruncatesWithEllipsisWhenOverCapacity(t *testing.T) {
	m := &Model{
		status: strings.Repeat("status ", 30),
	}

	rows, fit := m.buildStatusRows(28, FooterMaxRows)
	if fit {
		t.Fatal("expected rows to overflow and require truncation")
	}
	if len(rows) != FooterMaxRows {
		t.Fatalf("expected %d rows, got %d", FooterMaxRows, len(rows))
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w > 28 {
			t.Fatalf("row %d is %d cells wide", i, w)
		}
	}
	if !strings.Contains(rows[len(rows)-1], "…") {
		t.Fatalf("expected ellipsis in final row, got %q", rows[len(rows)-1])
	}
}

func TestMarkOverflow(t *testing.T) {
	tests := []struct {
		name  string
		row   string
		width int
		want  string
	}{
		{name: "room for a marker", row: "ab   ", width: 6, want: "ab …"},
		{name: "cut to fit the marker", row: "abcdefgh", width: 5, want: "abcd…"},
		{name: "single cell", row: "abc", width: 1, want: "…"},
		{name: "no room", row: "abc", width: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := markOverflow(tt.row, tt.width); got != tt.want {
				t.Fatalf("markOverflow(%q, %d) = %q, want %q", tt.row, tt.width, got, tt.want)
			}
		})
	}
}

func TestBuildStatusRowsRejectsEmptyArea(t *testing.T) {
	m := &Model{}
	if rows, fit := m.buildStatusRows(0, FooterMinRows); rows != nil || !fit {
		t.Fatalf("expected no rows for zero width, got %v fit=%v", rows, fit)
	}
}

func TestStatusHelpSegmentsByMode(t *testing.T) {
	t.Run("canvas", func(t *testing.T) {
		m := &Model{}
		joined := strings.Join(m.statusHelpSegments(), " | ")
		for _, want := range []string{"o orientation", "+/- max items", "[/] spacing", "↑/↓ scroll", "q quit"} {
			if !strings.Contains(joined, want) {
				t.Fatalf("expected help to include %q, got %q", want, joined)
			}
		}
	})

	t.Run("help", func(t *testing.T) {
		m := &Model{showHelp: true}
		joined := strings.Join(m.statusHelpSegments(), " | ")
		if joined != "? close help | q quit" {
			t.Fatalf("unexpected help footer %q", joined)
		}
	})
}

func TestCalculateLayoutReservesFooterRowsAndStaysNonNegative(t *testing.T) {
	m := &Model{
		width:  70,
		height: 2,
	}
	layout := m.calculateLayout()
	if layout.ContentHeight < 0 || layout.ViewportHeight < 0 {
		t.Fatalf("expected non-negative heights, got %+v", layout)
	}

	m.width = 240
	m.height = 24
	layout = m.calculateLayout()
	if layout.ContentHeight != 24-FooterMinRows {
		t.Fatalf("expected content height %d, got %d", 24-FooterMinRows, layout.ContentHeight)
	}
	if layout.ReportWidth != 0 || layout.ViewportWidth != 240-4 {
		t.Fatalf("expected a full-width canvas, got %+v", layout)
	}
}

func TestCalculateLayoutSplitsForReport(t *testing.T) {
	m := &Model{width: 100, height: 30, showReport: true}
	layout := m.calculateLayout()
	if layout.ReportWidth != 50 || layout.CanvasWidth != 50 {
		t.Fatalf("expected an even split, got %+v", layout)
	}
	if layout.ReportViewportWidth != 46 {
		t.Fatalf("expected report viewport width 46, got %d", layout.ReportViewportWidth)
	}

	m.width = 50
	if layout := m.calculateLayout(); layout.ReportWidth != 0 {
		t.Fatalf("expected the report to be hidden on narrow terminals, got %+v", layout)
	}
}

func TestViewPadsToTerminalSizeWithAdaptiveFooter(t *testing.T) {
	m := newTestModel(t, 90, 20)

	for _, showReport := range []bool{false, true} {
		m.showReport = showReport
		m.applyLayout(m.calculateLayout())
		m.relayout()

		out := m.View()
		lines := strings.Split(out, "\n")
		if len(lines) != m.height {
			t.Fatalf("report=%v: expected %d lines, got %d", showReport, m.height, len(lines))
		}
		for i, line := range lines {
			if w := lipgloss.Width(line); w != m.width {
				t.Fatalf("report=%v: line %d width mismatch: expected %d, got %d", showReport, i+1, m.width, w)
			}
		}
	}
}

func TestRenderHelpListsConfiguredKeys(t *testing.T) {
	m := newTestModel(t, 90, 30)
	m.showHelp = true

	out := m.View()
	if !strings.Contains(out, "Keyboard Shortcuts") || !strings.Contains(out, "Toggle row / column") {
		t.Fatalf("expected the help screen, got %q", out)
	}
}
