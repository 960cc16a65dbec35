package app

import (
	"strings"
	"testing"

	"github.com/treykane/flowbox/internal/report"
)

func TestRequestReportOnlyWhenVisible(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 100, 30)

	if cmd := m.requestReport(); cmd != nil {
		t.Fatal("expected no render while the report is hidden")
	}
	m.showReport = true
	before := m.reportSeq
	if cmd := m.requestReport(); cmd == nil || m.reportSeq != before+1 {
		t.Fatalf("expected a scheduled render and a new sequence, got seq %d", m.reportSeq)
	}
}

func TestHandleReportRequestDropsStaleSequence(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 100, 30)
	m.handleKey("r")

	if cmd := m.handleReportRequest(reportRequestMsg{seq: m.reportSeq - 1}); cmd != nil {
		t.Fatal("expected a stale request to be dropped")
	}
	if cmd := m.handleReportRequest(reportRequestMsg{seq: m.reportSeq}); cmd == nil {
		t.Fatal("expected the current request to start a render")
	}
}

func TestHandleReportResultAppliesCurrentRenderOnly(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 100, 30)
	m.handleKey("r")

	m.handleReportResult(reportResultMsg{seq: m.reportSeq - 1, width: m.report.Width, content: "stale"})
	if strings.Contains(m.report.View(), "stale") {
		t.Fatal("expected a stale result to be ignored")
	}
	m.handleReportResult(reportResultMsg{seq: m.reportSeq, width: m.report.Width + 1, content: "resized"})
	if strings.Contains(m.report.View(), "resized") {
		t.Fatal("expected a result for another width to be ignored")
	}
	m.handleReportResult(reportResultMsg{seq: m.reportSeq, width: m.report.Width, content: "fresh"})
	if !strings.Contains(m.report.View(), "fresh") {
		t.Fatalf("expected the current result to be shown, got %q", m.report.View())
	}
}

func TestRenderReportCmd(t *testing.T) {
	renderer := report.NewRenderer("notty", 1)
	msg, ok := renderReportCmd(renderer, "# Layout\n\nthree chips", 40, 7)().(reportResultMsg)
	if !ok {
		t.Fatal("expected a reportResultMsg")
	}
	if msg.seq != 7 || msg.width != 40 {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !strings.Contains(msg.content, "three chips") {
		t.Fatalf("expected rendered content, got %q", msg.content)
	}
}

func TestReportMarkdownDescribesCurrentLayout(t *testing.T) {
	m := newSceneModel(t, bareScene(3), 100, 30)

	md := m.reportMarkdown()
	for _, want := range []string{"# bare", "## Lines", "## Placements", "## Intrinsic sizes", "| 1 | c0 | 1 | 0 | 0 | 2 | 1 |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, md)
		}
	}
}
