package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/scene"
)

func boolPtr(v bool) *bool { return &v }

func TestChipIntrinsics(t *testing.T) {
	chip := NewChip(scene.Chip{Key: "hw", Text: "hello world"})

	tests := []struct {
		name string
		got  int
		want int
	}{
		{name: "min width is the longest word plus frame", got: chip.MinIntrinsicWidth(flow.Infinity), want: 7},
		{name: "max width is the unwrapped text plus frame", got: chip.MaxIntrinsicWidth(flow.Infinity), want: 13},
		{name: "height at natural width", got: chip.MinIntrinsicHeight(13), want: 3},
		{name: "height when wrapped", got: chip.MinIntrinsicHeight(7), want: 4},
		{name: "height with unbounded width", got: chip.MaxIntrinsicHeight(flow.Infinity), want: 3},
		{name: "height below the longest word", got: chip.MinIntrinsicHeight(2), want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestChipMeasure(t *testing.T) {
	chip := NewChip(scene.Chip{Text: "hello world"})

	tests := []struct {
		name          string
		c             flow.Constraints
		width, height int
	}{
		{name: "natural", c: flow.Loose(100, flow.Infinity), width: 13, height: 3},
		{name: "wrapped", c: flow.Loose(9, flow.Infinity), width: 9, height: 4},
		{name: "too narrow keeps the longest word", c: flow.Loose(3, flow.Infinity), width: 7, height: 4},
		{name: "filled share", c: flow.Constraints{MinWidth: 20, MaxWidth: 20, MaxHeight: flow.Infinity}, width: 20, height: 3},
		{name: "minimum height", c: flow.Constraints{MaxWidth: 100, MinHeight: 6, MaxHeight: flow.Infinity}, width: 13, height: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := chip.Measure(tt.c)
			if p.Width() != tt.width || p.Height() != tt.height {
				t.Fatalf("got %dx%d, want %dx%d", p.Width(), p.Height(), tt.width, tt.height)
			}
		})
	}
}

func TestChipPlaceAtRecordsBlock(t *testing.T) {
	chip := NewChip(scene.Chip{Key: "tag", Text: "go", Padding: 1, Border: boolPtr(false)})
	if _, _, ok := chip.Position(); ok {
		t.Fatal("expected an unplaced chip")
	}

	p := chip.Measure(flow.Loose(50, 50))
	if p.Width() != 4 || p.Height() != 1 {
		t.Fatalf("expected a 4x1 bare chip, got %dx%d", p.Width(), p.Height())
	}
	p.PlaceAt(3, 7)

	x, y, ok := chip.Position()
	if !ok || x != 3 || y != 7 {
		t.Fatalf("expected placement at (3,7), got (%d,%d) placed=%v", x, y, ok)
	}
	if !strings.Contains(chip.View(), "go") || lipgloss.Width(chip.View()) != 4 {
		t.Fatalf("unexpected block %q", chip.View())
	}
	if chip.Key() != "tag" {
		t.Fatalf("expected key tag, got %q", chip.Key())
	}
}

func TestChipParentData(t *testing.T) {
	chip := NewChip(scene.Chip{Key: "k", Text: "x", Weight: 2, Fill: true, Align: "end"})
	data := chip.ParentData()
	if data.Key != "k" || data.Weight != 2 || !data.Fill || data.Align != flow.AlignEnd {
		t.Fatalf("unexpected parent data %+v", data)
	}
}

func TestChipsInAFlowRow(t *testing.T) {
	s := scene.Scene{Chips: []scene.Chip{
		{Text: "alpha"}, {Text: "beta"}, {Text: "gamma"}, {Text: "delta"},
	}}
	chips := NewChips(s)
	p := flow.NewRowPolicy(flow.SpacedBy(1, flow.AlignStart), flow.Start, flow.Unbounded)

	res, err := p.Measure(Measurables(chips), flow.Loose(20, flow.Infinity))
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	// widths 7, 6, 7, 7 with one cell of spacing: 7+1+6 = 14 fits, +1+7 does not.
	if res.Flow.LineCount() != 2 {
		t.Fatalf("expected two rows, got %d", res.Flow.LineCount())
	}
	if res.Height != 6 {
		t.Fatalf("expected two rows of height 3, got %d", res.Height)
	}
	for i, c := range chips {
		x, y, ok := c.Position()
		if !ok || x != res.Placements[i].X || y != res.Placements[i].Y {
			t.Fatalf("chip %d not placed where the result says", i)
		}
	}
}
