package flow

import (
	"fmt"
	"math"
	"strings"
)

// Density converts density-independent spacing into layout units.
// The zero value behaves as 1.
type Density float64

// CeilToPx converts v to whole layout units, rounding up so spacing is never
// lost to truncation. Every pass uses this conversion so line boundaries agree.
func (d Density) CeilToPx(v float64) int {
	if v <= 0 {
		return 0
	}
	scale := float64(d)
	if scale <= 0 {
		scale = 1
	}
	return int(math.Ceil(v * scale))
}

// Arrangement positions a row of sizes inside total units. It is used both
// for boxes within a line (main axis) and for lines within the container
// (cross axis).
type Arrangement interface {
	// Spacing is the fixed gap between neighbours, in density-independent units.
	Spacing() float64
	// Arrange fills out with one offset per entry of sizes. Offsets are
	// increasing for LTR and mirrored for RTL.
	Arrange(d Density, total int, sizes []int, dir Direction, out []int)
	String() string
}

type placeFunc func(free int, sizes []int, gap int, out []int)

type arrangement struct {
	name    string
	spacing float64
	place   placeFunc
}

func (a arrangement) Spacing() float64 { return a.spacing }
func (a arrangement) String() string   { return a.name }

func (a arrangement) Arrange(d Density, total int, sizes []int, dir Direction, out []int) {
	if len(sizes) == 0 {
		return
	}
	gap := d.CeilToPx(a.spacing)
	consumed := sum(sizes) + gap*(len(sizes)-1)
	a.place(max(0, total-consumed), sizes, gap, out)
	if dir == RTL {
		for i, size := range sizes {
			out[i] = total - out[i] - size
		}
	}
}

var (
	// Start packs items against the leading edge.
	Start Arrangement = arrangement{name: "start", place: placeFrom(0)}
	// End packs items against the trailing edge.
	End Arrangement = arrangement{name: "end", place: placeFrom(1)}
	// Center packs items in the middle.
	Center Arrangement = arrangement{name: "center", place: placeFrom(0.5)}
	// SpaceBetween puts equal gaps between items and none at the edges.
	SpaceBetween Arrangement = arrangement{name: "space-between", place: placeSpaceBetween}
	// SpaceAround puts equal gaps around items, half-size at the edges.
	SpaceAround Arrangement = arrangement{name: "space-around", place: placeSpaceAround}
	// SpaceEvenly puts equal gaps between items and at both edges.
	SpaceEvenly Arrangement = arrangement{name: "space-evenly", place: placeSpaceEvenly}
)

// SpacedBy separates items by a fixed gap and aligns the group by align.
func SpacedBy(space float64, align CrossAlignment) Arrangement {
	bias := 0.0
	switch align {
	case AlignCenter:
		bias = 0.5
	case AlignEnd:
		bias = 1
	}
	return arrangement{
		name:    fmt.Sprintf("spaced-by(%g,%s)", space, align),
		spacing: space,
		place:   placeFrom(bias),
	}
}

// ParseArrangement resolves a configuration name. A positive spacing turns
// start, center and end into SpacedBy arrangements; the space-* arrangements
// derive their gaps from free space and ignore it.
func ParseArrangement(name string, spacing float64) (Arrangement, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "start", "top", "left":
		if spacing > 0 {
			return SpacedBy(spacing, AlignStart), nil
		}
		return Start, nil
	case "end", "bottom", "right":
		if spacing > 0 {
			return SpacedBy(spacing, AlignEnd), nil
		}
		return End, nil
	case "center":
		if spacing > 0 {
			return SpacedBy(spacing, AlignCenter), nil
		}
		return Center, nil
	case "space-between":
		return SpaceBetween, nil
	case "space-around":
		return SpaceAround, nil
	case "space-evenly":
		return SpaceEvenly, nil
	default:
		return nil, fmt.Errorf("unknown arrangement %q", name)
	}
}

// ArrangementNames lists the names ParseArrangement accepts, in cycle order.
func ArrangementNames() []string {
	return []string{"start", "center", "end", "space-between", "space-around", "space-evenly"}
}

func placeFrom(bias float64) placeFunc {
	return func(free int, sizes []int, gap int, out []int) {
		current := int(math.Round(float64(free) * bias))
		for i, size := range sizes {
			out[i] = current
			current += size + gap
		}
	}
}

func placeSpaceBetween(free int, sizes []int, gap int, out []int) {
	step := 0.0
	if len(sizes) > 1 {
		step = float64(free) / float64(len(sizes)-1)
	}
	placeWithStep(0, step, sizes, gap, out)
}

func placeSpaceAround(free int, sizes []int, gap int, out []int) {
	step := float64(free) / float64(len(sizes))
	placeWithStep(step/2, step, sizes, gap, out)
}

func placeSpaceEvenly(free int, sizes []int, gap int, out []int) {
	step := float64(free) / float64(len(sizes)+1)
	placeWithStep(step, step, sizes, gap, out)
}

func placeWithStep(first, step float64, sizes []int, gap int, out []int) {
	current := first
	for i, size := range sizes {
		out[i] = int(math.Round(current))
		current += float64(size+gap) + step
	}
}

// CrossAlignment places a box inside its line along the cross axis.
type CrossAlignment int

const (
	// AlignDefault defers to the container's alignment.
	AlignDefault CrossAlignment = iota
	AlignStart
	AlignCenter
	AlignEnd
)

func (a CrossAlignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "default"
	}
}

// ParseCrossAlignment resolves a configuration name; empty means default.
func ParseCrossAlignment(name string) (CrossAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return AlignDefault, nil
	case "start", "top", "left":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end", "bottom", "right":
		return AlignEnd, nil
	default:
		return AlignDefault, fmt.Errorf("unknown alignment %q", name)
	}
}

// offset returns the position of a box with the given free space. A
// horizontal cross axis mirrors start and end under RTL.
func (a CrossAlignment) offset(free int, dir Direction, horizontal bool) int {
	if free < 0 {
		free = 0
	}
	a = a.resolve(AlignStart)
	if horizontal && dir == RTL {
		switch a {
		case AlignStart:
			a = AlignEnd
		case AlignEnd:
			a = AlignStart
		}
	}
	switch a {
	case AlignCenter:
		return int(math.Round(float64(free) / 2))
	case AlignEnd:
		return free
	default:
		return 0
	}
}

func (a CrossAlignment) resolve(fallback CrossAlignment) CrossAlignment {
	if a == AlignDefault {
		return fallback
	}
	return a
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
