// policy.go is the layout driver of a flow container.
//
// A Policy describes one flow row or flow column: which way items run, how
// they are arranged inside a line, how lines are arranged against each other,
// and how many items a line may hold. Measure runs the breaker, sizes the
// container against the caller's constraints, arranges the lines along the
// cross axis and finally places every box. The four intrinsic methods answer
// a parent's size queries before it commits to constraints.
//
// A Policy is an immutable value. Passes share nothing, so independent
// containers may be measured concurrently.
package flow

import (
	"fmt"
	"math"

	"github.com/treykane/flowbox/internal/logging"
)

// Unbounded is the item limit meaning "no limit".
const Unbounded = math.MaxInt

var flowLog = logging.New("flow")

// Policy configures a flow container.
type Policy struct {
	Orientation      Orientation
	MainArrangement  Arrangement
	CrossArrangement Arrangement
	// MaxItemsInMainAxis must be at least 1; use Unbounded for no limit.
	MaxItemsInMainAxis int
	// CrossAlignment positions boxes inside their line unless a box sets
	// its own alignment.
	CrossAlignment CrossAlignment
	Direction      Direction
	Density        Density
}

// NewRowPolicy returns a flow row: items run horizontally and lines stack
// from the top.
func NewRowPolicy(horizontal, vertical Arrangement, maxItemsInEachRow int) Policy {
	return Policy{
		Orientation:        Horizontal,
		MainArrangement:    horizontal,
		CrossArrangement:   vertical,
		MaxItemsInMainAxis: maxItemsInEachRow,
		CrossAlignment:     AlignStart,
		Density:            1,
	}
}

// NewColumnPolicy returns a flow column: items run vertically and lines
// stack from the start edge.
func NewColumnPolicy(vertical, horizontal Arrangement, maxItemsInEachColumn int) Policy {
	return Policy{
		Orientation:        Vertical,
		MainArrangement:    vertical,
		CrossArrangement:   horizontal,
		MaxItemsInMainAxis: maxItemsInEachColumn,
		CrossAlignment:     AlignStart,
		Density:            1,
	}
}

// Placement is the final position of one input box.
type Placement struct {
	Index  int
	Key    string
	Line   int
	X, Y   int
	Width  int
	Height int
}

// Result is the outcome of Measure.
type Result struct {
	Width, Height int
	Flow          FlowResult
	// Placements is in input order.
	Placements []Placement
}

// Validate checks the policy on its own.
func (p Policy) Validate() error {
	if p.MaxItemsInMainAxis < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxItems, p.MaxItemsInMainAxis)
	}
	return nil
}

// Measure lays out boxes under c. It fails before measuring anything when c
// or the policy is invalid.
func (p Policy) Measure(boxes []Measurable, c Constraints) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	if len(boxes) == 0 {
		// the container stays 0x0; Flow reports the minimums as the breaker does
		oc := NewOrientationIndependentConstraints(c, p.Orientation)
		return Result{Flow: FlowResult{MainAxisTotalSize: oc.MainAxisMin, CrossAxisTotalSize: oc.CrossAxisMin}}, nil
	}

	ps := p.newPass(boxes)
	flow := ps.breakDownItems(NewOrientationIndependentConstraints(c, p.Orientation))

	crossSizes := make([]int, len(flow.Lines))
	for i, line := range flow.Lines {
		crossSizes[i] = line.CrossAxisSize
	}
	lineOffsets := make([]int, len(flow.Lines))
	p.crossArrangement().Arrange(p.Density, flow.CrossAxisTotalSize, crossSizes, ps.crossDirection(), lineOffsets)

	width, height := flow.MainAxisTotalSize, flow.CrossAxisTotalSize
	if p.Orientation == Vertical {
		width, height = height, width
	}
	result := Result{
		Width:      c.ConstrainWidth(width),
		Height:     c.ConstrainHeight(height),
		Flow:       flow,
		Placements: make([]Placement, len(boxes)),
	}
	for li, line := range flow.Lines {
		ps.placeLine(line, li, lineOffsets[li], result.Placements)
	}

	flowLog.Debug("flow measured",
		"orientation", p.Orientation,
		"boxes", len(boxes),
		"lines", len(flow.Lines),
		"width", result.Width,
		"height", result.Height,
		"measurements", ps.measured,
	)
	return result, nil
}

// MinIntrinsicWidth is the narrowest width the flow can take given height.
func (p Policy) MinIntrinsicWidth(boxes []Measurable, height int) (int, error) {
	if p.Orientation == Horizontal {
		return p.minIntrinsicMainAxisSize(boxes, height)
	}
	return p.intrinsicCrossAxisSize(boxes, height)
}

// MaxIntrinsicWidth is the width the flow takes when nothing wraps for
// lack of space.
func (p Policy) MaxIntrinsicWidth(boxes []Measurable, height int) (int, error) {
	if p.Orientation == Horizontal {
		return p.maxIntrinsicMainAxisSize(boxes, height)
	}
	return p.intrinsicCrossAxisSize(boxes, height)
}

// MinIntrinsicHeight is the smallest height the flow can take given width.
func (p Policy) MinIntrinsicHeight(boxes []Measurable, width int) (int, error) {
	if p.Orientation == Horizontal {
		return p.intrinsicCrossAxisSize(boxes, width)
	}
	return p.minIntrinsicMainAxisSize(boxes, width)
}

// MaxIntrinsicHeight is the height the flow takes given width.
func (p Policy) MaxIntrinsicHeight(boxes []Measurable, width int) (int, error) {
	if p.Orientation == Horizontal {
		return p.intrinsicCrossAxisSize(boxes, width)
	}
	return p.maxIntrinsicMainAxisSize(boxes, width)
}

func (p Policy) minIntrinsicMainAxisSize(boxes []Measurable, crossAxisAvailable int) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return minIntrinsicMainAxisSize(
		newIntrinsicMemos(boxes),
		minMainAxisItemSize(p.Orientation),
		minCrossAxisItemSize(p.Orientation),
		crossAxisAvailable,
		p.mainSpacing(),
		p.crossSpacing(),
		p.MaxItemsInMainAxis,
	), nil
}

func (p Policy) maxIntrinsicMainAxisSize(boxes []Measurable, crossAxisAvailable int) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return maxIntrinsicMainAxisSize(
		newIntrinsicMemos(boxes),
		maxMainAxisItemSize(p.Orientation),
		crossAxisAvailable,
		p.mainSpacing(),
		p.MaxItemsInMainAxis,
	), nil
}

func (p Policy) intrinsicCrossAxisSize(boxes []Measurable, mainAxisAvailable int) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return intrinsicCrossAxisSize(
		newIntrinsicMemos(boxes),
		minMainAxisItemSize(p.Orientation),
		minCrossAxisItemSize(p.Orientation),
		mainAxisAvailable,
		p.mainSpacing(),
		p.crossSpacing(),
		p.MaxItemsInMainAxis,
	), nil
}

func (p Policy) mainArrangement() Arrangement {
	if p.MainArrangement == nil {
		return Start
	}
	return p.MainArrangement
}

func (p Policy) crossArrangement() Arrangement {
	if p.CrossArrangement == nil {
		return Start
	}
	return p.CrossArrangement
}

func (p Policy) mainSpacing() int  { return p.Density.CeilToPx(p.mainArrangement().Spacing()) }
func (p Policy) crossSpacing() int { return p.Density.CeilToPx(p.crossArrangement().Spacing()) }

// pass holds the per-call state of one Measure. The placeable arena is
// indexed by input position and allocated once.
type pass struct {
	orientation     Orientation
	direction       Direction
	density         Density
	mainArrangement Arrangement
	crossAlignment  CrossAlignment
	mainSpacing     int
	crossSpacing    int
	maxItems        int

	boxes      []Measurable
	memos      []*intrinsicMemo
	placeables []Placeable
	measured   int
}

func (p Policy) newPass(boxes []Measurable) *pass {
	return &pass{
		orientation:     p.Orientation,
		direction:       p.Direction,
		density:         p.Density,
		mainArrangement: p.mainArrangement(),
		crossAlignment:  p.CrossAlignment.resolve(AlignStart),
		mainSpacing:     p.mainSpacing(),
		crossSpacing:    p.crossSpacing(),
		maxItems:        p.MaxItemsInMainAxis,
		boxes:           boxes,
		memos:           newIntrinsicMemos(boxes),
		placeables:      make([]Placeable, len(boxes)),
	}
}

// mainDirection is the direction seen by the main axis; only a horizontal
// axis is mirrored.
func (p *pass) mainDirection() Direction {
	if p.orientation == Horizontal {
		return p.direction
	}
	return LTR
}

func (p *pass) crossDirection() Direction {
	if p.orientation == Vertical {
		return p.direction
	}
	return LTR
}

// placeLine places every box of line, whose cross-axis offset is now known.
func (p *pass) placeLine(line LineResult, lineIndex, crossOffset int, out []Placement) {
	crossHorizontal := p.orientation == Vertical
	for i := line.Start; i < line.End; i++ {
		placeable := p.placeables[i]
		data := p.boxes[i].ParentData()
		free := line.CrossAxisSize - crossAxisSize(placeable, p.orientation)
		cross := crossOffset + data.Align.resolve(p.crossAlignment).offset(free, p.direction, crossHorizontal)
		main := line.MainAxisPositions[i-line.Start]

		x, y := main, cross
		if p.orientation == Vertical {
			x, y = cross, main
		}
		placeable.PlaceAt(x, y)
		out[i] = Placement{
			Index:  i,
			Key:    data.Key,
			Line:   lineIndex,
			X:      x,
			Y:      y,
			Width:  placeable.Width(),
			Height: placeable.Height(),
		}
	}
}
