package flow

// IntrinsicMeasurable answers size queries without committing to constraints.
// Hints may be Infinity.
type IntrinsicMeasurable interface {
	MinIntrinsicWidth(height int) int
	MaxIntrinsicWidth(height int) int
	MinIntrinsicHeight(width int) int
	MaxIntrinsicHeight(width int) int
}

// Measurable is a box the flow engine can lay out. Implementations must be
// deterministic for the duration of a pass and must not be shared between
// concurrent passes.
type Measurable interface {
	IntrinsicMeasurable
	ParentData() ParentData
	// Measure sizes the box under c. A box may report a size outside c; the
	// container clamps its own size, not its children.
	Measure(c Constraints) Placeable
}

// Placeable is a measured box waiting for its position.
type Placeable interface {
	Width() int
	Height() int
	// PlaceAt is called exactly once per pass with the final top-left corner
	// relative to the container.
	PlaceAt(x, y int)
}

// ParentData carries the per-box attributes the container reads.
type ParentData struct {
	Key string
	// Weight > 0 makes the box share the line's leftover main-axis space.
	Weight float64
	// Fill forces a weighted box to occupy its whole share.
	Fill  bool
	Align CrossAlignment
}

// FixedBox is a rigid box that reports the same size for every query and
// ignores the constraints it is measured under.
type FixedBox struct {
	Key    string
	W, H   int
	Weight float64
	Fill   bool
	Align  CrossAlignment

	// X and Y record the last placement.
	X, Y   int
	Placed int
}

func (b *FixedBox) MinIntrinsicWidth(int) int  { return b.W }
func (b *FixedBox) MaxIntrinsicWidth(int) int  { return b.W }
func (b *FixedBox) MinIntrinsicHeight(int) int { return b.H }
func (b *FixedBox) MaxIntrinsicHeight(int) int { return b.H }

func (b *FixedBox) ParentData() ParentData {
	return ParentData{Key: b.Key, Weight: b.Weight, Fill: b.Fill, Align: b.Align}
}

// Measure returns the box itself. Weighted boxes honour the main-axis share
// handed to them through the minimum constraint.
func (b *FixedBox) Measure(c Constraints) Placeable {
	if b.Weight > 0 {
		return &fixedPlaceable{box: b, w: max(b.W, c.MinWidth), h: max(b.H, c.MinHeight)}
	}
	return &fixedPlaceable{box: b, w: b.W, h: b.H}
}

type fixedPlaceable struct {
	box  *FixedBox
	w, h int
}

func (p *fixedPlaceable) Width() int  { return p.w }
func (p *fixedPlaceable) Height() int { return p.h }

func (p *fixedPlaceable) PlaceAt(x, y int) {
	p.box.X, p.box.Y = x, y
	p.box.Placed++
}
