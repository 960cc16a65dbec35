// orientation.go maps two-dimensional box constraints onto the main and
// cross axes of a flow container so the same line-breaking code serves both
// flow rows and flow columns.
package flow

import (
	"fmt"
	"math"
)

// Infinity marks an unbounded maximum on either axis.
const Infinity = math.MaxInt

// Orientation is the direction items flow along inside a line.
type Orientation int

const (
	// Horizontal lays items out left to right and stacks lines top to bottom.
	Horizontal Orientation = iota
	// Vertical lays items out top to bottom and stacks lines side by side.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "column"
	}
	return "row"
}

// Direction is the reading direction used for horizontal positions.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Constraints bound the size of a box in absolute width/height terms.
// Max values may be Infinity.
type Constraints struct {
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
}

// Loose returns constraints allowing any size up to width x height.
func Loose(width, height int) Constraints {
	return Constraints{MaxWidth: width, MaxHeight: height}
}

// Fixed returns constraints that admit exactly width x height.
func Fixed(width, height int) Constraints {
	return Constraints{MinWidth: width, MaxWidth: width, MinHeight: height, MaxHeight: height}
}

// Validate rejects negative bounds and min > max on either axis.
func (c Constraints) Validate() error {
	if c.MinWidth < 0 || c.MinHeight < 0 || c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("%w: negative bound in %v", ErrInvalidConstraints, c)
	}
	if c.MinWidth > c.MaxWidth {
		return fmt.Errorf("%w: min width %d > max width %d", ErrInvalidConstraints, c.MinWidth, c.MaxWidth)
	}
	if c.MinHeight > c.MaxHeight {
		return fmt.Errorf("%w: min height %d > max height %d", ErrInvalidConstraints, c.MinHeight, c.MaxHeight)
	}
	return nil
}

// ConstrainWidth clamps width into [MinWidth, MaxWidth].
func (c Constraints) ConstrainWidth(width int) int {
	return clamp(width, c.MinWidth, c.MaxWidth)
}

// ConstrainHeight clamps height into [MinHeight, MaxHeight].
func (c Constraints) ConstrainHeight(height int) int {
	return clamp(height, c.MinHeight, c.MaxHeight)
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(w=%s..%s, h=%s..%s)",
		formatBound(c.MinWidth), formatBound(c.MaxWidth),
		formatBound(c.MinHeight), formatBound(c.MaxHeight))
}

// OrientationIndependentConstraints expresses Constraints along the main and
// cross axes. Values are never mutated in place; use the With* helpers.
type OrientationIndependentConstraints struct {
	MainAxisMin  int
	MainAxisMax  int
	CrossAxisMin int
	CrossAxisMax int
}

// NewOrientationIndependentConstraints projects c onto the axes of o.
func NewOrientationIndependentConstraints(c Constraints, o Orientation) OrientationIndependentConstraints {
	if o == Horizontal {
		return OrientationIndependentConstraints{
			MainAxisMin:  c.MinWidth,
			MainAxisMax:  c.MaxWidth,
			CrossAxisMin: c.MinHeight,
			CrossAxisMax: c.MaxHeight,
		}
	}
	return OrientationIndependentConstraints{
		MainAxisMin:  c.MinHeight,
		MainAxisMax:  c.MaxHeight,
		CrossAxisMin: c.MinWidth,
		CrossAxisMax: c.MaxWidth,
	}
}

// ToBoxConstraints maps the main/cross bounds back to width/height.
func (oc OrientationIndependentConstraints) ToBoxConstraints(o Orientation) Constraints {
	if o == Horizontal {
		return Constraints{
			MinWidth:  oc.MainAxisMin,
			MaxWidth:  oc.MainAxisMax,
			MinHeight: oc.CrossAxisMin,
			MaxHeight: oc.CrossAxisMax,
		}
	}
	return Constraints{
		MinWidth:  oc.CrossAxisMin,
		MaxWidth:  oc.CrossAxisMax,
		MinHeight: oc.MainAxisMin,
		MaxHeight: oc.MainAxisMax,
	}
}

// WithMainAxisMin returns a copy with a new main-axis minimum.
func (oc OrientationIndependentConstraints) WithMainAxisMin(v int) OrientationIndependentConstraints {
	oc.MainAxisMin = v
	return oc
}

// WithMainAxisMax returns a copy with a new main-axis maximum.
func (oc OrientationIndependentConstraints) WithMainAxisMax(v int) OrientationIndependentConstraints {
	oc.MainAxisMax = v
	return oc
}

// WithCrossAxisMin returns a copy with a new cross-axis minimum.
func (oc OrientationIndependentConstraints) WithCrossAxisMin(v int) OrientationIndependentConstraints {
	oc.CrossAxisMin = v
	return oc
}

// mainAxisSize picks the main-axis extent of a measured box.
func mainAxisSize(p Placeable, o Orientation) int {
	if o == Horizontal {
		return p.Width()
	}
	return p.Height()
}

// crossAxisSize picks the cross-axis extent of a measured box.
func crossAxisSize(p Placeable, o Orientation) int {
	if o == Horizontal {
		return p.Height()
	}
	return p.Width()
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}

func formatBound(v int) string {
	if v == Infinity {
		return "inf"
	}
	return fmt.Sprint(v)
}
