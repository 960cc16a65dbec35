// breaker.go splits an ordered box sequence into lines.
//
// The scan is a fold over the sequence with one box of lookahead: the size
// of box i+1 (plus spacing) is known before deciding whether box i ends its
// line. The same fold drives the exact measurement pass and every intrinsic
// estimator, so they cannot disagree about where lines end.
package flow

// lineRules are the inputs of a line-breaking scan that stay fixed for the
// whole sequence.
type lineRules struct {
	mainAxisMax int // budget per line, may be Infinity
	spacing     int // gap between neighbouring boxes on a line
	maxItems    int // per-line item limit, Unbounded for none
}

// breakState is the accumulator threaded through the scan.
type breakState struct {
	leftOver  int // budget remaining on the current line
	lineStart int // index of the first box on the current line
	lineSize  int // main-axis size used by the current line, spacing included
	widest    int // largest finished line
}

func (r lineRules) start() breakState {
	return breakState{leftOver: r.mainAxisMax}
}

// shouldBreak reports whether the line ends after box index. nextSize is the
// lookahead size of box index+1 including its leading spacing.
func shouldBreak(index, count, lineStart, maxItems, leftOver, nextSize int) bool {
	return index+1 >= count ||
		index+1-lineStart >= maxItems ||
		nextSize > leftOver
}

// advance consumes box index whose size (spacing included) is itemSize. An
// Infinity budget is never used up, so such a line ends only at the item
// limit or the last box.
func (s breakState) advance(r lineRules, index, count, itemSize, nextSize int) (breakState, bool) {
	s.lineSize = addSizes(s.lineSize, itemSize)
	if r.mainAxisMax != Infinity {
		s.leftOver -= itemSize
	}
	if !shouldBreak(index, count, s.lineStart, r.maxItems, s.leftOver, nextSize) {
		return s, false
	}
	s.widest = max(s.widest, s.lineSize)
	s.lineSize = 0
	s.leftOver = r.mainAxisMax
	s.lineStart = index + 1
	return s, true
}

// breakLines runs the scan over count boxes. size reports the bare main-axis
// size of a box and is called exactly once per index, in order. It returns
// the exclusive end index of every line and the size of the widest line.
func breakLines(count int, size func(index int) int, r lineRules) ([]int, int) {
	if count == 0 {
		return nil, 0
	}
	ends := make([]int, 0, 4)
	state := r.start()
	next := size(0)
	for index := 0; index < count; index++ {
		item := next
		next = 0
		hasNext := index+1 < count
		if hasNext {
			next = addSizes(size(index+1), r.spacing)
		}
		var ended bool
		state, ended = state.advance(r, index, count, item, next)
		if ended {
			ends = append(ends, index+1)
			// the first box of a line carries no leading spacing
			if hasNext && next != Infinity {
				next -= r.spacing
			}
		}
	}
	return ends, state.widest
}

// addSizes adds non-negative sizes, saturating at Infinity.
func addSizes(a, b int) int {
	if a > Infinity-b {
		return Infinity
	}
	return a + b
}

// FlowResult is the outcome of the exact pass.
type FlowResult struct {
	// MainAxisTotalSize is the widest line, never the sum of lines.
	MainAxisTotalSize int
	// CrossAxisTotalSize sums line cross sizes and inter-line spacing.
	CrossAxisTotalSize int
	Lines              []LineResult
}

// LineCount returns the number of lines produced.
func (r FlowResult) LineCount() int { return len(r.Lines) }

// breakDownItems measures every box once, finds the line boundaries, then
// measures each line with a main-axis minimum equal to the widest line.
func (p *pass) breakDownItems(oc OrientationIndependentConstraints) FlowResult {
	count := len(p.boxes)
	if count == 0 {
		return FlowResult{MainAxisTotalSize: oc.MainAxisMin, CrossAxisTotalSize: oc.CrossAxisMin}
	}

	subset := OrientationIndependentConstraints{
		MainAxisMax:  oc.MainAxisMax,
		CrossAxisMax: oc.CrossAxisMax,
	}
	rules := lineRules{
		mainAxisMax: oc.MainAxisMax,
		spacing:     p.mainSpacing,
		maxItems:    p.maxItems,
	}
	ends, widest := breakLines(count, func(index int) int {
		return p.measureAndCache(index, subset)
	}, rules)

	mainAxisTotalSize := min(max(oc.MainAxisMin, widest), oc.MainAxisMax)
	lineConstraints := subset.WithMainAxisMin(mainAxisTotalSize)

	lines := make([]LineResult, 0, len(ends))
	crossAxisTotalSize := 0
	start := 0
	for _, end := range ends {
		line := p.measureLine(lineConstraints, start, end)
		crossAxisTotalSize += line.CrossAxisSize
		mainAxisTotalSize = max(mainAxisTotalSize, line.MainAxisSize)
		lines = append(lines, line)
		start = end
	}
	crossAxisTotalSize += p.crossSpacing * (len(lines) - 1)

	return FlowResult{
		MainAxisTotalSize:  max(mainAxisTotalSize, oc.MainAxisMin),
		CrossAxisTotalSize: max(crossAxisTotalSize, oc.CrossAxisMin),
		Lines:              lines,
	}
}

// measureAndCache returns the main-axis size the breaker uses for a box.
// Fixed boxes are measured for real and their placeable is kept in the
// arena; weighted boxes only report their minimum intrinsic size because
// their final size depends on which line they land on.
func (p *pass) measureAndCache(index int, c OrientationIndependentConstraints) int {
	if p.boxes[index].ParentData().Weight > 0 {
		return p.memos[index].mainAxisMin(p.orientation, Infinity)
	}
	placeable := p.boxes[index].Measure(c.WithMainAxisMin(0).ToBoxConstraints(p.orientation))
	p.placeables[index] = placeable
	p.measured++
	return mainAxisSize(placeable, p.orientation)
}
