// intrinsic.go answers "how big would this flow be" without measuring any
// box under real constraints. Every estimator replays the breaker's fold
// over intrinsic sizes, so estimated and measured line boundaries match when
// the intrinsic and measured sizes agree.
package flow

type intrinsicKind int

const (
	minWidthQuery intrinsicKind = iota
	maxWidthQuery
	minHeightQuery
	maxHeightQuery
)

type intrinsicQuery struct {
	kind intrinsicKind
	hint int
}

// intrinsicMemo caches a box's intrinsic answers for the lifetime of one pass.
type intrinsicMemo struct {
	box   IntrinsicMeasurable
	cache map[intrinsicQuery]int
	calls int
}

func newIntrinsicMemos(boxes []Measurable) []*intrinsicMemo {
	memos := make([]*intrinsicMemo, len(boxes))
	for i, box := range boxes {
		memos[i] = &intrinsicMemo{box: box}
	}
	return memos
}

func (m *intrinsicMemo) query(kind intrinsicKind, hint int) int {
	key := intrinsicQuery{kind: kind, hint: hint}
	if v, ok := m.cache[key]; ok {
		return v
	}
	if m.cache == nil {
		m.cache = make(map[intrinsicQuery]int, 4)
	}
	m.calls++
	var v int
	switch kind {
	case minWidthQuery:
		v = m.box.MinIntrinsicWidth(hint)
	case maxWidthQuery:
		v = m.box.MaxIntrinsicWidth(hint)
	case minHeightQuery:
		v = m.box.MinIntrinsicHeight(hint)
	case maxHeightQuery:
		v = m.box.MaxIntrinsicHeight(hint)
	}
	m.cache[key] = v
	return v
}

func (m *intrinsicMemo) mainAxisMin(o Orientation, crossAxisSize int) int {
	if o == Horizontal {
		return m.query(minWidthQuery, crossAxisSize)
	}
	return m.query(minHeightQuery, crossAxisSize)
}

// itemSize is one intrinsic query on one box, given the other axis' size.
type itemSize func(m *intrinsicMemo, other int) int

func minMainAxisItemSize(o Orientation) itemSize {
	if o == Horizontal {
		return func(m *intrinsicMemo, h int) int { return m.query(minWidthQuery, h) }
	}
	return func(m *intrinsicMemo, w int) int { return m.query(minHeightQuery, w) }
}

func maxMainAxisItemSize(o Orientation) itemSize {
	if o == Horizontal {
		return func(m *intrinsicMemo, h int) int { return m.query(maxWidthQuery, h) }
	}
	return func(m *intrinsicMemo, w int) int { return m.query(maxHeightQuery, w) }
}

func minCrossAxisItemSize(o Orientation) itemSize {
	if o == Horizontal {
		return func(m *intrinsicMemo, w int) int { return m.query(minHeightQuery, w) }
	}
	return func(m *intrinsicMemo, h int) int { return m.query(minWidthQuery, h) }
}

// maxIntrinsicMainAxisSize is the widest line when lines end only at the
// item limit or the last box. Overflow never breaks a line here, which is
// the same fold run with an unbounded budget.
func maxIntrinsicMainAxisSize(memos []*intrinsicMemo, mainSize itemSize, crossAxisAvailable, mainAxisSpacing, maxItems int) int {
	_, widest := breakLines(len(memos), func(index int) int {
		return mainSize(memos[index], crossAxisAvailable)
	}, lineRules{mainAxisMax: Infinity, spacing: mainAxisSpacing, maxItems: maxItems})
	return widest
}

// intrinsicLines replays the breaker over intrinsic sizes. Each box is asked
// for its cross size given the whole main axis, then for its main size given
// that cross size.
func intrinsicLines(memos []*intrinsicMemo, mainSize, crossSize itemSize, mainAxisAvailable, mainAxisSpacing, maxItems int) (ends []int, crossSizes []int) {
	crossSizes = make([]int, len(memos))
	ends, _ = breakLines(len(memos), func(index int) int {
		cross := crossSize(memos[index], mainAxisAvailable)
		crossSizes[index] = cross
		return mainSize(memos[index], cross)
	}, lineRules{mainAxisMax: mainAxisAvailable, spacing: mainAxisSpacing, maxItems: maxItems})
	return ends, crossSizes
}

// intrinsicCrossAxisSize is the cross-axis extent of the flow when the main
// axis offers mainAxisAvailable.
func intrinsicCrossAxisSize(memos []*intrinsicMemo, mainSize, crossSize itemSize, mainAxisAvailable, mainAxisSpacing, crossAxisSpacing, maxItems int) int {
	if len(memos) == 0 {
		return 0
	}
	ends, crossSizes := intrinsicLines(memos, mainSize, crossSize, mainAxisAvailable, mainAxisSpacing, maxItems)
	return stackedCrossAxisSize(ends, crossSizes, crossAxisSpacing)
}

// minIntrinsicMainAxisSize finds the smallest main-axis budget whose layout
// fits within crossAxisAvailable. Box sizes are fixed up front, then the
// budget is binary searched between the largest box and a single line
// holding every box. The search assumes cross usage never grows with the
// budget, which holds when every box has the same cross size. Lines of
// uneven cross size can use more room under a wider budget, so in that case
// the answer is checked against every smaller layout. If no budget fits,
// the single-line size is returned.
func minIntrinsicMainAxisSize(memos []*intrinsicMemo, mainSize, crossSize itemSize, crossAxisAvailable, mainAxisSpacing, crossAxisSpacing, maxItems int) int {
	count := len(memos)
	if count == 0 {
		return 0
	}
	mainSizes := make([]int, count)
	crossSizes := make([]int, count)
	for i, m := range memos {
		mainSizes[i] = mainSize(m, crossAxisAvailable)
		crossSizes[i] = crossSize(m, mainSizes[i])
	}

	largest := 0
	singleLine := 0
	for i, size := range mainSizes {
		largest = max(largest, size)
		if i > 0 {
			singleLine = addSizes(singleLine, mainAxisSpacing)
		}
		singleLine = addSizes(singleLine, size)
	}

	low, high := largest, singleLine
	for low < high {
		mid := low + (high-low)/2
		if usage, _ := crossAxisUsage(mainSizes, crossSizes, mid, mainAxisSpacing, crossAxisSpacing, maxItems); usage <= crossAxisAvailable {
			high = mid
		} else {
			low = mid + 1
		}
	}
	if uniform(crossSizes) {
		return low
	}
	if best, ok := smallestFittingBudget(mainSizes, crossSizes, low, largest, crossAxisAvailable, mainAxisSpacing, crossAxisSpacing, maxItems); ok {
		return best
	}
	return singleLine
}

// smallestFittingBudget walks down from budget to floor one distinct layout
// at a time and returns the smallest budget whose cross usage fits. The
// layout under a budget is the same as the layout under its widest line, so
// every budget between the two can be skipped.
func smallestFittingBudget(mainSizes, crossSizes []int, budget, floor, crossAxisAvailable, mainAxisSpacing, crossAxisSpacing, maxItems int) (int, bool) {
	best, found := 0, false
	for budget >= floor {
		usage, widest := crossAxisUsage(mainSizes, crossSizes, budget, mainAxisSpacing, crossAxisSpacing, maxItems)
		if usage <= crossAxisAvailable {
			best, found = widest, true
		}
		budget = widest - 1
	}
	return best, found
}

func uniform(sizes []int) bool {
	for _, size := range sizes[1:] {
		if size != sizes[0] {
			return false
		}
	}
	return true
}

// crossAxisUsage is the cross-axis size of the flow for fixed box sizes and
// a candidate main-axis budget, along with the widest line that budget
// produces.
func crossAxisUsage(mainSizes, crossSizes []int, mainAxisAvailable, mainAxisSpacing, crossAxisSpacing, maxItems int) (usage, widest int) {
	ends, widest := breakLines(len(mainSizes), func(index int) int {
		return mainSizes[index]
	}, lineRules{mainAxisMax: mainAxisAvailable, spacing: mainAxisSpacing, maxItems: maxItems})
	return stackedCrossAxisSize(ends, crossSizes, crossAxisSpacing), widest
}

// stackedCrossAxisSize sums each line's tallest box plus the spacing between
// lines.
func stackedCrossAxisSize(ends []int, crossSizes []int, crossAxisSpacing int) int {
	total := 0
	start := 0
	for _, end := range ends {
		line := 0
		for _, size := range crossSizes[start:end] {
			line = max(line, size)
		}
		total += line
		start = end
	}
	if len(ends) > 1 {
		total += crossAxisSpacing * (len(ends) - 1)
	}
	return total
}
