package flow

import "math"

// LineResult is the measured geometry of one line.
type LineResult struct {
	// Start and End delimit the line's boxes as a half-open index range into
	// the input sequence.
	Start, End    int
	MainAxisSize  int
	CrossAxisSize int
	// MainAxisPositions holds one main-axis offset per box, relative to the
	// start of the line.
	MainAxisPositions []int
}

// Len returns the number of boxes on the line.
func (l LineResult) Len() int { return l.End - l.Start }

// measureLine sizes boxes [start,end) as one line. Fixed boxes reuse the
// placeable cached by the breaker; weighted boxes split the
// leftover main-axis space in proportion to their weights.
func (p *pass) measureLine(c OrientationIndependentConstraints, start, end int) LineResult {
	mainAxisMax := c.MainAxisMax
	fixedSpace := 0
	crossAxisSpace := 0
	totalWeight := 0.0
	weightedCount := 0
	spaceAfterLastFixed := 0

	for i := start; i < end; i++ {
		weight := p.boxes[i].ParentData().Weight
		if weight > 0 {
			totalWeight += weight
			weightedCount++
			continue
		}
		// the breaker measured every fixed box already
		placeable := p.placeables[i]
		size := mainAxisSize(placeable, p.orientation)
		spaceAfterLastFixed = p.mainSpacing
		if mainAxisMax != Infinity {
			spaceAfterLastFixed = max(0, min(p.mainSpacing, mainAxisMax-fixedSpace-size))
		}
		fixedSpace += size + spaceAfterLastFixed
		crossAxisSpace = max(crossAxisSpace, crossAxisSize(placeable, p.orientation))
	}

	weightedSpace := 0
	if weightedCount == 0 {
		fixedSpace -= spaceAfterLastFixed
	} else {
		target := c.MainAxisMin
		if mainAxisMax != Infinity {
			target = mainAxisMax
		}
		spacingTotal := p.mainSpacing * (weightedCount - 1)
		weights := make([]float64, 0, weightedCount)
		for i := start; i < end; i++ {
			if w := p.boxes[i].ParentData().Weight; w > 0 {
				weights = append(weights, w)
			}
		}
		shares := weightShares(weights, target-fixedSpace-spacingTotal)
		k := 0
		for i := start; i < end; i++ {
			data := p.boxes[i].ParentData()
			if data.Weight <= 0 {
				continue
			}
			share := shares[k]
			k++
			minMain := 0
			if data.Fill {
				minMain = share
			}
			placeable := p.boxes[i].Measure(OrientationIndependentConstraints{
				MainAxisMin:  minMain,
				MainAxisMax:  share,
				CrossAxisMax: c.CrossAxisMax,
			}.ToBoxConstraints(p.orientation))
			p.placeables[i] = placeable
			p.measured++
			weightedSpace += mainAxisSize(placeable, p.orientation)
			crossAxisSpace = max(crossAxisSpace, crossAxisSize(placeable, p.orientation))
		}
		upper := Infinity
		if mainAxisMax != Infinity {
			upper = max(0, mainAxisMax-fixedSpace)
		}
		weightedSpace = clamp(weightedSpace+spacingTotal, 0, upper)
	}

	mainAxisLayoutSize := max(0, fixedSpace+weightedSpace)
	lineMain := max(mainAxisLayoutSize, c.MainAxisMin)
	if totalWeight > 0 && mainAxisMax != Infinity {
		lineMain = mainAxisMax
	}
	lineCross := max(crossAxisSpace, c.CrossAxisMin)

	sizes := make([]int, end-start)
	for i := start; i < end; i++ {
		sizes[i-start] = mainAxisSize(p.placeables[i], p.orientation)
	}
	positions := make([]int, len(sizes))
	p.mainArrangement.Arrange(p.density, lineMain, sizes, p.mainDirection(), positions)

	return LineResult{
		Start:             start,
		End:               end,
		MainAxisSize:      lineMain,
		CrossAxisSize:     lineCross,
		MainAxisPositions: positions,
	}
}

// weightShares splits available among weights, rounding each share and then
// spreading the rounding error one unit at a time from the first box on, so
// the shares sum to exactly available.
func weightShares(weights []float64, available int) []int {
	shares := make([]int, len(weights))
	if len(weights) == 0 {
		return shares
	}
	available = max(0, available)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	unit := float64(available) / total
	rounded := 0
	for i, w := range weights {
		shares[i] = int(math.Round(unit * w))
		rounded += shares[i]
	}
	remainder := available - rounded
	for i := range shares {
		if remainder == 0 {
			break
		}
		step := 1
		if remainder < 0 {
			step = -1
		}
		if shares[i]+step < 0 {
			continue
		}
		shares[i] += step
		remainder -= step
	}
	return shares
}
