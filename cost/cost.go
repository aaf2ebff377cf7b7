// SPDX-License-Identifier: MIT

package cost

import "math"

// DTW is plain dynamic time warping with a squared point cost.
type DTW struct{}

// Cell implements wavefront.Evaluator.
func (DTW) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	d := a[i] - b[j]

	return d*d + min(fromA, diag, fromB)
}

// WDTW weights the squared point cost by Weights[|i-j|].
// Weights must have at least max(len(a), len(b)) entries (see series.LogisticWeights).
type WDTW struct {
	Weights []float64
}

// Cell implements wavefront.Evaluator.
func (c WDTW) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	off := i - j
	if off < 0 {
		off = -off
	}
	d := a[i] - b[j]

	return d*d*c.Weights[off] + min(fromA, diag, fromB)
}

// ADTW adds Penalty to every non-diagonal step.
type ADTW struct {
	Penalty float64
}

// Cell implements wavefront.Evaluator.
func (c ADTW) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	d := a[i] - b[j]

	return d*d + min(fromA+c.Penalty, diag, fromB+c.Penalty)
}

// ERP is edit distance with real penalty; gaps are scored against Gap.
type ERP struct {
	Gap float64
}

// Cell implements wavefront.Evaluator.
func (c ERP) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	return min(
		diag+math.Abs(a[i]-b[j]),
		fromA+math.Abs(a[i]-c.Gap),
		fromB+math.Abs(b[j]-c.Gap),
	)
}

// LCSS counts matches within Epsilon; it runs in Maximize mode.
type LCSS struct {
	Epsilon float64
}

// Cell implements wavefront.Evaluator.
func (c LCSS) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	if math.Abs(a[i]-b[j]) <= c.Epsilon {
		return diag + 1
	}

	return max(fromA, fromB)
}

// MSM is the move-split-merge recurrence with unit split/merge cost.
// The sample before index 0 is taken as 0.
type MSM struct{}

// Cell implements wavefront.Evaluator.
func (MSM) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	ai, bj := a[i], b[j]
	var aPrev, bPrev float64
	if i > 0 {
		aPrev = a[i-1]
	}
	if j > 0 {
		bPrev = b[j-1]
	}

	return min(
		diag+math.Abs(ai-bj),
		fromA+msmSplitMerge(ai, aPrev, bj),
		fromB+msmSplitMerge(bj, ai, bPrev),
	)
}

// msmSplitMerge is C(x, y, z) = 1 + max(0, min(y,z) - x, x - max(y,z)):
// free (beyond the unit cost) when x lies between its neighbours y and z.
func msmSplitMerge(x, y, z float64) float64 {
	return 1 + max(0, min(y, z)-x, x-max(y, z))
}

// TWE is time warp edit distance with stiffness ν and deletion penalty λ.
// The sample before index 0 is taken as 0.
type TWE struct {
	Stiffness float64
	Penalty   float64
}

// Cell implements wavefront.Evaluator.
func (c TWE) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	ai, bj := a[i], b[j]
	var aPrev, bPrev float64
	if i > 0 {
		aPrev = a[i-1]
	}
	if j > 0 {
		bPrev = b[j-1]
	}
	del := c.Stiffness + c.Penalty
	off := i - j
	if off < 0 {
		off = -off
	}

	return min(
		fromA+math.Abs(aPrev-ai)+del,
		fromB+math.Abs(bPrev-bj)+del,
		diag+math.Abs(ai-bj)+math.Abs(aPrev-bPrev)+c.Stiffness*2*float64(off),
	)
}

// Euclidean returns sqrt(Σ (a_k - b_k)²) over the common prefix of a and b.
func Euclidean(a, b []float64) float64 {
	n := min(len(a), len(b))
	var s float64
	for k := 0; k < n; k++ {
		d := a[k] - b[k]
		s += d * d
	}

	return math.Sqrt(s)
}
