// SPDX-License-Identifier: MIT

package cost

import (
	"math"

	"github.com/katalvlaran/tsdist/series"
	"github.com/katalvlaran/tsdist/wavefront"
)

// Pair functions compute one distance between a (shorter or equal) and b.
// ws may be nil; pass a per-worker Workspace to reuse buffers.

func minimize(band float64) wavefront.Params {
	return wavefront.Params{Init: math.Inf(1), Band: band, Mode: wavefront.Minimize}
}

// PairDTW returns the banded DTW cost.
func PairDTW(ws *wavefront.Workspace, a, b []float64, band float64) (float64, error) {
	return wavefront.Distance(ws, a, b, minimize(band), DTW{}, DTW{})
}

// PairWDTW returns the banded WDTW cost with weights of length max(len(a), len(b)).
func PairWDTW(ws *wavefront.Workspace, a, b []float64, band float64, weights []float64) (float64, error) {
	ev := WDTW{Weights: weights}

	return wavefront.Distance(ws, a, b, minimize(band), ev, ev)
}

// PairADTW returns the banded amerced DTW cost.
func PairADTW(ws *wavefront.Workspace, a, b []float64, band, penalty float64) (float64, error) {
	ev := ADTW{Penalty: penalty}

	return wavefront.Distance(ws, a, b, minimize(band), ev, ev)
}

// PairERP returns the banded ERP cost.
func PairERP(ws *wavefront.Workspace, a, b []float64, band, gap float64) (float64, error) {
	ev := ERP{Gap: gap}

	return wavefront.Distance(ws, a, b, minimize(band), ev, ev)
}

// PairLCSS returns 1 - count/max(len(a), len(b)), where count is the banded
// LCSS similarity under epsilon.
func PairLCSS(ws *wavefront.Workspace, a, b []float64, band, epsilon float64) (float64, error) {
	ev := LCSS{Epsilon: epsilon}
	p := wavefront.Params{Init: 0, Band: band, Mode: wavefront.Maximize}
	sim, err := wavefront.Distance(ws, a, b, p, ev, ev)
	if err != nil {
		return 0, err
	}

	return 1 - sim/float64(max(len(a), len(b))), nil
}

// PairMSM returns the banded MSM cost.
func PairMSM(ws *wavefront.Workspace, a, b []float64, band float64) (float64, error) {
	return wavefront.Distance(ws, a, b, minimize(band), MSM{}, MSM{})
}

// PairTWE returns the banded TWE cost.
func PairTWE(ws *wavefront.Workspace, a, b []float64, band, stiffness, penalty float64) (float64, error) {
	ev := TWE{Stiffness: stiffness, Penalty: penalty}

	return wavefront.Distance(ws, a, b, minimize(band), ev, ev)
}

// WeightCache memoises WDTW logistic weights per length for one steepness g.
// It is owned by a single worker.
type WeightCache struct {
	g     float64
	byLen map[int][]float64
}

// NewWeightCache returns an empty cache for steepness g.
func NewWeightCache(g float64) *WeightCache {
	return &WeightCache{g: g, byLen: make(map[int][]float64)}
}

// For returns the weights for sequences whose longer length is l.
func (c *WeightCache) For(l int) []float64 {
	w, ok := c.byLen[l]
	if !ok {
		w = series.LogisticWeights(l, c.g)
		c.byLen[l] = w
	}

	return w
}
