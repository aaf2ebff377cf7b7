// SPDX-License-Identifier: MIT

// Package mp implements the matrix-profile join distance (MPdist).
//
// Every length-w window of a is compared with every window of b after
// z-normalisation. P_AB[i] is the best match of window i of a in b, P_BA[j]
// the best match of window j of b in a. The distance is a low order
// statistic of the concatenated profiles:
//
//	k = min(ceil(0.05·(len(a)+len(b))), len(P_AB)+len(P_BA)-1)
//	MPdist = k-th smallest value of P_AB ∪ P_BA
//
// Windows with zero variance z-normalise to all zeros, so two flat windows
// match exactly and a flat window is sqrt(w) away from any non-flat one.
//
// Complexity: O(len(a)·len(b)·w) time, O(len(a)+len(b)) space.
package mp

import (
	"math"

	"github.com/katalvlaran/tsdist/series"
)

// Threshold is the fraction of len(a)+len(b) that selects the order statistic.
const Threshold = 0.05

// Profiles returns the two join profiles of a and b for window w, clamped to
// min(w, len(a), len(b)). Either profile is nil when an input is empty or w < 1.
func Profiles(a, b []float64, w int) (pAB, pBA []float64) {
	w = min(w, len(a), len(b))
	if w < 1 {
		return nil, nil
	}
	na, nb := len(a)-w+1, len(b)-w+1
	pAB = make([]float64, na)
	pBA = make([]float64, nb)
	for i := range pAB {
		pAB[i] = math.Inf(1)
	}
	for j := range pBA {
		pBA[j] = math.Inf(1)
	}

	meanA, stdA := series.SlidingStats(a, w)
	meanB, stdB := series.SlidingStats(b, w)
	invA, invB := inverse(stdA), inverse(stdB)

	for i := 0; i < na; i++ {
		wa := a[i : i+w]
		for j := 0; j < nb; j++ {
			wb := b[j : j+w]
			var s float64
			for k := 0; k < w; k++ {
				d := (wa[k]-meanA[i])*invA[i] - (wb[k]-meanB[j])*invB[j]
				s += d * d
			}
			s = math.Sqrt(s)
			if s < pAB[i] {
				pAB[i] = s
			}
			if s < pBA[j] {
				pBA[j] = s
			}
		}
	}

	return pAB, pBA
}

// Distance returns MPdist(a, b) for window w (clamped as in Profiles).
// It returns NaN when either input is empty or w < 1.
func Distance(a, b []float64, w int) float64 {
	pAB, pBA := Profiles(a, b, w)
	if pAB == nil {
		return math.NaN()
	}
	p := make([]float64, 0, len(pAB)+len(pBA))
	p = append(p, pAB...)
	p = append(p, pBA...)

	k := int(math.Ceil(Threshold * float64(len(a)+len(b))))
	if k > len(p)-1 {
		k = len(p) - 1
	}

	return Select(p, k)
}

// inverse maps each std to 1/std, with 0 for flat windows.
func inverse(stds []float64) []float64 {
	out := make([]float64, len(stds))
	for i, s := range stds {
		if s > 0 {
			out[i] = 1 / s
		}
	}

	return out
}
