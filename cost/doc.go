// SPDX-License-Identifier: MIT

// Package cost is the catalog of elastic cost recurrences and their
// parameter rules.
//
// Every metric is a small value type implementing wavefront.Evaluator, so the
// engine is instantiated once per metric and the per-cell call is direct:
//
//	DTW     squared difference + min of the three predecessors
//	WDTW    squared difference weighted by a logistic function of |i-j|
//	ADTW    DTW with an additive penalty on non-diagonal steps
//	ERP     edit distance with a constant gap value
//	LCSS    longest common subsequence under a tolerance (Maximize mode)
//	MSM     move-split-merge
//	TWE     time warp edit with stiffness ν and penalty λ
//
// The Pair* functions wrap an evaluator with its engine parameters and any
// post-processing (LCSS normalisation) and are what the pairwise kernels call.
package cost
