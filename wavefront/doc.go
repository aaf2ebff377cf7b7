// SPDX-License-Identifier: MIT

// Package wavefront drives banded dynamic-programming recurrences between two
// numeric sequences by antidiagonals, keeping only three antidiagonals resident.
//
// 🚀 What is a wavefront engine?
//
//	Elastic distances (DTW, ERP, LCSS, MSM, TWE, ...) all fill an n×m table
//	where cell (i,j) depends on (i-1,j), (i-1,j-1) and (i,j-1). Cells on the
//	same antidiagonal d = i+j are independent, so the table can be swept one
//	antidiagonal at a time with three rolling buffers instead of n·m storage.
//
// ✨ Key features:
//   - Sakoe–Chiba band given as a fraction in [0,1]; the half-width is clamped
//     so that the final cell (n-1, m-1) is always reachable.
//   - Generic over the cell evaluator: each metric is a small value type, the
//     compiler instantiates one loop per evaluator (no interface call per cell).
//   - Minimize (cost) and Maximize (similarity count) modes.
//   - Separate evaluator slot for band/grid edge cells.
//   - Reusable Workspace so a worker can amortise buffer allocation.
//
// ⚙️ Usage:
//
//	ws := wavefront.NewWorkspace()
//	p := wavefront.Params{Init: math.Inf(1), Band: 0.1, Mode: wavefront.Minimize}
//	d, err := wavefront.Distance(ws, shorter, longer, p, cost.DTW{}, cost.DTW{})
//
// Performance:
//
//   - Time:   O(w·(n+m))
//   - Memory: O(w), w = effective band half-width (≤ max(n,m))
package wavefront
