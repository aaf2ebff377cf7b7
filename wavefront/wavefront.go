// SPDX-License-Identifier: MIT

package wavefront

import (
	"math"
)

// Workspace owns the three rolling antidiagonal buffers of the engine.
// A Workspace may be reused across calls of any sequence lengths; it is not
// safe for concurrent use, so each worker keeps its own.
type Workspace struct {
	bufs [3][]float64
}

// NewWorkspace returns an empty Workspace; buffers grow on first use.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// prepare sizes every buffer to n slots filled with init.
func (ws *Workspace) prepare(n int, init float64) {
	for k := range ws.bufs {
		if cap(ws.bufs[k]) < n {
			ws.bufs[k] = make([]float64, n)
		}
		ws.bufs[k] = ws.bufs[k][:n]
		fill(ws.bufs[k], init)
	}
}

// EffectiveWindow returns the Sakoe–Chiba half-width used for sequences of
// lengths n <= m: ceil(band·m), raised to m-n so that (n-1, m-1) is reachable
// and capped at m-1 where the band no longer restricts anything.
func EffectiveWindow(n, m int, band float64) int {
	w := int(math.Ceil(band * float64(m)))
	if w < m-n {
		w = m - n
	}
	if w > m-1 {
		w = m - 1
	}
	if w < 0 {
		w = 0
	}

	return w
}

// Distance evaluates the banded recurrence between a and b (len(a) <= len(b))
// and returns the value of cell (len(a)-1, len(b)-1).
//
// Implementation:
//   - Stage 1: validate inputs, compute the half-width w and size the buffers
//     to 2w+3 slots; slot k = i-j+w+1 holds cell (i, j) of its antidiagonal.
//   - Stage 2: seed the virtual origin (-1,-1) on antidiagonal -2.
//   - Stage 3: for d = 0..n+m-2 reset the current buffer to Init and evaluate
//     every in-band cell; fromA = prev[k-1], fromB = prev[k+1], diag = prev2[k].
//   - Stage 4: rotate buffers and read the final cell.
//
// Cells on the grid or band boundary (i == 0, j == 0 or |i-j| == w) go to edge,
// every other cell to cell.
//
// Complexity: O(w·(n+m)) time, O(w) extra space.
func Distance[C Evaluator, E Evaluator](ws *Workspace, a, b []float64, p Params, cell C, edge E) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmptySequence
	}
	if n > m {
		return 0, ErrLengthOrder
	}
	if math.IsNaN(p.Band) || p.Band < 0 || p.Band > 1 {
		return 0, ErrBandRange
	}
	if p.Mode != Minimize && p.Mode != Maximize {
		return 0, ErrMode
	}
	if ws == nil {
		ws = NewWorkspace()
	}

	w := EffectiveWindow(n, m, p.Band)
	center := w + 1
	ws.prepare(2*w+3, p.Init)
	prev2, prev, cur := ws.bufs[0], ws.bufs[1], ws.bufs[2]

	if p.Mode == Minimize {
		prev2[center] = 0
	} else {
		prev2[center] = p.Init
	}

	last := n + m - 2
	for d := 0; d <= last; d++ {
		fill(cur, p.Init)

		lo := d - (m - 1)
		if lo < 0 {
			lo = 0
		}
		if d > w {
			// i - j >= -w  <=>  i >= (d-w)/2, rounded up
			if bl := (d - w + 1) / 2; bl > lo {
				lo = bl
			}
		}
		hi := (d + w) / 2
		if hi > d {
			hi = d
		}
		if hi > n-1 {
			hi = n - 1
		}

		for i := lo; i <= hi; i++ {
			j := d - i
			k := i - j + center
			fromA, diag, fromB := prev[k-1], prev2[k], prev[k+1]
			if i == 0 || j == 0 || i-j == w || j-i == w {
				cur[k] = edge.Cell(a, b, i, j, fromA, diag, fromB)
			} else {
				cur[k] = cell.Cell(a, b, i, j, fromA, diag, fromB)
			}
		}

		prev2, prev, cur = prev, cur, prev2
	}

	return prev[(n-1)-(m-1)+center], nil
}

// fill sets every element of s to v.
func fill(s []float64, v float64) {
	for i := range s {
		s[i] = v
	}
}
