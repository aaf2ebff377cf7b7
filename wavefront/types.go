// SPDX-License-Identifier: MIT

package wavefront

import (
	"fmt"

	"github.com/katalvlaran/tsdist"
)

// Mode selects how the recurrence accumulates.
//
//   - Minimize — accumulated non-negative cost; out-of-band cells usually +Inf.
//   - Maximize — accumulated similarity count (LCSS); out-of-band cells usually 0.
type Mode int

const (
	// Minimize accumulates cost; the virtual origin (-1,-1) is seeded with 0.
	Minimize Mode = iota

	// Maximize accumulates a similarity count; the virtual origin is seeded with Init.
	Maximize
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Evaluator computes one DP cell from the two sequences, the cell coordinates
// and its three predecessors:
//   - fromA — cell (i-1, j), the step that consumed a[i]
//   - diag  — cell (i-1, j-1)
//   - fromB — cell (i, j-1), the step that consumed b[j]
//
// Predecessors outside the grid or band carry Params.Init.
// Implementations must be pure.
type Evaluator interface {
	Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64
}

// EvaluatorFunc adapts an ordinary function to Evaluator.
type EvaluatorFunc func(a, b []float64, i, j int, fromA, diag, fromB float64) float64

// Cell calls f.
func (f EvaluatorFunc) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	return f(a, b, i, j, fromA, diag, fromB)
}

// Params configures one engine invocation.
//
// Fields:
//   - Init — value of every cell outside the grid or band.
//   - Band — Sakoe–Chiba fraction in [0,1]; 0 = nearest diagonal, 1 = unrestricted.
//   - Mode — Minimize or Maximize.
type Params struct {
	Init float64
	Band float64
	Mode Mode
}

var (
	// ErrEmptySequence indicates one or both inputs are empty.
	ErrEmptySequence = fmt.Errorf("%w: wavefront: input sequences must be non-empty", tsdist.ErrInvalidParameter)

	// ErrLengthOrder indicates len(a) > len(b); callers must pass the shorter sequence first.
	ErrLengthOrder = fmt.Errorf("%w: wavefront: first sequence must not be longer than the second", tsdist.ErrInvalidParameter)

	// ErrBandRange indicates a band fraction outside [0,1] (or NaN).
	ErrBandRange = fmt.Errorf("%w: Sakoe-Chiba band must be between 0.0 and 1.0", tsdist.ErrInvalidParameter)

	// ErrMode indicates an unknown Mode value.
	ErrMode = fmt.Errorf("%w: wavefront: unknown mode", tsdist.ErrInvalidParameter)
)
