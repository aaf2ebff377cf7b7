// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (optionally wrapped with an operation
// tag) and tests check them via errors.Is. No function panics on
// user-triggered error conditions; option constructors panic on nonsensical
// values (programmer error).

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistent grepping.
// Context is added with fmt.Errorf("Op: %w", ErrX) at the detection site.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions, e.g. ragged rows
	// in FromRows or a flat buffer whose length is not rows*cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNonZeroDiagonal signals that a diagonal entry exceeded the tolerance.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within tolerance")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
