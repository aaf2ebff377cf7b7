// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics used to z-normalise feature tables
//     (one row per sequence, one column per feature).
//
// Exposed API:
//   - ColumnStats(X)       -> (means, stds)          // population statistics per column
//   - NormalizeColumns(X)  -> (Z, means, stds)       // (X - mean) / std, degenerate std ⇒ divisor 1
//   - ReplaceNonFinite(X)  -> Y                      // NaN/±Inf replaced by a finite value
//
// Determinism & Performance:
//   - Fixed i→j traversal over the flat row-major buffer.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opColumnStats      = "ColumnStats"
	opNormalizeColumns = "NormalizeColumns"
	opReplaceNonFinite = "ReplaceNonFinite"
)

// machineEpsilon is the float64 spacing at 1.0; column stds below it are
// treated as degenerate.
const machineEpsilon = 2.220446049250313e-16

// ColumnStats returns the mean and population standard deviation of each column.
//
// Implementation:
//   - Stage 1: validate X.
//   - Stage 2: accumulate column sums, divide by r.
//   - Stage 3: accumulate squared deviations, divide by r, take the root.
//
// Complexity: Time O(r*c), Space O(c).
func ColumnStats(X *Dense) (means, stds []float64, err error) {
	if err = ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnStats, err)
	}
	r, c := X.r, X.c
	means = make([]float64, c)
	stds = make([]float64, c)

	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += X.data[base+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	var d float64
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			d = X.data[base+j] - means[j]
			stds[j] += d * d
		}
	}
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] * invR)
	}

	return means, stds, nil
}

// NormalizeColumns returns a copy of X with every column z-normalised by its
// own population mean and standard deviation. Columns whose |std| is below
// machine epsilon are only centred (divisor 1).
//
// Implementation:
//   - Stage 1: ColumnStats.
//   - Stage 2: centred copy via ewBroadcastSubCols.
//   - Stage 3: scale each column by 1/std (or 1) in place.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func NormalizeColumns(X *Dense) (Z *Dense, means, stds []float64, err error) {
	means, stds, err = ColumnStats(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opNormalizeColumns, err)
	}
	Z, err = ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opNormalizeColumns, err)
	}
	inv := make([]float64, len(stds))
	for j, s := range stds {
		if math.Abs(s) < machineEpsilon {
			inv[j] = 1
		} else {
			inv[j] = 1 / s
		}
	}
	if err = ewScaleColsInPlace(Z, inv); err != nil {
		return nil, nil, nil, matrixErrorf(opNormalizeColumns, err)
	}

	return Z, means, stds, nil
}

// ReplaceNonFinite returns a copy of X with NaN and ±Inf replaced by val.
// Errors: ErrNilMatrix, ErrNaNInf if val itself is not finite.
func ReplaceNonFinite(X *Dense, val float64) (*Dense, error) {
	Y, err := ewReplaceNonFinite(X, val)
	if err != nil {
		return nil, matrixErrorf(opReplaceNonFinite, err)
	}

	return Y, nil
}
