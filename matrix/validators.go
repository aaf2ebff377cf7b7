// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the structural checks a
//    distance matrix must pass (shape, symmetry, zero diagonal).
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly and tests can match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry runs O(n²) over the strict upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil (including a typed nil *Dense).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// normalizeTol rejects non-finite tolerances and flips negative ones.
func normalizeTol(tag string, tol float64) (float64, error) {
	if isNonFinite(tol) {
		return 0, validatorErrorf(tag, ErrNaNInf)
	}

	return math.Abs(tol), nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| <= tol for all i<j.
// Entries equal on both sides (including ±Inf pairs) are symmetric; a NaN
// entry is symmetric only with another NaN.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tol), ErrAsymmetry.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	tol, err := normalizeTol("ValidateSymmetric", tol)
	if err != nil {
		return err
	}

	n := m.Rows()
	var aij, aji float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if aij == aji || (math.IsNaN(aij) && math.IsNaN(aji)) {
				continue
			}
			if !(math.Abs(aij-aji) <= tol) {
				return validatorErrorf("ValidateSymmetric", fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |A[i,i]| <= tol for every i.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tol), ErrNonZeroDiagonal.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateZeroDiagonal", err)
	}
	tol, err := normalizeTol("ValidateZeroDiagonal", tol)
	if err != nil {
		return err
	}
	for i := 0; i < m.Rows(); i++ {
		v, _ := m.At(i, i)
		if !(math.Abs(v) <= tol) {
			return validatorErrorf("ValidateZeroDiagonal", fmt.Errorf("(%d,%d): %w", i, i, ErrNonZeroDiagonal))
		}
	}

	return nil
}

// ValidateSelfDistance checks the shape of a self-comparison result:
// square, symmetric and zero on the diagonal, all within tol.
func ValidateSelfDistance(m Matrix, tol float64) error {
	if err := ValidateSymmetric(m, tol); err != nil {
		return err
	}

	return ValidateZeroDiagonal(m, tol)
}
