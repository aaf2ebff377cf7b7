// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) shared
//     by the statistics transforms.
//   - Keep all loops deterministic and cache-friendly over the Dense buffer.

package matrix

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
// Time: O(r*c). Space: O(r*c). Deterministic i→j loops.
func ewBroadcastSubCols(X *Dense, colMeans []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("broadcastSubCols", err)
	}
	r, c := X.r, X.c
	if len(colMeans) != c {
		return nil, matrixErrorf("broadcastSubCols", ErrDimensionMismatch)
	}
	out, err := NewDense(r, c, X.options()...)
	if err != nil {
		return nil, matrixErrorf("broadcastSubCols", err)
	}
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			out.data[base+j] = X.data[base+j] - colMeans[j]
		}
	}

	return out, nil
}

// ewScaleColsInPlace computes X[i,j] *= scale[j].
func ewScaleColsInPlace(X *Dense, scale []float64) error {
	if len(scale) != X.c {
		return matrixErrorf("scaleCols", ErrDimensionMismatch)
	}
	for i := 0; i < X.r; i++ {
		base := i * X.c
		for j := 0; j < X.c; j++ {
			X.data[base+j] *= scale[j]
		}
	}

	return nil
}

// ewReplaceNonFinite returns a copy of X with NaN/±Inf replaced by val.
func ewReplaceNonFinite(X *Dense, val float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("ReplaceNonFinite", err)
	}
	if isNonFinite(val) {
		return nil, matrixErrorf("ReplaceNonFinite", ErrNaNInf)
	}
	out, err := NewDense(X.r, X.c, X.options()...)
	if err != nil {
		return nil, matrixErrorf("ReplaceNonFinite", err)
	}
	for idx, v := range X.data {
		if isNonFinite(v) {
			v = val
		}
		out.data[idx] = v
	}

	return out, nil
}

// options reproduces the policy of m as constructor options.
func (m *Dense) options() []Option {
	if m.validateNaNInf {
		return []Option{WithValidateNaNInf()}
	}

	return []Option{WithAllowNonFinite()}
}

// matrixErrorf tags err with an operation name.
func matrixErrorf(tag string, err error) error {
	return validatorErrorf(tag, err)
}
