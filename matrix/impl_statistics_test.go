// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/tsdist/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnStats(t *testing.T) {
	X, _ := matrix.FromRows([][]float64{{1, 10}, {3, 10}})
	means, stds, err := matrix.ColumnStats(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 10}, means)
	assert.Equal(t, []float64{1, 0}, stds, "population std")
}

func TestNormalizeColumns(t *testing.T) {
	X, _ := matrix.FromRows([][]float64{{1, 10}, {3, 10}, {5, 10}})
	Z, means, stds, err := matrix.NormalizeColumns(X)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 10}, means, 1e-12)
	assert.InDelta(t, math.Sqrt(8.0/3.0), stds[0], 1e-12)

	s := math.Sqrt(8.0 / 3.0)
	assert.InDeltaSlice(t, []float64{-2 / s, 0, 0, 0, 2 / s, 0}, Z.RowMajor(), 1e-12,
		"degenerate column is only centred")

	orig, _ := X.At(0, 0)
	assert.Equal(t, 1.0, orig, "input is not modified")

	_, _, _, err = matrix.NormalizeColumns(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestReplaceNonFinite(t *testing.T) {
	X, _ := matrix.FromRows([][]float64{{math.NaN(), 1}, {math.Inf(-1), math.Inf(1)}}, matrix.WithAllowNonFinite())
	Y, err := matrix.ReplaceNonFinite(X, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 0}, Y.RowMajor())

	_, err = matrix.ReplaceNonFinite(X, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
