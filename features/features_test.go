// SPDX-License-Identifier: MIT

package features_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/features"
)

// firstValue puts x[0] in column 0, NaN in column 1 and a constant elsewhere.
var firstValue = features.ExtractorFunc(func(x []float64) []float64 {
	f := make([]float64, features.N)
	for i := range f {
		f[i] = 7
	}
	f[0] = x[0]
	f[1] = math.NaN()
	f[2] = math.Inf(1)

	return f
})

func TestTransform_NormalisesColumns(t *testing.T) {
	z, err := features.Transform([][]float64{{1}, {3}}, firstValue)
	require.NoError(t, err)
	require.Equal(t, 2, z.Rows())
	require.Equal(t, features.N, z.Cols())

	v0, _ := z.At(0, 0)
	v1, _ := z.At(1, 0)
	assert.InDelta(t, -1.0, v0, 1e-12)
	assert.InDelta(t, 1.0, v1, 1e-12)

	// constant and non-finite columns collapse to zero
	for j := 1; j < features.N; j++ {
		for i := 0; i < 2; i++ {
			v, _ := z.At(i, j)
			assert.Equal(t, 0.0, v, "cell (%d,%d)", i, j)
		}
	}
}

func TestTransform_Errors(t *testing.T) {
	_, err := features.Transform([][]float64{{1}}, nil)
	assert.ErrorIs(t, err, features.ErrNilExtractor)
	assert.True(t, tsdist.IsInvalidParameter(err))

	short := features.ExtractorFunc(func([]float64) []float64 { return []float64{1} })
	_, err = features.Transform([][]float64{{1}}, short)
	assert.ErrorIs(t, err, features.ErrFeatureCount)
	assert.True(t, tsdist.IsComputation(err))
}

func TestRegistry(t *testing.T) {
	features.Register("first-value", firstValue)
	ex, err := features.Lookup("first-value")
	require.NoError(t, err)
	assert.NotNil(t, ex)
	assert.Contains(t, features.Names(), "first-value")

	_, err = features.Lookup("missing")
	assert.ErrorIs(t, err, features.ErrUnknownExtractor)
}
