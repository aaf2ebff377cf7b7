// SPDX-License-Identifier: MIT

package cost_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/cost"
	"github.com/katalvlaran/tsdist/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairFn func(ws *wavefront.Workspace, a, b []float64) (float64, error)

func catalog() map[string]pairFn {
	return map[string]pairFn{
		"dtw": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairDTW(ws, a, b, 1)
		},
		"wdtw": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairWDTW(ws, a, b, 1, cost.NewWeightCache(0.05).For(max(len(a), len(b))))
		},
		"adtw": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairADTW(ws, a, b, 1, 1)
		},
		"erp": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairERP(ws, a, b, 1, 0)
		},
		"lcss": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairLCSS(ws, a, b, 1, 0.1)
		},
		"msm": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairMSM(ws, a, b, 1)
		},
		"twe": func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairTWE(ws, a, b, 1, 0.001, 1)
		},
	}
}

func TestPair_IdenticalIsZero(t *testing.T) {
	x := []float64{0.5, -1, 2, 3.25, 0, 7}
	ws := wavefront.NewWorkspace()
	for name, fn := range catalog() {
		d, err := fn(ws, x, x)
		require.NoError(t, err, name)
		assert.InDelta(t, 0, d, 1e-12, name)
	}
}

func TestPair_SymmetricOnEqualLengths(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	a, b := make([]float64, 25), make([]float64, 25)
	for i := range a {
		a[i], b[i] = r.NormFloat64(), r.NormFloat64()
	}
	for name, fn := range catalog() {
		ab, err := fn(nil, a, b)
		require.NoError(t, err, name)
		ba, err := fn(nil, b, a)
		require.NoError(t, err, name)
		assert.InDelta(t, ab, ba, 1e-9, name)
		assert.GreaterOrEqual(t, ab, 0.0, name)
	}
}

func TestPair_KnownValues(t *testing.T) {
	ws := wavefront.NewWorkspace()

	d, err := cost.PairDTW(ws, []float64{1, 2, 3}, []float64{1, 2, 2, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d, "repeated sample is absorbed by warping")

	d, err = cost.PairADTW(ws, []float64{1, 2, 3}, []float64{1, 2, 2, 3}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d, "one non-diagonal step pays the warp penalty once")

	d, err = cost.PairERP(ws, []float64{1, 2}, []float64{1, 2, 3}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d, "the unmatched sample is charged against the gap value")

	d, err = cost.PairLCSS(ws, []float64{1, 2, 3}, []float64{1, 5, 3}, 1, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, d, 1e-12)

	d, err = cost.PairMSM(ws, []float64{0}, []float64{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	d, err = cost.PairWDTW(ws, []float64{0}, []float64{1}, 1, []float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)

	d, err = cost.PairTWE(ws, []float64{1}, []float64{1, 1}, 1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d, "the extra sample costs only the deletion penalty")

	d, err = cost.PairDTW(ws, []float64{0, 0, 0}, []float64{0, 0, 0}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestPair_BandZeroDTWIsSquaredEuclidean(t *testing.T) {
	a := []float64{0, 1, 2}
	b := []float64{1, 1, 0}
	d, err := cost.PairDTW(nil, a, b, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0+0.0+4.0, d)
	assert.InDelta(t, math.Sqrt(d), cost.Euclidean(a, b), 1e-12)
}

func TestEuclidean(t *testing.T) {
	assert.InDelta(t, 1.7320508, cost.Euclidean([]float64{0, 0, 0}, []float64{1, 1, 1}), 1e-6)
	assert.Equal(t, 0.0, cost.Euclidean(nil, nil))
	assert.Equal(t, 1.0, cost.Euclidean([]float64{1, 5}, []float64{0}), "common prefix only")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, cost.ValidateBand(0))
	assert.NoError(t, cost.ValidateBand(1))
	for _, band := range []float64{-0.1, 1.1, 1.5, math.NaN()} {
		err := cost.ValidateBand(band)
		assert.ErrorIs(t, err, wavefront.ErrBandRange)
		assert.True(t, tsdist.IsInvalidParameter(err))
	}

	err := cost.ValidateNonNegative("gap penalty", -1)
	assert.ErrorIs(t, err, cost.ErrNegativeParameter)
	assert.Contains(t, err.Error(), "gap penalty")
	assert.NoError(t, cost.ValidateNonNegative("gap penalty", 0))
}

func TestParams_Validate(t *testing.T) {
	p := cost.DefaultParams()
	for _, m := range []cost.Metric{
		cost.MetricERP, cost.MetricLCSS, cost.MetricDTW, cost.MetricDDTW, cost.MetricWDTW,
		cost.MetricWDDTW, cost.MetricADTW, cost.MetricMSM, cost.MetricTWE, cost.MetricSBD,
	} {
		assert.NoError(t, p.Validate(m), m)
	}

	bad := p
	bad.Gap = -1
	assert.ErrorIs(t, bad.Validate(cost.MetricERP), cost.ErrNegativeParameter)
	assert.NoError(t, bad.Validate(cost.MetricDTW), "dtw ignores the gap")

	bad = p
	bad.Band = 1.5
	assert.ErrorIs(t, bad.Validate(cost.MetricTWE), wavefront.ErrBandRange)

	bad = p
	bad.Penalty = -0.5
	assert.ErrorIs(t, bad.Validate(cost.MetricTWE), cost.ErrNegativeParameter)

	steep := p
	steep.G = -0.5
	assert.NoError(t, steep.Validate(cost.MetricWDTW), "g is unconstrained")
	assert.NoError(t, steep.Validate(cost.MetricWDDTW))
	steep.G = math.NaN()
	assert.ErrorIs(t, steep.Validate(cost.MetricWDTW), cost.ErrNaNParameter)

	bad = p
	bad.Window = 0
	assert.ErrorIs(t, bad.Validate(cost.MetricMP), cost.ErrWindow)
}

func TestWeightCache(t *testing.T) {
	c := cost.NewWeightCache(0.05)
	w := c.For(10)
	require.Len(t, w, 10)
	assert.Same(t, &w[0], &c.For(10)[0], "weights are memoised per length")
	assert.Len(t, c.For(3), 3)
}
