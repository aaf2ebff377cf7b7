// SPDX-License-Identifier: MIT

package sbd_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tsdist/sbd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveCC returns Σ_n a[n]·b[n+k] for every lag k in (-len(a), len(b)).
func naiveCC(a, b []float64) map[int]float64 {
	out := make(map[int]float64)
	for k := -(len(a) - 1); k < len(b); k++ {
		var s float64
		for n := range a {
			if m := n + k; m >= 0 && m < len(b) {
				s += a[n] * b[m]
			}
		}
		out[k] = s
	}

	return out
}

func TestCrossCorrelation_MatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	c := sbd.NewCache()
	for _, ln := range [][2]int{{1, 1}, {3, 5}, {8, 8}, {13, 7}} {
		a, b := make([]float64, ln[0]), make([]float64, ln[1])
		for i := range a {
			a[i] = r.NormFloat64()
		}
		for i := range b {
			b[i] = r.NormFloat64()
		}
		cc := c.CrossCorrelation(a, b)
		n := len(cc)
		require.GreaterOrEqual(t, n, ln[0]+ln[1]-1)
		assert.Zero(t, n&(n-1), "padded length is a power of two")
		for k, want := range naiveCC(a, b) {
			idx := k
			if k < 0 {
				idx = n + k
			}
			assert.InDelta(t, want, cc[idx], 1e-9, "lag %d", k)
		}
	}
	assert.Equal(t, 4, c.Plans(), "one plan per padded length: 1, 8, 16 and 32")
}

func TestCrossCorrelation_ReturnsCopy(t *testing.T) {
	c := sbd.NewCache()
	first := c.CrossCorrelation([]float64{1, 2}, []float64{3, 4})
	snapshot := append([]float64(nil), first...)
	_ = c.CrossCorrelation([]float64{5, 6}, []float64{7, 8})
	assert.Equal(t, snapshot, first, "later calls must not overwrite returned results")
}

func TestDistance(t *testing.T) {
	c := sbd.NewCache()
	x := []float64{0, 1, 3, 2, 0, -1, -2, 0}

	assert.InDelta(t, 0, c.Distance(x, x), 1e-9)

	scaled := make([]float64, len(x))
	for i, v := range x {
		scaled[i] = 3*v + 5
	}
	assert.InDelta(t, 0, c.Distance(x, scaled), 1e-9, "invariant to offset and scale")

	shifted := append([]float64{0}, x[:len(x)-1]...)
	d := c.Distance(x, shifted)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 0.5, "a one-step shift stays close in shape")

	assert.InDelta(t, c.Distance(x, shifted), c.Distance(shifted, x), 1e-9)

	inverted := make([]float64, len(x))
	for i, v := range x {
		inverted[i] = -v
	}
	assert.Greater(t, c.Distance(x, inverted), d)

	d = c.Distance(x, []float64{1, 2, 3, 4})
	assert.False(t, math.IsNaN(d))
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 2.0)
}

func TestDistance_Constant(t *testing.T) {
	c := sbd.NewCache()
	assert.Equal(t, 0.0, c.Distance([]float64{2, 2, 2}, []float64{5, 5}))
	assert.Equal(t, 1.0, c.Distance([]float64{2, 2, 2}, []float64{1, 2, 3}))
}
