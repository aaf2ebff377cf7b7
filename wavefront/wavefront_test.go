// SPDX-License-Identifier: MIT

package wavefront_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/wavefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqCost is a plain squared-difference DTW recurrence used as the probe evaluator.
type sqCost struct{}

func (sqCost) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	d := a[i] - b[j]

	return d*d + min(fromA, diag, fromB)
}

// matchCount is an LCSS-style recurrence with tolerance eps.
type matchCount struct{ eps float64 }

func (c matchCount) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	if math.Abs(a[i]-b[j]) <= c.eps {
		return diag + 1
	}

	return max(fromA, fromB)
}

// edgeCounter records how many times it is invoked.
type edgeCounter struct{ n *int }

func (c edgeCounter) Cell(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
	*c.n++

	return sqCost{}.Cell(a, b, i, j, fromA, diag, fromB)
}

// fullTable evaluates the same recurrence on a full n×m table; cells outside
// the band stay at init.
func fullTable(a, b []float64, p wavefront.Params, ev wavefront.Evaluator) float64 {
	n, m := len(a), len(b)
	w := wavefront.EffectiveWindow(n, m, p.Band)
	at := func(t [][]float64, i, j int) float64 {
		if i < 0 && j < 0 {
			if p.Mode == wavefront.Minimize {
				return 0
			}

			return p.Init
		}
		if i < 0 || j < 0 {
			return p.Init
		}

		return t[i][j]
	}
	t := make([][]float64, n)
	for i := range t {
		t[i] = make([]float64, m)
		for j := range t[i] {
			t[i][j] = p.Init
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			if i-j > w || j-i > w {
				continue
			}
			t[i][j] = ev.Cell(a, b, i, j, at(t, i-1, j), at(t, i-1, j-1), at(t, i, j-1))
		}
	}

	return t[n-1][m-1]
}

func randomSeq(r *rand.Rand, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = r.NormFloat64()
	}

	return x
}

func TestDistance_MatchesFullTable(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	lengths := [][2]int{{1, 1}, {1, 5}, {3, 3}, {4, 9}, {10, 10}, {7, 23}, {16, 17}}
	bands := []float64{0, 0.05, 0.1, 0.3, 0.5, 1}
	for _, ln := range lengths {
		a, b := randomSeq(r, ln[0]), randomSeq(r, ln[1])
		for _, band := range bands {
			p := wavefront.Params{Init: math.Inf(1), Band: band, Mode: wavefront.Minimize}
			got, err := wavefront.Distance(nil, a, b, p, sqCost{}, sqCost{})
			require.NoError(t, err)
			want := fullTable(a, b, p, sqCost{})
			assert.InDelta(t, want, got, 1e-9, "n=%d m=%d band=%v", ln[0], ln[1], band)
			assert.False(t, math.IsInf(got, 1), "final cell must be reachable (n=%d m=%d band=%v)", ln[0], ln[1], band)
		}
	}
}

func TestDistance_MaximizeMatchesFullTable(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for _, ln := range [][2]int{{2, 2}, {5, 8}, {12, 12}} {
		a, b := randomSeq(r, ln[0]), randomSeq(r, ln[1])
		for _, band := range []float64{0, 0.25, 1} {
			p := wavefront.Params{Init: 0, Band: band, Mode: wavefront.Maximize}
			ev := matchCount{eps: 0.5}
			got, err := wavefront.Distance(nil, a, b, p, ev, ev)
			require.NoError(t, err)
			assert.Equal(t, fullTable(a, b, p, ev), got)
		}
	}
}

func TestDistance_IdenticalCountsEveryMatch(t *testing.T) {
	a := []float64{0, 1, 2, 3, 4}
	ev := matchCount{}
	got, err := wavefront.Distance(nil, a, a, wavefront.Params{Band: 1, Mode: wavefront.Maximize}, ev, ev)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestDistance_BandMonotone(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	a, b := randomSeq(r, 20), randomSeq(r, 30)
	prev := math.Inf(1)
	for _, band := range []float64{0, 0.1, 0.2, 0.4, 0.6, 0.8, 1} {
		p := wavefront.Params{Init: math.Inf(1), Band: band}
		d, err := wavefront.Distance(nil, a, b, p, sqCost{}, sqCost{})
		require.NoError(t, err)
		assert.LessOrEqual(t, d, prev, "band=%v", band)
		prev = d
	}
}

func TestDistance_Errors(t *testing.T) {
	p := wavefront.Params{Init: math.Inf(1), Band: 0.5}
	cases := []struct {
		name string
		a, b []float64
		p    wavefront.Params
		want error
	}{
		{"empty a", nil, []float64{1}, p, wavefront.ErrEmptySequence},
		{"empty b", []float64{1}, []float64{}, p, wavefront.ErrEmptySequence},
		{"length order", []float64{1, 2}, []float64{1}, p, wavefront.ErrLengthOrder},
		{"band below", []float64{1}, []float64{1}, wavefront.Params{Band: -0.1}, wavefront.ErrBandRange},
		{"band above", []float64{1}, []float64{1}, wavefront.Params{Band: 1.1}, wavefront.ErrBandRange},
		{"band NaN", []float64{1}, []float64{1}, wavefront.Params{Band: math.NaN()}, wavefront.ErrBandRange},
		{"mode", []float64{1}, []float64{1}, wavefront.Params{Mode: wavefront.Mode(9)}, wavefront.ErrMode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wavefront.Distance(nil, tc.a, tc.b, tc.p, sqCost{}, sqCost{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, tsdist.ErrInvalidParameter))
		})
	}
}

func TestEffectiveWindow(t *testing.T) {
	cases := []struct {
		n, m int
		band float64
		want int
	}{
		{10, 10, 0, 0},
		{10, 10, 0.1, 1},
		{10, 10, 0.15, 2},
		{10, 10, 1, 9},
		{3, 10, 0, 7},
		{3, 10, 0.5, 7},
		{3, 10, 0.8, 8},
		{1, 1, 1, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, wavefront.EffectiveWindow(tc.n, tc.m, tc.band), "n=%d m=%d band=%v", tc.n, tc.m, tc.band)
	}
}

func TestDistance_EdgeSlot(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	var edges int
	p := wavefront.Params{Init: math.Inf(1), Band: 0.2}
	got, err := wavefront.Distance(nil, a, a, p, sqCost{}, edgeCounter{n: &edges})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	// w = 2 on a 6×6 grid: row 0 and column 0 inside the band (5 cells) plus
	// the two off-diagonals at distance 2 excluding (2,0) and (0,2) (6 cells).
	assert.Equal(t, 11, edges)
}

func TestWorkspace_Reuse(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	ws := wavefront.NewWorkspace()
	p := wavefront.Params{Init: math.Inf(1), Band: 0.3}
	for _, ln := range [][2]int{{30, 40}, {2, 3}, {15, 15}, {1, 60}} {
		a, b := randomSeq(r, ln[0]), randomSeq(r, ln[1])
		reused, err := wavefront.Distance(ws, a, b, p, sqCost{}, sqCost{})
		require.NoError(t, err)
		fresh, err := wavefront.Distance(nil, a, b, p, sqCost{}, sqCost{})
		require.NoError(t, err)
		assert.Equal(t, fresh, reused)
	}
}

func TestEvaluatorFunc(t *testing.T) {
	var ev wavefront.Evaluator = wavefront.EvaluatorFunc(func(a, b []float64, i, j int, fromA, diag, fromB float64) float64 {
		return math.Abs(a[i]-b[j]) + min(fromA, diag, fromB)
	})
	got, err := wavefront.Distance(nil, []float64{0, 0}, []float64{1, 1}, wavefront.Params{Init: math.Inf(1), Band: 1}, ev, ev)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
	assert.Equal(t, "maximize", wavefront.Maximize.String())
}
