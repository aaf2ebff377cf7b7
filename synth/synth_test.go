// SPDX-License-Identifier: MIT

package synth_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/synth"
)

func TestPulse_Shapes(t *testing.T) {
	rect := synth.Pulse(16, 1)
	require.Len(t, rect, 16)
	assert.Equal(t, []float64{1, 1, 1, 1, 0, 0, 0, 0}, rect[:8])

	tri := synth.Pulse(9, 1, synth.WithTriangular(), synth.WithAmplitude(2))
	assert.InDelta(t, 0.0, tri[0], 1e-12)
	assert.InDelta(t, 2.0, tri[4], 1e-12)

	assert.Nil(t, synth.Pulse(0, 1))
	assert.Nil(t, synth.Pulse(4, 1, synth.WithDuty(1.5)))
	assert.Nil(t, synth.Pulse(4, 1, synth.WithNoise(-1)))
}

func TestGenerators_Deterministic(t *testing.T) {
	gens := map[string]func(int, int64, ...synth.Option) []float64{
		"pulse": synth.Pulse,
		"chirp": synth.Chirp,
		"walk":  synth.RandomWalk,
	}
	for name, gen := range gens {
		t.Run(name, func(t *testing.T) {
			a := gen(64, 7, synth.WithNoise(0.1))
			b := gen(64, 7, synth.WithNoise(0.1))
			c := gen(64, 8, synth.WithNoise(0.1))
			assert.Equal(t, a, b)
			assert.NotEqual(t, a, c)
		})
	}
}

func TestChirp_Bounded(t *testing.T) {
	for _, v := range synth.Chirp(200, 1, synth.WithAmplitude(3)) {
		assert.LessOrEqual(t, v, 3.0)
		assert.GreaterOrEqual(t, v, -3.0)
	}
}

func TestRandomWalk_Positive(t *testing.T) {
	for _, v := range synth.RandomWalk(500, 3) {
		assert.Greater(t, v, 0.0)
	}
}

func TestWithRand(t *testing.T) {
	a := synth.RandomWalk(10, 0, synth.WithRand(rand.New(rand.NewSource(5))))
	b := synth.RandomWalk(10, 5)
	assert.Equal(t, b, a)
}

func TestCollection(t *testing.T) {
	xs, err := synth.Collection(12, 5, 9, 42, synth.KindMixed)
	require.NoError(t, err)
	require.Len(t, xs, 12)
	for _, x := range xs {
		assert.GreaterOrEqual(t, len(x), 5)
		assert.LessOrEqual(t, len(x), 9)
	}
	again, err := synth.Collection(12, 5, 9, 42, synth.KindMixed)
	require.NoError(t, err)
	assert.Equal(t, xs, again)

	_, err = synth.Collection(0, 5, 9, 1, synth.KindPulse)
	assert.ErrorIs(t, err, synth.ErrLength)
	_, err = synth.Collection(3, 9, 5, 1, synth.KindPulse)
	assert.ErrorIs(t, err, synth.ErrLength)
	_, err = synth.Collection(3, 5, 9, 1, synth.Kind("sawtooth"))
	assert.ErrorIs(t, err, synth.ErrKind)
	assert.True(t, tsdist.IsInvalidParameter(err))
}

func TestParseKind(t *testing.T) {
	k, err := synth.ParseKind(" Walk ")
	require.NoError(t, err)
	assert.Equal(t, synth.KindWalk, k)
}
