// SPDX-License-Identifier: MIT
// Package: tsdist/synth
//
// synth.go — pulse, chirp and random-walk generators.
//
// Contract:
//   - Pulse/Chirp/RandomWalk(n, seed, opts...) return a slice of length n (nil on invalid input).
//   - Strict determinism per (n, seed, options); no global state.
//   - O(n) time and memory.

package synth

import (
	"math"
	"math/rand"
)

const (
	defAmp        = 1.0   // amplitude A (>0)
	defSigma      = 0.0   // Gaussian noise sigma (≥0); 0 disables noise
	defTrendSlope = 0.0   // linear trend increment per sample
	defPulseFreq  = 0.125 // pulse frequency, period 8 samples
	defDuty       = 0.5   // rectangular duty cycle in [0,1]
	defChirpF0    = 0.02  // chirp start frequency (cycles/sample)
	defChirpF1    = 0.25  // chirp end frequency (cycles/sample)
	defWalkStart  = 100.0 // random walk S0 (>0)
	defWalkMu     = 0.0005
	defWalkVol    = 0.02
	defWalkSteps  = 8 // sub-steps per emitted sample

	tau = 2.0 * math.Pi
)

// Option tunes a generator.
type Option func(*config)

type config struct {
	amp        float64
	sigma      float64
	trend      float64
	freq       float64
	duty       float64
	triangular bool
	rng        *rand.Rand
}

func newConfig(opts ...Option) config {
	c := config{amp: defAmp, sigma: defSigma, trend: defTrendSlope, freq: defPulseFreq, duty: defDuty}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithAmplitude sets the pulse/chirp amplitude (must be > 0).
func WithAmplitude(a float64) Option { return func(c *config) { c.amp = a } }

// WithNoise adds Gaussian noise with standard deviation sigma (must be ≥ 0).
func WithNoise(sigma float64) Option { return func(c *config) { c.sigma = sigma } }

// WithTrend adds slope·i to sample i.
func WithTrend(slope float64) Option { return func(c *config) { c.trend = slope } }

// WithFrequency sets the pulse frequency in cycles per sample (must be > 0).
func WithFrequency(f float64) Option { return func(c *config) { c.freq = f } }

// WithDuty sets the rectangular duty cycle in [0,1].
func WithDuty(d float64) Option { return func(c *config) { c.duty = d } }

// WithTriangular switches pulses to a triangular envelope.
func WithTriangular() Option { return func(c *config) { c.triangular = true } }

// WithRand overrides the seed-derived source; the caller owns r.
func WithRand(r *rand.Rand) Option { return func(c *config) { c.rng = r } }

func (c config) rand(seed int64) *rand.Rand {
	if c.rng != nil {
		return c.rng
	}

	return rand.New(rand.NewSource(seed))
}

// Pulse returns a rectangular pulse train in {0, A}, or a triangular one in
// [0, A] with WithTriangular, plus trend and noise.
func Pulse(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	if c.amp <= 0 || c.freq <= 0 || c.sigma < 0 || c.duty < 0 || c.duty > 1 {
		return nil
	}
	rng := c.rand(seed)

	out := make([]float64, n)
	var frac, v float64
	for i := range out {
		frac = math.Mod(float64(i)*c.freq, 1)
		switch {
		case c.triangular:
			v = c.amp * (1 - math.Abs(2*frac-1))
		case frac < c.duty:
			v = c.amp
		default:
			v = 0
		}
		out[i] = c.finish(v, i, rng)
	}

	return out
}

// Chirp returns A·sin(θ_i) with the instantaneous frequency sweeping
// linearly from 0.02 to 0.25 cycles/sample, plus trend and noise.
func Chirp(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	if c.amp <= 0 || c.sigma < 0 {
		return nil
	}
	rng := c.rand(seed)

	out := make([]float64, n)
	var theta, t float64
	for i := range out {
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		theta += tau * (defChirpF0 + (defChirpF1-defChirpF0)*t)
		out[i] = c.finish(c.amp*math.Sin(theta), i, rng)
	}

	return out
}

// RandomWalk returns the closes of a geometric Brownian motion started at
// 100 with drift 0.0005 and volatility 0.02 per sample, simulated with 8
// sub-steps per sample.
//
//	S ← S·exp((μ - σ²/2)·Δt + σ·√Δt·Z),  Δt = 1/8
func RandomWalk(n int, seed int64, opts ...Option) []float64 {
	if n < 1 {
		return nil
	}
	c := newConfig(opts...)
	if c.sigma < 0 {
		return nil
	}
	rng := c.rand(seed)

	dt := 1.0 / float64(defWalkSteps)
	drift := (defWalkMu - 0.5*defWalkVol*defWalkVol) * dt
	scale := defWalkVol * math.Sqrt(dt)

	out := make([]float64, n)
	s := defWalkStart
	for i := range out {
		for k := 0; k < defWalkSteps; k++ {
			s *= math.Exp(drift + scale*rng.NormFloat64())
		}
		out[i] = c.finish(s, i, rng)
	}

	return out
}

// finish applies trend and noise to sample i.
func (c config) finish(v float64, i int, rng *rand.Rand) float64 {
	v += c.trend * float64(i)
	if c.sigma > 0 {
		v += c.sigma * rng.NormFloat64()
	}

	return v
}
