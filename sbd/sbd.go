// SPDX-License-Identifier: MIT

// Package sbd implements the shape-based distance of k-Shape:
//
//	SBD(a, b) = 1 - max_k CC_k(z(a), z(b)) / (‖z(a)‖·‖z(b)‖)
//
// where z is z-normalisation and CC the full linear cross-correlation,
// evaluated with FFTs on a power-of-two padded length.
//
// A Cache keeps one FFT plan per transform length plus scratch buffers; it
// belongs to a single worker and is not safe for concurrent use.
package sbd

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/tsdist/series"
)

// Cache holds FFT plans keyed by transform length and the scratch buffers
// of the last length used.
type Cache struct {
	plans map[int]*fourier.FFT

	padded []float64    // zero-padded time-domain input
	specA  []complex128 // spectrum of a, later conj(A)·B
	specB  []complex128 // spectrum of b
	out    []float64    // inverse transform
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{plans: make(map[int]*fourier.FFT)}
}

// plan returns the FFT for length n and sizes the scratch buffers.
func (c *Cache) plan(n int) *fourier.FFT {
	p, ok := c.plans[n]
	if !ok {
		p = fourier.NewFFT(n)
		c.plans[n] = p
	}
	c.padded = resizeReal(c.padded, n)
	c.out = resizeReal(c.out, n)
	c.specA = resizeCmplx(c.specA, n/2+1)
	c.specB = resizeCmplx(c.specB, n/2+1)

	return p
}

// Plans reports how many transform lengths are cached.
func (c *Cache) Plans() int { return len(c.plans) }

// CrossCorrelation returns the circular cross-correlation of a and b on
// nextPow2(len(a)+len(b)-1) points, which equals the full linear
// cross-correlation with negative lags wrapped to the tail:
//
//	cc[k] = Σ_n a[n]·b[n+k]
//
// The returned slice is freshly allocated.
func (c *Cache) CrossCorrelation(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return []float64{}
	}
	n := nextPow2(len(a) + len(b) - 1)
	p := c.plan(n)

	copyPadded(c.padded, a)
	p.Coefficients(c.specA, c.padded)
	copyPadded(c.padded, b)
	p.Coefficients(c.specB, c.padded)

	for k := range c.specA {
		c.specA[k] = cmplx.Conj(c.specA[k]) * c.specB[k]
	}
	p.Sequence(c.out, c.specA)

	cc := make([]float64, n)
	copy(cc, c.out)
	floats.Scale(1/float64(n), cc)

	return cc
}

// Distance returns the shape-based distance between a and b.
//
// Zero norms after z-normalisation (constant sequences): two constant
// sequences are at distance 0, a constant and a non-constant one at 1.
func (c *Cache) Distance(a, b []float64) float64 {
	za, zb := series.ZScore(a), series.ZScore(b)
	na, nb := series.L2Norm(za), series.L2Norm(zb)
	switch {
	case na == 0 && nb == 0:
		return 0
	case na == 0 || nb == 0:
		return 1
	}
	cc := c.CrossCorrelation(za, zb)

	return 1 - floats.Max(cc)/(na*nb)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

func copyPadded(dst, src []float64) {
	k := copy(dst, src)
	for i := k; i < len(dst); i++ {
		dst[i] = 0
	}
}

func resizeReal(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}

	return s[:n]
}

func resizeCmplx(s []complex128, n int) []complex128 {
	if cap(s) < n {
		return make([]complex128, n)
	}

	return s[:n]
}
