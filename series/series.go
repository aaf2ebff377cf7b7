// SPDX-License-Identifier: MIT

// Package series holds the per-sequence transforms shared by the distance
// kernels: z-normalisation, L2 norm, the Keogh derivative, WDTW logistic
// weights and sliding window statistics.
package series

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ZScore returns (x - mean) / std using the population standard deviation.
// A constant (or single-sample) sequence has std 0 and is returned centred.
func ZScore(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	mean, variance := stat.PopMeanVariance(x, nil)
	std := math.Sqrt(variance)
	for i, v := range x {
		out[i] = v - mean
	}
	if std > 0 {
		floats.Scale(1/std, out)
	}

	return out
}

// L2Norm returns the Euclidean norm of x.
func L2Norm(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return floats.Norm(x, 2)
}

// Derivative returns the Keogh–Pazzani estimate for every interior point:
//
//	d_j = ((x_j - x_{j-1}) + (x_{j+1} - x_{j-1})/2) / 2,  j = 1..len-2
//
// The result has len(x)-2 values; shorter inputs yield an empty slice.
func Derivative(x []float64) []float64 {
	if len(x) < 3 {
		return []float64{}
	}
	out := make([]float64, len(x)-2)
	for j := 1; j < len(x)-1; j++ {
		out[j-1] = ((x[j] - x[j-1]) + (x[j+1]-x[j-1])/2) / 2
	}

	return out
}

// DerivativeAll applies Derivative to every sequence of a collection.
func DerivativeAll(xs [][]float64) [][]float64 {
	out := make([][]float64, len(xs))
	for i, x := range xs {
		out[i] = Derivative(x)
	}

	return out
}

// LogisticWeights returns the WDTW weight table of length l:
//
//	w[i] = 1 / (1 + exp(-g·(i - l/2)))
//
// Index i is the absolute offset |i-j| of a cell from the diagonal.
func LogisticWeights(l int, g float64) []float64 {
	if l <= 0 {
		return []float64{}
	}
	w := make([]float64, l)
	half := float64(l) / 2
	for i := range w {
		w[i] = 1 / (1 + math.Exp(-g*(float64(i)-half)))
	}

	return w
}

// resyncTol is the relative variance below which SlidingStats recomputes a
// window from its samples; the running sums lose that many digits to
// cancellation once large values have passed through them.
const resyncTol = 1e-8

// SlidingStats returns the mean and population standard deviation of every
// window of length w in x (len(x)-w+1 entries), maintained incrementally from
// a running sum and sum of squares. Windows whose running variance is tiny are
// recomputed exactly, so a constant window always has std 0.
func SlidingStats(x []float64, w int) (means, stds []float64) {
	if w <= 0 || w > len(x) {
		return []float64{}, []float64{}
	}
	k := len(x) - w + 1
	means = make([]float64, k)
	stds = make([]float64, k)

	sum, sumSq := sums(x[:w])
	fw := float64(w)
	for i := 0; i < k; i++ {
		if i > 0 {
			out, in := x[i-1], x[i+w-1]
			sum += in - out
			sumSq += in*in - out*out
		}
		mean := sum / fw
		variance := sumSq/fw - mean*mean
		if variance < resyncTol*(mean*mean+1) {
			win := x[i : i+w]
			sum, sumSq = sums(win)
			mean, variance = windowStats(win)
		}
		means[i] = mean
		stds[i] = math.Sqrt(variance)
	}

	return means, stds
}

func sums(x []float64) (sum, sumSq float64) {
	for _, v := range x {
		sum += v
		sumSq += v * v
	}

	return sum, sumSq
}

// windowStats is the two-pass population mean and variance; constant windows
// report their value and exactly zero variance.
func windowStats(x []float64) (mean, variance float64) {
	if floats.Min(x) == floats.Max(x) {
		return x[0], 0
	}
	mean, variance = stat.PopMeanVariance(x, nil)
	if variance < 0 {
		variance = 0
	}

	return mean, variance
}
