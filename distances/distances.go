// SPDX-License-Identifier: MIT

package distances

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/cost"
	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/features"
	"github.com/katalvlaran/tsdist/matrix"
	"github.com/katalvlaran/tsdist/pairwise"
	"github.com/katalvlaran/tsdist/series"
	"github.com/katalvlaran/tsdist/wavefront"
)

var (
	// ErrEmptyCollection indicates a collection without sequences.
	ErrEmptyCollection = pairwise.ErrEmptyCollection

	// ErrEmptySequence indicates a zero-length sequence inside a collection.
	ErrEmptySequence = wavefront.ErrEmptySequence

	// ErrDerivativeLength indicates a sequence too short to differentiate.
	ErrDerivativeLength = fmt.Errorf("%w: derivative metrics need sequences of length >= 3", tsdist.ErrInvalidParameter)
)

// minDerivativeLen is the shortest sequence series.Derivative maps to a non-empty one.
const minDerivativeLen = 3

var sharedDispatcher = sync.OnceValue(func() *device.Dispatcher { return device.NewDispatcher() })

// Euclidean returns lock-step Euclidean distances over the common prefix of each pair.
func Euclidean(x1, x2 [][]float64, opts ...Option) (*matrix.Dense, error) {
	return compute(cost.MetricEuclidean, x1, x2, DefaultParams(), gatherOptions(opts...))
}

// CatchEuclidean returns Euclidean distances between the z-normalised
// Catch22 feature vectors produced by ex. Each collection is normalised
// with its own column statistics.
func CatchEuclidean(x1, x2 [][]float64, ex features.Extractor, opts ...Option) (*matrix.Dense, error) {
	o := gatherOptions(opts...)
	if err := validateCommon(cost.MetricCatchEuclidean, x1, x2, o); err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, features.ErrNilExtractor
	}

	f1, err := features.Transform(x1, ex)
	if err != nil {
		return nil, err
	}
	var rows2 [][]float64
	if x2 != nil {
		f2, err := features.Transform(x2, ex)
		if err != nil {
			return nil, err
		}
		rows2 = f2.ToRows()
	}
	o.logger.Debug().Str("metric", string(cost.MetricCatchEuclidean)).Int("features", features.N).Msg("distances: features extracted")

	return compute(cost.MetricEuclidean, f1.ToRows(), rows2, DefaultParams(), o)
}

// ERP returns edit-distance-with-real-penalty distances.
func ERP(x1, x2 [][]float64, band, gap float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band, p.Gap = band, gap

	return compute(cost.MetricERP, x1, x2, p, gatherOptions(opts...))
}

// LCSS returns 1 - LCSS similarity / max length.
func LCSS(x1, x2 [][]float64, band, epsilon float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band, p.Epsilon = band, epsilon

	return compute(cost.MetricLCSS, x1, x2, p, gatherOptions(opts...))
}

// DTW returns banded dynamic-time-warping distances (squared point cost).
func DTW(x1, x2 [][]float64, band float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band = band

	return compute(cost.MetricDTW, x1, x2, p, gatherOptions(opts...))
}

// DDTW returns DTW on first derivatives; sequences need length >= 3.
func DDTW(x1, x2 [][]float64, band float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band = band

	return compute(cost.MetricDDTW, x1, x2, p, gatherOptions(opts...))
}

// WDTW returns weighted DTW with logistic steepness g.
func WDTW(x1, x2 [][]float64, band, g float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band, p.G = band, g

	return compute(cost.MetricWDTW, x1, x2, p, gatherOptions(opts...))
}

// WDDTW returns weighted DTW on first derivatives; sequences need length >= 3.
func WDDTW(x1, x2 [][]float64, band, g float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band, p.G = band, g

	return compute(cost.MetricWDDTW, x1, x2, p, gatherOptions(opts...))
}

// ADTW returns amerced DTW with the given non-diagonal step penalty.
func ADTW(x1, x2 [][]float64, band, warpPenalty float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band, p.WarpPenalty = band, warpPenalty

	return compute(cost.MetricADTW, x1, x2, p, gatherOptions(opts...))
}

// MSM returns move-split-merge distances.
func MSM(x1, x2 [][]float64, band float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band = band

	return compute(cost.MetricMSM, x1, x2, p, gatherOptions(opts...))
}

// TWE returns time-warp-edit distances.
func TWE(x1, x2 [][]float64, band, stiffness, penalty float64, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Band, p.Stiffness, p.Penalty = band, stiffness, penalty

	return compute(cost.MetricTWE, x1, x2, p, gatherOptions(opts...))
}

// SBD returns shape-based distances.
func SBD(x1, x2 [][]float64, opts ...Option) (*matrix.Dense, error) {
	return compute(cost.MetricSBD, x1, x2, DefaultParams(), gatherOptions(opts...))
}

// MP returns matrix-profile distances for the given subsequence window (>= 1).
func MP(x1, x2 [][]float64, window int, opts ...Option) (*matrix.Dense, error) {
	p := DefaultParams()
	p.Window = window

	return compute(cost.MetricMP, x1, x2, p, gatherOptions(opts...))
}

// Run dispatches by catalog name. For "mp" a zero window means a quarter of
// the first sequence's length (at least 1); "catch_euclidean" needs
// WithExtractor.
func Run(name string, x1, x2 [][]float64, p Params, opts ...Option) (*matrix.Dense, error) {
	info, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	switch info.Name {
	case cost.MetricCatchEuclidean:
		return CatchEuclidean(x1, x2, o.extractor, opts...)
	case cost.MetricMP:
		if p.Window == 0 && len(x1) > 0 {
			p.Window = max(1, len(x1[0])/4)
		}
	}

	return compute(info.Name, x1, x2, p, o)
}

// compute validates, optionally differentiates, then runs m on the selected device.
func compute(m Metric, x1, x2 [][]float64, p Params, o options) (*matrix.Dense, error) {
	if err := validateCommon(m, x1, x2, o); err != nil {
		return nil, err
	}
	if err := p.Validate(m); err != nil {
		return nil, err
	}
	dev, _ := device.Parse(o.device)

	if m == cost.MetricDDTW || m == cost.MetricWDDTW {
		x1 = series.DerivativeAll(x1)
		if x2 != nil {
			x2 = series.DerivativeAll(x2)
		}
	}

	info, _ := Lookup(string(m))
	o.logger.Debug().Str("metric", string(m)).Str("device", dev.String()).
		Int("rows", len(x1)).Bool("self", x2 == nil).Msg("distances: compute")

	if dev == device.GPU && info.Accelerated {
		d := o.dispatcher
		if d == nil {
			d = sharedDispatcher()
		}

		return d.Run(o.ctx, device.Request{Metric: m, Params: p}, x1, x2)
	}

	newKernel, err := NewKernel(m, p)
	if err != nil {
		return nil, err
	}

	return pairwise.ComputeContext(o.ctx, x1, x2, newKernel, o.pairwise()...)
}

// validateCommon checks the collections and device name shared by every metric.
func validateCommon(m Metric, x1, x2 [][]float64, o options) error {
	minLen := 1
	if m == cost.MetricDDTW || m == cost.MetricWDDTW {
		minLen = minDerivativeLen
	}
	if err := validateCollection(x1, minLen); err != nil {
		return err
	}
	if x2 != nil {
		if err := validateCollection(x2, minLen); err != nil {
			return err
		}
	}
	if _, err := device.Parse(o.device); err != nil {
		return err
	}

	return nil
}

func validateCollection(xs [][]float64, minLen int) error {
	if len(xs) == 0 {
		return ErrEmptyCollection
	}
	for i, x := range xs {
		switch {
		case len(x) == 0:
			return fmt.Errorf("sequence %d: %w", i, ErrEmptySequence)
		case len(x) < minLen:
			return fmt.Errorf("sequence %d has length %d: %w", i, len(x), ErrDerivativeLength)
		}
	}

	return nil
}
