// SPDX-License-Identifier: MIT

package cost

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/wavefront"
)

// Metric names a distance in the catalog.
type Metric string

// Catalog metric names.
const (
	MetricEuclidean      Metric = "euclidean"
	MetricCatchEuclidean Metric = "catch_euclidean"
	MetricERP            Metric = "erp"
	MetricLCSS           Metric = "lcss"
	MetricDTW            Metric = "dtw"
	MetricDDTW           Metric = "ddtw"
	MetricWDTW           Metric = "wdtw"
	MetricWDDTW          Metric = "wddtw"
	MetricADTW           Metric = "adtw"
	MetricMSM            Metric = "msm"
	MetricTWE            Metric = "twe"
	MetricSBD            Metric = "sbd"
	MetricMP             Metric = "mp"
)

// Params carries every metric parameter; each metric reads only its own fields.
//
//   - Band        Sakoe–Chiba fraction (all elastic metrics)
//   - Gap         ERP gap value g
//   - Epsilon     LCSS matching tolerance
//   - G           WDTW/WDDTW logistic steepness
//   - WarpPenalty ADTW non-diagonal step penalty
//   - Stiffness   TWE ν
//   - Penalty     TWE λ
//   - Window      MP subsequence length (0 in by-name dispatch = len/4 of the first sequence)
type Params struct {
	Band        float64 `json:"band" yaml:"band"`
	Gap         float64 `json:"gap" yaml:"gap"`
	Epsilon     float64 `json:"epsilon" yaml:"epsilon"`
	G           float64 `json:"g" yaml:"g"`
	WarpPenalty float64 `json:"warp_penalty" yaml:"warp_penalty"`
	Stiffness   float64 `json:"stiffness" yaml:"stiffness"`
	Penalty     float64 `json:"penalty" yaml:"penalty"`
	Window      int     `json:"window" yaml:"window"`
}

// DefaultParams returns the catalog defaults.
func DefaultParams() Params {
	return Params{
		Band:        1.0,
		Gap:         0.0,
		Epsilon:     1.0,
		G:           0.05,
		WarpPenalty: 1.0,
		Stiffness:   1.0,
		Penalty:     1.0,
	}
}

// ErrNegativeParameter indicates a penalty or tolerance below zero (or NaN).
var ErrNegativeParameter = fmt.Errorf("%w: parameter must be non-negative", tsdist.ErrInvalidParameter)

// ValidateBand rejects band fractions outside [0,1].
func ValidateBand(band float64) error {
	if math.IsNaN(band) || band < 0 || band > 1 {
		return wavefront.ErrBandRange
	}

	return nil
}

// ValidateNonNegative rejects v < 0 or NaN, naming the parameter in the error.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return fmt.Errorf("%s: %w", name, ErrNegativeParameter)
	}

	return nil
}

// Validate checks the parameters metric m reads.
func (p Params) Validate(m Metric) error {
	switch m {
	case MetricERP:
		return firstErr(ValidateBand(p.Band), ValidateNonNegative("gap penalty", p.Gap))
	case MetricLCSS:
		return firstErr(ValidateBand(p.Band), ValidateNonNegative("epsilon", p.Epsilon))
	case MetricDTW, MetricDDTW, MetricMSM:
		return ValidateBand(p.Band)
	case MetricWDTW, MetricWDDTW:
		if math.IsNaN(p.G) {
			return fmt.Errorf("g: %w", ErrNaNParameter)
		}

		return ValidateBand(p.Band)
	case MetricADTW:
		return firstErr(ValidateBand(p.Band), ValidateNonNegative("warp penalty", p.WarpPenalty))
	case MetricTWE:
		return firstErr(
			ValidateBand(p.Band),
			ValidateNonNegative("stiffness", p.Stiffness),
			ValidateNonNegative("penalty", p.Penalty),
		)
	case MetricMP:
		if p.Window < 1 {
			return fmt.Errorf("window %d: %w", p.Window, ErrWindow)
		}
	}

	return nil
}

// ErrNaNParameter indicates a NaN where any real value is accepted.
var ErrNaNParameter = fmt.Errorf("%w: parameter must not be NaN", tsdist.ErrInvalidParameter)

// ErrWindow indicates a matrix-profile window below 1.
var ErrWindow = fmt.Errorf("%w: window must be at least 1", tsdist.ErrInvalidParameter)

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}
