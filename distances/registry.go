// SPDX-License-Identifier: MIT

package distances

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/cost"
)

// Metric is a catalog metric name.
type Metric = cost.Metric

// Params carries every metric parameter; see cost.Params.
type Params = cost.Params

// DefaultParams returns the catalog defaults.
func DefaultParams() Params { return cost.DefaultParams() }

// Info describes one catalog entry.
type Info struct {
	Name        Metric   `json:"name" yaml:"name"`
	Params      []string `json:"params" yaml:"params"`
	Banded      bool     `json:"banded" yaml:"banded"`
	Accelerated bool     `json:"accelerated" yaml:"accelerated"`
	Summary     string   `json:"summary" yaml:"summary"`
}

// ErrUnknownMetric indicates a name missing from the catalog.
var ErrUnknownMetric = fmt.Errorf("%w: unknown metric", tsdist.ErrInvalidParameter)

var catalog = []Info{
	{Name: cost.MetricEuclidean, Summary: "lock-step Euclidean over the common prefix"},
	{Name: cost.MetricCatchEuclidean, Summary: "Euclidean between z-normalised Catch22 feature vectors"},
	{Name: cost.MetricERP, Params: []string{"band", "gap"}, Banded: true, Accelerated: true, Summary: "edit distance with real penalty"},
	{Name: cost.MetricLCSS, Params: []string{"band", "epsilon"}, Banded: true, Accelerated: true, Summary: "1 - longest common subsequence ratio"},
	{Name: cost.MetricDTW, Params: []string{"band"}, Banded: true, Accelerated: true, Summary: "dynamic time warping, squared cost"},
	{Name: cost.MetricDDTW, Params: []string{"band"}, Banded: true, Accelerated: true, Summary: "DTW on first derivatives"},
	{Name: cost.MetricWDTW, Params: []string{"band", "g"}, Banded: true, Accelerated: true, Summary: "logistic-weighted DTW"},
	{Name: cost.MetricWDDTW, Params: []string{"band", "g"}, Banded: true, Accelerated: true, Summary: "weighted DTW on first derivatives"},
	{Name: cost.MetricADTW, Params: []string{"band", "warp_penalty"}, Banded: true, Accelerated: true, Summary: "amerced DTW"},
	{Name: cost.MetricMSM, Params: []string{"band"}, Banded: true, Accelerated: true, Summary: "move-split-merge"},
	{Name: cost.MetricTWE, Params: []string{"band", "stiffness", "penalty"}, Banded: true, Accelerated: true, Summary: "time warp edit"},
	{Name: cost.MetricSBD, Summary: "shape-based distance via FFT cross-correlation"},
	{Name: cost.MetricMP, Params: []string{"window"}, Summary: "matrix profile distance"},
}

// Metrics lists the catalog in a stable order.
func Metrics() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)

	return out
}

// Lookup resolves a metric name (case-insensitive).
func Lookup(name string) (Info, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(name)))
	for _, info := range catalog {
		if info.Name == m {
			return info, nil
		}
	}

	return Info{}, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
}
