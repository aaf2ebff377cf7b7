// SPDX-License-Identifier: MIT

package distances

import (
	"fmt"

	"github.com/katalvlaran/tsdist/cost"
	"github.com/katalvlaran/tsdist/mp"
	"github.com/katalvlaran/tsdist/pairwise"
	"github.com/katalvlaran/tsdist/sbd"
	"github.com/katalvlaran/tsdist/wavefront"
)

// NewKernel returns the per-worker kernel factory for metric m. The metric
// is resolved once; every Kernel owns its engine Workspace, weight cache or
// FFT cache. Derivative metrics expect already-derived sequences.
// catch_euclidean is not a pair kernel and is rejected.
func NewKernel(m Metric, p Params) (pairwise.KernelFactory, error) {
	switch m {
	case cost.MetricEuclidean:
		return func() pairwise.Kernel {
			return pairwise.KernelFunc(func(a, b []float64) (float64, error) { return cost.Euclidean(a, b), nil })
		}, nil
	case cost.MetricERP:
		return workspaceKernel(func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairERP(ws, a, b, p.Band, p.Gap)
		}), nil
	case cost.MetricLCSS:
		return workspaceKernel(func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairLCSS(ws, a, b, p.Band, p.Epsilon)
		}), nil
	case cost.MetricDTW, cost.MetricDDTW:
		return workspaceKernel(func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairDTW(ws, a, b, p.Band)
		}), nil
	case cost.MetricWDTW, cost.MetricWDDTW:
		return func() pairwise.Kernel {
			ws := wavefront.NewWorkspace()
			weights := cost.NewWeightCache(p.G)

			return pairwise.KernelFunc(func(a, b []float64) (float64, error) {
				return cost.PairWDTW(ws, a, b, p.Band, weights.For(len(b)))
			})
		}, nil
	case cost.MetricADTW:
		return workspaceKernel(func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairADTW(ws, a, b, p.Band, p.WarpPenalty)
		}), nil
	case cost.MetricMSM:
		return workspaceKernel(func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairMSM(ws, a, b, p.Band)
		}), nil
	case cost.MetricTWE:
		return workspaceKernel(func(ws *wavefront.Workspace, a, b []float64) (float64, error) {
			return cost.PairTWE(ws, a, b, p.Band, p.Stiffness, p.Penalty)
		}), nil
	case cost.MetricSBD:
		return func() pairwise.Kernel {
			c := sbd.NewCache()

			return pairwise.KernelFunc(func(a, b []float64) (float64, error) { return c.Distance(a, b), nil })
		}, nil
	case cost.MetricMP:
		return func() pairwise.Kernel {
			return pairwise.KernelFunc(func(a, b []float64) (float64, error) { return mp.Distance(a, b, p.Window), nil })
		}, nil
	default:
		return nil, fmt.Errorf("%q has no pair kernel: %w", m, ErrUnknownMetric)
	}
}

func workspaceKernel(f func(ws *wavefront.Workspace, a, b []float64) (float64, error)) pairwise.KernelFactory {
	return func() pairwise.Kernel {
		ws := wavefront.NewWorkspace()

		return pairwise.KernelFunc(func(a, b []float64) (float64, error) { return f(ws, a, b) })
	}
}
