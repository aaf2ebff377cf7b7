// SPDX-License-Identifier: MIT

// Package emulator provides a host-side device.Accelerator that evaluates the
// elastic kernels on single-precision inputs and returns single-precision
// results, reproducing the numeric contract of a GPU backend. It backs the
// "gpu" device when no hardware provider is linked in and serves as the
// reference for device parity tests.
package emulator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/distances"
	"github.com/katalvlaran/tsdist/pairwise"
)

// ErrUnsupportedMetric indicates a metric without an accelerator kernel.
var ErrUnsupportedMetric = fmt.Errorf("%w: metric not supported by the accelerator", tsdist.ErrInvalidParameter)

// Emulator implements device.Accelerator on the host.
type Emulator struct{}

var _ device.Accelerator = (*Emulator)(nil)

// Provider returns a device.Provider yielding a Handle backed by an Emulator.
func Provider() device.Provider {
	return func() (*device.Handle, error) {
		return &device.Handle{Device: "host", Queue: "inline", Accelerator: &Emulator{}}, nil
	}
}

// Pairwise evaluates every (x1[i], x2[j]) pair, shorter sequence first,
// with the CPU kernel of req.Metric on the widened float32 inputs.
// Derivative metrics receive already-derived sequences.
func (e *Emulator) Pairwise(ctx context.Context, req device.Request, x1, x2 [][]float32) ([][]float32, error) {
	kernel, err := kernelFor(req)
	if err != nil {
		return nil, err
	}
	a64, b64 := widen(x1), widen(x2)

	out := make([][]float32, len(x1))
	for i, a := range a64 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = make([]float32, len(x2))
		for j, b := range b64 {
			p, q := a, b
			if len(p) > len(q) {
				p, q = q, p
			}
			d, err := kernel.Distance(p, q)
			if err != nil {
				return nil, err
			}
			out[i][j] = float32(d)
		}
	}

	return out, nil
}

func kernelFor(req device.Request) (pairwise.Kernel, error) {
	info, err := distances.Lookup(string(req.Metric))
	if err != nil {
		return nil, err
	}
	if !info.Accelerated {
		return nil, fmt.Errorf("%s: %w", req.Metric, ErrUnsupportedMetric)
	}
	newKernel, err := distances.NewKernel(info.Name, req.Params)
	if err != nil {
		return nil, err
	}

	return newKernel(), nil
}

func widen(xs [][]float32) [][]float64 {
	out := make([][]float64, len(xs))
	for i, x := range xs {
		out[i] = make([]float64, len(x))
		for j, v := range x {
			out[i][j] = float64(v)
		}
	}

	return out
}
