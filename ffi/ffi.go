// SPDX-License-Identifier: MIT

// Package ffi is the flat-buffer surface used by foreign hosts (MATLAB MEX
// gateways, cgo shims). Inputs are dense numeric buffers with one sequence
// per row; results come back column-major together with a numeric status
// code, and stay owned by this package until Release.
//
// Codes:
//
//	0 ok
//	1 invalid parameter
//	2 computation error
//	3 unknown metric
package ffi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/distances"
	"github.com/katalvlaran/tsdist/matrix"
)

// Layout is the element order of a Buffer.
type Layout int

const (
	// RowMajor stores each sequence contiguously.
	RowMajor Layout = iota

	// ColMajor stores column by column (MATLAB order).
	ColMajor
)

// Code is the status reported to the foreign host.
type Code int

// Status codes.
const (
	CodeOK Code = iota
	CodeInvalidParameter
	CodeComputation
	CodeUnknownMetric
)

// ErrBuffer indicates a buffer whose Data does not hold Rows×Cols values.
var ErrBuffer = fmt.Errorf("%w: ffi: buffer size does not match rows×cols", tsdist.ErrInvalidParameter)

// Buffer is a Rows×Cols matrix of equal-length sequences, one per row.
type Buffer struct {
	Data       []float64
	Rows, Cols int
	Layout     Layout
}

// Sequences copies the rows of b into a collection.
func (b Buffer) Sequences() ([][]float64, error) {
	if b.Rows < 1 || b.Cols < 1 || len(b.Data) != b.Rows*b.Cols {
		return nil, fmt.Errorf("%d values for %d×%d: %w", len(b.Data), b.Rows, b.Cols, ErrBuffer)
	}
	if b.Layout == ColMajor {
		m, err := matrix.FromColMajor(b.Data, b.Rows, b.Cols, matrix.WithAllowNonFinite())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuffer, err)
		}

		return m.ToRows(), nil
	}
	out := make([][]float64, b.Rows)
	for i := range out {
		out[i] = append([]float64(nil), b.Data[i*b.Cols:(i+1)*b.Cols]...)
	}

	return out, nil
}

// Result is a computed matrix in column-major order plus its status.
// Data is nil unless Code is CodeOK.
type Result struct {
	Data    []float64
	Rows    int
	Cols    int
	Code    Code
	Message string
}

// Handle identifies a Result held by this package.
type Handle uint64

var (
	mu      sync.Mutex
	next    Handle
	results = map[Handle]*Result{}
)

// Call computes metric between x1 and x2 (nil = x1 with itself) and stores
// the outcome under a fresh handle. It never fails; inspect Result.Code.
// catch_euclidean needs distances.WithExtractor among opts.
func Call(metric string, x1 Buffer, x2 *Buffer, p distances.Params, parallel bool, device string, opts ...distances.Option) Handle {
	res := call(metric, x1, x2, p, append([]distances.Option{
		distances.WithParallel(parallel),
		distances.WithDevice(device),
	}, opts...))

	mu.Lock()
	defer mu.Unlock()
	next++
	results[next] = res

	return next
}

func call(metric string, x1 Buffer, x2 *Buffer, p distances.Params, opts []distances.Option) *Result {
	a, err := x1.Sequences()
	if err != nil {
		return failed(err)
	}
	var b [][]float64
	if x2 != nil {
		if b, err = x2.Sequences(); err != nil {
			return failed(err)
		}
	}

	m, err := distances.Run(metric, a, b, p, opts...)
	if err != nil {
		return failed(err)
	}

	return &Result{Data: m.ColMajor(), Rows: m.Rows(), Cols: m.Cols(), Code: CodeOK}
}

func failed(err error) *Result {
	return &Result{Code: CodeOf(err), Message: err.Error()}
}

// CodeOf maps an error to its status code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, distances.ErrUnknownMetric):
		return CodeUnknownMetric
	case errors.Is(err, tsdist.ErrInvalidParameter):
		return CodeInvalidParameter
	default:
		return CodeComputation
	}
}

// Lookup returns the Result stored under h.
func Lookup(h Handle) (Result, bool) {
	mu.Lock()
	defer mu.Unlock()
	r, ok := results[h]
	if !ok {
		return Result{}, false
	}

	return *r, true
}

// Release frees the Result stored under h. Releasing an unknown or already
// released handle does nothing.
func Release(h Handle) {
	mu.Lock()
	defer mu.Unlock()
	delete(results, h)
}

// Live reports how many results await Release.
func Live() int {
	mu.Lock()
	defer mu.Unlock()

	return len(results)
}

// ToBuffer exports m column-major, the layout foreign hosts expect.
func ToBuffer(m *matrix.Dense) Buffer {
	return Buffer{Data: m.ColMajor(), Rows: m.Rows(), Cols: m.Cols(), Layout: ColMajor}
}
