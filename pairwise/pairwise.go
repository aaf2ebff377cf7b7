// SPDX-License-Identifier: MIT

package pairwise

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/matrix"
)

// Kernel computes the distance of one pair; len(a) <= len(b) on every call.
// A Kernel is used by one goroutine at a time.
type Kernel interface {
	Distance(a, b []float64) (float64, error)
}

// KernelFunc adapts an ordinary function to Kernel.
type KernelFunc func(a, b []float64) (float64, error)

// Distance calls f.
func (f KernelFunc) Distance(a, b []float64) (float64, error) { return f(a, b) }

// KernelFactory builds one Kernel per worker together with its scratch state.
type KernelFactory func() Kernel

var (
	// ErrEmptyCollection indicates a collection without sequences.
	ErrEmptyCollection = fmt.Errorf("%w: pairwise: collection must contain at least one sequence", tsdist.ErrInvalidParameter)

	// ErrNilKernel indicates a nil KernelFactory or a factory returning nil.
	ErrNilKernel = fmt.Errorf("%w: pairwise: nil kernel", tsdist.ErrInvalidParameter)
)

// Compute evaluates newKernel over x1 against itself (x2 == nil) or against x2.
//
// Implementation:
//   - Stage 1: validate inputs and allocate a |x1|×|x2| matrix that accepts non-finite values.
//   - Stage 2: evaluate rows sequentially or on a pool of min(workers, rows)
//     goroutines pulling row indices (longest rows first) from an atomic cursor.
//   - Stage 3: return the matrix, or the first error with the matrix discarded.
//
// Kernel errors are returned as they are; errors.Is on tsdist kinds keeps working.
func Compute(x1, x2 [][]float64, newKernel KernelFactory, opts ...Option) (*matrix.Dense, error) {
	return ComputeContext(context.Background(), x1, x2, newKernel, opts...)
}

// ComputeContext is Compute with cancellation; a cancelled ctx stops pulling rows.
func ComputeContext(ctx context.Context, x1, x2 [][]float64, newKernel KernelFactory, opts ...Option) (*matrix.Dense, error) {
	if newKernel == nil {
		return nil, ErrNilKernel
	}
	o := gatherOptions(opts...)

	self := x2 == nil
	rows, cols := len(x1), len(x2)
	if self {
		cols = rows
	}
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyCollection
	}

	out, err := matrix.NewDense(rows, cols, matrix.WithAllowNonFinite())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	o.logger.Debug().Int("rows", rows).Int("cols", cols).Bool("self", self).
		Bool("parallel", o.parallel).Int("workers", o.workers).Msg("pairwise: start")

	r := &runner{x1: x1, x2: x2, self: self, out: out, observer: o.observer}
	if !o.parallel || o.workers == 1 || rows == 1 {
		err = r.sequential(ctx, newKernel)
	} else {
		err = r.parallel(ctx, newKernel, min(o.workers, rows))
	}
	if err != nil {
		o.logger.Debug().Err(err).Msg("pairwise: aborted")

		return nil, err
	}

	elapsed := time.Since(start)
	if o.observer != nil {
		o.observer.MatrixComputed(rows, cols, elapsed)
	}
	o.logger.Debug().Dur("elapsed", elapsed).Msg("pairwise: done")

	return out, nil
}

// runner holds the shared, read-only state of one Compute call.
type runner struct {
	x1, x2   [][]float64
	self     bool
	out      *matrix.Dense
	observer Observer
}

func (r *runner) sequential(ctx context.Context, newKernel KernelFactory) error {
	k := newKernel()
	if k == nil {
		return ErrNilKernel
	}
	for i := range r.x1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.row(k, i); err != nil {
			return err
		}
	}

	return nil
}

func (r *runner) parallel(ctx context.Context, newKernel KernelFactory, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	rows := int64(len(r.x1))
	var cursor atomic.Int64

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			k := newKernel()
			if k == nil {
				return ErrNilKernel
			}
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				next := cursor.Add(1) - 1
				if next >= rows {
					return nil
				}
				// self-comparison rows grow with i; hand out the longest first
				i := int(next)
				if r.self {
					i = int(rows - 1 - next)
				}
				if err := r.row(k, i); err != nil {
					return err
				}
			}
		})
	}

	return g.Wait()
}

// row evaluates row i; in self mode it also writes the mirrored column cells.
func (r *runner) row(k Kernel, i int) error {
	dst, err := r.out.Row(i)
	if err != nil {
		return err
	}
	a := r.x1[i]

	var n int
	if r.self {
		for j := 0; j < i; j++ {
			d, err := pair(k, a, r.x1[j])
			if err != nil {
				return err
			}
			dst[j] = d
			if err = r.out.Set(j, i, d); err != nil {
				return err
			}
		}
		n = i
	} else {
		for j, b := range r.x2 {
			d, err := pair(k, a, b)
			if err != nil {
				return err
			}
			dst[j] = d
		}
		n = len(r.x2)
	}
	if r.observer != nil && n > 0 {
		r.observer.PairsComputed(n)
	}

	return nil
}

// pair orders the arguments shorter-first.
func pair(k Kernel, a, b []float64) (float64, error) {
	if len(a) > len(b) {
		a, b = b, a
	}

	return k.Distance(a, b)
}
