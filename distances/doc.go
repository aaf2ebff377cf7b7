// SPDX-License-Identifier: MIT

// Package distances is the public surface of tsdist: one function per metric,
// each returning a dense distance matrix between two collections of
// sequences (or a collection and itself).
//
// Shape:
//
//	x2 == nil  → |x1|×|x1|, symmetric, zero diagonal, lower triangle computed once
//	x2 != nil  → |x1|×|x2|, every pair computed
//
// Sequences inside a collection may have different lengths. Each pair is
// evaluated with the shorter sequence first.
//
// Options:
//
//	WithParallel(true)    fan rows out over a worker pool (default)
//	WithDevice("cpu")     "cpu" (default) or "gpu" for the elastic metrics
//	WithWorkers(n)        cap the pool (0 = GOMAXPROCS)
//	WithContext(ctx)      cancellation for long matrices and accelerator jobs
//
// Euclidean, CatchEuclidean, SBD and MP always run on the CPU; the device
// option is validated but otherwise ignored for them.
//
// Every parameter is validated before any allocation. Failures match
// tsdist.ErrInvalidParameter or tsdist.ErrComputation via errors.Is.
//
// By-name dispatch for binaries and the HTTP service goes through Run and the
// Metrics registry.
package distances
