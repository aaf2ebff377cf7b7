// SPDX-License-Identifier: MIT

package pairwise

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Observer receives progress notifications; implementations must be safe
// for concurrent use.
type Observer interface {
	// PairsComputed is called once per finished row with the number of pairs it evaluated.
	PairsComputed(n int)

	// MatrixComputed is called once per successful Compute.
	MatrixComputed(rows, cols int, elapsed time.Duration)
}

// Option configures Compute.
type Option func(*options)

type options struct {
	parallel bool
	workers  int
	logger   zerolog.Logger
	observer Observer
}

// Defaults.
const (
	// DefaultParallel enables the worker pool.
	DefaultParallel = true
)

const panicWorkersInvalid = "pairwise: WithWorkers: n must be >= 0"

// WithParallel toggles the worker pool; false evaluates rows on the caller goroutine.
func WithParallel(on bool) Option {
	return func(o *options) { o.parallel = on }
}

// WithWorkers caps the pool size; 0 means GOMAXPROCS. Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the debug logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers a progress observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func gatherOptions(opts ...Option) options {
	o := options{
		parallel: DefaultParallel,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}
