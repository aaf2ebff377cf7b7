// SPDX-License-Identifier: MIT

package distances

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/features"
	"github.com/katalvlaran/tsdist/pairwise"
)

// Option configures a distance computation.
type Option func(*options)

type options struct {
	parallel   bool
	device     string
	workers    int
	logger     zerolog.Logger
	observer   pairwise.Observer
	ctx        context.Context
	dispatcher *device.Dispatcher
	extractor  features.Extractor
}

// Defaults.
const (
	DefaultParallel = true
	DefaultDevice   = "cpu"
)

// WithParallel toggles the worker pool.
func WithParallel(on bool) Option {
	return func(o *options) { o.parallel = on }
}

// WithDevice selects "cpu" or "gpu". Unknown names fail validation.
func WithDevice(name string) Option {
	return func(o *options) { o.device = name }
}

// WithWorkers caps the worker pool; 0 means GOMAXPROCS. Panics on n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("distances: WithWorkers: n must be >= 0")
	}

	return func(o *options) { o.workers = n }
}

// WithLogger sets the debug logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers a progress observer (see metrics.Collector).
func WithObserver(obs pairwise.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithContext sets the context used for cancellation and accelerator calls.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithDispatcher routes "gpu" jobs through d instead of the shared dispatcher.
func WithDispatcher(d *device.Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// WithExtractor sets the Catch22 extractor used by Run for "catch_euclidean".
func WithExtractor(ex features.Extractor) Option {
	return func(o *options) { o.extractor = ex }
}

func gatherOptions(opts ...Option) options {
	o := options{
		parallel: DefaultParallel,
		device:   DefaultDevice,
		logger:   zerolog.Nop(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}

	return o
}

func (o options) pairwise() []pairwise.Option {
	return []pairwise.Option{
		pairwise.WithParallel(o.parallel),
		pairwise.WithWorkers(o.workers),
		pairwise.WithLogger(o.logger),
		pairwise.WithObserver(o.observer),
	}
}
