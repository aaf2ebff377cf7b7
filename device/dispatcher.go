// SPDX-License-Identifier: MIT

package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/matrix"
)

// Breaker defaults.
const (
	DefaultBreakerName        = "tsdist-accelerator"
	DefaultBreakerInterval    = 60 * time.Second
	DefaultBreakerTimeout     = 30 * time.Second
	DefaultConsecutiveFailure = 3
)

// Dispatcher runs accelerator jobs behind a circuit breaker.
// It is safe for concurrent use.
type Dispatcher struct {
	cb     *gobreaker.CircuitBreaker
	get    func() (*Handle, error)
	logger zerolog.Logger
	onTrip func(from, to gobreaker.State)
}

// DispatcherOption configures NewDispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the logger used for breaker transitions and job tracing.
func WithDispatcherLogger(l zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithHandleSource replaces the process-wide Get (used to inject a handle).
func WithHandleSource(get func() (*Handle, error)) DispatcherOption {
	return func(d *Dispatcher) { d.get = get }
}

// WithStateListener observes breaker state changes (e.g. for metrics).
func WithStateListener(f func(from, to gobreaker.State)) DispatcherOption {
	return func(d *Dispatcher) { d.onTrip = f }
}

// NewDispatcher builds a Dispatcher whose breaker opens after
// DefaultConsecutiveFailure consecutive accelerator failures. Caller errors
// (invalid parameters, cancelled contexts) do not count as failures.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{get: Get, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	st := gobreaker.Settings{Name: DefaultBreakerName}
	st.Interval = DefaultBreakerInterval
	st.Timeout = DefaultBreakerTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= DefaultConsecutiveFailure
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil ||
			errors.Is(err, tsdist.ErrInvalidParameter) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		d.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("accelerator breaker state change")
		if d.onTrip != nil {
			d.onTrip(from, to)
		}
	}
	d.cb = gobreaker.NewCircuitBreaker(st)

	return d
}

// State reports the breaker state.
func (d *Dispatcher) State() gobreaker.State { return d.cb.State() }

// Run computes the matrix for req on the accelerator. x2 == nil compares x1
// with itself; the result is then rebuilt from its lower triangle with a zero
// diagonal. Every failure wraps tsdist.ErrComputation unless the
// accelerator itself reported a parameter error.
func (d *Dispatcher) Run(ctx context.Context, req Request, x1, x2 [][]float64) (*matrix.Dense, error) {
	h, err := d.get()
	if err != nil {
		return nil, err
	}
	if h == nil || h.Accelerator == nil {
		return nil, ErrNoAccelerator
	}

	a := ToFloat32(x1)
	b := a
	cols := len(x1)
	if x2 != nil {
		b = ToFloat32(x2)
		cols = len(x2)
	}

	d.logger.Debug().Str("metric", string(req.Metric)).Int("rows", len(x1)).Int("cols", cols).Msg("accelerator: dispatch")
	res, err := d.cb.Execute(func() (interface{}, error) {
		return h.Accelerator.Pairwise(ctx, req, a, b)
	})
	if err != nil {
		if errors.Is(err, tsdist.ErrInvalidParameter) || errors.Is(err, tsdist.ErrComputation) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: accelerator %s: %w", tsdist.ErrComputation, req.Metric, err)
	}
	out, _ := res.([][]float32)

	m, err := FromFloat32(out, len(x1), cols)
	if err != nil || x2 != nil {
		return m, err
	}
	if err := mirrorLower(m); err != nil {
		return nil, err
	}

	return m, nil
}

// mirrorLower copies the strict lower triangle of the square m over its upper
// triangle and zeroes the diagonal, the shape every self-comparison carries.
func mirrorLower(m *matrix.Dense) error {
	for i := 0; i < m.Rows(); i++ {
		if err := m.Set(i, i, 0); err != nil {
			return err
		}
		for j := 0; j < i; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			if err := m.Set(j, i, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// ToFloat32 narrows a collection to single precision.
func ToFloat32(xs [][]float64) [][]float32 {
	out := make([][]float32, len(xs))
	for i, x := range xs {
		out[i] = make([]float32, len(x))
		for j, v := range x {
			out[i][j] = float32(v)
		}
	}

	return out
}

// FromFloat32 widens an accelerator result into a Dense after checking it
// is exactly rows×cols.
func FromFloat32(m [][]float32, rows, cols int) (*matrix.Dense, error) {
	if len(m) != rows {
		return nil, fmt.Errorf("%d rows, want %d: %w", len(m), rows, ErrShape)
	}
	out, err := matrix.NewDense(rows, cols, matrix.WithAllowNonFinite())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	for i, r := range m {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(r), cols, ErrShape)
		}
		dst, _ := out.Row(i)
		for j, v := range r {
			dst[j] = float64(v)
		}
	}

	return out, nil
}
