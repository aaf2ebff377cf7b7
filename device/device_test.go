// SPDX-License-Identifier: MIT

package device_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/cost"
	"github.com/katalvlaran/tsdist/device"
	"github.com/katalvlaran/tsdist/matrix"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]device.Device{"cpu": device.CPU, "GPU": device.GPU, " gpu ": device.GPU} {
		d, err := device.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d)
	}
	_, err := device.Parse("tpu")
	assert.ErrorIs(t, err, device.ErrUnknownDevice)
	assert.True(t, tsdist.IsInvalidParameter(err))
	assert.Equal(t, "gpu", device.GPU.String())
}

// fakeAccel returns a fixed matrix or error and counts calls.
type fakeAccel struct {
	out   [][]float32
	err   error
	calls int
	last  device.Request
	x2Len int
}

func (f *fakeAccel) Pairwise(_ context.Context, req device.Request, x1, x2 [][]float32) ([][]float32, error) {
	f.calls++
	f.last = req
	f.x2Len = len(x2)

	return f.out, f.err
}

func handleFor(a device.Accelerator) func() (*device.Handle, error) {
	return func() (*device.Handle, error) { return &device.Handle{Accelerator: a}, nil }
}

func TestGet_NoProvider(t *testing.T) {
	device.Reset()
	t.Cleanup(device.Reset)

	_, err := device.Get()
	assert.ErrorIs(t, err, device.ErrNoAccelerator)
	assert.True(t, tsdist.IsComputation(err))
}

func TestGet_InitialisesOnce(t *testing.T) {
	device.Reset()
	t.Cleanup(device.Reset)

	var inits int
	device.Register(func() (*device.Handle, error) {
		inits++

		return &device.Handle{Device: "fake", Accelerator: &fakeAccel{}}, nil
	})
	h1, err := device.Get()
	require.NoError(t, err)
	h2, err := device.Get()
	require.NoError(t, err)
	assert.Same(t, h1, h2)
	assert.Equal(t, 1, inits)
}

func TestGet_StickyFailure(t *testing.T) {
	device.Reset()
	t.Cleanup(device.Reset)

	device.Register(func() (*device.Handle, error) { return nil, errors.New("no adapter") })
	_, err := device.Get()
	require.Error(t, err)
	assert.True(t, tsdist.IsComputation(err))
	_, err2 := device.Get()
	assert.Equal(t, err, err2)
}

func TestDispatcher_RunConvertsAndChecksShape(t *testing.T) {
	acc := &fakeAccel{out: [][]float32{{0, 1.5}, {1.5, 0}}}
	d := device.NewDispatcher(device.WithHandleSource(handleFor(acc)))
	req := device.Request{Metric: cost.MetricDTW, Params: cost.Params{Band: 0.5}}

	m, err := d.Run(context.Background(), req, [][]float64{{1, 2}, {3}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, 1.5, 0}, m.RowMajor())
	assert.Equal(t, 2, acc.x2Len, "self-comparison passes x1 twice")
	assert.Equal(t, cost.MetricDTW, acc.last.Metric)

	acc.out = [][]float32{{0, 1}}
	_, err = d.Run(context.Background(), req, [][]float64{{1, 2}, {3}}, nil)
	assert.ErrorIs(t, err, device.ErrShape)

	acc.out = [][]float32{{0}, {1}}
	_, err = d.Run(context.Background(), req, [][]float64{{1, 2}, {3}}, [][]float64{{1}, {2}})
	assert.ErrorIs(t, err, device.ErrShape)
	assert.True(t, tsdist.IsComputation(err))
}

func TestDispatcher_SelfResultMirrored(t *testing.T) {
	acc := &fakeAccel{out: [][]float32{{1e-4, 0.5}, {0.5001, 2e-4}}}
	d := device.NewDispatcher(device.WithHandleSource(handleFor(acc)))
	req := device.Request{Metric: cost.MetricDTW, Params: cost.Params{Band: 1}}
	xs := [][]float64{{1, 2}, {3, 4}}

	m, err := d.Run(context.Background(), req, xs, nil)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSelfDistance(m, 0))
	lower := float64(float32(0.5001))
	assert.Equal(t, []float64{0, lower, lower, 0}, m.RowMajor())

	cross, err := d.Run(context.Background(), req, xs, xs)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(1e-4)), cross.RowMajor()[0], "cross results are returned as computed")
}

func TestDispatcher_BreakerOpensOnDeviceFailures(t *testing.T) {
	acc := &fakeAccel{err: errors.New("device lost")}
	var transitions []gobreaker.State
	d := device.NewDispatcher(
		device.WithHandleSource(handleFor(acc)),
		device.WithStateListener(func(_, to gobreaker.State) { transitions = append(transitions, to) }),
	)
	req := device.Request{Metric: cost.MetricDTW}
	x := [][]float64{{1}}

	for i := 0; i < device.DefaultConsecutiveFailure; i++ {
		_, err := d.Run(context.Background(), req, x, nil)
		require.Error(t, err)
		assert.True(t, tsdist.IsComputation(err))
	}
	assert.Equal(t, gobreaker.StateOpen, d.State())
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)

	_, err := d.Run(context.Background(), req, x, nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, tsdist.IsComputation(err))
	assert.Equal(t, device.DefaultConsecutiveFailure, acc.calls, "open breaker short-circuits the device")
}

func TestDispatcher_ParameterErrorsDoNotTrip(t *testing.T) {
	acc := &fakeAccel{err: tsdist.ErrInvalidParameter}
	d := device.NewDispatcher(device.WithHandleSource(handleFor(acc)))
	for i := 0; i < 2*device.DefaultConsecutiveFailure; i++ {
		_, err := d.Run(context.Background(), device.Request{Metric: cost.MetricDTW}, [][]float64{{1}}, nil)
		assert.True(t, tsdist.IsInvalidParameter(err))
	}
	assert.Equal(t, gobreaker.StateClosed, d.State())
}

func TestDispatcher_NoAccelerator(t *testing.T) {
	d := device.NewDispatcher(device.WithHandleSource(func() (*device.Handle, error) { return &device.Handle{}, nil }))
	_, err := d.Run(context.Background(), device.Request{}, [][]float64{{1}}, nil)
	assert.ErrorIs(t, err, device.ErrNoAccelerator)
}

func TestFloat32RoundTrip(t *testing.T) {
	f := device.ToFloat32([][]float64{{0.1, 2}, {3}})
	assert.Equal(t, [][]float32{{0.1, 2}, {3}}, f)

	m, err := device.FromFloat32([][]float32{{1, 2}}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, m.RowMajor())
}
