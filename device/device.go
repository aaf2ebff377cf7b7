// SPDX-License-Identifier: MIT

package device

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/cost"
)

// Device names an execution target.
type Device int

const (
	// CPU evaluates pairs on host goroutines (default).
	CPU Device = iota

	// GPU delegates whole collections to the registered Accelerator.
	GPU
)

// String returns the wire name ("cpu" or "gpu").
func (d Device) String() string {
	switch d {
	case CPU:
		return "cpu"
	case GPU:
		return "gpu"
	default:
		return fmt.Sprintf("device(%d)", int(d))
	}
}

var (
	// ErrUnknownDevice indicates a device name other than "cpu" or "gpu".
	ErrUnknownDevice = fmt.Errorf("%w: device must be either 'cpu' or 'gpu'", tsdist.ErrInvalidParameter)

	// ErrNoAccelerator indicates the GPU device was requested without a registered Provider.
	ErrNoAccelerator = fmt.Errorf("%w: no accelerator provider registered", tsdist.ErrComputation)

	// ErrShape indicates an accelerator result whose shape does not match the inputs.
	ErrShape = fmt.Errorf("%w: accelerator returned a malformed matrix", tsdist.ErrComputation)
)

// Parse maps "cpu"/"gpu" (case-insensitive, surrounding blanks ignored) to a Device.
func Parse(s string) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return CPU, nil
	case "gpu":
		return GPU, nil
	default:
		return CPU, fmt.Errorf("%q: %w", s, ErrUnknownDevice)
	}
}

// Request describes one accelerator job. Params carries the metric
// parameters; the band is Params.Band.
type Request struct {
	Metric cost.Metric
	Params cost.Params
}

// Accelerator computes a full |x1|×|x2| matrix in single precision.
// x2 is never nil; self-comparisons pass x1 twice.
type Accelerator interface {
	Pairwise(ctx context.Context, req Request, x1, x2 [][]float32) ([][]float32, error)
}

// Handle is the process-wide accelerator context: opaque device, queue and
// buffer-pool handles plus the Accelerator that uses them. It is shared
// read-only by every caller.
type Handle struct {
	Device      any
	Queue       any
	Buffers     any
	Accelerator Accelerator
}

// Provider initialises a Handle; it runs at most once per process.
type Provider func() (*Handle, error)

var (
	mu       sync.Mutex
	provider Provider
	once     *sync.Once
	handle   *Handle
	initErr  error
)

func init() {
	once = new(sync.Once)
}

// Register installs the Provider used by Get. Registering after the handle
// was initialised has no effect on the existing handle.
func Register(p Provider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

// Get returns the shared Handle, initialising it on first use.
// Initialisation failures are sticky and reported to every caller.
func Get() (*Handle, error) {
	mu.Lock()
	o, p := once, provider
	mu.Unlock()

	o.Do(func() {
		if p == nil {
			initErr = ErrNoAccelerator

			return
		}
		h, err := p()
		switch {
		case err != nil:
			initErr = fmt.Errorf("%w: accelerator init: %v", tsdist.ErrComputation, err)
		case h == nil || h.Accelerator == nil:
			initErr = ErrNoAccelerator
		default:
			handle = h
		}
	})

	return handle, initErr
}

// reset forgets the provider and handle; tests only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	provider, handle, initErr = nil, nil, nil
	once = new(sync.Once)
}
