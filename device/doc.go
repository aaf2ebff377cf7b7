// SPDX-License-Identifier: MIT

// Package device selects where a distance matrix is computed and talks to an
// optional accelerator.
//
// The CPU path lives in the pairwise package. The GPU path hands whole
// collections, converted to float32, to an Accelerator obtained from a
// process-wide lazily initialised Handle. Binaries that ship an accelerator
// call Register with a Provider before the first Get; without one the GPU
// device reports ErrNoAccelerator.
//
// Accelerator calls run through a circuit breaker so a failing device stops
// being hammered; results come back as float64 and are shape-checked.
package device
