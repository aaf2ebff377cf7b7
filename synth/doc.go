// SPDX-License-Identifier: MIT

// Package synth generates deterministic test sequences: rectangular and
// triangular pulses, linear chirps and geometric-Brownian random walks, plus
// whole collections of them with varying lengths.
//
// Every generator is a pure function of (n, seed, options). Invalid requests
// return nil instead of panicking. The generators feed property tests,
// benchmarks and the `tsdist synth` command.
package synth
