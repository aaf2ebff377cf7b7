// SPDX-License-Identifier: MIT

// Package pairwise fills a distance matrix from one or two collections of
// sequences using a pair kernel.
//
// Layout:
//
//	Compute(x1, nil, ...)  self-comparison: row i evaluates j < i, mirrors
//	                       the value into (j, i); the diagonal stays 0.
//	Compute(x1, x2, ...)   cross-comparison: the full |x1|×|x2| grid.
//
// Every pair is presented to the kernel with the shorter sequence first.
//
// Parallelism:
//
//	Workers pull row indices from an atomic cursor and own one Kernel each,
//	so engine buffers and FFT plans are never shared. Workers write
//	disjoint cells, the first error cancels the remaining rows and the
//	partially filled matrix is discarded. Results do not depend on
//	scheduling.
package pairwise
