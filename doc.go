// SPDX-License-Identifier: MIT

// Package tsdist computes pairwise distance matrices between collections of
// numeric time series of independent, possibly unequal, lengths.
//
// 🚀 What is tsdist?
//
//	A pure-Go toolkit of elastic distances built around one banded
//	wavefront dynamic-programming engine:
//		• Elastic: ERP, LCSS, DTW, DDTW, WDTW, WDDTW, ADTW, MSM, TWE
//		• Lock-step: Euclidean, Catch22-Euclidean
//		• Shape: SBD (FFT cross-correlation), MP (matrix profile distance)
//
// ✨ Why tsdist?
//
//   - O(band·max(n,m)) memory per pair: only three antidiagonals are resident.
//   - Symmetric self-comparison computes the lower triangle once and mirrors it.
//   - Deterministic parallel fan-out: every pair owns its scratch, results are
//     bit-identical regardless of scheduling.
//   - Pluggable accelerator backend behind the same API ("cpu" | "gpu").
//
// Under the hood:
//
//	wavefront/ — banded antidiagonal DP engine
//	cost/      — per-metric cell evaluators and parameter validation
//	series/    — z-score, derivative, logistic weights, sliding statistics
//	sbd/       — thread-confined FFT cross-correlation cache
//	mp/        — matrix profile distance
//	pairwise/  — N×M / symmetric N×N orchestration
//	device/    — cpu/gpu dispatch and accelerator handle
//	distances/ — public per-metric operations
//	device/emulator/ — host reference accelerator
//	features/  — Catch22 extractor registry and column normalisation
//	matrix/    — dense row-major distance matrix
//	ffi/       — flat-buffer foreign-call surface with explicit release
//	synth/     — deterministic synthetic collections
//	config/    — YAML + TSDIST_* environment configuration
//	cache/     — in-memory and Redis result caches
//	metrics/   — Prometheus collectors
//	service/   — HTTP API; cmd/tsdist — CLI
//
// Errors:
//
//	Every operation returns either a matrix or an error that matches one of two
//	kinds via errors.Is: ErrInvalidParameter or ErrComputation.
//
//	go get github.com/katalvlaran/tsdist
package tsdist
