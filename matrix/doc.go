// SPDX-License-Identifier: MIT

// Package matrix stores pairwise distance matrices.
//
// What & Why:
//
//	A distance computation over collections X1 (k1 sequences) and X2 (k2
//	sequences) yields a k1×k2 table; a self-comparison yields a symmetric
//	k×k table with a zero diagonal. Dense keeps such a table in one flat
//	row-major buffer so parallel workers can write disjoint cells without
//	synchronisation and foreign callers can receive it as a single slice in
//	either row- or column-major order.
//
// Numeric policy:
//
//	By default Set rejects NaN and ±Inf (ErrNaNInf). Distance matrices are
//	built WithAllowNonFinite() because some metrics legitimately yield +Inf
//	(unreachable warping cells) or NaN (degenerate input).
//
// Complexity:
//
//	Rows, Cols, At, Set and Row run in O(1); ToRows, RowMajor and ColMajor
//	in O(rows*cols).
package matrix
