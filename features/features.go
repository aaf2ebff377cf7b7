// SPDX-License-Identifier: MIT

// Package features turns sequence collections into z-normalised Catch22
// feature tables.
//
// The 22 canonical features are computed by an external Extractor; this
// package owns the post-processing: non-finite values become 0 and every
// column is z-normalised over the collection with population statistics.
// Each collection is normalised with its own statistics.
package features

import (
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/matrix"
)

// N is the number of Catch22 features.
const N = 22

// Extractor computes the N features of one sequence.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Features(x []float64) []float64
}

// ExtractorFunc adapts an ordinary function to Extractor.
type ExtractorFunc func(x []float64) []float64

// Features calls f.
func (f ExtractorFunc) Features(x []float64) []float64 { return f(x) }

var (
	// ErrNilExtractor indicates a missing extractor.
	ErrNilExtractor = fmt.Errorf("%w: features: nil extractor", tsdist.ErrInvalidParameter)

	// ErrFeatureCount indicates an extractor that did not return N values.
	ErrFeatureCount = fmt.Errorf("%w: features: extractor must return %d values", tsdist.ErrComputation, N)

	// ErrUnknownExtractor indicates a Lookup miss.
	ErrUnknownExtractor = fmt.Errorf("%w: features: unknown extractor", tsdist.ErrInvalidParameter)
)

// Transform extracts the features of every sequence in xs and returns the
// len(xs)×N table with each column z-normalised.
//
// Implementation:
//   - Stage 1: extract, check width, copy into a Dense that accepts non-finite values.
//   - Stage 2: replace NaN/±Inf by 0.
//   - Stage 3: matrix.NormalizeColumns (|std| < machine epsilon ⇒ divisor 1).
func Transform(xs [][]float64, ex Extractor) (*matrix.Dense, error) {
	if ex == nil {
		return nil, ErrNilExtractor
	}
	raw, err := matrix.NewDense(len(xs), N, matrix.WithAllowNonFinite())
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	for i, x := range xs {
		f := ex.Features(x)
		if len(f) != N {
			return nil, fmt.Errorf("sequence %d: got %d: %w", i, len(f), ErrFeatureCount)
		}
		dst, _ := raw.Row(i)
		copy(dst, f)
	}

	clean, err := matrix.ReplaceNonFinite(raw, 0)
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	z, _, _, err := matrix.NormalizeColumns(clean)
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}

	return z, nil
}

var (
	regMu    sync.RWMutex
	registry = map[string]Extractor{}
)

// Register makes ex available under name, replacing any previous entry.
func Register(name string, ex Extractor) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = ex
}

// Lookup returns the extractor registered under name.
func Lookup(name string) (Extractor, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	ex, ok := registry[name]
	if !ok || ex == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownExtractor)
	}

	return ex, nil
}

// Names lists the registered extractors in sorted order.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
