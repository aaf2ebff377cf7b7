// SPDX-License-Identifier: MIT

package synth

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/tsdist"
)

// Kind selects a generator for Collection.
type Kind string

// Generator kinds.
const (
	KindPulse Kind = "pulse"
	KindChirp Kind = "chirp"
	KindWalk  Kind = "walk"
	KindNoise Kind = "noise"
	KindMixed Kind = "mixed"
)

// Kinds lists every Kind in a stable order.
func Kinds() []Kind { return []Kind{KindPulse, KindChirp, KindWalk, KindNoise, KindMixed} }

var (
	// ErrKind indicates an unknown generator kind.
	ErrKind = fmt.Errorf("%w: synth: unknown kind", tsdist.ErrInvalidParameter)

	// ErrLength indicates a count or length range that cannot produce sequences.
	ErrLength = fmt.Errorf("%w: synth: need k >= 1 and 1 <= minLen <= maxLen", tsdist.ErrInvalidParameter)
)

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("%q: %w", s, ErrKind)
}

// Collection returns k sequences with lengths drawn uniformly from
// [minLen, maxLen]. Sequence i is generated with seed+i+1; KindMixed cycles
// pulse, chirp, walk and noise. opts apply to every generator.
func Collection(k, minLen, maxLen int, seed int64, kind Kind, opts ...Option) ([][]float64, error) {
	if k < 1 || minLen < 1 || maxLen < minLen {
		return nil, ErrLength
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	lengths := rand.New(rand.NewSource(seed))
	out := make([][]float64, k)
	for i := range out {
		n := minLen + lengths.Intn(maxLen-minLen+1)
		s := seed + int64(i) + 1
		g := kind
		if g == KindMixed {
			g = Kinds()[i%4]
		}
		switch g {
		case KindPulse:
			out[i] = Pulse(n, s, opts...)
		case KindChirp:
			out[i] = Chirp(n, s, opts...)
		case KindWalk:
			out[i] = RandomWalk(n, s, opts...)
		case KindNoise:
			out[i] = noise(n, s)
		}
		if out[i] == nil {
			return nil, fmt.Errorf("synth: sequence %d: %w", i, tsdist.ErrInvalidParameter)
		}
	}

	return out, nil
}

// noise returns n standard normal samples.
func noise(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}

	return out
}
