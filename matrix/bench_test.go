// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/tsdist/matrix"
)

func randomDense(b *testing.B, r, c int) *matrix.Dense {
	rng := rand.New(rand.NewSource(1))
	m, err := matrix.NewDense(r, c)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < r; i++ {
		row, _ := m.Row(i)
		for j := range row {
			row[j] = rng.Float64()
		}
	}

	return m
}

func BenchmarkNormalizeColumns_1000x22(b *testing.B) {
	m := randomDense(b, 1000, 22)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, _, err := matrix.NormalizeColumns(m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkColMajor_500x500(b *testing.B) {
	m := randomDense(b, 500, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.ColMajor()
	}
}
