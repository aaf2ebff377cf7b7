// SPDX-License-Identifier: MIT

package distances_test

import (
	"testing"

	"github.com/katalvlaran/tsdist/distances"
	"github.com/katalvlaran/tsdist/synth"
)

func benchmarkMetric(b *testing.B, name string, band float64) {
	xs, err := synth.Collection(32, 150, 250, 1, synth.KindMixed)
	if err != nil {
		b.Fatal(err)
	}
	p := distances.DefaultParams()
	p.Band = band

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := distances.Run(name, xs, nil, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDTW_Band10(b *testing.B)  { benchmarkMetric(b, "dtw", 0.1) }
func BenchmarkDTW_Full(b *testing.B)    { benchmarkMetric(b, "dtw", 1) }
func BenchmarkMSM_Band10(b *testing.B)  { benchmarkMetric(b, "msm", 0.1) }
func BenchmarkTWE_Band10(b *testing.B)  { benchmarkMetric(b, "twe", 0.1) }
func BenchmarkLCSS_Band10(b *testing.B) { benchmarkMetric(b, "lcss", 0.1) }
func BenchmarkSBD(b *testing.B)         { benchmarkMetric(b, "sbd", 1) }
func BenchmarkMP(b *testing.B)          { benchmarkMetric(b, "mp", 1) }
