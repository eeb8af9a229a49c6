package distmat_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dtwcluster/distmat"
	"github.com/katalvlaran/dtwcluster/dtw"
)

// benchCollection builds n sinusoid series of the given length with
// per-series phase shifts.
func benchCollection(n, length int) distmat.Collection {
	c := make(distmat.Collection, n)
	for i := 0; i < n; i++ {
		v := make([]float64, length)
		for t := 0; t < length; t++ {
			v[t] = math.Sin(float64(t)/10 + float64(i))
		}
		c[i] = dtw.UnivariateSequence(v)
	}
	return c
}

// benchmarkCross runs self-distance Cross over 32 series of length 64.
func benchmarkCross(b *testing.B, workers int) {
	c := benchCollection(32, 64)
	opts := distmat.DefaultOptions()
	opts.Workers = workers

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := distmat.Cross(c, nil, opts); err != nil {
			b.Fatalf("Cross failed: %v", err)
		}
	}
}

// BenchmarkCross_1Worker is the sequential baseline.
func BenchmarkCross_1Worker(b *testing.B) { benchmarkCross(b, 1) }

// BenchmarkCross_4Workers measures pool scaling at four workers.
func BenchmarkCross_4Workers(b *testing.B) { benchmarkCross(b, 4) }

// BenchmarkCross_8Workers measures pool scaling at eight workers.
func BenchmarkCross_8Workers(b *testing.B) { benchmarkCross(b, 8) }
